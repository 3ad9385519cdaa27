// Command tmconv converts coordinates with the Transverse Mercator
// projection.
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tzneal/tranmerc/internal/cli"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})

	if err := cli.NewRoot(logger).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
