// Package batch converts CSV coordinate streams.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"
	"github.com/tzneal/tranmerc"
	"github.com/tzneal/tranmerc/internal/metrics"
)

// Direction selects the conversion applied to each row.
type Direction string

// Directions
const (
	Forward Direction = metrics.Forward // latitude,longitude in degrees → easting,northing
	Inverse Direction = metrics.Inverse // easting,northing → latitude,longitude in degrees
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Forward, Inverse:
		return Direction(s), nil
	}
	return "", fmt.Errorf("direction must be %q or %q, got %q", Forward, Inverse, s)
}

// ErrorColumn is the trailing column holding the conversion error of a row.
const ErrorColumn = "error"

// Converter converts rows whose first two columns hold a coordinate pair.
// Remaining columns, such as a height, are copied unchanged. Every output row
// gets a trailing error column that is empty on success.
type Converter struct {
	TM        *tranmerc.TransverseMercator
	Direction Direction
	Header    bool // the first row holds column names
	Log       logrus.FieldLogger
}

// Stats summarizes a conversion run.
type Stats struct {
	Rows     int
	Failed   int
	Warnings int
}

// Convert reads CSV rows from r and writes converted rows to w. A malformed
// row is reported in its error column; only read, write and context
// errors stop the run.
func (c *Converter) Convert(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cw := csv.NewWriter(w)

	if c.Header {
		header, err := cr.Read()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("reading header: %w", err)
		}
		out := append([]string(nil), header...)
		if len(out) >= 2 {
			if c.Direction == Forward {
				out[0], out[1] = "easting", "northing"
			} else {
				out[0], out[1] = "latitude", "longitude"
			}
		}
		if err := cw.Write(append(out, ErrorColumn)); err != nil {
			return stats, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		out := append([]string(nil), record...)
		a, b, warning, err := c.convertRow(record)
		metrics.ObserveConversion(string(c.Direction), err, warning)
		var msg string
		switch {
		case err != nil:
			stats.Failed++
			msg = err.Error()
			c.Log.WithFields(logrus.Fields{
				"row":   stats.Rows,
				"error": err,
			}).Debug("row conversion failed")
		default:
			out[0], out[1] = a, b
			if warning != "" {
				stats.Warnings++
			}
		}
		if err := cw.Write(append(out, msg)); err != nil {
			return stats, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, err
	}
	c.Log.WithFields(logrus.Fields{
		"direction": c.Direction,
		"rows":      stats.Rows,
		"failed":    stats.Failed,
		"warnings":  stats.Warnings,
	}).Info("batch conversion finished")
	return stats, nil
}

var errShortRow = errors.New("row needs at least two columns")

func (c *Converter) convertRow(record []string) (a, b, warning string, err error) {
	if len(record) < 2 {
		return "", "", "", errShortRow
	}
	x, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return "", "", "", fmt.Errorf("column 1: %w", err)
	}
	y, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return "", "", "", fmt.Errorf("column 2: %w", err)
	}

	if c.Direction == Forward {
		mc, err := c.TM.ConvertFromGeodetic(s2.LatLngFromDegrees(x, y))
		if err != nil {
			return "", "", "", err
		}
		return formatMeters(mc.Easting), formatMeters(mc.Northing), mc.Warning, nil
	}
	gc, err := c.TM.Inverse(x, y)
	if err != nil {
		return "", "", "", err
	}
	return formatDegrees(gc.Lat.Degrees()), formatDegrees(gc.Lng.Degrees()), gc.Warning, nil
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 9, 64)
}
