// Package config resolves tmconv settings and the projection frame catalog.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tzneal/tranmerc"
)

// Defaults shared by viper and the command line flags.
const (
	DefaultLogLevel     = "info"
	DefaultEllipsoid    = "WE"
	DefaultScaleFactor  = 0.9996
	DefaultFalseEasting = 500000.0
	DefaultAddr         = ":8080"
	EnvPrefix           = "TMCONV"
)

// Settings holds all tmconv configuration. Frame fields are in degrees
// and meters.
type Settings struct {
	LogLevel string `mapstructure:"log-level"`
	Catalog  string `mapstructure:"catalog"`
	Frame    string `mapstructure:"frame"`
	Proj4    string `mapstructure:"proj4"`
	Addr     string `mapstructure:"addr"`

	Explicit Frame `mapstructure:",squash"`
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("ellipsoid", DefaultEllipsoid)
	v.SetDefault("central-meridian", 0.0)
	v.SetDefault("origin-latitude", 0.0)
	v.SetDefault("scale-factor", DefaultScaleFactor)
	v.SetDefault("false-easting", DefaultFalseEasting)
	v.SetDefault("false-northing", 0.0)
	v.SetDefault("addr", DefaultAddr)
}

// NewViper returns a viper instance with defaults and TMCONV_* environment
// variables: TMCONV_CENTRAL_MERIDIAN → central-meridian.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads an optional configuration file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("problem reading configuration file: %w", err)
	}
	return nil
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	var errs []string

	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("log-level %q is not a valid level", s.LogLevel))
	}
	if s.Proj4 != "" && s.Frame != "" {
		errs = append(errs, "proj4 and frame are mutually exclusive")
	}
	if s.Proj4 != "" && !strings.HasPrefix(strings.TrimSpace(s.Proj4), "+") {
		errs = append(errs, "proj4 must be a PROJ.4 definition starting with '+'")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Projection builds the converter selected by the settings: a PROJ.4
// definition, a catalog frame, or the explicit frame fields, in that order.
// It also returns a short description of the selection for logging.
func (s *Settings) Projection(cat *Catalog) (*tranmerc.TransverseMercator, string, error) {
	switch {
	case s.Proj4 != "":
		tm, err := tranmerc.NewFromProj4(s.Proj4)
		if err != nil {
			return nil, "", fmt.Errorf("proj4 %q: %w", s.Proj4, err)
		}
		return tm, s.Proj4, nil
	case s.Frame != "":
		f, ok := cat.Lookup(s.Frame)
		if !ok {
			return nil, "", fmt.Errorf("frame %q is not in the catalog", s.Frame)
		}
		tm, err := f.Build()
		if err != nil {
			return nil, "", fmt.Errorf("frame %q: %w", s.Frame, err)
		}
		return tm, f.Name, nil
	}
	tm, err := s.Explicit.Build()
	if err != nil {
		return nil, "", fmt.Errorf("explicit frame: %w", err)
	}
	return tm, "explicit", nil
}
