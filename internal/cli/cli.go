// Package cli implements the tmconv command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tzneal/tranmerc"
	"github.com/tzneal/tranmerc/internal/api"
	"github.com/tzneal/tranmerc/internal/batch"
	"github.com/tzneal/tranmerc/internal/config"
)

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// app carries the state shared by the commands of one invocation.
type app struct {
	cfg      *viper.Viper
	log      *logrus.Logger
	settings *config.Settings
	catalog  *config.Catalog
}

// NewRoot returns the tmconv command tree. Each call has its own
// configuration, so it can be executed more than once in a process.
func NewRoot(log *logrus.Logger) *cobra.Command {
	a := &app{cfg: config.NewViper(), log: log}

	root := &cobra.Command{
		Use:   "tmconv",
		Short: "Convert coordinates with the Transverse Mercator projection.",
		Long: `tmconv converts between geodetic coordinates (latitude and longitude in
degrees) and Transverse Mercator easting and northing (meters).

The projection is taken from --proj4, from a named --frame in the frame
catalog, or from the explicit frame flags. Settings may also come from a
configuration file (--config) or TMCONV_* environment variables.
Negative coordinates must follow "--", for example:
  tmconv forward -- -33.86 151.21`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
	}

	forwardCmd := &cobra.Command{
		Use:   "forward LATITUDE LONGITUDE",
		Short: "Project a latitude and longitude in degrees.",
		Args:  cobra.ExactArgs(2),
		RunE:  a.forward,
	}
	inverseCmd := &cobra.Command{
		Use:   "inverse EASTING NORTHING",
		Short: "Convert an easting and northing to latitude and longitude.",
		Args:  cobra.ExactArgs(2),
		RunE:  a.inverse,
	}
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert CSV rows from standard input.",
		Long: `batch converts CSV rows read from standard input. The first two columns
hold the coordinate pair; further columns, such as a height, are copied
unchanged. A trailing "error" column reports rows that failed.`,
		Args: cobra.NoArgs,
		RunE: a.batch,
	}
	geojsonCmd := &cobra.Command{
		Use:   "geojson",
		Short: "Project a GeoJSON FeatureCollection from standard input.",
		Args:  cobra.NoArgs,
		RunE:  a.geojson,
	}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP.",
		Args:  cobra.NoArgs,
		RunE:  a.serve,
	}
	framesCmd := &cobra.Command{
		Use:   "frames",
		Short: "List the frames in the catalog.",
		Args:  cobra.NoArgs,
		RunE:  a.frames,
	}
	ellipsoidsCmd := &cobra.Command{
		Use:   "ellipsoids",
		Short: "List the ellipsoid codes.",
		Args:  cobra.NoArgs,
		RunE:  a.ellipsoids,
	}
	root.AddCommand(forwardCmd, inverseCmd, batchCmd, geojsonCmd, serveCmd, framesCmd, ellipsoidsCmd)

	options := []option{
		{
			name:       "config",
			usage:      "config specifies the configuration file location.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "log-level is one of panic, fatal, error, warn, info, debug or trace.",
			defaultVal: config.DefaultLogLevel,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "catalog",
			usage:      "catalog is a TOML file of [[frame]] tables added to the built-in frames.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "frame",
			usage:      "frame selects a named frame from the catalog.",
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "proj4",
			usage:      `proj4 gives the projection as a PROJ.4 definition, e.g. "+proj=utm +zone=31 +ellps=WGS84".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "ellipsoid",
			usage:      "ellipsoid is a two letter ellipsoid code (see tmconv ellipsoids).",
			shorthand:  "e",
			defaultVal: config.DefaultEllipsoid,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "semi-major-axis",
			usage:      "semi-major-axis in meters defines a custom ellipsoid together with inverse-flattening.",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "inverse-flattening",
			usage:      "inverse-flattening defines a custom ellipsoid together with semi-major-axis.",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "central-meridian",
			usage:      "central-meridian in degrees.",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "origin-latitude",
			usage:      "origin-latitude (latitude of true scale) in degrees.",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "scale-factor",
			usage:      "scale-factor on the central meridian, between 0.1 and 10.",
			defaultVal: config.DefaultScaleFactor,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "false-easting",
			usage:      "false-easting in meters.",
			defaultVal: config.DefaultFalseEasting,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "false-northing",
			usage:      "false-northing in meters.",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "direction",
			usage:      "direction is forward (degrees to meters) or inverse (meters to degrees).",
			shorthand:  "d",
			defaultVal: string(batch.Forward),
			flagsets:   []*pflag.FlagSet{batchCmd.Flags(), geojsonCmd.Flags()},
		},
		{
			name:       "header",
			usage:      "header specifies that the first CSV row holds column names.",
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{batchCmd.Flags()},
		},
		{
			name:       "addr",
			usage:      "addr is the HTTP listen address.",
			defaultVal: config.DefaultAddr,
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
	}

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			a.cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return root
}

// setup reads the configuration file, if there is one, and the frame
// catalog.
func (a *app) setup() error {
	if err := config.ReadFile(a.cfg, a.cfg.GetString("config")); err != nil {
		return err
	}
	s, err := config.Load(a.cfg)
	if err != nil {
		return err
	}
	level, _ := logrus.ParseLevel(s.LogLevel)
	a.log.SetLevel(level)

	a.catalog, err = config.LoadCatalog(s.Catalog)
	if err != nil {
		return err
	}
	a.settings = s
	return nil
}

func (a *app) projection() (*tranmerc.TransverseMercator, string, error) {
	tm, desc, err := a.settings.Projection(a.catalog)
	if err != nil {
		return nil, "", err
	}
	a.log.WithFields(logrus.Fields{
		"projection": desc,
		"ellipsoid":  tm.Ellipsoid().Code,
	}).Debug("projection ready")
	return tm, desc, nil
}

func parseArgs(args []string) (x, y float64, err error) {
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, fmt.Errorf("first coordinate: %w", err)
	}
	if y, err = strconv.ParseFloat(args[1], 64); err != nil {
		return 0, 0, fmt.Errorf("second coordinate: %w", err)
	}
	return x, y, nil
}

func (a *app) warn(warning string) {
	if warning != "" {
		a.log.Warn(warning)
	}
}

func (a *app) forward(cmd *cobra.Command, args []string) error {
	lat, lon, err := parseArgs(args)
	if err != nil {
		return err
	}
	tm, _, err := a.projection()
	if err != nil {
		return err
	}
	mc, err := tm.ConvertFromGeodetic(s2.LatLngFromDegrees(lat, lon))
	if err != nil {
		return err
	}
	a.warn(mc.Warning)
	fmt.Fprintf(cmd.OutOrStdout(), "%.3f %.3f\n", mc.Easting, mc.Northing)
	return nil
}

func (a *app) inverse(cmd *cobra.Command, args []string) error {
	easting, northing, err := parseArgs(args)
	if err != nil {
		return err
	}
	tm, _, err := a.projection()
	if err != nil {
		return err
	}
	gc, err := tm.Inverse(easting, northing)
	if err != nil {
		return err
	}
	a.warn(gc.Warning)
	fmt.Fprintf(cmd.OutOrStdout(), "%.9f %.9f\n", gc.Lat.Degrees(), gc.Lng.Degrees())
	return nil
}

func (a *app) batch(cmd *cobra.Command, args []string) error {
	dir, err := batch.ParseDirection(a.cfg.GetString("direction"))
	if err != nil {
		return err
	}
	tm, _, err := a.projection()
	if err != nil {
		return err
	}
	c := &batch.Converter{
		TM:        tm,
		Direction: dir,
		Header:    a.cfg.GetBool("header"),
		Log:       a.log,
	}
	stats, err := c.Convert(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		a.log.WithField("failed", stats.Failed).Warn("some rows could not be converted")
	}
	return nil
}

func (a *app) geojson(cmd *cobra.Command, args []string) error {
	dir, err := batch.ParseDirection(a.cfg.GetString("direction"))
	if err != nil {
		return err
	}
	tm, _, err := a.projection()
	if err != nil {
		return err
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("decoding feature collection: %w", err)
	}

	for i, f := range fc.Features {
		if dir == batch.Forward {
			f.Geometry, err = tm.ProjectGeometry(f.Geometry)
		} else {
			f.Geometry, err = tm.UnprojectGeometry(f.Geometry)
		}
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}
	a.log.WithField("features", len(fc.Features)).Debug("projected feature collection")

	out, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func (a *app) serve(cmd *cobra.Command, args []string) error {
	tm, desc, err := a.projection()
	if err != nil {
		return err
	}
	srv := api.NewServer(a.cfg.GetString("addr"), a.log, tm, desc)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

func (a *app) frames(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, name := range a.catalog.Names() {
		f, _ := a.catalog.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\n", f.Name, f.Description)
	}
	return w.Flush()
}

func (a *app) ellipsoids(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range tranmerc.Ellipsoids() {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.9f\n", e.Code, e.Name, e.SemiMajorAxis, e.InverseFlattening())
	}
	return w.Flush()
}
