package cli

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/tzneal/tranmerc"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	root := NewRoot(logger)
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func fields(t *testing.T, s string) []float64 {
	t.Helper()
	var ret []float64
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatalf("output %q: %v", s, err)
		}
		ret = append(ret, v)
	}
	return ret
}

func TestForwardCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"origin", []string{"--central-meridian", "3", "forward", "0", "3"}, "500000.000 0.000\n"},
		{"london", []string{"--central-meridian", "3", "forward", "51.5", "0"}, "291783.128 5709696.984\n"},
		{"catalog frame", []string{"--frame", "osgb36", "forward", "--", "52.5", "-1.5"}, "433938.159 289280.164\n"},
		{"proj4", []string{"--proj4", "+proj=utm +zone=31 +ellps=WGS84", "forward", "0", "3"}, "500000.000 0.000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForwardOutOfRange(t *testing.T) {
	_, err := run(t, "", "forward", "0", "80")
	if !errors.Is(err, tranmerc.ErrOutOfRange) {
		t.Errorf("err = %v, want out of range", err)
	}
}

func TestInverseCommand(t *testing.T) {
	got, err := run(t, "", "--central-meridian", "3", "inverse", "291783.12782402046", "5709696.9835733175")
	if err != nil {
		t.Fatal(err)
	}
	v := fields(t, got)
	if len(v) != 2 || math.Abs(v[0]-51.5) > 1e-9 || math.Abs(v[1]) > 1e-9 {
		t.Errorf("got %q", got)
	}
}

func TestBatchCommand(t *testing.T) {
	in := "lat,lon,height\n0,3,12.5\n"
	got, err := run(t, in, "--central-meridian", "3", "batch")
	if err != nil {
		t.Fatal(err)
	}
	if want := "easting,northing,height,error\n500000.000,0.000,12.5,\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	_, err = run(t, in, "batch", "--direction", "sideways")
	if err == nil {
		t.Error("expected an error for an unknown direction")
	}
}

func TestGeoJSONCommand(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{3, 0}))
	fc.Append(geojson.NewFeature(orb.LineString{{3, 0}, {0, 51.5}}))
	in, err := fc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	got, err := run(t, string(in), "--central-meridian", "3", "geojson")
	if err != nil {
		t.Fatal(err)
	}
	out, err := geojson.UnmarshalFeatureCollection([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	if p := out.Features[0].Geometry.(orb.Point); p != (orb.Point{500000, 0}) {
		t.Errorf("point = %v", p)
	}
	ls := out.Features[1].Geometry.(orb.LineString)
	if math.Abs(ls[1][0]-291783.12782402046) > 1e-6 || math.Abs(ls[1][1]-5709696.9835733175) > 1e-6 {
		t.Errorf("line = %v", ls)
	}

	back, err := run(t, got, "--central-meridian", "3", "geojson", "--direction", "inverse")
	if err != nil {
		t.Fatal(err)
	}
	out, err = geojson.UnmarshalFeatureCollection([]byte(back))
	if err != nil {
		t.Fatal(err)
	}
	ls = out.Features[1].Geometry.(orb.LineString)
	if math.Abs(ls[1][0]) > 1e-9 || math.Abs(ls[1][1]-51.5) > 1e-9 {
		t.Errorf("line = %v", ls)
	}
}

func TestListings(t *testing.T) {
	got, err := run(t, "", "frames")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"osgb36", "itm", "utm31n"} {
		if !strings.Contains(got, name) {
			t.Errorf("frames output lacks %s:\n%s", name, got)
		}
	}

	got, err = run(t, "", "ellipsoids")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(got), "\n"); len(lines) != len(tranmerc.Ellipsoids()) {
		t.Errorf("ellipsoids printed %d lines", len(lines))
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmconv.toml")
	data := "central-meridian = 3.0\nlog-level = \"warn\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := run(t, "", "--config", path, "forward", "0", "3")
	if err != nil {
		t.Fatal(err)
	}
	if got != "500000.000 0.000\n" {
		t.Errorf("got %q", got)
	}
}

func TestInvalidSettings(t *testing.T) {
	if _, err := run(t, "", "--log-level", "loud", "frames"); err == nil {
		t.Error("expected invalid log level error")
	}
	if _, err := run(t, "", "--frame", "nowhere", "forward", "0", "0"); err == nil {
		t.Error("expected unknown frame error")
	}
	if _, err := run(t, "", "--scale-factor", "20", "forward", "0", "0"); !errors.Is(err, tranmerc.ErrInvalidParameter) {
		t.Errorf("err = %v, want invalid parameter", err)
	}
}
