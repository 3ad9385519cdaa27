package tranmerc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/tzneal/tranmerc"
)

func TestNewFromProj4(t *testing.T) {
	tm, err := tranmerc.NewFromProj4("+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +ellps=airy +units=m +no_defs")
	if err != nil {
		t.Fatal(err)
	}
	if code := tm.Ellipsoid().Code; code != "AA" {
		t.Errorf("got ellipsoid %s, expected AA", code)
	}
	want := osgb(t)
	for _, p := range []s2.LatLng{
		s2.LatLngFromDegrees(49, -2),
		s2.LatLngFromDegrees(52.5, -1.5),
		s2.LatLngFromDegrees(58.6, -3.1),
		s2.LatLngFromDegrees(50.1, 1.7),
	} {
		got, err := tm.ConvertFromGeodetic(p)
		if err != nil {
			t.Fatal(err)
		}
		exp, err := want.ConvertFromGeodetic(p)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got.Easting-exp.Easting) > 1e-6 || math.Abs(got.Northing-exp.Northing) > 1e-6 {
			t.Errorf("%s: got %f %f, expected %f %f", p, got.Easting, got.Northing, exp.Easting, exp.Northing)
		}
	}
}

func TestProj4UTM(t *testing.T) {
	tm, err := tranmerc.NewFromProj4("+proj=utm +zone=56 +south +datum=WGS84 +units=m +no_defs")
	if err != nil {
		t.Fatal(err)
	}
	if code := tm.Ellipsoid().Code; code != "WE" {
		t.Errorf("got ellipsoid %s, expected WE", code)
	}
	p := tm.Parameters()
	if p.FalseNorthing != 10000000 || p.FalseEasting != 500000 || p.ScaleFactor != 0.9996 ||
		math.Abs(p.CentralMeridian-rad(153)) > 1e-15 {
		t.Errorf("got %+v", p)
	}

	mc, err := tm.ConvertFromGeodetic(s2.LatLngFromDegrees(-33.86, 151.21))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mc.Easting-334416.3939896524) > 1e-6 || math.Abs(mc.Northing-6251925.360352391) > 1e-6 {
		t.Errorf("got %f %f", mc.Easting, mc.Northing)
	}
}

func TestProj4Ellipsoids(t *testing.T) {
	tests := []struct {
		def  string
		code string
	}{
		{"+proj=tmerc +ellps=WGS84", "WE"},
		{"+proj=tmerc +ellps=GRS80", "RF"},
		{"+proj=tmerc +ellps=intl", "IN"},
		{"+proj=tmerc +ellps=clrk66", "CC"},
		{"+proj=tmerc +ellps=bessel", "BR"},
		{"+proj=tmerc +a=6378388 +rf=297", "IN"},
		{"+proj=tmerc +a=6378000 +rf=297.5", tranmerc.UserDefinedCode},
		{"+proj=tmerc +a=6370997 +b=6370997", tranmerc.UserDefinedCode},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			tm, err := tranmerc.NewFromProj4(tt.def)
			if err != nil {
				t.Fatal(err)
			}
			if code := tm.Ellipsoid().Code; code != tt.code {
				t.Errorf("got ellipsoid %s, expected %s", code, tt.code)
			}
			p := tm.Parameters()
			if p.ScaleFactor != 1 || p.CentralMeridian != 0 || p.FalseEasting != 0 {
				t.Errorf("unset values should default to zero and a unit scale, got %+v", p)
			}
		})
	}

	tm, err := tranmerc.NewFromProj4("+proj=tmerc +a=6378000 +rf=297.5")
	if err != nil {
		t.Fatal(err)
	}
	if e := tm.Ellipsoid(); e.SemiMajorAxis != 6378000 || math.Abs(e.InverseFlattening()-297.5) > 1e-6 {
		t.Errorf("got %+v", e)
	}
}

func TestProj4Errors(t *testing.T) {
	tests := []struct {
		name  string
		def   string
		param string
	}{
		{"not proj4", "WGS 84 / UTM", tranmerc.ParamProjection},
		{"unknown field", "+proj=tmerc +bogus=1", tranmerc.ParamProjection},
		{"other projection", "+proj=merc +ellps=WGS84", tranmerc.ParamProjection},
		{"utm without zone", "+proj=utm +ellps=WGS84", tranmerc.ParamZone},
		{"utm zone too large", "+proj=utm +zone=61 +ellps=WGS84", tranmerc.ParamZone},
		{"bad scale", "+proj=tmerc +k=0.01 +ellps=WGS84", tranmerc.ParamScaleFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := tranmerc.NewFromProj4(tt.def)
			if tm != nil {
				t.Fatal("expected no converter")
			}
			var te *tranmerc.Error
			if !errors.As(err, &te) || te.Param != tt.param || !errors.Is(err, tranmerc.ErrInvalidParameter) {
				t.Fatalf("got %v, expected invalid %s", err, tt.param)
			}
		})
	}
}
