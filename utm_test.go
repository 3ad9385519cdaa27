package tranmerc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/tzneal/tranmerc"
)

func TestUTMRoundTrip(t *testing.T) {
	utm, err := tranmerc.NewUTM(tranmerc.WGS84, 0)
	if err != nil {
		t.Fatalf("error creating UTM converter: %s", err)
	}
	const latInc = 0.5
	const lngInc = 0.5
	converted := 0
	for lng := -190.0; lng < 190; lng += lngInc {
		for lat := -100.0; lat < 100; lat += latInc {
			geo := s2.LatLngFromDegrees(lat, lng)
			uc, err := utm.ConvertFromGeodetic(geo, 0)
			if err == nil {
				converted++
				geo2, err := utm.ConvertToGeodetic(uc)
				if err != nil {
					t.Fatalf("expected no error in round trip, got one at %s (%s)", geo, err)
				}
				if geo.Distance(geo2.LatLng) > 1e-9 {
					t.Fatalf("expected %s, got %s", geo, geo2.LatLng)
				}
			}
		}
	}
	if converted == 0 {
		t.Fatal("nothing converted")
	}
}

func TestUTMKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     tranmerc.UTMCoord
	}{
		{"origin", 0, 3, tranmerc.UTMCoord{Zone: 31, Hemisphere: tranmerc.HemisphereNorth, Easting: 500000, Northing: 0}},
		{"central meridian", 60, 15, tranmerc.UTMCoord{Zone: 33, Hemisphere: tranmerc.HemisphereNorth, Easting: 500000, Northing: 6651411.190362716}},
		{"norway", 60, 5, tranmerc.UTMCoord{Zone: 32, Hemisphere: tranmerc.HemisphereNorth, Easting: 276979.9264010064, Northing: 6658157.202407251}},
		{"sydney", -33.86, 151.21, tranmerc.UTMCoord{Zone: 56, Hemisphere: tranmerc.HemisphereSouth, Easting: 334416.3939896524, Northing: 6251925.360352391}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, err := tranmerc.DefaultUTMConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(tt.lat, tt.lng), 0)
			if err != nil {
				t.Fatal(err)
			}
			if uc.Zone != tt.want.Zone || uc.Hemisphere != tt.want.Hemisphere {
				t.Fatalf("got %s, expected %s", uc, tt.want)
			}
			if math.Abs(uc.Easting-tt.want.Easting) > 1e-6 || math.Abs(uc.Northing-tt.want.Northing) > 1e-6 {
				t.Fatalf("got %s, expected %s", uc, tt.want)
			}
		})
	}
}

func TestUTMSpecialZones(t *testing.T) {
	tests := []struct {
		lat, lng float64
		zone     int
	}{
		{60, 2.5, 31},
		{60, 3.5, 32},
		{63.5, 11.5, 32},
		{64.5, 3.5, 31},
		{78, 8.5, 31},
		{78, 10, 33},
		{78, 20.5, 33},
		{78, 21.5, 35},
		{78, 32.5, 35},
		{78, 33.5, 37},
		{78, 41.5, 37},
		{78, 42.5, 38},
	}
	for _, tt := range tests {
		uc, err := tranmerc.DefaultUTMConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(tt.lat, tt.lng), 0)
		if err != nil {
			t.Fatalf("%g %g: %s", tt.lat, tt.lng, err)
		}
		if uc.Zone != tt.zone {
			t.Errorf("%g %g: got zone %d, expected %d", tt.lat, tt.lng, uc.Zone, tt.zone)
		}
	}
}

func TestUTMOverride(t *testing.T) {
	geo := s2.LatLngFromDegrees(60, 15)

	uc, err := tranmerc.DefaultUTMConverter.ConvertFromGeodetic(geo, 32)
	if err != nil {
		t.Fatal(err)
	}
	if uc.Zone != 32 {
		t.Errorf("got zone %d, expected 32", uc.Zone)
	}

	_, err = tranmerc.DefaultUTMConverter.ConvertFromGeodetic(geo, 35)
	var te *tranmerc.Error
	if !errors.As(err, &te) || te.Param != tranmerc.ParamZone {
		t.Errorf("got %v, expected a zone error", err)
	}

	// Zones 1 and 60 are neighbors.
	uc, err = tranmerc.DefaultUTMConverter.ConvertFromGeodetic(s2.LatLngFromDegrees(60, -179.5), 60)
	if err != nil {
		t.Fatal(err)
	}
	if uc.Zone != 60 {
		t.Errorf("got zone %d, expected 60", uc.Zone)
	}

	utm, err := tranmerc.NewUTM(tranmerc.WGS84, 32)
	if err != nil {
		t.Fatal(err)
	}
	uc, err = utm.ConvertFromGeodetic(geo, 0)
	if err != nil {
		t.Fatal(err)
	}
	if uc.Zone != 32 {
		t.Errorf("converter override: got zone %d, expected 32", uc.Zone)
	}
}

func TestUTMErrors(t *testing.T) {
	airy, _ := tranmerc.LookupEllipsoid("AA")
	newTests := []struct {
		name      string
		ellipsoid tranmerc.Ellipsoid
		override  int
		param     string
	}{
		{"zero axis", tranmerc.Ellipsoid{Code: "UD", Flattening: 1 / 298.0}, 0, tranmerc.ParamSemiMajorAxis},
		{"flat", tranmerc.Ellipsoid{Code: "UD", SemiMajorAxis: 6378137, Flattening: 1 / 200.0}, 0, tranmerc.ParamEllipsoidFlattening},
		{"override", airy, 61, tranmerc.ParamZone},
	}
	for _, tt := range newTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tranmerc.NewUTM(tt.ellipsoid, tt.override)
			var te *tranmerc.Error
			if !errors.As(err, &te) || te.Param != tt.param || !errors.Is(err, tranmerc.ErrInvalidParameter) {
				t.Fatalf("got %v, expected invalid %s", err, tt.param)
			}
		})
	}

	utm := tranmerc.DefaultUTMConverter
	if _, err := utm.ConvertFromGeodetic(s2.LatLngFromDegrees(85, 0), 0); !errors.Is(err, tranmerc.ErrOutOfRange) {
		t.Errorf("latitude 85: got %v", err)
	}
	if _, err := utm.ConvertFromGeodetic(s2.LatLngFromDegrees(-81, 0), 0); !errors.Is(err, tranmerc.ErrOutOfRange) {
		t.Errorf("latitude -81: got %v", err)
	}

	inverseTests := []struct {
		name  string
		uc    tranmerc.UTMCoord
		param string
	}{
		{"zone", tranmerc.UTMCoord{Zone: 0, Hemisphere: tranmerc.HemisphereNorth, Easting: 500000}, tranmerc.ParamZone},
		{"hemisphere", tranmerc.UTMCoord{Zone: 31, Hemisphere: 'X', Easting: 500000}, tranmerc.ParamHemisphere},
		{"easting", tranmerc.UTMCoord{Zone: 31, Hemisphere: tranmerc.HemisphereNorth, Easting: 50}, tranmerc.ParamEasting},
		{"northing", tranmerc.UTMCoord{Zone: 31, Hemisphere: tranmerc.HemisphereNorth, Easting: 500000, Northing: -1}, tranmerc.ParamNorthing},
	}
	for _, tt := range inverseTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := utm.ConvertToGeodetic(tt.uc)
			var te *tranmerc.Error
			if !errors.As(err, &te) || te.Param != tt.param {
				t.Fatalf("got %v, expected %s error", err, tt.param)
			}
		})
	}
}

func TestUTMFrame(t *testing.T) {
	utm := tranmerc.DefaultUTMConverter
	geo := s2.LatLngFromDegrees(-33.86, 151.21)
	uc, err := utm.ConvertFromGeodetic(geo, 0)
	if err != nil {
		t.Fatal(err)
	}

	tm, err := utm.Frame(56, tranmerc.HemisphereSouth)
	if err != nil {
		t.Fatal(err)
	}
	mc, err := tm.ConvertFromGeodetic(geo)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mc.Easting-uc.Easting) > 1e-6 || math.Abs(mc.Northing-uc.Northing) > 1e-6 {
		t.Errorf("frame got %f %f, UTM got %s", mc.Easting, mc.Northing, uc)
	}
	if p := tm.Parameters(); p.FalseNorthing != 10000000 || p.ScaleFactor != 0.9996 {
		t.Errorf("got %+v", p)
	}

	if _, err := utm.Frame(61, tranmerc.HemisphereNorth); !errors.Is(err, tranmerc.ErrOutOfRange) {
		t.Errorf("zone 61: got %v", err)
	}
	if _, err := utm.Frame(31, 'E'); !errors.Is(err, tranmerc.ErrInvalidParameter) {
		t.Errorf("hemisphere E: got %v", err)
	}
	if utm.Ellipsoid() != tranmerc.WGS84 {
		t.Errorf("got %+v", utm.Ellipsoid())
	}
}

func TestUTMCoordString(t *testing.T) {
	uc := tranmerc.UTMCoord{Zone: 56, Hemisphere: tranmerc.HemisphereSouth, Easting: 334416.3939896524, Northing: 6251925.360352391}
	if got := uc.String(); got != "56S 334416.394 6251925.360" {
		t.Errorf("got %q", got)
	}
}

func TestParseHemisphere(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want tranmerc.Hemisphere
	}{{"N", tranmerc.HemisphereNorth}, {"n", tranmerc.HemisphereNorth}, {"S", tranmerc.HemisphereSouth}, {"s", tranmerc.HemisphereSouth}} {
		got, err := tranmerc.ParseHemisphere(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("%q: got %v %v", tt.in, got, err)
		}
	}
	if _, err := tranmerc.ParseHemisphere("north"); !errors.Is(err, tranmerc.ErrInvalidParameter) {
		t.Errorf("got %v", err)
	}
}
