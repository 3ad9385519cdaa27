package tranmerc

import (
	"errors"
	"math"
	"testing"
)

func TestCheckLatLon(t *testing.T) {
	deg := math.Pi / 180
	tests := []struct {
		name     string
		lat, lon float64 // degrees, lon relative to the central meridian
		ok       bool
	}{
		{"on meridian", 10, 0, true},
		{"inside limit", 0, 69.9, true},
		{"west inside limit", 0, -69.9, true},
		{"outside limit", 0, 70.1, false},
		{"west outside limit", 0, -70.1, false},
		{"far side of the globe", 0, 180, true},
		{"near the antimeridian", 30, -175, true},
		{"ninety degrees away", 0, 90, false},
		{"near the north pole", 25, 90, true},
		{"near the south pole", -25, 90, true},
		{"just short of the pole zone", 19.9, 90, false},
		{"wrapped", 0, 359, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLatLon(tt.lat*deg, tt.lon*deg)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tt.ok {
				var te *Error
				if !errors.As(err, &te) || te.Param != ParamLongitude || !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("got %v, want out of range longitude", err)
				}
			}
		})
	}
}

func TestNormalizeLon(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, -math.Pi},
		{1.5 * math.Pi, -0.5 * math.Pi},
		{-1.5 * math.Pi, 0.5 * math.Pi},
		{2 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := normalizeLon(tt.in); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("normalizeLon(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
