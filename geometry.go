package tranmerc

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ProjectGeometry projects a geometry whose points are longitude/latitude
// pairs in degrees to easting/northing in meters. The input is not modified.
// The first point that fails to convert aborts the projection.
func (t *TransverseMercator) ProjectGeometry(g orb.Geometry) (orb.Geometry, error) {
	var firstErr error
	out := project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		if firstErr != nil {
			return orb.Point{math.NaN(), math.NaN()}
		}
		mc, err := t.Forward((s1.Angle(p[0]) * s1.Degree).Radians(), (s1.Angle(p[1]) * s1.Degree).Radians())
		if err != nil {
			firstErr = err
			return orb.Point{math.NaN(), math.NaN()}
		}
		return orb.Point{mc.Easting, mc.Northing}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// UnprojectGeometry is the inverse of ProjectGeometry.
func (t *TransverseMercator) UnprojectGeometry(g orb.Geometry) (orb.Geometry, error) {
	var firstErr error
	out := project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		if firstErr != nil {
			return orb.Point{math.NaN(), math.NaN()}
		}
		gc, err := t.Inverse(p[0], p[1])
		if err != nil {
			firstErr = err
			return orb.Point{math.NaN(), math.NaN()}
		}
		return orb.Point{gc.Lng.Degrees(), gc.Lat.Degrees()}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
