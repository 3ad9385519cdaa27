package tranmerc

import "github.com/golang/geo/s2"

// MapCoords is a projected coordinate in meters.
type MapCoords struct {
	Easting  float64
	Northing float64
	Height   float64
	// Warning is non-empty when the conversion succeeded with reduced
	// accuracy confidence.
	Warning string
}

// GeodeticCoords is a geodetic coordinate. Height is in meters and passes
// through ProjectPoint and ConvertToGeodetic unchanged.
type GeodeticCoords struct {
	s2.LatLng
	Height  float64
	Warning string
}

// Parameters describes a Transverse Mercator projection frame. Angles are in
// radians, offsets in meters.
type Parameters struct {
	CentralMeridian float64
	OriginLatitude  float64
	ScaleFactor     float64
	FalseEasting    float64
	FalseNorthing   float64
}
