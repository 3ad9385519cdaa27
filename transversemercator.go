// Package tranmerc converts between geodetic coordinates and Transverse
// Mercator projection coordinates using the eighth order Krüger series
// formulation from GeoTrans. Series coefficients are tabulated for common
// ellipsoids and computed from the flattening for any other.
package tranmerc

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	minScaleFactor = 0.1
	maxScaleFactor = 10.0
	minInvFlat     = 150.0

	// inverse flattening range over which the algorithm accuracy was tested
	testedMinInvFlat = 290.0
	testedMaxInvFlat = 301.0
)

// TransverseMercator provides conversions between Geodetic coordinates
// (latitude and longitude) and Transverse Mercator projection coordinates
// (easting and northing). It is immutable and safe for concurrent use.
type TransverseMercator struct {
	// Ellipsoid Parameters
	semiMajorAxis float64
	flattening    float64
	ellipsCode    string // 2 Letter ellipsoid code
	eps           float64

	coeff   seriesCoefficients
	k0r4    float64 // scale factor * R4
	k0r4inv float64
	warning string
	params  Parameters
	originE float64 // unshifted easting of the origin
	originN float64 // unshifted northing of the origin
	deltaE  float64 // allowed easting distance from the false easting
	deltaN  float64 // allowed northing distance from the false northing
}

// NewTransverseMercator constructs a new TransverseMercator converter.
// Angles are in radians. ellipsoidCode selects tabulated coefficients when it
// names a known ellipsoid; any other non-empty code is treated as user
// defined.
func NewTransverseMercator(ellipsoidSemiMajorAxis, ellipsoidFlattening, centralMeridian,
	latitudeOfTrueScale, falseEasting, falseNorthing, scaleFactor float64,
	ellipsoidCode string) (*TransverseMercator, error) {
	invFlattening := 1.0 / ellipsoidFlattening

	if ellipsoidCode == "" {
		return nil, errMissingEllipsoidCode
	}
	if !(ellipsoidSemiMajorAxis > 0.0) {
		return nil, errSemiMajorAxis
	}
	if !(invFlattening >= minInvFlat) {
		return nil, errFlattening
	}
	if !(latitudeOfTrueScale >= -math.Pi/2 && latitudeOfTrueScale <= math.Pi/2) {
		return nil, errOriginLatitude
	}
	if !(centralMeridian >= -math.Pi && centralMeridian <= 2*math.Pi) {
		return nil, errCentralMeridian
	}
	if !(scaleFactor >= minScaleFactor && scaleFactor <= maxScaleFactor) {
		return nil, errScaleFactor
	}

	if centralMeridian > math.Pi {
		centralMeridian -= 2 * math.Pi
	}

	t := &TransverseMercator{
		semiMajorAxis: ellipsoidSemiMajorAxis,
		flattening:    ellipsoidFlattening,
		ellipsCode:    ellipsoidCode,
		eps:           math.Sqrt(2*ellipsoidFlattening - ellipsoidFlattening*ellipsoidFlattening),
		params: Parameters{
			CentralMeridian: centralMeridian,
			OriginLatitude:  latitudeOfTrueScale,
			ScaleFactor:     scaleFactor,
			FalseEasting:    falseEasting,
			FalseNorthing:   falseNorthing,
		},
		deltaE: 20000000.0,
		deltaN: 10000000.0,
	}

	t.coeff = generateCoefficients(invFlattening, ellipsoidCode)
	t.k0r4 = t.coeff.r4oa * scaleFactor * ellipsoidSemiMajorAxis
	t.k0r4inv = 1.0 / t.k0r4

	if invFlattening < testedMinInvFlat || invFlattening > testedMaxInvFlat {
		t.warning = WarnEccentricity
	}

	// The origin may move from (0,0); this is represented by a change in
	// the false northing and easting values.
	var err error
	t.originE, t.originN, err = t.latLonToNorthingEasting(latitudeOfTrueScale, centralMeridian)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// NewFromParameters constructs a converter from an ellipsoid and a frame.
func NewFromParameters(e Ellipsoid, p Parameters) (*TransverseMercator, error) {
	return NewTransverseMercator(e.SemiMajorAxis, e.Flattening, p.CentralMeridian,
		p.OriginLatitude, p.FalseEasting, p.FalseNorthing, p.ScaleFactor, e.Code)
}

// Parameters returns the projection frame. The central meridian is
// normalized to (-Pi, Pi].
func (t *TransverseMercator) Parameters() Parameters {
	return t.params
}

// Ellipsoid returns the ellipsoid the converter was built for. Name is only
// set for registered codes.
func (t *TransverseMercator) Ellipsoid() Ellipsoid {
	e := Ellipsoid{Code: t.ellipsCode, SemiMajorAxis: t.semiMajorAxis, Flattening: t.flattening}
	if known, ok := LookupEllipsoid(t.ellipsCode); ok {
		e.Name = known.Name
	}
	return e
}

// Forward converts a longitude and latitude in radians to easting and
// northing. Latitude must lie in [-Pi/2, Pi/2] and longitude in [-Pi, 2*Pi].
func (t *TransverseMercator) Forward(longitude, latitude float64) (MapCoords, error) {
	if !(latitude >= -math.Pi/2 && latitude <= math.Pi/2) {
		return MapCoords{}, errLatitude
	}
	if !(longitude >= -math.Pi && longitude <= 2*math.Pi) {
		return MapCoords{}, errLongitude
	}

	easting, northing, err := t.latLonToNorthingEasting(latitude, normalizeLon(longitude))
	if err != nil {
		return MapCoords{}, err
	}

	return MapCoords{
		Easting:  easting + t.params.FalseEasting - t.originE,
		Northing: northing + t.params.FalseNorthing - t.originN,
		Warning:  t.warning,
	}, nil
}

// ConvertFromGeodetic converts geodetic coordinates to Transverse Mercator
// coordinates.
func (t *TransverseMercator) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (MapCoords, error) {
	return t.Forward(geodeticCoordinates.Lng.Radians(), geodeticCoordinates.Lat.Radians())
}

// ProjectPoint is ConvertFromGeodetic for a point with a height. The height
// is copied to the result unchanged.
func (t *TransverseMercator) ProjectPoint(p GeodeticCoords) (MapCoords, error) {
	mc, err := t.ConvertFromGeodetic(p.LatLng)
	if err != nil {
		return MapCoords{}, err
	}
	mc.Height = p.Height
	return mc, nil
}

// Inverse converts easting and northing to geodetic coordinates.
func (t *TransverseMercator) Inverse(easting, northing float64) (GeodeticCoords, error) {
	if !(easting >= t.params.FalseEasting-t.deltaE && easting <= t.params.FalseEasting+t.deltaE) {
		return GeodeticCoords{}, errEasting
	}
	if !(northing >= t.params.FalseNorthing-t.deltaN && northing <= t.params.FalseNorthing+t.deltaN) {
		return GeodeticCoords{}, errNorthing
	}

	easting -= t.params.FalseEasting - t.originE
	northing -= t.params.FalseNorthing - t.originN

	latitude, longitude := t.northingEastingToLatLon(northing, easting)
	longitude = normalizeLon(longitude)

	if math.Abs(latitude) > math.Pi/2 {
		return GeodeticCoords{}, errNorthing
	}
	if math.Abs(longitude) > math.Pi {
		return GeodeticCoords{}, errEasting
	}

	return GeodeticCoords{
		LatLng:  s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)},
		Warning: t.warning,
	}, nil
}

// ConvertToGeodetic converts Transverse Mercator coordinates to geodetic
// coordinates, keeping the height.
func (t *TransverseMercator) ConvertToGeodetic(mapProjectionCoordinates MapCoords) (GeodeticCoords, error) {
	gc, err := t.Inverse(mapProjectionCoordinates.Easting, mapProjectionCoordinates.Northing)
	if err != nil {
		return GeodeticCoords{}, err
	}
	gc.Height = mapProjectionCoordinates.Height
	return gc, nil
}

// latLonToNorthingEasting projects without the false origin applied.
func (t *TransverseMercator) latLonToNorthingEasting(latitude, longitude float64) (easting, northing float64, err error) {
	lambda := normalizeLon(longitude - t.params.CentralMeridian)
	if err := checkLatLon(latitude, lambda); err != nil {
		return 0, 0, err
	}

	cosLam := math.Cos(lambda)
	sinLam := math.Sin(lambda)

	//  Ellipsoid to sphere
	sinChi, cosChi := conformalSinCos(math.Sin(latitude), math.Cos(latitude), t.eps)

	//  Sphere to first plane: spherical transverse Mercator (u,v)
	U := math.Atanh(cosChi * sinLam)
	V := math.Atan2(sinChi, cosChi*cosLam)

	c2ku, s2ku := hyperbolicSeries(2.0 * U)
	c2kv, s2kv := trigSeries(2.0 * V)

	//  First plane to second plane
	xStar := 0.0
	yStar := 0.0
	for k := nTerms - 1; k >= 0; k-- {
		xStar += t.coeff.a[k] * s2ku[k] * c2kv[k]
		yStar += t.coeff.a[k] * c2ku[k] * s2kv[k]
	}
	xStar += U
	yStar += V

	// Apply isoperimetric radius and scale
	return t.k0r4 * xStar, t.k0r4 * yStar, nil
}

// northingEastingToLatLon inverts latLonToNorthingEasting.
func (t *TransverseMercator) northingEastingToLatLon(northing, easting float64) (latitude, longitude float64) {
	//  Undo scale change and factor R4
	xStar := t.k0r4inv * easting
	yStar := t.k0r4inv * northing

	c2kx, s2kx := hyperbolicSeries(2.0 * xStar)
	c2ky, s2ky := trigSeries(2.0 * yStar)

	//  Second plane (x*, y*) to first plane (u, v)
	U := 0.0
	V := 0.0
	for k := nTerms - 1; k >= 0; k-- {
		U += t.coeff.b[k] * s2kx[k] * c2ky[k]
		V += t.coeff.b[k] * c2kx[k] * s2ky[k]
	}
	U += xStar
	V += yStar

	//  First plane to sphere
	coshU := math.Cosh(U)
	sinhU := math.Sinh(U)
	cosV := math.Cos(V)
	sinV := math.Sin(V)

	var lambda float64
	if math.Abs(cosV) < 10e-12 && math.Abs(coshU) < 10e-12 {
		lambda = 0
	} else {
		lambda = math.Atan2(sinhU, cosV)
	}

	sinChi := sinV / coshU
	latitude = geodeticLat(sinChi, t.eps)

	// Longitude from Greenwich
	longitude = t.params.CentralMeridian + lambda
	return latitude, longitude
}
