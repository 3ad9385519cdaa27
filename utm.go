package tranmerc

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Hemisphere selects the UTM false northing.
type Hemisphere byte

// Hemispheres
const (
	HemisphereNorth Hemisphere = 'N'
	HemisphereSouth Hemisphere = 'S'
)

func (h Hemisphere) String() string {
	return string(h)
}

// ParseHemisphere accepts N/S in either case.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch s {
	case "N", "n":
		return HemisphereNorth, nil
	case "S", "s":
		return HemisphereSouth, nil
	}
	return 0, errHemisphere
}

// UTMCoord is a UTM coordinate
type UTMCoord struct {
	Zone       int
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
	Warning    string
}

func (c UTMCoord) String() string {
	return fmt.Sprintf("%d%s %.3f %.3f", c.Zone, c.Hemisphere, c.Easting, c.Northing)
}

// UTM is a UTM coordinate converter
type UTM struct {
	ellipsoid             Ellipsoid
	utmOverride           int
	transverseMercatorMap [61]*TransverseMercator
}

const (
	utmMinLat      = (-80.5 * math.Pi) / 180.0 // -80.5 degrees in radians
	utmMaxLat      = (84.5 * math.Pi) / 180.0  //  84.5 degrees in radians
	utmMinEasting  = 100000.0
	utmMaxEasting  = 900000.0
	utmMinNorthing = 0.0
	utmMaxNorthing = 10000000.0

	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	utmSouthNorthing = 10000000.0

	epsilonRadians = 1.75e-7 // approx 1.0e-5 degrees (~1 meter) in radians
)

var (
	errZone        = outOfRange(ParamZone, "Invalid Zone")
	errHemisphere  = invalidParameter(ParamHemisphere, "Invalid Hemisphere")
	errZoneParam   = invalidParameter(ParamZone, "Invalid Zone Override")
	errUTMLatitude = outOfRange(ParamLatitude, "Latitude out of range")
)

// NewUTM builds the 60 zone projections for an ellipsoid. override is the UTM
// override zone, 0 indicates no override.
func NewUTM(ellipsoid Ellipsoid, override int) (*UTM, error) {
	invF := ellipsoid.InverseFlattening()

	if !(ellipsoid.SemiMajorAxis > 0.0) {
		return nil, errSemiMajorAxis
	}
	if !(invF >= 250 && invF <= 350) {
		return nil, errFlattening
	}
	if override < 0 || override > 60 {
		return nil, errZoneParam
	}

	u := &UTM{
		ellipsoid:   ellipsoid,
		utmOverride: override,
	}
	for zone := 1; zone <= 60; zone++ {
		var err error
		u.transverseMercatorMap[zone], err = NewFromParameters(ellipsoid, zoneParameters(zone, 0))
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

func zoneParameters(zone int, falseNorthing float64) Parameters {
	var centralMeridian float64
	if zone >= 31 {
		centralMeridian = float64(6*zone-183) * math.Pi / 180
	} else {
		centralMeridian = float64(6*zone+177) * math.Pi / 180
	}
	return Parameters{
		CentralMeridian: centralMeridian,
		ScaleFactor:     utmScaleFactor,
		FalseEasting:    utmFalseEasting,
		FalseNorthing:   falseNorthing,
	}
}

// Ellipsoid returns the ellipsoid the zones are built on.
func (u *UTM) Ellipsoid() Ellipsoid {
	return u.ellipsoid
}

// Frame returns the Transverse Mercator projection of a zone with the false
// northing of the hemisphere applied.
func (u *UTM) Frame(zone int, hemisphere Hemisphere) (*TransverseMercator, error) {
	if zone < 1 || zone > 60 {
		return nil, errZone
	}
	switch hemisphere {
	case HemisphereNorth:
		return u.transverseMercatorMap[zone], nil
	case HemisphereSouth:
		return NewFromParameters(u.ellipsoid, zoneParameters(zone, utmSouthNorthing))
	}
	return nil, errHemisphere
}

// ConvertFromGeodetic converts geodetic (latitude and longitude) coordinates
// to UTM projection (zone, hemisphere, easting and northing) coordinates
// according to the current ellipsoid and UTM zone override parameters.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, utmZoneOverride int) (UTMCoord, error) {
	falseNorthing := 0.0
	longitude := geodeticCoordinates.Lng.Radians()
	latitude := geodeticCoordinates.Lat.Radians()
	if latitude < utmMinLat-epsilonRadians || latitude >= utmMaxLat+epsilonRadians {
		return UTMCoord{}, errUTMLatitude
	}
	if longitude < -math.Pi-epsilonRadians || longitude > 2*math.Pi+epsilonRadians {
		return UTMCoord{}, errLongitude
	}

	if latitude > -1.0e-9 && latitude < 0 {
		latitude = 0.0
	}

	if longitude < 0 {
		longitude += 2 * math.Pi
	}

	latDegrees := int(latitude * 180.0 / math.Pi)
	longDegrees := int(longitude * 180.0 / math.Pi)

	var zone int
	if longitude < math.Pi {
		zone = int(31 + (((longitude + 1.0e-10) * 180.0 / math.Pi) / 6.0))
	} else {
		zone = int((((longitude + 1.0e-10) * 180.0 / math.Pi) / 6.0) - 29)
	}

	if zone > 60 {
		zone = 1
	} else if zone < 0 {
		return UTMCoord{}, errLongitude
	}

	override := utmZoneOverride
	if override == 0 {
		override = u.utmOverride
	}
	if override != 0 {
		// allow UTM zone override up to +/- one zone of the calculated zone
		switch {
		case zone == 1 && override == 60, zone == 60 && override == 1:
			zone = override
		case zone-1 <= override && override <= zone+1:
			zone = override
		default:
			return UTMCoord{}, errZone
		}
	} else {
		zone = specialZone(zone, latDegrees, longDegrees)
	}

	transverseMercator := u.transverseMercatorMap[zone]
	hemisphere := HemisphereNorth
	if latitude < 0 {
		falseNorthing = utmSouthNorthing
		hemisphere = HemisphereSouth
	}

	mc, err := transverseMercator.ConvertFromGeodetic(s2.LatLng{Lng: s1.Angle(longitude), Lat: s1.Angle(latitude)})
	if err != nil {
		return UTMCoord{}, err
	}
	easting := mc.Easting
	northing := mc.Northing + falseNorthing
	if easting < utmMinEasting || easting > utmMaxEasting {
		return UTMCoord{}, errEasting
	}
	if northing < utmMinNorthing || northing > utmMaxNorthing {
		return UTMCoord{}, errNorthing
	}

	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
		Warning:    mc.Warning,
	}, nil
}

// specialZone applies the zone exceptions over southern Norway and Svalbard.
func specialZone(zone, latDegrees, longDegrees int) int {
	if latDegrees > 55 && latDegrees < 64 {
		if longDegrees > -1 && longDegrees < 3 {
			return 31
		}
		if longDegrees > 2 && longDegrees < 12 {
			return 32
		}
	}
	if latDegrees > 71 {
		switch {
		case longDegrees > -1 && longDegrees < 9:
			return 31
		case longDegrees > 8 && longDegrees < 21:
			return 33
		case longDegrees > 20 && longDegrees < 33:
			return 35
		case longDegrees > 32 && longDegrees < 42:
			return 37
		}
	}
	return zone
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting and
// northing) coordinates to geodetic (latitude and longitude) coordinates,
// according to the current ellipsoid parameters.
func (u *UTM) ConvertToGeodetic(utmCoordinates UTMCoord) (GeodeticCoords, error) {
	falseNorthing := 0.0
	zone := utmCoordinates.Zone
	hemisphere := utmCoordinates.Hemisphere
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing

	if zone < 1 || zone > 60 {
		return GeodeticCoords{}, errZone
	}
	if hemisphere != HemisphereSouth && hemisphere != HemisphereNorth {
		return GeodeticCoords{}, errHemisphere
	}
	if easting < utmMinEasting || easting > utmMaxEasting {
		return GeodeticCoords{}, errEasting
	}
	if northing < utmMinNorthing || northing > utmMaxNorthing {
		return GeodeticCoords{}, errNorthing
	}

	if hemisphere == HemisphereSouth {
		falseNorthing = utmSouthNorthing
	}

	gc, err := u.transverseMercatorMap[zone].Inverse(easting, northing-falseNorthing)
	if err != nil {
		return GeodeticCoords{}, err
	}

	latitude := gc.Lat.Radians()
	if latitude < utmMinLat-epsilonRadians || latitude >= utmMaxLat+epsilonRadians {
		return GeodeticCoords{}, errUTMLatitude
	}
	return gc, nil
}
