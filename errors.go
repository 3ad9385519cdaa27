package tranmerc

import "errors"

// Error kinds. Every *Error unwraps to one of these.
var (
	// ErrInvalidParameter reports a bad ellipsoid or projection parameter.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrOutOfRange reports a coordinate outside the area the projection
	// can convert.
	ErrOutOfRange = errors.New("out of range")
)

// WarnEccentricity is attached to results computed on an ellipsoid whose
// inverse flattening is outside [290, 301].
const WarnEccentricity = "Eccentricity is outside range that algorithm accuracy has been tested."

// Parameter names carried by *Error.
const (
	ParamEllipsoidCode       = "invalidEllipsoidCode"
	ParamSemiMajorAxis       = "semiMajorAxis"
	ParamEllipsoidFlattening = "ellipsoidFlattening"
	ParamOriginLatitude      = "originLatitude"
	ParamCentralMeridian     = "centralMeridian"
	ParamScaleFactor         = "scaleFactor"
	ParamLatitude            = "latitude"
	ParamLongitude           = "longitude"
	ParamEasting             = "easting"
	ParamNorthing            = "northing"
	ParamZone                = "zone"
	ParamHemisphere          = "hemisphere"
	ParamProjection          = "projection"
)

// Error is returned for every parameter or range violation.
type Error struct {
	Kind  error  // ErrInvalidParameter or ErrOutOfRange
	Param string // one of the Param constants
	msg   string
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap lets errors.Is match the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidParameter(param, msg string) error {
	return &Error{Kind: ErrInvalidParameter, Param: param, msg: msg}
}

func outOfRange(param, msg string) error {
	return &Error{Kind: ErrOutOfRange, Param: param, msg: msg}
}

// Messages follow the GeoTrans error text.
var (
	errMissingEllipsoidCode = invalidParameter(ParamEllipsoidCode, "Invalid ellipsoid code")
	errSemiMajorAxis        = invalidParameter(ParamSemiMajorAxis, "Ellipsoid semi-major axis must be greater than zero")
	errFlattening           = invalidParameter(ParamEllipsoidFlattening, "Inverse flattening must be between 250 and 350")
	errOriginLatitude       = invalidParameter(ParamOriginLatitude, "Origin Latitude (or Standard Parallel or Latitude of True Scale) out of range")
	errCentralMeridian      = invalidParameter(ParamCentralMeridian, "Central Meridian out of range")
	errScaleFactor          = invalidParameter(ParamScaleFactor, "Scale Factor out of range")

	errLatitude  = outOfRange(ParamLatitude, "Latitude out of range")
	errLongitude = outOfRange(ParamLongitude, "Longitude out of range")
	errEasting   = outOfRange(ParamEasting, "Easting/X out of range")
	errNorthing  = outOfRange(ParamNorthing, "Northing/Y out of range")
)
