package tranmerc

import (
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
)

// UserDefinedCode is the ellipsoid code given to shapes that match no
// registered ellipsoid. It has no tabulated coefficients.
const UserDefinedCode = "UD"

// proj4Ellipsoids maps PROJ ellipsoid names to registry codes.
var proj4Ellipsoids = map[string]string{
	"WGS84":    "WE",
	"GRS80":    "RF",
	"WGS7":     "WD",
	"airy":     "AA",
	"mod_airy": "AM",
	"aust_SA":  "AN",
	"bessel":   "BR",
	"bess_nam": "BN",
	"clrk66":   "CC",
	"clrk80":   "CD",
	"evrst30":  "EA",
	"evrstSS":  "EB",
	"evrst56":  "EC",
	"evrst69":  "ED",
	"evrst48":  "EE",
	"fschr60m": "FA",
	"helmert":  "HE",
	"hough":    "HO",
	"intl":     "IN",
	"krass":    "KA",
}

// NewFromProj4 constructs a converter from a PROJ.4 definition such as
// "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +ellps=airy"
// or "+proj=utm +zone=33 +south +datum=WGS84". Only the tmerc and utm
// projections are accepted.
func NewFromProj4(def string) (*TransverseMercator, error) {
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidParameter, Param: ParamProjection, msg: err.Error()}
	}

	var p Parameters
	switch sr.Name {
	case "tmerc":
		p = Parameters{
			CentralMeridian: orZero(sr.Long0),
			OriginLatitude:  orZero(sr.Lat0),
			ScaleFactor:     sr.K0,
			FalseEasting:    orZero(sr.X0),
			FalseNorthing:   orZero(sr.Y0),
		}
	case "utm":
		if math.IsNaN(sr.Zone) {
			return nil, invalidParameter(ParamZone, "utm definition has no zone")
		}
		zone := int(math.Abs(sr.Zone))
		if zone < 1 || zone > 60 {
			return nil, errZoneParam
		}
		// +proj=utm places every zone on 6z-183 degrees.
		p = Parameters{
			CentralMeridian: float64(6*zone-183) * math.Pi / 180,
			ScaleFactor:     utmScaleFactor,
			FalseEasting:    utmFalseEasting,
		}
		if sr.UTMSouth {
			p.FalseNorthing = utmSouthNorthing
		}
	default:
		return nil, invalidParameter(ParamProjection,
			fmt.Sprintf("unsupported projection %q", sr.Name))
	}

	return NewFromParameters(proj4Ellipsoid(sr), p)
}

// proj4Ellipsoid returns the registry ellipsoid named by the definition if
// its shape agrees, then any registry ellipsoid of the same shape, else a
// user defined ellipsoid with the parsed shape.
func proj4Ellipsoid(sr *proj.SR) Ellipsoid {
	var f float64
	if sr.A != sr.B {
		f = (sr.A - sr.B) / sr.A
	}
	if code, ok := proj4Ellipsoids[sr.Ellps]; ok {
		// PROJ gives some ellipsoids by semi-minor axis instead of inverse
		// flattening, so the named match is loose.
		if e, ok := LookupEllipsoid(code); ok && sameShape(e, sr.A, f, 1e-5) {
			return e
		}
	}
	for _, e := range Ellipsoids() {
		if sameShape(e, sr.A, f, 1e-10) {
			return e
		}
	}
	return Ellipsoid{Code: UserDefinedCode, SemiMajorAxis: sr.A, Flattening: f}
}

// sameShape compares inverse flattening with a relative tolerance.
func sameShape(e Ellipsoid, a, f, tol float64) bool {
	if math.Abs(e.SemiMajorAxis-a) > 1e-3 || f == 0 {
		return false
	}
	return math.Abs(e.InverseFlattening()-1/f)/e.InverseFlattening() < tol
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
