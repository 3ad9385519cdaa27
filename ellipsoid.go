package tranmerc

import "sort"

// Ellipsoid is a reference ellipsoid. Code is the two letter identifier used
// to select tabulated series coefficients.
type Ellipsoid struct {
	Code          string
	Name          string
	SemiMajorAxis float64 // meters
	Flattening    float64
}

// InverseFlattening returns 1/f.
func (e Ellipsoid) InverseFlattening() float64 {
	return 1 / e.Flattening
}

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = Ellipsoid{Code: "WE", Name: "WGS 84", SemiMajorAxis: 6378137.0, Flattening: 1 / 298.257223563}

var ellipsoids = map[string]Ellipsoid{}

func init() {
	for _, e := range []Ellipsoid{
		WGS84,
		{"RF", "Geodetic Reference System 1980", 6378137.0, 1 / 298.257222101},
		{"WD", "WGS 72", 6378135.0, 1 / 298.26},
		{"AA", "Airy 1830", 6377563.396, 1 / 299.3249646},
		{"AM", "Modified Airy", 6377340.189, 1 / 299.3249646},
		{"AN", "Australian National", 6378160.0, 1 / 298.25},
		{"BN", "Bessel 1841 (Namibia)", 6377483.865, 1 / 299.1528128},
		{"BR", "Bessel 1841 (Ethiopia Indonesia Japan Korea)", 6377397.155, 1 / 299.1528128},
		{"CC", "Clarke 1866", 6378206.4, 1 / 294.9786982},
		{"CD", "Clarke 1880", 6378249.145, 1 / 293.465},
		{"CG", "Clarke 1880 (IGN)", 6378249.2, 1 / 293.4660213},
		{"EA", "Everest (India 1830)", 6377276.345, 1 / 300.8017},
		{"EB", "Everest (Sabah Sarawak)", 6377298.556, 1 / 300.8017},
		{"EC", "Everest (India 1956)", 6377301.243, 1 / 300.8017},
		{"ED", "Everest (Malaysia 1969)", 6377295.664, 1 / 300.8017},
		{"EE", "Everest (Malaysia & Singapore 1948)", 6377304.063, 1 / 300.8017},
		{"FA", "Modified Fischer 1960", 6378155.0, 1 / 298.3},
		{"HE", "Helmert 1906", 6378200.0, 1 / 298.3},
		{"HO", "Hough 1960", 6378270.0, 1 / 297.0},
		{"ID", "Indonesian 1974", 6378160.0, 1 / 298.247},
		{"IN", "International 1924", 6378388.0, 1 / 297.0},
		{"KA", "Krassovsky 1940", 6378245.0, 1 / 298.3},
		{"SA", "South American 1969", 6378160.0, 1 / 298.25},
		{"WO", "War Office", 6378300.583, 1 / 296.0},
	} {
		ellipsoids[e.Code] = e
	}
}

// LookupEllipsoid returns the registered ellipsoid with the given code.
func LookupEllipsoid(code string) (Ellipsoid, bool) {
	e, ok := ellipsoids[code]
	return e, ok
}

// Ellipsoids returns every registered ellipsoid sorted by code.
func Ellipsoids() []Ellipsoid {
	ret := make([]Ellipsoid, 0, len(ellipsoids))
	for _, e := range ellipsoids {
		ret = append(ret, e)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Code < ret[j].Code })
	return ret
}
