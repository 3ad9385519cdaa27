package tranmerc

import "math"

// maxDeltaLong bounds the angular distance from the central meridian (or
// from a pole) inside which the series keep their accuracy.
const maxDeltaLong = (math.Pi * 70) / 180.0

// normalizeLon maps a longitude difference into [-Pi, Pi] with a single
// wrap, the way every angle in this package is normalized.
func normalizeLon(lon float64) float64 {
	if lon > math.Pi {
		lon -= 2 * math.Pi
	}
	if lon < -math.Pi {
		lon += 2 * math.Pi
	}
	return lon
}

// checkLatLon rejects points too far from both the central meridian and
// the poles.
func checkLatLon(latitude, deltaLon float64) error {
	deltaLon = normalizeLon(deltaLon)

	testAngle := math.Abs(deltaLon)
	if delta := math.Abs(deltaLon - math.Pi); delta < testAngle {
		testAngle = delta
	}
	if delta := math.Abs(deltaLon + math.Pi); delta < testAngle {
		testAngle = delta
	}

	// Close to a pole is valid at any longitude.
	if delta := math.Pi/2 - latitude; delta < testAngle {
		testAngle = delta
	}
	if delta := math.Pi/2 + latitude; delta < testAngle {
		testAngle = delta
	}

	if testAngle > maxDeltaLong {
		return errLongitude
	}
	return nil
}
