package tranmerc

import "math"

const (
	maxLatIterations = 30
	latTolerance     = 1.0e-12
)

// conformalSinCos converts geodetic latitude, given by its sine and cosine,
// to the sine and cosine of the conformal latitude chi. Chi itself is never
// formed.
func conformalSinCos(sinPhi, cosPhi, e float64) (sinChi, cosChi float64) {
	p := math.Exp(e * math.Atanh(e*sinPhi))
	part1 := (1 + sinPhi) / p
	part2 := (1 - sinPhi) * p
	denom := part1 + part2
	return (part1 - part2) / denom, 2 * cosPhi / denom
}

// geodeticLat recovers geodetic latitude from the sine of the conformal
// latitude by fixed point iteration.
func geodeticLat(sinChi, e float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for n := 0; n < maxLatIterations; n++ {
		p := math.Exp(e * math.Atanh(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) /
			(onePlusSinChi*pSq + oneMinusSinChi)

		if math.Abs(s-sOld) < latTolerance {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}
