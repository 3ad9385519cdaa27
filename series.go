package tranmerc

import "math"

// hyperbolicSeries returns c[k] = cosh((k+1)·twoX) and s[k] = sinh((k+1)·twoX)
// for k = 0..7, built from the first pair with double angle and sum
// identities.
func hyperbolicSeries(twoX float64) (c, s [maxTerms]float64) {
	c[0] = math.Cosh(twoX)
	s[0] = math.Sinh(twoX)
	c[1] = 2.0*c[0]*c[0] - 1.0
	s[1] = 2.0 * c[0] * s[0]
	c[2] = c[0]*c[1] + s[0]*s[1]
	s[2] = c[1]*s[0] + c[0]*s[1]
	c[3] = 2.0*c[1]*c[1] - 1.0
	s[3] = 2.0 * c[1] * s[1]
	c[4] = c[0]*c[3] + s[0]*s[3]
	s[4] = c[3]*s[0] + c[0]*s[3]
	c[5] = 2.0*c[2]*c[2] - 1.0
	s[5] = 2.0 * c[2] * s[2]
	c[6] = c[0]*c[5] + s[0]*s[5]
	s[6] = c[5]*s[0] + c[0]*s[5]
	c[7] = 2.0*c[3]*c[3] - 1.0
	s[7] = 2.0 * c[3] * s[3]
	return c, s
}

// trigSeries returns c[k] = cos((k+1)·twoY) and s[k] = sin((k+1)·twoY)
// for k = 0..7.
func trigSeries(twoY float64) (c, s [maxTerms]float64) {
	c[0] = math.Cos(twoY)
	s[0] = math.Sin(twoY)
	c[1] = 2.0*c[0]*c[0] - 1.0
	s[1] = 2.0 * c[0] * s[0]
	c[2] = c[1]*c[0] - s[1]*s[0]
	s[2] = c[1]*s[0] + c[0]*s[1]
	c[3] = 2.0*c[1]*c[1] - 1.0
	s[3] = 2.0 * c[1] * s[1]
	c[4] = c[3]*c[0] - s[3]*s[0]
	s[4] = c[3]*s[0] + c[0]*s[3]
	c[5] = 2.0*c[2]*c[2] - 1.0
	s[5] = 2.0 * c[2] * s[2]
	c[6] = c[5]*c[0] - s[5]*s[0]
	s[6] = c[5]*s[0] + c[0]*s[5]
	c[7] = 2.0*c[3]*c[3] - 1.0
	s[7] = 2.0 * c[3] * s[3]
	return c, s
}
