package enginesim

import (
	"math"

	"github.com/gonum/floats"
)

// gauss returns the unit Gaussian bump exp(-((x-mu)/sigma)²/2).
// A vanishing sigma degenerates to an indicator on x == mu so the callers
// stay total even for pathological curve parameters.
func gauss(x, mu, sigma float64) float64 {
	if floats.EqualWithinAbs(sigma, 0, 1e-12) {
		if floats.EqualWithinAbs(x, mu, 1e-12) {
			return 1
		}
		return 0
	}
	d := (x - mu) / sigma
	return math.Exp(-0.5 * d * d)
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// posOrZero floors v at zero.
func posOrZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
