//go:build fastmath

package shaper

import "github.com/meko-christian/algo-approx"

// mathExpm1 computes exp(x)-1 using fast approximation.
// Loses relative precision near zero, which the atan stage tolerates.
func mathExpm1(x float64) float64 {
	return approx.FastExp(x) - 1
}
