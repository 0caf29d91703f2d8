//go:build !fastmath

package shaper

import "math"

// mathExpm1 computes exp(x)-1 using standard library math.
func mathExpm1(x float64) float64 {
	return math.Expm1(x)
}
