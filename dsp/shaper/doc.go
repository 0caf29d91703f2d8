// Package shaper implements the static diode-clipper nonlinearity of the amp.
//
// The transfer function follows the Shockley diode equation with a thermal
// voltage of 25.3 mV and an ideality factor of 1.68:
//
//	e = exp(0.1·x / (0.0253·1.68)) − 1
//	y = (2/π)·atan(e·d·16)
//
// where d is the drive as a linear factor. Positive half-waves saturate
// sooner than negative ones, giving the asymmetric clipping of a single
// forward-biased diode. The output is bounded in (−1, 1).
//
// Build with -tags fastmath to evaluate the exponential with
// github.com/meko-christian/algo-approx instead of math.Exp.
package shaper
