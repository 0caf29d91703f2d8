package core

import "math"

// MinGainDB is the level at or below which a decibel gain is treated as
// silence. Converting anything lower would only produce subnormal factors.
const MinGainDB = -100.0

// denormalThreshold is the magnitude below which FlushDenormals returns zero.
const denormalThreshold = 1e-30

// Clamp limits value to the inclusive range [lo, hi].
// NaN is mapped to lo so that no stage ever propagates it.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo || math.IsNaN(value) {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual reports whether a and b are equal within eps (absolute or relative).
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = 1e-12
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
func FlushDenormals(x float64) float64 {
	if x > -denormalThreshold && x < denormalThreshold {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// DBToGain is DBToLinear hardened for the audio path: non-finite input is
// unity gain, and anything at or below MinGainDB is exactly zero.
func DBToGain(db float64) float64 {
	switch {
	case math.IsNaN(db) || math.IsInf(db, 1):
		return 1
	case db <= MinGainDB:
		return 0
	default:
		return math.Pow(10, db/20)
	}
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
