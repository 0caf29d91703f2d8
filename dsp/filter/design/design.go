package design

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

// DefaultQ is the Butterworth Q used by Highpass.
const DefaultQ = 1 / math.Sqrt2

const (
	// minQ keeps alpha finite; Q values below it are raised to it.
	minQ = 1e-3
	// minGain is the smallest linear gain a designer accepts (-200 dB).
	minGain = 1e-10
	// edgeFraction keeps clamped corner frequencies strictly inside (0, fs/2).
	edgeFraction = 1e-4
	// fallbackSampleRate is used when the caller passes an unusable rate.
	fallbackSampleRate = 44100.0
)

// Highpass designs a Butterworth (Q = 1/sqrt(2)) highpass at freq Hz.
func Highpass(sampleRate, freq float64) biquad.Coefficients {
	return HighpassQ(sampleRate, freq, DefaultQ)
}

// HighpassQ designs a resonant highpass at freq Hz with quality factor q.
func HighpassQ(sampleRate, freq, q float64) biquad.Coefficients {
	cw, alpha := prewarp(sampleRate, freq, q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

// Lowpass designs a lowpass at freq Hz with quality factor q.
func Lowpass(sampleRate, freq, q float64) biquad.Coefficients {
	cw, alpha := prewarp(sampleRate, freq, q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

// Peaking designs a peaking-EQ section centred on freq Hz. gainLinear is the
// amplitude gain at the centre frequency (1 = flat).
func Peaking(sampleRate, freq, q, gainLinear float64) biquad.Coefficients {
	cw, alpha := prewarp(sampleRate, freq, q)
	a := shelfAmplitude(gainLinear)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalize(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs a low-shelf section with corner freq Hz. gainLinear is the
// asymptotic amplitude gain below the corner.
func LowShelf(sampleRate, freq, q, gainLinear float64) biquad.Coefficients {
	cw, alpha := prewarp(sampleRate, freq, q)
	a := shelfAmplitude(gainLinear)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalize(b0, b1, b2, a0, a1, a2)
}

// ClampFrequency maps freq into the open interval (0, sampleRate/2).
func ClampFrequency(sampleRate, freq float64) float64 {
	sampleRate = clampSampleRate(sampleRate)
	nyquist := sampleRate / 2
	lo := nyquist * edgeFraction
	hi := nyquist * (1 - edgeFraction)

	switch {
	case math.IsNaN(freq) || freq < lo:
		return lo
	case freq > hi:
		return hi
	default:
		return freq
	}
}

// ClampQ maps q into (0, +Inf); non-finite or non-positive values become minQ
// (NaN) or the nearest bound.
func ClampQ(q float64) float64 {
	switch {
	case math.IsNaN(q) || q < minQ:
		return minQ
	case math.IsInf(q, 1):
		return math.MaxFloat32
	default:
		return q
	}
}

// ClampGain maps a linear gain into (0, +Inf).
func ClampGain(g float64) float64 {
	switch {
	case math.IsNaN(g) || g < minGain:
		return minGain
	case g > 1/minGain:
		return 1 / minGain
	default:
		return g
	}
}

func clampSampleRate(sampleRate float64) float64 {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fallbackSampleRate
	}

	return sampleRate
}

// prewarp returns cos(w0) and alpha = sin(w0)/(2Q) for the clamped inputs.
func prewarp(sampleRate, freq, q float64) (cw, alpha float64) {
	sampleRate = clampSampleRate(sampleRate)
	w0 := 2 * math.Pi * ClampFrequency(sampleRate, freq) / sampleRate

	return math.Cos(w0), math.Sin(w0) / (2 * ClampQ(q))
}

// shelfAmplitude is the cookbook "A": sqrt of the linear gain, i.e. 10^(dB/40).
func shelfAmplitude(gainLinear float64) float64 {
	return math.Sqrt(ClampGain(gainLinear))
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
