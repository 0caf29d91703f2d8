// Package testutil holds deterministic test signals and assertions shared by
// the package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns length samples of a sine at freqHz starting at
// phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate

	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}

	return out
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude).
// The same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))

	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = value
	}

	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 {
	return DC(1, n)
}

// Silence returns numChannels zeroed buffers of length samples.
func Silence(numChannels, length int) [][]float64 {
	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = make([]float64, length)
	}

	return out
}

// Replicate returns numChannels independent copies of data.
func Replicate(data []float64, numChannels int) [][]float64 {
	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = append([]float64(nil), data...)
	}

	return out
}

// CloneChannels deep-copies a channel set.
func CloneChannels(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for c := range src {
		out[c] = append([]float64(nil), src[c]...)
	}

	return out
}
