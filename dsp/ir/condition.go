package ir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-amp/dsp/resample"
)

// TrimThreshold is the −80 dBFS level below which edge samples are removed.
const TrimThreshold = 1e-4

// Trim removes leading and trailing frames in which every channel is below
// threshold in magnitude. Returns ErrSilent when nothing reaches it.
func Trim(r *ImpulseResponse, threshold float64) (*ImpulseResponse, error) {
	n := r.Len()
	if n == 0 {
		return nil, ErrEmpty
	}

	first, last := n, -1
	for _, ch := range r.Channels {
		for i, v := range ch {
			if math.Abs(v) >= threshold {
				first = min(first, i)
				break
			}
		}

		for i := len(ch) - 1; i >= 0; i-- {
			if math.Abs(ch[i]) >= threshold {
				last = max(last, i)
				break
			}
		}
	}

	if last < first {
		return nil, ErrSilent
	}

	out := &ImpulseResponse{
		Name:       r.Name,
		SampleRate: r.SampleRate,
		Channels:   make([][]float64, len(r.Channels)),
	}

	for c, ch := range r.Channels {
		out.Channels[c] = append([]float64(nil), ch[first:last+1]...)
	}

	return out, nil
}

// Normalize scales every channel by 1/sqrt(E) where E is the largest
// per-channel energy, preserving the balance between channels.
func Normalize(r *ImpulseResponse) (*ImpulseResponse, error) {
	var peakEnergy float64
	for _, ch := range r.Channels {
		peakEnergy = math.Max(peakEnergy, Energy(ch))
	}

	if peakEnergy == 0 {
		return nil, ErrSilent
	}

	out := r.Clone()

	scale := 1 / math.Sqrt(peakEnergy)
	for _, ch := range out.Channels {
		vecmath.ScaleBlockInPlace(ch, scale)
	}

	return out, nil
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return vecmath.DotProduct(x, x)
}

// Resample converts r to sampleRate. A matching rate returns a clone.
func Resample(r *ImpulseResponse, sampleRate float64, opts ...resample.Option) (*ImpulseResponse, error) {
	if r.SampleRate == sampleRate {
		return r.Clone(), nil
	}

	out := &ImpulseResponse{
		Name:       r.Name,
		SampleRate: sampleRate,
		Channels:   make([][]float64, len(r.Channels)),
	}

	for c, ch := range r.Channels {
		conv, err := resample.Convert(ch, r.SampleRate, sampleRate, opts...)
		if err != nil {
			return nil, fmt.Errorf("ir: resample channel %d: %w", c, err)
		}

		out.Channels[c] = conv
	}

	return out, nil
}

// LimitChannels keeps the first n channels.
func LimitChannels(r *ImpulseResponse, n int) *ImpulseResponse {
	if n <= 0 || len(r.Channels) <= n {
		return r
	}

	out := *r
	out.Channels = r.Channels[:n]

	return &out
}

// Prepare conditions r for a convolution engine running at sampleRate:
// at most MaxChannels channels, resampled, energy-normalised, then trimmed
// at TrimThreshold.
func Prepare(r *ImpulseResponse, sampleRate float64, opts ...resample.Option) (*ImpulseResponse, error) {
	if r == nil || r.Len() == 0 {
		return nil, ErrEmpty
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, sampleRate)
	}

	out, err := Resample(LimitChannels(r, MaxChannels), sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	if out, err = Normalize(out); err != nil {
		return nil, err
	}

	return Trim(out, TrimThreshold)
}
