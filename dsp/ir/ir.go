package ir

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by constructors and conditioning functions.
var (
	ErrEmpty          = errors.New("ir: empty impulse response")
	ErrChannelLength  = errors.New("ir: channels differ in length")
	ErrInvalidRate    = errors.New("ir: invalid sample rate")
	ErrSilent         = errors.New("ir: impulse response is silent")
	ErrNonFinite      = errors.New("ir: impulse response contains NaN or Inf")
	ErrNoProvider     = errors.New("ir: no provider")
	ErrUnknownCabinet = errors.New("ir: unknown synthetic cabinet")
)

// MaxChannels is the largest channel count kept by Prepare.
const MaxChannels = 2

// ImpulseResponse is planar IR data. Treat it as read-only once built; the
// conditioning functions return new values.
type ImpulseResponse struct {
	Name       string
	SampleRate float64
	Channels   [][]float64
}

// New validates and wraps channel data. The slices are used as is.
func New(name string, sampleRate float64, channels ...[]float64) (*ImpulseResponse, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, sampleRate)
	}

	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, ErrEmpty
	}

	n := len(channels[0])
	for c, ch := range channels {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrChannelLength, c, len(ch), n)
		}

		for _, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: channel %d", ErrNonFinite, c)
			}
		}
	}

	return &ImpulseResponse{Name: name, SampleRate: sampleRate, Channels: channels}, nil
}

// NumChannels returns the channel count.
func (r *ImpulseResponse) NumChannels() int {
	return len(r.Channels)
}

// Len returns the length in samples.
func (r *ImpulseResponse) Len() int {
	if len(r.Channels) == 0 {
		return 0
	}

	return len(r.Channels[0])
}

// Duration returns the length in seconds.
func (r *ImpulseResponse) Duration() float64 {
	if r.SampleRate <= 0 {
		return 0
	}

	return float64(r.Len()) / r.SampleRate
}

// Channel returns the IR channel feeding output channel c: channel c when it
// exists, otherwise the last one. A mono IR is shared by every channel.
func (r *ImpulseResponse) Channel(c int) []float64 {
	if len(r.Channels) == 0 {
		return nil
	}

	return r.Channels[min(max(c, 0), len(r.Channels)-1)]
}

// Clone returns a deep copy.
func (r *ImpulseResponse) Clone() *ImpulseResponse {
	out := &ImpulseResponse{
		Name:       r.Name,
		SampleRate: r.SampleRate,
		Channels:   make([][]float64, len(r.Channels)),
	}

	for i, ch := range r.Channels {
		out.Channels[i] = append([]float64(nil), ch...)
	}

	return out
}
