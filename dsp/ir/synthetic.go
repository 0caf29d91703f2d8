package ir

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
)

// cabinetVoice describes a procedurally generated speaker cabinet: a short
// exponentially decaying noise burst shaped by a fixed filter chain.
type cabinetVoice struct {
	length     float64 // seconds
	decay      float64 // seconds, amplitude time constant
	lowCut     float64
	resonance  float64
	resGainDB  float64
	presence   float64
	presGainDB float64
	highCut    float64
	highCutQ   float64
}

var cabinets = map[string]cabinetVoice{
	"4x12": {
		length: 0.050, decay: 0.006,
		lowCut: 75, resonance: 110, resGainDB: 5,
		presence: 2400, presGainDB: 6,
		highCut: 4200, highCutQ: 0.9,
	},
	"2x12": {
		length: 0.040, decay: 0.005,
		lowCut: 85, resonance: 130, resGainDB: 3,
		presence: 2800, presGainDB: 5,
		highCut: 5000, highCutQ: 0.8,
	},
	"1x12": {
		length: 0.030, decay: 0.004,
		lowCut: 100, resonance: 150, resGainDB: 2,
		presence: 3200, presGainDB: 4,
		highCut: 5800, highCutQ: 0.75,
	},
}

// Cabinets lists the synthetic cabinet names in sorted order.
func Cabinets() []string {
	names := make([]string, 0, len(cabinets))
	for name := range cabinets {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Synthetic generates a cabinet response so the amp runs without an IR
// file. Output is deterministic for a given Cabinet, SampleRate and Stereo.
type Synthetic struct {
	Cabinet    string
	SampleRate float64
	Stereo     bool
}

// Load renders the response.
func (s Synthetic) Load(ctx context.Context) (*ImpulseResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	voice, ok := cabinets[s.Cabinet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCabinet, s.Cabinet)
	}

	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, s.SampleRate)
	}

	numChannels := 1
	if s.Stereo {
		numChannels = 2
	}

	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = renderCabinet(voice, s.SampleRate, int64(c+1))
	}

	return New("synthetic "+s.Cabinet, s.SampleRate, channels...)
}

func renderCabinet(v cabinetVoice, sampleRate float64, seed int64) []float64 {
	n := max(int(v.length*sampleRate), 1)
	out := make([]float64, n)

	rng := rand.New(rand.NewSource(seed))

	// Direct-sound spike followed by a diffuse decaying tail.
	out[0] = 1
	for i := 1; i < n; i++ {
		env := math.Exp(-float64(i) / (v.decay * sampleRate))
		out[i] = (rng.Float64()*2 - 1) * env * 0.5
	}

	chain := []biquad.Coefficients{
		design.Highpass(sampleRate, v.lowCut),
		design.Peaking(sampleRate, v.resonance, 1.4, math.Pow(10, v.resGainDB/20)),
		design.Peaking(sampleRate, v.presence, 1.0, math.Pow(10, v.presGainDB/20)),
		design.Lowpass(sampleRate, v.highCut, v.highCutQ),
		design.Lowpass(sampleRate, v.highCut*1.5, design.DefaultQ),
	}

	for _, c := range chain {
		biquad.NewSection(c).ProcessBlock(out)
	}

	return out
}
