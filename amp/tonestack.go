package amp

import (
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
)

// Fixed voicing of the tone stack.
const (
	HighpassFreq = 200.0

	PreClipFreq   = 1420.0
	PreClipQ      = 0.5
	PreClipGainDB = 6.0

	LowShelfFreq = 200.0
	LowShelfQ    = 1.3

	MidFreq = 815.0
	MidQ    = 0.3

	HighFreq = 6000.0
	HighQ    = 0.2
)

// Section order inside a ToneStack.
const (
	SectionHighpass = iota
	SectionPreClip
	SectionLow
	SectionMid
	SectionHigh
	NumSections
)

// numPre sections run before the clipper; the rest after the cabinet.
const numPre = SectionPreClip + 1

// ToneStack holds the five biquad sections for every channel. Coefficients
// are shared across channels and recomputed once per block; history is per
// channel and survives until Prepare or Reset.
type ToneStack struct {
	sampleRate float64
	coeffs     [NumSections]biquad.Coefficients
	channels   [][NumSections]biquad.Section
}

// NewToneStack allocates sections for numChannels channels at sampleRate.
func NewToneStack(sampleRate float64, numChannels int) *ToneStack {
	t := &ToneStack{
		sampleRate: sampleRate,
		channels:   make([][NumSections]biquad.Section, max(numChannels, 1)),
	}
	t.UpdateFixed()
	t.Update(0, 0, 0)

	return t
}

// SampleRate returns the design sample rate.
func (t *ToneStack) SampleRate() float64 {
	return t.sampleRate
}

// NumChannels returns the number of channels with history.
func (t *ToneStack) NumChannels() int {
	return len(t.channels)
}

// UpdateFixed recomputes the highpass and pre-clip peak. Idempotent.
func (t *ToneStack) UpdateFixed() {
	t.coeffs[SectionHighpass] = design.Highpass(t.sampleRate, HighpassFreq)
	t.coeffs[SectionPreClip] = design.Peaking(t.sampleRate, PreClipFreq, PreClipQ, core.DBToLinear(PreClipGainDB))
}

// Update recomputes the user tone sections from gains in dB.
func (t *ToneStack) Update(lowDB, midDB, highDB float64) {
	t.coeffs[SectionLow] = design.LowShelf(t.sampleRate, LowShelfFreq, LowShelfQ, core.DBToLinear(lowDB))
	t.coeffs[SectionMid] = design.Peaking(t.sampleRate, MidFreq, MidQ, core.DBToLinear(midDB))
	t.coeffs[SectionHigh] = design.Peaking(t.sampleRate, HighFreq, HighQ, core.DBToLinear(highDB))
}

// Coefficients returns the current coefficients of every section.
func (t *ToneStack) Coefficients() [NumSections]biquad.Coefficients {
	return t.coeffs
}

// ProcessPre runs the highpass and pre-clip peak over each channel.
func (t *ToneStack) ProcessPre(block [][]float64) {
	t.process(block, 0, numPre)
}

// ProcessPost runs the low, mid and high sections over each channel.
func (t *ToneStack) ProcessPost(block [][]float64) {
	t.process(block, numPre, NumSections)
}

func (t *ToneStack) process(block [][]float64, from, to int) {
	n := min(len(block), len(t.channels))
	for c := range n {
		secs := &t.channels[c]
		for s := from; s < to; s++ {
			secs[s].Coefficients = t.coeffs[s]
			secs[s].ProcessBlock(block[c])
		}
	}
}

// FlushDenormals zeroes vanishing history in every section.
func (t *ToneStack) FlushDenormals() {
	for c := range t.channels {
		for s := range t.channels[c] {
			t.channels[c][s].FlushDenormals()
		}
	}
}

// Reset clears all history.
func (t *ToneStack) Reset() {
	for c := range t.channels {
		for s := range t.channels[c] {
			t.channels[c][s].Reset()
		}
	}
}

// MagnitudeDB returns the combined magnitude of all five sections at freq.
func (t *ToneStack) MagnitudeDB(freq float64) float64 {
	var db float64
	for _, c := range t.coeffs {
		db += c.MagnitudeDB(freq, t.sampleRate)
	}

	return db
}

// PostMagnitudeDB returns the magnitude of the user tone sections at freq.
func (t *ToneStack) PostMagnitudeDB(freq float64) float64 {
	var db float64
	for _, c := range t.coeffs[numPre:] {
		db += c.MagnitudeDB(freq, t.sampleRate)
	}

	return db
}
