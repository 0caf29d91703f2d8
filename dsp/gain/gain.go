// Package gain provides the decibel-controlled gain stage used at the input
// and output of the amp.
package gain

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Stage scales audio by a gain set in decibels. The zero value is unity gain.
//
// SetGainDecibels may be called between blocks; the conversion to a linear
// factor happens there, not per sample.
type Stage struct {
	db     float64
	linear float64
	set    bool
}

// NewStage returns a stage with the given initial gain in dB.
func NewStage(db float64) *Stage {
	s := &Stage{}
	s.SetGainDecibels(db)

	return s
}

// SetGainDecibels stores the target gain. Values at or below core.MinGainDB
// mute the stage; non-finite values fall back to unity.
func (s *Stage) SetGainDecibels(db float64) {
	if math.IsNaN(db) || math.IsInf(db, 1) {
		db = 0
	}

	s.db = db
	s.linear = core.DBToGain(db)
	s.set = true
}

// GainDecibels returns the stored gain in dB.
func (s *Stage) GainDecibels() float64 {
	return s.db
}

// GainLinear returns the linear factor applied to every sample.
func (s *Stage) GainLinear() float64 {
	if !s.set {
		return 1
	}

	return s.linear
}

// ProcessSample scales one sample.
func (s *Stage) ProcessSample(x float64) float64 {
	return x * s.GainLinear()
}

// ProcessBlock scales buf in place. Zero-alloc.
func (s *Stage) ProcessBlock(buf []float64) {
	g := s.GainLinear()
	if g == 1 || len(buf) == 0 {
		return
	}

	if g == 0 {
		clear(buf)
		return
	}

	vecmath.ScaleBlockInPlace(buf, g)
}

// Process scales every channel in place.
func (s *Stage) Process(channels [][]float64) {
	for _, ch := range channels {
		s.ProcessBlock(ch)
	}
}
