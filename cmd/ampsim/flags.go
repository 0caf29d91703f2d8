package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-amp/amp"
	"github.com/cwbudde/algo-amp/dsp/ir"
	"github.com/cwbudde/algo-amp/dsp/resample"
)

var errIRUnavailable = errors.New("ampsim: impulse response could not be loaded")

// ToneFlags are the user parameters in dB.
type ToneFlags struct {
	Input  float64 `help:"Input gain in dB (-36..36)." default:"0" group:"Amp"`
	Drive  float64 `help:"Clipper drive in dB (0..24)." default:"0" group:"Amp"`
	Low    float64 `help:"Low shelf gain in dB (-6..6)." default:"0" group:"Amp"`
	Mid    float64 `help:"Mid peak gain in dB (-6..6)." default:"0" group:"Amp"`
	High   float64 `help:"High peak gain in dB (-6..6)." default:"0" group:"Amp"`
	Output float64 `help:"Output gain in dB (-36..36)." default:"0" group:"Amp"`
}

func (f ToneFlags) snapshot() amp.Snapshot {
	return amp.Snapshot{
		InputDB:  f.Input,
		DriveDB:  f.Drive,
		LowDB:    f.Low,
		MidDB:    f.Mid,
		HighDB:   f.High,
		OutputDB: f.Output,
	}
}

// parameters returns the flag values as a parameter store, warning about
// values outside their range.
func (f ToneFlags) parameters(log logrus.FieldLogger) *amp.Parameters {
	params := amp.NewParameters()

	s := f.snapshot()
	for _, spec := range amp.ParameterSpecs() {
		v := s.Value(spec.ID)
		if c := spec.Clamp(v); c != v {
			log.WithFields(logrus.Fields{
				"parameter": spec.ID,
				"value":     v,
				"clamped":   c,
			}).Warn("Parameter out of range")
		}
	}

	params.SetSnapshot(s)

	return params
}

// CabinetFlags select the cabinet response and processing layout.
type CabinetFlags struct {
	IR        string `name:"ir" help:"Cabinet impulse response (PCM WAV)." type:"path" xor:"cabinet" group:"Cabinet"`
	Cabinet   string `help:"Built-in synthetic cabinet: 1x12, 2x12 or 4x12." xor:"cabinet" group:"Cabinet"`
	BlockSize int    `help:"Processing block size in samples." default:"512" group:"Cabinet"`
	Quality   string `help:"Resampling quality when the response rate differs." enum:"fast,balanced,best" default:"balanced" group:"Cabinet"`
}

func (f CabinetFlags) quality() (resample.Quality, error) {
	switch f.Quality {
	case "fast":
		return resample.QualityFast, nil
	case "", "balanced":
		return resample.QualityBalanced, nil
	case "best":
		return resample.QualityBest, nil
	default:
		return 0, fmt.Errorf("ampsim: unknown quality %q", f.Quality)
	}
}

func (f CabinetFlags) provider(sampleRate float64) (ir.Provider, error) {
	switch {
	case f.IR != "":
		return ir.File{Path: f.IR}, nil
	case f.Cabinet != "":
		if !slices.Contains(ir.Cabinets(), f.Cabinet) {
			return nil, fmt.Errorf("%w: %q (have %v)", ir.ErrUnknownCabinet, f.Cabinet, ir.Cabinets())
		}

		return ir.Synthetic{Cabinet: f.Cabinet, SampleRate: sampleRate, Stereo: true}, nil
	default:
		return nil, nil
	}
}

// AmpFlags is everything needed to build a prepared pipeline.
type AmpFlags struct {
	ToneFlags    `embed:""`
	CabinetFlags `embed:""`
}

// pipeline prepares a pipeline for sampleRate and numChannels. A requested
// cabinet that fails to load is an error here, unlike in the library where
// it bypasses.
func (f AmpFlags) pipeline(ctx context.Context, log logrus.FieldLogger, sampleRate float64, numChannels int) (*amp.Pipeline, error) {
	if f.BlockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", amp.ErrInvalidBlockSize, f.BlockSize)
	}

	q, err := f.quality()
	if err != nil {
		return nil, err
	}

	provider, err := f.provider(sampleRate)
	if err != nil {
		return nil, err
	}

	opts := []amp.Option{
		amp.WithChannels(numChannels),
		amp.WithLogger(log),
		amp.WithIRQuality(q),
	}
	if provider != nil {
		opts = append(opts, amp.WithIRProvider(provider))
	}

	p := amp.New(f.parameters(log), opts...)
	if err := p.PrepareContext(ctx, sampleRate, f.BlockSize); err != nil {
		return nil, err
	}

	if provider != nil && p.ImpulseResponse() == nil {
		return nil, errIRUnavailable
	}

	return p, nil
}
