package amp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/gain"
	"github.com/cwbudde/algo-amp/dsp/ir"
	"github.com/cwbudde/algo-amp/dsp/resample"
	"github.com/cwbudde/algo-amp/dsp/shaper"
)

// Pipeline is the amp signal chain. Prepare and Process must not run
// concurrently; parameter writes go through the ParameterSource and may come
// from any goroutine.
type Pipeline struct {
	cfg    config
	params ParameterSource

	proc     core.ProcessorConfig
	prepared bool

	input   gain.Stage
	output  gain.Stage
	clipper shaper.DiodeClipper
	tone    *ToneStack
	cab     *Cabinet

	// views holds per-block subslices of the host buffers.
	views [][]float64
}

// New returns an unprepared pipeline reading params once per block. A nil
// params runs every parameter at its default.
func New(params ParameterSource, opts ...Option) *Pipeline {
	if params == nil {
		params = StaticSource(DefaultSnapshot())
	}

	cfg := newConfig(opts)

	return &Pipeline{
		cfg:    cfg,
		params: params,
		proc:   core.ApplyProcessorOptions(core.WithChannels(cfg.channels)),
		cab:    &Cabinet{},
	}
}

// Prepare is PrepareContext with a background context.
func (p *Pipeline) Prepare(sampleRate float64, maxBlockSize int) error {
	return p.PrepareContext(context.Background(), sampleRate, maxBlockSize)
}

// PrepareContext allocates all processing state for sampleRate and blocks of
// up to maxBlockSize samples, resets filter history and (re)loads the
// cabinet response. Calling it again with the same arguments yields the same
// state. A response that fails to load bypasses the cabinet instead of
// failing.
func (p *Pipeline) PrepareContext(ctx context.Context, sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}

	proc := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(maxBlockSize),
		core.WithChannels(p.cfg.channels),
	)
	if err := proc.Validate(); err != nil {
		return fmt.Errorf("amp: prepare: %w", err)
	}

	log := p.cfg.logger.WithFields(logrus.Fields{
		"function":    "Pipeline.Prepare",
		"sample_rate": sampleRate,
		"block_size":  maxBlockSize,
		"channels":    proc.Channels,
	})

	p.prepared = false
	p.proc = proc
	p.tone = NewToneStack(sampleRate, proc.Channels)
	p.views = make([][]float64, proc.Channels)
	p.cab = p.loadCabinet(ctx, log)

	if err := ctx.Err(); err != nil {
		return err
	}

	p.input = gain.Stage{}
	p.output = gain.Stage{}
	p.clipper = shaper.DiodeClipper{}
	p.prepared = true

	log.WithFields(logrus.Fields{
		"latency":  p.Latency(),
		"tail":     p.TailLength(),
		"bypassed": p.cab.Bypassed(),
	}).Info("Pipeline prepared")

	return nil
}

func (p *Pipeline) loadCabinet(ctx context.Context, log logrus.FieldLogger) *Cabinet {
	if p.cfg.provider == nil {
		log.Info("No impulse response configured, cabinet bypassed")
		return &Cabinet{}
	}

	raw, err := p.cfg.provider.Load(ctx)
	if err == nil {
		raw, err = ir.Prepare(raw, p.proc.SampleRate, resample.WithQuality(p.cfg.irQuality))
	}

	var cab *Cabinet
	if err == nil {
		cab, err = NewCabinet(raw, p.proc.Channels, p.proc.BlockSize)
	}

	if err != nil {
		level := log.WithError(err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			level.Warn("Impulse response load canceled, cabinet bypassed")
		} else {
			level.Error("Impulse response unavailable, cabinet bypassed")
		}

		return &Cabinet{}
	}

	log.WithFields(logrus.Fields{
		"ir":          raw.Name,
		"ir_channels": raw.NumChannels(),
		"ir_samples":  raw.Len(),
		"partition":   cab.Latency(),
	}).Info("Impulse response loaded")

	return cab
}

// Process runs one block in place. channels[c][:numSamples] is processed for
// c < numChannels; any further channels in the slice are cleared. Returns a
// sentinel error without touching the buffers when the block violates the
// prepared contract.
func (p *Pipeline) Process(channels [][]float64, numChannels, numSamples int) error {
	if !p.prepared {
		return ErrNotPrepared
	}

	if numSamples > p.proc.BlockSize {
		return ErrBlockTooLarge
	}

	if numChannels > p.proc.Channels {
		return ErrTooManyChannels
	}

	if numChannels < 0 || numSamples < 0 || numChannels > len(channels) {
		return ErrChannelLength
	}

	for c := range channels {
		if len(channels[c]) < numSamples {
			return ErrChannelLength
		}
	}

	for c := numChannels; c < len(channels); c++ {
		clear(channels[c][:numSamples])
	}

	if numSamples == 0 || numChannels == 0 {
		return nil
	}

	block := p.views[:numChannels]
	for c := range block {
		block[c] = channels[c][:numSamples]
	}

	s := p.params.Snapshot().Clamped()

	p.input.SetGainDecibels(s.InputDB)
	p.clipper.SetDriveDecibels(s.DriveDB)
	p.output.SetGainDecibels(s.OutputDB)
	p.tone.UpdateFixed()
	p.tone.Update(s.LowDB, s.MidDB, s.HighDB)

	p.input.Process(block)
	p.tone.ProcessPre(block)
	p.clipper.Process(block)

	if err := p.cab.Process(block); err != nil {
		return err
	}

	p.tone.ProcessPost(block)
	p.output.Process(block)
	p.tone.FlushDenormals()

	// Drop references to host buffers.
	clear(block)

	return nil
}

// Reset clears filter and convolution history without reloading the
// response. Not real-time safe with respect to a concurrent Process.
func (p *Pipeline) Reset() {
	if p.tone != nil {
		p.tone.Reset()
	}

	p.cab.Reset()
}

// Prepared reports whether Process may be called.
func (p *Pipeline) Prepared() bool {
	return p.prepared
}

// Config returns the prepared sample rate, block size and channel count.
func (p *Pipeline) Config() core.ProcessorConfig {
	return p.proc
}

// Latency returns the delay the cabinet adds, in samples.
func (p *Pipeline) Latency() int {
	return p.cab.Latency()
}

// TailLength returns how many samples of output follow the end of input.
func (p *Pipeline) TailLength() int {
	return p.cab.TailLength()
}

// ToneStack returns the tone stack of the last Prepare, or nil.
func (p *Pipeline) ToneStack() *ToneStack {
	return p.tone
}

// ImpulseResponse returns the conditioned cabinet response, or nil when the
// cabinet is bypassed.
func (p *Pipeline) ImpulseResponse() *ir.ImpulseResponse {
	return p.cab.ImpulseResponse()
}
