package amp

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/ir"
	"github.com/cwbudde/algo-amp/dsp/resample"
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	channels  int
	logger    logrus.FieldLogger
	provider  ir.Provider
	irQuality resample.Quality
}

func newConfig(opts []Option) config {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	cfg := config{
		channels:  core.DefaultProcessorConfig().Channels,
		logger:    quiet,
		irQuality: resample.QualityBalanced,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithChannels sets the maximum channel count Process accepts.
func WithChannels(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.channels = n
		}
	}
}

// WithLogger sets the logger used by Prepare. Process never logs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithIRProvider sets where Prepare loads the cabinet response from.
func WithIRProvider(p ir.Provider) Option {
	return func(cfg *config) {
		cfg.provider = p
	}
}

// WithImpulseResponse uses an in-memory cabinet response.
func WithImpulseResponse(r *ir.ImpulseResponse) Option {
	return WithIRProvider(ir.Static{IR: r})
}

// WithIRQuality selects the resampler quality used when the response's
// sample rate differs from the prepared one.
func WithIRQuality(q resample.Quality) Option {
	return func(cfg *config) {
		cfg.irQuality = q
	}
}
