package main

import (
	"context"

	"github.com/sirupsen/logrus"
)

// PlayCmd renders a WAV file through the amp to the audio device in real
// time.
type PlayCmd struct {
	AmpFlags `embed:""`

	Source string `arg:"" type:"existingfile" help:"Input WAV file."`
}

func (c *PlayCmd) Run(ctx context.Context, log *logrus.Logger) error {
	src, err := readWAV(c.Source)
	if err != nil {
		return err
	}

	p, err := c.pipeline(ctx, log, src.SampleRate, len(src.Channels))
	if err != nil {
		return err
	}

	s := newStream(p, src.Channels, c.BlockSize, p.TailLength())

	log.WithFields(logrus.Fields{
		"input":       c.Source,
		"sample_rate": src.SampleRate,
		"channels":    len(src.Channels),
		"frames":      s.Frames(),
		"latency":     p.Latency(),
	}).Info("Playing")

	return playStream(ctx, s, int(src.SampleRate), len(src.Channels))
}
