package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-amp/amp"
	"github.com/cwbudde/algo-amp/internal/wavio"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	AmpFlags `embed:""`

	Source   string `arg:"" type:"existingfile" help:"Input WAV file."`
	Dest     string `arg:"" type:"path" help:"Output WAV file."`
	BitDepth int    `help:"Output bit depth (16 or 24)." default:"24"`
	NoTail   bool   `help:"Stop at the input length instead of rendering the cabinet tail."`
}

func (c *RenderCmd) Run(ctx context.Context, log *logrus.Logger) error {
	if c.BitDepth != 16 && c.BitDepth != 24 {
		return fmt.Errorf("%w: %d-bit output", wavio.ErrUnsupportedFormat, c.BitDepth)
	}

	src, err := readWAV(c.Source)
	if err != nil {
		return err
	}

	p, err := c.pipeline(ctx, log, src.SampleRate, len(src.Channels))
	if err != nil {
		return err
	}

	tail := p.TailLength()
	if c.NoTail {
		tail = 0
	}

	fields := log.WithFields(logrus.Fields{
		"input":       c.Source,
		"output":      c.Dest,
		"sample_rate": src.SampleRate,
		"channels":    len(src.Channels),
		"frames":      src.Len(),
		"latency":     p.Latency(),
		"tail":        tail,
	})
	fields.Info("Rendering")

	out, err := process(p, src.Channels, c.BlockSize, tail)
	if err != nil {
		return fmt.Errorf("ampsim: render: %w", err)
	}

	if err := writeWAV(c.Dest, &wavio.Audio{Channels: out, SampleRate: src.SampleRate}, c.BitDepth); err != nil {
		return err
	}

	fields.Info("Render complete")

	return nil
}

// process runs in through p one block at a time and returns len(in[0])+tail
// frames. The pipeline latency is removed so output lines up with input.
func process(p *amp.Pipeline, in [][]float64, blockSize, tail int) ([][]float64, error) {
	if len(in) == 0 {
		return nil, nil
	}

	n := len(in[0])
	total := n + tail
	lat := p.Latency()

	out := make([][]float64, len(in))
	block := make([][]float64, len(in))

	for c := range in {
		out[c] = make([]float64, total)
		block[c] = make([]float64, blockSize)
	}

	for pos := 0; pos < total+lat; pos += blockSize {
		m := min(blockSize, total+lat-pos)

		for c := range block {
			buf := block[c][:m]
			clear(buf)

			if pos < n {
				copy(buf, in[c][pos:min(pos+m, n)])
			}
		}

		if err := p.Process(block, len(block), m); err != nil {
			return nil, err
		}

		skip := max(lat-pos, 0)
		if skip >= m {
			continue
		}

		for c := range block {
			copy(out[c][pos+skip-lat:], block[c][skip:m])
		}
	}

	return out, nil
}

func readWAV(path string) (*wavio.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ampsim: %w", err)
	}
	defer f.Close()

	a, err := wavio.Read(f)
	if err != nil {
		return nil, fmt.Errorf("ampsim: %s: %w", path, err)
	}

	return a, nil
}

func writeWAV(path string, a *wavio.Audio, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ampsim: %w", err)
	}

	if err := wavio.Write(f, a, bitDepth); err != nil {
		f.Close()
		return fmt.Errorf("ampsim: %s: %w", path, err)
	}

	return f.Close()
}
