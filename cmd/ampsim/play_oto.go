//go:build !headless

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

func playStream(ctx context.Context, s *stream, sampleRate, numChannels int) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: numChannels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("ampsim: audio device: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(s)
	defer player.Close()

	player.Play()

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-tick.C:
		}
	}

	return player.Err()
}
