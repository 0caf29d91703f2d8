//go:build headless

package main

import (
	"context"
	"errors"
)

var errNoAudioDevice = errors.New("ampsim: built without audio output (headless)")

func playStream(ctx context.Context, s *stream, sampleRate, numChannels int) error {
	return errNoAudioDevice
}
