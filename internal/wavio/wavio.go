// Package wavio converts between PCM WAV streams and planar float64 audio.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by Read and Write.
var (
	ErrInvalidFile       = errors.New("wavio: not a valid WAV file")
	ErrUnsupportedFormat = errors.New("wavio: unsupported WAV format")
	ErrNoChannels        = errors.New("wavio: no channels")
)

// formatPCM is the WAVE_FORMAT_PCM tag.
const formatPCM = 1

// Audio is planar sample data in [-1, 1] with its sample rate.
type Audio struct {
	Channels   [][]float64
	SampleRate float64
	BitDepth   int
}

// Len returns the number of frames.
func (a *Audio) Len() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Read decodes an integer PCM WAV stream (8, 16, 24 or 32 bit).
func Read(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	numChans := buf.Format.NumChannels
	if numChans <= 0 {
		return nil, ErrNoChannels
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(dec.BitDepth)
	}

	if bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
	}

	frames := len(buf.Data) / numChans
	out := &Audio{
		Channels:   make([][]float64, numChans),
		SampleRate: float64(buf.Format.SampleRate),
		BitDepth:   bitDepth,
	}

	// 8-bit WAV is unsigned with a 128 offset.
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	scale := 1 / float64(int64(1)<<(bitDepth-1))

	for c := range out.Channels {
		ch := make([]float64, frames)
		for i := range ch {
			ch[i] = float64(buf.Data[i*numChans+c]-offset) * scale
		}

		out.Channels[c] = ch
	}

	return out, nil
}

// Write encodes a as integer PCM at bitDepth (16 or 24). Samples are
// clipped to [-1, 1].
func Write(w io.WriteSeeker, a *Audio, bitDepth int) error {
	if len(a.Channels) == 0 {
		return ErrNoChannels
	}

	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d-bit output", ErrUnsupportedFormat, bitDepth)
	}

	numChans := len(a.Channels)
	frames := a.Len()
	fullScale := float64(int64(1)<<(bitDepth-1)) - 1

	data := make([]int, frames*numChans)
	for c, ch := range a.Channels {
		for i := range frames {
			v := 0.0
			if i < len(ch) && !math.IsNaN(ch[i]) {
				v = math.Max(-1, math.Min(1, ch[i]))
			}

			data[i*numChans+c] = int(math.Round(v * fullScale))
		}
	}

	sampleRate := int(math.Round(a.SampleRate))
	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChans, formatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: close: %w", err)
	}

	return nil
}
