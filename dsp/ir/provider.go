package ir

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-amp/internal/wavio"
)

// Provider supplies a raw impulse response. Load runs outside the audio
// path and may block on I/O.
type Provider interface {
	Load(ctx context.Context) (*ImpulseResponse, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (*ImpulseResponse, error)

// Load calls f.
func (f ProviderFunc) Load(ctx context.Context) (*ImpulseResponse, error) {
	return f(ctx)
}

// Static provides an in-memory response.
type Static struct {
	IR *ImpulseResponse
}

// Load returns the wrapped response.
func (s Static) Load(ctx context.Context) (*ImpulseResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.IR == nil {
		return nil, ErrEmpty
	}

	return s.IR, nil
}

// File provides a response decoded from a PCM WAV file.
type File struct {
	Path string
}

// Load opens and decodes the file.
func (f File) Load(ctx context.Context) (*ImpulseResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("ir: open %s: %w", f.Path, err)
	}
	defer fh.Close()

	name := strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))

	r, err := Decode(fh, name)
	if err != nil {
		return nil, fmt.Errorf("ir: %s: %w", f.Path, err)
	}

	return r, nil
}

// Decode reads a PCM WAV stream into an ImpulseResponse.
func Decode(rs io.ReadSeeker, name string) (*ImpulseResponse, error) {
	a, err := wavio.Read(rs)
	if err != nil {
		return nil, err
	}

	return New(name, a.SampleRate, a.Channels...)
}
