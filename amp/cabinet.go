package amp

import (
	"fmt"

	"github.com/cwbudde/algo-amp/dsp/conv"
	"github.com/cwbudde/algo-amp/dsp/ir"
)

// Cabinet convolves each channel with a conditioned impulse response. The
// zero value is a bypassed cabinet that passes audio through unchanged.
type Cabinet struct {
	ir      *ir.ImpulseResponse
	engines []*conv.Partitioned
}

// NewCabinet builds partitioned convolvers for numChannels channels. Output
// channel c runs IR channel min(c, irChannels-1). The partition size follows
// maxBlockSize, which is also the added latency. Not real-time safe.
func NewCabinet(r *ir.ImpulseResponse, numChannels, maxBlockSize int) (*Cabinet, error) {
	if r == nil || r.Len() == 0 {
		return nil, ir.ErrEmpty
	}

	partSize := conv.PartitionSize(maxBlockSize)

	kernels := make([]*conv.Kernel, r.NumChannels())
	for c := range kernels {
		k, err := conv.NewKernel(r.Channels[c], partSize)
		if err != nil {
			return nil, fmt.Errorf("amp: cabinet kernel %d: %w", c, err)
		}

		kernels[c] = k
	}

	cab := &Cabinet{
		ir:      r,
		engines: make([]*conv.Partitioned, max(numChannels, 1)),
	}

	for c := range cab.engines {
		e, err := conv.NewPartitioned(kernels[min(c, len(kernels)-1)])
		if err != nil {
			return nil, fmt.Errorf("amp: cabinet channel %d: %w", c, err)
		}

		cab.engines[c] = e
	}

	return cab, nil
}

// Bypassed reports whether the cabinet passes audio through.
func (c *Cabinet) Bypassed() bool {
	return c == nil || len(c.engines) == 0
}

// ImpulseResponse returns the response in use, or nil when bypassed.
func (c *Cabinet) ImpulseResponse() *ir.ImpulseResponse {
	if c.Bypassed() {
		return nil
	}

	return c.ir
}

// Latency returns the convolution delay in samples.
func (c *Cabinet) Latency() int {
	if c.Bypassed() {
		return 0
	}

	return c.engines[0].Latency()
}

// TailLength returns the impulse response length in samples.
func (c *Cabinet) TailLength() int {
	if c.Bypassed() {
		return 0
	}

	return c.ir.Len()
}

// Process convolves each channel of block in place.
func (c *Cabinet) Process(block [][]float64) error {
	if c.Bypassed() {
		return nil
	}

	n := min(len(block), len(c.engines))
	for i := range n {
		if err := c.engines[i].Process(block[i]); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears convolution state, keeping the response.
func (c *Cabinet) Reset() {
	if c.Bypassed() {
		return
	}

	for _, e := range c.engines {
		e.Reset()
	}
}
