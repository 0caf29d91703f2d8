package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Partitioned is a streaming, uniformly partitioned overlap-save convolver
// for one channel. Output lags input by exactly Latency() samples.
//
// Partitioned is not safe for concurrent use.
type Partitioned struct {
	kernel *Kernel
	plan   *algofft.Plan[complex128]

	// fdl is the frequency-domain delay line of input spectra, indexed as a
	// ring starting at fdlPos (newest).
	fdl    [][]complex128
	fdlPos int

	// history holds the last 2B input samples; the transform window.
	history []float64
	frame   []complex128
	acc     []complex128

	inFIFO  []float64
	outFIFO []float64
	pos     int
}

// NewPartitioned creates a convolver running kernel. All buffers are
// allocated here.
func NewPartitioned(kernel *Kernel) (*Partitioned, error) {
	if kernel == nil || kernel.Partitions() == 0 {
		return nil, ErrEmptyKernel
	}

	plan, err := algofft.NewPlan64(kernel.fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	p := &Partitioned{
		kernel:  kernel,
		plan:    plan,
		fdl:     make([][]complex128, kernel.Partitions()),
		history: make([]float64, kernel.fftSize),
		frame:   make([]complex128, kernel.fftSize),
		acc:     make([]complex128, kernel.fftSize),
		inFIFO:  make([]float64, kernel.partSize),
		outFIFO: make([]float64, kernel.partSize),
	}

	for i := range p.fdl {
		p.fdl[i] = make([]complex128, kernel.fftSize)
	}

	return p, nil
}

// Latency returns the delay in samples between input and output.
func (p *Partitioned) Latency() int {
	return p.kernel.partSize
}

// Kernel returns the kernel being run.
func (p *Partitioned) Kernel() *Kernel {
	return p.kernel
}

// Reset clears all streaming state. The kernel is kept.
func (p *Partitioned) Reset() {
	for _, s := range p.fdl {
		clear(s)
	}

	clear(p.history)
	clear(p.inFIFO)
	clear(p.outFIFO)

	p.fdlPos = 0
	p.pos = 0
}

// Process convolves buf in place. buf may have any length; the engine
// buffers internally. Does not allocate.
func (p *Partitioned) Process(buf []float64) error {
	b := p.kernel.partSize

	for done := 0; done < len(buf); {
		n := min(b-p.pos, len(buf)-done)

		copy(p.inFIFO[p.pos:p.pos+n], buf[done:done+n])
		copy(buf[done:done+n], p.outFIFO[p.pos:p.pos+n])

		p.pos += n
		done += n

		if p.pos == b {
			if err := p.step(); err != nil {
				return err
			}

			p.pos = 0
		}
	}

	return nil
}

// step consumes one full input partition and produces one output partition.
func (p *Partitioned) step() error {
	b := p.kernel.partSize
	parts := len(p.fdl)

	copy(p.history[:b], p.history[b:])
	copy(p.history[b:], p.inFIFO)

	for i, v := range p.history {
		p.frame[i] = complex(v, 0)
	}

	p.fdlPos--
	if p.fdlPos < 0 {
		p.fdlPos = parts - 1
	}

	if err := p.plan.Forward(p.fdl[p.fdlPos], p.frame); err != nil {
		return err
	}

	clear(p.acc)

	for k, h := range p.kernel.spectra {
		x := p.fdl[(p.fdlPos+k)%parts]
		acc := p.acc
		for i := range acc {
			acc[i] += x[i] * h[i]
		}
	}

	if err := p.plan.Inverse(p.acc, p.acc); err != nil {
		return err
	}

	for i := range p.outFIFO {
		p.outFIFO[i] = core.FlushDenormals(real(p.acc[b+i]))
	}

	for i, v := range p.history {
		p.history[i] = core.FlushDenormals(v)
	}

	return nil
}
