package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partition size limits for PartitionSize.
const (
	MinPartitionSize = 64
	MaxPartitionSize = 8192
)

// PartitionSize returns the partition length used for a host block size:
// the next power of two >= maxBlockSize, clamped to
// [MinPartitionSize, MaxPartitionSize].
func PartitionSize(maxBlockSize int) int {
	n := nextPowerOf2(maxBlockSize)

	return min(max(n, MinPartitionSize), MaxPartitionSize)
}

// Kernel holds the partition spectra of one impulse response. It is
// immutable once built and may be shared by any number of Partitioned
// convolvers.
type Kernel struct {
	partSize  int
	fftSize   int
	kernelLen int
	spectra   [][]complex128
}

// NewKernel splits ir into partitions of partSize samples and transforms
// each one. partSize must be a power of two >= 2. Not real-time safe.
func NewKernel(ir []float64, partSize int) (*Kernel, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyKernel
	}

	if partSize < 2 || !isPowerOf2(partSize) {
		return nil, fmt.Errorf("%w: partition size %d is not a power of two >= 2", ErrInvalidBlockSize, partSize)
	}

	fftSize := 2 * partSize

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	numParts := (len(ir) + partSize - 1) / partSize
	k := &Kernel{
		partSize:  partSize,
		fftSize:   fftSize,
		kernelLen: len(ir),
		spectra:   make([][]complex128, numParts),
	}

	padded := make([]complex128, fftSize)
	for p := range numParts {
		clear(padded)

		start := p * partSize
		end := min(start+partSize, len(ir))
		for i, v := range ir[start:end] {
			padded[i] = complex(v, 0)
		}

		k.spectra[p] = make([]complex128, fftSize)
		if err := plan.Forward(k.spectra[p], padded); err != nil {
			return nil, fmt.Errorf("conv: failed to transform partition %d: %w", p, err)
		}
	}

	return k, nil
}

// PartitionSize returns the partition length B.
func (k *Kernel) PartitionSize() int {
	return k.partSize
}

// Partitions returns the number of partitions.
func (k *Kernel) Partitions() int {
	return len(k.spectra)
}

// Len returns the impulse response length in samples.
func (k *Kernel) Len() int {
	return k.kernelLen
}
