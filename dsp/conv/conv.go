package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	if err := DirectTo(result, a, b); err != nil {
		return nil, err
	}

	return result, nil
}

// DirectTo performs direct convolution into a pre-allocated destination of
// length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) error {
	n := len(a)
	m := len(b)

	if n == 0 {
		return ErrEmptyInput
	}

	if m == 0 {
		return ErrEmptyKernel
	}

	if len(dst) != n+m-1 {
		return ErrLengthMismatch
	}

	clear(dst)

	// Scalar loop for tiny kernels, vectorised accumulate otherwise.
	const simdThreshold = 4
	if m < simdThreshold {
		for i := range n {
			for j := range m {
				dst[i+j] += a[i] * b[j]
			}
		}

		return nil
	}

	temp := make([]float64, m)
	for i := range n {
		if a[i] == 0 {
			continue
		}

		vecmath.ScaleBlock(temp, b, a[i])
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}

	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
