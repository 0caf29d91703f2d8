//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-amp/dsp/filter/biquad/internal/arch/generic" // register generic backend
	_ "github.com/cwbudde/algo-amp/dsp/filter/biquad/internal/arch/unroll4" // register 4x-unrolled backend
)
