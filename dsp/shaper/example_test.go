package shaper_test

import (
	"fmt"

	"github.com/cwbudde/algo-amp/dsp/shaper"
)

func ExampleDiodeClipper() {
	clean := shaper.NewDiodeClipper(0)
	hot := shaper.NewDiodeClipper(12)

	for _, x := range []float64{-1, -0.1, 0.001, 0.1, 1} {
		fmt.Printf("%+5.3f -> %+.4f  %+.4f\n", x, clean.ProcessSample(x), hot.ProcessSample(x))
	}
	// Output:
	// -1.000 -> -0.9561  -0.9890
	// -0.100 -> -0.8155  -0.9524
	// +0.001 -> +0.0240  +0.0948
	// +0.100 -> +0.8527  +0.9624
	// +1.000 -> +0.9958  +0.9989
}
