package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-amp/dsp/resample"
)

func ExampleConvert() {
	ir := make([]float64, 480)
	ir[0] = 1

	out, _ := resample.Convert(ir, 48000, 44100, resample.WithQuality(resample.QualityBest))
	fmt.Printf("in=%d out=%d\n", len(ir), len(out))
	// Output:
	// in=480 out=441
}

func ExampleNewForRates() {
	r, _ := resample.NewForRates(44100, 48000)
	up, down := r.Ratio()
	fmt.Printf("ratio=%d/%d\n", up, down)
	// Output:
	// ratio=160/147
}
