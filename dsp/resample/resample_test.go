package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/internal/testutil"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("NewRational(0, 1) error = %v, want ErrInvalidRatio", err)
	}

	if _, err := NewRational(1, 0); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("NewRational(1, 0) error = %v, want ErrInvalidRatio", err)
	}
}

func TestNewForRatesValidation(t *testing.T) {
	for _, rate := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if _, err := NewForRates(rate, 48000); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("NewForRates(%v, 48000) error = %v, want ErrInvalidRate", rate, err)
		}
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	up, down := r.Ratio()
	if up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestNewForRatesCommon(t *testing.T) {
	tests := []struct {
		in, out  float64
		up, down int
	}{
		{in: 44100, out: 48000, up: 160, down: 147},
		{in: 48000, out: 44100, up: 147, down: 160},
		{in: 48000, out: 96000, up: 2, down: 1},
		{in: 96000, out: 44100, up: 147, down: 320},
	}

	for _, tt := range tests {
		r, err := NewForRates(tt.in, tt.out)
		if err != nil {
			t.Fatalf("NewForRates(%v, %v) error = %v", tt.in, tt.out, err)
		}

		up, down := r.Ratio()
		if up != tt.up || down != tt.down {
			t.Errorf("NewForRates(%v, %v) ratio = %d/%d, want %d/%d", tt.in, tt.out, up, down, tt.up, tt.down)
		}
	}
}

func TestPredictOutputLenMatchesProcess(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := testutil.DeterministicSine(1000, 48000, 1, 257)

	want := r.PredictOutputLen(len(in))
	if got := len(r.Process(in)); got != want {
		t.Fatalf("len(out) = %d, want %d", got, want)
	}
}

func TestStreamingConsistency(t *testing.T) {
	r1, err := NewRational(160, 147)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	r2, err := NewRational(160, 147)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := testutil.DeterministicSine(1000, 44100, 1, 8192)
	whole := r1.Process(in)

	var chunked []float64
	for i := 0; i < len(in); i += 257 {
		end := min(len(in), i+257)
		chunked = append(chunked, r2.Process(in[i:end])...)
	}

	testutil.RequireSliceNearlyEqual(t, chunked, whole, 1e-12)
}

func TestResetRestartsStream(t *testing.T) {
	r, err := NewRational(2, 1)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	in := testutil.DeterministicNoise(1, 1, 100)
	first := r.Process(in)

	r.Reset()

	testutil.RequireSliceNearlyEqual(t, r.Process(in), first, 0)
}

func TestQualityModesPassbandAndStopband(t *testing.T) {
	tests := []struct {
		name          string
		quality       Quality
		maxPassbandDB float64
		minStopbandDB float64
	}{
		{name: "fast", quality: QualityFast, maxPassbandDB: 0.7, minStopbandDB: 20},
		{name: "balanced", quality: QualityBalanced, maxPassbandDB: 0.35, minStopbandDB: 35},
		{name: "best", quality: QualityBest, maxPassbandDB: 0.2, minStopbandDB: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rPass, err := NewRational(1, 2, WithQuality(tt.quality))
			if err != nil {
				t.Fatalf("NewRational() error = %v", err)
			}

			rStop, err := NewRational(1, 2, WithQuality(tt.quality))
			if err != nil {
				t.Fatalf("NewRational() error = %v", err)
			}

			inPass := testutil.DeterministicSine(2000, 48000, 1, 32768)
			inStop := testutil.DeterministicSine(17000, 48000, 1, 32768)

			outPass := rPass.Process(inPass)
			outStop := rStop.Process(inStop)

			passbandDB := math.Abs(dbRatio(testutil.RMS(outPass[2048:]), testutil.RMS(inPass[4096:])))
			if passbandDB > tt.maxPassbandDB {
				t.Fatalf("passband droop %.2f dB > %.2f dB", passbandDB, tt.maxPassbandDB)
			}

			stopAttenDB := -dbRatio(testutil.RMS(outStop[2048:]), testutil.RMS(inStop[4096:]))
			if stopAttenDB < tt.minStopbandDB {
				t.Fatalf("stopband attenuation %.2f dB < %.2f dB", stopAttenDB, tt.minStopbandDB)
			}
		})
	}
}

func TestConvertLengthAndLevel(t *testing.T) {
	tests := []struct {
		in, out float64
		wantLen int
	}{
		{in: 44100, out: 48000, wantLen: 4354},
		{in: 48000, out: 44100, wantLen: 3675},
		{in: 48000, out: 96000, wantLen: 8000},
		{in: 96000, out: 48000, wantLen: 2000},
	}

	for _, tt := range tests {
		x := testutil.DeterministicSine(1000, tt.in, 0.5, 4000)

		y, err := Convert(x, tt.in, tt.out)
		if err != nil {
			t.Fatalf("Convert(%v -> %v) error = %v", tt.in, tt.out, err)
		}

		if len(y) != tt.wantLen {
			t.Fatalf("Convert(%v -> %v) len = %d, want %d", tt.in, tt.out, len(y), tt.wantLen)
		}

		q := len(y) / 4
		level := dbRatio(testutil.RMS(y[q:3*q]), testutil.RMS(x[1000:3000]))
		if math.Abs(level) > 0.05 {
			t.Errorf("Convert(%v -> %v) level change %.3f dB", tt.in, tt.out, level)
		}
	}
}

func TestConvertKeepsAlignment(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{in: 44100, out: 48000},
		{in: 48000, out: 44100},
		{in: 48000, out: 96000},
		{in: 96000, out: 48000},
	}

	for _, tt := range tests {
		y, err := Convert(testutil.Impulse(400, 100), tt.in, tt.out)
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}

		peak := 0
		for i, v := range y {
			if v > y[peak] {
				peak = i
			}
		}

		want := 100 * tt.out / tt.in
		if math.Abs(float64(peak)-want) > 1.5 {
			t.Errorf("Convert(%v -> %v) impulse peak at %d, want ~%.1f", tt.in, tt.out, peak, want)
		}
	}
}

func TestConvertSameRateCopies(t *testing.T) {
	x := []float64{1, 2, 3}

	y, err := Convert(x, 48000, 48000)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, y, x, 0)

	y[0] = 42
	if x[0] != 1 {
		t.Fatal("Convert returned an alias of its input")
	}

	if _, err := Convert(x, 0, 48000); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("Convert(rate 0) error = %v, want ErrInvalidRate", err)
	}
}

func dbRatio(out, in float64) float64 {
	if in == 0 || out == 0 {
		return -300
	}

	return 20 * math.Log10(out/in)
}
