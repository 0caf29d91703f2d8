package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 96)
	if len(s) != 96 || s[0] != 0 {
		t.Fatalf("len = %d, s[0] = %v", len(s), s[0])
	}

	// A quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}

	if got := RMS(s); math.Abs(got-0.5/math.Sqrt2) > 1e-12 {
		t.Fatalf("RMS = %v, want %v", got, 0.5/math.Sqrt2)
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(7, 0.25, 256)
	b := DeterministicNoise(7, 0.25, 256)
	c := DeterministicNoise(8, 0.25, 256)

	if d, _ := MaxAbsDiff(a, b); d != 0 {
		t.Fatalf("same seed differs by %v", d)
	}

	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}

	RequireWithin(t, a, -0.25, 0.25)
}

func TestImpulseAndDC(t *testing.T) {
	imp := Impulse(8, 3)
	if RMS(imp) != math.Sqrt(1.0/8) || imp[3] != 1 {
		t.Fatalf("Impulse = %v", imp)
	}

	if RMS(Impulse(8, 8)) != 0 {
		t.Fatal("out-of-range impulse is not silent")
	}

	RequireSliceNearlyEqual(t, Ones(4), DC(1, 4), 0)
}

func TestChannelHelpers(t *testing.T) {
	rep := Replicate([]float64{1, 2}, 3)
	rep[0][0] = 9

	if rep[1][0] != 1 {
		t.Fatal("Replicate channels share storage")
	}

	clone := CloneChannels(rep)
	clone[2][1] = -1

	if rep[2][1] != 2 {
		t.Fatal("CloneChannels shares storage")
	}

	s := Silence(2, 5)
	if len(s) != 2 || len(s[1]) != 5 || RMS(s[0]) != 0 {
		t.Fatalf("Silence = %v", s)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRMSEmpty(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) != 0")
	}
}
