package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/internal/testutil"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testCoefficients() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}

	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_Identity(t *testing.T) {
	s := NewSection(Identity())
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0]:
	// n=0: y=0.25,  d0=0.55,  d1=0.24
	// n=1: y=0.55,  d0=0.35,  d1=-0.022
	// n=2: y=0.35,  d0=0.048, d1=-0.014
	// n=3: y=0.048
	s := NewSection(testCoefficients())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}

		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("n=%d: got %v, want %v", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	input := testutil.DeterministicNoise(3, 1, 257)

	ref := NewSection(testCoefficients())
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(testCoefficients())
	got := append([]float64(nil), input...)
	// Split into uneven blocks to exercise state carry-over.
	s.ProcessBlock(got[:100])
	s.ProcessBlock(got[100:101])
	s.ProcessBlock(got[101:])

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	if s.State() != ref.State() {
		t.Fatalf("state mismatch: block=%v sample=%v", s.State(), ref.State())
	}
}

func TestProcessBlock_Empty(t *testing.T) {
	s := NewSection(testCoefficients())
	s.SetState([2]float64{0.5, 0.25})
	s.ProcessBlock(nil)

	if s.State() != [2]float64{0.5, 0.25} {
		t.Fatalf("empty block changed state: %v", s.State())
	}
}

func TestCoefficientSwapKeepsState(t *testing.T) {
	s := NewSection(testCoefficients())
	s.ProcessSample(1)
	before := s.State()

	s.Coefficients = Identity()
	if s.State() != before {
		t.Fatalf("assigning coefficients reset state: %v -> %v", before, s.State())
	}
}

func TestResetAndFlushDenormals(t *testing.T) {
	s := NewSection(testCoefficients())
	s.SetState([2]float64{1e-310, 0.5})
	s.FlushDenormals()

	if st := s.State(); st[0] != 0 || st[1] != 0.5 {
		t.Fatalf("FlushDenormals state = %v, want [0 0.5]", st)
	}

	s.Reset()
	if st := s.State(); st != [2]float64{} {
		t.Fatalf("Reset state = %v, want zero", st)
	}
}

func TestFlushDenormalsResetsNonFiniteState(t *testing.T) {
	for _, state := range [][2]float64{
		{math.NaN(), 0.5},
		{0.5, math.Inf(1)},
		{math.Inf(-1), math.NaN()},
	} {
		s := NewSection(testCoefficients())
		s.SetState(state)
		s.FlushDenormals()

		if st := s.State(); st != [2]float64{} {
			t.Fatalf("state %v after flush = %v, want zero", state, st)
		}
	}

	s := NewSection(testCoefficients())
	buf := []float64{math.MaxFloat64, math.MaxFloat64, math.Inf(1)}
	s.ProcessBlock(buf)
	s.FlushDenormals()

	buf = []float64{1, 0, 0, 0}
	s.ProcessBlock(buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0.25, 0.55, 0.35, 0.048}, eps)
}

func TestImpulseResponsePreservesState(t *testing.T) {
	s := NewSection(testCoefficients())
	s.SetState([2]float64{0.3, -0.1})

	ir := s.ImpulseResponse(4)
	testutil.RequireSliceNearlyEqual(t, ir, []float64{0.25, 0.55, 0.35, 0.048}, eps)

	if s.State() != [2]float64{0.3, -0.1} {
		t.Fatalf("ImpulseResponse modified state: %v", s.State())
	}

	if s.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}

func TestStable(t *testing.T) {
	if !testCoefficients().Stable() {
		t.Fatal("expected test coefficients to be stable")
	}

	if (Coefficients{B0: 1, A1: -2.1, A2: 1.1}).Stable() {
		t.Fatal("expected unstable coefficients to be reported")
	}
}

func TestKernelSelected(t *testing.T) {
	if KernelName() == "" {
		t.Fatal("no kernel selected")
	}
}

func TestResponseMatchesMagnitude(t *testing.T) {
	c := testCoefficients()
	for _, f := range []float64{50, 1000, 9000} {
		h := c.Response(f, 48000)
		mag2 := real(h)*real(h) + imag(h)*imag(h)
		if !almostEqual(mag2, c.MagnitudeSquared(f, 48000), 1e-9) {
			t.Fatalf("f=%v: |H|^2 %v vs closed form %v", f, mag2, c.MagnitudeSquared(f, 48000))
		}
	}
}
