package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/internal/testutil"
)

func mustNew(t *testing.T, sampleRate float64, channels ...[]float64) *ImpulseResponse {
	t.Helper()

	r, err := New("test", sampleRate, channels...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return r
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		channels [][]float64
		want     error
	}{
		{name: "no channels", rate: 48000, want: ErrEmpty},
		{name: "empty channel", rate: 48000, channels: [][]float64{{}}, want: ErrEmpty},
		{name: "zero rate", rate: 0, channels: [][]float64{{1}}, want: ErrInvalidRate},
		{name: "nan rate", rate: math.NaN(), channels: [][]float64{{1}}, want: ErrInvalidRate},
		{name: "ragged", rate: 48000, channels: [][]float64{{1, 2}, {1}}, want: ErrChannelLength},
		{name: "nan sample", rate: 48000, channels: [][]float64{{1, math.NaN()}}, want: ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("x", tt.rate, tt.channels...); !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChannelMapping(t *testing.T) {
	mono := mustNew(t, 48000, []float64{1, 2})
	for c := range 4 {
		if got := mono.Channel(c); got[1] != 2 {
			t.Fatalf("mono.Channel(%d) = %v, want channel 0", c, got)
		}
	}

	stereo := mustNew(t, 48000, []float64{1}, []float64{2})
	if got := stereo.Channel(0)[0]; got != 1 {
		t.Fatalf("stereo.Channel(0) = %v, want 1", got)
	}

	if got := stereo.Channel(1)[0]; got != 2 {
		t.Fatalf("stereo.Channel(1) = %v, want 2", got)
	}

	if got := stereo.Channel(7)[0]; got != 2 {
		t.Fatalf("stereo.Channel(7) = %v, want last channel", got)
	}

	if got := stereo.Duration(); math.Abs(got-1.0/48000) > 1e-15 {
		t.Fatalf("Duration() = %v, want %v", got, 1.0/48000)
	}
}

func TestTrimBothEnds(t *testing.T) {
	r := mustNew(t, 48000, []float64{0, 0, 1e-5, 0.5, 0, 0.2, 1e-5, 0})

	got, err := Trim(r, TrimThreshold)
	if err != nil {
		t.Fatalf("Trim() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got.Channels[0], []float64{0.5, 0, 0.2}, 0)

	if r.Len() != 8 {
		t.Fatal("Trim mutated its input")
	}
}

func TestTrimUsesLoudestChannelPerEdge(t *testing.T) {
	r := mustNew(t, 48000,
		[]float64{0, 0, 1, 0, 0, 0},
		[]float64{0, 0, 0, 0, 1, 0},
	)

	got, err := Trim(r, TrimThreshold)
	if err != nil {
		t.Fatalf("Trim() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got.Channels[0], []float64{1, 0, 0}, 0)
	testutil.RequireSliceNearlyEqual(t, got.Channels[1], []float64{0, 0, 1}, 0)
}

func TestTrimSilent(t *testing.T) {
	r := mustNew(t, 48000, []float64{0, 1e-6, -1e-5})

	if _, err := Trim(r, TrimThreshold); !errors.Is(err, ErrSilent) {
		t.Fatalf("Trim(silent) error = %v, want ErrSilent", err)
	}
}

func TestNormalizeKeepsChannelBalance(t *testing.T) {
	r := mustNew(t, 48000, []float64{2, 0}, []float64{0, 1})

	got, err := Normalize(r)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got.Channels[0], []float64{1, 0}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, got.Channels[1], []float64{0, 0.5}, 1e-15)

	if r.Channels[0][0] != 2 {
		t.Fatal("Normalize mutated its input")
	}

	if _, err := Normalize(mustNew(t, 48000, []float64{0, 0})); !errors.Is(err, ErrSilent) {
		t.Fatalf("Normalize(zeros) error = %v, want ErrSilent", err)
	}
}

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{3, 4}); got != 25 {
		t.Fatalf("Energy() = %v, want 25", got)
	}

	if got := Energy(nil); got != 0 {
		t.Fatalf("Energy(nil) = %v, want 0", got)
	}
}

func TestResample(t *testing.T) {
	r := mustNew(t, 48000, testutil.Impulse(480, 10))

	same, err := Resample(r, 48000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	same.Channels[0][10] = 0
	if r.Channels[0][10] != 1 {
		t.Fatal("Resample at equal rate aliased its input")
	}

	down, err := Resample(r, 44100)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	if down.SampleRate != 44100 || down.Len() != 441 {
		t.Fatalf("Resample() = %v Hz, %d samples, want 44100 Hz, 441 samples", down.SampleRate, down.Len())
	}
}

func TestPrepare(t *testing.T) {
	tail := testutil.DeterministicNoise(5, 1, 600)
	for i := range tail {
		tail[i] *= math.Exp(-float64(i) / 60)
	}

	raw := append(make([]float64, 200), tail...)
	raw = append(raw, make([]float64, 300)...)

	r := mustNew(t, 48000, raw, raw, raw)

	got, err := Prepare(r, 44100)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if got.NumChannels() != MaxChannels {
		t.Fatalf("NumChannels() = %d, want %d", got.NumChannels(), MaxChannels)
	}

	if got.SampleRate != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", got.SampleRate)
	}

	if got.Len() >= len(raw)*441/480 {
		t.Fatalf("Len() = %d, leading/trailing silence not trimmed", got.Len())
	}

	for c, ch := range got.Channels {
		if e := Energy(ch); math.Abs(e-1) > 1e-3 {
			t.Fatalf("channel %d energy = %v, want ~1", c, e)
		}

		if math.Abs(ch[0]) < TrimThreshold || math.Abs(ch[len(ch)-1]) < TrimThreshold {
			t.Fatalf("channel %d edges %v, %v below trim threshold", c, ch[0], ch[len(ch)-1])
		}
	}
}

func TestPrepareErrors(t *testing.T) {
	if _, err := Prepare(nil, 48000); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Prepare(nil) error = %v, want ErrEmpty", err)
	}

	if _, err := Prepare(mustNew(t, 48000, []float64{1}), -1); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("Prepare(rate -1) error = %v, want ErrInvalidRate", err)
	}

	if _, err := Prepare(mustNew(t, 48000, make([]float64, 64)), 48000); !errors.Is(err, ErrSilent) {
		t.Fatalf("Prepare(silent) error = %v, want ErrSilent", err)
	}
}
