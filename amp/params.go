package amp

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Parameter IDs as exposed to hosts and the CLI.
const (
	ParamInput  = "input"
	ParamDrive  = "drive"
	ParamLow    = "low"
	ParamMid    = "mid"
	ParamHigh   = "high"
	ParamOutput = "output"
)

// Spec describes one user parameter.
type Spec struct {
	ID      string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Clamp maps v into [Min, Max]. NaN maps to Default.
func (s Spec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}

	return core.Clamp(v, s.Min, s.Max)
}

// Normalize maps a plain value to [0, 1].
func (s Spec) Normalize(v float64) float64 {
	if s.Max <= s.Min {
		return 0
	}

	return (s.Clamp(v) - s.Min) / (s.Max - s.Min)
}

// Denormalize maps a [0, 1] value to the plain range.
func (s Spec) Denormalize(n float64) float64 {
	return s.Min + core.Clamp(n, 0, 1)*(s.Max-s.Min)
}

// Format renders v with its unit.
func (s Spec) Format(v float64) string {
	return fmt.Sprintf("%+.1f %s", v, s.Unit)
}

const numParams = 6

// Index order of the atomic slots.
const (
	idxInput = iota
	idxDrive
	idxLow
	idxMid
	idxHigh
	idxOutput
)

var specs = [numParams]Spec{
	idxInput:  {ID: ParamInput, Name: "Input", Unit: "dB", Min: -36, Max: 36},
	idxDrive:  {ID: ParamDrive, Name: "Drive", Unit: "dB", Min: 0, Max: 24},
	idxLow:    {ID: ParamLow, Name: "Low", Unit: "dB", Min: -6, Max: 6},
	idxMid:    {ID: ParamMid, Name: "Mid", Unit: "dB", Min: -6, Max: 6},
	idxHigh:   {ID: ParamHigh, Name: "High", Unit: "dB", Min: -6, Max: 6},
	idxOutput: {ID: ParamOutput, Name: "Output", Unit: "dB", Min: -36, Max: 36},
}

// ParameterSpecs returns the parameter table in display order.
func ParameterSpecs() []Spec {
	out := make([]Spec, numParams)
	copy(out, specs[:])

	return out
}

// LookupSpec returns the spec for id.
func LookupSpec(id string) (Spec, bool) {
	i := indexOf(id)
	if i < 0 {
		return Spec{}, false
	}

	return specs[i], true
}

func indexOf(id string) int {
	for i := range specs {
		if specs[i].ID == id {
			return i
		}
	}

	return -1
}

// Snapshot is the parameter set used for one block. All values are in dB.
type Snapshot struct {
	InputDB  float64
	DriveDB  float64
	LowDB    float64
	MidDB    float64
	HighDB   float64
	OutputDB float64
}

// DefaultSnapshot returns every parameter at its default.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		InputDB:  specs[idxInput].Default,
		DriveDB:  specs[idxDrive].Default,
		LowDB:    specs[idxLow].Default,
		MidDB:    specs[idxMid].Default,
		HighDB:   specs[idxHigh].Default,
		OutputDB: specs[idxOutput].Default,
	}
}

// Clamped returns s with every field clamped to its published range.
func (s Snapshot) Clamped() Snapshot {
	return Snapshot{
		InputDB:  specs[idxInput].Clamp(s.InputDB),
		DriveDB:  specs[idxDrive].Clamp(s.DriveDB),
		LowDB:    specs[idxLow].Clamp(s.LowDB),
		MidDB:    specs[idxMid].Clamp(s.MidDB),
		HighDB:   specs[idxHigh].Clamp(s.HighDB),
		OutputDB: specs[idxOutput].Clamp(s.OutputDB),
	}
}

// Value returns the field for parameter id, or NaN for an unknown id.
func (s Snapshot) Value(id string) float64 {
	i := indexOf(id)
	if i < 0 {
		return math.NaN()
	}

	return *s.slot(i)
}

func (s *Snapshot) slot(i int) *float64 {
	switch i {
	case idxInput:
		return &s.InputDB
	case idxDrive:
		return &s.DriveDB
	case idxLow:
		return &s.LowDB
	case idxMid:
		return &s.MidDB
	case idxHigh:
		return &s.HighDB
	default:
		return &s.OutputDB
	}
}

// ParameterSource supplies the per-block snapshot. Snapshot is called on the
// audio goroutine and must not block.
type ParameterSource interface {
	Snapshot() Snapshot
}

// StaticSource is a fixed ParameterSource.
type StaticSource Snapshot

// Snapshot returns the fixed values.
func (s StaticSource) Snapshot() Snapshot {
	return Snapshot(s)
}

// Parameters is a lock-free parameter store. Each value is one atomic 64-bit
// word, so readers never see a torn value; a snapshot may mix values written
// concurrently with it, which is acceptable staleness.
type Parameters struct {
	values [numParams]atomic.Uint64
}

// NewParameters returns a store holding the defaults.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.SetSnapshot(DefaultSnapshot())

	return p
}

// Get returns the current value of id, or NaN for an unknown id.
func (p *Parameters) Get(id string) float64 {
	i := indexOf(id)
	if i < 0 {
		return math.NaN()
	}

	return math.Float64frombits(p.values[i].Load())
}

// Set stores value for id, clamped to the parameter range.
func (p *Parameters) Set(id string, value float64) error {
	i := indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	p.values[i].Store(math.Float64bits(specs[i].Clamp(value)))

	return nil
}

// SetNormalized stores a host-normalised [0, 1] value for id.
func (p *Parameters) SetNormalized(id string, n float64) error {
	i := indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	return p.Set(id, specs[i].Denormalize(n))
}

// SetSnapshot stores every field of s, clamped.
func (p *Parameters) SetSnapshot(s Snapshot) {
	s = s.Clamped()
	for i := range numParams {
		p.values[i].Store(math.Float64bits(*s.slot(i)))
	}
}

// Snapshot loads every parameter once.
func (p *Parameters) Snapshot() Snapshot {
	var s Snapshot
	for i := range numParams {
		*s.slot(i) = math.Float64frombits(p.values[i].Load())
	}

	return s
}
