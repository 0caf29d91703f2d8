package shaper

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/core"
)

const (
	// thermalVoltage is the diode thermal voltage in volts.
	thermalVoltage = 0.0253
	// idealityFactor is the diode emission coefficient.
	idealityFactor = 1.68
	// inputScale maps full-scale samples to a 100 mV diode voltage.
	inputScale = 0.1
	// driveScale is the fixed pre-atan gain applied on top of the drive.
	driveScale = 16

	expCoeff = inputScale / (thermalVoltage * idealityFactor)

	// maxExpArg bounds the exponent. At 24 dB drive the atan argument stays
	// below 1e13, which keeps the output strictly under one.
	maxExpArg = 24.0
	// minExpArg is where exp(x)-1 is already -1 to double precision.
	minExpArg = -40.0
)

// Drive range in dB.
const (
	MinDriveDB = 0.0
	MaxDriveDB = 24.0
)

var twoOverPi = 2 / math.Pi

// Transfer evaluates the diode clipper for one sample with a linear drive
// factor. It never returns NaN or Inf for finite x and drive.
func Transfer(x, drive float64) float64 {
	if x == 0 || x != x {
		return 0
	}

	arg := core.Clamp(x*expCoeff, minExpArg, maxExpArg)
	e := mathExpm1(arg)

	return twoOverPi * math.Atan(e*drive*driveScale)
}

// DiodeClipper applies Transfer with a drive set in decibels.
type DiodeClipper struct {
	driveDB float64
	drive   float64
}

// NewDiodeClipper returns a clipper with the given drive in dB.
func NewDiodeClipper(driveDB float64) *DiodeClipper {
	c := &DiodeClipper{}
	c.SetDriveDecibels(driveDB)

	return c
}

// SetDriveDecibels sets the drive, clamped to [MinDriveDB, MaxDriveDB].
func (c *DiodeClipper) SetDriveDecibels(db float64) {
	c.driveDB = core.Clamp(db, MinDriveDB, MaxDriveDB)
	c.drive = core.DBToLinear(c.driveDB)
}

// DriveDecibels returns the clamped drive in dB.
func (c *DiodeClipper) DriveDecibels() float64 {
	return c.driveDB
}

// ProcessSample shapes one sample.
func (c *DiodeClipper) ProcessSample(x float64) float64 {
	return Transfer(x, c.linearDrive())
}

// ProcessBlock shapes buf in place.
func (c *DiodeClipper) ProcessBlock(buf []float64) {
	d := c.linearDrive()
	for i, x := range buf {
		buf[i] = Transfer(x, d)
	}
}

// Process shapes every channel in place.
func (c *DiodeClipper) Process(channels [][]float64) {
	for _, ch := range channels {
		c.ProcessBlock(ch)
	}
}

// linearDrive treats the zero value as 0 dB.
func (c *DiodeClipper) linearDrive() float64 {
	if c.drive == 0 {
		return 1
	}

	return c.drive
}
