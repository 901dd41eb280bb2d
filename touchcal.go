// Package touchcal calibrates a resistive touch panel against the display it
// is mounted on.
//
// The user is guided through touching two known screen locations (the
// top-left and bottom-right corners). Noisy raw controller samples are
// filtered and averaged into two corner references, which parameterize a
// per-axis linear map from raw coordinates to screen pixels. A live test mode
// then draws a marker at the mapped position of every accepted touch, so the
// result can be checked by eye before the constants are copied into other
// programs.
package touchcal

import "time"

// Config holds the tunables of a calibration run. The zero value selects the
// built-in defaults for everything except the durations and Verbose, which
// are used as-is (a zero delay means no pacing). Use DefaultConfig to get the
// default timings too.
//
// These can be modified to match whatever panel your main target has. The
// pressure thresholds are in the raw Z scale of the touch controller, which
// varies a lot between controllers; the defaults match an XPT2046 read
// through its Z1/Z2 channels.
type Config struct {
	// Samples is the number of accepted readings per corner.
	Samples int

	// Window is the number of raw samples averaged into one reading. One
	// extra raw sample is always read and discarded first.
	Window int

	// CalibrationThreshold is the pressure a reading must exceed to be
	// accepted during a calibration phase.
	CalibrationThreshold int

	// TouchThreshold is the pressure a reading must exceed to be accepted in
	// live test mode. It is independent of CalibrationThreshold: neither is
	// required to exceed the other.
	TouchThreshold int

	// MinSpan is the minimum raw-coordinate distance required between the
	// two corner references on each axis. Calibration fails with
	// ErrDegenerate below it. Values below 1 select the default.
	MinSpan int

	// SampleInterval is the pause between successive raw reads, to respect
	// the controller's conversion rate.
	SampleInterval time.Duration

	// SettleDelay is the pause between calibration phases, letting residual
	// finger contact clear before the next phase starts sampling.
	SettleDelay time.Duration

	// DrawDelay bounds the marker draw rate in live test mode.
	DrawDelay time.Duration

	// Verbose reports every raw sample and every raw/mapped pair on the
	// diagnostic writer.
	Verbose bool
}

// DefaultConfig returns the default configuration: 20 accepted readings per
// corner, 4 raw samples per reading, thresholds 150 (calibration) and 500
// (live), 10ms sample pacing, a 2s settle delay and a 20ms draw delay.
func DefaultConfig() Config {
	return Config{
		Samples:              20,
		Window:               4,
		CalibrationThreshold: 150,
		TouchThreshold:       500,
		MinSpan:              16,
		SampleInterval:       10 * time.Millisecond,
		SettleDelay:          2 * time.Second,
		DrawDelay:            20 * time.Millisecond,
	}
}

// Fill in defaults for fields where the zero value can't mean anything
// sensible. Durations are kept as-is: zero delays are valid (and what the
// tests use).
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Samples < 1 {
		c.Samples = def.Samples
	}
	if c.Window < 1 {
		c.Window = def.Window
	}
	if c.CalibrationThreshold == 0 {
		c.CalibrationThreshold = def.CalibrationThreshold
	}
	if c.TouchThreshold == 0 {
		c.TouchThreshold = def.TouchThreshold
	}
	if c.MinSpan < 1 {
		c.MinSpan = def.MinSpan
	}
	return c
}
