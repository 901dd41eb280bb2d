package touchcal

import "tinygo.org/x/drivers/touch"

// Source is the raw touch input as seen by the calibrator. Coordinates are in
// the controller's native units, not pixels; Z is a pressure proxy where
// larger means firmer contact.
//
// Touch controllers with an interrupt line (like the XPT2046 driver in
// tinygo.org/x/drivers) satisfy this interface directly.
type Source interface {
	// Touched reports whether contact is currently detected. It must not
	// block.
	Touched() bool

	// ReadTouchPoint returns the most recent raw sample. While Touched
	// reports true, every call is expected to return a fresh sample.
	ReadTouchPoint() touch.Point
}

// FromPointer adapts a bare touch.Pointer, a controller without a
// touch-detect line, into a Source. Contact is detected by reading a sample
// and comparing its pressure against contactThreshold.
//
// Note that this consumes a sample per Touched poll, which is fine: the
// calibrator discards the first sample after every positive poll anyway.
func FromPointer(p touch.Pointer, contactThreshold int) Source {
	return &pointerSource{pointer: p, threshold: contactThreshold}
}

type pointerSource struct {
	pointer   touch.Pointer
	threshold int
}

func (s *pointerSource) Touched() bool {
	return s.pointer.ReadTouchPoint().Z > s.threshold
}

func (s *pointerSource) ReadTouchPoint() touch.Point {
	return s.pointer.ReadTouchPoint()
}
