package touchcal

import (
	"errors"

	"tinygo.org/x/drivers/touch"
)

// Reference is the averaged raw coordinate of one calibration corner.
type Reference struct {
	X int
	Y int
}

// ErrDegenerate is returned when the two corner references are identical or
// nearly identical on an axis, so no usable mapping can be derived from them.
// This usually means the same corner was touched twice.
var ErrDegenerate = errors.New("touchcal: corner references too close to derive a mapping")

// Transform converts raw touch coordinates into screen pixels, one linear map
// per axis. Screen coordinates run from 1 to the screen dimension. Construct
// it with NewTransform.
type Transform struct {
	TopLeft     Reference
	BottomRight Reference
	Width       int
	Height      int
}

// NewTransform derives the mapping from the two corner references and the
// screen size in pixels. It fails with ErrDegenerate when the raw span
// between the references on either axis is smaller than minSpan (values
// below 1 select the DefaultConfig minimum).
func NewTransform(topLeft, bottomRight Reference, width, height int, minSpan int) (Transform, error) {
	if minSpan < 1 {
		minSpan = DefaultConfig().MinSpan
	}
	if abs(bottomRight.X-topLeft.X) < minSpan || abs(bottomRight.Y-topLeft.Y) < minSpan {
		return Transform{}, ErrDegenerate
	}
	return Transform{
		TopLeft:     topLeft,
		BottomRight: bottomRight,
		Width:       width,
		Height:      height,
	}, nil
}

// Apply maps a raw sample to screen coordinates. The result is not clamped:
// touches outside the calibrated corners map outside [1, dimension], and it
// is up to the display layer to clip them.
func (t Transform) Apply(p touch.Point) (x, y int) {
	x = Map(p.X, t.TopLeft.X, t.BottomRight.X, 1, t.Width)
	y = Map(p.Y, t.TopLeft.Y, t.BottomRight.Y, 1, t.Height)
	return x, y
}

// Map linearly maps value from the range [fromLow, fromHigh] to the range
// [toLow, toHigh] with truncating integer arithmetic. Either range may be
// inverted. fromLow and fromHigh must differ.
func Map(value, fromLow, fromHigh, toLow, toHigh int) int {
	return (value-fromLow)*(toHigh-toLow)/(fromHigh-fromLow) + toLow
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
