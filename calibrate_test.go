package touchcal

import (
	"bytes"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers/touch"
)

// fakeScreen records the drawing calls the calibrator makes.
type fakeScreen struct {
	width   int16
	height  int16
	markers []touch.Point // FilledCircle centers, Z unused
	texts   []string
}

func (s *fakeScreen) Size() (int16, int16) { return s.width, s.height }

func (s *fakeScreen) FillScreen(color.RGBA) {}

func (s *fakeScreen) FillRectangle(_, _, _, _ int16, _ color.RGBA) {}

func (s *fakeScreen) Line(_, _, _, _ int16, _ color.RGBA) {}

func (s *fakeScreen) SetTextColor(_, _ color.RGBA) {}

func (s *fakeScreen) CenteredText(text string, _, _ int16) {
	s.texts = append(s.texts, text)
}
func (s *fakeScreen) FilledCircle(x, y, _ int16, _ color.RGBA) {
	s.markers = append(s.markers, touch.Point{X: int(x), Y: int(y)})
}

// twoPhaseSource reports one fixed sample for the first boundary reads and a
// second one afterwards, standing in for a user holding first one corner and
// then the other.
type twoPhaseSource struct {
	first    touch.Point
	second   touch.Point
	boundary int
	reads    int
}

func (s *twoPhaseSource) Touched() bool { return true }

func (s *twoPhaseSource) ReadTouchPoint() touch.Point {
	s.reads++
	if s.reads <= s.boundary {
		return s.first
	}
	return s.second
}

// seqSource replays a list of samples and then keeps returning the last one.
type seqSource struct {
	points []touch.Point
	reads  int
}

func (s *seqSource) Touched() bool { return true }

func (s *seqSource) ReadTouchPoint() touch.Point {
	i := s.reads
	if i >= len(s.points) {
		i = len(s.points) - 1
	}
	s.reads++
	return s.points[i]
}

func TestCalibrateEndToEnd(t *testing.T) {
	c := qt.New(t)

	// 20 accepted readings per corner, 4+1 raw samples per reading: the first
	// corner consumes exactly 100 reads.
	source := &twoPhaseSource{
		first:    touch.Point{X: 100, Y: 200, Z: 300},
		second:   touch.Point{X: 900, Y: 800, Z: 300},
		boundary: 100,
	}
	screen := &fakeScreen{width: 240, height: 320}
	out := &bytes.Buffer{}
	cal := New(source, screen, out, Config{Samples: 20, Window: 4})

	transform, err := cal.Calibrate()
	c.Assert(err, qt.IsNil)

	topLeft, bottomRight := cal.References()
	c.Assert(topLeft, qt.Equals, Reference{X: 100, Y: 200})
	c.Assert(bottomRight, qt.Equals, Reference{X: 900, Y: 800})

	x, y := transform.Apply(touch.Point{X: 100, Y: 200})
	c.Assert(x, qt.Equals, 1)
	c.Assert(y, qt.Equals, 1)
	x, y = transform.Apply(touch.Point{X: 900, Y: 800})
	c.Assert(x, qt.Equals, 240)
	c.Assert(y, qt.Equals, 320)
	x, y = transform.Apply(touch.Point{X: 500, Y: 500})
	c.Assert(x, qt.Equals, 120)
	c.Assert(y, qt.Equals, 160)

	c.Assert(out.String(), qt.Contains, "=== Collecting data for the top left corner ===")
	c.Assert(out.String(), qt.Contains, "=== Collecting data for the bottom right corner ===")
	c.Assert(out.String(), qt.Contains, "x0  100 x1  900 y0  200 y1  800")
	c.Assert(screen.texts, qt.Contains, "Touch in Top Left")
	c.Assert(screen.texts, qt.Contains, "Bottom Right")
	c.Assert(screen.texts, qt.Contains, "Calibration done")
}

func TestCalibrateRejectsLightTouches(t *testing.T) {
	c := qt.New(t)

	// The first reading is below the calibration threshold and must never
	// reach the corner's sample set, conspicuous coordinates and all.
	points := make([]touch.Point, 0, 10)
	for i := 0; i < 5; i++ {
		points = append(points, touch.Point{X: 9999, Y: 9999, Z: 100})
	}
	points = append(points, touch.Point{X: 100, Y: 200, Z: 300})
	source := &seqSource{points: points}
	screen := &fakeScreen{width: 240, height: 320}
	cal := New(source, screen, nil, Config{Samples: 2, Window: 4})

	ref := cal.collectCorner()
	c.Assert(ref, qt.Equals, Reference{X: 100, Y: 200})
}

func TestCalibrateDegenerateCorners(t *testing.T) {
	c := qt.New(t)

	source := &twoPhaseSource{
		first:    touch.Point{X: 500, Y: 500, Z: 300},
		second:   touch.Point{X: 505, Y: 503, Z: 300},
		boundary: 100,
	}
	screen := &fakeScreen{width: 240, height: 320}
	cal := New(source, screen, nil, Config{Samples: 20, Window: 4})

	_, err := cal.Calibrate()
	c.Assert(err, qt.ErrorIs, ErrDegenerate)
}

func TestLiveStepThresholdAndMapping(t *testing.T) {
	c := qt.New(t)

	transform, err := NewTransform(Reference{X: 100, Y: 200}, Reference{X: 900, Y: 800}, 240, 320, 0)
	c.Assert(err, qt.IsNil)

	screen := &fakeScreen{width: 240, height: 320}

	// z=300 passes the calibration gate (150) but not the live gate (500):
	// the two thresholds must never be swapped.
	source := &seqSource{points: []touch.Point{{X: 500, Y: 500, Z: 300}}}
	cal := New(source, screen, nil, Config{Samples: 20, Window: 4})
	c.Assert(cal.LiveStep(transform), qt.IsFalse)
	c.Assert(screen.markers, qt.HasLen, 0)

	source = &seqSource{points: []touch.Point{{X: 500, Y: 500, Z: 600}}}
	cal = New(source, screen, nil, Config{Samples: 20, Window: 4})
	c.Assert(cal.LiveStep(transform), qt.IsTrue)
	c.Assert(screen.markers, qt.HasLen, 1)
	c.Assert(screen.markers[0], qt.Equals, touch.Point{X: 120, Y: 160})
}

func TestLiveStepNotTouched(t *testing.T) {
	c := qt.New(t)

	source := &scriptSource{points: []touch.Point{{X: 1, Y: 1, Z: 9999}}, touched: false}
	screen := &fakeScreen{width: 240, height: 320}
	cal := New(source, screen, nil, Config{})

	transform, err := NewTransform(Reference{X: 100, Y: 200}, Reference{X: 900, Y: 800}, 240, 320, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(cal.LiveStep(transform), qt.IsFalse)
	c.Assert(source.reads, qt.Equals, 0)
}
