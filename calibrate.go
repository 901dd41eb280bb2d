package touchcal

import (
	"image/color"
	"io"
	"time"
)

// Size of the corner marker squares, and radius of the live test marker.
const (
	arrowSize    = 15
	markerRadius = 2
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

// Calibrator owns a calibration run: the two corner phases, the derived
// transform and the live test mode.
type Calibrator struct {
	cfg    Config
	source Source
	screen Screen
	filter *Filter
	report *Reporter

	topLeft     Reference
	bottomRight Reference
}

// New returns a calibrator reading from source, drawing on screen and writing
// diagnostics to out (nil discards them). Zero-valued counts and thresholds
// in cfg are replaced by the DefaultConfig values.
func New(source Source, screen Screen, out io.Writer, cfg Config) *Calibrator {
	cfg = cfg.withDefaults()
	c := &Calibrator{
		cfg:    cfg,
		source: source,
		screen: screen,
		filter: NewFilter(source, cfg.Window, cfg.SampleInterval),
		report: NewReporter(out),
	}
	if cfg.Verbose {
		c.filter.report = c.report
	}
	return c
}

// References returns the two corner references captured by the last
// Calibrate call.
func (c *Calibrator) References() (topLeft, bottomRight Reference) {
	return c.topLeft, c.bottomRight
}

// Calibrate runs the two corner phases and derives the transform.
//
// Each phase blocks until the corner has its full set of accepted readings:
// there is no timeout, no abort path and no way to skip a corner. If the
// panel never reports contact, or touches never exceed the calibration
// pressure threshold, Calibrate never returns.
//
// The only error is ErrDegenerate, when the two corners were not touched at
// meaningfully different raw positions.
func (c *Calibrator) Calibrate() (Transform, error) {
	width, height := c.screen.Size()

	c.drawGuidance(TopLeft)
	c.report.Phase(TopLeft)
	c.topLeft = c.collectCorner()
	c.settle()

	c.drawGuidance(BottomRight)
	c.report.Phase(BottomRight)
	c.bottomRight = c.collectCorner()
	c.settle()

	c.drawDone()
	c.report.Summary(c.topLeft, c.bottomRight, int(width), int(height))
	return NewTransform(c.topLeft, c.bottomRight, int(width), int(height), c.cfg.MinSpan)
}

// Run calibrates and then serves the live test mode forever. It returns only
// when calibration fails.
func (c *Calibrator) Run() error {
	t, err := c.Calibrate()
	if err != nil {
		return err
	}
	for {
		c.LiveStep(t)
	}
}

// LiveStep performs a single live test iteration: poll, filter, gate on the
// live pressure threshold, and draw a marker at the mapped position. It
// reports whether a marker was drawn.
func (c *Calibrator) LiveStep(t Transform) bool {
	if !c.source.Touched() {
		return false
	}
	p := c.filter.Read()
	if p.Z <= c.cfg.TouchThreshold {
		return false
	}
	if c.cfg.Verbose {
		c.report.Raw(p)
	}
	x, y := t.Apply(p)
	if c.cfg.Verbose {
		c.report.Mapped(x, y, p.Z)
	}
	c.screen.FilledCircle(int16(x), int16(y), markerRadius, red)
	if c.cfg.DrawDelay > 0 {
		time.Sleep(c.cfg.DrawDelay)
	}
	return true
}

// Busy-poll the source until the corner's sample set is complete. Readings at
// or below the calibration pressure threshold are discarded silently: they
// are glancing contact or noise, not a deliberate touch.
func (c *Calibrator) collectCorner() Reference {
	session := NewSession(c.cfg.Samples)
	for !session.Full() {
		if !c.source.Touched() {
			continue
		}
		p := c.filter.Read()
		if p.Z <= c.cfg.CalibrationThreshold {
			continue
		}
		c.report.Sample(session.Count(), p)
		session.Add(p)
	}
	return session.Reference()
}

func (c *Calibrator) settle() {
	width, height := c.screen.Size()
	c.screen.FillScreen(black)
	c.screen.SetTextColor(black, white)
	c.screen.CenteredText("Run Calibration", width/2, height/2-50)
	c.screen.CenteredText("STOP TOUCHING", width/2, height/2)
	if c.cfg.SettleDelay > 0 {
		time.Sleep(c.cfg.SettleDelay)
	}
}

func (c *Calibrator) drawGuidance(corner Corner) {
	width, height := c.screen.Size()
	c.screen.FillScreen(black)
	c.screen.SetTextColor(black, white)
	switch corner {
	case TopLeft:
		c.drawArrowTopLeft()
		c.screen.CenteredText("Run Calibration", width/2, height/2-50)
		c.screen.CenteredText("Touch in Top Left", width/2, height/2)
		c.screen.CenteredText("Corner and hold", width/2, height/2+50)
	case BottomRight:
		c.drawArrowBottomRight()
		c.screen.CenteredText("Run Calibration", width/2, height/2-100)
		c.screen.CenteredText("Touch in", width/2, height/2-50)
		c.screen.CenteredText("Bottom Right", width/2, height/2)
		c.screen.CenteredText("Corner and hold", width/2, height/2+50)
	}
}

func (c *Calibrator) drawDone() {
	width, height := c.screen.Size()
	c.screen.FillScreen(black)
	c.screen.SetTextColor(black, white)
	c.screen.CenteredText("Calibration done", width/2, height/2-50)
	c.screen.CenteredText("Test Touch", width/2, height/2)
}

func (c *Calibrator) drawArrowTopLeft() {
	c.screen.FillRectangle(0, 0, arrowSize+1, arrowSize+1, red)
	c.screen.Line(0, 0, 0, arrowSize, white)
	c.screen.Line(0, 0, arrowSize, 0, white)
	c.screen.Line(0, 0, arrowSize, arrowSize, white)
}

func (c *Calibrator) drawArrowBottomRight() {
	width, height := c.screen.Size()
	c.screen.FillRectangle(width-arrowSize-1, height-arrowSize-1, arrowSize+1, arrowSize+1, red)
	c.screen.Line(width-arrowSize-1, height-arrowSize-1, width-1, height-1, white)
	c.screen.Line(width-1, height-1-arrowSize, width-1, height-1, white)
	c.screen.Line(width-1-arrowSize, height-1, width-1, height-1, white)
}
