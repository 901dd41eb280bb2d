package touchcal

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

// Screen is the drawing surface the calibrator renders guidance and test
// markers on. Calls are fire-and-forget; drawing outside the screen bounds is
// clipped by the implementation.
type Screen interface {
	// Size returns the screen size in pixels.
	Size() (width, height int16)

	// FillScreen fills the whole screen with a color.
	FillScreen(c color.RGBA)

	// FillRectangle fills a pixel rectangle.
	FillRectangle(x, y, w, h int16, c color.RGBA)

	// Line draws a one pixel wide line between two points.
	Line(x0, y0, x1, y1 int16, c color.RGBA)

	// FilledCircle fills a circle of radius r centered on (x, y).
	FilledCircle(x, y, r int16, c color.RGBA)

	// SetTextColor sets the foreground and background used by CenteredText.
	SetTextColor(fg, bg color.RGBA)

	// CenteredText draws one line of text horizontally centered on x, with y
	// as the text baseline.
	CenteredText(text string, x, y int16)
}

// TFT implements Screen on top of any drivers.Displayer (ili9341, st7789,
// the simulator display, ...) using tinyfont for text and tinydraw for the
// primitives.
type TFT struct {
	display drivers.Displayer
	font    tinyfont.Fonter
	fg      color.RGBA
	bg      color.RGBA
}

var _ Screen = (*TFT)(nil)

// NewTFT returns a Screen drawing to display with the given font.
func NewTFT(display drivers.Displayer, font tinyfont.Fonter) *TFT {
	return &TFT{
		display: display,
		font:    font,
		fg:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		bg:      color.RGBA{A: 255},
	}
}

func (s *TFT) Size() (width, height int16) {
	return s.display.Size()
}

func (s *TFT) FillScreen(c color.RGBA) {
	width, height := s.display.Size()
	tinydraw.FilledRectangle(s.display, 0, 0, width, height, c)
}

func (s *TFT) FillRectangle(x, y, w, h int16, c color.RGBA) {
	tinydraw.FilledRectangle(s.display, x, y, w, h, c)
}

func (s *TFT) Line(x0, y0, x1, y1 int16, c color.RGBA) {
	tinydraw.Line(s.display, x0, y0, x1, y1, c)
}

func (s *TFT) FilledCircle(x, y, r int16, c color.RGBA) {
	tinydraw.FilledCircle(s.display, x, y, r, c)
}

func (s *TFT) SetTextColor(fg, bg color.RGBA) {
	s.fg = fg
	s.bg = bg
}

func (s *TFT) CenteredText(text string, x, y int16) {
	_, outerWidth := tinyfont.LineWidth(s.font, text)
	w := int16(outerWidth)
	h := int16(s.font.GetYAdvance())
	left := x - w/2
	// Text is drawn over a filled background box so it stays readable on top
	// of earlier guidance.
	tinydraw.FilledRectangle(s.display, left-2, y-h+2, w+4, h+2, s.bg)
	tinyfont.WriteLine(s.display, s.font, left, y, text, s.fg)
}
