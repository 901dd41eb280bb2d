package touchcal

import (
	"bytes"
	"testing"

	"tinygo.org/x/drivers/touch"
)

func TestReporterSampleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf)
	r.Sample(3, touch.Point{X: 512, Y: 1024, Z: 300})
	want := "Nr sample:  3 | X =  512 | Y = 1024 | Z =  300\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestReporterSummaryFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewReporter(buf)
	r.Summary(Reference{X: 100, Y: 200}, Reference{X: 900, Y: 800}, 240, 320)
	want := "--== Calibration Data ==--\n" +
		"x0  100 x1  900 y0  200 y1  800\n" +
		"use this mapping:\n" +
		"x = touchcal.Map(p.X, 100, 900, 1, 240)\n" +
		"y = touchcal.Map(p.Y, 200, 800, 1, 320)\n" +
		"--== Calibration Data End ==--\n"
	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestReporterNilWriter(t *testing.T) {
	// Must not panic.
	r := NewReporter(nil)
	r.Phase(TopLeft)
	r.Sample(0, touch.Point{})
	r.Summary(Reference{}, Reference{}, 0, 0)
}
