package touchcal

import (
	"fmt"
	"io"

	"tinygo.org/x/drivers/touch"
)

// Reporter writes line-oriented diagnostics during a calibration run. On
// hardware the writer is typically the serial console (os.Stdout under
// TinyGo); the final summary is meant to be transcribed into whatever program
// uses the panel.
type Reporter struct {
	out io.Writer
}

// NewReporter returns a reporter writing to out. A nil writer discards all
// output.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out}
}

// Phase announces the start of a corner's sample collection.
func (r *Reporter) Phase(corner Corner) {
	fmt.Fprintf(r.out, "=== Collecting data for the %s corner ===\n", corner)
}

// Sample reports one reading or raw sample.
func (r *Reporter) Sample(n int, p touch.Point) {
	fmt.Fprintf(r.out, "Nr sample: %2d | X = %4d | Y = %4d | Z = %4d\n", n, p.X, p.Y, p.Z)
}

// Raw reports an unmapped live-mode reading (verbose mode only).
func (r *Reporter) Raw(p touch.Point) {
	fmt.Fprint(r.out, "Raw: ")
	r.Sample(0, p)
}

// Mapped reports the screen position a live-mode reading mapped to (verbose
// mode only).
func (r *Reporter) Mapped(x, y, z int) {
	fmt.Fprint(r.out, "Map: ")
	r.Sample(0, touch.Point{X: x, Y: y, Z: z})
}

// Summary emits the calibration result in its canonical form, followed by the
// two mapping expressions ready to paste into another program.
func (r *Reporter) Summary(topLeft, bottomRight Reference, width, height int) {
	fmt.Fprintln(r.out, "--== Calibration Data ==--")
	fmt.Fprintf(r.out, "x0 %4d x1 %4d y0 %4d y1 %4d\n", topLeft.X, bottomRight.X, topLeft.Y, bottomRight.Y)
	fmt.Fprintln(r.out, "use this mapping:")
	fmt.Fprintf(r.out, "x = touchcal.Map(p.X, %d, %d, 1, %d)\n", topLeft.X, bottomRight.X, width)
	fmt.Fprintf(r.out, "y = touchcal.Map(p.Y, %d, %d, 1, %d)\n", topLeft.Y, bottomRight.Y, height)
	fmt.Fprintln(r.out, "--== Calibration Data End ==--")
}
