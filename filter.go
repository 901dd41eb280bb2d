package touchcal

import (
	"time"

	"tinygo.org/x/drivers/touch"
)

// Filter reduces a burst of raw samples to one debounced reading.
//
// The first sample a resistive controller reports after a touch-down event is
// known to be unreliable, so one sample is always read and thrown away before
// the averaging window starts.
type Filter struct {
	source   Source
	window   int
	interval time.Duration
	report   *Reporter // per-sample diagnostics, nil when not verbose

	// Sample buffers, allocated once and reused for every reading.
	xs []int
	ys []int
}

// NewFilter returns a filter averaging window raw samples per reading, with
// interval pacing between successive reads.
func NewFilter(source Source, window int, interval time.Duration) *Filter {
	if window < 1 {
		window = 1
	}
	return &Filter{
		source:   source,
		window:   window,
		interval: interval,
		xs:       make([]int, window),
		ys:       make([]int, window),
	}
}

// Read consumes window+1 raw samples from the source and returns one reading:
// X and Y are the truncating integer means of the retained samples, Z is the
// pressure of the first retained sample only. Position benefits from
// averaging to cancel jitter; pressure is only a validity gate, so a single
// early value is enough.
//
// The caller must have confirmed the source is currently touched. Read does
// not re-check mid-collection; if contact is lost the result is based on
// whatever the source keeps returning.
func (f *Filter) Read() touch.Point {
	f.source.ReadTouchPoint() // throw away this sample

	z := 0
	for i := 0; i < f.window; i++ {
		p := f.source.ReadTouchPoint()
		f.xs[i] = p.X
		f.ys[i] = p.Y
		if i == 0 {
			z = p.Z
		}
		if f.report != nil {
			f.report.Sample(debugSampleBase+i, p)
		}
		if f.interval > 0 {
			time.Sleep(f.interval)
		}
	}

	sumX, sumY := 0, 0
	for i := 0; i < f.window; i++ {
		sumX += f.xs[i]
		sumY += f.ys[i]
	}
	// Integer division truncates toward zero. Coordinates are non-negative
	// in practice so the distinction rarely matters.
	return touch.Point{
		X: sumX / f.window,
		Y: sumY / f.window,
		Z: z,
	}
}

// Raw samples reported in verbose mode are numbered from 200, so they are
// easy to tell apart from accepted-reading lines.
const debugSampleBase = 200
