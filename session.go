package touchcal

import "tinygo.org/x/drivers/touch"

// Corner identifies one of the two calibration anchor points.
type Corner int

const (
	TopLeft Corner = iota
	BottomRight
)

func (c Corner) String() string {
	if c == TopLeft {
		return "top left"
	}
	return "bottom right"
}

// Session accumulates the accepted readings for one corner. It holds exactly
// the sample buffers the corner needs, so a calibration run allocates a known
// fixed amount up front.
type Session struct {
	xs    []int
	ys    []int
	count int
}

// NewSession returns a session that is full after target accepted readings.
func NewSession(target int) *Session {
	if target < 1 {
		target = 1
	}
	return &Session{
		xs: make([]int, target),
		ys: make([]int, target),
	}
}

// Add records an accepted reading. It reports whether the session is now
// full. Adding to a full session is a no-op.
func (s *Session) Add(p touch.Point) bool {
	if s.Full() {
		return true
	}
	s.xs[s.count] = p.X
	s.ys[s.count] = p.Y
	s.count++
	return s.Full()
}

// Count returns the number of readings accepted so far.
func (s *Session) Count() int {
	return s.count
}

// Full reports whether the target number of readings has been accepted.
func (s *Session) Full() bool {
	return s.count == len(s.xs)
}

// Reference reduces the accepted readings to the corner's reference point:
// the truncating integer mean of the accepted coordinates on each axis. The
// result does not depend on arrival order.
func (s *Session) Reference() Reference {
	sumX, sumY := 0, 0
	for i := 0; i < s.count; i++ {
		sumX += s.xs[i]
		sumY += s.ys[i]
	}
	if s.count == 0 {
		return Reference{}
	}
	return Reference{
		X: sumX / s.count,
		Y: sumY / s.count,
	}
}
