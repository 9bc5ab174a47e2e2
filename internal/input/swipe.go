package input

import (
	"math"

	"github.com/vovakirdan/gameroom/internal/core"
)

// DefaultSwipeThreshold is the minimum gesture length in logical units.
const DefaultSwipeThreshold = 20.0

// ClassifySwipe resolves the direction of the gesture from -> to by its
// dominant axis. Gestures not longer than threshold along that axis are taps.
func ClassifySwipe(from, to core.Vec, threshold float64) core.SwipeDir {
	dx := to.X - from.X
	dy := to.Y - from.Y

	if math.Abs(dx) > math.Abs(dy) {
		if math.Abs(dx) <= threshold {
			return core.SwipeNone
		}
		if dx > 0 {
			return core.SwipeRight
		}
		return core.SwipeLeft
	}

	if math.Abs(dy) <= threshold {
		return core.SwipeNone
	}
	if dy > 0 {
		return core.SwipeDown
	}
	return core.SwipeUp
}

// SwipeTracker remembers where a gesture started.
type SwipeTracker struct {
	Threshold float64
	start     core.Vec
	active    bool
}

// Begin starts a gesture at p.
func (s *SwipeTracker) Begin(p core.Vec) {
	s.start = p
	s.active = true
}

// End finishes the gesture at p and classifies it.
func (s *SwipeTracker) End(p core.Vec) core.SwipeDir {
	if !s.active {
		return core.SwipeNone
	}
	s.active = false
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return ClassifySwipe(s.start, p, threshold)
}

// Cancel drops an unfinished gesture.
func (s *SwipeTracker) Cancel() {
	s.active = false
}
