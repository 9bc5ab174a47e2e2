package racing

import (
	"math"

	"github.com/vovakirdan/gameroom/internal/core"
)

// Track is a closed loop of centreline nodes. Node 0 is the start line.
type Track struct {
	Nodes []core.Vec
	Width float64
}

// DefaultTrack returns the eight-node circuit.
func DefaultTrack(width float64) Track {
	return Track{
		Nodes: []core.Vec{
			{X: 150, Y: 500}, {X: 650, Y: 500},
			{X: 700, Y: 450}, {X: 700, Y: 150},
			{X: 650, Y: 100}, {X: 150, Y: 100},
			{X: 100, Y: 150}, {X: 100, Y: 450},
		},
		Width: width,
	}
}

// Node returns node i, wrapping around the loop.
func (t Track) Node(i int) core.Vec {
	n := len(t.Nodes)
	return t.Nodes[((i%n)+n)%n]
}

// closestOnSegment projects p onto the segment ab.
func closestOnSegment(p, a, b core.Vec) core.Vec {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return a
	}
	t := core.ClampF(((p.X-a.X)*ab.X+(p.Y-a.Y)*ab.Y)/l2, 0, 1)
	return a.Add(ab.Scale(t))
}

// Closest returns the nearest centreline point to p and its distance.
func (t Track) Closest(p core.Vec) (core.Vec, float64) {
	best := math.Inf(1)
	var point core.Vec
	for i := range t.Nodes {
		q := closestOnSegment(p, t.Node(i), t.Node(i+1))
		if d := math.Hypot(p.X-q.X, p.Y-q.Y); d < best {
			best, point = d, q
		}
	}
	return point, best
}

// OnTrack reports whether p lies within half the track width of the centreline.
func (t Track) OnTrack(p core.Vec) bool {
	_, d := t.Closest(p)
	return d <= t.Width/2
}
