// Package core provides fundamental types and utilities shared by every game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// MinDistance is the smallest distance returned by Distance.
// Coincident entities would otherwise produce a zero divisor.
const MinDistance = 1e-6

// Vec is a 2D point or velocity in a game's logical coordinate space.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround creates a rectangle of the given size centered on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Inset shrinks the rectangle by pad on every side.
func (r Rect) Inset(pad float64) Rect {
	w := math.Max(0, r.W-2*pad)
	h := math.Max(0, r.H-2*pad)
	return Rect{X: r.X + pad, Y: r.Y + pad, W: w, H: h}
}

// Circle is a circular collider.
type Circle struct {
	X, Y float64
	R    float64
}

// Overlaps reports whether two circles intersect: hypot(dx, dy) < r1 + r2.
func (c Circle) Overlaps(o Circle) bool {
	return math.Hypot(c.X-o.X, c.Y-o.Y) < c.R+o.R
}

// Distance returns the distance between a and b, never less than MinDistance.
func Distance(a, b Vec) float64 {
	return math.Max(math.Hypot(b.X-a.X, b.Y-a.Y), MinDistance)
}

// Direction returns the unit vector pointing from a to b.
// Coincident points yield the zero vector.
func Direction(a, b Vec) Vec {
	d := b.Sub(a)
	return d.Scale(1 / Distance(a, b))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// PerspectiveScale interpolates between near and far scale by progress along
// the travel axis and clamps the result to at least min.
func PerspectiveScale(progress, near, far, min float64) float64 {
	return math.Max(min, Lerp(near, far, progress))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
