// Package core provides the simulation primitives shared by every game:
// geometry and collision, the entity store, input latching, progression,
// the mode state machine and the tick clock. It has no third-party
// dependencies so game logic stays pure and testable.
package core

import "math"

// Vec is a point or displacement in arena space. Z is only used by games
// that simulate depth.
type Vec struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Dist returns the euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	d := v.Sub(o)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Box is an axis-aligned bounding box in arena units.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports whether the interiors of b and o intersect.
// Touching edges do not count. The test is symmetric.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W &&
		b.X+b.W > o.X &&
		b.Y < o.Y+o.H &&
		b.Y+b.H > o.Y
}

// CirclesOverlap reports whether two circles intersect: the distance
// between centers is strictly less than the sum of the radii.
func CirclesOverlap(a, b Vec, ra, rb float64) bool {
	return a.Dist(b) < ra+rb
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Wrap maps v into [min, max) by re-entering from the opposite edge.
// Used for tunnel and lane wrap-around.
func Wrap(v, min, max float64) float64 {
	span := max - min
	if span <= 0 {
		return min
	}
	for v < min {
		v += span
	}
	for v >= max {
		v -= span
	}
	return v
}

// WrapInt is Wrap for grid coordinates in [0, n).
func WrapInt(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Seek moves cur toward target by at most step. A distance within
// deadZone is treated as already reached.
func Seek(cur, target, step, deadZone float64) float64 {
	d := target - cur
	if math.Abs(d) <= deadZone {
		return cur
	}
	if d > 0 {
		return cur + math.Min(step, d)
	}
	return cur - math.Min(step, -d)
}

// Jitter returns a uniform offset in [-spread, spread).
func Jitter(r Rand, spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return (r.Float64()*2 - 1) * spread
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
