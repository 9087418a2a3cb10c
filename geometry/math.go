// Package geometry provides the 2D float math used for edge routing:
// points, rectangles, boundary intersection and curve control placement.
package geometry

import "math"

// Epsilon is the tolerance used for boundary and degeneracy checks.
const Epsilon = 1e-9

// Point represents a 2D coordinate in diagram space.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Length returns the vector length of p.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns p scaled to unit length.
// The zero vector normalizes to the zero vector.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < Epsilon {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Distance returns the distance between two points.
func Distance(a, b Point) float64 {
	return b.Sub(a).Length()
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Lerp returns the point at parameter t along the segment from a to b.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is an axis-aligned rectangle in diagram space.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectAt builds a Rect from a top-left corner and dimensions.
func RectAt(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the rectangle's width.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the rectangle's height.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Contains reports whether p lies inside r, boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left-Epsilon && p.X <= r.Right+Epsilon &&
		p.Y >= r.Top-Epsilon && p.Y <= r.Bottom+Epsilon
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Left: r.Left + d.X, Top: r.Top + d.Y, Right: r.Right + d.X, Bottom: r.Bottom + d.Y}
}
