// Package viewport manages the pan/zoom view over a rendered diagram: an
// affine view transform and a handle that clamps zoom, gates panning and maps
// screen-space deltas back into diagram coordinates.
package viewport

import (
	"math"

	"classview/geometry"
)

// Transform is a 2D affine transform in SVG matrix order: a point maps as
// x' = A*x + C*y + E, y' = B*x + D*y + F.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// NewTransform builds a uniform scale followed by a translation, the only
// shape of transform the viewport itself produces.
func NewTransform(scale float64, pan geometry.Point) Transform {
	return Transform{A: scale, D: scale, E: pan.X, F: pan.Y}
}

// Apply maps a point from diagram space to screen space.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// ApplyToDelta maps a displacement through the linear part only; the
// translation cancels out of any difference of points.
func (t Transform) ApplyToDelta(d geometry.Point) geometry.Point {
	return geometry.Point{
		X: t.A*d.X + t.C*d.Y,
		Y: t.B*d.X + t.D*d.Y,
	}
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	return t.A*t.D - t.B*t.C
}

// Inverse returns the inverse transform. The second result is false when the
// transform is singular, in which case the identity is returned.
func (t Transform) Inverse() (Transform, bool) {
	det := t.Det()
	if math.Abs(det) < geometry.Epsilon {
		return Identity(), false
	}
	inv := Transform{
		A: t.D / det,
		B: -t.B / det,
		C: -t.C / det,
		D: t.A / det,
	}
	inv.E = -(inv.A*t.E + inv.C*t.F)
	inv.F = -(inv.B*t.E + inv.D*t.F)
	return inv, true
}

// Mul composes transforms: the result applies u first, then t.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}
