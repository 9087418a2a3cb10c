package geometry

// Curve magnitude bounds: the quadratic control point sits 15% of the segment
// length away from the midpoint, clamped to [5, 50] diagram units.
const (
	CurveRatio        = 0.15
	CurveMinMagnitude = 5.0
	CurveMaxMagnitude = 50.0
)

// CurveMagnitude returns the perpendicular offset distance for a curve over a
// segment of the given length.
func CurveMagnitude(length float64) float64 {
	return Clamp(length*CurveRatio, CurveMinMagnitude, CurveMaxMagnitude)
}

// PerpendicularOffset returns a point offset from the midpoint of the segment
// start-end, along its perpendicular, by magnitude.
//
// The perpendicular is the travel direction rotated a quarter turn
// counter-clockwise in screen coordinates (y grows downward): for a segment
// travelling left to right the offset point lies above the segment. This
// fixed rule keeps every curve bulging to the same visual side regardless of
// segment orientation.
func PerpendicularOffset(start, end Point, magnitude float64) Point {
	mid := Midpoint(start, end)
	dir := end.Sub(start)
	if dir.Length() < Epsilon {
		return mid
	}
	perp := Point{X: dir.Y, Y: -dir.X}.Normalize()
	return mid.Add(perp.Scale(magnitude))
}

// QuadraticPoint evaluates the quadratic Bezier through start, control, end
// at parameter t.
func QuadraticPoint(start, control, end Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*start.X + 2*u*t*control.X + t*t*end.X,
		Y: u*u*start.Y + 2*u*t*control.Y + t*t*end.Y,
	}
}
