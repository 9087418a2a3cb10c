package geometry

// RayRectIntersection returns the point where the segment from `from` toward
// `toward` crosses the boundary of r.
//
// When `from` lies inside r the ray is cast outward and the first boundary
// crossing in that direction is returned. When `from` lies outside, the
// intersection with parametric distance t in [0,1] closest to `from` wins.
// Edges are checked in the order left, right, top, bottom; an exact tie keeps
// the earlier edge. If no edge yields a valid crossing (degenerate direction,
// parallel segments) the closest point on r's perimeter is returned instead
// of an error.
func RayRectIntersection(r Rect, from, toward Point) Point {
	dir := toward.Sub(from)
	if dir.Length() < Epsilon {
		return ClosestPerimeterPoint(r, from)
	}

	if r.Contains(from) {
		if t, ok := firstCrossing(r, from, dir, 0, posInf); ok {
			return from.Add(dir.Scale(t))
		}
		return ClosestPerimeterPoint(r, from)
	}

	if t, ok := firstCrossing(r, from, dir, 0, 1); ok {
		return from.Add(dir.Scale(t))
	}
	return ClosestPerimeterPoint(r, from)
}

const posInf = 1e308

// firstCrossing finds the smallest t in [tMin, tMax] at which from+t*dir lies
// on one of r's edges, checking left, right, top, bottom in that order.
func firstCrossing(r Rect, from, dir Point, tMin, tMax float64) (float64, bool) {
	best := posInf
	found := false

	consider := func(t float64, ok bool) {
		if !ok || t < tMin-Epsilon || t > tMax+Epsilon {
			return
		}
		if t < tMin {
			t = tMin
		}
		// Strict less-than keeps the earlier edge on an exact tie.
		if t < best {
			best = t
			found = true
		}
	}

	consider(crossVertical(from, dir, r.Left, r.Top, r.Bottom))
	consider(crossVertical(from, dir, r.Right, r.Top, r.Bottom))
	consider(crossHorizontal(from, dir, r.Top, r.Left, r.Right))
	consider(crossHorizontal(from, dir, r.Bottom, r.Left, r.Right))

	if !found {
		return 0, false
	}
	return best, true
}

// crossVertical intersects the ray with the vertical edge x=ex spanning
// [y1, y2]. Returns the ray parameter and whether the hit is on the edge.
func crossVertical(from, dir Point, ex, y1, y2 float64) (float64, bool) {
	if dir.X > -Epsilon && dir.X < Epsilon {
		return 0, false
	}
	t := (ex - from.X) / dir.X
	y := from.Y + t*dir.Y
	if y < y1-Epsilon || y > y2+Epsilon {
		return 0, false
	}
	return t, true
}

// crossHorizontal intersects the ray with the horizontal edge y=ey spanning
// [x1, x2].
func crossHorizontal(from, dir Point, ey, x1, x2 float64) (float64, bool) {
	if dir.Y > -Epsilon && dir.Y < Epsilon {
		return 0, false
	}
	t := (ey - from.Y) / dir.Y
	x := from.X + t*dir.X
	if x < x1-Epsilon || x > x2+Epsilon {
		return 0, false
	}
	return t, true
}

// ClosestPerimeterPoint returns the point on r's perimeter nearest to p.
// Points outside r project onto the boundary by clamping; points inside move
// to the nearest side.
func ClosestPerimeterPoint(r Rect, p Point) Point {
	x := Clamp(p.X, r.Left, r.Right)
	y := Clamp(p.Y, r.Top, r.Bottom)

	inside := x > r.Left && x < r.Right && y > r.Top && y < r.Bottom
	if !inside {
		return Point{X: x, Y: y}
	}

	// Push the interior point to whichever side is closest.
	dLeft := x - r.Left
	dRight := r.Right - x
	dTop := y - r.Top
	dBottom := r.Bottom - y

	min := dLeft
	out := Point{X: r.Left, Y: y}
	if dRight < min {
		min = dRight
		out = Point{X: r.Right, Y: y}
	}
	if dTop < min {
		min = dTop
		out = Point{X: x, Y: r.Top}
	}
	if dBottom < min {
		out = Point{X: x, Y: r.Bottom}
	}
	return out
}
