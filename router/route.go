// Package router recomputes edge paths and label positions from the current
// node positions: boundary clipping, arrowhead clearance, and optional
// quadratic curving.
package router

import (
	"strconv"
	"strings"

	"classview/diagram"
	"classview/geometry"
)

// Config holds the routing distances, all in diagram units.
type Config struct {
	// Curved selects quadratic curves instead of straight segments.
	Curved bool
	// Clearance pulls each clipped endpoint off the node boundary.
	Clearance float64
	// ArrowClearance replaces Clearance on ends that carry a marker, so the
	// arrowhead is not obscured by the node shape.
	ArrowClearance float64
	// MinSegment disables clearance entirely for clipped segments shorter
	// than this, avoiding degenerate or negative-length paths.
	MinSegment float64
	// LabelGap is added beyond half the label height when pushing a label
	// away from its anchor.
	LabelGap float64
}

// DefaultConfig returns the standard routing distances.
func DefaultConfig() Config {
	return Config{
		Clearance:      5,
		ArrowClearance: 20,
		MinSegment:     10,
		LabelGap:       4,
	}
}

// Route is one recomputed edge: the SVG path data plus the geometry needed
// for label placement.
type Route struct {
	Path    string
	Start   geometry.Point // clipped, clearance applied
	End     geometry.Point
	Control geometry.Point // quadratic control point, valid when Curved
	Curved  bool

	anchor geometry.Point // label anchor before the perpendicular push
	perp   geometry.Point // unit perpendicular, bulge side
}

// Route computes the path between two nodes from their current world
// rectangles. Each endpoint is the ray/rectangle intersection from the node's
// own boundary toward the opposite node's center, pulled inward for
// arrowheads where markers are present.
func (cfg Config) Route(src, dst *diagram.Node, markerStart, markerEnd bool) Route {
	srcRect := src.WorldRect()
	dstRect := dst.WorldRect()
	srcCenter := srcRect.Center()
	dstCenter := dstRect.Center()

	start := geometry.RayRectIntersection(srcRect, srcCenter, dstCenter)
	end := geometry.RayRectIntersection(dstRect, dstCenter, srcCenter)

	clearStart := cfg.Clearance
	if markerStart {
		clearStart = cfg.ArrowClearance
	}
	clearEnd := cfg.Clearance
	if markerEnd {
		clearEnd = cfg.ArrowClearance
	}

	length := geometry.Distance(start, end)
	offset := length > cfg.MinSegment

	dir := end.Sub(start).Normalize()
	perp := geometry.Point{X: dir.Y, Y: -dir.X}

	r := Route{Curved: cfg.Curved, perp: perp}

	if cfg.Curved {
		// Control point from the pre-clearance endpoints, then clearance
		// along the start->control and control->end directions.
		control := geometry.PerpendicularOffset(start, end, geometry.CurveMagnitude(length))
		s, e := start, end
		if offset {
			s = start.Add(control.Sub(start).Normalize().Scale(clearStart))
			e = end.Add(control.Sub(end).Normalize().Scale(clearEnd))
		}
		r.Start, r.End, r.Control = s, e, control
		r.anchor = control
		r.Path = quadPath(s, control, e)
		return r
	}

	s, e := start, end
	if offset {
		s = start.Add(dir.Scale(clearStart))
		e = end.Sub(dir.Scale(clearEnd))
	}
	r.Start, r.End = s, e
	r.anchor = geometry.Midpoint(s, e)
	r.Path = linePath(s, e)
	return r
}

// LabelPos places a label of the given measured size: the anchor (control
// point when curved, segment midpoint otherwise) pushed along the
// perpendicular by half the label height plus the configured gap, then
// shifted left by half the width so the text starts at the returned X.
func (cfg Config) LabelPos(r Route, w, h float64) geometry.Point {
	pos := r.anchor.Add(r.perp.Scale(h/2 + cfg.LabelGap))
	pos.X -= w / 2
	return pos
}

func linePath(a, b geometry.Point) string {
	var sb strings.Builder
	sb.WriteString("M ")
	writePoint(&sb, a)
	sb.WriteString(" L ")
	writePoint(&sb, b)
	return sb.String()
}

func quadPath(a, c, b geometry.Point) string {
	var sb strings.Builder
	sb.WriteString("M ")
	writePoint(&sb, a)
	sb.WriteString(" Q ")
	writePoint(&sb, c)
	sb.WriteByte(' ')
	writePoint(&sb, b)
	return sb.String()
}

func writePoint(sb *strings.Builder, p geometry.Point) {
	sb.WriteString(strconv.FormatFloat(p.X, 'f', 2, 64))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatFloat(p.Y, 'f', 2, 64))
}
