package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classview/diagram"
	"classview/geometry"
)

func box(id string, x, y float64) *diagram.Node {
	return &diagram.Node{ID: id, X: x, Y: y, Width: 100, Height: 50}
}

func TestStraightRouteClipsAndClears(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 200, 0)

	r := DefaultConfig().Route(src, dst, false, false)

	// Clipped to the facing boundaries, then pulled off by the clearance.
	assert.Equal(t, geometry.Point{X: 105, Y: 25}, r.Start)
	assert.Equal(t, geometry.Point{X: 195, Y: 25}, r.End)
	assert.Equal(t, "M 105.00 25.00 L 195.00 25.00", r.Path)
}

func TestArrowClearanceReplacesDefault(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 200, 0)

	r := DefaultConfig().Route(src, dst, false, true)
	assert.Equal(t, geometry.Point{X: 105, Y: 25}, r.Start)
	assert.Equal(t, geometry.Point{X: 180, Y: 25}, r.End)

	r = DefaultConfig().Route(src, dst, true, false)
	assert.Equal(t, geometry.Point{X: 120, Y: 25}, r.Start)
	assert.Equal(t, geometry.Point{X: 195, Y: 25}, r.End)
}

func TestShortSegmentSkipsClearance(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 105, 0) // five units of daylight

	r := DefaultConfig().Route(src, dst, false, true)
	assert.Equal(t, geometry.Point{X: 100, Y: 25}, r.Start)
	assert.Equal(t, geometry.Point{X: 105, Y: 25}, r.End)
}

func TestOverlappingNodesProduceFinitePath(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 0, 0) // coincident centers

	for _, curved := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.Curved = curved
		r := cfg.Route(src, dst, true, true)
		assert.NotContains(t, r.Path, "NaN", "curved=%v", curved)
		assert.NotContains(t, r.Path, "Inf", "curved=%v", curved)
	}
}

func TestCurvedRoute(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 200, 0)

	cfg := DefaultConfig()
	cfg.Curved = true
	r := cfg.Route(src, dst, false, false)

	require.True(t, r.Curved)
	// Clipped span is 100 long, so the bulge is 15% of that; left-to-right
	// travel bulges upward.
	assert.Equal(t, geometry.Point{X: 150, Y: 10}, r.Control)
	assert.True(t, strings.HasPrefix(r.Path, "M "))
	assert.Contains(t, r.Path, " Q 150.00 10.00 ")
	// Clearance pulls the endpoints toward the control point.
	assert.Greater(t, r.Start.X, 100.0)
	assert.Less(t, r.Start.Y, 25.0)
}

func TestCurveMagnitudeClamped(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 5000, 0)

	cfg := DefaultConfig()
	cfg.Curved = true
	r := cfg.Route(src, dst, false, false)

	// 15% of a 4900 unit span clamps to the 50 unit maximum.
	assert.Equal(t, geometry.Point{X: 2550, Y: -25}, r.Control)
}

func TestLabelPosStraight(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 200, 0)

	cfg := DefaultConfig()
	r := cfg.Route(src, dst, false, false)

	// Midpoint pushed up by half height plus gap, then centered by width.
	pos := cfg.LabelPos(r, 40, 16)
	assert.Equal(t, geometry.Point{X: 130, Y: 13}, pos)
}

func TestLabelPosCurvedAnchorsAtControl(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 200, 0)

	cfg := DefaultConfig()
	cfg.Curved = true
	r := cfg.Route(src, dst, false, false)

	pos := cfg.LabelPos(r, 40, 16)
	assert.Equal(t, geometry.Point{X: 130, Y: -2}, pos)
}

func TestRouteIsIdempotent(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 170, 90)
	dst.DX, dst.DY = 12.5, -3

	cfg := DefaultConfig()
	first := cfg.Route(src, dst, false, true)
	second := cfg.Route(src, dst, false, true)
	assert.Equal(t, first.Path, second.Path)

	cfg.Curved = true
	first = cfg.Route(src, dst, false, true)
	second = cfg.Route(src, dst, false, true)
	assert.Equal(t, first.Path, second.Path)
}

func TestRouteRestoresAfterRoundTrip(t *testing.T) {
	src := box("A", 0, 0)
	dst := box("B", 200, 0)

	cfg := DefaultConfig()
	original := cfg.Route(src, dst, false, false).Path

	dst.DX, dst.DY = 40, 60
	moved := cfg.Route(src, dst, false, false).Path
	assert.NotEqual(t, original, moved)

	dst.DX, dst.DY = 0, 0
	assert.Equal(t, original, cfg.Route(src, dst, false, false).Path)
}
