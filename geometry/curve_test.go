package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurveMagnitude(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		want   float64
	}{
		{"clamped to minimum", 10, 5},
		{"proportional", 100, 15},
		{"proportional long", 200, 30},
		{"clamped to maximum", 1000, 50},
		{"zero length", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CurveMagnitude(tt.length), 1e-9)
		})
	}
}

func TestPerpendicularOffsetBulgeSide(t *testing.T) {
	// Left-to-right travel bulges upward (smaller Y in screen coordinates).
	got := PerpendicularOffset(Point{X: 0, Y: 25}, Point{X: 100, Y: 25}, 15)
	assert.InDelta(t, 50, got.X, 1e-9)
	assert.InDelta(t, 10, got.Y, 1e-9)

	// Right-to-left travel bulges the other way; the rule is orientation
	// relative, not absolute, which keeps the visual side consistent.
	got = PerpendicularOffset(Point{X: 100, Y: 25}, Point{X: 0, Y: 25}, 15)
	assert.InDelta(t, 50, got.X, 1e-9)
	assert.InDelta(t, 40, got.Y, 1e-9)

	// Top-to-bottom travel bulges right.
	got = PerpendicularOffset(Point{X: 50, Y: 0}, Point{X: 50, Y: 100}, 10)
	assert.InDelta(t, 60, got.X, 1e-9)
	assert.InDelta(t, 50, got.Y, 1e-9)
}

func TestPerpendicularOffsetDegenerateSegment(t *testing.T) {
	p := Point{X: 30, Y: 40}
	got := PerpendicularOffset(p, p, 15)
	assert.Equal(t, p, got)
}

func TestQuadraticPointEndpoints(t *testing.T) {
	s := Point{X: 0, Y: 0}
	c := Point{X: 50, Y: -20}
	e := Point{X: 100, Y: 0}

	assert.Equal(t, s, QuadraticPoint(s, c, e, 0))
	assert.Equal(t, e, QuadraticPoint(s, c, e, 1))

	mid := QuadraticPoint(s, c, e, 0.5)
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, -10, mid.Y, 1e-9)
}
