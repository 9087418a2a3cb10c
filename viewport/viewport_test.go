package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classview/geometry"
)

func TestTransformApply(t *testing.T) {
	tr := NewTransform(2, geometry.Point{X: 10, Y: 20})
	assert.Equal(t, geometry.Point{X: 16, Y: 28}, tr.Apply(geometry.Point{X: 3, Y: 4}))
}

func TestApplyToDeltaIgnoresTranslation(t *testing.T) {
	tr := NewTransform(2, geometry.Point{X: 500, Y: -300})
	assert.Equal(t, geometry.Point{X: 6, Y: 8}, tr.ApplyToDelta(geometry.Point{X: 3, Y: 4}))
}

func TestInverseRoundTrip(t *testing.T) {
	tr := NewTransform(2.5, geometry.Point{X: 40, Y: -7})
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := geometry.Point{X: 12.5, Y: -3.25}
	got := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, got.X, 1e-9)
	assert.InDelta(t, p.Y, got.Y, 1e-9)
}

func TestInverseSingular(t *testing.T) {
	_, ok := Transform{}.Inverse()
	assert.False(t, ok)
}

func TestMulComposes(t *testing.T) {
	scale := NewTransform(2, geometry.Point{})
	shift := NewTransform(1, geometry.Point{X: 5, Y: 5})

	// shift.Mul(scale) scales first, then shifts.
	got := shift.Mul(scale).Apply(geometry.Point{X: 1, Y: 1})
	assert.Equal(t, geometry.Point{X: 7, Y: 7}, got)
}

func newTestHandle(cfg Config) *Handle {
	return New(cfg, 800, 600, geometry.RectAt(0, 0, 400, 200), nil)
}

func TestZoomClamped(t *testing.T) {
	h := newTestHandle(Config{MinZoom: 0.5, MaxZoom: 3})

	h.Zoom(10)
	assert.Equal(t, 3.0, h.GetZoom())
	h.Zoom(0.1)
	assert.Equal(t, 0.5, h.GetZoom())
	h.Zoom(2)
	assert.Equal(t, 2.0, h.GetZoom())
}

func TestBeforePanVeto(t *testing.T) {
	var seen geometry.Point
	h := newTestHandle(Config{
		BeforePan: func(p geometry.Point) bool {
			seen = p
			return p.X >= 0
		},
	})

	h.Pan(geometry.Point{X: 10, Y: 5})
	assert.Equal(t, geometry.Point{X: 10, Y: 5}, h.GetPan())

	h.Pan(geometry.Point{X: -1, Y: 0})
	assert.Equal(t, geometry.Point{X: -1, Y: 0}, seen)
	assert.Equal(t, geometry.Point{X: 10, Y: 5}, h.GetPan(), "vetoed pan must not apply")
}

func TestCenter(t *testing.T) {
	h := newTestHandle(Config{})
	h.Center()
	// Content center (200,100) lands on the view center (400,300) at zoom 1.
	assert.Equal(t, geometry.Point{X: 200, Y: 200}, h.GetPan())
	assert.Equal(t, geometry.Point{X: 400, Y: 300}, h.Transform().Apply(geometry.Point{X: 200, Y: 100}))
}

func TestFit(t *testing.T) {
	h := newTestHandle(Config{FitPadding: 20})
	h.Fit()

	// Width is the binding dimension: (800-40)/400 = 1.9 versus (600-40)/200.
	assert.Equal(t, 1.9, h.GetZoom())
	assert.Equal(t, geometry.Point{X: 400, Y: 300}, h.Transform().Apply(geometry.Point{X: 200, Y: 100}))
}

func TestFitDegenerateContentKeepsZoom(t *testing.T) {
	h := New(Config{}, 800, 600, geometry.RectAt(50, 50, 0, 0), nil)
	h.Zoom(2)
	h.Fit()
	assert.Equal(t, 2.0, h.GetZoom())
	// Still centers on the (point) content.
	assert.Equal(t, geometry.Point{X: 400, Y: 300}, h.Transform().Apply(geometry.Point{X: 50, Y: 50}))
}

func TestDestroyFreezesState(t *testing.T) {
	h := newTestHandle(Config{})
	h.Zoom(2)
	h.Pan(geometry.Point{X: 1, Y: 1})
	h.Destroy()

	h.Zoom(3)
	h.Pan(geometry.Point{X: 9, Y: 9})
	h.Center()
	h.Fit()

	assert.True(t, h.Destroyed())
	assert.Equal(t, 2.0, h.GetZoom())
	assert.Equal(t, geometry.Point{X: 1, Y: 1}, h.GetPan())
}

func TestScreenToWorldDeltaHalvesAtDoubleZoom(t *testing.T) {
	h := newTestHandle(Config{})
	h.Zoom(2)
	h.Pan(geometry.Point{X: 1000, Y: 1000}) // pan must not affect deltas

	d := h.ScreenToWorldDelta(geometry.Point{X: 10, Y: -6})
	assert.InDelta(t, 5.0, d.X, 1e-9)
	assert.InDelta(t, -3.0, d.Y, 1e-9)
}
