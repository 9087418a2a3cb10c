package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classview/geometry"
	"classview/scene"
)

const engineSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<g id="node-A" transform="translate(0.00,0.00)"><rect x="0.00" y="0.00" width="100.00" height="50.00"/></g>
<g id="node-B" transform="translate(0.00,0.00)"><rect x="200.00" y="0.00" width="100.00" height="50.00"/></g>
<path id="edge-A-B-0" d="M 0 0 L 1 1"/>
<text id="label-0" data-edge="edge-A-B-0" data-width="40.00" data-height="16.00" x="0" y="0">uses</text>
</svg>`

func buildEngine(t *testing.T) (*Engine, *scene.Scene) {
	t.Helper()
	sc, err := scene.Build(engineSVG, nil)
	require.NoError(t, err)
	return NewEngine(sc, DefaultConfig(), nil), sc
}

func TestRerouteRewritesPathAndLabel(t *testing.T) {
	e, sc := buildEngine(t)
	e.RerouteAll()

	c, ok := sc.Index.Get("edge-A-B-0")
	require.True(t, ok)
	assert.Equal(t, "M 105.00 25.00 L 195.00 25.00", c.Edge.Attr("d"))
	assert.Equal(t, "130.00", c.Label.Attr("x"))
	assert.Equal(t, "13.00", c.Label.Attr("y"))
}

func TestRerouteFollowsNodeOffset(t *testing.T) {
	e, sc := buildEngine(t)
	e.RerouteAll()

	c, _ := sc.Index.Get("edge-A-B-0")
	original := c.Edge.Attr("d")

	sc.SetNodeOffset("B", geometry.Point{X: 0, Y: 60})
	e.Reroute("B")
	assert.NotEqual(t, original, c.Edge.Attr("d"))

	// Returning the node restores the exact original path.
	sc.SetNodeOffset("B", geometry.Point{})
	e.Reroute("B")
	assert.Equal(t, original, c.Edge.Attr("d"))
}

func TestRerouteTouchesOnlyConnectedEdges(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg">
<g id="node-A"><rect x="0" y="0" width="100" height="50"/></g>
<g id="node-B"><rect x="200" y="0" width="100" height="50"/></g>
<g id="node-C"><rect x="400" y="0" width="100" height="50"/></g>
<path id="edge-A-B-0" d="M 0 0 L 1 1"/>
<path id="edge-B-C-0" d="M 0 0 L 1 1"/>
</svg>`
	sc, err := scene.Build(svg, nil)
	require.NoError(t, err)
	e := NewEngine(sc, DefaultConfig(), nil)

	e.Reroute("A")
	ab, _ := sc.Index.Get("edge-A-B-0")
	bc, _ := sc.Index.Get("edge-B-C-0")
	assert.NotEqual(t, "M 0 0 L 1 1", ab.Edge.Attr("d"))
	assert.Equal(t, "M 0 0 L 1 1", bc.Edge.Attr("d"))

	e.Reroute("B")
	assert.NotEqual(t, "M 0 0 L 1 1", bc.Edge.Attr("d"))
}

func TestSetCurvedChangesPathForm(t *testing.T) {
	e, sc := buildEngine(t)

	e.RerouteAll()
	c, _ := sc.Index.Get("edge-A-B-0")
	assert.Contains(t, c.Edge.Attr("d"), " L ")

	e.SetCurved(true)
	e.RerouteAll()
	assert.Contains(t, c.Edge.Attr("d"), " Q ")

	e.SetCurved(false)
	e.RerouteAll()
	assert.Contains(t, c.Edge.Attr("d"), " L ")
}

func TestMarkerClearanceFromScene(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg">
<g id="node-A"><rect x="0.00" y="0.00" width="100.00" height="50.00"/></g>
<g id="node-B"><rect x="200.00" y="0.00" width="100.00" height="50.00"/></g>
<path id="edge-A-B-0" marker-end="url(#triangle)" d="M 0 0 L 1 1"/>
</svg>`
	sc, err := scene.Build(svg, nil)
	require.NoError(t, err)

	NewEngine(sc, DefaultConfig(), nil).RerouteAll()

	c, _ := sc.Index.Get("edge-A-B-0")
	assert.Equal(t, "M 105.00 25.00 L 180.00 25.00", c.Edge.Attr("d"))
}
