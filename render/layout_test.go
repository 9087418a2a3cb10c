package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classview/diagram"
)

func TestLayoutSizesFromText(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{
		{ID: "A", Lines: []string{"A"}},
		{ID: "Wide", Lines: []string{"Wide", "+aVeryLongMemberName string"}},
	}}
	Layout(d)

	// Short names clamp to the minimum width.
	assert.Equal(t, nodeMinWidth, d.Nodes[0].Width)
	assert.Equal(t, 1*lineHeight+2*nodePadY, d.Nodes[0].Height)

	assert.Equal(t, 27*charWidth+2*nodePadX, d.Nodes[1].Width)
	assert.Equal(t, 2*lineHeight+2*nodePadY, d.Nodes[1].Height)
}

func TestLayoutColumnsFollowRelations(t *testing.T) {
	d, err := Parse(`classDiagram
	A --> B
	B --> C
	A --> C`)
	require.NoError(t, err)
	Layout(d)

	a, b, c := d.Node("A"), d.Node("B"), d.Node("C")
	assert.Less(t, a.X, b.X)
	assert.Less(t, b.X, c.X)

	// C takes the longest chain's depth, two columns right of A.
	assert.Equal(t, a.X+2*(nodeMinWidth+columnGap), c.X)
}

func TestLayoutStacksWithinColumn(t *testing.T) {
	d, err := Parse(`classDiagram
	Root --> Left
	Root --> Right`)
	require.NoError(t, err)
	Layout(d)

	left, right := d.Node("Left"), d.Node("Right")
	assert.Equal(t, left.X, right.X)
	assert.Equal(t, left.Y+left.Height+rowGap, right.Y)
}

func TestLayoutToleratesCycles(t *testing.T) {
	d, err := Parse(`classDiagram
	A --> B
	B --> A
	Solo --> Solo`)
	require.NoError(t, err)
	Layout(d) // must terminate

	for i := range d.Nodes {
		assert.GreaterOrEqual(t, d.Nodes[i].X, 0.0)
		assert.GreaterOrEqual(t, d.Nodes[i].Y, 0.0)
	}
}

func TestLayoutResetsOffsets(t *testing.T) {
	d := &diagram.Diagram{Nodes: []diagram.Node{{ID: "A", Lines: []string{"A"}, DX: 30, DY: -10}}}
	Layout(d)
	assert.Zero(t, d.Nodes[0].DX)
	assert.Zero(t, d.Nodes[0].DY)
}
