package render

import "classview/diagram"

// Layout spacing in diagram units.
const (
	charWidth    = 8.0
	lineHeight   = 18.0
	nodePadX     = 12.0
	nodePadY     = 8.0
	nodeMinWidth = 80.0
	columnGap    = 60.0
	rowGap       = 30.0
)

// Layout assigns positions and sizes to every node in place. Nodes are sized
// from their text and arranged into columns by relation depth, so sources sit
// left of their targets; nodes within a column stack top to bottom in
// declaration order.
func Layout(d *diagram.Diagram) {
	for i := range d.Nodes {
		sizeNode(&d.Nodes[i])
	}

	depths := columnDepths(d)

	// Column widths and X positions.
	maxDepth := 0
	for _, c := range depths {
		if c > maxDepth {
			maxDepth = c
		}
	}
	colWidth := make([]float64, maxDepth+1)
	for i := range d.Nodes {
		c := depths[d.Nodes[i].ID]
		if d.Nodes[i].Width > colWidth[c] {
			colWidth[c] = d.Nodes[i].Width
		}
	}
	colX := make([]float64, maxDepth+1)
	x := 0.0
	for c := 0; c <= maxDepth; c++ {
		colX[c] = x
		x += colWidth[c] + columnGap
	}

	// Stack nodes within each column in declaration order.
	colY := make([]float64, maxDepth+1)
	for i := range d.Nodes {
		n := &d.Nodes[i]
		c := depths[n.ID]
		n.X = colX[c]
		n.Y = colY[c]
		n.DX, n.DY = 0, 0
		colY[c] += n.Height + rowGap
	}
}

func sizeNode(n *diagram.Node) {
	maxLen := 0
	for _, line := range n.Lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	n.Width = float64(maxLen)*charWidth + 2*nodePadX
	if n.Width < nodeMinWidth {
		n.Width = nodeMinWidth
	}
	n.Height = float64(len(n.Lines))*lineHeight + 2*nodePadY
}

// columnDepths assigns each node the length of the longest relation chain
// leading to it. Cycles are tolerated: propagation stops once every depth is
// stable or after len(nodes) rounds.
func columnDepths(d *diagram.Diagram) map[string]int {
	depths := make(map[string]int, len(d.Nodes))
	for i := range d.Nodes {
		depths[d.Nodes[i].ID] = 0
	}

	for round := 0; round < len(d.Nodes); round++ {
		changed := false
		for _, rel := range d.Relations {
			if rel.From == rel.To {
				continue
			}
			if want := depths[rel.From] + 1; depths[rel.To] < want && want <= len(d.Nodes) {
				depths[rel.To] = want
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return depths
}
