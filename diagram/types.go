// Package diagram contains the fundamental types shared by the renderer,
// the scene index and the edge router.
package diagram

import "classview/geometry"

// Node represents a rendered class shape. X/Y/Width/Height describe the
// bounding box the layout engine assigned (the node's local coordinate
// space); DX/DY is the translation offset accumulated by dragging.
//
// Invariant: the node's on-screen center is always the local bounding box
// center plus the translation offset. A re-render recreates every node with a
// zero offset.
type Node struct {
	ID     string
	X, Y   float64
	Width  float64
	Height float64
	DX, DY float64
	Lines  []string // class name followed by member lines
}

// LocalRect returns the node's bounding box before translation.
func (n *Node) LocalRect() geometry.Rect {
	return geometry.RectAt(n.X, n.Y, n.Width, n.Height)
}

// WorldRect returns the node's bounding box with the translation offset
// applied.
func (n *Node) WorldRect() geometry.Rect {
	return n.LocalRect().Translate(geometry.Point{X: n.DX, Y: n.DY})
}

// Center returns the node's current on-screen center.
func (n *Node) Center() geometry.Point {
	return n.WorldRect().Center()
}

// RelationKind classifies a relation between two classes.
type RelationKind int

const (
	Association RelationKind = iota // A --> B
	Inheritance                     // A --|> B
	Dependency                      // A ..> B
	Link                            // A -- B, no arrowheads
)

// String returns the relation kind name.
func (k RelationKind) String() string {
	switch k {
	case Association:
		return "association"
	case Inheritance:
		return "inheritance"
	case Dependency:
		return "dependency"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// HasArrow reports whether the relation carries an arrowhead at its target.
func (k RelationKind) HasArrow() bool {
	return k != Link
}

// Relation is a directed edge between two classes, optionally labelled.
type Relation struct {
	From  string
	To    string
	Kind  RelationKind
	Label string
}

// Diagram is the parsed class diagram handed to layout and SVG emission.
type Diagram struct {
	Nodes     []Node
	Relations []Relation
}

// Node returns the node with the given ID, or nil.
func (d *Diagram) Node(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}
