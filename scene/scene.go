package scene

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"classview/diagram"
	"classview/geometry"
)

// Fallback size for labels whose measured dimensions are unavailable.
const (
	FallbackLabelWidth  = 60.0
	FallbackLabelHeight = 16.0
)

// Connection resolves one rendered edge to its endpoints and label. Built
// once per render and never mutated field by field; only the referenced
// path/label elements have their rendered position updated in place.
type Connection struct {
	ID           string
	Edge         *Element
	Source       *diagram.Node
	Target       *diagram.Node
	Label        *Element
	MarkerStart  bool
	MarkerEnd    bool
	SourceCenter geometry.Point // captured at index-build time
	TargetCenter geometry.Point
}

// LabelSize returns the label's measured size, falling back to a fixed
// estimate when the renderer supplied none.
func (c *Connection) LabelSize() (w, h float64) {
	w, h = FallbackLabelWidth, FallbackLabelHeight
	if c.Label == nil {
		return w, h
	}
	if v, err := strconv.ParseFloat(c.Label.Attr("data-width"), 64); err == nil && v > 0 {
		w = v
	}
	if v, err := strconv.ParseFloat(c.Label.Attr("data-height"), 64); err == nil && v > 0 {
		h = v
	}
	return w, h
}

// Index maps edge identifiers to resolved connections for one render.
type Index struct {
	conns  map[string]*Connection
	order  []string
	byNode map[string][]*Connection
}

// Get returns the connection for an edge identifier.
func (ix *Index) Get(id string) (*Connection, bool) {
	c, ok := ix.conns[id]
	return c, ok
}

// Len returns the number of resolved connections.
func (ix *Index) Len() int {
	return len(ix.conns)
}

// All returns every connection in document order.
func (ix *Index) All() []*Connection {
	out := make([]*Connection, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.conns[id])
	}
	return out
}

// Touching returns the connections whose source or target is the given node.
func (ix *Index) Touching(nodeID string) []*Connection {
	return ix.byNode[nodeID]
}

func (ix *Index) add(c *Connection) {
	ix.conns[c.ID] = c
	ix.order = append(ix.order, c.ID)
	ix.byNode[c.Source.ID] = append(ix.byNode[c.Source.ID], c)
	if c.Target.ID != c.Source.ID {
		ix.byNode[c.Target.ID] = append(ix.byNode[c.Target.ID], c)
	}
}

// Scene holds one render's parsed SVG tree, its nodes and its connection
// index. A re-render produces a fresh Scene; nothing is patched across
// renders.
type Scene struct {
	Root  *Element
	Index *Index

	nodes   map[string]*diagram.Node
	nodeEls map[string]*Element
	order   []string
	log     *slog.Logger
}

// Build parses rendered SVG text and constructs the connection index.
// Edges whose endpoints cannot be resolved against the rendered nodes are
// dropped rather than stored partially.
func Build(svgText string, log *slog.Logger) (*Scene, error) {
	if log == nil {
		log = slog.Default()
	}
	root, err := parseSVG(svgText)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Root:    root,
		Index:   &Index{conns: make(map[string]*Connection), byNode: make(map[string][]*Connection)},
		nodes:   make(map[string]*diagram.Node),
		nodeEls: make(map[string]*Element),
		log:     log,
	}

	var edges []*Element
	var labels []*Element

	root.Walk(func(el *Element) {
		id := el.ID()
		switch {
		case strings.HasPrefix(id, "node-"):
			s.collectNode(el)
		case strings.HasPrefix(id, "edge-") && el.Name == "path":
			edges = append(edges, el)
		case strings.HasPrefix(id, "label-"):
			labels = append(labels, el)
		}
	})

	s.indexEdges(edges, labels)
	return s, nil
}

// Node returns the rendered node with the given class name.
func (s *Scene) Node(id string) (*diagram.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns every rendered node in document order.
func (s *Scene) Nodes() []*diagram.Node {
	out := make([]*diagram.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// SetNodeOffset sets a node's translation offset and updates its group
// transform in the SVG tree.
func (s *Scene) SetNodeOffset(id string, d geometry.Point) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	n.DX, n.DY = d.X, d.Y
	if el, ok := s.nodeEls[id]; ok {
		el.SetAttr("transform", fmt.Sprintf("translate(%s,%s)", fmtCoord(d.X), fmtCoord(d.Y)))
	}
}

// SVG serializes the scene's current state back to markup.
func (s *Scene) SVG() string {
	return s.Root.SVG()
}

func (s *Scene) collectNode(el *Element) {
	name, ok := diagram.ParseNodeID(el.ID())
	if !ok {
		return
	}
	rect := el.Child("rect")
	if rect == nil {
		s.log.Debug("node group without rect, skipping", "id", el.ID())
		return
	}

	n := &diagram.Node{
		ID:     name,
		X:      floatAttr(rect, "x"),
		Y:      floatAttr(rect, "y"),
		Width:  floatAttr(rect, "width"),
		Height: floatAttr(rect, "height"),
	}
	n.DX, n.DY = parseTranslate(el.Attr("transform"))

	s.nodes[name] = n
	s.nodeEls[name] = el
	s.order = append(s.order, name)
}

// indexEdges resolves each edge's endpoints and pairs labels: an explicit
// data-edge reference wins, otherwise labels pair with edges by ordinal
// position. Unmatched labels and unresolved edges are skipped silently.
func (s *Scene) indexEdges(edges, labels []*Element) {
	byRef := make(map[string]*Element)
	for _, l := range labels {
		if ref := l.Attr("data-edge"); ref != "" {
			byRef[ref] = l
		}
	}

	for i, edge := range edges {
		from, to, ok := diagram.ParseEdgeID(edge.ID())
		if !ok {
			s.log.Debug("unparseable edge id, dropping", "id", edge.ID())
			continue
		}
		src, okSrc := s.nodes[from]
		dst, okDst := s.nodes[to]
		if !okSrc || !okDst {
			s.log.Debug("edge endpoint unresolved, dropping", "id", edge.ID(), "from", from, "to", to)
			continue
		}

		label := byRef[edge.ID()]
		if label == nil && i < len(labels) && labels[i].Attr("data-edge") == "" {
			label = labels[i]
		}

		s.Index.add(&Connection{
			ID:           edge.ID(),
			Edge:         edge,
			Source:       src,
			Target:       dst,
			Label:        label,
			MarkerStart:  edge.HasAttr("marker-start"),
			MarkerEnd:    edge.HasAttr("marker-end"),
			SourceCenter: src.Center(),
			TargetCenter: dst.Center(),
		})
	}
}

func floatAttr(el *Element, name string) float64 {
	v, _ := strconv.ParseFloat(el.Attr(name), 64)
	return v
}

// parseTranslate reads "translate(x,y)" transform values; anything else
// yields a zero offset.
func parseTranslate(s string) (x, y float64) {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(s, "translate(")
	if !ok {
		return 0, 0
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return 0, 0
	}
	parts := strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) > 0 {
		x, _ = strconv.ParseFloat(parts[0], 64)
	}
	if len(parts) > 1 {
		y, _ = strconv.ParseFloat(parts[1], 64)
	}
	return x, y
}

// fmtCoord formats a coordinate with two decimal places, the precision used
// throughout emitted markup.
func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
