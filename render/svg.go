package render

import (
	"fmt"
	"strings"

	"classview/diagram"
	"classview/router"
)

const svgMargin = 40.0

// SVG emits the laid-out diagram as a standalone SVG document. Node groups,
// edge paths and labels carry the stable identifiers the scene index
// correlates after parsing; labels reference their edge explicitly through
// data-edge and carry their measured size.
func SVG(d *diagram.Diagram, theme Theme, curved bool, renderID string) string {
	pal := theme.palette()
	routing := router.DefaultConfig()
	routing.Curved = curved

	width, height := canvasSize(d)

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" data-render-id="%s" data-theme="%s">`,
		f(width), f(height), f(width), f(height), renderID, theme)

	writeDefs(&sb, pal)
	fmt.Fprintf(&sb, `<rect class="background" width="%s" height="%s" fill="%s"/>`, f(width), f(height), pal.Background)

	writeEdges(&sb, d, pal, routing)
	for i := range d.Nodes {
		writeNode(&sb, &d.Nodes[i], pal)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func canvasSize(d *diagram.Diagram) (w, h float64) {
	for i := range d.Nodes {
		r := d.Nodes[i].LocalRect()
		if r.Right > w {
			w = r.Right
		}
		if r.Bottom > h {
			h = r.Bottom
		}
	}
	return w + 2*svgMargin, h + 2*svgMargin
}

func writeDefs(sb *strings.Builder, pal palette) {
	sb.WriteString("<defs>")
	// Filled arrowhead for associations and dependencies.
	fmt.Fprintf(sb,
		`<marker id="arrow" markerWidth="10" markerHeight="8" refX="9" refY="4" orient="auto"><path d="M 0 0 L 10 4 L 0 8 z" fill="%s"/></marker>`,
		pal.Edge)
	// Hollow triangle for inheritance.
	fmt.Fprintf(sb,
		`<marker id="triangle" markerWidth="14" markerHeight="12" refX="13" refY="6" orient="auto"><path d="M 1 1 L 13 6 L 1 11 z" fill="%s" stroke="%s"/></marker>`,
		pal.Background, pal.Edge)
	sb.WriteString("</defs>")
}

// writeEdges emits edge paths and their labels. Initial paths come from the
// same router used for live re-routing, so a freshly built scene and an
// untouched routing pass agree on every path string.
func writeEdges(sb *strings.Builder, d *diagram.Diagram, pal palette, routing router.Config) {
	type placed struct {
		rel   *diagram.Relation
		id    string
		route router.Route
	}

	ordinal := make(map[string]int)
	var edges []placed

	// Routes are computed in document coordinates (margin folded into node
	// positions), so a later re-route writes the same coordinate space.
	shifted := func(n *diagram.Node) *diagram.Node {
		c := *n
		c.X += svgMargin
		c.Y += svgMargin
		return &c
	}

	for i := range d.Relations {
		rel := &d.Relations[i]
		src := d.Node(rel.From)
		dst := d.Node(rel.To)
		if src == nil || dst == nil {
			continue
		}
		key := rel.From + "\x00" + rel.To
		id := diagram.EdgeID(rel.From, rel.To, ordinal[key])
		ordinal[key]++

		edges = append(edges, placed{rel: rel, id: id, route: routing.Route(shifted(src), shifted(dst), false, rel.Kind.HasArrow())})
	}

	sb.WriteString(`<g id="edges">`)
	for _, e := range edges {
		fmt.Fprintf(sb, `<path id="%s" class="edge %s" fill="none" stroke="%s" stroke-width="1.5"`,
			e.id, e.rel.Kind, pal.Edge)
		if e.rel.Kind == diagram.Dependency {
			sb.WriteString(` stroke-dasharray="6 4"`)
		}
		if e.rel.Kind.HasArrow() {
			marker := "arrow"
			if e.rel.Kind == diagram.Inheritance {
				marker = "triangle"
			}
			fmt.Fprintf(sb, ` marker-end="url(#%s)"`, marker)
		}
		fmt.Fprintf(sb, ` d="%s"/>`, e.route.Path)
	}
	sb.WriteString("</g>")

	sb.WriteString(`<g id="labels">`)
	labelN := 0
	for _, e := range edges {
		if e.rel.Label == "" {
			continue
		}
		w := float64(len(e.rel.Label)) * charWidth
		h := lineHeight - 2
		pos := router.DefaultConfig().LabelPos(e.route, w, h)
		fmt.Fprintf(sb,
			`<text id="%s" data-edge="%s" data-width="%s" data-height="%s" x="%s" y="%s" font-size="12" fill="%s">%s</text>`,
			diagram.LabelID(labelN), e.id, f(w), f(h), f(pos.X), f(pos.Y), pal.Label, escape(e.rel.Label))
		labelN++
	}
	sb.WriteString("</g>")
}

func writeNode(sb *strings.Builder, n *diagram.Node, pal palette) {
	fmt.Fprintf(sb, `<g id="%s" class="node" transform="translate(%s,%s)">`,
		diagram.NodeID(n.ID), f(n.DX), f(n.DY))

	x, y := n.X+svgMargin, n.Y+svgMargin
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" rx="4" fill="%s" stroke="%s"/>`,
		f(x), f(y), f(n.Width), f(n.Height), pal.NodeFill, pal.NodeStroke)

	// Title band behind the class name.
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" rx="4" fill="%s"/>`,
		f(x), f(y), f(n.Width), f(lineHeight+nodePadY), pal.TitleFill)

	for i, line := range n.Lines {
		weight := ""
		if i == 0 {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(sb, `<text x="%s" y="%s" font-size="12" font-family="monospace"%s fill="%s">%s</text>`,
			f(x+nodePadX), f(y+nodePadY+float64(i+1)*lineHeight-5), weight, pal.Text, escape(line))
	}

	sb.WriteString("</g>")
}

func f(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
