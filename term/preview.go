// Package term renders an interactive terminal preview of a class diagram:
// nodes as box-drawing rectangles, edges as line segments, with keyboard
// driven node movement re-routing edges live.
package term

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"classview/diagram"
	"classview/geometry"
	"classview/render"
	"classview/router"
	"classview/scene"
)

// Cell size in diagram units, matching the renderer's text metrics so the
// preview keeps roughly the same proportions as the SVG.
const (
	cellW = 8.0
	cellH = 18.0
)

// Preview is one interactive session over a rendered diagram.
type Preview struct {
	screen tcell.Screen
	sc     *scene.Scene
	eng    *router.Engine
	cfg    router.Config
	log    *slog.Logger

	nodes    []string
	selected int
	curved   bool
	dark     bool
}

// Run renders the source and takes over the terminal until the user quits.
func Run(source string, theme render.Theme, curved bool, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	res, err := render.NewClassRenderer(theme, curved, log).Render(context.Background(), source)
	if err != nil {
		return err
	}
	sc, err := scene.Build(res.SVG, log)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	cfg := router.DefaultConfig()
	cfg.Curved = curved
	p := &Preview{
		sc:     sc,
		eng:    router.NewEngine(sc, cfg, log),
		cfg:    cfg,
		log:    log,
		curved: curved,
		dark:   theme == render.ThemeDark,
	}
	for _, n := range sc.Nodes() {
		p.nodes = append(p.nodes, n.ID)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	p.screen = screen

	p.eng.RerouteAll()
	return p.loop()
}

func (p *Preview) loop() error {
	for {
		p.draw()
		switch ev := p.screen.PollEvent().(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if p.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey reports true when the session should end.
func (p *Preview) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		if len(p.nodes) > 0 {
			p.selected = (p.selected + 1) % len(p.nodes)
		}
	case tcell.KeyUp:
		p.moveSelected(0, -cellH)
	case tcell.KeyDown:
		p.moveSelected(0, cellH)
	case tcell.KeyLeft:
		p.moveSelected(-cellW, 0)
	case tcell.KeyRight:
		p.moveSelected(cellW, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'c':
			p.curved = !p.curved
			p.cfg.Curved = p.curved
			p.eng.SetCurved(p.curved)
			p.eng.RerouteAll()
		case 't':
			p.dark = !p.dark
		case 'r':
			for _, id := range p.nodes {
				p.sc.SetNodeOffset(id, geometry.Point{})
			}
			p.eng.RerouteAll()
		}
	}
	return false
}

func (p *Preview) moveSelected(dx, dy float64) {
	if len(p.nodes) == 0 {
		return
	}
	id := p.nodes[p.selected]
	n, ok := p.sc.Node(id)
	if !ok {
		return
	}
	p.sc.SetNodeOffset(id, geometry.Point{X: n.DX + dx, Y: n.DY + dy})
	p.eng.Reroute(id)
}

func (p *Preview) styles() (base, box, selected tcell.Style) {
	base = tcell.StyleDefault
	if p.dark {
		base = base.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	}
	box = base.Foreground(tcell.ColorBlue)
	selected = base.Foreground(tcell.ColorYellow).Bold(true)
	return base, box, selected
}

func (p *Preview) draw() {
	base, box, sel := p.styles()
	p.screen.Fill(' ', base)

	for _, c := range p.sc.Index.All() {
		p.drawEdge(c, base)
	}
	for i, id := range p.nodes {
		style := box
		if i == p.selected {
			style = sel
		}
		if n, ok := p.sc.Node(id); ok {
			p.drawNode(n, style, base)
		}
	}

	p.drawStatus(base)
	p.screen.Show()
}

// cell projects a diagram point onto the character grid.
func cell(pt geometry.Point) (int, int) {
	return int(pt.X / cellW), int(pt.Y / cellH)
}

func (p *Preview) drawNode(n *diagram.Node, style, textStyle tcell.Style) {
	r := n.WorldRect()
	x0, y0 := cell(geometry.Point{X: r.Left, Y: r.Top})
	x1, y1 := cell(geometry.Point{X: r.Right, Y: r.Bottom})
	if x1 <= x0 {
		x1 = x0 + 2
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	for x := x0 + 1; x < x1; x++ {
		p.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		p.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		p.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		p.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	p.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	p.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	p.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	p.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)

	for col, ch := range n.ID {
		x := x0 + 1 + col
		if x >= x1 {
			break
		}
		p.screen.SetContent(x, y0+1, ch, nil, textStyle)
	}
}

func (p *Preview) drawEdge(c *scene.Connection, style tcell.Style) {
	r := p.cfg.Route(c.Source, c.Target, c.MarkerStart, c.MarkerEnd)
	x0, y0 := cell(r.Start)
	x1, y1 := cell(r.End)

	set := func(x, y int) {
		p.screen.SetContent(x, y, '·', nil, style)
	}
	if r.Curved {
		// Curves bend through the control point on the character grid.
		cx, cy := cell(r.Control)
		plotLine(x0, y0, cx, cy, set)
		plotLine(cx, cy, x1, y1, set)
	} else {
		plotLine(x0, y0, x1, y1, set)
	}
	if c.MarkerEnd {
		p.screen.SetContent(x1, y1, '+', nil, style)
	}
}

func (p *Preview) drawStatus(style tcell.Style) {
	status := "tab: select  arrows: move  c: curve  t: theme  r: reset  q: quit"
	if len(p.nodes) > 0 {
		status = fmt.Sprintf("[%s]  %s", p.nodes[p.selected], status)
	}
	_, h := p.screen.Size()
	for i, ch := range status {
		p.screen.SetContent(i, h-1, ch, nil, style)
	}
}

// plotLine walks the grid cells of a line segment.
func plotLine(x0, y0, x1, y1 int, set func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
