package router

import (
	"log/slog"
	"strconv"

	"classview/scene"
)

// Engine applies routing to a scene's connection index, rewriting path data
// and label positions in place. A routing pass never fails: connections the
// index could not resolve are simply absent, and geometric degeneracies fall
// back inside the geometry package.
type Engine struct {
	cfg Config
	sc  *scene.Scene
	log *slog.Logger
}

// NewEngine creates an engine over one render's scene.
func NewEngine(sc *scene.Scene, cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: cfg, sc: sc, log: log}
}

// SetCurved switches between straight and curved mode for subsequent passes.
func (e *Engine) SetCurved(curved bool) {
	e.cfg.Curved = curved
}

// Reroute recomputes every connection touching the given node.
func (e *Engine) Reroute(nodeID string) {
	for _, c := range e.sc.Index.Touching(nodeID) {
		e.apply(c)
	}
}

// RerouteAll recomputes every indexed connection.
func (e *Engine) RerouteAll() {
	for _, c := range e.sc.Index.All() {
		e.apply(c)
	}
}

func (e *Engine) apply(c *scene.Connection) {
	r := e.cfg.Route(c.Source, c.Target, c.MarkerStart, c.MarkerEnd)
	c.Edge.SetAttr("d", r.Path)

	if c.Label == nil {
		return
	}
	w, h := c.LabelSize()
	pos := e.cfg.LabelPos(r, w, h)
	c.Label.SetAttr("x", strconv.FormatFloat(pos.X, 'f', 2, 64))
	c.Label.SetAttr("y", strconv.FormatFloat(pos.Y, 'f', 2, 64))
}
