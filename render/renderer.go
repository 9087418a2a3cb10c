package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Renderer produces SVG from diagram source text. Each call is one complete
// render; callers correlate results with requests through the returned ID.
type Renderer interface {
	Render(ctx context.Context, source string) (Result, error)
}

// Result is one finished render.
type Result struct {
	ID  string // unique per render, embedded as data-render-id
	SVG string
}

// ClassRenderer renders classDiagram source with a fixed theme and edge
// style. Changing either means constructing a new renderer.
type ClassRenderer struct {
	theme  Theme
	curved bool
	log    *slog.Logger
}

// NewClassRenderer creates a renderer for the given theme and edge style.
func NewClassRenderer(theme Theme, curved bool, log *slog.Logger) *ClassRenderer {
	if log == nil {
		log = slog.Default()
	}
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return &ClassRenderer{theme: theme, curved: curved, log: log}
}

// Render parses, lays out and emits the diagram. The context is consulted
// between stages so an abandoned render stops early.
func (r *ClassRenderer) Render(ctx context.Context, source string) (Result, error) {
	id := uuid.NewString()

	d, err := Parse(source)
	if err != nil {
		return Result{ID: id}, fmt.Errorf("parsing diagram: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{ID: id}, err
	}

	Layout(d)
	if err := ctx.Err(); err != nil {
		return Result{ID: id}, err
	}

	svg := SVG(d, r.theme, r.curved, id)
	r.log.Debug("rendered diagram",
		"render_id", id, "nodes", len(d.Nodes), "relations", len(d.Relations), "theme", r.theme, "curved", r.curved)
	return Result{ID: id, SVG: svg}, nil
}
