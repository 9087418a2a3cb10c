// Package view coordinates the live editing loop: debounced re-rendering of
// the diagram source, scene/viewport lifecycle per render, and pointer-driven
// dragging over the current scene.
package view

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"log/slog"

	"classview/drag"
	"classview/geometry"
	"classview/render"
	"classview/router"
	"classview/scene"
	"classview/viewport"
)

// DefaultDebounce is the pause after the last source edit before a render
// starts.
const DefaultDebounce = 500 * time.Millisecond

// Config controls a controller. Zero values take the defaults applied in
// NewController.
type Config struct {
	Debounce   time.Duration
	Theme      render.Theme
	Curved     bool
	ViewWidth  float64
	ViewHeight float64
	Viewport   viewport.Config
	Routing    router.Config
}

// Update is pushed to the listener after every completed render attempt.
// Exactly one of SVG or Err is meaningful: on error the previous scene stays
// displayed and Err carries the inline message.
type Update struct {
	RenderID string
	SVG      string
	Err      error
}

// Controller owns the render pipeline for one diagram view. Source edits are
// debounced; each render runs asynchronously and carries a generation number,
// and results from superseded generations are discarded rather than applied.
type Controller struct {
	cfg      Config
	log      *slog.Logger
	onUpdate func(Update)

	mu         sync.Mutex
	renderer   render.Renderer
	source     string
	timer      *time.Timer
	cancel     context.CancelFunc
	generation uint64

	sc       *scene.Scene
	eng      *router.Engine
	view     *viewport.Handle
	dragger  *drag.Controller
	renderID string
	err      error
	closed   bool

	// dragging gates the viewport's pan hook without re-entering c.mu.
	dragging atomic.Bool
}

// NewController creates a controller. onUpdate is called from the render
// goroutine after every attempt; it must not call back into the controller.
func NewController(cfg Config, onUpdate func(Update), log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Routing == (router.Config{}) {
		cfg.Routing = router.DefaultConfig()
	}
	if onUpdate == nil {
		onUpdate = func(Update) {}
	}
	return &Controller{
		cfg:      cfg,
		log:      log,
		onUpdate: onUpdate,
		renderer: render.NewClassRenderer(cfg.Theme, cfg.Curved, log),
	}
}

// SetSource replaces the diagram source and restarts the debounce window;
// only the final text of a burst of edits is rendered.
func (c *Controller) SetSource(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.source = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.cfg.Debounce, c.Flush)
}

// Flush renders the current source immediately, bypassing any pending
// debounce window.
func (c *Controller) Flush() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.startRenderLocked()
	c.mu.Unlock()
}

// SetTheme switches the palette and re-renders.
func (c *Controller) SetTheme(theme render.Theme) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cfg.Theme = theme
	c.renderer = render.NewClassRenderer(c.cfg.Theme, c.cfg.Curved, c.log)
	c.startRenderLocked()
	c.mu.Unlock()
}

// SetCurved switches the edge style and re-renders.
func (c *Controller) SetCurved(curved bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cfg.Curved = curved
	c.cfg.Routing.Curved = curved
	c.renderer = render.NewClassRenderer(c.cfg.Theme, c.cfg.Curved, c.log)
	if c.eng != nil {
		c.eng.SetCurved(curved)
	}
	c.startRenderLocked()
	c.mu.Unlock()
}

// startRenderLocked bumps the generation, cancels the in-flight render and
// starts a new one. Callers hold c.mu.
func (c *Controller) startRenderLocked() {
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.renderAsync(ctx, gen, c.source, c.renderer)
}

func (c *Controller) renderAsync(ctx context.Context, gen uint64, source string, r render.Renderer) {
	res, err := r.Render(ctx, source)

	c.mu.Lock()
	if gen != c.generation || c.closed {
		c.mu.Unlock()
		c.log.Debug("discarding stale render", "render_id", res.ID, "generation", gen)
		return
	}

	var up Update
	if err != nil {
		// Keep the previous scene on screen; surface the error inline.
		c.err = err
		up = Update{RenderID: res.ID, Err: err}
	} else if sc, buildErr := scene.Build(res.SVG, c.log); buildErr != nil {
		c.err = buildErr
		up = Update{RenderID: res.ID, Err: buildErr}
	} else {
		c.installLocked(res.ID, sc)
		up = Update{RenderID: res.ID, SVG: res.SVG}
	}
	c.mu.Unlock()

	c.onUpdate(up)
}

// installLocked swaps in a freshly built scene: the old viewport handle is
// destroyed and every scene-coupled component is rebuilt. Callers hold c.mu.
func (c *Controller) installLocked(renderID string, sc *scene.Scene) {
	if c.view != nil {
		c.view.Destroy()
	}
	c.sc = sc
	c.renderID = renderID
	c.err = nil
	c.eng = router.NewEngine(sc, c.cfg.Routing, c.log)

	// Panning and node-dragging are mutually exclusive gestures.
	vpCfg := c.cfg.Viewport
	userGate := vpCfg.BeforePan
	vpCfg.BeforePan = func(p geometry.Point) bool {
		if c.dragging.Load() {
			return false
		}
		return userGate == nil || userGate(p)
	}
	c.view = viewport.New(vpCfg, c.cfg.ViewWidth, c.cfg.ViewHeight, contentBounds(sc), c.log)
	c.dragger = drag.NewController(sc, c.eng, c.view, c.log)
	c.dragging.Store(false)
}

// contentBounds reads the document size from the root element.
func contentBounds(sc *scene.Scene) geometry.Rect {
	w, _ := strconv.ParseFloat(sc.Root.Attr("width"), 64)
	h, _ := strconv.ParseFloat(sc.Root.Attr("height"), 64)
	return geometry.RectAt(0, 0, w, h)
}

// SVG returns the current scene's markup, reflecting any drags applied since
// the render, or "" before the first successful render.
func (c *Controller) SVG() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sc == nil {
		return ""
	}
	return c.sc.SVG()
}

// RenderID returns the identifier of the displayed render.
func (c *Controller) RenderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderID
}

// Err returns the error from the most recent render attempt, or nil when the
// displayed scene is current.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Viewport returns the handle for the displayed render, or nil before the
// first one.
func (c *Controller) Viewport() *viewport.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// PointerDown starts dragging a node. Screen coordinates.
func (c *Controller) PointerDown(nodeID string, p geometry.Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragger == nil {
		return false
	}
	ok := c.dragger.PointerDown(nodeID, p)
	if ok {
		c.dragging.Store(true)
	}
	return ok
}

// PointerMove advances an active drag.
func (c *Controller) PointerMove(p geometry.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragger != nil {
		c.dragger.PointerMove(p)
	}
}

// PointerUp finishes an active drag.
func (c *Controller) PointerUp(p geometry.Point) (string, geometry.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragger == nil {
		return "", geometry.Point{}, false
	}
	c.dragging.Store(false)
	return c.dragger.PointerUp(p)
}

// CancelDrag aborts an active drag, restoring the node's previous offset.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragger != nil {
		c.dragging.Store(false)
		c.dragger.Cancel()
	}
}

// Close stops the debounce timer and cancels any in-flight render. The
// controller ignores all calls afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	if c.view != nil {
		c.view.Destroy()
	}
}
