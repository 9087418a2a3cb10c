package viewport

import (
	"log/slog"
	"sync"

	"classview/geometry"
)

// Config controls a viewport handle. Zero values fall back to the defaults
// applied in New.
type Config struct {
	MinZoom    float64
	MaxZoom    float64
	FitPadding float64
	// BeforePan, when set, is consulted with the proposed pan; returning
	// false vetoes the move.
	BeforePan func(pan geometry.Point) bool
}

// DefaultConfig returns the standard viewport limits.
func DefaultConfig() Config {
	return Config{MinZoom: 0.25, MaxZoom: 4, FitPadding: 20}
}

// Handle owns the pan/zoom state for one displayed render. It is destroyed
// and rebuilt on re-render; operations on a destroyed handle are no-ops.
type Handle struct {
	mu        sync.Mutex
	cfg       Config
	viewW     float64
	viewH     float64
	content   geometry.Rect
	zoom      float64
	pan       geometry.Point
	destroyed bool
	log       *slog.Logger
}

// New creates a handle for a view of the given size showing the given content
// bounds, starting at zoom 1 with no pan.
func New(cfg Config, viewW, viewH float64, content geometry.Rect, log *slog.Logger) *Handle {
	if log == nil {
		log = slog.Default()
	}
	def := DefaultConfig()
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = def.MinZoom
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = def.MaxZoom
	}
	if cfg.FitPadding < 0 {
		cfg.FitPadding = def.FitPadding
	}
	return &Handle{
		cfg:     cfg,
		viewW:   viewW,
		viewH:   viewH,
		content: content,
		zoom:    1,
		log:     log,
	}
}

// Destroy detaches the handle. Later calls keep returning the final state but
// change nothing.
func (h *Handle) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (h *Handle) Destroyed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destroyed
}

// Zoom sets the zoom factor, clamped to the configured range.
func (h *Handle) Zoom(z float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	h.zoom = geometry.Clamp(z, h.cfg.MinZoom, h.cfg.MaxZoom)
}

// GetZoom returns the current zoom factor.
func (h *Handle) GetZoom() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.zoom
}

// Pan sets the pan offset in screen units. A configured BeforePan hook may
// veto the move.
func (h *Handle) Pan(p geometry.Point) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	if h.cfg.BeforePan != nil && !h.cfg.BeforePan(p) {
		return
	}
	h.pan = p
}

// GetPan returns the current pan offset.
func (h *Handle) GetPan() geometry.Point {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pan
}

// Center pans so the content bounds sit centered in the view at the current
// zoom.
func (h *Handle) Center() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	c := h.content.Center()
	h.pan = geometry.Point{
		X: h.viewW/2 - c.X*h.zoom,
		Y: h.viewH/2 - c.Y*h.zoom,
	}
}

// Fit zooms so the content bounds fill the view minus the fit padding, then
// centers. Degenerate content or view sizes leave the zoom untouched.
func (h *Handle) Fit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	cw, ch := h.content.Width(), h.content.Height()
	availW := h.viewW - 2*h.cfg.FitPadding
	availH := h.viewH - 2*h.cfg.FitPadding
	if cw > geometry.Epsilon && ch > geometry.Epsilon && availW > 0 && availH > 0 {
		z := availW / cw
		if zh := availH / ch; zh < z {
			z = zh
		}
		h.zoom = geometry.Clamp(z, h.cfg.MinZoom, h.cfg.MaxZoom)
	}
	c := h.content.Center()
	h.pan = geometry.Point{
		X: h.viewW/2 - c.X*h.zoom,
		Y: h.viewH/2 - c.Y*h.zoom,
	}
}

// Transform returns the current view transform mapping diagram coordinates to
// screen coordinates.
func (h *Handle) Transform() Transform {
	h.mu.Lock()
	defer h.mu.Unlock()
	return NewTransform(h.zoom, h.pan)
}

// ScreenToWorldDelta maps a screen-space displacement into diagram space
// through the inverse of the transform's linear part. A singular transform
// yields the displacement unchanged.
func (h *Handle) ScreenToWorldDelta(d geometry.Point) geometry.Point {
	inv, ok := h.Transform().Inverse()
	if !ok {
		return d
	}
	return inv.ApplyToDelta(d)
}
