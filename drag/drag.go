// Package drag implements pointer-driven node dragging: a small state machine
// that converts screen-space pointer movement into node offsets and re-routes
// the affected edges as the pointer moves.
package drag

import (
	"log/slog"

	"classview/geometry"
	"classview/router"
	"classview/scene"
	"classview/viewport"
)

// State is the controller's drag state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller tracks one pointer interaction at a time over a scene. Pointer
// positions arrive in screen coordinates; deltas pass through the inverse of
// the view transform's linear part, so panning never skews a drag and zoom
// scales it correctly.
type Controller struct {
	sc   *scene.Scene
	eng  *router.Engine
	view *viewport.Handle
	log  *slog.Logger

	state       State
	nodeID      string
	startScreen geometry.Point
	baseOffset  geometry.Point
}

// NewController creates a controller over one render's scene and engine. The
// viewport may be nil, in which case screen deltas are used as-is.
func NewController(sc *scene.Scene, eng *router.Engine, view *viewport.Handle, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{sc: sc, eng: eng, view: view, log: log}
}

// State returns the current drag state.
func (c *Controller) State() State {
	return c.state
}

// NodeID returns the node being dragged, or "" when idle.
func (c *Controller) NodeID() string {
	if c.state != Dragging {
		return ""
	}
	return c.nodeID
}

// PointerDown begins a drag on the given node. It reports false and stays
// idle when the node is unknown or a drag is already in progress.
func (c *Controller) PointerDown(nodeID string, screen geometry.Point) bool {
	if c.state != Idle {
		return false
	}
	n, ok := c.sc.Node(nodeID)
	if !ok {
		c.log.Debug("pointer down on unknown node", "id", nodeID)
		return false
	}
	c.state = Dragging
	c.nodeID = nodeID
	c.startScreen = screen
	c.baseOffset = geometry.Point{X: n.DX, Y: n.DY}
	return true
}

// PointerMove updates the dragged node's offset and re-routes its edges.
// Ignored while idle.
func (c *Controller) PointerMove(screen geometry.Point) {
	if c.state != Dragging {
		return
	}
	delta := screen.Sub(c.startScreen)
	if c.view != nil {
		delta = c.view.ScreenToWorldDelta(delta)
	}
	c.sc.SetNodeOffset(c.nodeID, c.baseOffset.Add(delta))
	c.eng.Reroute(c.nodeID)
}

// PointerUp ends the drag, returning the node and its final offset. The
// second result is false when no drag was in progress.
func (c *Controller) PointerUp(screen geometry.Point) (string, geometry.Point, bool) {
	if c.state != Dragging {
		return "", geometry.Point{}, false
	}
	c.PointerMove(screen)
	id := c.nodeID
	n, _ := c.sc.Node(id)
	c.reset()
	return id, geometry.Point{X: n.DX, Y: n.DY}, true
}

// Cancel aborts the drag, restoring the node's offset from before
// PointerDown and re-routing.
func (c *Controller) Cancel() {
	if c.state != Dragging {
		return
	}
	c.sc.SetNodeOffset(c.nodeID, c.baseOffset)
	c.eng.Reroute(c.nodeID)
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.nodeID = ""
}
