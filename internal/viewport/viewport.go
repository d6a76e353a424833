// Package viewport implements the zoom and pan model for the document view:
// stepped and continuous zoom, drag panning while zoomed in, pinch gestures
// and the double-tap zoom toggle.
package viewport

import "math"

// Zoom bounds and step sizes. Wheel and pinch deltas scale raw input into
// zoom units.
const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.25

	wheelZoomFactor = 0.001
	pinchZoomFactor = 0.01

	doubleTapZoom = 2.0
)

// Point is a position in view coordinates.
type Point struct {
	X float64
	Y float64
}

// Config bounds a controller's zoom range.
type Config struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

// DefaultConfig returns the standard zoom bounds.
func DefaultConfig() Config {
	return Config{MinZoom: MinZoom, MaxZoom: MaxZoom, ZoomStep: ZoomStep}
}

// Controller holds the zoom level and pan offset of the document view and
// interprets pointer, wheel and touch input. Not safe for concurrent use;
// input events arrive on a single goroutine.
//
// The invariant throughout: pan is {0,0} whenever zoom <= 1. Panning a view
// that fits the viewport makes no sense, so every transition to zoom <= 1
// recenters.
type Controller struct {
	cfg Config

	zoom float64
	pan  Point

	panning   bool
	panOrigin Point // pointer position minus pan at drag start

	pinchDist float64
}

// New creates a controller at zoom 1 with no pan.
func New(cfg Config) *Controller {
	if cfg.MinZoom <= 0 {
		cfg = DefaultConfig()
	}
	return &Controller{cfg: cfg, zoom: 1}
}

// Zoom returns the current zoom level.
func (c *Controller) Zoom() float64 { return c.zoom }

// Pan returns the current pan offset.
func (c *Controller) Pan() Point { return c.pan }

// Panning reports whether a drag pan is in progress.
func (c *Controller) Panning() bool { return c.panning }

// ZoomIn steps the zoom level up.
func (c *Controller) ZoomIn() {
	c.setZoom(c.zoom + c.cfg.ZoomStep)
}

// ZoomOut steps the zoom level down.
func (c *Controller) ZoomOut() {
	c.setZoom(c.zoom - c.cfg.ZoomStep)
}

// ResetZoom returns to zoom 1, which also recenters.
func (c *Controller) ResetZoom() {
	c.setZoom(1)
}

// SetZoomLevel jumps to an absolute zoom level, clamped to bounds.
func (c *Controller) SetZoomLevel(zoom float64) {
	c.setZoom(zoom)
}

// Wheel applies a scroll-wheel event. Zooming requires the platform zoom
// modifier (ctrl or cmd); unmodified scrolling is left to the caller's
// scroller and reports false.
func (c *Controller) Wheel(deltaY float64, zoomModifier bool) bool {
	if !zoomModifier {
		return false
	}
	c.setZoom(c.zoom + deltaY*-wheelZoomFactor)
	return true
}

// MouseDown begins a drag pan. Ignored unless zoomed in past 1.
func (c *Controller) MouseDown(p Point) {
	if c.zoom <= 1 {
		return
	}
	c.panning = true
	c.panOrigin = Point{X: p.X - c.pan.X, Y: p.Y - c.pan.Y}
}

// MouseMove updates the pan offset during a drag.
func (c *Controller) MouseMove(p Point) {
	if !c.panning {
		return
	}
	c.pan = Point{X: p.X - c.panOrigin.X, Y: p.Y - c.panOrigin.Y}
}

// MouseUp ends a drag pan.
func (c *Controller) MouseUp() {
	c.panning = false
}

// TouchStart begins a touch gesture: two fingers arm a pinch zoom, one
// finger arms a drag pan when zoomed in.
func (c *Controller) TouchStart(touches []Point) {
	switch {
	case len(touches) == 2:
		c.pinchDist = distance(touches[0], touches[1])
	case len(touches) == 1 && c.zoom > 1:
		c.panning = true
		c.panOrigin = Point{X: touches[0].X - c.pan.X, Y: touches[0].Y - c.pan.Y}
	}
}

// TouchMove continues a touch gesture. Pinch spread zooms in, pinch squeeze
// zooms out; a single finger pans while a drag is armed.
func (c *Controller) TouchMove(touches []Point) {
	switch {
	case len(touches) == 2 && c.pinchDist > 0:
		d := distance(touches[0], touches[1])
		c.setZoom(c.zoom + (d-c.pinchDist)*pinchZoomFactor)
		c.pinchDist = d
	case len(touches) == 1 && c.panning:
		c.pan = Point{X: touches[0].X - c.panOrigin.X, Y: touches[0].Y - c.panOrigin.Y}
	}
}

// TouchEnd ends any touch gesture.
func (c *Controller) TouchEnd() {
	c.pinchDist = 0
	c.panning = false
}

// DoubleTap toggles between fit (zoom 1) and doubleTapZoom centered on the
// tap point. p is the tap position relative to the view, whose size is
// width x height. Any zoom other than 1, zoomed out included, returns to
// fit; only fit jumps in.
func (c *Controller) DoubleTap(p Point, width, height float64) {
	if c.zoom != 1 {
		c.setZoom(1)
		return
	}
	c.zoom = clamp(doubleTapZoom, c.cfg.MinZoom, c.cfg.MaxZoom)
	c.pan = Point{X: width/2 - p.X, Y: height/2 - p.Y}
}

// setZoom clamps and applies a zoom level, recentering when the result no
// longer exceeds 1.
func (c *Controller) setZoom(zoom float64) {
	c.zoom = clamp(zoom, c.cfg.MinZoom, c.cfg.MaxZoom)
	if c.zoom <= 1 {
		c.pan = Point{}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Hypot(dx, dy)
}
