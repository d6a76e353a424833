package viewport

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func newController() *Controller {
	return New(DefaultConfig())
}

func TestZoomSteps(t *testing.T) {
	c := newController()

	c.ZoomIn()
	assert.InDelta(t, 1.25, c.Zoom(), 1e-9)

	c.ZoomIn()
	assert.InDelta(t, 1.5, c.Zoom(), 1e-9)

	c.ResetZoom()
	assert.InDelta(t, 1.0, c.Zoom(), 1e-9)
}

func TestZoomOut_ClampsAtMinimum(t *testing.T) {
	c := newController()

	// 1.0 -> 0.75 -> 0.5, then the floor holds.
	c.ZoomOut()
	c.ZoomOut()
	assert.InDelta(t, 0.5, c.Zoom(), 1e-9)

	c.ZoomOut()
	assert.InDelta(t, 0.5, c.Zoom(), 1e-9)
}

func TestZoomIn_ClampsAtMaximum(t *testing.T) {
	c := newController()

	for range 20 {
		c.ZoomIn()
	}
	assert.InDelta(t, 3.0, c.Zoom(), 1e-9)
}

func TestSetZoomLevel_Clamps(t *testing.T) {
	c := newController()

	c.SetZoomLevel(10)
	assert.InDelta(t, 3.0, c.Zoom(), 1e-9)

	c.SetZoomLevel(0.1)
	assert.InDelta(t, 0.5, c.Zoom(), 1e-9)
}

func TestWheel_RequiresModifier(t *testing.T) {
	c := newController()

	handled := c.Wheel(-100, false)
	assert.False(t, handled)
	assert.InDelta(t, 1.0, c.Zoom(), 1e-9)

	// Scroll up (negative delta) zooms in: -(-100) * 0.001 = +0.1.
	handled = c.Wheel(-100, true)
	assert.True(t, handled)
	assert.InDelta(t, 1.1, c.Zoom(), 1e-9)
}

func TestPan_OnlyWhenZoomedIn(t *testing.T) {
	c := newController()

	c.MouseDown(Point{X: 10, Y: 10})
	assert.False(t, c.Panning())

	c.SetZoomLevel(2)
	c.MouseDown(Point{X: 10, Y: 10})
	assert.True(t, c.Panning())

	c.MouseMove(Point{X: 40, Y: 25})
	assert.Equal(t, Point{X: 30, Y: 15}, c.Pan())

	c.MouseUp()
	assert.False(t, c.Panning())

	// Offset survives the release.
	assert.Equal(t, Point{X: 30, Y: 15}, c.Pan())
}

func TestPan_ResetWhenZoomDropsToOne(t *testing.T) {
	c := newController()
	c.SetZoomLevel(2)

	c.MouseDown(Point{X: 0, Y: 0})
	c.MouseMove(Point{X: 50, Y: 50})
	c.MouseUp()
	assert.NotEqual(t, Point{}, c.Pan())

	c.SetZoomLevel(1)
	assert.Equal(t, Point{}, c.Pan())
}

func TestPinch(t *testing.T) {
	c := newController()

	c.TouchStart([]Point{{X: 0, Y: 0}, {X: 100, Y: 0}})

	// Fingers spread 50 further apart: +50 * 0.01 = +0.5 zoom.
	c.TouchMove([]Point{{X: 0, Y: 0}, {X: 150, Y: 0}})
	assert.InDelta(t, 1.5, c.Zoom(), 1e-9)

	// Squeeze back down.
	c.TouchMove([]Point{{X: 0, Y: 0}, {X: 100, Y: 0}})
	assert.InDelta(t, 1.0, c.Zoom(), 1e-9)

	c.TouchEnd()
}

func TestSingleTouchPan(t *testing.T) {
	c := newController()
	c.SetZoomLevel(2)

	c.TouchStart([]Point{{X: 100, Y: 100}})
	c.TouchMove([]Point{{X: 120, Y: 90}})
	assert.Equal(t, Point{X: 20, Y: -10}, c.Pan())

	c.TouchEnd()
	assert.False(t, c.Panning())
}

func TestDoubleTap_TogglesAndCenters(t *testing.T) {
	c := newController()

	// Zoom in to 2x centered on the tap point within an 800x600 view.
	c.DoubleTap(Point{X: 200, Y: 150}, 800, 600)
	assert.InDelta(t, 2.0, c.Zoom(), 1e-9)
	assert.Equal(t, Point{X: 200, Y: 150}, c.Pan())

	// Second tap returns to fit and recenters.
	c.DoubleTap(Point{X: 200, Y: 150}, 800, 600)
	assert.InDelta(t, 1.0, c.Zoom(), 1e-9)
	assert.Equal(t, Point{}, c.Pan())
}

func TestDoubleTap_ZoomedOutReturnsToFit(t *testing.T) {
	c := newController()
	c.SetZoomLevel(0.5)

	// Below fit a double tap goes back to 1, never straight to 2x.
	c.DoubleTap(Point{X: 400, Y: 300}, 800, 600)
	assert.InDelta(t, 1.0, c.Zoom(), 1e-9)
	assert.Equal(t, Point{}, c.Pan())

	// From fit the next tap zooms in.
	c.DoubleTap(Point{X: 400, Y: 300}, 800, 600)
	assert.InDelta(t, 2.0, c.Zoom(), 1e-9)
}

func TestViewportProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("zoom always stays within bounds", prop.ForAll(
		func(levels []float64) bool {
			c := newController()
			for _, z := range levels {
				c.SetZoomLevel(z)
				if c.Zoom() < MinZoom || c.Zoom() > MaxZoom {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-100, 100)),
	))

	properties.Property("pan is origin whenever zoom is at most 1", prop.ForAll(
		func(z float64, px, py float64) bool {
			c := newController()
			c.SetZoomLevel(2)
			c.MouseDown(Point{})
			c.MouseMove(Point{X: px, Y: py})
			c.MouseUp()

			c.SetZoomLevel(z)
			if c.Zoom() <= 1 {
				return c.Pan() == Point{}
			}
			return true
		},
		gen.Float64Range(0, 4),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
	))

	properties.Property("wheel zoom direction follows delta sign", prop.ForAll(
		func(delta float64) bool {
			c := newController()
			before := c.Zoom()
			c.Wheel(delta, true)
			after := c.Zoom()
			switch {
			case delta < 0:
				return after >= before
			case delta > 0:
				return after <= before
			default:
				return after == before
			}
		},
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
