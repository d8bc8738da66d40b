// Package interact handles pan/zoom interaction for the visualizer.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

// Camera maps grid coordinates (cell units) to screen pixels via a pan
// offset and zoom factor; CellSize is the on-screen size, in pixels, of
// one grid cell at Zoom==1.
type Camera struct {
	OffsetX, OffsetY float32
	Zoom             float32
	CellSize         float32

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with a sensible default view over a grid.
func NewCamera() *Camera {
	return &Camera{
		OffsetX:  40,
		OffsetY:  40,
		Zoom:     1.0,
		CellSize: 32,
	}
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX = 40
	c.OffsetY = 40
	c.Zoom = 1.0
}

// WorldToScreen converts a grid-coordinate point (J=x, I=y) to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float32) {
	sx = float32(wx)*c.CellSize*c.Zoom + c.OffsetX
	sy = float32(wy)*c.CellSize*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld is WorldToScreen's inverse.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float64) {
	wx = float64((sx - c.OffsetX) / (c.CellSize * c.Zoom))
	wy = float64((sy - c.OffsetY) / (c.CellSize * c.Zoom))
	return
}

// HandleEvent applies a pointer event to pan (drag) or zoom (scroll, about
// the cursor).
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) {
			c.dragging = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		wx, wy := c.ScreenToWorld(ev.Position.X, ev.Position.Y)
		const zoomFactor = 1.1
		if ev.Scroll.Y > 0 {
			c.Zoom /= zoomFactor
		} else {
			c.Zoom *= zoomFactor
		}
		if c.Zoom < 0.2 {
			c.Zoom = 0.2
		}
		if c.Zoom > 8 {
			c.Zoom = 8
		}
		nsx, nsy := c.WorldToScreen(wx, wy)
		c.OffsetX += ev.Position.X - nsx
		c.OffsetY += ev.Position.Y - nsy
	}
}

// FitGrid sizes and centres the view so a W x H grid fills the given
// screen extent with margin.
func (c *Camera) FitGrid(width, height int, screenW, screenH float32, margin float32) {
	if width <= 0 || height <= 0 {
		return
	}
	availW := screenW - 2*margin
	availH := screenH - 2*margin
	zoomX := availW / (float32(width) * c.CellSize)
	zoomY := availH / (float32(height) * c.CellSize)
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	if c.Zoom < 0.2 {
		c.Zoom = 0.2
	}
	if c.Zoom > 8 {
		c.Zoom = 8
	}
	gridW := float32(width) * c.CellSize * c.Zoom
	gridH := float32(height) * c.CellSize * c.Zoom
	c.OffsetX = (screenW - gridW) / 2
	c.OffsetY = (screenH - gridH) / 2
}
