// Package camera maps the y-up arena onto a y-down screen viewport.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Camera fits the whole arena into the viewport with a uniform scale,
// letterboxing whichever axis has room to spare. Arena y grows upward;
// screen y grows downward.
type Camera struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (arena size)
	WorldW, WorldH float32

	// Margin is kept clear around the arena, in screen pixels
	Margin float32

	// Derived by fit
	Zoom             float32
	OffsetX, OffsetY float32 // Screen position of the arena's top-left corner
}

// New creates a camera that fits a worldW x worldH arena into the viewport.
func New(viewportW, viewportH, worldW, worldH, margin float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		Margin:    margin,
	}
	c.fit()
	return c
}

// fit recomputes zoom and offsets for the current viewport.
func (c *Camera) fit() {
	availW := max(c.ViewportW-2*c.Margin, 1)
	availH := max(c.ViewportH-2*c.Margin, 1)
	c.Zoom = min(availW/c.WorldW, availH/c.WorldH)
	c.OffsetX = (c.ViewportW - c.WorldW*c.Zoom) / 2
	c.OffsetY = (c.ViewportH - c.WorldH*c.Zoom) / 2
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.OffsetX + wx*c.Zoom
	sy = c.OffsetY + (c.WorldH-wy)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to arena coordinates.
// Points in the letterbox map outside the arena; the core clamps them.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = (sx - c.OffsetX) / c.Zoom
	wy = c.WorldH - (sy-c.OffsetY)/c.Zoom
	return wx, wy
}

// PointToWorld converts a screen pointer position into an arena vector.
func (c *Camera) PointToWorld(sx, sy float32) r2.Vec {
	wx, wy := c.ScreenToWorld(sx, sy)
	return r2.Vec{X: float64(wx), Y: float64(wy)}
}

// VecToScreen converts an arena vector to screen coordinates.
func (c *Camera) VecToScreen(v r2.Vec) (sx, sy float32) {
	return c.WorldToScreen(float32(v.X), float32(v.Y))
}

// ScaleLength converts an arena distance to screen pixels.
func (c *Camera) ScaleLength(d float64) float32 {
	return float32(d) * c.Zoom
}

// BoxToScreen returns the screen rectangle (x, y, w, h) covering an arena box.
func (c *Camera) BoxToScreen(b r2.Box) (x, y, w, h float32) {
	x, y = c.WorldToScreen(float32(b.Min.X), float32(b.Max.Y))
	w = c.ScaleLength(b.Max.X - b.Min.X)
	h = c.ScaleLength(b.Max.Y - b.Min.Y)
	return x, y, w, h
}

// IsVisible reports whether a circle in arena coordinates overlaps the viewport.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	r := radius * c.Zoom
	return sx+r >= 0 && sx-r <= c.ViewportW && sy+r >= 0 && sy-r <= c.ViewportH
}

// Resize updates viewport dimensions and refits the arena.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}

// VisibleWorldBounds returns the arena-coordinate bounds of the viewport,
// letterbox included. Returns (minX, minY, maxX, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	minX, maxY = c.ScreenToWorld(0, 0)
	maxX, minY = c.ScreenToWorld(c.ViewportW, c.ViewportH)
	return
}
