package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/airhockey/systems"
)

// frameTime returns the duration of the last window frame in seconds.
func frameTime() float64 {
	return float64(rl.GetFrameTime())
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyP) {
		g.core.TogglePause()
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		g.core.Dismiss()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			g.logger.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	// A lost window drops every finger so no paddle stays bound.
	if !rl.IsWindowFocused() && g.pointers.Active() > 0 {
		g.deliverPointers(g.pointers.Release())
	}

	// Inspector input
	if g.inspector != nil {
		g.inspector.HandleInput(g.camera, g.core.World().Registry)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-250, 50)
	if g.inspector != nil {
		g.inspector.Resize(int32(w), int32(h))
	}
}

// samplePointers reads every pointer held down this frame in arena
// coordinates. Touches win over the mouse when both are present.
func (g *Game) samplePointers() []PointerSample {
	g.samples = g.samples[:0]

	if n := rl.GetTouchPointCount(); n > 0 {
		for i := int32(0); i < n; i++ {
			p := rl.GetTouchPosition(i)
			g.samples = append(g.samples, PointerSample{
				ID:  touchPointerBase + systems.PointerID(rl.GetTouchPointId(i)),
				Pos: g.camera.PointToWorld(p.X, p.Y),
			})
		}
		return g.samples
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		p := rl.GetMousePosition()
		g.samples = append(g.samples, PointerSample{
			ID:  MousePointer,
			Pos: g.camera.PointToWorld(p.X, p.Y),
		})
	}
	return g.samples
}
