package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/camera"
	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/physics"
	"github.com/pthm-cable/airhockey/systems"
)

// TableView is everything the table renderer needs for one frame.
type TableView struct {
	Bodies       []systems.BodyState
	Bindings     []systems.Binding
	Bounds       [2]r2.Box // Paddle centre bounds, index 0 = player 1
	HitRadius    float64   // Paddle touch target radius
	MaxPuckSpeed float64
}

// TableRenderer draws the arena and its bodies through a camera.
type TableRenderer struct {
	renderer *Renderer
	cam      *camera.Camera
}

// NewTableRenderer creates a renderer for the camera's arena.
func NewTableRenderer(cam *camera.Camera) *TableRenderer {
	return &TableRenderer{renderer: NewRenderer(), cam: cam}
}

// PaddleColor returns the colour of a player's paddle.
func (t *TableRenderer) PaddleColor(p components.Player) rl.Color {
	if !p.Valid() {
		return rl.Gray
	}
	return t.renderer.Theme.PlayerColors[p.Index()]
}

// Draw renders the table and whatever overlays are enabled.
func (t *TableRenderer) Draw(view TableView, overlays *OverlayRegistry) {
	rl.ClearBackground(t.renderer.Theme.TableBg)
	t.drawFloor()

	for _, b := range view.Bodies {
		t.drawBody(b)
	}

	if overlays.IsEnabled(OverlayBounds) {
		for i, box := range view.Bounds {
			x, y, w, h := t.cam.BoxToScreen(box)
			c := t.renderer.Theme.PlayerColors[i]
			c.A = 120
			rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, 1, c)
		}
	}
	if overlays.IsEnabled(OverlayHitRegions) {
		for _, b := range view.Bodies {
			if p, ok := paddleOf(b); ok {
				sx, sy := t.cam.VecToScreen(b.Position)
				c := t.PaddleColor(p)
				c.A = 90
				rl.DrawCircleLines(int32(sx), int32(sy), t.cam.ScaleLength(view.HitRadius), c)
			}
		}
	}
	if overlays.IsEnabled(OverlayVelocity) {
		t.drawVelocities(view)
	}
	if overlays.IsEnabled(OverlayBindings) {
		t.drawBindings(view)
	}
}

// drawFloor paints the playing surface and its markings.
func (t *TableRenderer) drawFloor() {
	theme := t.renderer.Theme
	cam := t.cam

	x, y := cam.WorldToScreen(0, cam.WorldH)
	w, h := cam.WorldW*cam.Zoom, cam.WorldH*cam.Zoom
	rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: w, Y: h}, theme.TableFloor)

	// Centre line and circle
	lx, ly := cam.WorldToScreen(0, cam.WorldH/2)
	rl.DrawLineEx(rl.Vector2{X: lx, Y: ly}, rl.Vector2{X: lx + w, Y: ly}, 2, theme.TableLines)
	cx, cy := cam.WorldToScreen(cam.WorldW/2, cam.WorldH/2)
	rl.DrawCircleLines(int32(cx), int32(cy), cam.WorldW*0.15*cam.Zoom, theme.TableLines)
}

// drawBody draws one body by its tag.
func (t *TableRenderer) drawBody(b systems.BodyState) {
	theme := t.renderer.Theme
	cam := t.cam

	switch b.Shape {
	case physics.ShapeEdgeLoop:
		// Position is the bottom-left corner; the loop grows outward by Radius.
		grow := r2.Vec{X: b.Radius, Y: b.Radius}
		lo := r2.Sub(b.Position, grow)
		hi := r2.Add(b.Position, r2.Add(r2.Scale(2, b.HalfExtents), grow))
		x, y, w, h := cam.BoxToScreen(r2.Box{Min: lo, Max: hi})
		rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, cam.ScaleLength(b.Radius), theme.Wall)

	case physics.ShapeRect:
		box := r2.Box{Min: r2.Sub(b.Position, b.HalfExtents), Max: r2.Add(b.Position, b.HalfExtents)}
		x, y, w, h := cam.BoxToScreen(box)
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, theme.Goal)

	default:
		sx, sy := cam.VecToScreen(b.Position)
		r := cam.ScaleLength(b.Radius)
		if p, ok := paddleOf(b); ok {
			c := t.PaddleColor(p)
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, c)
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r*0.45, rl.ColorBrightness(c, -0.3))
			return
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, theme.Puck)
		rl.DrawCircleLines(int32(sx), int32(sy), r*0.7, rl.LightGray)
	}
}

// drawVelocities draws an arrow per dynamic body, full length at the puck speed limit.
func (t *TableRenderer) drawVelocities(view TableView) {
	if view.MaxPuckSpeed <= 0 {
		return
	}
	full := float64(t.cam.WorldH) * 0.15
	for _, b := range view.Bodies {
		if !b.Dynamic {
			continue
		}
		tip := r2.Add(b.Position, r2.Scale(full/view.MaxPuckSpeed, b.Velocity))
		sx, sy := t.cam.VecToScreen(b.Position)
		ex, ey := t.cam.VecToScreen(tip)
		rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, 2, rl.Lime)
		rl.DrawCircleV(rl.Vector2{X: ex, Y: ey}, 3, rl.Lime)
	}
}

// drawBindings joins each active pointer to the paddle it drives.
func (t *TableRenderer) drawBindings(view TableView) {
	for _, bnd := range view.Bindings {
		var paddle systems.BodyState
		found := false
		for _, b := range view.Bodies {
			if b.Tag == components.PaddleTag(bnd.Player) {
				paddle, found = b, true
				break
			}
		}
		if !found {
			continue
		}
		px, py := t.cam.VecToScreen(bnd.LastPos)
		bx, by := t.cam.VecToScreen(paddle.Position)
		c := t.PaddleColor(bnd.Player)
		rl.DrawLineV(rl.Vector2{X: px, Y: py}, rl.Vector2{X: bx, Y: by}, c)
		rl.DrawCircleLines(int32(px), int32(py), 6, c)
		rl.DrawText(fmt.Sprintf("#%d", bnd.Pointer), int32(px)+8, int32(py)-6, 12, rl.White)
	}
}

// paddleOf returns the player a body belongs to, if it is a paddle.
func paddleOf(b systems.BodyState) (components.Player, bool) {
	for _, p := range components.Players {
		if b.Tag == components.PaddleTag(p) {
			return p, true
		}
	}
	return components.PlayerNone, false
}
