package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/airhockey/camera"
	"github.com/pthm-cable/airhockey/core"
)

// GoalOverlay renders the goal screen shown while a round is paused.
type GoalOverlay struct {
	renderer *Renderer
	cam      *camera.Camera
}

// NewGoalOverlay creates the overlay for the camera's arena.
func NewGoalOverlay(cam *camera.Camera) *GoalOverlay {
	return &GoalOverlay{renderer: NewRenderer(), cam: cam}
}

// ButtonRect returns the screen rectangle of the dismiss control.
func (g *GoalOverlay) ButtonRect(ov core.Overlay) rl.Rectangle {
	x, y, w, h := g.cam.BoxToScreen(ov.DismissRect)
	return rl.Rectangle{X: x, Y: y, Width: w, Height: h}
}

// Draw dims the table and shows the result with a dismiss button.
// It reports whether the button was clicked this frame.
func (g *GoalOverlay) Draw(ov core.Overlay, screenW, screenH int32) bool {
	rl.DrawRectangle(0, 0, screenW, screenH, g.renderer.Theme.Scrim)

	btn := g.ButtonRect(ov)
	cx := int32(btn.X + btn.Width/2)

	color := rl.White
	if p := ov.Winner; p.Valid() {
		color = g.renderer.Theme.PlayerColors[p.Index()]
	} else if p := ov.Scorer; p.Valid() {
		color = g.renderer.Theme.PlayerColors[p.Index()]
	}

	const titleSize, detailSize = 40, 20
	title := ov.Title()
	rl.DrawText(title, cx-rl.MeasureText(title, titleSize)/2, int32(btn.Y)-titleSize-detailSize-40, titleSize, color)
	detail := ov.Detail()
	rl.DrawText(detail, cx-rl.MeasureText(detail, detailSize)/2, int32(btn.Y)-detailSize-20, detailSize, rl.LightGray)

	if ov.AutoDismiss {
		return false
	}
	return gui.Button(btn, ov.ButtonLabel())
}
