// Package inspector shows the components of a selected table body.
package inspector

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/camera"
	"github.com/pthm-cable/airhockey/physics"
	"github.com/pthm-cable/airhockey/systems"
)

// Panel dimensions
const (
	PanelWidth    = 320
	PanelPadding  = 10
	HeaderHeight  = 30
	SectionHeight = 20
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorHighlight   = rl.Yellow
)

// Section is one component of the selected body, ready to draw.
type Section struct {
	Title  string
	Fields []Field
}

// Inspector manages body selection and panel rendering.
// Selection uses the right mouse button so it never competes with paddle input.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize anchors the panel to the top-right corner of the screen.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// Select picks the body under an arena position. Clicking empty table clears
// the selection. Returns whether something is selected afterwards.
func (ins *Inspector) Select(reg *systems.Registry, p r2.Vec) bool {
	ins.selected, ins.hasSelected = reg.Pick(p)
	return ins.hasSelected
}

// HandleInput processes right-click selection and Escape to deselect.
func (ins *Inspector) HandleInput(cam *camera.Camera, reg *systems.Registry) {
	if rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		return
	}

	mouse := rl.GetMousePosition()
	if ins.hasSelected && ins.overPanel(mouse.X, mouse.Y) {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouse.X) >= closeX && int32(mouse.X) <= closeX+20 &&
			int32(mouse.Y) >= closeY && int32(mouse.Y) <= closeY+20 {
			ins.Deselect()
		}
		return
	}
	ins.Select(reg, cam.PointToWorld(mouse.X, mouse.Y))
}

func (ins *Inspector) overPanel(x, y float32) bool {
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth && int32(y) >= ins.panelY
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Sections extracts the displayable fields of the selection, one section per component.
func (ins *Inspector) Sections(reg *systems.Registry) []Section {
	if !ins.hasSelected {
		return nil
	}
	comps := reg.Components(ins.selected)
	if comps == nil {
		ins.Deselect()
		return nil
	}
	sections := make([]Section, 0, len(comps))
	for _, c := range comps {
		sections = append(sections, Section{Title: strings.ToUpper(TypeName(c)), Fields: ExtractFields(c)})
	}
	return sections
}

// panelHeight computes the dynamic panel height.
func panelHeight(sections []Section) int32 {
	height := int32(HeaderHeight + PanelPadding)
	for _, s := range sections {
		height += SectionHeight + 4
		for _, f := range s.Fields {
			height += FieldHeight(f)
		}
	}
	return height + PanelPadding
}

// Draw renders the inspector panel if a body is selected.
func (ins *Inspector) Draw(reg *systems.Registry) {
	sections := ins.Sections(reg)
	if sections == nil {
		return
	}

	height := panelHeight(sections)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	title := "INSPECTOR"
	if body := reg.Body(ins.selected); body != nil {
		title = fmt.Sprintf("INSPECTOR  body #%d", body.ID)
	}
	rl.DrawText(title, ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.Title)
		y += SectionHeight + 4
		for _, f := range s.Fields {
			y += DrawField(x, y, f)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight outlines the selected body on the table.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, reg *systems.Registry) {
	if !ins.hasSelected {
		return
	}
	body := reg.Body(ins.selected)
	tf := reg.Transform(ins.selected)
	if body == nil || tf == nil {
		return
	}

	sx, sy := cam.VecToScreen(tf.Position)
	switch body.Shape {
	case physics.ShapeRect:
		box := r2.Box{Min: r2.Sub(tf.Position, body.HalfExtents), Max: r2.Add(tf.Position, body.HalfExtents)}
		bx, by, bw, bh := cam.BoxToScreen(box)
		rl.DrawRectangleLinesEx(rl.Rectangle{X: bx - 3, Y: by - 3, Width: bw + 6, Height: bh + 6}, 2, ColorHighlight)
	default:
		rl.DrawCircleLines(int32(sx), int32(sy), cam.ScaleLength(body.Radius*1.4), ColorHighlight)
	}
}
