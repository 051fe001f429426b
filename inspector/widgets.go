package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Widget colors
var (
	ColorBarBg    = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill  = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarHigh  = rl.Color{R: 220, G: 120, B: 80, A: 255}
	ColorText     = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim  = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorVecBg    = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorVecArrow = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Row heights returned by the widgets
const (
	labelHeight = 20
	barHeight   = 18
	boolHeight  = 18
	vecHeight   = 34
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, format string) int32 {
	text := FormatValue(value, format)
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 16, ColorText)
	return labelHeight
}

// DrawBar renders a horizontal bar of value against scale.
func DrawBar(x, y int32, name string, value, scale float32) int32 {
	ratio := value / scale
	ratio = max(0, min(1, ratio))

	barWidth := int32(120)
	height := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, height, ColorBarBg)

	fillColor := ColorBarFill
	if ratio > 0.9 {
		fillColor = ColorBarHigh
	}
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), height, fillColor)

	rl.DrawText(fmt.Sprintf("%.0f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return barHeight
}

// DrawVec renders a vector as text with a small arrow scaled against tag.Max.
// The arrow is drawn y-up to match the arena.
func DrawVec(x, y int32, name string, v r2.Vec, tag Tag) int32 {
	size := int32(30)
	cx := float32(x + 80 + size/2)
	cy := float32(y + size/2)

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)
	rl.DrawCircle(int32(cx), int32(cy), float32(size/2), ColorVecBg)

	scale := float32(size/2-2) / tag.Scale()
	end := rl.Vector2{
		X: cx + float32(v.X)*scale,
		Y: cy - float32(v.Y)*scale,
	}
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, end, 2, ColorVecArrow)

	text := FormatValue(v, tag.Format)
	rl.DrawText(text, x+80+size+6, y+size/2-7, 14, ColorText)

	return vecHeight
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return boolHeight
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch widgetOf(field) {
	case WidgetBar:
		v, _ := Numeric(field.Value)
		return DrawBar(x, y, field.Name, v, field.Scale())
	case WidgetVec:
		return DrawVec(x, y, field.Name, field.Value.(r2.Vec), field.Tag)
	case WidgetBool:
		return DrawBool(x, y, field.Name, field.Value.(bool))
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Format)
}

// FieldHeight returns the height DrawField will use for field.
func FieldHeight(field Field) int32 {
	switch widgetOf(field) {
	case WidgetBar:
		return barHeight
	case WidgetVec:
		return vecHeight
	case WidgetBool:
		return boolHeight
	}
	return labelHeight
}

// widgetOf falls back to a label when the value cannot feed the tagged
// widget. Vectors only get an arrow when they carry a max.
func widgetOf(field Field) Widget {
	switch field.Widget {
	case WidgetBar:
		if _, ok := Numeric(field.Value); ok {
			return WidgetBar
		}
	case WidgetVec:
		if _, ok := field.Value.(r2.Vec); ok && field.Max > 0 {
			return WidgetVec
		}
	case WidgetBool:
		if _, ok := field.Value.(bool); ok {
			return WidgetBool
		}
	}
	return WidgetLabel
}
