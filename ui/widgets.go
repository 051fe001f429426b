package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	titleGap   = 4 // Below the panel title
	sectionGap = 4 // After each section
	spacerSize = 6
	barExtra   = 2 // Bars sit lower than text rows
	valueSlack = 50
	defaultFmt = "%.2f"
)

// Renderer draws panels in one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills and outlines a panel rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// FieldText returns the text a WidgetText field shows for data.
func FieldText(fd FieldDescriptor, data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter != nil:
		return fmt.Sprintf(formatOr(fd.Format), fd.Getter(data))
	}
	return ""
}

func formatOr(format string) string {
	if format == "" {
		return defaultFmt
	}
	return format
}

// row is one laid-out line of a panel body. Section titles are rows with
// heading set.
type row struct {
	y       int32 // Offset from the top of the body
	heading string
	field   FieldDescriptor
}

// layout places the visible rows of a panel and returns the body height.
func (r *Renderer) layout(pd PanelDescriptor, data any) ([]row, int32) {
	var rows []row
	var y int32
	for _, sd := range pd.Sections {
		if !sd.shown(data) {
			continue
		}
		if sd.Title != "" {
			rows = append(rows, row{y: y, heading: sd.Title})
			y += r.Theme.LineHeight
		}
		for _, fd := range sd.Fields {
			if !fd.shown(data) {
				continue
			}
			rows = append(rows, row{y: y, field: fd})
			y += r.advance(fd.Widget)
		}
		y += sectionGap
	}
	return rows, y
}

// advance is the vertical space a widget takes.
func (r *Renderer) advance(w WidgetType) int32 {
	switch w {
	case WidgetBar:
		return r.Theme.LineHeight + barExtra
	case WidgetSpacer:
		return spacerSize
	}
	return r.Theme.LineHeight
}

func (r *Renderer) titleHeight(pd PanelDescriptor) int32 {
	if pd.Title == "" {
		return 0
	}
	return r.Theme.LineHeight + titleGap
}

// PanelHeight returns the height of a whole panel including title and padding.
func (r *Renderer) PanelHeight(pd PanelDescriptor, data any) int32 {
	_, body := r.layout(pd, data)
	return r.Theme.Padding*2 + r.titleHeight(pd) + body
}

// PanelOrigin returns the top-left corner of a panel anchored on a screen.
func (r *Renderer) PanelOrigin(anchor PanelAnchor, width, height, screenW, screenH int32) (x, y int32) {
	m := r.Theme.Padding
	right, bottom := screenW-width-m, screenH-height-m
	switch anchor {
	case AnchorTopRight:
		return right, m
	case AnchorBottomLeft:
		return m, bottom
	case AnchorBottomRight:
		return right, bottom
	case AnchorCenter:
		return (screenW - width) / 2, (screenH - height) / 2
	}
	return m, m
}

// DrawDescriptor lays out and draws a complete panel for data.
func (r *Renderer) DrawDescriptor(pd PanelDescriptor, data any, screenW, screenH int32) {
	rows, body := r.layout(pd, data)
	height := r.Theme.Padding*2 + r.titleHeight(pd) + body
	x, y := r.PanelOrigin(pd.Anchor, pd.Width, height, screenW, screenH)
	r.DrawPanel(x, y, pd.Width, height)

	x += r.Theme.Padding
	y += r.Theme.Padding
	if pd.Title != "" {
		rl.DrawText(pd.Title, x, y, 16, rl.White)
		y += r.titleHeight(pd)
	}
	inner := pd.Width - r.Theme.Padding*2
	for _, rw := range rows {
		if rw.heading != "" {
			rl.DrawText(rw.heading, x, y+rw.y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
			continue
		}
		r.drawField(x, y+rw.y, rw.field, data, inner)
	}
}

func (r *Renderer) drawField(x, y int32, fd FieldDescriptor, data any, width int32) {
	t := r.Theme
	switch fd.Widget {
	case WidgetText:
		rl.DrawText(fd.Label+":", x, y, t.FontSize, t.LabelColor)
		rl.DrawText(FieldText(fd, data), x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = fd.Getter(data)
		}
		r.drawBar(x, y, fd.Label, v, fd.Range, formatOr(fd.Format), width)
	case WidgetSection:
		rl.DrawText(fd.Label, x, y, t.HeaderFontSize, t.SectionHeader)
	}
}

func (r *Renderer) drawBar(x, y int32, label string, v float32, rng FieldRange, format string, width int32) {
	t := r.Theme
	bx, bw := x+t.LabelWidth, width-t.LabelWidth-valueSlack
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawRectangle(bx, y+barExtra, bw, t.BarHeight, t.BarBg)
	rl.DrawRectangle(bx, y+barExtra, int32(float32(bw)*rng.Normalize(v)), t.BarHeight, t.BarFill)
	rl.DrawText(fmt.Sprintf(format, v), bx+bw+5, y, t.FontSize, t.ValueColor)
}
