// Package ui provides a descriptor-driven UI system for the table.
// Instead of hard-coding field names and layouts, panels are defined
// through metadata that can be updated alongside the underlying data.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// Normalize maps v into [0, 1] over the range.
func (r FieldRange) Normalize(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	return max(0, min(1, n))
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for numeric text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

func (fd FieldDescriptor) shown(data any) bool {
	return fd.Visible == nil || fd.Visible(data)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

func (sd SectionDescriptor) shown(data any) bool {
	return sd.Visible == nil || sd.Visible(data)
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color

	TableBg      rl.Color
	TableFloor   rl.Color
	TableLines   rl.Color
	Wall         rl.Color
	Goal         rl.Color
	Puck         rl.Color
	PlayerColors [2]rl.Color // Index 0 = player 1
	Scrim        rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.LightGray,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},

		TableBg:    rl.Color{R: 12, G: 14, B: 20, A: 255},
		TableFloor: rl.Color{R: 22, G: 46, B: 70, A: 255},
		TableLines: rl.Color{R: 90, G: 130, B: 170, A: 160},
		Wall:       rl.Color{R: 200, G: 205, B: 215, A: 255},
		Goal:       rl.Color{R: 240, G: 70, B: 70, A: 200},
		Puck:       rl.Color{R: 245, G: 245, B: 240, A: 255},
		PlayerColors: [2]rl.Color{
			{R: 235, G: 90, B: 80, A: 255},
			{R: 80, G: 170, B: 235, A: 255},
		},
		Scrim: rl.Color{R: 0, G: 0, B: 0, A: 150},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
