package ui

import (
	"fmt"
)

// ControlsPanel lists every overlay with its key and state. Tab shows it.
type ControlsPanel struct {
	renderer *Renderer
	panel    PanelDescriptor
	visible  bool
}

// NewControlsPanel builds the panel for the overlays in reg.
func NewControlsPanel(reg *OverlayRegistry) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		panel:    ControlsDescriptor(reg),
	}
}

// ControlsDescriptor lays out one section per overlay category. Its data is
// the *OverlayRegistry.
func ControlsDescriptor(reg *OverlayRegistry) PanelDescriptor {
	pd := PanelDescriptor{
		ID:     "controls",
		Title:  "Overlays",
		Width:  220,
		Anchor: AnchorTopLeft,
	}
	for _, cat := range reg.Categories() {
		sd := SectionDescriptor{ID: string(cat), Title: cat.Label()}
		for _, d := range reg.ByCategory(cat) {
			sd.Fields = append(sd.Fields, FieldDescriptor{
				ID:         string(d.ID),
				Label:      d.Name,
				Widget:     WidgetText,
				TextGetter: overlayState(d),
			})
		}
		pd.Sections = append(pd.Sections, sd)
	}
	return pd
}

// overlayState renders "on [H]" or "off [H]" for one overlay.
func overlayState(d OverlayDescriptor) func(any) string {
	return func(data any) string {
		state := "off"
		if reg, ok := data.(*OverlayRegistry); ok && reg.IsEnabled(d.ID) {
			state = "on"
		}
		if d.KeyLabel == "" {
			return state
		}
		return fmt.Sprintf("%-3s [%s]", state, d.KeyLabel)
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility and returns the new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel when visible.
func (c *ControlsPanel) Draw(reg *OverlayRegistry, screenW, screenH int32) {
	if !c.visible {
		return
	}
	c.renderer.DrawDescriptor(c.panel, reg, screenW, screenH)
}
