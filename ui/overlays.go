package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

const (
	OverlayHitRegions OverlayID = "hit_regions"
	OverlayBounds     OverlayID = "paddle_bounds"
	OverlayVelocity   OverlayID = "velocity"
	OverlayBindings   OverlayID = "bindings"
	OverlayPerf       OverlayID = "perf"
	OverlayMatchStats OverlayID = "match_stats"
)

// OverlayCategory groups overlays in the controls panel.
type OverlayCategory string

const (
	CategoryTable OverlayCategory = "table"
	CategoryDebug OverlayCategory = "debug"
	CategoryStats OverlayCategory = "stats"
)

// Label is the heading shown for the category.
func (c OverlayCategory) Label() string {
	switch c {
	case CategoryTable:
		return "Table"
	case CategoryDebug:
		return "Debug"
	case CategoryStats:
		return "Stats"
	}
	return string(c)
}

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Toggle key, 0 = none
	KeyLabel string // e.g. "H", "F3"
	Category OverlayCategory
	Slot     string // Overlays sharing a non-empty slot replace each other
}

// defaultOverlays are registered by NewOverlayRegistry, in display order.
var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayHitRegions, Name: "Touch Targets", Key: rl.KeyH, KeyLabel: "H", Category: CategoryTable},
	{ID: OverlayBounds, Name: "Paddle Bounds", Key: rl.KeyJ, KeyLabel: "J", Category: CategoryTable},
	{ID: OverlayVelocity, Name: "Velocity", Key: rl.KeyV, KeyLabel: "V", Category: CategoryDebug},
	{ID: OverlayBindings, Name: "Bindings", Key: rl.KeyB, KeyLabel: "B", Category: CategoryDebug},
	// Both stats panels sit at the top right.
	{ID: OverlayPerf, Name: "Performance", Key: rl.KeyF3, KeyLabel: "F3", Category: CategoryStats, Slot: "top_right"},
	{ID: OverlayMatchStats, Name: "Match Stats", Key: rl.KeyM, KeyLabel: "M", Category: CategoryStats, Slot: "top_right"},
}

// OverlayRegistry holds the overlays and which are on.
type OverlayRegistry struct {
	list    []OverlayDescriptor
	enabled map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the table overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay, off. Registering an existing ID replaces it.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i := r.find(desc.ID); i >= 0 {
		r.list[i] = desc
		return
	}
	r.list = append(r.list, desc)
}

func (r *OverlayRegistry) find(id OverlayID) int {
	for i, d := range r.list {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	if i := r.find(id); i >= 0 {
		return r.list[i], true
	}
	return OverlayDescriptor{}, false
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled turns an overlay on or off. Turning one on clears the others in
// its slot.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	desc, ok := r.Get(id)
	if !ok {
		return
	}
	if on && desc.Slot != "" {
		for _, d := range r.list {
			if d.Slot == desc.Slot {
				r.enabled[d.ID] = false
			}
		}
	}
	r.enabled[id] = on
}

// IsEnabled returns whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns every overlay in display order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.list
}

// ByCategory returns the overlays of one category in display order.
func (r *OverlayRegistry) ByCategory(c OverlayCategory) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.list {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns each category once, in order of first appearance.
func (r *OverlayRegistry) Categories() []OverlayCategory {
	var cats []OverlayCategory
	for _, d := range r.list {
		if !slices.Contains(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, d := range r.list {
		if d.Key != 0 && d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays lists the overlays that are on, in display order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var out []OverlayID
	for _, d := range r.list {
		if r.enabled[d.ID] {
			out = append(out, d.ID)
		}
	}
	return out
}
