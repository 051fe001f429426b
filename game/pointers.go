package game

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/systems"
)

// Pointer ID ranges. Bots and the headless tapper use negative IDs.
const (
	MousePointer     systems.PointerID = 1
	touchPointerBase systems.PointerID = 1000
	tapPointer       systems.PointerID = -100
)

// PointerSample is one pointer held down this frame, in arena coordinates.
type PointerSample struct {
	ID  systems.PointerID
	Pos r2.Vec
}

// PointerEventKind is the kind of a pointer transition.
type PointerEventKind uint8

const (
	PointerDown PointerEventKind = iota
	PointerMove
	PointerUp
)

func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is one transition to deliver to the core.
type PointerEvent struct {
	Kind PointerEventKind
	ID   systems.PointerID
	Pos  r2.Vec // Unset for PointerUp
}

// PointerTracker turns per-frame pointer samples into down, move and up events.
// Every held pointer moves each frame, even when still, so a resting finger
// stops its paddle. Ups come first so a paddle freed this frame can be grabbed by a new pointer
// in the same frame; downs and moves follow in sample order.
type PointerTracker struct {
	active map[systems.PointerID]r2.Vec
	seen   map[systems.PointerID]bool
	events []PointerEvent
}

// NewPointerTracker creates a tracker with no pointers down.
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{
		active: make(map[systems.PointerID]r2.Vec),
		seen:   make(map[systems.PointerID]bool),
	}
}

// Frame diffs samples against the previous frame. The returned slice is
// reused by the next call. Duplicate IDs in samples keep the first.
func (t *PointerTracker) Frame(samples []PointerSample) []PointerEvent {
	t.events = t.events[:0]
	clear(t.seen)
	for _, s := range samples {
		t.seen[s.ID] = true
	}

	t.releaseMissing()

	for _, s := range samples {
		if !t.seen[s.ID] {
			continue
		}
		t.seen[s.ID] = false

		kind := PointerMove
		if _, down := t.active[s.ID]; !down {
			kind = PointerDown
		}
		t.events = append(t.events, PointerEvent{Kind: kind, ID: s.ID, Pos: s.Pos})
		t.active[s.ID] = s.Pos
	}
	return t.events
}

// releaseMissing emits ups, in ID order, for active pointers not in seen.
func (t *PointerTracker) releaseMissing() {
	start := len(t.events)
	for id := range t.active {
		if !t.seen[id] {
			t.events = append(t.events, PointerEvent{Kind: PointerUp, ID: id})
			delete(t.active, id)
		}
	}
	ups := t.events[start:]
	sort.Slice(ups, func(i, j int) bool { return ups[i].ID < ups[j].ID })
}

// Release lifts every pointer, for focus loss.
func (t *PointerTracker) Release() []PointerEvent {
	t.events = t.events[:0]
	clear(t.seen)
	t.releaseMissing()
	return t.events
}

// Active returns how many pointers are down.
func (t *PointerTracker) Active() int {
	return len(t.active)
}
