package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPointerTrackerDiffsFrames(t *testing.T) {
	tr := NewPointerTracker()
	a := r2.Vec{X: 100, Y: 200}
	b := r2.Vec{X: 300, Y: 900}

	events := tr.Frame([]PointerSample{{ID: 1, Pos: a}, {ID: 2, Pos: b}})
	assert.Equal(t, []PointerEvent{
		{Kind: PointerDown, ID: 1, Pos: a},
		{Kind: PointerDown, ID: 2, Pos: b},
	}, events)
	assert.Equal(t, 2, tr.Active())

	// Held pointers report every frame, still or not.
	events = tr.Frame([]PointerSample{{ID: 1, Pos: a}, {ID: 2, Pos: b}})
	assert.Equal(t, []PointerEvent{
		{Kind: PointerMove, ID: 1, Pos: a},
		{Kind: PointerMove, ID: 2, Pos: b},
	}, events)

	moved := r2.Vec{X: 110, Y: 210}
	events = tr.Frame([]PointerSample{{ID: 1, Pos: moved}, {ID: 2, Pos: b}})
	assert.Equal(t, []PointerEvent{
		{Kind: PointerMove, ID: 1, Pos: moved},
		{Kind: PointerMove, ID: 2, Pos: b},
	}, events)

	events = tr.Frame([]PointerSample{{ID: 2, Pos: b}})
	assert.Equal(t, []PointerEvent{{Kind: PointerUp, ID: 1}}, events)
	assert.Equal(t, 1, tr.Active())
}

func TestPointerTrackerUpsComeFirst(t *testing.T) {
	tr := NewPointerTracker()
	p := r2.Vec{X: 1, Y: 1}
	tr.Frame([]PointerSample{{ID: 3, Pos: p}, {ID: 1, Pos: p}})

	// Both lifted and a new finger lands in the same frame.
	events := tr.Frame([]PointerSample{{ID: 7, Pos: p}})
	assert.Equal(t, []PointerEvent{
		{Kind: PointerUp, ID: 1},
		{Kind: PointerUp, ID: 3},
		{Kind: PointerDown, ID: 7, Pos: p},
	}, events)
}

func TestPointerTrackerKeepsFirstDuplicate(t *testing.T) {
	tr := NewPointerTracker()
	first := r2.Vec{X: 1, Y: 2}
	events := tr.Frame([]PointerSample{{ID: 4, Pos: first}, {ID: 4, Pos: r2.Vec{X: 9, Y: 9}}})
	assert.Equal(t, []PointerEvent{{Kind: PointerDown, ID: 4, Pos: first}}, events)
}

func TestPointerTrackerRelease(t *testing.T) {
	tr := NewPointerTracker()
	tr.Frame([]PointerSample{{ID: 2, Pos: r2.Vec{}}, {ID: 1, Pos: r2.Vec{}}})

	events := tr.Release()
	assert.Equal(t, []PointerEvent{{Kind: PointerUp, ID: 1}, {Kind: PointerUp, ID: 2}}, events)
	assert.Zero(t, tr.Active())
	assert.Empty(t, tr.Release())
}

func TestPointerEventKindString(t *testing.T) {
	assert.Equal(t, "down", PointerDown.String())
	assert.Equal(t, "up", PointerUp.String())
	assert.Equal(t, "unknown", PointerEventKind(9).String())
}
