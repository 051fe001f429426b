package systems

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
)

// PointerID identifies one active touch or mouse pointer.
type PointerID int64

// Binding ties a pointer to the paddle it drives.
type Binding struct {
	Pointer  PointerID
	Player   components.Player
	LastPos  r2.Vec  // Last clamped sample, the paddle centre until the first move
	LastTime float64 // Timestamp of LastPos, seconds
}

// Binder maps active pointers to paddles, at most one pointer per paddle.
type Binder struct {
	reg       *Registry
	hitRadius float64

	bindings map[PointerID]*Binding
	owners   [2]*Binding
}

// NewBinder creates a binder whose paddle hit regions are circles of hitRadius.
func NewBinder(reg *Registry, hitRadius float64) *Binder {
	return &Binder{
		reg:       reg,
		hitRadius: hitRadius,
		bindings:  make(map[PointerID]*Binding),
	}
}

// Bind attaches a pointer to the first unowned paddle under pos, player 1
// first. A pointer that is already bound, or that hits no free paddle, binds
// nothing.
func (b *Binder) Bind(id PointerID, pos r2.Vec, t float64) (components.Player, bool) {
	if _, ok := b.bindings[id]; ok {
		return components.PlayerNone, false
	}

	engine := b.reg.Engine()
	r2max := b.hitRadius * b.hitRadius
	for _, p := range components.Players {
		if b.owners[p.Index()] != nil {
			continue
		}
		center := engine.Position(b.reg.PaddleID(p))
		if distanceSq(pos, center) > r2max {
			continue
		}

		binding := &Binding{
			Pointer:  id,
			Player:   p,
			LastPos:  center,
			LastTime: t,
		}
		b.bindings[id] = binding
		b.owners[p.Index()] = binding
		return p, true
	}
	return components.PlayerNone, false
}

// Release removes a pointer's binding and stops its paddle. Releasing an
// unknown pointer does nothing.
func (b *Binder) Release(id PointerID) (components.Player, bool) {
	binding, ok := b.bindings[id]
	if !ok {
		return components.PlayerNone, false
	}
	delete(b.bindings, id)
	b.owners[binding.Player.Index()] = nil

	b.reg.Engine().SetVelocity(b.reg.PaddleID(binding.Player), r2.Vec{})
	return binding.Player, true
}

// Clear drops every binding.
func (b *Binder) Clear() {
	clear(b.bindings)
	b.owners = [2]*Binding{}
}

// Binding returns the binding of a pointer.
func (b *Binder) Binding(id PointerID) (*Binding, bool) {
	binding, ok := b.bindings[id]
	return binding, ok
}

// Owner returns the pointer currently driving a player's paddle.
func (b *Binder) Owner(p components.Player) (PointerID, bool) {
	if !p.Valid() || b.owners[p.Index()] == nil {
		return 0, false
	}
	return b.owners[p.Index()].Pointer, true
}

// Len returns the number of bound pointers.
func (b *Binder) Len() int {
	return len(b.bindings)
}

// Active returns a copy of every binding, ordered by player.
func (b *Binder) Active() []Binding {
	out := make([]Binding, 0, len(b.bindings))
	for _, binding := range b.bindings {
		out = append(out, *binding)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out
}
