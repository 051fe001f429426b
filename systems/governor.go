package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
)

// Governor enforces the speed and position limits the engine does not know
// about. Run it after every engine step.
type Governor struct {
	reg          *Registry
	maxPuckSpeed float64
}

// NewGovernor creates a governor capping the puck at maxPuckSpeed.
func NewGovernor(reg *Registry, maxPuckSpeed float64) *Governor {
	return &Governor{reg: reg, maxPuckSpeed: maxPuckSpeed}
}

// Apply caps the puck speed and pulls any paddle that left its legal
// rectangle back onto the edge. It reports whether the puck was slowed.
func (g *Governor) Apply() bool {
	slowed := g.LimitPuck()
	for _, p := range components.Players {
		g.Confine(p)
	}
	return slowed
}

// LimitPuck rescales the puck velocity to the max speed if it is faster.
func (g *Governor) LimitPuck() bool {
	engine := g.reg.Engine()
	id := g.reg.PuckID()
	v := engine.Velocity(id)
	if r2.Norm2(v) <= g.maxPuckSpeed*g.maxPuckSpeed {
		return false
	}
	engine.SetVelocity(id, ClampMagnitude(v, g.maxPuckSpeed))
	return true
}

// Confine clamps a paddle into its legal rectangle and drops the velocity
// component that points further out.
func (g *Governor) Confine(p components.Player) {
	engine := g.reg.Engine()
	id := g.reg.PaddleID(p)
	bounds := g.reg.PaddleInfo(p).Bounds

	pos := engine.Position(id)
	if BoxContains(bounds, pos) {
		return
	}

	v := engine.Velocity(id)
	if (pos.X < bounds.Min.X && v.X < 0) || (pos.X > bounds.Max.X && v.X > 0) {
		v.X = 0
	}
	if (pos.Y < bounds.Min.Y && v.Y < 0) || (pos.Y > bounds.Max.Y && v.Y > 0) {
		v.Y = 0
	}
	engine.SetPosition(id, ClampToBox(pos, bounds))
	engine.SetVelocity(id, v)
}
