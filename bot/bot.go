// Package bot is a computer opponent that plays through the same pointer
// events a person would.
package bot

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/core"
	"github.com/pthm-cable/airhockey/systems"
)

// Player drives one paddle with a virtual finger.
type Player struct {
	core    *core.Core
	player  components.Player
	pointer systems.PointerID
	cfg     config.BotConfig

	finger r2.Vec // Where the virtual finger is
	aim    r2.Vec // Smoothed target
	down   bool
}

// New creates a bot for player p using pointer as its finger ID. The ID must
// not collide with real pointers.
func New(c *core.Core, p components.Player, pointer systems.PointerID) *Player {
	return &Player{
		core:    c,
		player:  p,
		pointer: pointer,
		cfg:     c.Config().Bot,
	}
}

// Player returns the side this bot plays.
func (b *Player) Player() components.Player { return b.player }

// Pointer returns the pointer ID the bot presses with.
func (b *Player) Pointer() systems.PointerID { return b.pointer }

// Update runs one frame of play: t is the host clock and dt the frame time.
// Call it before the core ticks.
func (b *Player) Update(t, dt float64) {
	if b.core.State() != core.Playing {
		b.lift()
		return
	}

	reg := b.core.World().Registry
	paddle := reg.Transform(reg.Paddle(b.player)).Position

	// A round reset drops every binding.
	if b.down {
		if _, ok := b.core.Bound(b.pointer); !ok {
			b.down = false
		}
	}
	if !b.down {
		b.core.PointerDown(b.pointer, paddle, t)
		if _, ok := b.core.Bound(b.pointer); !ok {
			return
		}
		b.down = true
		b.finger = paddle
		b.aim = paddle
	}

	want := b.target()
	if b.cfg.Reaction > 0 {
		alpha := 1 - math.Exp(-dt/b.cfg.Reaction)
		b.aim = r2.Add(b.aim, r2.Scale(alpha, r2.Sub(want, b.aim)))
	} else {
		b.aim = want
	}

	step := systems.ClampMagnitude(r2.Sub(b.aim, b.finger), b.cfg.MaxSpeed*dt)
	b.finger = r2.Add(b.finger, step)
	b.core.PointerMove(b.pointer, b.finger, t)
}

// lift releases the finger if it is down.
func (b *Player) lift() {
	if !b.down {
		return
	}
	b.core.PointerUp(b.pointer)
	b.down = false
}

// target picks where the paddle should go: through the puck toward the
// opponent's goal when the puck is in reach, otherwise onto the line between
// the puck and the bot's own goal.
func (b *Player) target() r2.Vec {
	cfg := b.core.Config()
	reg := b.core.World().Registry
	puck := reg.Transform(reg.Puck())
	info := reg.PaddleInfo(b.player)

	own, opp := cfg.Derived.TopGoal, cfg.Derived.BottomGoal
	if b.player == components.Player2 {
		own, opp = opp, own
	}

	if systems.BoxContains(info.Bounds, puck.Position) || b.inReach(puck.Position, info.Bounds) {
		// Aim at the far side of the puck so the paddle pushes it goalward.
		dir := unitOr(r2.Sub(opp, puck.Position), r2.Vec{})
		return systems.ClampToBox(r2.Add(puck.Position, r2.Scale(cfg.Puck.Radius, dir)), info.Bounds)
	}

	// Guard a point a quarter of the way from the goal toward the puck.
	guard := r2.Add(own, r2.Scale(0.25, r2.Sub(puck.Position, own)))
	return systems.ClampToBox(guard, info.Bounds)
}

// inReach reports whether the puck is close enough to the bot's half to strike.
func (b *Player) inReach(p r2.Vec, bounds r2.Box) bool {
	margin := b.core.Config().Puck.Radius + b.core.Config().Paddle.Radius
	return p.Y >= bounds.Min.Y-margin && p.Y <= bounds.Max.Y+margin
}

func unitOr(v, fallback r2.Vec) r2.Vec {
	if r2.Norm2(v) == 0 {
		return fallback
	}
	return r2.Unit(v)
}
