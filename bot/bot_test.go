package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/core"
	"github.com/pthm-cable/airhockey/physics"
	"github.com/pthm-cable/airhockey/systems"
)

func newCore(t *testing.T) *core.Core {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return core.New(cfg, physics.NewSpace(cfg.Physics.Iterations))
}

func TestBotBindsItsPaddle(t *testing.T) {
	c := newCore(t)
	b := New(c, components.Player2, -2)

	b.Update(0, 1.0/60)

	p, ok := c.Bound(-2)
	require.True(t, ok)
	assert.Equal(t, components.Player2, p)
}

func TestBotMovesTowardPuckInItsHalf(t *testing.T) {
	c := newCore(t)
	reg := c.World().Registry
	engine := reg.Engine()
	b := New(c, components.Player2, -2)

	engine.SetPosition(reg.PuckID(), r2.Vec{X: 200, Y: 300})
	systems.SyncTransforms(reg)
	start := engine.Position(reg.PaddleID(components.Player2))

	ts := 0.0
	for i := 0; i < 20; i++ {
		ts += 1.0 / 60
		b.Update(ts, 1.0/60)
	}

	now := engine.Position(reg.PaddleID(components.Player2))
	puck := r2.Vec{X: 200, Y: 300}
	assert.Less(t, r2.Norm(r2.Sub(now, puck)), r2.Norm(r2.Sub(start, puck)))
}

func TestBotSpeedIsLimited(t *testing.T) {
	c := newCore(t)
	b := New(c, components.Player1, -1)
	maxStep := c.Config().Bot.MaxSpeed / 60

	b.Update(0, 1.0/60)
	require.True(t, b.down)
	ts := 0.0
	for i := 0; i < 60 && c.State() == core.Playing; i++ {
		prev := b.finger
		ts += 1.0 / 60
		b.Update(ts, 1.0/60)
		assert.LessOrEqual(t, r2.Norm(r2.Sub(b.finger, prev)), maxStep+1e-9)
		c.Tick(1.0 / 60)
	}
}

func TestBotLiftsDuringGoalPause(t *testing.T) {
	c := newCore(t)
	reg := c.World().Registry
	b := New(c, components.Player1, -1)
	b.Update(0, 1.0/60)
	require.True(t, b.down)

	c.ContactBegin(reg.PuckID(), reg.Body(reg.Goal(components.GoalTop)).ID)
	b.Update(1.0/60, 1.0/60)
	assert.False(t, b.down)
	_, ok := c.Bound(-1)
	assert.False(t, ok)

	// After the reset it presses again.
	c.Dismiss()
	b.Update(2.0/60, 1.0/60)
	_, ok = c.Bound(-1)
	assert.True(t, ok)
}

func TestBotsPlayAMatch(t *testing.T) {
	c := newCore(t)
	b1 := New(c, components.Player1, -1)
	b2 := New(c, components.Player2, -2)

	// Kick the puck so something happens even if both bots turtle.
	reg := c.World().Registry
	reg.Engine().SetVelocity(reg.PuckID(), r2.Vec{X: 300, Y: 900})

	dt := c.Config().Physics.DT
	ts := 0.0
	for i := 0; i < 60*60 && c.Score().P1+c.Score().P2 == 0; i++ {
		ts += dt
		b1.Update(ts, dt)
		b2.Update(ts, dt)
		c.Tick(dt)
		puck := reg.Engine().Position(reg.PuckID())
		require.True(t, puck.X > -1 && puck.X < c.Config().Arena.Width+1, "puck escaped at %v", puck)
	}
}
