package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
)

func bindPlayer(t *testing.T, reg *Registry, b *Binder, id PointerID, pos r2.Vec, ts float64) *Binding {
	t.Helper()
	_, ok := b.Bind(id, pos, ts)
	require.True(t, ok)
	binding, ok := b.Binding(id)
	require.True(t, ok)
	return binding
}

func TestEstimatorDerivesVelocity(t *testing.T) {
	cfg, reg := newTable(t)
	b := NewBinder(reg, cfg.Paddle.Radius*cfg.Paddle.HitSlop)
	e := NewEstimator(reg, cfg.Paddle.MaxSpeed)
	home := cfg.Derived.PaddleHome[1]
	binding := bindPlayer(t, reg, b, 1, home, 1.0)

	target := r2.Add(home, r2.Vec{X: 10, Y: 5})
	v, ok := e.Move(binding, target, 1.1)
	require.True(t, ok)
	assert.InDelta(t, 100, v.X, 1e-9)
	assert.InDelta(t, 50, v.Y, 1e-9)

	id := reg.PaddleID(components.Player2)
	assert.Equal(t, target, reg.Engine().Position(id))
	assert.Equal(t, v, reg.Engine().Velocity(id))
	assert.Equal(t, target, binding.LastPos)
	assert.Equal(t, 1.1, binding.LastTime)
}

func TestEstimatorCapsSpeedAtWriteTime(t *testing.T) {
	cfg, reg := newTable(t)
	b := NewBinder(reg, cfg.Paddle.Radius*cfg.Paddle.HitSlop)
	e := NewEstimator(reg, cfg.Paddle.MaxSpeed)
	home := cfg.Derived.PaddleHome[1]
	binding := bindPlayer(t, reg, b, 1, home, 0)

	v, ok := e.Move(binding, r2.Add(home, r2.Vec{X: 200}), 0.001)
	require.True(t, ok)
	assert.InDelta(t, cfg.Paddle.MaxSpeed, r2.Norm(v), 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9, "direction preserved")
	assert.InDelta(t, cfg.Paddle.MaxSpeed, r2.Norm(reg.Engine().Velocity(reg.PaddleID(components.Player2))), 1e-9)
}

func TestEstimatorNonPositiveDeltaWritesPositionOnly(t *testing.T) {
	for _, dt := range []float64{0, -0.5} {
		cfg, reg := newTable(t)
		b := NewBinder(reg, cfg.Paddle.Radius*cfg.Paddle.HitSlop)
		e := NewEstimator(reg, cfg.Paddle.MaxSpeed)
		home := cfg.Derived.PaddleHome[0]
		binding := bindPlayer(t, reg, b, 1, home, 2)
		id := reg.PaddleID(components.Player1)
		reg.Engine().SetVelocity(id, r2.Vec{X: 7})

		target := r2.Add(home, r2.Vec{X: 30})
		_, ok := e.Move(binding, target, 2+dt)
		assert.False(t, ok)
		assert.Equal(t, target, reg.Engine().Position(id))
		assert.Equal(t, r2.Vec{X: 7}, reg.Engine().Velocity(id), "velocity untouched")
		assert.Equal(t, 2.0, binding.LastTime)
	}
}

func TestEstimatorClampsToOwnHalf(t *testing.T) {
	cfg, reg := newTable(t)
	b := NewBinder(reg, cfg.Paddle.Radius*cfg.Paddle.HitSlop)
	e := NewEstimator(reg, cfg.Paddle.MaxSpeed)
	binding := bindPlayer(t, reg, b, 1, cfg.Derived.PaddleHome[0], 0)

	// Drag player 1 deep into the opponent's half and off the left edge.
	e.Move(binding, r2.Vec{X: -100, Y: 100}, 1)

	got := reg.Engine().Position(reg.PaddleID(components.Player1))
	assert.Equal(t, cfg.Paddle.Radius, got.X)
	assert.Equal(t, cfg.Derived.MidY+cfg.Paddle.Radius, got.Y)
}

func TestEstimatorSpeedNeverExceedsMax(t *testing.T) {
	cfg, reg := newTable(t)
	b := NewBinder(reg, cfg.Paddle.Radius*cfg.Paddle.HitSlop)
	e := NewEstimator(reg, cfg.Paddle.MaxSpeed)
	binding := bindPlayer(t, reg, b, 1, cfg.Derived.PaddleHome[1], 0)
	bounds := reg.PaddleInfo(components.Player2).Bounds

	rng := rand.New(rand.NewSource(3))
	ts := 0.0
	for i := 0; i < 500; i++ {
		ts += 1e-4 + rng.Float64()*0.03
		raw := r2.Vec{
			X: rng.Float64()*cfg.Arena.Width*1.4 - cfg.Arena.Width*0.2,
			Y: rng.Float64()*cfg.Arena.Height*1.4 - cfg.Arena.Height*0.2,
		}
		v, ok := e.Move(binding, raw, ts)
		require.True(t, ok)
		require.LessOrEqual(t, r2.Norm(v), cfg.Paddle.MaxSpeed+1e-9)

		pos := reg.Engine().Position(reg.PaddleID(components.Player2))
		require.True(t, BoxContains(bounds, pos), "paddle at %v left %v", pos, bounds)
	}
	assert.False(t, math.IsNaN(binding.LastPos.X))
}
