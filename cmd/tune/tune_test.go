package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/airhockey/config"
)

func loadBase(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestParamVectorRoundTrip(t *testing.T) {
	base := loadBase(t)
	pv := NewParamVector(base)

	def := pv.DefaultVector()
	assert.Equal(t, pv.ExtractFromConfig(base), def)
	assert.InDeltaSlice(t, def, pv.Denormalize(pv.Normalize(def)), 1e-9)
}

func TestParamVectorClampAndApply(t *testing.T) {
	base := loadBase(t)
	pv := NewParamVector(base)

	cfg := *base
	pv.ApplyToConfig(&cfg, []float64{-1, 99999, 0.8, 0})
	assert.Equal(t, 0.0, cfg.Puck.LinearDamping)
	assert.Equal(t, 2600.0, cfg.Puck.MaxSpeed)
	assert.Equal(t, 0.8, cfg.Puck.Restitution)
	assert.Equal(t, 1200.0, cfg.Paddle.MaxSpeed)

	// The base is untouched.
	assert.Equal(t, pv.DefaultVector(), pv.ExtractFromConfig(base))
}

func TestAggregateCountsGoallessRunAsOneRally(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(loadBase(t)), loadBase(t), DefaultScenarios, 10, 1, 5)

	out := fe.aggregate([]runResult{
		{goals: 2, rallySum: 8, simTime: 10},
		{goals: 0, simTime: 12},
	})
	assert.Equal(t, 2, out.Goals)
	assert.InDelta(t, 20.0/3, out.RallyMean, 1e-9)
	assert.InDelta(t, rallyError(20.0/3, 5), out.Fitness, 1e-12)

	out = fe.aggregate(nil)
	assert.True(t, math.IsInf(out.Fitness, 1))
}

func TestRallyError(t *testing.T) {
	assert.Zero(t, rallyError(6, 6))
	assert.InDelta(t, 0.25, rallyError(3, 6), 1e-12)
	assert.InDelta(t, 0.25, rallyError(9, 6), 1e-12)
}

func TestConfigForScenario(t *testing.T) {
	base := loadBase(t)
	fe := NewFitnessEvaluator(NewParamVector(base), base, DefaultScenarios, 10, 1, 5)

	cfg, err := fe.configFor(fe.params.DefaultVector(), Scenario{BotSpeed: 777, BotReaction: 0.2})
	require.NoError(t, err)
	assert.Equal(t, 777.0, cfg.Bot.MaxSpeed)
	assert.Equal(t, 0.2, cfg.Bot.Reaction)
	assert.Zero(t, cfg.Round.WinningScore)
	assert.Equal(t, config.DismissAuto, cfg.Round.Dismiss)
	assert.False(t, cfg.Audio.Enabled)

	assert.Equal(t, 7, base.Round.WinningScore)
	assert.Equal(t, config.DismissTap, base.Round.Dismiss)
}

func TestEvaluateRunsEveryScenario(t *testing.T) {
	base := loadBase(t)
	fe := NewFitnessEvaluator(NewParamVector(base), base, DefaultScenarios, 30, 1, 5)

	fitness := fe.Evaluate(fe.params.DefaultVector())
	out := fe.Last()
	assert.Equal(t, out.Fitness, fitness)
	assert.False(t, math.IsNaN(fitness))
	assert.GreaterOrEqual(t, out.RallyMean, 0.0)
}
