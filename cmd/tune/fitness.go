package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/game"
)

// Scenario is one bot pairing a parameter vector is played under.
type Scenario struct {
	BotSpeed    float64
	BotReaction float64
}

// DefaultScenarios covers slow, average and quick bots.
var DefaultScenarios = []Scenario{
	{BotSpeed: 700, BotReaction: 0.12},
	{BotSpeed: 900, BotReaction: 0.08},
	{BotSpeed: 1200, BotReaction: 0.05},
}

// FitnessEvaluator plays headless bot matches and scores how far their mean
// rally length lands from a target.
type FitnessEvaluator struct {
	params    *ParamVector
	base      *config.Config
	scenarios []Scenario
	maxTicks  uint64
	maxGoals  int
	targetSec float64
	logger    *slog.Logger

	mu   sync.Mutex
	last Outcome
}

// Outcome aggregates one evaluation across scenarios.
type Outcome struct {
	Fitness   float64
	RallyMean float64
	Goals     int
}

// runResult holds the result of one scenario.
type runResult struct {
	goals    int
	rallySum float64
	simTime  float64
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, scenarios []Scenario, maxTicks uint64, maxGoals int, targetSec float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:    params,
		base:      base,
		scenarios: scenarios,
		maxTicks:  maxTicks,
		maxGoals:  maxGoals,
		targetSec: targetSec,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Last returns the outcome of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Outcome {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate returns the fitness of raw parameter values (lower = better).
// Every scenario runs on its own core in parallel. A candidate that cannot be
// played scores +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.scenarios))
	var g errgroup.Group
	for i, sc := range fe.scenarios {
		g.Go(func() error {
			r, err := fe.runMatch(x, sc)
			results[i] = r
			return err
		})
	}

	var out Outcome
	if err := g.Wait(); err != nil {
		fe.logger.Warn("candidate rejected", "error", err)
		out.Fitness = math.Inf(1)
	} else {
		out = fe.aggregate(results)
	}

	fe.mu.Lock()
	fe.last = out
	fe.mu.Unlock()
	return out.Fitness
}

// aggregate pools rallies across scenarios. A scenario without goals counts
// its whole run as one unfinished rally.
func (fe *FitnessEvaluator) aggregate(results []runResult) Outcome {
	var goals int
	var sum float64
	var rallies int
	for _, r := range results {
		goals += r.goals
		if r.goals == 0 {
			sum += r.simTime
			rallies++
			continue
		}
		sum += r.rallySum
		rallies += r.goals
	}

	out := Outcome{Goals: goals}
	if rallies == 0 {
		out.Fitness = math.Inf(1)
		return out
	}
	out.RallyMean = sum / float64(rallies)
	out.Fitness = rallyError(out.RallyMean, fe.targetSec)
	return out
}

// rallyError is the squared relative distance from the target rally length.
func rallyError(mean, target float64) float64 {
	d := (mean - target) / target
	return d * d
}

// runMatch plays one endless bot match until maxGoals goals or maxTicks ticks.
func (fe *FitnessEvaluator) runMatch(x []float64, sc Scenario) (runResult, error) {
	cfg, err := fe.configFor(x, sc)
	if err != nil {
		return runResult{}, err
	}

	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Headless: true,
		Logger:   fe.logger,
	})
	if err != nil {
		return runResult{}, fmt.Errorf("starting match: %w", err)
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks && len(g.Collector().Goals()) < fe.maxGoals {
		g.UpdateHeadless()
	}

	r := runResult{simTime: float64(g.Tick()) * cfg.Physics.DT}
	for _, goal := range g.Collector().Goals() {
		r.goals++
		r.rallySum += goal.RallySec
	}
	return r, nil
}

// configFor copies the base config and applies the candidate and scenario.
func (fe *FitnessEvaluator) configFor(x []float64, sc Scenario) (*config.Config, error) {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, x)
	cfg.Bot.MaxSpeed = sc.BotSpeed
	cfg.Bot.Reaction = sc.BotReaction
	cfg.Round.WinningScore = 0
	cfg.Round.Dismiss = config.DismissAuto
	cfg.Round.AutoDismissDelay = 0
	cfg.Telemetry.PerfWindow = 0
	cfg.Audio.Enabled = false
	if err := cfg.Refresh(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
