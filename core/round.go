package core

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/systems"
)

// scoreGoal credits a goal, freezes the table and shows the overlay.
func (c *Core) scoreGoal(side components.GoalSide) {
	w := c.w
	scorer := systems.Scorer(side)
	w.Score.add(scorer)

	c.stopBodies()
	w.goalPaused = true
	c.pauseElapsed = 0

	winner := components.PlayerNone
	if win := c.cfg.Round.WinningScore; win > 0 && w.Score.Of(scorer) >= win {
		winner = scorer
		w.matchOver = true
	}
	w.overlay = &Overlay{
		Scorer:      scorer,
		Score:       w.Score,
		Winner:      winner,
		DismissRect: c.cfg.Derived.DismissRect,
		AutoDismiss: c.cfg.Round.Dismiss == config.DismissAuto,
	}

	ev := GoalEvent{
		Match:         w.match,
		Tick:          c.ticks,
		SimTime:       c.simTime,
		Side:          side,
		Scorer:        scorer,
		Score:         w.Score,
		RallySeconds:  c.rallyTime,
		PeakPuckSpeed: c.rallyPeak,
	}
	c.rallyTime, c.rallyPeak = 0, 0

	c.logger.Info("goal",
		"match", w.match,
		"scorer", scorer.String(),
		"goal", side.String(),
		"score", w.Score.String(),
		"rally_s", ev.RallySeconds,
	)
	for _, l := range c.listeners {
		l.GoalScored(ev)
	}
	if winner.Valid() {
		c.logger.Info("match won", "match", w.match, "winner", winner.String(), "score", w.Score.String())
		for _, l := range c.listeners {
			l.MatchWon(ev)
		}
	}
}

// dismiss resets the table and resumes play. The whole reset happens inside
// this call so no tick ever sees a half-reset table.
func (c *Core) dismiss(auto bool) {
	w := c.w
	if !w.goalPaused || w.manualPaused {
		return
	}

	c.resetBodies()
	c.binder.Clear()

	newMatch := w.matchOver
	if newMatch {
		w.Score = Score{}
		w.matchOver = false
		w.match++
	}
	w.goalPaused = false
	w.overlay = nil
	c.pauseElapsed = 0
	systems.SyncTransforms(w.Registry)

	c.logger.Debug("round reset", "match", w.match, "score", w.Score.String(), "auto", auto, "new_match", newMatch)
	ev := ResetEvent{
		Match:    w.match,
		Tick:     c.ticks,
		Score:    w.Score,
		NewMatch: newMatch,
		Auto:     auto,
	}
	for _, l := range c.listeners {
		l.RoundReset(ev)
	}
}

// stopBodies zeroes the puck and both paddles where they are.
func (c *Core) stopBodies() {
	reg := c.w.Registry
	c.engine.SetVelocity(reg.PuckID(), r2.Vec{})
	c.engine.SetAngularVelocity(reg.PuckID(), 0)
	for _, p := range components.Players {
		c.engine.SetVelocity(reg.PaddleID(p), r2.Vec{})
	}
	systems.SyncTransforms(reg)
}

// resetBodies puts the puck on its spot and the paddles at home, all at rest.
func (c *Core) resetBodies() {
	reg := c.w.Registry
	puck := reg.PuckID()
	c.engine.SetPosition(puck, reg.PuckHome())
	c.engine.SetVelocity(puck, r2.Vec{})
	c.engine.SetAngularVelocity(puck, 0)

	for _, p := range components.Players {
		id := reg.PaddleID(p)
		c.engine.SetPosition(id, reg.PaddleInfo(p).Home)
		c.engine.SetVelocity(id, r2.Vec{})
	}
}
