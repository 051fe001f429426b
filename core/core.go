// Package core implements the air hockey rules: pointer binding, paddle
// velocity, goal detection, scoring and the pause and reset lifecycle.
//
// A Core is driven from a single thread. The host delivers every pointer
// event of a frame before calling Tick for that frame.
package core

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/physics"
	"github.com/pthm-cable/airhockey/systems"
)

// maxFrameDT bounds a single Tick so a stalled frame cannot launch the puck
// through a wall.
const maxFrameDT = 0.1

// Core is the game rules engine for one table.
type Core struct {
	cfg    *config.Config
	engine physics.Engine
	w      *World

	binder    *systems.Binder
	estimator *systems.Estimator
	governor  *systems.Governor

	listeners []Listener
	timer     PhaseTimer
	logger    *slog.Logger

	contacts [][2]physics.BodyID
	ticks    uint64
	simTime  float64

	pauseElapsed float64 // Seconds spent in GoalPause, for auto dismiss
	rallyTime    float64
	rallyPeak    float64
}

// New builds a table in engine and starts it in Playing.
func New(cfg *config.Config, engine physics.Engine) *Core {
	w := newWorld(cfg, engine)
	c := &Core{
		cfg:       cfg,
		engine:    engine,
		w:         w,
		binder:    systems.NewBinder(w.Registry, cfg.Paddle.Radius*cfg.Paddle.HitSlop),
		estimator: systems.NewEstimator(w.Registry, cfg.Paddle.MaxSpeed),
		governor:  systems.NewGovernor(w.Registry, cfg.Puck.MaxSpeed),
		logger:    slog.Default(),
	}
	engine.SetContactHandler(c.queueContact)
	systems.SyncTransforms(w.Registry)
	return c
}

// AddListener registers a receiver for round lifecycle events.
func (c *Core) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// SetPhaseTimer installs a timer told about each tick phase. Nil disables it.
func (c *Core) SetPhaseTimer(t PhaseTimer) {
	c.timer = t
}

// SetLogger replaces the logger, slog.Default() unless set.
func (c *Core) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

func (c *Core) phase(name string) {
	if c.timer != nil {
		c.timer.StartPhase(name)
	}
}

// PointerDown handles a new pointer. During GoalPause a press on the dismiss
// control dismisses the overlay; anywhere else it tries to bind a paddle.
// Nothing happens while manually paused.
func (c *Core) PointerDown(id systems.PointerID, pos r2.Vec, t float64) {
	if c.w.manualPaused {
		return
	}
	if c.w.goalPaused && systems.BoxContains(c.cfg.Derived.DismissRect, pos) {
		c.dismiss(false)
		return
	}
	if p, ok := c.binder.Bind(id, pos, t); ok {
		c.logger.Debug("pointer bound", "pointer", id, "player", p.String())
	}
}

// PointerMove drives the paddle bound to id. Only effective while Playing.
func (c *Core) PointerMove(id systems.PointerID, pos r2.Vec, t float64) {
	if c.State() != Playing {
		return
	}
	b, ok := c.binder.Binding(id)
	if !ok {
		return
	}
	c.estimator.Move(b, pos, t)
}

// PointerUp releases the paddle bound to id and stops it.
// Releasing is allowed in every state so a lifted finger never leaves a
// paddle locked.
func (c *Core) PointerUp(id systems.PointerID) {
	if p, ok := c.binder.Release(id); ok {
		c.logger.Debug("pointer released", "pointer", id, "player", p.String())
		systems.SyncTransforms(c.w.Registry)
	}
}

// PointerCancel is PointerUp for pointers the host lost track of.
func (c *Core) PointerCancel(id systems.PointerID) {
	c.PointerUp(id)
}

// queueContact buffers contacts reported by the engine during a step.
func (c *Core) queueContact(a, b physics.BodyID) {
	c.contacts = append(c.contacts, [2]physics.BodyID{a, b})
}

// ContactBegin reacts to a contact between two bodies. Only a puck touching a
// goal while Playing scores; everything else is ignored.
func (c *Core) ContactBegin(a, b physics.BodyID) {
	if c.State() != Playing {
		return
	}
	reg := c.w.Registry
	da, okA := reg.Describe(a)
	db, okB := reg.Describe(b)
	if !okA || !okB {
		return
	}
	side, ok := systems.ClassifyGoalContact(da, db)
	if !ok {
		return
	}
	c.scoreGoal(side)
}

// Dismiss leaves GoalPause and resets the table. It is ignored outside
// GoalPause and while manually paused.
func (c *Core) Dismiss() {
	c.dismiss(false)
}

// TogglePause flips the manual pause. The goal pause is left as it was, so
// resuming returns to the overlay if one was showing.
func (c *Core) TogglePause() {
	c.w.manualPaused = !c.w.manualPaused
	c.logger.Debug("manual pause", "paused", c.w.manualPaused, "goal_paused", c.w.goalPaused)
	for _, l := range c.listeners {
		l.PauseChanged(c.w.manualPaused)
	}
}

// Tick advances the table by dt seconds.
func (c *Core) Tick(dt float64) {
	if c.w.manualPaused || dt <= 0 {
		return
	}
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	c.ticks++

	if c.w.goalPaused {
		c.tickGoalPause(dt)
		return
	}

	c.simTime += dt
	substeps := c.cfg.Physics.Substeps
	sub := dt / float64(substeps)
	for i := 0; i < substeps && !c.w.goalPaused; i++ {
		c.phase(systems.PhasePhysics)
		c.engine.Step(sub)

		c.phase(systems.PhaseContacts)
		c.dispatchContacts()

		c.phase(systems.PhaseGovernor)
		c.governor.Apply()
	}

	c.phase(systems.PhaseSync)
	systems.SyncTransforms(c.w.Registry)

	if !c.w.goalPaused {
		c.rallyTime += dt
		if s := c.w.Registry.Transform(c.w.Registry.Puck()).Speed(); s > c.rallyPeak {
			c.rallyPeak = s
		}
	}
}

// dispatchContacts feeds buffered contacts to ContactBegin. Contacts after a
// goal in the same step are dropped by the state check.
func (c *Core) dispatchContacts() {
	for _, pair := range c.contacts {
		c.ContactBegin(pair[0], pair[1])
	}
	c.contacts = c.contacts[:0]
}

// tickGoalPause advances the auto-dismiss timer.
func (c *Core) tickGoalPause(dt float64) {
	if c.cfg.Round.Dismiss != config.DismissAuto {
		return
	}
	c.pauseElapsed += dt
	if c.pauseElapsed >= c.cfg.Round.AutoDismissDelay {
		c.dismiss(true)
	}
}

// State returns the externally visible round state. A manual pause hides a
// goal pause underneath it.
func (c *Core) State() State {
	switch {
	case c.w.manualPaused:
		return ManuallyPaused
	case c.w.goalPaused:
		return GoalPause
	}
	return Playing
}

// GoalPaused reports whether a goal overlay is pending dismissal.
func (c *Core) GoalPaused() bool { return c.w.goalPaused }

// ManuallyPaused reports whether the manual pause is on.
func (c *Core) ManuallyPaused() bool { return c.w.manualPaused }

// Score returns the current match score.
func (c *Core) Score() Score { return c.w.Score }

// Match returns the 1-based number of the current match.
func (c *Core) Match() int { return c.w.match }

// Overlay returns the goal overlay, if one is showing.
func (c *Core) Overlay() (Overlay, bool) {
	if c.w.overlay == nil {
		return Overlay{}, false
	}
	return *c.w.overlay, true
}

// Ticks returns the number of ticks that did any work.
func (c *Core) Ticks() uint64 { return c.ticks }

// SimTime returns the simulated seconds of play, pauses excluded.
func (c *Core) SimTime() float64 { return c.simTime }

// Rally returns the duration and peak puck speed of the current rally.
func (c *Core) Rally() (seconds, peakSpeed float64) {
	return c.rallyTime, c.rallyPeak
}

// Bodies appends a snapshot of every body to dst.
func (c *Core) Bodies(dst []systems.BodyState) []systems.BodyState {
	return c.w.Registry.Snapshot(dst)
}

// Bound returns the player whose paddle a pointer drives.
func (c *Core) Bound(id systems.PointerID) (components.Player, bool) {
	b, ok := c.binder.Binding(id)
	if !ok {
		return components.PlayerNone, false
	}
	return b.Player, true
}

// PaddleOwner returns the pointer driving a player's paddle.
func (c *Core) PaddleOwner(p components.Player) (systems.PointerID, bool) {
	return c.binder.Owner(p)
}

// Bindings returns every active pointer binding.
func (c *Core) Bindings() []systems.Binding {
	return c.binder.Active()
}

// World exposes the table state for read-only inspection.
func (c *Core) World() *World { return c.w }

// Config returns the configuration the core was built with.
func (c *Core) Config() *config.Config { return c.cfg }
