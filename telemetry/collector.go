package telemetry

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/core"
)

// Collector listens to a core and accumulates goal records per match.
// It writes rows through an optional OutputManager as events arrive.
type Collector struct {
	out    *OutputManager
	logger *slog.Logger

	matchID string
	goals   []GoalRecord
	pauses  int
	autos   int

	history []MatchStats
}

var _ core.Listener = (*Collector)(nil)

// NewCollector creates a collector. out may be nil; a nil logger uses
// slog.Default().
func NewCollector(out *OutputManager, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collector{out: out, logger: logger}
	c.startMatch()
	return c
}

func (c *Collector) startMatch() {
	c.matchID = uuid.NewString()
	c.goals = nil
	c.pauses = 0
	c.autos = 0
}

// GoalScored records a goal.
func (c *Collector) GoalScored(ev core.GoalEvent) {
	rec := NewGoalRecord(c.matchID, ev)
	c.goals = append(c.goals, rec)
	if err := c.out.WriteGoal(rec); err != nil {
		c.logger.Warn("failed to write goal", "error", err)
	}
}

// MatchWon closes the current match summary.
func (c *Collector) MatchWon(ev core.GoalEvent) {
	stats := c.Stats()
	stats.Winner = ev.Scorer.String()
	c.history = append(c.history, stats)
	stats.LogStats(c.logger)
	if err := c.out.WriteMatch(stats); err != nil {
		c.logger.Warn("failed to write match", "error", err)
	}
}

// RoundReset starts a fresh match after a winning goal is dismissed.
func (c *Collector) RoundReset(ev core.ResetEvent) {
	if ev.Auto {
		c.autos++
	}
	if ev.NewMatch {
		c.startMatch()
	}
}

// PauseChanged counts manual pauses.
func (c *Collector) PauseChanged(paused bool) {
	if paused {
		c.pauses++
	}
}

// MatchID returns the identifier of the match in progress.
func (c *Collector) MatchID() string {
	return c.matchID
}

// Goals returns the goals of the match in progress.
func (c *Collector) Goals() []GoalRecord {
	return c.goals
}

// History returns the summaries of finished matches.
func (c *Collector) History() []MatchStats {
	return c.history
}

// Stats summarises the match in progress.
func (c *Collector) Stats() MatchStats {
	s := MatchStats{
		MatchID:        c.matchID,
		Goals:          len(c.goals),
		Pauses:         c.pauses,
		AutoDismissals: c.autos,
	}
	if len(c.goals) == 0 {
		return s
	}

	rallies := make([]float64, len(c.goals))
	for i, g := range c.goals {
		rallies[i] = g.RallySec
		switch g.Scorer {
		case components.Player1.String():
			s.GoalsP1++
		case components.Player2.String():
			s.GoalsP2++
		}
		if g.PeakPuckSpeed > s.PeakPuckSpeed {
			s.PeakPuckSpeed = g.PeakPuckSpeed
		}
	}
	s.Match = c.goals[0].Match
	s.RallyMean, s.RallyStd, s.RallyP50, s.RallyP90 = ComputeRallyStats(rallies)
	return s
}
