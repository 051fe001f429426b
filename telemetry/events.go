// Package telemetry records goals, match summaries and tick performance.
package telemetry

import "github.com/pthm-cable/airhockey/core"

// GoalRecord is one row of goals.csv.
type GoalRecord struct {
	MatchID       string  `csv:"match_id"`
	Match         int     `csv:"match"`
	Tick          uint64  `csv:"tick"`
	SimTimeSec    float64 `csv:"sim_time"`
	Goal          string  `csv:"goal"`
	Scorer        string  `csv:"scorer"`
	P1            int     `csv:"p1"`
	P2            int     `csv:"p2"`
	RallySec      float64 `csv:"rally_sec"`
	PeakPuckSpeed float64 `csv:"peak_puck_speed"`
}

// NewGoalRecord flattens a goal event for CSV output.
func NewGoalRecord(matchID string, ev core.GoalEvent) GoalRecord {
	return GoalRecord{
		MatchID:       matchID,
		Match:         ev.Match,
		Tick:          ev.Tick,
		SimTimeSec:    ev.SimTime,
		Goal:          ev.Side.String(),
		Scorer:        ev.Scorer.String(),
		P1:            ev.Score.P1,
		P2:            ev.Score.P2,
		RallySec:      ev.RallySeconds,
		PeakPuckSpeed: ev.PeakPuckSpeed,
	}
}
