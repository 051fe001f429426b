package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MatchStats summarises one match.
type MatchStats struct {
	MatchID        string  `csv:"match_id"`
	Match          int     `csv:"match"`
	Winner         string  `csv:"winner"`
	Goals          int     `csv:"goals"`
	GoalsP1        int     `csv:"goals_p1"`
	GoalsP2        int     `csv:"goals_p2"`
	RallyMean      float64 `csv:"rally_mean"`
	RallyStd       float64 `csv:"rally_std"`
	RallyP50       float64 `csv:"rally_p50"`
	RallyP90       float64 `csv:"rally_p90"`
	PeakPuckSpeed  float64 `csv:"peak_puck_speed"`
	Pauses         int     `csv:"pauses"`
	AutoDismissals int     `csv:"auto_dismissals"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeRallyStats calculates mean, population std and percentiles of rally lengths.
func ComputeRallyStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	std = stat.PopStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s MatchStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("match_id", s.MatchID),
		slog.Int("match", s.Match),
		slog.String("winner", s.Winner),
		slog.Int("goals_p1", s.GoalsP1),
		slog.Int("goals_p2", s.GoalsP2),
		slog.Float64("rally_mean", s.RallyMean),
		slog.Float64("rally_std", s.RallyStd),
		slog.Float64("rally_p50", s.RallyP50),
		slog.Float64("rally_p90", s.RallyP90),
		slog.Float64("peak_puck_speed", s.PeakPuckSpeed),
		slog.Int("pauses", s.Pauses),
	)
}

// LogStats logs the match summary at info level.
func (s MatchStats) LogStats(logger *slog.Logger) {
	logger.Info("match",
		"match_id", s.MatchID,
		"match", s.Match,
		"winner", s.Winner,
		"goals_p1", s.GoalsP1,
		"goals_p2", s.GoalsP2,
		"rally_mean", s.RallyMean,
		"rally_p90", s.RallyP90,
		"peak_puck_speed", s.PeakPuckSpeed,
		"pauses", s.Pauses,
	)
}
