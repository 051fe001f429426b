package game

import (
	"github.com/pthm-cable/airhockey/telemetry"
)

// flushPerf closes a perf window every telemetry.perf_window frames.
func (g *Game) flushPerf() {
	window := uint64(g.cfg.Telemetry.PerfWindow)
	if window == 0 || g.frames%window != 0 {
		return
	}

	stats := g.perf.Stats()
	g.lastPerf = stats

	if g.logStats {
		stats.LogStats(g.logger)
	}
	if err := g.output.WritePerf(stats, g.core.Ticks()); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}

// PerfStats returns the most recently closed perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.lastPerf
}
