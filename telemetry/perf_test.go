package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/airhockey/core"
	"github.com/pthm-cable/airhockey/systems"
)

var _ core.PhaseTimer = (*PerfCollector)(nil)

// fakeClock is a manual clock for PerfCollector.now.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTimedCollector(window int, budget time.Duration) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window, budget)
	pc.now = clk.now
	return pc, clk
}

func runFrame(pc *PerfCollector, clk *fakeClock, phases map[string]time.Duration, order ...string) {
	pc.StartTick()
	for _, name := range order {
		pc.StartPhase(name)
		clk.advance(phases[name])
	}
	pc.EndTick()
}

func TestPerfCollectorTracksEnteredPhases(t *testing.T) {
	pc, clk := newTimedCollector(10, 0)
	for i := 0; i < 5; i++ {
		runFrame(pc, clk, map[string]time.Duration{
			systems.PhasePhysics: 100 * time.Microsecond,
			systems.PhaseSync:    200 * time.Microsecond,
		}, systems.PhasePhysics, systems.PhaseSync)
	}

	stats := pc.Stats()
	if stats.AvgTick != 300*time.Microsecond {
		t.Errorf("avg = %v, want 300µs", stats.AvgTick)
	}
	if got := stats.PhaseAvg[systems.PhasePhysics]; got != 100*time.Microsecond {
		t.Errorf("physics avg = %v, want 100µs", got)
	}
	if got := stats.PhaseAvg[systems.PhaseSync]; got != 200*time.Microsecond {
		t.Errorf("sync avg = %v, want 200µs", got)
	}
	if _, ok := stats.PhaseAvg[systems.PhaseContacts]; ok {
		t.Error("a phase never started should not be reported")
	}
	if pct := stats.PhasePct[systems.PhaseSync]; math.Abs(pct-200.0/3) > 1e-9 {
		t.Errorf("sync share = %v%%, want 66.7%%", pct)
	}
}

func TestPerfCollectorCountsInstantPhases(t *testing.T) {
	pc, clk := newTimedCollector(4, 0)
	runFrame(pc, clk, map[string]time.Duration{systems.PhasePhysics: time.Millisecond},
		systems.PhaseInput, systems.PhasePhysics)

	stats := pc.Stats()
	if got, ok := stats.PhaseAvg[systems.PhaseInput]; !ok || got != 0 {
		t.Errorf("input = %v (tracked %v), want 0 and tracked", got, ok)
	}
}

func TestPerfCollectorAcceptsUnknownPhases(t *testing.T) {
	pc, clk := newTimedCollector(4, 0)
	runFrame(pc, clk, nil, "warmup")
	runFrame(pc, clk, nil, "warmup", systems.PhaseInput)

	stats := pc.Stats()
	if _, ok := stats.PhaseAvg["warmup"]; !ok {
		t.Error("expected unknown phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseInput]; !ok {
		t.Error("expected input phase to be tracked")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clk := newTimedCollector(3, 0)
	slowFrame := map[string]time.Duration{systems.PhasePhysics: 2 * time.Millisecond}
	fastFrame := map[string]time.Duration{systems.PhasePhysics: 100 * time.Microsecond}
	for i := 0; i < 3; i++ {
		runFrame(pc, clk, slowFrame, systems.PhasePhysics)
	}
	if slow := pc.Stats().AvgTick; slow != 2*time.Millisecond {
		t.Fatalf("slow avg = %v, want 2ms", slow)
	}

	// Three fast frames push every slow one out of the window.
	for i := 0; i < 3; i++ {
		runFrame(pc, clk, fastFrame, systems.PhasePhysics)
	}
	fast := pc.Stats()
	if fast.AvgTick != 100*time.Microsecond {
		t.Errorf("window still holds slow frames: avg %v", fast.AvgTick)
	}
	if fast.TicksPerSecond != 10000 {
		t.Errorf("ticks per second = %v, want 10000", fast.TicksPerSecond)
	}
}

func TestPerfCollectorBudget(t *testing.T) {
	pc, clk := newTimedCollector(10, time.Millisecond)
	for i := 0; i < 4; i++ {
		runFrame(pc, clk, map[string]time.Duration{systems.PhaseSync: 500 * time.Microsecond}, systems.PhaseSync)
	}
	runFrame(pc, clk, map[string]time.Duration{systems.PhasePhysics: 3 * time.Millisecond}, systems.PhasePhysics)

	stats := pc.Stats()
	if stats.Overruns != 1 {
		t.Errorf("overruns = %d, want 1", stats.Overruns)
	}
	if stats.MaxTick != 3*time.Millisecond {
		t.Errorf("max = %v, want 3ms", stats.MaxTick)
	}
	if stats.P50Tick != 500*time.Microsecond || stats.P95Tick != 3*time.Millisecond {
		t.Errorf("p50 %v p95 %v, want 500µs and 3ms", stats.P50Tick, stats.P95Tick)
	}
	if math.Abs(stats.BudgetPct-100) > 1e-9 {
		t.Errorf("budget share = %v%%, want 100%%", stats.BudgetPct)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10, time.Millisecond).Stats()
	if stats.AvgTick != 0 || stats.Overruns != 0 {
		t.Errorf("empty collector = %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc, clk := newTimedCollector(10, 0)
	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("one frame gives no rate")
	}
	clk.advance(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 16*time.Millisecond {
		t.Errorf("frame duration = %v, want 16ms", stats.FrameDuration)
	}
	if math.Abs(stats.FPS-62.5) > 1e-9 {
		t.Errorf("fps = %v, want 62.5", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgTick:  250 * time.Microsecond,
		P95Tick:  400 * time.Microsecond,
		Overruns: 2,
		PhasePct: map[string]float64{
			systems.PhasePhysics: 60,
			systems.PhaseSync:    5,
			PhaseBot:             10,
		},
	}

	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 250 || row.P95TickUS != 400 || row.Overruns != 2 {
		t.Errorf("row = %+v", row)
	}
	if row.PhysicsPct != 60 || row.SyncPct != 5 || row.BotPct != 10 {
		t.Errorf("phase columns = %+v", row)
	}
	if row.ContactsPct != 0 {
		t.Errorf("untimed phase should be 0, got %v", row.ContactsPct)
	}
}
