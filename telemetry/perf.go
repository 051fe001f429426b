package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/airhockey/systems"
)

// Phases timed outside the core tick.
const (
	PhaseBot       = "bot"
	PhaseTelemetry = "telemetry"
)

// phaseOrder lists every phase in the order a frame runs them.
var phaseOrder = []string{
	systems.PhaseInput,
	PhaseBot,
	systems.PhasePhysics,
	systems.PhaseContacts,
	systems.PhaseGovernor,
	systems.PhaseSync,
	PhaseTelemetry,
}

// frameSample is the timing of one host frame. phases and entered are
// indexed like PerfCollector.names.
type frameSample struct {
	total   time.Duration
	phases  []time.Duration
	entered []bool
}

// PerfCollector times the phases of each frame over a rolling window and
// compares frames against a time budget. It satisfies core.PhaseTimer.
type PerfCollector struct {
	budget  time.Duration
	ring    []frameSample
	next    int
	filled  int
	names   []string
	index   map[string]int
	current []time.Duration
	entered []bool

	frameStart time.Time
	phaseStart time.Time
	phase      int // Index of the running phase, -1 between frames

	lastFrame     time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over window frames. Frames
// longer than budget count as overruns; a zero budget disables the check.
func NewPerfCollector(window int, budget time.Duration) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		budget: budget,
		ring:   make([]frameSample, window),
		index:  make(map[string]int, len(phaseOrder)),
		phase:  -1,
		now:    time.Now,
	}
	for _, name := range phaseOrder {
		p.indexOf(name)
	}
	return p
}

// indexOf returns the slot for a phase, adding unknown phases at the end.
func (p *PerfCollector) indexOf(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	p.index[name] = len(p.names)
	p.names = append(p.names, name)
	p.current = append(p.current, 0)
	p.entered = append(p.entered, false)
	return len(p.names) - 1
}

// StartTick begins timing a frame.
func (p *PerfCollector) StartTick() {
	p.frameStart = p.now()
	clear(p.current)
	clear(p.entered)
	p.phase = -1
}

// StartPhase closes the running phase and starts timing the named one.
func (p *PerfCollector) StartPhase(name string) {
	now := p.now()
	p.closePhase(now)
	p.phase = p.indexOf(name)
	p.entered[p.phase] = true
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the frame and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = -1

	s := &p.ring[p.next]
	s.total = now.Sub(p.frameStart)
	s.phases = append(s.phases[:0], p.current...)
	s.entered = append(s.entered[:0], p.entered...)

	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame measures the wall time between calls, for window mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises one window.
type PerfStats struct {
	AvgTick time.Duration
	P50Tick time.Duration
	P95Tick time.Duration
	MaxTick time.Duration

	Overruns  int     // Frames over budget
	BudgetPct float64 // Average frame as a percentage of the budget

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average frame

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarises the frames currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	sums := make([]time.Duration, len(p.names))
	seen := make([]bool, len(p.names))
	for i, f := range p.ring[:p.filled] {
		totals[i] = float64(f.total)
		if p.budget > 0 && f.total > p.budget {
			s.Overruns++
		}
		for j, d := range f.phases {
			sums[j] += d
			seen[j] = seen[j] || f.entered[j]
		}
	}
	slices.Sort(totals)

	n := time.Duration(p.filled)
	s.AvgTick = time.Duration(stat.Mean(totals, nil))
	s.P50Tick = time.Duration(stat.Quantile(0.5, stat.Empirical, totals, nil))
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	s.MaxTick = time.Duration(totals[len(totals)-1])
	if p.budget > 0 {
		s.BudgetPct = float64(s.AvgTick) / float64(p.budget) * 100
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}

	for j, name := range p.names {
		if !seen[j] {
			continue
		}
		avg := sums[j] / n
		s.PhaseAvg[name] = avg
		if s.AvgTick > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgTick) * 100
		}
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats(logger *slog.Logger) {
	logger.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer. Phases under 0.1% are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("overruns", s.Overruns),
		slog.Float64("budget_pct", s.BudgetPct),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phaseOrder {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P50TickUS    int64   `csv:"p50_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	Overruns     int     `csv:"overruns"`
	BudgetPct    float64 `csv:"budget_pct"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	BotPct       float64 `csv:"bot_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	ContactsPct  float64 `csv:"contacts_pct"`
	GovernorPct  float64 `csv:"governor_pct"`
	SyncPct      float64 `csv:"sync_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the window for perf.csv; windowEnd is the core tick.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P50TickUS:    s.P50Tick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		Overruns:     s.Overruns,
		BudgetPct:    s.BudgetPct,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[systems.PhaseInput],
		BotPct:       s.PhasePct[PhaseBot],
		PhysicsPct:   s.PhasePct[systems.PhasePhysics],
		ContactsPct:  s.PhasePct[systems.PhaseContacts],
		GovernorPct:  s.PhasePct[systems.PhaseGovernor],
		SyncPct:      s.PhasePct[systems.PhaseSync],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
