// Package game hosts a table: it feeds input and time to the core, runs the
// bots, and wires telemetry, audio and drawing around it.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/airhockey/audio"
	"github.com/pthm-cable/airhockey/bot"
	"github.com/pthm-cable/airhockey/camera"
	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/core"
	"github.com/pthm-cable/airhockey/inspector"
	"github.com/pthm-cable/airhockey/physics"
	"github.com/pthm-cable/airhockey/systems"
	"github.com/pthm-cable/airhockey/telemetry"
	"github.com/pthm-cable/airhockey/ui"
)

// screenMargin is kept clear around the arena, in pixels.
const screenMargin = 16

// Options configures a game instance.
type Options struct {
	Config    *config.Config // Nil uses config.Cfg()
	Headless  bool           // No window; both paddles are bots
	CPU       bool           // Window mode: a bot plays player 1
	Mute      bool
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	LogStats  bool   // Log perf windows via slog
	Logger    *slog.Logger
}

// Game holds the complete host state.
type Game struct {
	cfg    *config.Config
	core   *core.Core
	logger *slog.Logger

	bots     []*bot.Player
	clock    float64 // Host seconds, pauses included
	frames   uint64
	tapWait  float64 // Headless seconds spent waiting to dismiss

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	systems   *systems.SystemRegistry
	logStats  bool
	lastPerf  telemetry.PerfStats

	// Audio
	muted     bool
	audio     *audio.Player
	impacts   *audio.ImpactDetector
	lastState core.State

	// Window only
	camera      *camera.Camera
	pointers    *PointerTracker
	samples     []PointerSample
	overlays    *ui.OverlayRegistry
	controls    *ui.ControlsPanel
	hud         *ui.HUD
	perfPanel   *ui.PerfPanel
	table       *ui.TableRenderer
	goalOverlay *ui.GoalOverlay
	panels      *ui.Renderer
	matchPanel  ui.PanelDescriptor
	inspector   *inspector.Inspector
	bodies      []systems.BodyState

	screenWidth, screenHeight float32
}

// NewGameWithOptions builds a table and its host. In window mode the raylib
// window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		logStats: opts.LogStats,
		systems:  systems.NewSystemRegistry(),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, tickBudget(cfg)),
		impacts:  audio.NewImpactDetector(cfg.Puck.MaxSpeed),
	}
	g.systems.Register(systems.SystemInfo{ID: telemetry.PhaseBot, Name: "Bots", Description: "Computer players pick targets and move", Cadence: systems.PerFrame}, systems.PhasePhysics)
	g.systems.Register(systems.SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Audio cues and perf windows", Cadence: systems.PerFrame}, "")

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.output = output

	g.core = core.New(cfg, physics.NewSpace(cfg.Physics.Iterations))
	g.core.SetLogger(logger)
	g.core.SetPhaseTimer(g.perf)

	g.collector = telemetry.NewCollector(output, logger)
	g.core.AddListener(g.collector)

	audioCfg := cfg.Audio
	if opts.Mute || opts.Headless {
		audioCfg.Enabled = false
	}
	g.muted = !audioCfg.Enabled
	g.audio = audio.NewPlayer(audioCfg)
	if err := g.audio.Init(); err != nil {
		logger.Warn("audio disabled", "error", err)
	}
	g.core.AddListener(g.audio)

	switch {
	case opts.Headless:
		g.bots = []*bot.Player{
			bot.New(g.core, components.Player1, -1),
			bot.New(g.core, components.Player2, -2),
		}
	case opts.CPU:
		g.bots = []*bot.Player{bot.New(g.core, components.Player1, -1)}
	}

	if !opts.Headless {
		g.initWindow()
	}

	logger.Info("game ready",
		"headless", opts.Headless,
		"bots", len(g.bots),
		"dismiss", cfg.Round.Dismiss,
		"winning_score", cfg.Round.WinningScore,
		"output_dir", output.Dir(),
	)
	return g, nil
}

// tickBudget is the wall time one frame may take at the target frame rate,
// falling back to one fixed step.
func tickBudget(cfg *config.Config) time.Duration {
	sec := cfg.Physics.DT
	if cfg.Screen.TargetFPS > 0 {
		sec = 1 / float64(cfg.Screen.TargetFPS)
	}
	return time.Duration(sec * float64(time.Second))
}

// initWindow builds the drawing and input state for window mode.
func (g *Game) initWindow() {
	w, h := float32(g.cfg.Screen.Width), float32(g.cfg.Screen.Height)
	g.screenWidth, g.screenHeight = w, h
	g.camera = camera.New(w, h, float32(g.cfg.Arena.Width), float32(g.cfg.Arena.Height), screenMargin)
	g.pointers = NewPointerTracker()
	g.overlays = ui.NewOverlayRegistry()
	g.controls = ui.NewControlsPanel(g.overlays)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(w)-250, 50)
	g.table = ui.NewTableRenderer(g.camera)
	g.goalOverlay = ui.NewGoalOverlay(g.camera)
	g.panels = ui.NewRenderer()
	g.matchPanel = ui.MatchPanel(g.cfg.Puck.MaxSpeed)
	g.inspector = inspector.NewInspector(int32(w), int32(h))
}

// Update runs one window frame: input, bots, then one core tick.
func (g *Game) Update() {
	dt := frameTime()
	g.clock += dt

	g.handleInput()

	g.perf.StartTick()
	g.perf.StartPhase(systems.PhaseInput)
	g.deliverPointers(g.pointers.Frame(g.samplePointers()))

	g.step(dt)
	g.perf.RecordFrame()
}

// UpdateHeadless runs one fixed-step frame with bots on both paddles.
// Goal overlays in tap mode are dismissed by a tap after bot.dismiss_delay.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Physics.DT
	g.clock += dt

	g.perf.StartTick()
	g.perf.StartPhase(systems.PhaseInput)
	g.tapDismiss(dt)

	g.step(dt)
}

// step runs the bots, ticks the core and reacts to the result.
func (g *Game) step(dt float64) {
	g.perf.StartPhase(telemetry.PhaseBot)
	for _, b := range g.bots {
		b.Update(g.clock, dt)
	}

	g.core.Tick(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.playImpacts()
	g.perf.EndTick()

	g.frames++
	g.flushPerf()
}

// tapDismiss presses the dismiss control once the overlay has shown long enough.
func (g *Game) tapDismiss(dt float64) {
	if g.core.State() != core.GoalPause || g.cfg.Round.Dismiss != config.DismissTap {
		g.tapWait = 0
		return
	}
	g.tapWait += dt
	if g.tapWait < g.cfg.Bot.DismissDelay {
		return
	}
	g.tapWait = 0
	g.core.PointerDown(tapPointer, g.cfg.Derived.DismissRect.Center(), g.clock)
	g.core.PointerUp(tapPointer)
}

// deliverPointers forwards tracker events to the core in order.
func (g *Game) deliverPointers(events []PointerEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case PointerDown:
			g.core.PointerDown(ev.ID, ev.Pos, g.clock)
		case PointerMove:
			g.core.PointerMove(ev.ID, ev.Pos, g.clock)
		case PointerUp:
			g.core.PointerUp(ev.ID)
		}
	}
}

// playImpacts plays a knock when the puck's velocity jumps during play.
func (g *Game) playImpacts() {
	state := g.core.State()
	if state != g.lastState {
		g.impacts.Reset()
		g.lastState = state
	}
	if state != core.Playing {
		return
	}
	reg := g.core.World().Registry
	if strength, ok := g.impacts.Observe(reg.Transform(reg.Puck()).Velocity); ok {
		g.audio.Play(audio.SoundHit, strength)
	}
}

// Core returns the rules engine.
func (g *Game) Core() *core.Core { return g.core }

// Collector returns the match telemetry.
func (g *Game) Collector() *telemetry.Collector { return g.collector }

// Audio returns the sound player.
func (g *Game) Audio() *audio.Player { return g.audio }

// Tick returns the current core tick.
func (g *Game) Tick() uint64 { return g.core.Ticks() }

// Frames returns how many host frames have run.
func (g *Game) Frames() uint64 { return g.frames }

// Unload releases audio and output files.
func (g *Game) Unload() {
	g.audio.Close()
	if err := g.output.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
	g.output = nil
}
