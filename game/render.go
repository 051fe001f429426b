package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/ui"
)

const controlsLegend = "[Space/P] Pause  [Enter] Continue  [Tab] Overlays  [RMB] Inspect  [F11] Fullscreen"

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	cfg := g.cfg
	reg := g.core.World().Registry
	g.bodies = g.core.Bodies(g.bodies[:0])

	g.table.Draw(ui.TableView{
		Bodies:   g.bodies,
		Bindings: g.core.Bindings(),
		Bounds: [2]r2.Box{
			reg.PaddleInfo(components.Player1).Bounds,
			reg.PaddleInfo(components.Player2).Bounds,
		},
		HitRadius:    cfg.Paddle.Radius * cfg.Paddle.HitSlop,
		MaxPuckSpeed: cfg.Puck.MaxSpeed,
	}, g.overlays)
	g.inspector.DrawSelectionHighlight(g.camera, reg)

	sw, sh := int32(g.screenWidth), int32(g.screenHeight)
	_, midY := g.camera.VecToScreen(cfg.Derived.Center)
	g.hud.Draw(ui.HUDData{
		Score:        g.core.Score(),
		Match:        g.core.Match(),
		State:        g.core.State(),
		Tick:         g.core.Ticks(),
		FPS:          rl.GetFPS(),
		Muted:        g.muted,
		MidlineY:     int32(midY),
		ScreenWidth:  sw,
		ScreenHeight: sh,
	})

	if ov, ok := g.core.Overlay(); ok && !g.core.ManuallyPaused() {
		if g.goalOverlay.Draw(ov, sw, sh) {
			g.core.Dismiss()
		}
	}

	g.controls.Draw(g.overlays, sw, sh)
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.lastPerf, g.systems)
	}
	if g.overlays.IsEnabled(ui.OverlayMatchStats) {
		stats := g.collector.Stats()
		stats.Match = g.core.Match()
		stats.GoalsP1, stats.GoalsP2 = g.core.Score().P1, g.core.Score().P2
		g.panels.DrawDescriptor(g.matchPanel, stats, sw, sh)
	}
	g.inspector.Draw(reg)

	g.hud.DrawControls(sw, sh, controlsLegend)
}
