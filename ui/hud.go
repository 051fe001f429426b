package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/airhockey/core"
	"github.com/pthm-cable/airhockey/systems"
	"github.com/pthm-cable/airhockey/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score        core.Score
	Match        int
	State        core.State
	Tick         uint64
	FPS          int32
	Muted        bool
	MidlineY     int32 // Screen y of the centre line
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the scores and status line.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	theme := h.renderer.Theme

	// Each score sits on its owner's side of the centre line.
	const scoreSize = 48
	x := data.ScreenWidth - 60
	p1 := fmt.Sprintf("%d", data.Score.P1)
	p2 := fmt.Sprintf("%d", data.Score.P2)
	rl.DrawText(p1, x, data.MidlineY-scoreSize-8, scoreSize, theme.PlayerColors[0])
	rl.DrawText(p2, x, data.MidlineY+8, scoreSize, theme.PlayerColors[1])

	status := fmt.Sprintf("Match %d | Tick: %d | FPS: %d", data.Match, data.Tick, data.FPS)
	if data.Muted {
		status += " | muted"
	}
	rl.DrawText(status, 10, 10, 14, rl.LightGray)

	if data.State == core.ManuallyPaused {
		h.drawBanner("PAUSED", data.ScreenWidth, data.ScreenHeight)
	}
}

// drawBanner draws a centred strip of text across the screen.
func (h *HUD) drawBanner(text string, screenW, screenH int32) {
	const size = 40
	w := rl.MeasureText(text, size)
	y := screenH/2 - size
	rl.DrawRectangle(0, y-10, screenW, size+20, h.renderer.Theme.Scrim)
	rl.DrawText(text, (screenW-w)/2, y, size, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfRow is one line of the performance panel.
type PerfRow struct {
	Name string
	Avg  time.Duration
	Pct  float64
}

// PerfRows lists the phases with samples in registry order. Phases the
// registry does not know are left out.
func PerfRows(stats telemetry.PerfStats, registry *systems.SystemRegistry) []PerfRow {
	var rows []PerfRow
	for _, id := range registry.IDs() {
		avg, ok := stats.PhaseAvg[id]
		if !ok {
			continue
		}
		rows = append(rows, PerfRow{
			Name: registry.GetName(id),
			Avg:  avg,
			Pct:  stats.PhasePct[id],
		})
	}
	return rows
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x := p.x
	y := p.y

	rows := PerfRows(stats, registry)
	height := int32(len(rows))*14 + 36 + p.renderer.Theme.Padding*2
	p.renderer.DrawPanel(x-p.renderer.Theme.Padding, y-p.renderer.Theme.Padding, 250, height)

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Frame: %s p95 %s | %d over", stats.AvgTick.Round(time.Microsecond), stats.P95Tick.Round(time.Microsecond), stats.Overruns), x, y, 14, rl.Yellow)
	y += 16

	for _, row := range rows {
		color := rl.LightGray
		if row.Pct > 50 {
			color = rl.Red
		} else if row.Pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %7s %5.1f%%", row.Name, row.Avg.Round(time.Microsecond), row.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
