package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/airhockey/systems"
	"github.com/pthm-cable/airhockey/telemetry"
)

func TestFieldRangeNormalize(t *testing.T) {
	r := FieldRange{Min: 0, Max: 10}
	assert.InDelta(t, 0.5, r.Normalize(5), 1e-6)
	assert.Equal(t, float32(0), r.Normalize(-1))
	assert.Equal(t, float32(1), r.Normalize(20))
	assert.Equal(t, float32(0), FieldRange{}.Normalize(3))
	assert.Equal(t, float32(1), DefaultRange().Normalize(1))
}

func TestFieldText(t *testing.T) {
	num := FieldDescriptor{Getter: func(any) float32 { return 1.5 }}
	assert.Equal(t, "1.50", FieldText(num, nil))

	num.Format = "%.0f"
	assert.Equal(t, "2", FieldText(num, nil))

	text := FieldDescriptor{TextGetter: func(d any) string { return d.(string) }, Getter: num.Getter}
	assert.Equal(t, "hello", FieldText(text, "hello"))

	assert.Equal(t, "", FieldText(FieldDescriptor{}, nil))
}

func TestPanelOrigin(t *testing.T) {
	r := NewRenderer()

	x, y := r.PanelOrigin(AnchorTopRight, 240, 100, 800, 600)
	assert.Equal(t, int32(550), x)
	assert.Equal(t, int32(10), y)

	x, y = r.PanelOrigin(AnchorCenter, 240, 100, 800, 600)
	assert.Equal(t, int32(280), x)
	assert.Equal(t, int32(250), y)

	x, y = r.PanelOrigin(AnchorBottomLeft, 240, 100, 800, 600)
	assert.Equal(t, int32(10), x)
	assert.Equal(t, int32(490), y)
}

func TestMatchPanelHeightFollowsVisibility(t *testing.T) {
	r := NewRenderer()
	panel := MatchPanel(1800)

	// Title and padding, score without winner, pauses; rallies hidden.
	assert.Equal(t, int32(40+52+52), r.PanelHeight(panel, telemetry.MatchStats{}))

	done := telemetry.MatchStats{Goals: 3, Winner: "player1"}
	assert.Equal(t, int32(40+68+86+52), r.PanelHeight(panel, done))
}

func TestLayoutPlacesRows(t *testing.T) {
	r := NewRenderer()
	pd := PanelDescriptor{Sections: []SectionDescriptor{
		{Title: "A", Fields: []FieldDescriptor{
			{ID: "bar", Widget: WidgetBar},
			{ID: "gap", Widget: WidgetSpacer},
			{ID: "hidden", Visible: func(any) bool { return false }},
			{ID: "text"},
		}},
		{Visible: func(any) bool { return false }, Fields: []FieldDescriptor{{ID: "never"}}},
	}}

	rows, body := r.layout(pd, nil)
	ys := map[string]int32{}
	for _, rw := range rows {
		ys[rw.heading+rw.field.ID] = rw.y
	}
	assert.Equal(t, map[string]int32{"A": 0, "bar": 16, "gap": 34, "text": 40}, ys)
	assert.Equal(t, int32(60), body)
	assert.Equal(t, int32(80), r.PanelHeight(pd, nil))
}

func TestMatchPanelText(t *testing.T) {
	panel := MatchPanel(1800)
	stats := telemetry.MatchStats{Match: 2, GoalsP1: 3, GoalsP2: 1, RallyMean: 4.3, Pauses: 2}

	fields := map[string]FieldDescriptor{}
	for _, s := range panel.Sections {
		for _, f := range s.Fields {
			fields[f.ID] = f
		}
	}

	assert.Equal(t, "#2", FieldText(fields["match"], stats))
	assert.Equal(t, "3 - 1", FieldText(fields["goals"], stats))
	assert.Equal(t, "4.3 s", FieldText(fields["rally_mean"], stats))
	assert.Equal(t, "2", FieldText(fields["pauses"], stats))
	assert.Equal(t, float32(1800), fields["peak_speed"].Range.Max)
}

func TestPerfRowsFollowRegistryOrder(t *testing.T) {
	reg := systems.NewSystemRegistry()
	stats := telemetry.PerfStats{
		PhaseAvg: map[string]time.Duration{
			systems.PhaseSync:    10 * time.Microsecond,
			systems.PhasePhysics: 100 * time.Microsecond,
			"unregistered":       5 * time.Microsecond,
		},
		PhasePct: map[string]float64{
			systems.PhaseSync:    9,
			systems.PhasePhysics: 91,
		},
	}

	rows := PerfRows(stats, reg)
	assert.Equal(t, []PerfRow{
		{Name: "Physics", Avg: 100 * time.Microsecond, Pct: 91},
		{Name: "Sync", Avg: 10 * time.Microsecond, Pct: 9},
	}, rows)
}
