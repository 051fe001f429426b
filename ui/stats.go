package ui

import (
	"fmt"

	"github.com/pthm-cable/airhockey/telemetry"
)

// MatchPanel is the descriptor for the match statistics overlay. Its data is
// a telemetry.MatchStats.
func MatchPanel(maxPuckSpeed float64) PanelDescriptor {
	stats := func(data any) telemetry.MatchStats {
		s, _ := data.(telemetry.MatchStats)
		return s
	}
	return PanelDescriptor{
		ID:     "match",
		Title:  "Match Stats",
		Width:  240,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "score",
				Title: "Score",
				Fields: []FieldDescriptor{
					{ID: "match", Label: "Match", Widget: WidgetText, TextGetter: func(d any) string {
						return fmt.Sprintf("#%d", stats(d).Match)
					}},
					{ID: "goals", Label: "Goals", Widget: WidgetText, TextGetter: func(d any) string {
						s := stats(d)
						return fmt.Sprintf("%d - %d", s.GoalsP1, s.GoalsP2)
					}},
					{ID: "winner", Label: "Winner", Widget: WidgetText,
						Visible:    func(d any) bool { return stats(d).Winner != "" },
						TextGetter: func(d any) string { return stats(d).Winner }},
				},
			},
			{
				ID:      "rallies",
				Title:   "Rallies",
				Visible: func(d any) bool { return stats(d).Goals > 0 },
				Fields: []FieldDescriptor{
					{ID: "rally_mean", Label: "Mean", Widget: WidgetText, Format: "%.1f s",
						Getter: func(d any) float32 { return float32(stats(d).RallyMean) }},
					{ID: "rally_p50", Label: "Median", Widget: WidgetText, Format: "%.1f s",
						Getter: func(d any) float32 { return float32(stats(d).RallyP50) }},
					{ID: "rally_p90", Label: "p90", Widget: WidgetText, Format: "%.1f s",
						Getter: func(d any) float32 { return float32(stats(d).RallyP90) }},
					{ID: "peak_speed", Label: "Peak speed", Widget: WidgetBar, Format: "%.0f",
						Range:  FieldRange{Min: 0, Max: float32(maxPuckSpeed)},
						Getter: func(d any) float32 { return float32(stats(d).PeakPuckSpeed) }},
				},
			},
			{
				ID:    "pauses",
				Title: "Pauses",
				Fields: []FieldDescriptor{
					{ID: "pauses", Label: "Manual", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stats(d).Pauses) }},
					{ID: "auto_dismissals", Label: "Auto resumes", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stats(d).AutoDismissals) }},
				},
			},
		},
	}
}
