package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Arena.Width != 750 || cfg.Arena.Height != 1334 {
		t.Errorf("arena = %vx%v, want 750x1334", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Round.Dismiss != DismissTap {
		t.Errorf("dismiss = %q, want %q", cfg.Round.Dismiss, DismissTap)
	}

	d := cfg.Derived
	if d.Center.X != 375 || d.Center.Y != 667 {
		t.Errorf("center = %v, want (375, 667)", d.Center)
	}
	// Player 1 defends the top, so its home is in the upper half
	if d.PaddleHome[0].Y <= d.MidY || d.PaddleHome[1].Y >= d.MidY {
		t.Errorf("paddle homes %v on wrong sides of midline %v", d.PaddleHome, d.MidY)
	}
	if d.TopGoal.Y != cfg.Arena.Height-cfg.Arena.GoalHeight/2 {
		t.Errorf("top goal y = %v", d.TopGoal.Y)
	}
	if d.DismissRect.Min.X >= d.Center.X || d.DismissRect.Max.Y <= d.Center.Y {
		t.Errorf("dismiss rect %v does not contain the centre", d.DismissRect)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("puck:\n  max_speed: 900\nround:\n  dismiss: auto\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Puck.MaxSpeed != 900 {
		t.Errorf("puck max_speed = %v, want 900", cfg.Puck.MaxSpeed)
	}
	if cfg.Round.Dismiss != DismissAuto {
		t.Errorf("dismiss = %q, want auto", cfg.Round.Dismiss)
	}
	// Untouched keys keep their defaults
	if cfg.Puck.Radius != 20 {
		t.Errorf("puck radius = %v, want default 20", cfg.Puck.Radius)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"goal wider than arena", "arena:\n  goal_width: 2000\n"},
		{"unknown dismiss mode", "round:\n  dismiss: swipe\n"},
		{"zero puck speed", "puck:\n  max_speed: 0\n"},
		{"no substeps", "physics:\n  substeps: 0\n"},
		{"paddle too big", "paddle:\n  radius: 400\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %q", tt.yaml)
			}
		})
	}
}

func TestRefreshRecomputesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Arena.Height = 1000
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if cfg.Derived.MidY != 500 {
		t.Errorf("midY = %v, want 500", cfg.Derived.MidY)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Round.WinningScore = 3

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Round.WinningScore != 3 {
		t.Errorf("winning_score = %d, want 3", loaded.Round.WinningScore)
	}
}
