// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Dismiss modes for the goal overlay.
const (
	DismissTap  = "tap"
	DismissAuto = "auto"
)

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Puck      PuckConfig      `yaml:"puck"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Round     RoundConfig     `yaml:"round"`
	Bot       BotConfig       `yaml:"bot"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the table geometry in arena units (y-up).
type ArenaConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	GoalWidth       float64 `yaml:"goal_width"`     // Horizontal span of each goal sensor
	GoalHeight      float64 `yaml:"goal_height"`    // Sensor depth, measured from the end wall
	WallThickness   float64 `yaml:"wall_thickness"` // Thickness of the boundary, grown outward
	WallFriction    float64 `yaml:"wall_friction"`
	WallRestitution float64 `yaml:"wall_restitution"`
}

// PaddleConfig holds paddle (pusher) parameters shared by both players.
type PaddleConfig struct {
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Restitution   float64 `yaml:"restitution"`
	Friction      float64 `yaml:"friction"`
	LinearDamping float64 `yaml:"linear_damping"`
	MaxSpeed      float64 `yaml:"max_speed"`     // Ceiling for pointer-derived velocity
	HitSlop       float64 `yaml:"hit_slop"`      // Touch target = radius * hit_slop
	HomeFraction  float64 `yaml:"home_fraction"` // Home distance from own end, as a fraction of height
}

// PuckConfig holds puck parameters.
type PuckConfig struct {
	Radius         float64 `yaml:"radius"`
	Mass           float64 `yaml:"mass"`
	Restitution    float64 `yaml:"restitution"`
	Friction       float64 `yaml:"friction"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`         // Seconds per headless tick
	Substeps   int     `yaml:"substeps"`   // Engine steps per tick
	Iterations int     `yaml:"iterations"` // Solver iterations per engine step
}

// RoundConfig controls the goal overlay and match length.
type RoundConfig struct {
	Dismiss          string       `yaml:"dismiss"`            // "tap" or "auto"
	AutoDismissDelay float64      `yaml:"auto_dismiss_delay"` // Seconds, used when dismiss is "auto"
	WinningScore     int          `yaml:"winning_score"`      // 0 = endless
	DismissButton    ButtonConfig `yaml:"dismiss_button"`
}

// ButtonConfig is the size of an on-table control, centred on the arena.
type ButtonConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BotConfig holds computer player parameters.
type BotConfig struct {
	MaxSpeed     float64 `yaml:"max_speed"`     // Pointer travel speed, arena units per second
	Reaction     float64 `yaml:"reaction"`      // Target smoothing time constant in seconds
	DismissDelay float64 `yaml:"dismiss_delay"` // Seconds before a headless match taps the overlay
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MidY        float64   // Horizontal midline
	Center      r2.Vec    // Arena centre, the puck home
	PaddleHome  [2]r2.Vec // Index 0 = player 1 (top), 1 = player 2 (bottom)
	TopGoal     r2.Vec    // Centre of the top goal sensor
	BottomGoal  r2.Vec    // Centre of the bottom goal sensor
	DismissRect r2.Box    // Dismiss control region in arena coordinates
	SubstepDT   float64   // Physics.DT / Physics.Substeps
	ScreenW32   float32
	ScreenH32   float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Refresh(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Refresh validates the configuration and recomputes derived values.
// Call it after mutating a loaded Config.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.computeDerived()
	return nil
}

// Validate reports every constraint the configuration violates.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Arena.Width > 0 && c.Arena.Height > 0, "arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height)
	check(c.Arena.GoalWidth > 0 && c.Arena.GoalWidth < c.Arena.Width, "goal_width %v must be in (0, arena width)", c.Arena.GoalWidth)
	check(c.Arena.GoalHeight > 0, "goal_height must be positive")
	check(c.Arena.WallThickness > 0, "wall_thickness must be positive")
	check(c.Paddle.Radius > 0, "paddle radius must be positive")
	check(c.Puck.Radius > 0, "puck radius must be positive")
	check(2*c.Paddle.Radius < c.Arena.Height/2, "paddle diameter %v does not fit in half the arena", 2*c.Paddle.Radius)
	check(2*c.Paddle.Radius < c.Arena.Width, "paddle diameter %v does not fit the arena width", 2*c.Paddle.Radius)
	check(c.Paddle.Mass > 0 && c.Puck.Mass > 0, "masses must be positive")
	check(c.Paddle.MaxSpeed > 0, "paddle max_speed must be positive")
	check(c.Puck.MaxSpeed > 0, "puck max_speed must be positive")
	check(c.Paddle.HitSlop >= 1, "hit_slop must be at least 1")
	check(c.Paddle.HomeFraction > 0 && c.Paddle.HomeFraction < 0.5, "home_fraction must be in (0, 0.5)")
	check(c.Physics.DT > 0, "physics dt must be positive")
	check(c.Physics.Substeps >= 1, "physics substeps must be at least 1")
	check(c.Round.Dismiss == DismissTap || c.Round.Dismiss == DismissAuto, "unknown dismiss mode %q", c.Round.Dismiss)
	check(c.Round.WinningScore >= 0, "winning_score must not be negative")
	check(c.Round.AutoDismissDelay >= 0 && c.Bot.DismissDelay >= 0, "dismiss delays must not be negative")
	check(c.Telemetry.PerfWindow >= 0, "perf_window must not be negative")

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	w, h := c.Arena.Width, c.Arena.Height
	c.Derived.MidY = h / 2
	c.Derived.Center = r2.Vec{X: w / 2, Y: h / 2}
	c.Derived.PaddleHome = [2]r2.Vec{
		{X: w / 2, Y: h * (1 - c.Paddle.HomeFraction)},
		{X: w / 2, Y: h * c.Paddle.HomeFraction},
	}
	c.Derived.TopGoal = r2.Vec{X: w / 2, Y: h - c.Arena.GoalHeight/2}
	c.Derived.BottomGoal = r2.Vec{X: w / 2, Y: c.Arena.GoalHeight / 2}

	half := r2.Vec{X: c.Round.DismissButton.Width / 2, Y: c.Round.DismissButton.Height / 2}
	c.Derived.DismissRect = r2.Box{
		Min: r2.Sub(c.Derived.Center, half),
		Max: r2.Add(c.Derived.Center, half),
	}

	c.Derived.SubstepDT = c.Physics.DT / float64(c.Physics.Substeps)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
