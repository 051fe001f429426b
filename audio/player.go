package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/core"
)

// Player plays effects for round events through the system speaker.
// Every method is safe to call when audio is disabled or failed to open.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	mixer       *beep.Mixer
	initialized bool
	played      [soundCount]int
}

var _ core.Listener = (*Player)(nil)

// NewPlayer creates a player from the audio config. Call Init to open the speaker.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		rate:    rate,
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		mixer:   &beep.Mixer{},
	}
}

// Init opens the speaker. It does nothing when audio is disabled.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending effects and shuts the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play queues an effect. strength only matters for SoundHit.
func (p *Player) Play(sound Sound, strength float64) {
	if sound < 0 || sound >= soundCount {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[sound]++
	if !p.initialized {
		return
	}
	s := Effect(sound, p.rate, p.volume, strength)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Played reports how many times sound was requested, whether or not it was audible.
func (p *Player) Played(sound Sound) int {
	if sound < 0 || sound >= soundCount {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[sound]
}

// GoalScored plays the goal horn.
func (p *Player) GoalScored(core.GoalEvent) { p.Play(SoundGoal, 0) }

// MatchWon plays the win arpeggio.
func (p *Player) MatchWon(core.GoalEvent) { p.Play(SoundWin, 0) }

// RoundReset plays the resume chirp.
func (p *Player) RoundReset(core.ResetEvent) { p.Play(SoundResume, 0) }

// PauseChanged plays a blip in the direction of the change.
func (p *Player) PauseChanged(paused bool) {
	if paused {
		p.Play(SoundPause, 0)
		return
	}
	p.Play(SoundUnpause, 0)
}

// ImpactDetector turns frame-to-frame puck velocity changes into hit strengths.
// The puck only reports goal contacts, so knocks are inferred from velocity jumps.
type ImpactDetector struct {
	Threshold float64 // Minimum velocity change that counts as a hit
	FullScale float64 // Velocity change that maps to full strength

	prev  r2.Vec
	valid bool
}

// NewImpactDetector creates a detector scaled to the puck's speed limit.
func NewImpactDetector(maxSpeed float64) *ImpactDetector {
	return &ImpactDetector{
		Threshold: maxSpeed * 0.08,
		FullScale: maxSpeed,
	}
}

// Observe records the current velocity and returns a hit strength in (0, 1]
// when it changed sharply since the previous observation.
func (d *ImpactDetector) Observe(v r2.Vec) (float64, bool) {
	prev, valid := d.prev, d.valid
	d.prev, d.valid = v, true
	if !valid {
		return 0, false
	}

	dv := r2.Norm(r2.Sub(v, prev))
	if dv < d.Threshold || dv <= 0 {
		return 0, false
	}
	if d.FullScale <= 0 {
		return 1, true
	}
	return min(dv/d.FullScale, 1), true
}

// Reset forgets the previous velocity, for use after teleports and pauses.
func (d *ImpactDetector) Reset() {
	d.valid = false
}
