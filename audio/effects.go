// Package audio synthesises the table's sound effects and plays them through beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Sound identifies a synthesised effect.
type Sound int

const (
	SoundGoal    Sound = iota // Horn when a goal is scored
	SoundWin                  // Rising arpeggio when a match is won
	SoundResume               // Chirp when the table resets after a goal
	SoundPause                // Falling blip on manual pause
	SoundUnpause              // Rising blip on resume
	SoundHit                  // Puck knock, loudness follows impact strength
	soundCount
)

var soundNames = [soundCount]string{"goal", "win", "resume", "pause", "unpause", "hit"}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// Effect durations
const (
	goalDuration  = 450 * time.Millisecond
	winNote       = 120 * time.Millisecond
	resumeNote    = 70 * time.Millisecond
	blipDuration  = 60 * time.Millisecond
	hitDuration   = 35 * time.Millisecond
	shortAttack   = 5 * time.Millisecond
	shortRelease  = 25 * time.Millisecond
	hornRelease   = 200 * time.Millisecond
	minHitVolume  = 0.15
	hitNoiseLevel = 0.35
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release ramp inside duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.totalSamples - e.releaseSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is an enveloped oscillator.
func tone(freq float64, d time.Duration, wave WaveType, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, shortAttack, release, rate)
}

// goalHorn is a low square fifth over a sine root.
func goalHorn(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(196, goalDuration, WaveSine, hornRelease, rate), 0.6),
		newVolume(tone(294, goalDuration, WaveSquare, hornRelease, rate), 0.25),
	)
}

// arpeggio plays notes back to back.
func arpeggio(rate beep.SampleRate, note time.Duration, wave WaveType, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = tone(f, note, wave, shortRelease, rate)
	}
	return beep.Seq(notes...)
}

// hit is a noise burst over a triangle knock; strength in [0, 1].
func hit(rate beep.SampleRate, strength float64) beep.Streamer {
	strength = math.Max(0, math.Min(1, strength))
	knock := tone(160+220*strength, hitDuration, WaveTriangle, shortRelease, rate)
	noise := tone(0, hitDuration, WaveNoise, shortRelease, rate)
	mixed := beep.Mix(
		newVolume(knock, 1-hitNoiseLevel),
		newVolume(noise, hitNoiseLevel),
	)
	return newVolume(mixed, minHitVolume+(1-minHitVolume)*strength)
}

// Effect builds a fresh streamer for sound at the given master volume.
// strength only affects SoundHit. Unknown sounds return nil.
func Effect(sound Sound, rate beep.SampleRate, volume, strength float64) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundGoal:
		s = goalHorn(rate)
	case SoundWin:
		s = arpeggio(rate, winNote, WaveSquare, 523.25, 659.25, 783.99, 1046.5)
	case SoundResume:
		s = arpeggio(rate, resumeNote, WaveSine, 880, 1318.51)
	case SoundPause:
		s = arpeggio(rate, blipDuration, WaveSine, 660, 440)
	case SoundUnpause:
		s = arpeggio(rate, blipDuration, WaveSine, 440, 660)
	case SoundHit:
		s = hit(rate, strength)
	default:
		return nil
	}
	return newVolume(s, volume)
}
