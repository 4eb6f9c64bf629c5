package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ballpit/vmath"
)

const (
	sampleRate = beep.SampleRate(48000)

	// minGap throttles each sound; a resting pile touches every ~10ms tick
	minGap = 60 * time.Millisecond

	// Closing speeds (canvas units per step) below the floor stay silent, the ceiling is full loudness
	hitSpeedFloor = 0.5
	hitSpeedCeil  = 20.0
)

// SoundManager plays impact sounds; all methods are safe without Initialize
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64 // 0..1

	now      func() time.Time
	lastWall time.Time
	lastHit  time.Time
	played   int
}

// NewSoundManager creates a new sound manager at the given volume (0..1)
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: vmath.Clamp(volume, 0, 1),
		now:    time.Now,
	}
}

// Initialize sets up the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// SetMuted silences or restores output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// SetVolume sets output level in 0..1
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	sm.volume = vmath.Clamp(v, 0, 1)
	sm.mu.Unlock()
}

// Played returns how many sounds passed mute and throttling, with or without a device
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// WallHit plays a short click; satisfies engine.ImpactSink
func (sm *SoundManager) WallHit(count int) {
	if count <= 0 {
		return
	}
	sm.play(&sm.lastWall, 0.5, func() beep.Streamer {
		tone, err := generators.SineTone(sampleRate, 660)
		if err != nil {
			return nil
		}
		return beep.Take(sampleRate.N(25*time.Millisecond), tone)
	})
}

// BodyHit plays a knock scaled by closing speed; satisfies engine.ImpactSink
func (sm *SoundManager) BodyHit(speed float64) {
	if speed < hitSpeedFloor {
		return
	}
	level := vmath.Clamp(speed/hitSpeedCeil, 0, 1)
	sm.play(&sm.lastHit, 0.3+0.7*level, func() beep.Streamer {
		return beep.Take(sampleRate.N(90*time.Millisecond), NewKnockGenerator(sampleRate, 140+200*level))
	})
}

// play throttles, builds and mixes one sound at gain (0..1) times master volume
func (sm *SoundManager) play(last *time.Time, gain float64, build func() beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted || sm.volume == 0 {
		return
	}
	now := sm.now()
	if now.Sub(*last) < minGap {
		return
	}
	*last = now
	sm.played++

	if !sm.initialized {
		return
	}

	s := build()
	if s == nil {
		return
	}
	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(gain * sm.volume),
	}
	speaker.Lock()
	sm.mixer.Add(vol)
	speaker.Unlock()
}

// KnockGenerator generates a damped low thump with a noise transient
type KnockGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
	seed uint32
}

// NewKnockGenerator creates a knock at the given fundamental
func NewKnockGenerator(sr beep.SampleRate, freq float64) *KnockGenerator {
	return &KnockGenerator{
		sr:   sr,
		freq: freq,
		seed: 0x9e3779b9,
	}
}

func (g *KnockGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Envelope - instant attack, fast decay
		envelope := math.Exp(-t * 40)

		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		sample := envelope * (0.6*math.Sin(2*math.Pi*g.freq*t) + 0.2*noise*math.Exp(-t*200))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *KnockGenerator) Err() error {
	return nil
}
