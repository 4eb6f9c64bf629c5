package engine

import (
	"time"

	"github.com/lixenwraith/ballpit/constants"
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/vmath"
)

// SpawnConfig controls the spawner's cadence and ceiling
type SpawnConfig struct {
	Cap             int
	InitialInterval time.Duration
	MinInterval     time.Duration
	Ratio           float64
}

// DefaultSpawnConfig returns the stock spawn tuning
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Cap:             constants.PopulationCap,
		InitialInterval: constants.InitialSpawnInterval,
		MinInterval:     constants.MinSpawnInterval,
		Ratio:           constants.SpawnIntervalRatio,
	}
}

// Spawner injects bodies along the top edge with a geometrically shrinking interval
type Spawner struct {
	cfg      SpawnConfig
	radius   float64
	interval time.Duration
	rng      *vmath.FastRand
}

// NewSpawner creates a spawner starting at cfg.InitialInterval
func NewSpawner(cfg SpawnConfig, radius float64, rng *vmath.FastRand) *Spawner {
	return &Spawner{
		cfg:      cfg,
		radius:   radius,
		interval: cfg.InitialInterval,
		rng:      rng,
	}
}

// Interval returns the delay until the next trigger should fire
func (s *Spawner) Interval() time.Duration {
	return s.interval
}

// Config returns the active spawn tuning
func (s *Spawner) Config() SpawnConfig {
	return s.cfg
}

// SetConfig swaps tuning in place; the current interval is clamped into the new range
func (s *Spawner) SetConfig(cfg SpawnConfig) {
	s.cfg = cfg
	s.interval = time.Duration(vmath.Clamp(float64(s.interval), float64(cfg.MinInterval), float64(cfg.InitialInterval)))
}

// Reset restores the initial interval
func (s *Spawner) Reset() {
	s.interval = s.cfg.InitialInterval
}

// Trigger adds one body if the world is below the cap and shortens the interval
// At the cap it is a no-op and returns nil; the schedule keeps firing
func (s *Spawner) Trigger(w *World) *core.Body {
	if w.Len() >= s.cfg.Cap {
		return nil
	}

	bounds := w.Bounds()
	x := s.rng.Range(s.radius, bounds.Width-s.radius)
	b := core.NewBody(x, -s.radius, 0, 0)
	w.Add(b)

	next := time.Duration(float64(s.interval) * s.cfg.Ratio)
	if next < s.cfg.MinInterval {
		next = s.cfg.MinInterval
	}
	s.interval = next

	return b
}
