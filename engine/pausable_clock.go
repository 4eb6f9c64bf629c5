package engine

import (
	"sync"
	"time"
)

// PausableClock provides pausable simulation time on top of a real time source
// While paused Now is frozen; on resume it continues from the frozen point
type PausableClock struct {
	mu sync.RWMutex

	real TimeProvider

	realStartTime time.Time // When clock was created (real time)
	gameStartTime time.Time // Simulation time epoch

	paused          bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClockWith creates a pausable clock backed by the given real time source
func NewPausableClockWith(real TimeProvider) *PausableClock {
	now := real.Now()
	return &PausableClock{
		real:          real,
		realStartTime: now,
		gameStartTime: now,
	}
}

// Now returns current simulation time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.gameStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	realElapsed := pc.real.Now().Sub(pc.realStartTime)
	return pc.gameStartTime.Add(realElapsed - pc.totalPausedTime)
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.real.Now()
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.real.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// Toggle flips pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// GetTotalPauseDuration returns cumulative pause time, including the current pause
func (pc *PausableClock) GetTotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.real.Now().Sub(pc.pauseStartTime)
	}
	return total
}
