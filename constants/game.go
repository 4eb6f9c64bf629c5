package constants

import "time"

// Loop Timing Constants
const (
	// TickInterval is the physics and draw cadence (~100 Hz)
	TickInterval = 10 * time.Millisecond

	// MaxTickLag bounds catch-up: a scheduler further behind than this many intervals resyncs
	MaxTickLag = 2
)

// Physics Tuning
const (
	BodyRadius    = 50.0
	Gravity       = 9.81 // canvas units per step², before StepScale
	StepScale     = 0.1  // fraction of Gravity applied each step
	AirResistance = 0.01 // per-step damping on velocity and spin
	Restitution   = 0.7  // bounce coefficient for walls and collision spin kick
	WallSpin      = -0.5 // angular velocity multiplier on wall contact
)

// Interaction Tuning
const (
	ThrowScale = 0.1  // release velocity per canvas unit of drag
	SpinRange  = 0.05 // throw spin is uniform in [-SpinRange, SpinRange)
)

// Spawn Tuning
const (
	PopulationCap        = 20
	InitialSpawnInterval = 30 * time.Second
	MinSpawnInterval     = 2 * time.Second
	SpawnIntervalRatio   = 0.9
)

// Display
const (
	// CellWidth and CellHeight are canvas units covered by one terminal cell
	CellWidth  = 10.0
	CellHeight = 20.0

	BodyLabel = "Yes"
)
