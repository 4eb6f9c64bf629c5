package engine

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/ballpit/constants"
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/input"
	"github.com/lixenwraith/ballpit/physics"
	"github.com/lixenwraith/ballpit/vmath"
)

// FrameSink draws the registry after each physics tick
type FrameSink interface {
	Draw(w *World, held int, status Status)
}

// ImpactSink receives per-tick contact feedback
type ImpactSink interface {
	WallHit(count int)
	BodyHit(maxSpeed float64)
}

// Status is the summary shown alongside the frame
type Status struct {
	Population    int
	Cap           int
	SpawnInterval time.Duration
	Paused        bool
	Ticks         uint64
}

// Options configures a Simulation
type Options struct {
	Params       physics.Params
	Throw        input.ThrowConfig
	Spawn        SpawnConfig
	TickInterval time.Duration
	Seed         uint64
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		Params:       physics.DefaultParams(),
		Throw:        input.DefaultThrowConfig(),
		Spawn:        DefaultSpawnConfig(),
		TickInterval: constants.TickInterval,
		Seed:         uint64(time.Now().UnixNano()),
	}
}

// Simulation is the single context object: registry, drag state and spawn timer
// It is owned by one goroutine; every entry point runs to completion
type Simulation struct {
	World      *World
	Controller *input.Controller
	Spawner    *Spawner
	Clock      *PausableClock

	params    physics.Params
	scheduler *Scheduler
	physTask  *Task
	spawnTask *Task

	frame  FrameSink
	impact ImpactSink
	logger *slog.Logger

	contacts []physics.Contact
	ticks    uint64
}

// NewSimulation creates a simulation over a width x height canvas, seeded with one centered body
// clock is the real time source; pausing is layered on top of it
func NewSimulation(opts Options, width, height float64, clock TimeProvider, logger *slog.Logger) *Simulation {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := vmath.NewFastRand(opts.Seed)
	pc := NewPausableClockWith(clock)

	s := &Simulation{
		World:      NewWorld(width, height),
		Controller: input.NewController(opts.Params.Radius, opts.Throw, rng),
		Spawner:    NewSpawner(opts.Spawn, opts.Params.Radius, rng),
		Clock:      pc,
		params:     opts.Params,
		scheduler:  NewScheduler(pc, constants.MaxTickLag),
		logger:     logger,
		contacts:   make([]physics.Contact, 0, opts.Spawn.Cap),
	}
	s.World.Seed()

	s.physTask = s.scheduler.Add("physics", opts.TickInterval, func(time.Time) time.Duration {
		s.Tick()
		return 0
	})
	s.spawnTask = s.scheduler.Add("spawn", s.Spawner.Interval(), func(time.Time) time.Duration {
		return s.Spawn()
	})

	return s
}

// SetFrameSink attaches the renderer
func (s *Simulation) SetFrameSink(f FrameSink) {
	s.frame = f
}

// SetImpactSink attaches the contact feedback consumer
func (s *Simulation) SetImpactSink(i ImpactSink) {
	s.impact = i
}

// Params returns the active physics tuning
func (s *Simulation) Params() physics.Params {
	return s.params
}

// Tick runs one physics step: integrate unheld bodies, resolve all pairs, re-contain, then draw
func (s *Simulation) Tick() {
	s.ticks++
	bodies := s.World.Bodies()

	walls := physics.Integrate(bodies, s.Controller.Held(), s.params, s.World.Bounds())
	res := physics.ResolveCollisions(bodies, s.params, s.contacts)
	s.contacts = res.Contacts
	walls += physics.Contain(bodies, s.Controller.Held(), s.params, s.World.Bounds())

	if res.Degenerate > 0 {
		s.logger.Debug("skipped degenerate pairs", "count", res.Degenerate, "tick", s.ticks)
	}

	if s.impact != nil {
		if walls > 0 {
			s.impact.WallHit(walls)
		}
		if len(res.Contacts) > 0 {
			maxSpeed := 0.0
			for _, c := range res.Contacts {
				if c.Speed > maxSpeed {
					maxSpeed = c.Speed
				}
			}
			s.impact.BodyHit(maxSpeed)
		}
	}

	s.Draw()
}

// Draw renders the current registry without stepping
func (s *Simulation) Draw() {
	if s.frame != nil {
		s.frame.Draw(s.World, s.Controller.Held(), s.Status())
	}
}

// Spawn triggers the spawner and returns the next spawn interval
func (s *Simulation) Spawn() time.Duration {
	b := s.Spawner.Trigger(s.World)
	if b != nil {
		s.logger.Debug("spawned body",
			"x", b.X, "population", s.World.Len(), "next_interval", s.Spawner.Interval())
	}
	return s.Spawner.Interval()
}

// Status summarizes the simulation for display
func (s *Simulation) Status() Status {
	return Status{
		Population:    s.World.Len(),
		Cap:           s.Spawner.Config().Cap,
		SpawnInterval: s.Spawner.Interval(),
		Paused:        s.Clock.IsPaused(),
		Ticks:         s.ticks,
	}
}

// TickInterval returns the current physics cadence
func (s *Simulation) TickInterval() time.Duration {
	return s.physTask.Interval()
}

// Until returns the wait until the next scheduled task
func (s *Simulation) Until() time.Duration {
	return s.scheduler.Until()
}

// RunDue fires all due tasks and returns how many ran
func (s *Simulation) RunDue() int {
	return s.scheduler.RunDue()
}

// PointerDown attempts a grab at p in canvas space
func (s *Simulation) PointerDown(p core.Point) {
	if idx := s.Controller.PointerDown(s.World.Bodies(), p); idx != physics.NoneHeld {
		s.logger.Debug("grabbed body", "index", idx, "x", p.X, "y", p.Y)
	}
}

// PointerMove drags the held body to p
func (s *Simulation) PointerMove(p core.Point) {
	s.Controller.PointerMove(s.World.Bodies(), p)
}

// PointerUp throws the held body
func (s *Simulation) PointerUp(p core.Point) {
	if b := s.Controller.PointerUp(s.World.Bodies(), p); b != nil {
		s.logger.Debug("threw body", "vel_x", b.VelX, "vel_y", b.VelY, "spin", b.AngularVel)
	}
}

// TogglePause freezes or resumes both cadences and returns the new state
func (s *Simulation) TogglePause() bool {
	paused := s.Clock.Toggle()
	s.logger.Info("pause toggled", "paused", paused, "total_paused", s.Clock.GetTotalPauseDuration())
	s.Draw()
	return paused
}

// Reset returns to a single seed body and the initial spawn interval
func (s *Simulation) Reset() {
	s.Controller.Cancel()
	s.World.Seed()
	s.Spawner.Reset()
	s.scheduler.Reschedule(s.spawnTask, s.Spawner.Interval())
	s.logger.Info("simulation reset")
	s.Draw()
}

// Resize updates the viewport in canvas units
func (s *Simulation) Resize(width, height float64) {
	s.World.Resize(width, height)
	s.logger.Debug("viewport resized", "width", width, "height", height)
}

// Apply swaps live tunables; the shared radius is kept for the lifetime of the run
func (s *Simulation) Apply(opts Options) {
	radius := s.params.Radius
	s.params = opts.Params
	s.params.Radius = radius

	s.Controller.SetThrow(opts.Throw)
	s.Spawner.SetConfig(opts.Spawn)
	if opts.TickInterval > 0 && opts.TickInterval != s.physTask.Interval() {
		s.scheduler.Reschedule(s.physTask, opts.TickInterval)
	}
	if s.spawnTask.Interval() != s.Spawner.Interval() {
		s.scheduler.Reschedule(s.spawnTask, s.Spawner.Interval())
	}
	s.logger.Info("tuning applied", "gravity", s.params.Gravity, "restitution", s.params.Restitution)
}
