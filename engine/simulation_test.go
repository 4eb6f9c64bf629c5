package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/vmath"
)

type recordingFrame struct {
	frames int
	last   Status
	held   int
}

func (r *recordingFrame) Draw(_ *World, held int, status Status) {
	r.frames++
	r.held = held
	r.last = status
}

type recordingImpact struct {
	walls int
	hits  []float64
}

func (r *recordingImpact) WallHit(n int)          { r.walls += n }
func (r *recordingImpact) BodyHit(speed float64) { r.hits = append(r.hits, speed) }

func newTestSimulation(clock TimeProvider) *Simulation {
	opts := DefaultOptions()
	opts.Seed = 1
	return NewSimulation(opts, 1000, 800, clock, nil)
}

func TestSimulationSeedScenario(t *testing.T) {
	sim := newTestSimulation(NewMockTimeProvider(testEpoch))
	frame := &recordingFrame{}
	sim.SetFrameSink(frame)

	require.Equal(t, 1, sim.World.Len())
	seed := sim.World.Body(0)
	assert.Equal(t, 500.0, seed.X)
	assert.Equal(t, 400.0, seed.Y)

	sim.Tick()

	p := sim.Params()
	wantVelY := p.Gravity * 0.1 * (1 - p.AirResistance)
	assert.InDelta(t, wantVelY, seed.VelY, vmath.Epsilon)
	assert.InDelta(t, 400+wantVelY, seed.Y, vmath.Epsilon)
	assert.Equal(t, 1, frame.frames)
	assert.Equal(t, uint64(1), frame.last.Ticks)
	assert.Equal(t, -1, frame.held)
}

func TestSimulationScheduledCadences(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	sim := newTestSimulation(clock)
	frame := &recordingFrame{}
	sim.SetFrameSink(frame)

	// 30s of 10ms steps, advanced in frame-sized slices
	for i := 0; i < 3000; i++ {
		clock.Advance(10 * time.Millisecond)
		sim.RunDue()
	}

	assert.Equal(t, 3000, frame.frames)
	assert.Equal(t, 2, sim.World.Len(), "first spawn fires at the 30s initial interval")
	assert.Equal(t, 27*time.Second, sim.Spawner.Interval())
}

func TestSimulationPauseFreezesBothCadences(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	sim := newTestSimulation(clock)
	frame := &recordingFrame{}
	sim.SetFrameSink(frame)

	assert.True(t, sim.TogglePause())
	before := frame.frames

	clock.Advance(time.Minute)
	assert.Zero(t, sim.RunDue())
	assert.Equal(t, 1, sim.World.Len())
	assert.True(t, frame.last.Paused)

	assert.False(t, sim.TogglePause())
	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, sim.RunDue())
	assert.Greater(t, frame.frames, before)
}

func TestSimulationDragAndThrow(t *testing.T) {
	sim := newTestSimulation(NewMockTimeProvider(testEpoch))
	seed := sim.World.Body(0)

	sim.PointerDown(core.Point{X: 500, Y: 400})
	require.Equal(t, 0, sim.Controller.Held())

	sim.PointerMove(core.Point{X: 600, Y: 300})
	sim.Tick()
	assert.Equal(t, 600.0, seed.X, "held body is not integrated")
	assert.Equal(t, 300.0, seed.Y)

	sim.PointerUp(core.Point{X: 700, Y: 350})
	assert.InDelta(t, 20, seed.VelX, vmath.Epsilon)
	assert.InDelta(t, -5, seed.VelY, vmath.Epsilon)
	assert.Equal(t, -1, sim.Controller.Held())
}

func TestSimulationImpactFeedback(t *testing.T) {
	sim := newTestSimulation(NewMockTimeProvider(testEpoch))
	impact := &recordingImpact{}
	sim.SetImpactSink(impact)

	sim.World.Add(core.NewBody(560, 400, -2, 0))
	sim.Tick()
	require.Len(t, impact.hits, 1)
	assert.Greater(t, impact.hits[0], 0.0)

	sim.World.Body(0).Y = 790
	sim.Tick()
	assert.Positive(t, impact.walls)
}

func TestSimulationReset(t *testing.T) {
	clock := NewMockTimeProvider(testEpoch)
	sim := newTestSimulation(clock)

	for i := 0; i < 5; i++ {
		sim.Spawn()
	}
	require.Equal(t, 6, sim.World.Len())
	sim.PointerDown(core.Point{X: 500, Y: 400})

	sim.Reset()

	assert.Equal(t, 1, sim.World.Len())
	assert.Equal(t, 30*time.Second, sim.Spawner.Interval())
	assert.Equal(t, -1, sim.Controller.Held())
}

func TestSimulationApplyKeepsRadius(t *testing.T) {
	sim := newTestSimulation(NewMockTimeProvider(testEpoch))

	opts := DefaultOptions()
	opts.Params.Radius = 10
	opts.Params.Gravity = 20
	sim.Apply(opts)

	assert.Equal(t, 50.0, sim.Params().Radius)
	assert.Equal(t, 20.0, sim.Params().Gravity)
}

func TestSimulationTickKeepsStackedBodiesInside(t *testing.T) {
	sim := newTestSimulation(NewMockTimeProvider(testEpoch))
	p := sim.Params()
	bounds := sim.World.Bounds()
	floor := bounds.Height - p.Radius

	base := sim.World.Body(0)
	base.Y = floor
	sim.World.Add(core.NewBody(base.X, floor-60, 0, 0))
	sim.World.Add(core.NewBody(base.X+30, floor-150, 0, 0))
	sim.World.Add(core.NewBody(p.Radius, floor, -5, 0))
	sim.World.Add(core.NewBody(p.Radius+40, floor-20, -5, 0))

	for tick := 0; tick < 200; tick++ {
		sim.Tick()
		for i, b := range sim.World.Bodies() {
			if b.X < p.Radius-vmath.Epsilon || b.X > bounds.Width-p.Radius+vmath.Epsilon ||
				b.Y < p.Radius-vmath.Epsilon || b.Y > floor+vmath.Epsilon {
				t.Fatalf("tick %d body %d outside viewport: (%v, %v)", tick, i, b.X, b.Y)
			}
		}
	}
}

func TestSimulationTickIntervalFollowsApply(t *testing.T) {
	sim := newTestSimulation(NewMockTimeProvider(testEpoch))
	assert.Equal(t, 10*time.Millisecond, sim.TickInterval())

	opts := DefaultOptions()
	opts.TickInterval = 25 * time.Millisecond
	sim.Apply(opts)
	assert.Equal(t, 25*time.Millisecond, sim.TickInterval())
}
