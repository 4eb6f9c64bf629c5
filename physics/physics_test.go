package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/vmath"
)

func assertFiniteBody(t *testing.T, b *core.Body) {
	t.Helper()
	for name, v := range map[string]float64{
		"X": b.X, "Y": b.Y, "VelX": b.VelX, "VelY": b.VelY,
		"Angle": b.Angle, "AngularVel": b.AngularVel, "Mass": b.Mass,
	} {
		if !vmath.Finite(v) {
			t.Errorf("%s is not finite: %v", name, v)
		}
	}
}

// --- Integrator ---

func TestIntegrateGravityScenario(t *testing.T) {
	p := DefaultParams()
	bounds := Bounds{Width: 1000, Height: 800}
	seed := core.NewBody(bounds.Width/2, bounds.Height/2, 0, 0)

	Integrate([]*core.Body{seed}, NoneHeld, p, bounds)

	wantVelY := p.Gravity * p.StepScale * (1 - p.AirResistance)
	assert.InDelta(t, wantVelY, seed.VelY, vmath.Epsilon)
	assert.Zero(t, seed.VelX)
	assert.InDelta(t, bounds.Height/2+wantVelY, seed.Y, vmath.Epsilon)
	assert.Equal(t, bounds.Width/2, seed.X)
}

func TestIntegrateSkipsHeldBody(t *testing.T) {
	p := DefaultParams()
	bounds := Bounds{Width: 1000, Height: 800}
	held := core.NewBody(300, 300, 4, -2)
	free := core.NewBody(700, 300, 0, 0)

	Integrate([]*core.Body{held, free}, 0, p, bounds)

	assert.Equal(t, core.Body{X: 300, Y: 300, VelX: 4, VelY: -2, Mass: 1}, *held)
	assert.NotZero(t, free.VelY)
}

func TestIntegrateDampsSpin(t *testing.T) {
	p := DefaultParams()
	b := core.NewBody(500, 400, 0, 0)
	b.AngularVel = 0.04

	Integrate([]*core.Body{b}, NoneHeld, p, Bounds{Width: 1000, Height: 800})

	wantSpin := 0.04 * (1 - p.AirResistance)
	assert.InDelta(t, wantSpin, b.AngularVel, vmath.Epsilon)
	assert.InDelta(t, wantSpin, b.Angle, vmath.Epsilon)
}

func TestReflectBoundsEachWall(t *testing.T) {
	p := DefaultParams()
	bounds := Bounds{Width: 400, Height: 300}

	tests := []struct {
		name           string
		x, y, vx, vy   float64
		wantX, wantY   float64
		wantVX, wantVY float64
	}{
		{"right", 390, 150, 5, 0, 350, 150, -5 * p.Restitution, 0},
		{"left", 10, 150, -5, 0, 50, 150, 5 * p.Restitution, 0},
		{"bottom", 200, 290, 0, 8, 200, 250, 0, -8 * p.Restitution},
		{"top", 200, -50, 0, -3, 200, 50, 0, 3 * p.Restitution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := core.NewBody(tt.x, tt.y, tt.vx, tt.vy)
			b.AngularVel = 0.2

			n := ReflectBounds(b, p, bounds)

			assert.Equal(t, 1, n)
			assert.InDelta(t, tt.wantX, b.X, vmath.Epsilon)
			assert.InDelta(t, tt.wantY, b.Y, vmath.Epsilon)
			assert.InDelta(t, tt.wantVX, b.VelX, vmath.Epsilon)
			assert.InDelta(t, tt.wantVY, b.VelY, vmath.Epsilon)
			assert.InDelta(t, 0.2*p.WallSpin, b.AngularVel, vmath.Epsilon)
		})
	}
}

func TestReflectBoundsCornerCorrectsBothAxes(t *testing.T) {
	p := DefaultParams()
	b := core.NewBody(395, 295, 2, 3)
	b.AngularVel = 0.1

	n := ReflectBounds(b, p, Bounds{Width: 400, Height: 300})

	assert.Equal(t, 2, n)
	assert.InDelta(t, 350, b.X, vmath.Epsilon)
	assert.InDelta(t, 250, b.Y, vmath.Epsilon)
	assert.InDelta(t, -2*p.Restitution, b.VelX, vmath.Epsilon)
	assert.InDelta(t, -3*p.Restitution, b.VelY, vmath.Epsilon)
	// Two contacts, two spin kicks
	assert.InDelta(t, 0.1*p.WallSpin*p.WallSpin, b.AngularVel, vmath.Epsilon)
}

func TestBoundaryContainment(t *testing.T) {
	p := DefaultParams()
	bounds := Bounds{Width: 800, Height: 600}
	rng := vmath.NewFastRand(99)

	bodies := make([]*core.Body, 0, 12)
	for i := 0; i < 12; i++ {
		b := core.NewBody(rng.Range(0, bounds.Width), rng.Range(-p.Radius, bounds.Height),
			rng.Range(-60, 60), rng.Range(-60, 60))
		bodies = append(bodies, b)
	}

	for step := 0; step < 2000; step++ {
		Integrate(bodies, NoneHeld, p, bounds)
		for i, b := range bodies {
			if b.X < p.Radius || b.X > bounds.Width-p.Radius ||
				b.Y < p.Radius || b.Y > bounds.Height-p.Radius {
				t.Fatalf("step %d body %d escaped: (%v, %v)", step, i, b.X, b.Y)
			}
		}
	}
}

func TestContainAfterSeparation(t *testing.T) {
	p := DefaultParams()
	bounds := Bounds{Width: 400, Height: 300}
	floor := bounds.Height - p.Radius

	resting := core.NewBody(200, floor, 0, 0)
	falling := core.NewBody(200, floor-60, 0, 5)
	bodies := []*core.Body{resting, falling}

	ResolveCollisions(bodies, p, nil)
	require.Greater(t, resting.Y, floor, "separation pushes the lower body through the floor")

	n := Contain(bodies, NoneHeld, p, bounds)
	assert.Equal(t, 1, n)
	assert.InDelta(t, floor, resting.Y, vmath.Epsilon)
	assert.LessOrEqual(t, falling.Y, floor)
}

func TestContainSkipsHeld(t *testing.T) {
	p := DefaultParams()
	held := core.NewBody(-100, -100, 0, 0)

	n := Contain([]*core.Body{held}, 0, p, Bounds{Width: 400, Height: 300})
	assert.Zero(t, n)
	assert.Equal(t, -100.0, held.X)
}

// --- Collision resolver ---

func TestResolvePairNonOverlappingUnchanged(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		dist float64
	}{
		{"tangent", 2 * p.Radius},
		{"apart", 2*p.Radius + 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := core.NewBody(100, 100, 3, -1)
			b := core.NewBody(100+tt.dist, 100, -2, 4)
			a.AngularVel, b.AngularVel = 0.01, -0.02
			beforeA, beforeB := *a, *b

			res, _ := ResolvePair(a, b, p)

			assert.Equal(t, PairSeparate, res)
			assert.Equal(t, beforeA, *a)
			assert.Equal(t, beforeB, *b)
		})
	}
}

func TestResolvePairHeadOnExchange(t *testing.T) {
	p := DefaultParams()
	a := core.NewBody(100, 200, 3, 0)
	b := core.NewBody(180, 200, -1, 0)

	momentumBefore := a.Mass*a.VelX + b.Mass*b.VelX

	res, speed := ResolvePair(a, b, p)
	require.Equal(t, PairResolved, res)

	momentumAfter := a.Mass*a.VelX + b.Mass*b.VelX
	assert.InDelta(t, momentumBefore, momentumAfter, vmath.Epsilon)

	// Equal masses swap normal velocities
	assert.InDelta(t, -1, a.VelX, vmath.Epsilon)
	assert.InDelta(t, 3, b.VelX, vmath.Epsilon)
	assert.InDelta(t, 4, speed, vmath.Epsilon)

	// Exact tangency after correction, midpoint preserved
	assert.InDelta(t, 2*p.Radius, vmath.Distance(a.X, a.Y, b.X, b.Y), 1e-9)
	assert.InDelta(t, 140, (a.X+b.X)/2, vmath.Epsilon)
}

func TestResolvePairSpinKick(t *testing.T) {
	p := DefaultParams()
	a := core.NewBody(100, 200, 2, 0)
	b := core.NewBody(160, 200, 0, 0)

	ResolvePair(a, b, p)

	// dot = (0 - 2) along +x
	want := -2 * (1 - p.Restitution) / p.Radius
	assert.InDelta(t, want, a.AngularVel, vmath.Epsilon)
	assert.InDelta(t, -want, b.AngularVel, vmath.Epsilon)
}

func TestResolvePairAppliesImpulseWhenSeparating(t *testing.T) {
	p := DefaultParams()
	// Overlapping but already moving apart
	a := core.NewBody(100, 200, -1, 0)
	b := core.NewBody(150, 200, 1, 0)

	res, _ := ResolvePair(a, b, p)

	require.Equal(t, PairResolved, res)
	// Velocities swap regardless of approach direction
	assert.InDelta(t, 1, a.VelX, vmath.Epsilon)
	assert.InDelta(t, -1, b.VelX, vmath.Epsilon)
}

func TestResolvePairUnequalMass(t *testing.T) {
	p := DefaultParams()
	a := core.NewBody(100, 200, 2, 0)
	b := core.NewBody(190, 200, 0, 0)
	a.SetMass(3)

	momentumBefore := a.Mass*a.VelX + b.Mass*b.VelX
	ResolvePair(a, b, p)
	momentumAfter := a.Mass*a.VelX + b.Mass*b.VelX

	assert.InDelta(t, momentumBefore, momentumAfter, 1e-9)
}

func TestResolvePairDegenerateCoincident(t *testing.T) {
	p := DefaultParams()
	a := core.NewBody(250, 250, 1, 2)
	b := core.NewBody(250, 250, -3, 0.5)
	beforeA, beforeB := *a, *b

	res, _ := ResolvePair(a, b, p)

	assert.Equal(t, PairDegenerate, res)
	assert.Equal(t, beforeA, *a)
	assert.Equal(t, beforeB, *b)
	assertFiniteBody(t, a)
	assertFiniteBody(t, b)
}

func TestResolveCollisionsDegenerateDoesNotPoisonOthers(t *testing.T) {
	p := DefaultParams()
	bodies := []*core.Body{
		core.NewBody(300, 300, 0, 0),
		core.NewBody(300, 300, 0, 0),
		core.NewBody(370, 300, -1, 0),
	}

	for i := 0; i < 50; i++ {
		res := ResolveCollisions(bodies, p, nil)
		if i == 0 {
			assert.Equal(t, 1, res.Degenerate)
		}
		Integrate(bodies, NoneHeld, p, Bounds{Width: 1000, Height: 800})
	}

	for _, b := range bodies {
		assertFiniteBody(t, b)
	}
}

func TestResolveCollisionsVisitsEachPairOnce(t *testing.T) {
	p := DefaultParams()
	bodies := []*core.Body{
		core.NewBody(100, 100, 0, 0),
		core.NewBody(160, 100, 0, 0),
		core.NewBody(100, 1000, 0, 0),
	}

	res := ResolveCollisions(bodies, p, make([]Contact, 0, 4))

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, Contact{A: 0, B: 1, Speed: 0}, res.Contacts[0])
	assert.Zero(t, res.Degenerate)
	assert.False(t, math.IsNaN(bodies[0].X))
}
