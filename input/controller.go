package input

import (
	"github.com/lixenwraith/ballpit/constants"
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/physics"
	"github.com/lixenwraith/ballpit/vmath"
)

// DragState is the interaction state of the single pointer
type DragState uint8

const (
	StateIdle DragState = iota
	StateDragging
)

// ThrowConfig tunes release behavior
type ThrowConfig struct {
	Scale     float64 // release velocity per canvas unit of drag
	SpinRange float64 // spin is uniform in [-SpinRange, SpinRange)
}

// DefaultThrowConfig returns the stock throw tuning
func DefaultThrowConfig() ThrowConfig {
	return ThrowConfig{
		Scale:     constants.ThrowScale,
		SpinRange: constants.SpinRange,
	}
}

// Controller is the grab/drag/throw state machine: Idle or Dragging{body, start}
// Only one body is held at a time
type Controller struct {
	state DragState
	body  int
	start core.Point

	radius float64
	throw  ThrowConfig
	rng    *vmath.FastRand
}

// NewController creates an idle controller for bodies of the given radius
func NewController(radius float64, throw ThrowConfig, rng *vmath.FastRand) *Controller {
	return &Controller{
		state:  StateIdle,
		body:   physics.NoneHeld,
		radius: radius,
		throw:  throw,
		rng:    rng,
	}
}

// State returns the current interaction state
func (c *Controller) State() DragState {
	return c.state
}

// Held returns the held body index or physics.NoneHeld
func (c *Controller) Held() int {
	if c.state != StateDragging {
		return physics.NoneHeld
	}
	return c.body
}

// Start returns the pointer position recorded at grab time
func (c *Controller) Start() core.Point {
	return c.start
}

// SetThrow swaps throw tuning
func (c *Controller) SetThrow(throw ThrowConfig) {
	c.throw = throw
}

// Cancel drops any grab without applying a throw
func (c *Controller) Cancel() {
	c.state = StateIdle
	c.body = physics.NoneHeld
}

// PointerDown grabs the first body, in registry order, whose center is within radius of p
// Returns the grabbed index or physics.NoneHeld; ignored while already dragging
func (c *Controller) PointerDown(bodies []*core.Body, p core.Point) int {
	if c.state == StateDragging {
		return physics.NoneHeld
	}

	rSq := c.radius * c.radius
	for i, b := range bodies {
		if vmath.DistanceSq(p.X, p.Y, b.X, b.Y) <= rSq {
			c.state = StateDragging
			c.body = i
			c.start = p
			return i
		}
	}
	return physics.NoneHeld
}

// PointerMove teleports the held body to p; velocity is left untouched
func (c *Controller) PointerMove(bodies []*core.Body, p core.Point) {
	b := c.heldBody(bodies)
	if b == nil {
		return
	}
	b.X = p.X
	b.Y = p.Y
}

// PointerUp releases the held body with velocity (p - start) * Scale and a random spin
// Returns the released body, nil when nothing was held
func (c *Controller) PointerUp(bodies []*core.Body, p core.Point) *core.Body {
	b := c.heldBody(bodies)
	c.Cancel()
	if b == nil {
		return nil
	}

	physics.SetImpulse(b, (p.X-c.start.X)*c.throw.Scale, (p.Y-c.start.Y)*c.throw.Scale)
	b.AngularVel = c.rng.Range(-c.throw.SpinRange, c.throw.SpinRange)
	return b
}

func (c *Controller) heldBody(bodies []*core.Body) *core.Body {
	if c.state != StateDragging || c.body < 0 || c.body >= len(bodies) {
		return nil
	}
	return bodies[c.body]
}
