package physics

import (
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/vmath"
)

// NoneHeld is passed as the held index when no body is being dragged
const NoneHeld = -1

// Integrate advances every body except bodies[held] by one step
// Order per body: gravity, damping, Euler position, rotation, wall reflection
// Returns the number of wall contacts
func Integrate(bodies []*core.Body, held int, p Params, b Bounds) int {
	contacts := 0
	for i, body := range bodies {
		if i == held {
			continue
		}
		Step(body, p)
		contacts += ReflectBounds(body, p, b)
	}
	return contacts
}

// Contain reflects every body except bodies[held] back inside b
// Collision separation can push a body past a wall after Integrate clamped it; this runs last so no drawn state escapes
func Contain(bodies []*core.Body, held int, p Params, b Bounds) int {
	contacts := 0
	for i, body := range bodies {
		if i == held {
			continue
		}
		contacts += ReflectBounds(body, p, b)
	}
	return contacts
}

// Step applies gravity, air resistance and explicit Euler integration to one body
func Step(k *core.Body, p Params) {
	k.VelY += p.Gravity * p.StepScale

	damp := 1 - p.AirResistance
	k.VelX, k.VelY = vmath.ScaleVector(k.VelX, k.VelY, damp)
	k.AngularVel *= damp

	k.X += k.VelX
	k.Y += k.VelY
	k.Angle += k.AngularVel
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(k *core.Body, vx, vy float64) {
	k.VelX += vx
	k.VelY += vy
}

// SetImpulse overrides velocity (throw)
func SetImpulse(k *core.Body, vx, vy float64) {
	k.VelX = vx
	k.VelY = vy
}

// ReflectBoundsX handles right then left wall, returns contact count
// Clamps the center to [radius, width-radius] and scales the reflected velocity by restitution
func ReflectBoundsX(k *core.Body, p Params, width float64) int {
	n := 0
	if k.X+p.Radius > width {
		k.X = width - p.Radius
		k.VelX, k.VelY = vmath.ReflectAxisX(k.VelX, k.VelY)
		k.VelX *= p.Restitution
		k.AngularVel *= p.WallSpin
		n++
	}
	if k.X-p.Radius < 0 {
		k.X = p.Radius
		k.VelX, k.VelY = vmath.ReflectAxisX(k.VelX, k.VelY)
		k.VelX *= p.Restitution
		k.AngularVel *= p.WallSpin
		n++
	}
	return n
}

// ReflectBoundsY handles bottom then top wall, returns contact count
func ReflectBoundsY(k *core.Body, p Params, height float64) int {
	n := 0
	if k.Y+p.Radius > height {
		k.Y = height - p.Radius
		k.VelX, k.VelY = vmath.ReflectAxisY(k.VelX, k.VelY)
		k.VelY *= p.Restitution
		k.AngularVel *= p.WallSpin
		n++
	}
	if k.Y-p.Radius < 0 {
		k.Y = p.Radius
		k.VelX, k.VelY = vmath.ReflectAxisY(k.VelX, k.VelY)
		k.VelY *= p.Restitution
		k.AngularVel *= p.WallSpin
		n++
	}
	return n
}

// ReflectBounds handles both axes in the fixed order right, left, bottom, top
// Corners are corrected one axis at a time with no combined normal
func ReflectBounds(k *core.Body, p Params, b Bounds) int {
	return ReflectBoundsX(k, p, b.Width) + ReflectBoundsY(k, p, b.Height)
}
