package physics

import (
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/vmath"
)

// PairResult describes what ResolvePair did with a pair
type PairResult uint8

const (
	// PairSeparate means the circles do not overlap; nothing changed
	PairSeparate PairResult = iota
	// PairResolved means impulse, de-penetration and spin kick were applied
	PairResolved
	// PairDegenerate means the centers coincide or the normal is not finite; nothing changed
	PairDegenerate
)

// Contact records one resolved pair for feedback sinks (audio, debug logging)
type Contact struct {
	A, B int
	// Speed is |relVel·normal| before resolution
	Speed float64
}

// Collisions summarizes one resolver pass
type Collisions struct {
	Contacts   []Contact
	Degenerate int
}

// ResolveCollisions examines every unordered pair once, O(n²) with no broad phase
// Stateless: nothing carries over between calls
// contacts is reused when non-nil to avoid per-tick allocation
func ResolveCollisions(bodies []*core.Body, p Params, contacts []Contact) Collisions {
	out := Collisions{Contacts: contacts[:0]}
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			res, speed := ResolvePair(bodies[i], bodies[j], p)
			switch res {
			case PairResolved:
				out.Contacts = append(out.Contacts, Contact{A: i, B: j, Speed: speed})
			case PairDegenerate:
				out.Degenerate++
			}
		}
	}
	return out
}

// ResolvePair applies elastic impulse, positional correction and a cosmetic spin kick to an overlapping pair
// The impulse is applied whether or not the bodies are approaching
// Returns the outcome and the closing speed along the normal
func ResolvePair(a, b *core.Body, p Params) (PairResult, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	minDist := 2 * p.Radius

	if vmath.MagnitudeSq(dx, dy) >= minDist*minDist {
		return PairSeparate, 0
	}

	nx, ny, dist := vmath.Normalize2D(dx, dy)
	if dist == 0 || !vmath.Finite2D(nx, ny) {
		return PairDegenerate, 0
	}

	massSum := a.Mass + b.Mass
	if massSum <= 0 || !vmath.Finite(massSum) {
		return PairDegenerate, 0
	}

	relX := b.VelX - a.VelX
	relY := b.VelY - a.VelY
	dot := vmath.DotProduct(relX, relY, nx, ny)

	// Exchange of normal velocity for equal masses
	impulse := 2 * dot / massSum
	ApplyImpulse(a, impulse*nx*b.Mass, impulse*ny*b.Mass)
	ApplyImpulse(b, -impulse*nx*a.Mass, -impulse*ny*a.Mass)

	// Restore exact tangency, half the overlap each
	half := (minDist - dist) / 2
	a.X -= nx * half
	a.Y -= ny * half
	b.X += nx * half
	b.Y += ny * half

	if p.Radius > 0 {
		spin := dot * (1 - p.Restitution) / p.Radius
		a.AngularVel += spin
		b.AngularVel -= spin
	}

	if dot < 0 {
		return PairResolved, -dot
	}
	return PairResolved, dot
}
