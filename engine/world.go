package engine

import (
	"github.com/lixenwraith/ballpit/core"
	"github.com/lixenwraith/ballpit/physics"
)

// World is the body registry: an insertion-ordered, grow-only list plus the current viewport
// Order has no physics meaning; it only decides which body of a pair absorbs resolution first
type World struct {
	bodies []*core.Body
	bounds physics.Bounds
}

// NewWorld creates an empty world with the given viewport in canvas units
func NewWorld(width, height float64) *World {
	return &World{
		bodies: make([]*core.Body, 0, 32),
		bounds: physics.Bounds{Width: width, Height: height},
	}
}

// Add appends a body and returns its index
func (w *World) Add(b *core.Body) int {
	w.bodies = append(w.bodies, b)
	return len(w.bodies) - 1
}

// Bodies returns the live registry slice; callers must not retain it across Add
func (w *World) Bodies() []*core.Body {
	return w.bodies
}

// Body returns the body at index i, nil when out of range
func (w *World) Body(i int) *core.Body {
	if i < 0 || i >= len(w.bodies) {
		return nil
	}
	return w.bodies[i]
}

// Len returns the population
func (w *World) Len() int {
	return len(w.bodies)
}

// Bounds returns the current viewport
func (w *World) Bounds() physics.Bounds {
	return w.bounds
}

// Resize updates the viewport; existing bodies reflect off the new walls on their next step
func (w *World) Resize(width, height float64) {
	w.bounds = physics.Bounds{Width: width, Height: height}
}

// Seed clears the registry and places one body at rest at the viewport center
func (w *World) Seed() *core.Body {
	for i := range w.bodies {
		w.bodies[i] = nil
	}
	w.bodies = w.bodies[:0]
	b := core.NewBody(w.bounds.Width/2, w.bounds.Height/2, 0, 0)
	w.Add(b)
	return b
}
