package core

// Body is a single circular body in canvas space
// The radius is shared across all bodies and lives in the physics parameters
type Body struct {
	// X and Y are the center coordinates in canvas units
	X, Y float64
	// VelX and VelY are velocity in canvas units per simulation step
	VelX, VelY float64
	// Angle is the cosmetic rotation in radians
	Angle float64
	// AngularVel is the rotation rate in radians per step
	AngularVel float64
	// Mass is always positive; NewBody enforces it
	Mass float64
}

// DefaultMass is the mass given to every body the simulation creates
const DefaultMass = 1.0

// NewBody creates a body at rest at (x, y) with the given velocity and default mass
func NewBody(x, y, velX, velY float64) *Body {
	return &Body{
		X:    x,
		Y:    y,
		VelX: velX,
		VelY: velY,
		Mass: DefaultMass,
	}
}

// SetMass assigns mass, falling back to DefaultMass for non-positive values
func (b *Body) SetMass(m float64) {
	if m <= 0 {
		m = DefaultMass
	}
	b.Mass = m
}

// Point is a canvas-space coordinate
type Point struct {
	X, Y float64
}
