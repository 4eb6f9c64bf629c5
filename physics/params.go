package physics

import "github.com/lixenwraith/ballpit/constants"

// Params holds the tunables shared by the integrator and the collision resolver
type Params struct {
	Radius        float64 // shared by every body
	Gravity       float64
	StepScale     float64
	AirResistance float64
	Restitution   float64
	WallSpin      float64
}

// DefaultParams returns the stock tuning
func DefaultParams() Params {
	return Params{
		Radius:        constants.BodyRadius,
		Gravity:       constants.Gravity,
		StepScale:     constants.StepScale,
		AirResistance: constants.AirResistance,
		Restitution:   constants.Restitution,
		WallSpin:      constants.WallSpin,
	}
}

// Bounds is the viewport in canvas units, origin at top-left
type Bounds struct {
	Width, Height float64
}
