package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ballpit/core"
)

// Base palette, blended before conversion to terminal colors
var (
	BodyFill = core.RGB{R: 235, G: 235, B: 235} // Near-white at rest
	BodyHot  = core.RGB{R: 255, G: 110, B: 80}  // Fast bodies glow toward this
)

// glowSpeed is the speed (canvas units per step) at which a body is fully BodyHot
const glowSpeed = 30.0

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbBody       = toTcell(BodyFill)
	RgbBodyHeld   = tcell.NewRGBColor(255, 200, 60) // Amber while dragged
	RgbLabel      = tcell.NewRGBColor(0, 0, 0)      // Black label text
	RgbSpinMarker = toTcell(BodyFill.Scale(0.5))
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusBg   = tcell.NewRGBColor(50, 50, 60)    // Status line background
	RgbPaused     = tcell.NewRGBColor(255, 120, 120) // Paused indicator
)

func toTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// BodyStyle returns the fill style for a body: amber when held, otherwise shaded by speed
func BodyStyle(held bool, speed float64) tcell.Style {
	bg := RgbBodyHeld
	if !held {
		bg = toTcell(BodyFill.Blend(BodyHot, speed/glowSpeed))
	}
	return tcell.StyleDefault.Background(bg).Foreground(RgbLabel)
}
