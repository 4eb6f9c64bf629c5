package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ballpit/engine"
	"github.com/lixenwraith/ballpit/input"
	"github.com/lixenwraith/ballpit/vmath"
)

// Canvas is the subset of tcell.Screen the renderer draws into
type Canvas interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

// statusRows is the number of terminal rows reserved below the play area
const statusRows = 1

// spinMarkerReach is the marker distance from center as a fraction of radius
const spinMarkerReach = 0.6

// TerminalRenderer draws bodies as filled discs with a rotation marker and centered label
type TerminalRenderer struct {
	canvas Canvas
	scale  input.CellScale
	radius float64
	label  []rune
}

// NewTerminalRenderer creates a renderer for bodies of the given radius
func NewTerminalRenderer(canvas Canvas, scale input.CellScale, radius float64, label string) *TerminalRenderer {
	return &TerminalRenderer{
		canvas: canvas,
		scale:  scale,
		radius: radius,
		label:  []rune(label),
	}
}

// SetScale updates the cell-to-canvas mapping after a display reload
func (r *TerminalRenderer) SetScale(scale input.CellScale) {
	r.scale = scale
}

// SetLabel replaces the text centered on each body
func (r *TerminalRenderer) SetLabel(label string) {
	r.label = []rune(label)
}

// Viewport returns the play area in canvas units for the canvas's current size
func Viewport(c Canvas, scale input.CellScale) (width, height float64) {
	cols, rows := c.Size()
	rows -= statusRows
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return float64(cols) * scale.Width, float64(rows) * scale.Height
}

// Draw renders the frame; satisfies engine.FrameSink
func (r *TerminalRenderer) Draw(w *engine.World, held int, status engine.Status) {
	r.canvas.Clear()
	cols, rows := r.canvas.Size()
	playRows := rows - statusRows

	bg := tcell.StyleDefault.Background(RgbBackground)
	for y := 0; y < playRows; y++ {
		for x := 0; x < cols; x++ {
			r.canvas.SetContent(x, y, ' ', nil, bg)
		}
	}

	for i, b := range w.Bodies() {
		style := BodyStyle(i == held, vmath.Magnitude(b.VelX, b.VelY))
		r.drawDisc(b.X, b.Y, cols, playRows, style)
		r.drawSpinMarker(b.X, b.Y, b.Angle, cols, playRows, style)
		r.drawLabel(b.X, b.Y, cols, playRows, style)
	}

	r.drawStatusBar(status, cols, rows)
	r.canvas.Show()
}

// drawDisc fills every cell whose center lies within radius of (x, y)
func (r *TerminalRenderer) drawDisc(x, y float64, cols, rows int, style tcell.Style) {
	minX, minY := r.scale.ToCell(x-r.radius, y-r.radius)
	maxX, maxY := r.scale.ToCell(x+r.radius, y+r.radius)
	rSq := r.radius * r.radius

	for cy := max(minY, 0); cy <= min(maxY, rows-1); cy++ {
		for cx := max(minX, 0); cx <= min(maxX, cols-1); cx++ {
			p := r.scale.ToCanvas(cx, cy)
			dx, dy := p.X-x, p.Y-y
			if dx*dx+dy*dy <= rSq {
				r.canvas.SetContent(cx, cy, ' ', nil, style)
			}
		}
	}
}

// drawSpinMarker puts a dot on the disc at the body's cosmetic angle
func (r *TerminalRenderer) drawSpinMarker(x, y, angle float64, cols, rows int, style tcell.Style) {
	sin, cos := math.Sincos(angle)
	reach := r.radius * spinMarkerReach
	cx, cy := r.scale.ToCell(x+cos*reach, y+sin*reach)
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return
	}
	r.canvas.SetContent(cx, cy, '●', nil, style.Foreground(RgbSpinMarker))
}

// drawLabel centers the label on the body's cell row
func (r *TerminalRenderer) drawLabel(x, y float64, cols, rows int, style tcell.Style) {
	cx, cy := r.scale.ToCell(x, y)
	if cy < 0 || cy >= rows {
		return
	}
	start := cx - len(r.label)/2
	for i, ch := range r.label {
		col := start + i
		if col < 0 || col >= cols {
			continue
		}
		r.canvas.SetContent(col, cy, ch, nil, style)
	}
}

func (r *TerminalRenderer) drawStatusBar(s engine.Status, cols, rows int) {
	y := rows - 1
	if y < 0 {
		return
	}
	style := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusBar)

	text := fmt.Sprintf(" bodies %d/%d  next spawn %.1fs  [space] pause  [r] reset  [m] mute  [q] quit",
		s.Population, s.Cap, s.SpawnInterval.Seconds())
	if s.Population >= s.Cap {
		text = fmt.Sprintf(" bodies %d/%d  full  [space] pause  [r] reset  [m] mute  [q] quit", s.Population, s.Cap)
	}

	col := 0
	if s.Paused {
		for _, ch := range " PAUSED " {
			if col >= cols {
				break
			}
			r.canvas.SetContent(col, y, ch, nil, style.Foreground(RgbPaused).Bold(true))
			col++
		}
	}
	for _, ch := range text {
		if col >= cols {
			break
		}
		r.canvas.SetContent(col, y, ch, nil, style)
		col++
	}
	for ; col < cols; col++ {
		r.canvas.SetContent(col, y, ' ', nil, style)
	}
}
