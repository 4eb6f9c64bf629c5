package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ballpit/core"
)

// CellScale maps terminal cells to canvas units
type CellScale struct {
	Width, Height float64
}

// ToCanvas returns the canvas point at the center of cell (cx, cy)
func (s CellScale) ToCanvas(cx, cy int) core.Point {
	return core.Point{
		X: (float64(cx) + 0.5) * s.Width,
		Y: (float64(cy) + 0.5) * s.Height,
	}
}

// ToCell returns the cell containing canvas point (x, y)
func (s CellScale) ToCell(x, y float64) (int, int) {
	return floorInt(x / s.Width), floorInt(y / s.Height)
}

func floorInt(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}

// Machine parses tcell events into Intents
// tcell reports button state rather than transitions, so press/drag/release are derived here
type Machine struct {
	scale      CellScale
	buttonDown bool
}

// NewMachine creates an input machine using scale for pointer coordinates
func NewMachine(scale CellScale) *Machine {
	return &Machine{scale: scale}
}

// SetScale updates the cell-to-canvas mapping
func (m *Machine) SetScale(scale CellScale) {
	m.scale = scale
}

// Process parses a terminal event and returns an Intent, nil when the event is irrelevant
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return &Intent{Type: IntentQuit}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return &Intent{Type: IntentQuit}
		case ' ':
			return &Intent{Type: IntentPause}
		case 'r', 'R':
			return &Intent{Type: IntentReset}
		case 'm', 'M':
			return &Intent{Type: IntentMute}
		}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	cx, cy := ev.Position()
	p := m.scale.ToCanvas(cx, cy)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !m.buttonDown:
		m.buttonDown = true
		return &Intent{Type: IntentPointerDown, Point: p}
	case down && m.buttonDown:
		return &Intent{Type: IntentPointerMove, Point: p}
	case !down && m.buttonDown:
		m.buttonDown = false
		return &Intent{Type: IntentPointerUp, Point: p}
	}
	// Hover without a button is ignored
	return nil
}
