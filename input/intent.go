package input

import "github.com/lixenwraith/ballpit/core"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentPause  // space
	IntentReset  // r
	IntentMute   // m
	IntentResize // Terminal resize event

	// Pointer intents, Point is in canvas space
	IntentPointerDown
	IntentPointerMove
	IntentPointerUp
)

// Intent is a parsed terminal event
type Intent struct {
	Type  IntentType
	Point core.Point
}
