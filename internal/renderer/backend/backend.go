// Package backend provides the terminal abstraction the renderer draws on.
package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sentencenav/internal/input/key"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt wakes the event loop from another goroutine.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Data is set for EventInterrupt.
	Data any
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init prepares the terminal. It must be called before anything else.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetContent sets one cell. Positions outside the screen are ignored.
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)

	Clear()

	// Show flushes pending changes to the display.
	Show()

	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks for the next event. It returns an EventNone event
	// once the backend is shut down.
	PollEvent() Event

	// Interrupt posts an EventInterrupt carrying data.
	Interrupt(data any)
}
