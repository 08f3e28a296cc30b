package input

import (
	"sync"

	"github.com/dshills/sentencenav/internal/input/key"
	"github.com/dshills/sentencenav/internal/input/keymap"
)

// DefaultBufferSize is the capacity of the action channel.
const DefaultBufferSize = 64

// Handler resolves key events to actions using a keymap.
type Handler struct {
	mu      sync.RWMutex
	keymap  *keymap.Keymap
	actions chan Action
	last    key.Event
	unbound func(key.Event)
}

// NewHandler creates a handler that resolves keys with km.
func NewHandler(km *keymap.Keymap) *Handler {
	return &Handler{
		keymap:  km,
		actions: make(chan Action, DefaultBufferSize),
	}
}

// SetKeymap replaces the keymap used for resolution.
func (h *Handler) SetKeymap(km *keymap.Keymap) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keymap = km
}

// OnUnbound registers a callback for key events with no binding.
func (h *Handler) OnUnbound(fn func(key.Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unbound = fn
}

// HandleKey resolves ev and queues the bound action. It reports whether a
// binding was found. When the queue is full the action is dropped and
// false is returned.
func (h *Handler) HandleKey(ev key.Event) bool {
	h.mu.Lock()
	h.last = ev
	km := h.keymap
	unbound := h.unbound
	h.mu.Unlock()

	if km != nil {
		if b, ok := km.Lookup(ev); ok {
			select {
			case h.actions <- NewAction(b.Action, SourceKeyboard):
				return true
			default:
				return false
			}
		}
	}
	if unbound != nil {
		unbound(ev)
	}
	return false
}

// Actions returns the channel actions are delivered on.
func (h *Handler) Actions() <-chan Action {
	return h.actions
}

// LastKey returns the most recent key event.
func (h *Handler) LastKey() key.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}
