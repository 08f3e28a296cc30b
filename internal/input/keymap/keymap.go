package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/sentencenav/internal/input/key"
)

// ErrConflict is returned when two actions are bound to the same key.
var ErrConflict = errors.New("key already bound")

// Keymap holds key bindings. It is safe for concurrent use.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "plugin:sentence-navigator"
	Source string

	mu       sync.RWMutex
	bindings []Binding
	index    map[key.Event]int
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:  name,
		index: make(map[key.Event]int),
	}
}

// Add parses and adds a binding. Binding a key that is already bound to a
// different action returns ErrConflict.
func (k *Keymap) Add(b Binding) error {
	if b.Action == "" {
		return fmt.Errorf("binding %q: empty action", b.Keys)
	}
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	b.event = ev

	k.mu.Lock()
	defer k.mu.Unlock()

	if i, ok := k.index[ev]; ok {
		if k.bindings[i].Action != b.Action {
			return fmt.Errorf("%w: %s is bound to %s", ErrConflict, ev, k.bindings[i].Action)
		}
		k.bindings[i] = b
		return nil
	}
	k.index[ev] = len(k.bindings)
	k.bindings = append(k.bindings, b)
	return nil
}

// Bind replaces every binding of action with a single binding to keys,
// keeping the description and category of the old binding. On error the
// old bindings are kept.
func (k *Keymap) Bind(action, keys string) error {
	ev, err := key.Parse(keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", keys, err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if i, ok := k.index[ev]; ok && k.bindings[i].Action != action {
		return fmt.Errorf("%w: %s is bound to %s", ErrConflict, ev, k.bindings[i].Action)
	}

	nb := Binding{Keys: keys, Action: action, event: ev}
	if i := slices.IndexFunc(k.bindings, func(b Binding) bool { return b.Action == action }); i >= 0 {
		nb.Description = k.bindings[i].Description
		nb.Category = k.bindings[i].Category
	}
	k.bindings = slices.DeleteFunc(k.bindings, func(b Binding) bool {
		return b.Action == action
	})
	k.bindings = append(k.bindings, nb)
	k.reindex()
	return nil
}

// Unbind removes all bindings of action.
func (k *Keymap) Unbind(action string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.bindings = slices.DeleteFunc(k.bindings, func(b Binding) bool {
		return b.Action == action
	})
	k.reindex()
}

func (k *Keymap) reindex() {
	k.index = make(map[key.Event]int, len(k.bindings))
	for i, b := range k.bindings {
		k.index[b.event] = i
	}
}

// Lookup returns the binding for a key event.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	i, ok := k.index[ev.Normalize()]
	if !ok {
		return Binding{}, false
	}
	return k.bindings[i], true
}

// ForAction returns the first binding of action.
func (k *Keymap) ForAction(action string) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	for _, b := range k.bindings {
		if b.Action == action {
			return b, true
		}
	}
	return Binding{}, false
}

// Bindings returns a copy of all bindings in insertion order.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return slices.Clone(k.bindings)
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Clone creates a copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	k.mu.RLock()
	defer k.mu.RUnlock()

	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		bindings: slices.Clone(k.bindings),
	}
	clone.reindex()
	return clone
}
