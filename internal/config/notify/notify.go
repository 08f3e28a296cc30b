// Package notify delivers configuration change events to observers.
//
// Observers subscribe to every change or to one dot-separated path. A path
// subscription also sees changes below it, so "sentence" receives
// "sentence.pattern". Reload events reach everyone.
package notify

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a value was deleted.
	ChangeDelete

	// ChangeReload indicates the entire configuration was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated path to the changed setting.
	// Empty for reload events.
	Path string

	Type     ChangeType
	OldValue any
	NewValue any

	// Source identifies where the change came from, such as a file path or
	// "env".
	Source string
}

// String implements fmt.Stringer.
func (c Change) String() string {
	if c.Type == ChangeReload {
		return fmt.Sprintf("reload(%s)", c.Source)
	}
	return fmt.Sprintf("%s %s: %v -> %v", c.Type, c.Path, c.OldValue, c.NewValue)
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

type subscriber struct {
	path     string
	observer Observer
}

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.notifier.mu.Lock()
	delete(s.notifier.subs, s.id)
	s.notifier.mu.Unlock()
}

// Notifier manages configuration change subscriptions. Delivery is
// synchronous, on the caller's goroutine, outside the notifier's lock.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[uint64]subscriber
	nextID uint64
	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{subs: make(map[uint64]subscriber)}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at or below path.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = subscriber{path: path, observer: observer}
	return &Subscription{id: id, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Notify sends a change notification to all relevant observers, in
// subscription order.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	ids := make([]uint64, 0, len(n.subs))
	for id, s := range n.subs {
		if matches(s.path, change) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = n.subs[id].observer
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// NotifySet is a convenience method for set changes.
func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// NotifyDelete is a convenience method for delete changes.
func (n *Notifier) NotifyDelete(path string, oldValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeDelete, OldValue: oldValue, Source: source})
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close drops all subscriptions. Later notifications are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	clear(n.subs)
}

func matches(path string, change Change) bool {
	if path == "" || change.Path == "" {
		return true
	}
	return path == change.Path || isParentPath(path, change.Path)
}

// isParentPath checks if parent is a parent path of child.
// e.g., "sentence" is parent of "sentence.pattern".
func isParentPath(parent, child string) bool {
	return len(child) > len(parent) && child[:len(parent)] == parent && child[len(parent)] == '.'
}

// Diff returns the leaf changes that turn old into new, sorted by path.
// Nested maps are walked; any other value is compared as a whole.
func Diff(old, new map[string]any, source string) []Change {
	var changes []Change
	diff("", old, new, source, &changes)
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

func diff(prefix string, old, new map[string]any, source string, out *[]Change) {
	for key, nv := range new {
		path := join(prefix, key)
		ov, existed := old[key]
		nm, nIsMap := nv.(map[string]any)
		om, oIsMap := ov.(map[string]any)
		switch {
		case nIsMap && oIsMap:
			diff(path, om, nm, source, out)
		case nIsMap:
			if existed {
				*out = append(*out, Change{Path: path, Type: ChangeDelete, OldValue: ov, Source: source})
			}
			diff(path, nil, nm, source, out)
		case oIsMap:
			diff(path, om, nil, source, out)
			*out = append(*out, Change{Path: path, Type: ChangeSet, NewValue: nv, Source: source})
		case !existed || !reflect.DeepEqual(ov, nv):
			*out = append(*out, Change{Path: path, Type: ChangeSet, OldValue: ov, NewValue: nv, Source: source})
		}
	}
	for key, ov := range old {
		if _, ok := new[key]; ok {
			continue
		}
		path := join(prefix, key)
		if om, ok := ov.(map[string]any); ok {
			diff(path, om, nil, source, out)
			continue
		}
		*out = append(*out, Change{Path: path, Type: ChangeDelete, OldValue: ov, Source: source})
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
