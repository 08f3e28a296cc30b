package plugin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	plua "github.com/dshills/sentencenav/internal/plugin/lua"
)

// Manager owns the editor's plugins: the built-in ones registered with
// Register and the Lua plugins found by its Loader.
type Manager struct {
	mu sync.Mutex

	env     Env
	loader  *Loader
	timeout time.Duration

	plugins map[string]Plugin
	order   []string
	errs    map[string]error

	eventHandlers []EventHandler
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLoader sets where Lua plugins are discovered.
func WithLoader(l *Loader) ManagerOption {
	return func(m *Manager) {
		m.loader = l
	}
}

// WithExecutionTimeout sets the per-call deadline for Lua plugins.
func WithExecutionTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = d
	}
}

// EventHandler handles plugin manager events. Handlers run synchronously
// and must not call back into the Manager. Panics are recovered.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents a plugin manager event.
type ManagerEvent struct {
	Type   ManagerEventType
	Plugin string
	Error  error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventPluginLoaded is emitted when a plugin is loaded.
	EventPluginLoaded ManagerEventType = iota
	// EventPluginUnloaded is emitted when a plugin is unloaded.
	EventPluginUnloaded
	// EventPluginError is emitted when a plugin fails to load.
	EventPluginError
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventPluginLoaded:
		return "loaded"
	case EventPluginUnloaded:
		return "unloaded"
	case EventPluginError:
		return "error"
	default:
		return "unknown"
	}
}

// NewManager creates a manager that loads plugins into env.
func NewManager(env Env, opts ...ManagerOption) *Manager {
	m := &Manager{
		env:     env,
		timeout: plua.DefaultExecutionTimeout,
		plugins: make(map[string]Plugin),
		errs:    make(map[string]error),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a plugin. It is loaded by LoadAll or Load.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.plugins[p.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, p.Name())
	}
	m.plugins[p.Name()] = p
	m.order = append(m.order, p.Name())
	return nil
}

// Discover registers a Host for every usable Lua plugin the loader finds.
// Plugins that cannot be used, or whose name is taken, are recorded in
// Errors. It returns the number of plugins added.
func (m *Manager) Discover() (int, error) {
	if m.loader == nil {
		return 0, nil
	}
	infos, err := m.loader.Discover()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, info := range infos {
		if info.Error != nil {
			m.setError(info.Name, info.Error)
			continue
		}
		host, err := NewHost(info.Manifest, WithHostExecutionTimeout(m.timeout))
		if err != nil {
			m.setError(info.Name, err)
			continue
		}
		if err := m.Register(host); err != nil {
			m.setError(info.Name, err)
			continue
		}
		added++
	}
	return added, nil
}

// Load loads one registered plugin.
func (m *Manager) Load(ctx context.Context, name string) error {
	m.mu.Lock()
	p, ok := m.plugins[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}

	if err := p.Load(ctx, m.env); err != nil {
		m.setError(name, err)
		m.emitEvent(ManagerEvent{Type: EventPluginError, Plugin: name, Error: err})
		return err
	}

	m.mu.Lock()
	delete(m.errs, name)
	m.mu.Unlock()
	m.emitEvent(ManagerEvent{Type: EventPluginLoaded, Plugin: name})
	return nil
}

// LoadAll loads every registered plugin in registration order. A failing
// plugin does not stop the others; all failures are joined.
func (m *Manager) LoadAll(ctx context.Context) error {
	var errs []error
	for _, name := range m.Names() {
		if err := m.Load(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Unload unloads one plugin.
func (m *Manager) Unload(ctx context.Context, name string) error {
	m.mu.Lock()
	p, ok := m.plugins[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}
	if err := p.Unload(ctx); err != nil {
		return err
	}
	m.emitEvent(ManagerEvent{Type: EventPluginUnloaded, Plugin: name})
	return nil
}

// UnloadAll unloads plugins in reverse registration order.
func (m *Manager) UnloadAll(ctx context.Context) error {
	names := m.Names()
	slices.Reverse(names)

	var errs []error
	for _, name := range names {
		if err := m.Unload(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get returns a registered plugin.
func (m *Manager) Get(name string) (Plugin, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plugins[name]
	return p, ok
}

// Names returns plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Errors returns the plugins that failed discovery or loading.
func (m *Manager) Errors() map[string]error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := make(map[string]error, len(m.errs))
	for k, v := range m.errs {
		errs[k] = v
	}
	return errs
}

// Subscribe adds an event handler and returns a function removing it.
func (m *Manager) Subscribe(handler EventHandler) func() {
	if handler == nil {
		return func() {}
	}

	m.mu.Lock()
	m.eventHandlers = append(m.eventHandlers, handler)
	index := len(m.eventHandlers) - 1
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if index < len(m.eventHandlers) {
			m.eventHandlers[index] = nil
		}
	}
}

func (m *Manager) setError(name string, err error) {
	m.mu.Lock()
	m.errs[name] = err
	m.mu.Unlock()
	m.env.warnf("plugin %s: %v", name, err)
}

// emitEvent calls handlers outside the lock.
func (m *Manager) emitEvent(event ManagerEvent) {
	m.mu.Lock()
	handlers := append([]EventHandler(nil), m.eventHandlers...)
	m.mu.Unlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		func() {
			defer func() {
				_ = recover()
			}()
			handler(event)
		}()
	}
}
