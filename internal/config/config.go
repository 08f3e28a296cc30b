package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/sentencenav/internal/config/datastore"
	"github.com/dshills/sentencenav/internal/config/loader"
	"github.com/dshills/sentencenav/internal/config/notify"
	"github.com/dshills/sentencenav/internal/config/watcher"
	"github.com/dshills/sentencenav/internal/sentence"
)

// Sources, as reported in notify.Change.Source.
const (
	SourceDefaults = "defaults"
	SourceEnv      = "env"
	SourceUser     = "user"
)

// Config provides unified access to sentencenav settings. It loads the
// config file, the plugin data file and the environment, keeps the merged
// result, and tells observers what changed on every reload.
type Config struct {
	mu sync.RWMutex

	fs       loader.FileSystem
	path     string
	useEnv   bool
	data     map[string]any
	notifier *notify.Notifier
	watcher  *watcher.Watcher
	onError  func(error)
	closed   bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the config file. TOML and YAML are accepted; a missing file
// is not an error.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnv enables or disables SENTENCENAV_* environment overrides.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// WithErrorHandler sets the callback for errors that happen off the
// caller's goroutine, such as a failed live reload.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Config) {
		c.onError = fn
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// configured sources.
func New(opts ...Option) *Config {
	c := &Config{
		fs:       loader.DefaultFS(),
		useEnv:   true,
		data:     defaultConfig(),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads every source and replaces the current settings. Observers see
// one change per setting that differs from before.
func (c *Config) Load(_ context.Context) error {
	merged, err := c.build()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	old := c.data
	c.data = merged
	c.mu.Unlock()

	for _, change := range notify.Diff(old, merged, c.sourceName()) {
		c.notifier.Notify(change)
	}
	return nil
}

// build merges defaults, the config file, the data file and the
// environment, in increasing priority.
func (c *Config) build() (map[string]any, error) {
	base := defaultConfig()

	if c.path != "" {
		l, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		base = loader.DeepMerge(base, file)
	}

	var env map[string]any
	if c.useEnv {
		var err error
		if env, err = loader.NewEnvLoader(loader.EnvPrefix).Load(); err != nil {
			return nil, err
		}
	}

	// The data file location may itself come from the environment.
	dataFile := resolveDataFile(c.path, loader.DeepMerge(loader.Clone(base), loader.Clone(env)))
	source, ok, err := datastore.Open(dataFile).PatternSource()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := setPath(base, "sentence.pattern", source); err != nil {
			return nil, err
		}
	}

	return loader.DeepMerge(base, env), nil
}

func (c *Config) sourceName() string {
	if c.path != "" {
		return c.path
	}
	return SourceDefaults
}

// Close stops live reload and drops all subscriptions.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.closed = true
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
	c.notifier.Close()
}

// Watch reloads the settings whenever the config file or the data file
// changes, until ctx is cancelled or Close is called.
func (c *Config) Watch(ctx context.Context, opts ...watcher.Option) error {
	opts = append(opts, watcher.WithErrorHandler(c.reportError))
	w := watcher.New(opts...)

	if c.path != "" {
		if err := w.Watch(c.path); err != nil {
			return err
		}
	}
	if err := w.Watch(c.DataFile()); err != nil {
		return err
	}
	w.OnChange(func(watcher.Event) {
		if err := c.Load(ctx); err != nil {
			c.reportError(fmt.Errorf("reloading config: %w", err))
		}
	})

	c.mu.Lock()
	if c.closed || c.watcher != nil {
		c.mu.Unlock()
		return fmt.Errorf("config: cannot watch: %w", watcher.ErrRunning)
	}
	c.watcher = w
	c.mu.Unlock()

	return w.Start(ctx)
}

func (c *Config) reportError(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// DataStore returns the store for the plugin data file.
func (c *Config) DataStore() *datastore.Store {
	return datastore.Open(c.DataFile())
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.data, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringMap returns a table of strings at the given path.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "map", Actual: typeName(v)}
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)}
		}
		out[k] = s
	}
	return out, nil
}

// Set changes a value in memory and notifies observers. It is not written
// back to any file.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	old, _ := getPath(c.data, path)
	if err := setPath(c.data, path, value); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.notifier.NotifySet(path, old, value, SourceUser)
	return nil
}

// Subscribe registers an observer for all configuration changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes to a specific path.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.data)
}

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sentencenav")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".sentencenav")
	}
	return filepath.Join(dir, "sentencenav")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// resolveDataFile returns the data file named in data, relative to the
// config file's directory, or the default location.
func resolveDataFile(configPath string, data map[string]any) string {
	name, _ := getPath(data, "data_file")
	file, _ := name.(string)
	if file == "" {
		return filepath.Join(DefaultConfigDir(), "data.json")
	}
	if filepath.IsAbs(file) || configPath == "" {
		return file
	}
	return filepath.Join(filepath.Dir(configPath), file)
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
		},
		"sentence": map[string]any{
			"pattern": sentence.DefaultPatternSource,
		},
		"keymap": map[string]any{},
		"plugins": map[string]any{
			"dir":     "",
			"enabled": true,
		},
		"ui": map[string]any{
			"tabSize":        4,
			"selectionColor": "",
			"statusColor":    "",
		},
		"data_file": "",
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
// Keymap action names contain dots, so anything below "keymap." is one key.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
		current = nextMap
	}
	current[parts[len(parts)-1]] = value
	return nil
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	if rest, ok := strings.CutPrefix(path, "keymap."); ok {
		return []string{"keymap", rest}
	}
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
