package sentence

import "sync/atomic"

// Config holds the active sentence pattern. Reads and updates are atomic, so
// one Config can be shared by command handlers, the plugin host and a
// settings watcher. The zero value uses the default pattern.
type Config struct {
	pattern atomic.Pointer[Pattern]
}

// NewConfig returns a Config using the default pattern.
func NewConfig() *Config {
	c := &Config{}
	c.pattern.Store(Default())
	return c
}

// NewConfigWithSource returns a Config using source, or an error if source
// does not compile.
func NewConfigWithSource(source string) (*Config, error) {
	p, err := Compile(source)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	c.pattern.Store(p)
	return c, nil
}

// Pattern returns the active pattern.
func (c *Config) Pattern() *Pattern {
	if p := c.pattern.Load(); p != nil {
		return p
	}
	return Default()
}

// Source returns the active pattern source.
func (c *Config) Source() string {
	return c.Pattern().Source()
}

// SetSource compiles source and makes it active. On error the previous
// pattern stays active.
func (c *Config) SetSource(source string) error {
	p, err := Compile(source)
	if err != nil {
		return err
	}
	c.pattern.Store(p)
	return nil
}

// SetPattern makes an already compiled pattern active. A nil pattern resets
// to the default.
func (c *Config) SetPattern(p *Pattern) {
	if p == nil {
		p = Default()
	}
	c.pattern.Store(p)
}

// Reset restores the default pattern.
func (c *Config) Reset() {
	c.pattern.Store(Default())
}

// IsDefault reports whether the default pattern is active.
func (c *Config) IsDefault() bool {
	return c.Pattern().IsDefault()
}
