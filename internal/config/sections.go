package config

import (
	"path/filepath"
	"sort"

	"github.com/dshills/sentencenav/internal/config/notify"
	"github.com/dshills/sentencenav/internal/input/key"
	"github.com/dshills/sentencenav/internal/sentence"
)

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string
}

// SentenceConfig contains sentence segmentation settings.
type SentenceConfig struct {
	// Pattern is the regular expression source that matches one sentence.
	Pattern string
}

// PluginsConfig contains plugin host settings.
type PluginsConfig struct {
	Dir     string
	Enabled bool
}

// UIConfig contains display settings for the terminal editor.
type UIConfig struct {
	TabSize int
	// SelectionColor and StatusColor are color names or #rrggbb values.
	// Empty means reverse video.
	SelectionColor string
	StatusColor    string
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{Level: c.getStringOr("logging.level", "info")}
}

// Sentence returns type-safe access to sentence settings.
func (c *Config) Sentence() SentenceConfig {
	return SentenceConfig{Pattern: c.getStringOr("sentence.pattern", sentence.DefaultPatternSource)}
}

// Plugins returns plugin settings. A relative directory is resolved
// against the config file's directory; an empty one defaults to "plugins"
// under DefaultConfigDir.
func (c *Config) Plugins() PluginsConfig {
	dir := c.getStringOr("plugins.dir", "")
	switch {
	case dir == "":
		dir = filepath.Join(DefaultConfigDir(), "plugins")
	case !filepath.IsAbs(dir) && c.path != "":
		dir = filepath.Join(filepath.Dir(c.path), dir)
	}
	return PluginsConfig{Dir: dir, Enabled: c.getBoolOr("plugins.enabled", true)}
}

// Keymap returns the [keymap] overrides as action name to key spec.
func (c *Config) Keymap() map[string]string {
	m, err := c.GetStringMap("keymap")
	if err != nil {
		return map[string]string{}
	}
	return m
}

// UI returns display settings.
func (c *Config) UI() UIConfig {
	tab, err := c.GetInt("ui.tabSize")
	if err != nil || tab < 1 {
		tab = 4
	}
	return UIConfig{
		TabSize:        tab,
		SelectionColor: c.getStringOr("ui.selectionColor", ""),
		StatusColor:    c.getStringOr("ui.statusColor", ""),
	}
}

// DataFile returns the resolved plugin data file path.
func (c *Config) DataFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return resolveDataFile(c.path, c.data)
}

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		return defaultValue
	}
	return v
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks the merged settings and returns ValidationErrors listing
// every problem, or nil. An invalid sentence pattern is reported with its
// *sentence.PatternError as the cause.
func (c *Config) Validate() error {
	data := c.Merged()
	var errs ValidationErrors

	checkString := func(path string) (string, bool) {
		v, ok := getPath(data, path)
		if !ok {
			return "", false
		}
		s, ok := v.(string)
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: "expected a string", Value: v, Code: ErrCodeTypeMismatch})
		}
		return s, ok
	}

	if level, ok := checkString("logging.level"); ok && !logLevels[level] {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if src, ok := checkString("sentence.pattern"); ok {
		if err := sentence.Validate(src); err != nil {
			errs = append(errs, &ValidationError{
				Path:    "sentence.pattern",
				Message: "pattern does not compile",
				Value:   src,
				Code:    ErrCodeInvalidPattern,
				Err:     err,
			})
		}
	}

	if v, ok := getPath(data, "ui.tabSize"); ok {
		var n int64
		switch t := v.(type) {
		case int:
			n = int64(t)
		case int64:
			n = t
		default:
			errs = append(errs, &ValidationError{Path: "ui.tabSize", Message: "expected an integer", Value: v, Code: ErrCodeTypeMismatch})
			n = 4
		}
		if n < 1 || n > 16 {
			errs = append(errs, &ValidationError{Path: "ui.tabSize", Message: "must be between 1 and 16", Value: v, Code: ErrCodeOutOfRange})
		}
	}
	checkString("ui.selectionColor")
	checkString("ui.statusColor")

	checkString("data_file")
	checkString("plugins.dir")

	if v, ok := getPath(data, "keymap"); ok {
		km, isMap := v.(map[string]any)
		if !isMap {
			errs = append(errs, &ValidationError{Path: "keymap", Message: "expected a table", Value: v, Code: ErrCodeTypeMismatch})
		}
		actions := make([]string, 0, len(km))
		for action := range km {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		for _, action := range actions {
			path := "keymap." + action
			spec, ok := checkString(path)
			if !ok || spec == "" {
				continue
			}
			if _, err := key.Parse(spec); err != nil {
				errs = append(errs, &ValidationError{Path: path, Message: "invalid key spec", Value: spec, Code: ErrCodeInvalidKeys, Err: err})
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// BindSentence makes sc follow the sentence.pattern setting. The current
// value is applied at once; an invalid value is returned as a
// *ValidationError and sc keeps its pattern. Later invalid values are
// passed to the error handler and likewise leave sc unchanged.
func (c *Config) BindSentence(sc *sentence.Config) (*notify.Subscription, error) {
	apply := func() error {
		src := c.Sentence().Pattern
		if src == sc.Source() {
			return nil
		}
		if err := sc.SetSource(src); err != nil {
			return &ValidationError{
				Path:    "sentence.pattern",
				Message: "pattern does not compile",
				Value:   src,
				Code:    ErrCodeInvalidPattern,
				Err:     err,
			}
		}
		return nil
	}

	err := apply()
	sub := c.SubscribePath("sentence.pattern", func(notify.Change) {
		if err := apply(); err != nil {
			c.reportError(err)
		}
	})
	return sub, err
}
