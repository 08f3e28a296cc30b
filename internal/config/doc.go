// Package config loads and serves sentencenav settings.
//
// Settings come from four sources, later ones overriding earlier ones:
//
//  1. built-in defaults
//  2. the config file (TOML or YAML, ~/.config/sentencenav/config.toml)
//  3. the plugin data file (JSON, key sentenceRegexSource)
//  4. SENTENCENAV_* environment variables
//
// The recognised settings are:
//
//	[logging]  level = "info"
//	[sentence] pattern = "<regular expression>"
//	[keymap]   "<action>" = "<key spec>"
//	[plugins]  dir = "plugins", enabled = true
//	data_file = "data.json"
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment loading
//   - datastore: the JSON plugin data file
//   - notify: change notification
//   - watcher: live reload on file changes
//
// # Basic Usage
//
//	cfg := config.New(config.WithPath(config.DefaultPath()))
//	if err := cfg.Load(ctx); err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	sub, err := cfg.BindSentence(sentences)
package config
