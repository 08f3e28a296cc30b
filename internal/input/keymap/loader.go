package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ApplyOverrides rebinds actions from a map of action name to key
// specification, as found in the [keymap] configuration section. An empty
// specification unbinds the action. All overrides are attempted; the
// returned error joins every failure.
func (k *Keymap) ApplyOverrides(overrides map[string]string) error {
	actions := make([]string, 0, len(overrides))
	for action := range overrides {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	var errs []error
	for _, action := range actions {
		keys := overrides[action]
		if keys == "" {
			k.Unbind(action)
			continue
		}
		if err := k.Bind(action, keys); err != nil {
			errs = append(errs, fmt.Errorf("keymap %s: %w", action, err))
		}
	}
	return errors.Join(errs...)
}

type keymapFile struct {
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Bindings []Binding `json:"bindings"`
}

// LoadFile loads a keymap from a JSON file.
func LoadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader loads a keymap from JSON.
func LoadReader(r io.Reader) (*Keymap, error) {
	var cfg keymapFile
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := NewKeymap(cfg.Name)
	km.Source = cfg.Source
	for _, b := range cfg.Bindings {
		if err := km.Add(b); err != nil {
			return nil, err
		}
	}
	return km, nil
}
