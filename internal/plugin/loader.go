package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader discovers Lua plugins on disk.
//
// A plugin is either a single file (name.lua) or a directory holding
// plugin.json, init.lua or plugin.lua. When two search paths hold a plugin
// of the same name, the earlier path wins.
type Loader struct {
	paths []string
}

// PluginInfo contains discovery information about a plugin.
type PluginInfo struct {
	Name     string
	Path     string
	Manifest *Manifest
	Error    error
}

// NewLoader creates a loader that searches paths in order.
func NewLoader(paths ...string) *Loader {
	return &Loader{paths: paths}
}

// Paths returns the search paths.
func (l *Loader) Paths() []string {
	return append([]string(nil), l.paths...)
}

// Discover finds all plugins in the search paths, sorted by name. Missing
// directories are skipped. Plugins that cannot be used are returned with
// Error set.
func (l *Loader) Discover() ([]*PluginInfo, error) {
	found := make(map[string]*PluginInfo)
	for _, base := range l.paths {
		if err := discoverIn(base, found); err != nil {
			return nil, err
		}
	}

	plugins := make([]*PluginInfo, 0, len(found))
	for _, info := range found {
		plugins = append(plugins, info)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name < plugins[j].Name
	})
	return plugins, nil
}

func discoverIn(base string, found map[string]*PluginInfo) error {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading plugin directory: %w", err)
	}

	for _, entry := range entries {
		var info *PluginInfo
		switch {
		case entry.IsDir():
			info = inspectPlugin(entry.Name(), filepath.Join(base, entry.Name()))
		case filepath.Ext(entry.Name()) == ".lua":
			name := strings.TrimSuffix(entry.Name(), ".lua")
			m := NewManifestMinimal(name, base)
			m.Main = entry.Name()
			info = &PluginInfo{Name: name, Path: base, Manifest: m}
			if err := m.Validate(); err != nil {
				info.Manifest, info.Error = nil, err
			}
		default:
			continue
		}
		if _, exists := found[info.Name]; !exists {
			found[info.Name] = info
		}
	}
	return nil
}

// inspectPlugin examines a plugin directory.
func inspectPlugin(name, dir string) *PluginInfo {
	info := &PluginInfo{Name: name, Path: dir}

	manifestPath := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			info.Error = fmt.Errorf("invalid manifest: %w", err)
			return info
		}
		info.Manifest = m
		info.Name = m.Name
		return info
	}

	for _, main := range []string{"init.lua", "plugin.lua"} {
		if _, err := os.Stat(filepath.Join(dir, main)); err == nil {
			m := NewManifestMinimal(name, dir)
			m.Main = main
			if err := m.Validate(); err != nil {
				info.Error = err
				return info
			}
			info.Manifest = m
			return info
		}
	}

	info.Error = ErrNoEntryPoint
	return info
}

// Find returns the plugin called name.
func (l *Loader) Find(name string) (*PluginInfo, error) {
	plugins, err := l.Discover()
	if err != nil {
		return nil, err
	}
	for _, info := range plugins {
		if info.Name == name {
			return info, info.Error
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
}
