package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

const tomlConfig = `
data_file = "data.json"

[logging]
level = "debug"

[sentence]
pattern = '[^.!?]+[.!?]?'

[keymap]
"sentence.deleteToStart" = "Ctrl+Shift+Backspace"
`

func TestTOMLLoaderLoad(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", tomlConfig)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, _ := getByPath(config, "sentence", "pattern"); val != "[^.!?]+[.!?]?" {
		t.Errorf("sentence.pattern = %v", val)
	}
	if val, _ := getByPath(config, "keymap", "sentence.deleteToStart"); val != "Ctrl+Shift+Backspace" {
		t.Errorf("keymap binding = %v", val)
	}
	if val, _ := getByPath(config, "data_file"); val != "data.json" {
		t.Errorf("data_file = %v", val)
	}
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestTOMLLoaderParseError(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[logging\nlevel = 1"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line == 0 {
		t.Error("ParseError should carry a line number")
	}
}

func TestYAMLLoader(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
logging:
  level: warn
sentence:
  pattern: "[^.]+"
limits:
  undo: 50
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, _ := getByPath(config, "logging", "level"); val != "warn" {
		t.Errorf("logging.level = %v", val)
	}
	if val, _ := getByPath(config, "limits", "undo"); val != int64(50) {
		t.Errorf("limits.undo = %v (%T), want int64 50", val, val)
	}

	if _, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("a: [1,")); err == nil {
		t.Error("expected parse error")
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a/config.toml", "*loader.TOMLLoader", false},
		{"config.YML", "*loader.YAMLLoader", false},
		{"config.yaml", "*loader.YAMLLoader", false},
		{"config.ini", "", true},
	}
	for _, tt := range tests {
		l, err := ForPath(nil, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v", tt.path, err)
			continue
		}
		if err != nil {
			continue
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "*loader.TOMLLoader" {
				t.Errorf("ForPath(%q) = TOML loader", tt.path)
			}
		case *YAMLLoader:
			if tt.want != "*loader.YAMLLoader" {
				t.Errorf("ForPath(%q) = YAML loader", tt.path)
			}
		}
	}
}

func TestDeepMergeAndClone(t *testing.T) {
	base := map[string]any{
		"logging":  map[string]any{"level": "info", "prefix": "x"},
		"sentence": map[string]any{"pattern": "a"},
	}
	over := map[string]any{"logging": map[string]any{"level": "debug"}}

	clone := Clone(base)
	merged := DeepMerge(base, over)

	if val, _ := getByPath(merged, "logging", "level"); val != "debug" {
		t.Errorf("merged level = %v", val)
	}
	if val, _ := getByPath(merged, "logging", "prefix"); val != "x" {
		t.Errorf("merged prefix = %v", val)
	}
	if val, _ := getByPath(clone, "logging", "level"); val != "info" {
		t.Errorf("clone changed with merge: %v", val)
	}
}
