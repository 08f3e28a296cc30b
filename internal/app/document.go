package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/sentencenav/internal/engine"
)

// Document is the file being edited together with its engine. It
// implements execctx.DocumentInterface for the file handler.
type Document struct {
	mu   sync.RWMutex
	path string

	Engine *engine.Engine
}

// OpenDocument loads path into a new engine. A file that does not exist
// yet opens as an empty document that Save creates. An empty path gives a
// scratch document.
func OpenDocument(path string, readOnly bool) (*Document, error) {
	var opts []engine.Option
	if readOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	if path == "" {
		return &Document{Engine: engine.New(opts...)}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	f, err := os.Open(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Document{path: abs, Engine: engine.New(opts...)}, nil
	case err != nil:
		return nil, &FileError{Op: "open", Path: abs, Err: err}
	}
	defer f.Close()

	eng, err := engine.NewFromReader(f, opts...)
	if err != nil {
		return nil, &FileError{Op: "open", Path: abs, Err: err}
	}
	return &Document{path: abs, Engine: eng}, nil
}

// NewDocument wraps content in a scratch document.
func NewDocument(content string) *Document {
	return &Document{Engine: engine.New(engine.WithContent(content))}
}

// Path returns the absolute file path, or "" for a scratch document.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Name returns the base name of the file, or "" for a scratch document.
func (d *Document) Name() string {
	p := d.Path()
	if p == "" {
		return ""
	}
	return filepath.Base(p)
}

// IsScratch reports whether the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path() == ""
}

// Save writes the engine content to Path.
func (d *Document) Save() error {
	p := d.Path()
	if p == "" {
		return ErrNoFilePath
	}
	return d.write(p)
}

// SaveAs writes the engine content to path and makes it the document's
// file.
func (d *Document) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := d.write(abs); err != nil {
		return err
	}
	d.mu.Lock()
	d.path = abs
	d.mu.Unlock()
	return nil
}

// write replaces path atomically through a temporary file in the same
// directory.
func (d *Document) write(path string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return &FileError{Op: "save", Path: path, Err: err}
	}

	if _, err := d.Engine.WriteTo(tmp); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &FileError{Op: "save", Path: path, Err: err}
	}

	d.Engine.MarkSaved()
	return nil
}

// String returns the display name used in logs.
func (d *Document) String() string {
	if n := d.Name(); n != "" {
		return n
	}
	return "[scratch]"
}
