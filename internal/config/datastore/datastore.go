// Package datastore persists plugin settings in a JSON data file.
//
// The file may hold keys written by other tools; only the keys sentencenav
// owns are read or rewritten, everything else is preserved byte for byte.
package datastore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// KeyPatternSource is the data file key holding the sentence pattern.
const KeyPatternSource = "sentenceRegexSource"

// ErrInvalidData is returned when the data file is not valid JSON.
var ErrInvalidData = errors.New("datastore: data file is not valid JSON")

// Store reads and writes one JSON data file.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store for path. The file is created on first write.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// read returns the file contents, or "{}" when the file does not exist.
func (s *Store) read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "{}", nil
		}
		return "", fmt.Errorf("reading data file: %w", err)
	}
	if len(data) == 0 {
		return "{}", nil
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidData, s.path)
	}
	return string(data), nil
}

// Get returns the string stored under key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	res := gjson.Get(doc, gjson.Escape(key))
	if !res.Exists() {
		return "", false, nil
	}
	return res.String(), true, nil
}

// Set stores value under key, keeping every other key.
func (s *Store) Set(key, value string) error {
	return s.update(func(doc string) (string, error) {
		return sjson.Set(doc, gjson.Escape(key), value)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.update(func(doc string) (string, error) {
		return sjson.Delete(doc, gjson.Escape(key))
	})
}

// Keys returns the top-level keys in file order.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var keys []string
	gjson.Parse(doc).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys, nil
}

// PatternSource returns the stored sentence pattern, if any.
func (s *Store) PatternSource() (string, bool, error) {
	return s.Get(KeyPatternSource)
}

// SetPatternSource stores the sentence pattern.
func (s *Store) SetPatternSource(source string) error {
	return s.Set(KeyPatternSource, source)
}

// ResetPatternSource removes the stored pattern so the default applies.
func (s *Store) ResetPatternSource() error {
	return s.Delete(KeyPatternSource)
}

// update applies fn to the file and writes the result atomically.
func (s *Store) update(fn func(doc string) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	out, err := fn(doc)
	if err != nil {
		return fmt.Errorf("updating data file: %w", err)
	}
	return writeAtomic(s.path, []byte(out))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}
	return nil
}
