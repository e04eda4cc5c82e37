// Package history persists the measurement cache as an indented JSON file.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/botforge-pro/loc-graph-action/model"
)

// Store reads and writes the cache file. Writes always replace the whole
// file; the caller guarantees single-writer usage.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the cache. A missing file is an empty history; malformed
// content is an error, never silently discarded.
func (s *Store) Load() (model.History, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var hist model.History
	if err := json.Unmarshal(b, &hist); err != nil {
		return nil, fmt.Errorf("history: malformed cache file %s: %w", s.path, err)
	}
	return hist, nil
}

// Save writes the full history, creating the containing directory if needed.
// Output is human-readable: indented, with non-ASCII content left unescaped.
func (s *Store) Save(hist model.History) error {
	dir, _ := filepath.Split(s.path)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(hist); err != nil {
		return err
	}
	return os.WriteFile(s.path, buf.Bytes(), 0644)
}
