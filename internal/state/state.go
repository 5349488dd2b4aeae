// Package state persists the application state and user preferences as
// JSON documents with read-modify-write semantics.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// State is the singleton application state document.
// CurrentTheme may dangle if the theme was deleted after it was set;
// readers must treat that as "theme not found".
type State struct {
	CurrentTheme     string    `json:"currentTheme"`
	LastSwitched     time.Time `json:"lastSwitched"`
	CurrentWallpaper string    `json:"currentWallpaper,omitempty"`
}

// StateStore owns the state document. All access goes through Load and
// Update so external readers never observe partial writes.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a store for the document at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load returns the current state. A missing document is created with
// defaults on first read, so no code path observes an absent state.
func (s *StateStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Update applies fn to the current state under the store lock and
// persists the result.
func (s *StateStore) Update(fn func(*State)) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	fn(state)
	if err := writeDocument(s.path, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *StateStore) loadLocked() (*State, error) {
	state := &State{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading state document: %w", err)
		}
		// First run: persist defaults immediately.
		if err := writeDocument(s.path, state); err != nil {
			return nil, err
		}
		return state, nil
	}

	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing state document: %w", err)
	}
	return state, nil
}

// writeDocument marshals v and replaces the file at path atomically
// (write to a temp file in the same directory, then rename).
func writeDocument(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing document: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting document permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}
