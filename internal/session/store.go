package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the state file inside the library state directory.
const FileName = "state.json"

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists into stateDir (normally
// <library>/.lawtext).
func NewStore(stateDir string) *Store {
	return &Store{
		path: filepath.Join(stateDir, FileName),
	}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Load reads the session state from disk. A missing file yields Default().
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("read session: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("decode session %s: %w", s.path, err)
	}

	return state, nil
}

// Save writes the session state to disk.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
