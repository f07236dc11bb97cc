// Package store persists migration completion state as a JSON file on a
// virtual filesystem.
//
// The durable shape is a single object holding the titles of all completed
// migrations, in application order:
//
//	{"migrationsDone": ["001-create-users", "002-add-index"]}
//
// A missing file means no migration has completed yet. The legacy shape, a
// "migrations" list of objects with a "title" field, is still accepted on
// read and rewritten in the current shape on the next save.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

type persistedState struct {
	MigrationsDone []string          `json:"migrationsDone"`
	Migrations     []legacyMigration `json:"migrations,omitempty"`
}

type legacyMigration struct {
	Title string `json:"title"`
}

// FileStore reads and writes completion state at a fixed path.
type FileStore struct {
	fs   vfs.FileSystem
	path string
}

// NewFileStore creates a FileStore backed by the given filesystem and path.
func NewFileStore(fs vfs.FileSystem, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the filesystem path where the state is stored.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the completion state. A missing or empty file is a fresh start,
// not an error.
func (s *FileStore) Load(_ context.Context) ([]string, error) {
	data, err := vfs.ReadFile(s.fs, s.path)
	if err != nil {
		if vfs.IsErrNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed reading state file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var state persistedState
	if err = json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed parsing state file %s: %w", s.path, err)
	}

	if state.MigrationsDone == nil && len(state.Migrations) > 0 {
		done := make([]string, len(state.Migrations))
		for i, m := range state.Migrations {
			done[i] = m.Title
		}
		return done, nil
	}

	return state.MigrationsDone, nil
}

// Save writes the completion state, replacing any previous content.
func (s *FileStore) Save(_ context.Context, done []string) error {
	if done == nil {
		done = []string{}
	}

	data, err := json.MarshalIndent(persistedState{MigrationsDone: done}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed serializing state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err = s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed creating state directory: %w", err)
		}
	}
	if err = vfs.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed writing state file: %w", err)
	}

	return nil
}
