// Package source builds a migration catalog from SQL files on a filesystem.
//
// Files are named {id}-{name}.{up|down}.sql, e.g. 001-create-users.up.sql
// and 001-create-users.down.sql. The id is a positive integer and defines
// the catalog order; the full {id}-{name} prefix is the migration title.
// Every migration must have both an up and a down script.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migrate/db"
	"go.hackfix.me/migrate/migration"
)

var (
	// ErrDuplicateMigration means two files claim the same id with different
	// names.
	ErrDuplicateMigration = errors.New("duplicate migration id")
	// ErrIncompleteMigration means a migration is missing its up or down
	// counterpart.
	ErrIncompleteMigration = errors.New("incomplete migration")
)

var fileNameRx = regexp.MustCompile(`^(\d+)-(.+)\.(up|down)\.sql$`)

type scriptPair struct {
	id    uint64
	title string
	up    string
	down  string
}

// Load reads the migration scripts in dir and returns the catalog in
// ascending id order. Each migration's actions execute the corresponding
// script against q; the script file is read at execution time, so edits made
// between load and run are picked up.
func Load(fsys vfs.FileSystem, dir string, q db.Querier, env string) ([]*migration.Migration, error) {
	entries, err := vfs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed reading migrations directory %s: %w", dir, err)
	}

	pairs := map[uint64]*scriptPair{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := fileNameRx.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}

		id, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed parsing migration id in %s: %w", entry.Name(), err)
		}
		title := fmt.Sprintf("%s-%s", m[1], m[2])

		pair, ok := pairs[id]
		if !ok {
			pair = &scriptPair{id: id, title: title}
			pairs[id] = pair
		} else if pair.title != title {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateMigration, pair.title, title)
		}

		path := filepath.Join(dir, entry.Name())
		if m[3] == "up" {
			pair.up = path
		} else {
			pair.down = path
		}
	}

	sorted := make([]*scriptPair, 0, len(pairs))
	for _, pair := range pairs {
		if pair.up == "" || pair.down == "" {
			side := "down"
			if pair.up == "" {
				side = "up"
			}
			return nil, fmt.Errorf("%w: %q has no %s script", ErrIncompleteMigration, pair.title, side)
		}
		sorted = append(sorted, pair)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].id < sorted[j].id
	})

	migrations := make([]*migration.Migration, len(sorted))
	for i, pair := range sorted {
		migrations[i] = &migration.Migration{
			Title:       pair.title,
			Up:          runScript(fsys, pair.up, q),
			Down:        runScript(fsys, pair.down, q),
			Environment: env,
		}
	}

	return migrations, nil
}

func runScript(fsys vfs.FileSystem, path string, q db.Querier) migration.Func {
	return func(ctx context.Context, _ string) error {
		script, err := vfs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed reading migration script %s: %w", path, err)
		}
		if _, err = q.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("failed executing %s: %w", path, err)
		}
		return nil
	}
}

// NextID returns the id the next created migration should use: one past the
// highest id currently in dir, starting from 1. A missing directory counts
// as empty.
func NextID(fsys vfs.FileSystem, dir string) (uint64, error) {
	entries, err := vfs.ReadDir(fsys, dir)
	if err != nil {
		if vfs.IsErrNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed reading migrations directory %s: %w", dir, err)
	}

	var maxID uint64
	for _, entry := range entries {
		m := fileNameRx.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		if id > maxID {
			maxID = id
		}
	}

	return maxID + 1, nil
}
