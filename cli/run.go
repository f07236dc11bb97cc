package cli

import (
	"errors"

	"github.com/nrednav/cuid2"

	actx "go.hackfix.me/migrate/app/context"
	aerrors "go.hackfix.me/migrate/app/errors"
	"go.hackfix.me/migrate/db"
	"go.hackfix.me/migrate/migration"
	"go.hackfix.me/migrate/source"
	"go.hackfix.me/migrate/store"
)

// newSet assembles the migration set for one run: the catalog from the
// scripts directory, the database they run against, and the completion state
// file. The returned DB must be closed by the caller.
func newSet(appCtx *actx.Context, runID string) (*migration.Set, *db.DB, error) {
	d, err := db.Open(appCtx.Ctx, appCtx.DBPath)
	if err != nil {
		return nil, nil, aerrors.NewRuntimeError("failed opening database", err, "")
	}

	migrations, err := source.Load(appCtx.FS, appCtx.Dir, d, appCtx.EnvTag)
	if err != nil {
		_ = d.Close()
		return nil, nil, aerrors.NewRuntimeError("failed loading migrations", err, "")
	}

	st := store.NewFileStore(appCtx.FS, appCtx.StateFile)
	logger := appCtx.Logger.With("run_id", runID, "state_file", st.Path())
	set := migration.New(st, migrations, migration.WithEvents(&logEvents{logger: logger}))

	return set, d, nil
}

func runMigrations(appCtx *actx.Context, dir migration.Direction, target string) error {
	runID := cuid2.Generate()
	set, d, err := newSet(appCtx, runID)
	if err != nil {
		return err
	}
	defer d.Close()

	switch dir {
	case migration.DirectionUp:
		err = set.Up(appCtx.Ctx, target)
	case migration.DirectionDown:
		err = set.Down(appCtx.Ctx, target)
	}
	if err != nil {
		if errors.Is(err, migration.ErrUnknownTarget) {
			return aerrors.NewRuntimeError("no migrations were run", err,
				"run 'migrate status' to list known migrations")
		}
		return aerrors.With(err, "run_id", runID, "direction", dir.String())
	}

	return nil
}
