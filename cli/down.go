package cli

import (
	actx "go.hackfix.me/migrate/app/context"
	"go.hackfix.me/migrate/migration"
)

// The Down command undoes applied migrations in reverse application order,
// back through the named migration or back to the start of the catalog.
type Down struct {
	Name string `arg:"" optional:"" help:"Title of the last migration to undo. All applied migrations are undone if omitted."`
}

// Run the down command.
func (c *Down) Run(appCtx *actx.Context) error {
	return runMigrations(appCtx, migration.DirectionDown, c.Name)
}
