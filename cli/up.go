package cli

import (
	actx "go.hackfix.me/migrate/app/context"
	"go.hackfix.me/migrate/migration"
)

// The Up command applies pending migrations, in catalog order, through the
// named migration or through the end of the catalog.
type Up struct {
	Name string `arg:"" optional:"" help:"Title of the last migration to apply. All pending migrations are applied if omitted."`
}

// Run the up command.
func (c *Up) Run(appCtx *actx.Context) error {
	return runMigrations(appCtx, migration.DirectionUp, c.Name)
}
