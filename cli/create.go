package cli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/migrate/app/context"
	aerrors "go.hackfix.me/migrate/app/errors"
	"go.hackfix.me/migrate/source"
)

var createNameRx = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// The Create command scaffolds the up and down SQL files for a new migration,
// numbered one past the highest existing migration id.
type Create struct {
	Name string `arg:"" help:"Short name of the new migration, e.g. create-users."`
}

// Run the create command.
func (c *Create) Run(appCtx *actx.Context) error {
	if !createNameRx.MatchString(c.Name) {
		return aerrors.NewRuntimeError(
			fmt.Sprintf("invalid migration name '%s'", c.Name), nil,
			"only letters, digits, '-' and '_' are allowed")
	}

	id, err := source.NextID(appCtx.FS, appCtx.Dir)
	if err != nil {
		return aerrors.NewRuntimeError("failed determining the next migration id", err, "")
	}

	if err = appCtx.FS.MkdirAll(appCtx.Dir, 0o755); err != nil {
		return aerrors.NewRuntimeError("failed creating the migrations directory", err, "")
	}

	title := fmt.Sprintf("%03d-%s", id, c.Name)
	created := appCtx.TimeNow().UTC().Format(time.RFC3339)
	for _, side := range []string{"up", "down"} {
		path := filepath.Join(appCtx.Dir, fmt.Sprintf("%s.%s.sql", title, side))
		content := fmt.Sprintf("-- %s (%s)\n-- created: %s\n", title, side, created)
		if err = vfs.WriteFile(appCtx.FS, path, []byte(content), 0o644); err != nil {
			return aerrors.NewRuntimeError(
				fmt.Sprintf("failed writing %s", path), err, "")
		}
		fmt.Fprintln(appCtx.Stdout, path)
	}

	return nil
}
