package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/migrate/app/context"
	aerrors "go.hackfix.me/migrate/app/errors"
)

// The Config command manages the migrate configuration file.
type Config struct {
	Show struct{} `kong:"cmd,help='Print the resolved configuration values.'"`
	Save struct{} `kong:"cmd,help='Write the current settings to the configuration file.'"`
}

// Run the config command.
func (c *Config) Run(kctx *kong.Context, appCtx *actx.Context) error {
	cfg := appCtx.Config

	switch kctx.Args[1] {
	case "show":
		data := [][]string{
			{"config-file", cfg.Path()},
			{"dir", appCtx.Dir},
			{"state-file", appCtx.StateFile},
			{"db", appCtx.DBPath},
			{"env", appCtx.EnvTag},
		}
		if err := renderTable([]string{"Setting", "Value"}, data, appCtx.Stdout); err != nil {
			return aerrors.NewRuntimeError("failed rendering the configuration", err, "")
		}
	case "save":
		cfg.Dir = appCtx.Dir
		cfg.StateFile = appCtx.StateFile
		cfg.Database = appCtx.DBPath
		cfg.Environment = appCtx.EnvTag
		if err := cfg.Save(); err != nil {
			return aerrors.NewRuntimeError("failed saving the configuration", err, "")
		}
		fmt.Fprintln(appCtx.Stdout, cfg.Path())
	}

	return nil
}
