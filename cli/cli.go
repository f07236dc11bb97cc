package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"go.hackfix.me/migrate/app/config"
	actx "go.hackfix.me/migrate/app/context"
)

// CLI is the command line interface of migrate.
type CLI struct {
	Up     Up     `kong:"cmd,help='Apply pending migrations.'"`
	Down   Down   `kong:"cmd,help='Undo applied migrations.'"`
	Status Status `kong:"cmd,help='Show the state of every known migration.'"`
	Create Create `kong:"cmd,help='Scaffold SQL files for a new migration.'"`
	Config Config `kong:"cmd,help='Manage the migrate configuration.'"`

	Dir       string `kong:"help='Directory holding the migration scripts.'"`
	StateFile string `kong:"help='Path of the file recording completed migrations.'"`
	DB        string `kong:"name='db',help='SQLite database the migrations run against.'"`
	Env       string `kong:"help='Environment tag passed to every migration action.'"`

	Log struct {
		Level slog.Level `enum:"DEBUG,INFO,WARN,ERROR" default:"INFO" help:"Set the app logging level."`
	} `embed:"" prefix:"log-"`
	// NOTE: Deliberately not using kong.ConfigFlag, so that configuration can be
	// managed independently from the CLI.
	ConfigFile string           `kong:"default='${configFile}',help='Path to the migrate configuration file.'"`
	Version    kong.VersionFlag `kong:"help='Output version and exit.'"`

	kong *kong.Kong
	kctx *kong.Context
}

// New initializes the command-line interface.
func New(configFilePath, version string) (*CLI, error) {
	c := &CLI{}
	kparser, err := kong.New(c,
		kong.Name("migrate"),
		kong.UsageOnError(),
		kong.DefaultEnvars("MIGRATE"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"configFile": configFilePath,
			"version":    version,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating the Kong parser: %w", err)
	}

	c.kong = kparser

	return c, nil
}

// Execute starts the command execution. Parse must be called before this method.
func (c *CLI) Execute(appCtx *actx.Context) error {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	c.kong.Stdout = appCtx.Stdout
	c.kong.Stderr = appCtx.Stderr

	//nolint:wrapcheck // This is fine.
	return c.kctx.Run(appCtx)
}

// Parse the given command line arguments. This method must be called before
// Execute.
func (c *CLI) Parse(args []string) error {
	kctx, err := c.kong.Parse(args)
	if err != nil {
		return fmt.Errorf("failed parsing CLI arguments: %w", err)
	}
	c.kctx = kctx

	return nil
}

// Command returns the full path of the executed command.
func (c *CLI) Command() string {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	cmdPath := []string{}
	for _, p := range c.kctx.Path {
		if p.Command != nil {
			cmdPath = append(cmdPath, p.Command.Name)
		}
	}

	return strings.Join(cmdPath, " ")
}

// ApplyConfig applies configuration values to the CLI, but only if they weren't
// already set.
func (c *CLI) ApplyConfig(cfg *config.Config) {
	if c.Dir == "" {
		c.Dir = cfg.Dir
	}
	if c.StateFile == "" {
		c.StateFile = cfg.StateFile
	}
	if c.DB == "" {
		c.DB = cfg.Database
	}
	if c.Env == "" {
		c.Env = cfg.Environment
	}
}
