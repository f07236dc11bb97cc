package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"

	"go.hackfix.me/migrate/app/config"
	actx "go.hackfix.me/migrate/app/context"
	"go.hackfix.me/migrate/cli"
)

// App is the application.
type App struct {
	name string
	ctx  *actx.Context
	cli  *cli.CLI
	// the logging level is set via the CLI, if the app was initialized with the
	// WithLogger option.
	logLevel *slog.LevelVar
}

// New initializes a new application.
func New(name, configFile string, opts ...Option) (*App, error) {
	version, err := actx.GetVersion()
	if err != nil {
		return nil, err
	}

	defaultCtx := &actx.Context{
		Ctx:     context.Background(),
		FS:      memoryfs.New(),
		Logger:  slog.Default(),
		TimeNow: time.Now,
		Version: version,
	}
	app := &App{name: name, ctx: defaultCtx}

	for _, opt := range opts {
		opt(app)
	}

	ver := fmt.Sprintf("%s %s", app.name, app.ctx.Version.String())
	app.cli, err = cli.New(configFile, ver)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run initializes the application environment and starts execution of the
// application.
func (app *App) Run(args []string) error {
	if err := app.cli.Parse(args); err != nil {
		return err
	}

	if app.logLevel != nil {
		app.logLevel.Set(app.cli.Log.Level)
		slog.SetLogLoggerLevel(app.cli.Log.Level)
	}
	app.ctx.Logger.Debug("executing command", "command", app.cli.Command())

	// Flags win over the process environment, which wins over the config file.
	if app.cli.Env == "" && app.ctx.Env != nil {
		app.cli.Env = app.ctx.Env.Get("MIGRATE_ENV")
	}

	cfg := config.NewConfig(app.ctx.FS, app.cli.ConfigFile)
	if err := cfg.Load(); err != nil {
		return err
	}
	cfg.SetDefaults()
	app.cli.ApplyConfig(cfg)

	app.ctx.Config = cfg
	app.ctx.Dir = app.cli.Dir
	app.ctx.StateFile = app.cli.StateFile
	app.ctx.DBPath = app.cli.DB
	app.ctx.EnvTag = app.cli.Env

	if err := app.cli.Execute(app.ctx); err != nil {
		return err
	}

	return nil
}
