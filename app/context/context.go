package context

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migrate/app/config"
)

// Context contains common objects used by the application. It is passed around
// the application to avoid direct dependencies on external systems, and make
// testing easier.
type Context struct {
	Ctx     context.Context // global context
	FS      vfs.FileSystem  // filesystem
	Env     Environment     // process environment
	Logger  *slog.Logger    // global logger
	TimeNow func() time.Time

	// Standard streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Resolved run settings (config file values overridden by CLI flags)
	Config    *config.Config
	Dir       string // directory holding the migration scripts
	StateFile string // path of the completion state file
	DBPath    string // SQLite DSN the migrations run against
	EnvTag    string // environment tag passed to every migration action

	// Metadata
	Version *VersionInfo
}
