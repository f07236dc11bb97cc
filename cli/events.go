package cli

import (
	"log/slog"

	"go.hackfix.me/migrate/migration"
)

// logEvents publishes migration lifecycle notifications to the application
// logger.
type logEvents struct {
	logger *slog.Logger
}

var _ migration.Events = (*logEvents)(nil)

func (e *logEvents) Load() {
	e.logger.Debug("loading completion state")
}

func (e *logEvents) Save() {
	e.logger.Debug("saving completion state")
}

func (e *logEvents) Migration(m *migration.Migration, dir migration.Direction) {
	attrs := []any{"title", m.Title, "direction", dir.String()}
	if m.Environment != "" {
		attrs = append(attrs, "env", m.Environment)
	}
	e.logger.Info("running migration", attrs...)
}

func (e *logEvents) Complete() {
	e.logger.Info("migrations complete")
}
