package migration

// Events receives lifecycle notifications from a Set over the course of a
// run. Implementations must not block; they are called synchronously between
// steps.
type Events interface {
	// Load is emitted before the completion state is read.
	Load()
	// Save is emitted before the completion state is written.
	Save()
	// Migration is emitted before each migration action is invoked.
	Migration(m *Migration, dir Direction)
	// Complete is emitted after the last selected migration has finished,
	// before the state is saved.
	Complete()
}

// NopEvents discards all notifications. It is the default for a Set created
// without WithEvents.
type NopEvents struct{}

var _ Events = NopEvents{}

func (NopEvents) Load()                               {}
func (NopEvents) Save()                               {}
func (NopEvents) Migration(_ *Migration, _ Direction) {}
func (NopEvents) Complete()                           {}
