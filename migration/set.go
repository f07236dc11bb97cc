package migration

import (
	"context"
	"fmt"
	"slices"
)

// Store persists the titles of completed migrations between runs. Load must
// report a missing record as an empty list with no error; any other read or
// parse failure aborts the run before anything executes.
type Store interface {
	Load(ctx context.Context) (done []string, err error)
	Save(ctx context.Context, done []string) error
}

// Set tracks an ordered catalog of migrations together with their completion
// state, and runs them one at a time in either direction. A Set drives a
// single run at a time; it is not safe for concurrent use.
type Set struct {
	migrations []*Migration
	// done holds the titles confirmed applied, in application order. It is
	// hydrated from the store at the start of every run. position is kept in
	// lockstep with len(done); down runs use it as an index into the catalog.
	done     []string
	doneIdx  map[string]struct{}
	position int

	store  Store
	events Events
}

// Option configures a Set.
type Option func(*Set)

// WithEvents sets the observer lifecycle notifications are published to.
func WithEvents(ev Events) Option {
	return func(s *Set) {
		s.events = ev
	}
}

// New creates a migration Set over the given catalog. The order of migrations
// is the execution order and must not change between runs against the same
// store.
func New(store Store, migrations []*Migration, opts ...Option) *Set {
	s := &Set{
		migrations: migrations,
		store:      store,
		events:     NopEvents{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add appends a migration to the end of the catalog.
func (s *Set) Add(m *Migration) {
	s.migrations = append(s.migrations, m)
}

// Up runs all pending migrations through target, or through the end of the
// catalog if target is empty. Migrations already recorded as done are
// skipped. The first action failure halts the run; completion state is only
// persisted after the whole batch has succeeded.
func (s *Set) Up(ctx context.Context, target string) error {
	return s.run(ctx, DirectionUp, target)
}

// Down undoes applied migrations in reverse application order, from the
// current position back through target, or back to the start of the catalog
// if target is empty.
func (s *Set) Down(ctx context.Context, target string) error {
	return s.run(ctx, DirectionDown, target)
}

// Required loads the completion state and returns the migrations a run in the
// given direction would execute, in execution order, without running anything
// or persisting any state.
func (s *Set) Required(ctx context.Context, dir Direction, target string) ([]*Migration, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.pending(dir, target)
}

// State describes one migration's completion status.
type State struct {
	Title   string
	Applied bool
	// Missing is set for titles recorded as done that no longer have a
	// matching catalog entry.
	Missing bool
}

// Status loads the completion state and reports it for every catalog entry,
// in catalog order, followed by any recorded titles missing from the catalog.
func (s *Set) Status(ctx context.Context) ([]State, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	states := make([]State, 0, len(s.migrations))
	for _, m := range s.migrations {
		_, applied := s.doneIdx[m.Title]
		states = append(states, State{Title: m.Title, Applied: applied})
	}
	for _, title := range s.done {
		if indexOf(s.migrations, title) < 0 {
			states = append(states, State{Title: title, Applied: true, Missing: true})
		}
	}

	return states, nil
}

func (s *Set) run(ctx context.Context, dir Direction, target string) error {
	if err := s.load(ctx); err != nil {
		return err
	}

	selected, err := s.pending(dir, target)
	if err != nil {
		return err
	}

	for _, m := range selected {
		s.events.Migration(m, dir)

		var fn Func
		switch dir {
		case DirectionUp:
			fn = m.Up
		case DirectionDown:
			fn = m.Down
		}
		if fn != nil {
			if err = fn(ctx, m.Environment); err != nil {
				return fmt.Errorf("migration %q %s failed: %w", m.Title, dir, err)
			}
		}

		// Bookkeeping advances one migration at a time, only after its
		// action succeeded. A halted run's state describes exactly what has
		// been applied.
		s.record(m, dir)
	}

	s.events.Complete()
	s.events.Save()
	if err = s.store.Save(ctx, s.done); err != nil {
		return fmt.Errorf("failed saving completion state: %w", err)
	}

	return nil
}

func (s *Set) load(ctx context.Context) error {
	s.events.Load()
	done, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed loading completion state: %w", err)
	}

	s.done = slices.Clone(done)
	s.doneIdx = make(map[string]struct{}, len(done))
	for _, title := range done {
		s.doneIdx[title] = struct{}{}
	}
	s.position = len(done)

	return nil
}

func (s *Set) pending(dir Direction, target string) ([]*Migration, error) {
	switch dir {
	case DirectionDown:
		return selectDown(s.migrations, s.position, target)
	default:
		return selectUp(s.migrations, s.doneIdx, target)
	}
}

func (s *Set) record(m *Migration, dir Direction) {
	switch dir {
	case DirectionUp:
		s.done = append(s.done, m.Title)
		s.doneIdx[m.Title] = struct{}{}
		s.position++
	case DirectionDown:
		if i := slices.Index(s.done, m.Title); i >= 0 {
			s.done = slices.Delete(s.done, i, i+1)
		}
		delete(s.doneIdx, m.Title)
		s.position--
	}
}
