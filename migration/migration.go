package migration

import "context"

// Func is a single migration action. It receives the environment tag of its
// Migration, and must return nil only once the work it describes has fully
// taken effect.
type Func func(ctx context.Context, env string) error

// Migration describes one reversible, named unit of work. The title is its
// identity: it is what gets recorded in the completion state, and what target
// names are matched against. Execution order is exclusively the order in
// which migrations were added to a Set; titles are never re-sorted.
type Migration struct {
	Title string
	Up    Func
	Down  Func
	// Environment is an optional tag passed through to both actions unchanged.
	Environment string
}

// Direction of a migration run.
type Direction int

// Directions.
const (
	DirectionUp   Direction = 1
	DirectionDown Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	}
	return "invalid"
}
