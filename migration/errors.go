package migration

import "errors"

// ErrUnknownTarget is returned when a run is given a target name that doesn't
// match any migration in the set. Nothing is executed on this path. The
// engine never terminates the process itself; callers decide whether this is
// fatal.
var ErrUnknownTarget = errors.New("unknown target migration")
