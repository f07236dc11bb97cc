package migration

import "fmt"

// indexOf returns the position of the migration titled target, or -1.
func indexOf(migrations []*Migration, target string) int {
	for i, m := range migrations {
		if m.Title == target {
			return i
		}
	}
	return -1
}

// selectUp computes the migrations an up run must execute: every migration
// from the start of the catalog through target (inclusive), minus the ones
// already recorded in done, in catalog order. An empty target means "through
// the end".
func selectUp(migrations []*Migration, done map[string]struct{}, target string) ([]*Migration, error) {
	cutoff := len(migrations) - 1
	if target != "" {
		cutoff = indexOf(migrations, target)
		if cutoff < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
		}
	}

	var selected []*Migration
	for _, m := range migrations[:cutoff+1] {
		if _, applied := done[m.Title]; applied {
			continue
		}
		selected = append(selected, m)
	}

	return selected, nil
}

// selectDown computes the migrations a down run must execute: the catalog
// entries from target (inclusive) up to but excluding position, in reverse
// order, so they are undone opposite to how they were applied. An empty
// target means "everything recorded by position". Unlike selectUp this is
// index-based: it trusts position to describe the currently applied catalog
// prefix.
func selectDown(migrations []*Migration, position int, target string) ([]*Migration, error) {
	start := 0
	if target != "" {
		start = indexOf(migrations, target)
		if start < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
		}
	}

	if position > len(migrations) {
		position = len(migrations)
	}
	if start >= position {
		return nil, nil
	}

	selected := make([]*Migration, 0, position-start)
	for i := position - 1; i >= start; i-- {
		selected = append(selected, migrations[i])
	}

	return selected, nil
}
