package cli

import (
	"github.com/nrednav/cuid2"

	actx "go.hackfix.me/migrate/app/context"
	aerrors "go.hackfix.me/migrate/app/errors"
)

// The Status command lists every known migration with its completion state,
// without executing anything.
type Status struct{}

// Run the status command.
func (c *Status) Run(appCtx *actx.Context) error {
	runID := cuid2.Generate()
	set, d, err := newSet(appCtx, runID)
	if err != nil {
		return err
	}
	defer d.Close()

	states, err := set.Status(appCtx.Ctx)
	if err != nil {
		return aerrors.NewWithCause("failed reading migration status", err, "run_id", runID)
	}

	data := make([][]string, len(states))
	for i, st := range states {
		status := "pending"
		switch {
		case st.Missing:
			status = "missing"
		case st.Applied:
			status = "applied"
		}
		data[i] = []string{st.Title, status}
	}

	if len(data) > 0 {
		return renderTable([]string{"Migration", "Status"}, data, appCtx.Stdout)
	}

	return nil
}
