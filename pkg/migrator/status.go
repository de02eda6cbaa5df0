package migrator

import (
	"os"

	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migration"
	"github.com/waymark-sh/waymark/pkg/state"
)

// Status is a point-in-time snapshot of a migrations directory.
type Status struct {
	// MigrationsDir is the resolved directory the snapshot describes.
	MigrationsDir string

	// DirExists is false when the directory is missing. All other fields
	// are zero in that case.
	DirExists bool

	// Available holds the discovered migrations in ascending version order.
	Available []migration.Migration

	// Applied holds the history ledger records in application order.
	Applied []state.AppliedMigration

	// Pending holds the migrations still to run, in ascending version order.
	Pending []migration.Migration

	// Baseline is the current checkpoint, nil when none exists.
	Baseline *baseline.Baseline

	// Current is the version of the last applied migration still on disk,
	// "" when none. The baseline is not consulted, so Current can be ""
	// even while Baseline asserts coverage.
	Current string

	// Target is the version of the latest available migration, "" when
	// the directory holds none.
	Target string
}

// Status reads a fresh snapshot. It never mutates the directory.
func (m *Migrator) Status() (*Status, error) {
	dir := m.dir(m.ProjectRoot)

	st := &Status{MigrationsDir: dir}
	if _, err := os.Stat(dir); err != nil {
		return st, nil
	}
	st.DirExists = true

	available, applied, bl, err := loadState(dir)
	if err != nil {
		return nil, err
	}

	st.Available = available
	st.Applied = applied
	st.Baseline = bl
	st.Pending = state.Pending(available, applied, baselineVersion(bl))
	st.Current = state.CurrentVersion(available, applied)
	st.Target = state.TargetVersion(available)
	return st, nil
}
