// Package migrator wires discovery, state, baseline, and script execution
// into waymark's four operations: status, up, create, and baseline
// compaction.
//
// A Migrator reads the migrations directory fresh on every operation;
// nothing is cached between calls. All mutation goes through the history
// ledger and the baseline file, so consecutive operations always agree on
// what has been applied.
package migrator

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migration"
	"github.com/waymark-sh/waymark/pkg/runner"
	"github.com/waymark-sh/waymark/pkg/state"
)

// Migrator operates on one migrations directory.
type Migrator struct {
	// ProjectRoot is the directory migration scripts act on. A relative
	// path is resolved against the process working directory when a run
	// starts.
	ProjectRoot string

	// MigrationsDir is the migrations directory, absolute or relative to
	// ProjectRoot.
	MigrationsDir string

	// Runner executes migration scripts. Defaults to a ScriptRunner
	// inheriting the process streams.
	Runner runner.Runner

	// Out receives progress output. Defaults to os.Stdout.
	Out io.Writer

	// Now supplies timestamps for history records, baselines, and new
	// version codes. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Migrator with the default runner, output, and clock.
func New(projectRoot, migrationsDir string) *Migrator {
	return &Migrator{
		ProjectRoot:   projectRoot,
		MigrationsDir: migrationsDir,
		Runner:        runner.NewScriptRunner(),
		Out:           os.Stdout,
		Now:           time.Now,
	}
}

// dir resolves the migrations directory against the given root.
func (m *Migrator) dir(root string) string {
	if filepath.IsAbs(m.MigrationsDir) {
		return m.MigrationsDir
	}
	return filepath.Join(root, m.MigrationsDir)
}

// loadState reads the directory scan, the history ledger, and the
// baseline as one snapshot.
func loadState(dir string) ([]migration.Migration, []state.AppliedMigration, *baseline.Baseline, error) {
	available, err := migration.Discover(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	applied, err := state.ReadHistory(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	bl, err := baseline.ReadBaseline(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	return available, applied, bl, nil
}

func baselineVersion(bl *baseline.Baseline) string {
	if bl == nil {
		return ""
	}
	return bl.Version
}
