package migrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migration"
	"github.com/waymark-sh/waymark/pkg/runner"
	"github.com/waymark-sh/waymark/pkg/state"
)

// UpOptions controls one apply run.
type UpOptions struct {
	// DryRun prints the plan without invoking scripts or touching the
	// ledger.
	DryRun bool

	// Baseline creates a checkpoint at the final applied version after a
	// fully successful run.
	Baseline bool

	// Keep suppresses covered-file deletion when Baseline is set.
	Keep bool
}

// Up applies every pending migration in ascending version order, writing
// progress to m.Out. The pending set is computed once when the run starts
// and is not re-read, so files added mid-run wait for the next invocation.
//
// Each success is appended to the history ledger immediately. When a later
// migration fails, everything applied before it stays recorded; the run
// stops with an ExecError and nothing is rolled back or retried.
//
// With Baseline set, a successful run is followed by a checkpoint at the
// final applied version, deleting covered files unless Keep is set.
func (m *Migrator) Up(ctx context.Context, opts UpOptions) error {
	root, err := filepath.Abs(m.ProjectRoot)
	if err != nil {
		return fmt.Errorf("resolving project root %s: %w", m.ProjectRoot, err)
	}
	dir := m.dir(root)

	if _, err := os.Stat(dir); err != nil {
		fmt.Fprintf(m.Out, "No migrations directory found at: %s\n", dir)
		return nil
	}

	available, applied, bl, err := loadState(dir)
	if err != nil {
		return err
	}
	pending := state.Pending(available, applied, baselineVersion(bl))

	if len(pending) == 0 {
		fmt.Fprintln(m.Out, "No pending migrations.")
		return nil
	}

	verb := "Applying"
	if opts.DryRun {
		verb = "Would apply"
	}
	fmt.Fprintf(m.Out, "%s %d migration(s)...\n\n", verb, len(pending))

	lastApplied := ""
	for _, mig := range pending {
		fmt.Fprintf(m.Out, "→ %s\n", mig.ID)

		if opts.DryRun {
			fmt.Fprintln(m.Out, "  (dry run - skipped)")
			lastApplied = mig.Version
			continue
		}

		res, err := m.Runner.Run(ctx, mig.Path, runner.Context{
			ProjectRoot:   root,
			MigrationsDir: dir,
			MigrationID:   mig.ID,
		})
		if err != nil {
			return err
		}

		if !res.Success {
			fmt.Fprintf(m.Out, "  ✗ failed (exit code %d)\n", res.ExitCode)
			return &ExecError{ID: mig.ID, ExitCode: res.ExitCode}
		}

		if err := state.AppendHistory(dir, mig.ID, m.Now()); err != nil {
			return err
		}
		lastApplied = mig.Version
		fmt.Fprintln(m.Out, "  ✓ completed")
	}

	fmt.Fprintf(m.Out, "\nAll migrations applied successfully.\n")

	if opts.Baseline && lastApplied != "" {
		if err := m.baselineAfterUp(dir, lastApplied, available, opts); err != nil {
			return err
		}
	}

	return nil
}

// baselineAfterUp writes the post-run checkpoint for up --baseline. Unlike
// Compact it does not validate against the ledger: the run that just
// finished already applied everything pending, and files below an older
// baseline stay covered by it.
func (m *Migrator) baselineAfterUp(dir, version string, available []migration.Migration, opts UpOptions) error {
	fmt.Fprintln(m.Out)

	if opts.DryRun {
		fmt.Fprintf(m.Out, "Would create baseline at version '%s'\n", version)
		if !opts.Keep {
			count := 0
			for _, mig := range available {
				if mig.Version <= version {
					count++
				}
			}
			if count > 0 {
				fmt.Fprintf(m.Out, "Would delete %d migration file(s)\n", count)
			}
		}
		return nil
	}

	bl := &baseline.Baseline{Version: version, Created: m.Now()}
	if err := baseline.WriteBaseline(dir, bl); err != nil {
		return err
	}
	fmt.Fprintf(m.Out, "Created baseline at version '%s'\n", version)

	if !opts.Keep {
		deleted, err := baseline.DeleteCovered(version, available)
		if err != nil {
			return err
		}
		if len(deleted) > 0 {
			fmt.Fprintf(m.Out, "Deleted %d migration file(s)\n", len(deleted))
		}
	}

	return nil
}
