package migrator

import (
	"fmt"
	"os"

	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migration"
)

// CompactOptions controls baseline creation.
type CompactOptions struct {
	// Summary is recorded on the checkpoint. Empty records none.
	Summary string

	// DryRun prints the plan without writing the baseline or deleting
	// files.
	DryRun bool

	// Keep suppresses deletion of covered migration files.
	Keep bool
}

// Compact validates and commits a checkpoint at version, writing progress
// to m.Out. Validation runs before any mutation, so a failed Compact
// leaves the directory untouched. After the baseline file is written,
// covered migration files are deleted unless Keep is set; deletion is
// file-by-file and a failure aborts part-way without undoing earlier
// deletes.
func (m *Migrator) Compact(version string, opts CompactOptions) error {
	dir := m.dir(m.ProjectRoot)

	if _, err := os.Stat(dir); err != nil {
		fmt.Fprintf(m.Out, "No migrations directory found at: %s\n", dir)
		return nil
	}

	available, applied, existing, err := loadState(dir)
	if err != nil {
		return err
	}

	if err := baseline.Validate(version, available, applied, existing); err != nil {
		return err
	}

	var toDelete []migration.Migration
	for _, mig := range available {
		if mig.Version <= version {
			toDelete = append(toDelete, mig)
		}
	}

	if opts.DryRun {
		fmt.Fprintf(m.Out, "Dry run - no changes will be made\n\n")
	}

	suffix := ""
	if opts.DryRun {
		suffix = " (dry run)"
	}
	fmt.Fprintf(m.Out, "Creating baseline at version '%s'%s\n\n", version, suffix)

	if len(toDelete) > 0 && !opts.Keep {
		verb := "Deleting"
		if opts.DryRun {
			verb = "Would delete"
		}
		fmt.Fprintf(m.Out, "%s migration file(s) to delete:\n", verb)
		for _, mig := range toDelete {
			fmt.Fprintf(m.Out, "  - %s\n", mig.ID)
		}
		fmt.Fprintln(m.Out)
	} else if opts.Keep {
		fmt.Fprintf(m.Out, "Keeping migration files (--keep flag)\n\n")
	}

	if opts.DryRun {
		return nil
	}

	bl := &baseline.Baseline{Version: version, Created: m.Now(), Summary: opts.Summary}
	if err := baseline.WriteBaseline(dir, bl); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Created .baseline file")

	if !opts.Keep && len(toDelete) > 0 {
		deleted, err := baseline.DeleteCovered(version, available)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.Out, "Deleted %d migration file(s)\n", len(deleted))
	}

	fmt.Fprintf(m.Out, "\nBaseline created successfully at version '%s'\n", version)
	return nil
}
