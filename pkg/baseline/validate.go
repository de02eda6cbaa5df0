package baseline

import (
	"fmt"
	"os"

	"github.com/waymark-sh/waymark/pkg/migration"
	"github.com/waymark-sh/waymark/pkg/state"
)

// Validate reports whether a checkpoint may be created at version. The
// version must name an available migration, must not move an existing
// baseline backward, and every migration the checkpoint would cover must
// already be recorded in the history ledger.
func Validate(version string, available []migration.Migration, applied []state.AppliedMigration, existing *Baseline) error {
	found := false
	for _, m := range available {
		if m.Version == version {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w with version '%s'", ErrVersionNotFound, version)
	}

	if existing != nil && version < existing.Version {
		return fmt.Errorf("%w from '%s' to '%s'", ErrBackwardMove, existing.Version, version)
	}

	appliedIDs := make(map[string]bool, len(applied))
	for _, a := range applied {
		appliedIDs[a.ID] = true
	}
	for _, m := range available {
		if m.Version <= version && !appliedIDs[m.ID] {
			return fmt.Errorf("%w: '%s'", ErrUnappliedMigration, m.ID)
		}
	}

	return nil
}

// DeleteCovered removes migration files at or below version and returns
// the paths it deleted. Files already gone are skipped, so the operation
// can be rerun after a partial failure.
func DeleteCovered(version string, available []migration.Migration) ([]string, error) {
	var deleted []string
	for _, m := range available {
		if m.Version > version {
			continue
		}
		if _, err := os.Stat(m.Path); err != nil {
			continue
		}
		if err := os.Remove(m.Path); err != nil {
			return deleted, fmt.Errorf("deleting migration file %s: %w", m.Path, err)
		}
		deleted = append(deleted, m.Path)
	}
	return deleted, nil
}
