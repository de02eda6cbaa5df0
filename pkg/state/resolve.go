package state

import "github.com/waymark-sh/waymark/pkg/migration"

// CurrentVersion returns the version of the last available migration whose
// id appears in applied, or "" when none match. The scan keeps the last
// match in ascending version order rather than the highest version in the
// ledger, so a migration file deleted after being applied cannot advance
// the reported version past a gap. The baseline is not consulted.
func CurrentVersion(available []migration.Migration, applied []AppliedMigration) string {
	appliedIDs := appliedSet(applied)

	current := ""
	for _, m := range available {
		if appliedIDs[m.ID] {
			current = m.Version
		}
	}
	return current
}

// TargetVersion returns the version of the latest available migration, or
// "" when the directory has none.
func TargetVersion(available []migration.Migration) string {
	if len(available) == 0 {
		return ""
	}
	return available[len(available)-1].Version
}

// Pending returns the migrations not yet recorded as applied and not
// covered by the baseline, preserving available's ascending order.
// baselineVersion is the current baseline's version, or "" when no
// baseline exists. Covered migrations are excluded even when absent from
// the ledger: a baseline asserts that everything at or below its version
// has already run.
func Pending(available []migration.Migration, applied []AppliedMigration, baselineVersion string) []migration.Migration {
	appliedIDs := appliedSet(applied)

	var pending []migration.Migration
	for _, m := range available {
		if appliedIDs[m.ID] {
			continue
		}
		if baselineVersion != "" && m.Version <= baselineVersion {
			continue
		}
		pending = append(pending, m)
	}
	return pending
}

func appliedSet(applied []AppliedMigration) map[string]bool {
	set := make(map[string]bool, len(applied))
	for _, a := range applied {
		set[a.ID] = true
	}
	return set
}
