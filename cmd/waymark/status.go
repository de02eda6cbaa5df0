package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waymark-sh/waymark/internal/cli"
	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migrator"
	"github.com/waymark-sh/waymark/pkg/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Show applied, pending, and baselined migrations.`,
	Example: `  # Show status for ./migrations
  waymark status

  # Show status for another project
  waymark status -r services/api -m db/migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, migrations := resolveDirs()
		return runStatus(migrator.New(root, migrations))
	},
}

func runStatus(m *migrator.Migrator) error {
	st, err := m.Status()
	if err != nil {
		if baseline.IsParseErr(err) || state.IsInvalidTimestampErr(err) {
			return cli.ParseError("reading migration state", err)
		}
		return cli.IOError("reading migration state", err)
	}

	renderStatus(os.Stdout, st)
	return nil
}

func renderStatus(w io.Writer, st *migrator.Status) {
	if !st.DirExists {
		fmt.Fprintf(w, "No migrations directory found at: %s\n", st.MigrationsDir)
		return
	}
	if len(st.Available) == 0 && st.Baseline == nil {
		fmt.Fprintf(w, "No migrations found in: %s\n", st.MigrationsDir)
		return
	}

	fmt.Fprintln(w, "Migration Status")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	// Show baseline info if present
	if bl := st.Baseline; bl != nil {
		fmt.Fprintf(w, "Baseline: %s (%s)\n", bl.Version, bl.Created.UTC().Format("2006-01-02"))
		if bl.Summary != "" {
			for _, line := range strings.Split(bl.Summary, "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		fmt.Fprintln(w)
	}

	// Show version summary line
	cur, tgt, pending := st.Current, st.Target, len(st.Pending)
	switch {
	case cur == "" && tgt != "" && st.Baseline != nil:
		fmt.Fprintf(w, "Version: %s -> %s (%d pending)\n", st.Baseline.Version, tgt, pending)
	case cur == "" && tgt != "":
		fmt.Fprintf(w, "Version: (none) -> %s (%d pending)\n", tgt, pending)
	case cur != "" && cur == tgt:
		fmt.Fprintf(w, "Version: %s (up to date)\n", cur)
	case cur != "" && tgt != "":
		fmt.Fprintf(w, "Version: %s -> %s (%d pending)\n", cur, tgt, pending)
	case cur == "" && tgt == "" && st.Baseline != nil:
		fmt.Fprintf(w, "Version: %s (up to date, baselined)\n", st.Baseline.Version)
	}
	fmt.Fprintln(w)

	// Show applied migrations
	if len(st.Applied) > 0 {
		fmt.Fprintf(w, "Applied (%d):\n", len(st.Applied))
		for _, rec := range st.Applied {
			ts := rec.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			if isBaselined(rec.ID, st.Baseline) {
				fmt.Fprintf(w, "  + %s  %s  (baseline)\n", rec.ID, ts)
			} else {
				fmt.Fprintf(w, "  + %s  %s\n", rec.ID, ts)
			}
		}
		fmt.Fprintln(w)
	}

	// Show pending migrations
	if len(st.Pending) > 0 {
		fmt.Fprintf(w, "Pending (%d):\n", len(st.Pending))
		for _, mig := range st.Pending {
			fmt.Fprintf(w, "  - %s\n", mig.ID)
		}
	}
}

// isBaselined reports whether an applied id falls at or below the
// baseline. Ids without a parseable version prefix sort below every
// baseline.
func isBaselined(id string, bl *baseline.Baseline) bool {
	if bl == nil {
		return false
	}
	prefix, ok := versionPrefix(id)
	return !ok || prefix <= bl.Version
}

// versionPrefix extracts the version code from a migration id
// (e.g. "1f72f-init" -> "1f72f").
func versionPrefix(id string) (string, bool) {
	if len(id) >= 6 && id[5] == '-' {
		return id[:5], true
	}
	return "", false
}
