package main

import (
	"github.com/spf13/cobra"

	"github.com/waymark-sh/waymark/internal/cli"
	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migrator"
	"github.com/waymark-sh/waymark/pkg/state"
)

var (
	baselineSummary string
	baselineDryRun  bool
	baselineKeep    bool
)

var baselineCmd = &cobra.Command{
	Use:   "baseline <version>",
	Short: "Create a baseline at a specific version",
	Long: `Create a baseline at a specific version, marking every migration at or
below it as done and deleting their files. Every covered migration must
already be applied.`,
	Args: cobra.ExactArgs(1),
	Example: `  # Collapse everything up to 1fb2g into a checkpoint
  waymark baseline 1fb2g -s "Initial setup and config migrations"

  # Preview without touching anything
  waymark baseline 1fb2g --dry-run

  # Keep the covered files on disk
  waymark baseline 1fb2g --keep`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, migrations := resolveDirs()

		m := migrator.New(root, migrations)
		err := m.Compact(args[0], migrator.CompactOptions{
			Summary: baselineSummary,
			DryRun:  baselineDryRun,
			Keep:    baselineKeep,
		})
		switch {
		case err == nil:
			return nil
		case baseline.IsVersionNotFoundErr(err) || baseline.IsBackwardMoveErr(err) || baseline.IsUnappliedMigrationErr(err):
			return cli.ValidationError("creating baseline", err)
		case baseline.IsParseErr(err) || state.IsInvalidTimestampErr(err):
			return cli.ParseError("reading migration state", err)
		default:
			return cli.IOError("creating baseline", err)
		}
	},
}

func init() {
	f := baselineCmd.Flags()
	f.StringVarP(&baselineSummary, "summary", "s", "", "summary description for the baseline")
	f.BoolVar(&baselineDryRun, "dry-run", false, "preview without making changes")
	f.BoolVar(&baselineKeep, "keep", false, "keep migration files (don't delete)")
}
