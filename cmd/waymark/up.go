package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waymark-sh/waymark/internal/cli"
	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migrator"
	"github.com/waymark-sh/waymark/pkg/state"
)

var (
	upDryRun   bool
	upBaseline bool
	upKeep     bool
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long:  `Apply pending migrations in version order, stopping at the first failure.`,
	Example: `  # Apply everything pending
  waymark up

  # Preview without running anything
  waymark up --dry-run

  # Apply, then collapse history into a baseline
  waymark up --baseline`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, migrations := resolveDirs()
		keep := resolveBool(upKeep, cfg.Up.Keep)

		m := migrator.New(root, migrations)
		err := m.Up(context.Background(), migrator.UpOptions{
			DryRun:   upDryRun,
			Baseline: upBaseline,
			Keep:     keep,
		})
		switch {
		case err == nil:
			return nil
		case migrator.IsExecErr(err) || strings.Contains(err.Error(), "running migration script"):
			return cli.ExecutionError("migration failed", err)
		case baseline.IsParseErr(err) || state.IsInvalidTimestampErr(err):
			return cli.ParseError("reading migration state", err)
		default:
			return cli.IOError("applying migrations", err)
		}
	},
}

func init() {
	f := upCmd.Flags()
	f.BoolVar(&upDryRun, "dry-run", false, "preview without applying")
	f.BoolVar(&upBaseline, "baseline", false, "create baseline at final version after applying (deletes old migration files)")
	f.BoolVar(&upKeep, "keep", false, "keep migration files when using --baseline (don't delete)")
}
