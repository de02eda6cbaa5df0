package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/waymark-sh/waymark/internal/cli"
	"github.com/waymark-sh/waymark/internal/doctor"
)

var doctorVerbose bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks",
	Long:  `Run health checks on a migrations directory.`,
	Example: `  # Run health checks
  waymark doctor

  # Run with verbose output
  waymark doctor --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, migrations := resolveDirs()
		verboseFlag := resolveBool(doctorVerbose, cfg.Doctor.Verbose)

		dir := migrations
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}

		return runDoctor(dir, verboseFlag)
	},
}

func init() {
	f := doctorCmd.Flags()
	f.BoolVar(&doctorVerbose, "verbose", false, "show detailed output")
}

func runDoctor(dir string, verboseFlag bool) error {
	if !quiet {
		fmt.Println("waymark doctor - Health Check")
	}

	report := doctor.New(dir).Run()
	report.Print(os.Stdout, verboseFlag)

	if report.HasErrors() {
		return cli.GeneralError("health checks failed", nil)
	}

	return nil
}
