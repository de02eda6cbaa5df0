package main

import (
	"github.com/spf13/cobra"

	"github.com/waymark-sh/waymark/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string

	// Persistent flags
	cfgFile        string
	rootFlag       string
	migrationsFlag string
	verbose        int
	quiet          bool
)

var rootCmd = &cobra.Command{
	Use:   "waymark",
	Short: "Ordered one-shot script migrations",
	Long: `waymark - Ordered one-shot script migrations

Waymark runs executable migration scripts exactly once, in version order,
and records what ran in a plain-text ledger next to the scripts. Old
history can be collapsed into a baseline checkpoint so the migrations
directory stays small.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupMigration = "migration"
	groupUtility   = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover waymark.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", "", "project root directory (default \".\")")
	rootCmd.PersistentFlags().StringVarP(&migrationsFlag, "migrations", "m", "", "migrations directory (default \"migrations\")")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Define command groups
	rootCmd.AddGroup(
		&cobra.Group{ID: groupMigration, Title: "Migration:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	// Migration commands
	statusCmd.GroupID = groupMigration
	upCmd.GroupID = groupMigration
	createCmd.GroupID = groupMigration
	baselineCmd.GroupID = groupMigration
	doctorCmd.GroupID = groupMigration
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(doctorCmd)

	// Utility commands
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
// Used for boolean flags where any true value should win.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}

// resolveDirs applies flag-over-config precedence to the project root and
// migrations directory shared by every migration command.
func resolveDirs() (root, migrations string) {
	root = resolveString(rootFlag, cfg.Root, ".")
	migrations = resolveString(migrationsFlag, cfg.Migrations, "migrations")
	return root, migrations
}
