package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waymark-sh/waymark/internal/cli"
	"github.com/waymark-sh/waymark/internal/templates"
	"github.com/waymark-sh/waymark/pkg/migrator"
)

var (
	createTemplate    string
	createDescription string
	createListOnly    bool
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new migration",
	Long:  `Create a new migration file from a template, named after the current time.`,
	Args:  cobra.MaximumNArgs(1),
	Example: `  # Create a bash migration
  waymark create add-config

  # Create a python migration with a description
  waymark create backfill-users -t python -d "Backfill the users table"

  # List available templates
  waymark create --list-templates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createListOnly {
			fmt.Println("Available templates:")
			for _, name := range templates.Names() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		}

		if len(args) == 0 {
			return cli.ValidationError("migration name is required. Usage: waymark create <name>", nil)
		}
		name := args[0]

		root, migrations := resolveDirs()
		tmpl := resolveString(createTemplate, cfg.ResolvedTemplate())

		m := migrator.New(root, migrations)
		path, err := m.Create(name, migrator.CreateOptions{
			Template:    tmpl,
			Description: createDescription,
		})
		switch {
		case err == nil:
		case migrator.IsUnknownTemplateErr(err) || migrator.IsAlreadyExistsErr(err):
			return cli.ValidationError("creating migration", err)
		default:
			return cli.IOError("creating migration", err)
		}

		fmt.Printf("Created migration: %s\n", path)
		return nil
	},
}

func init() {
	f := createCmd.Flags()
	f.StringVarP(&createTemplate, "template", "t", "", "template to use: "+strings.Join(templates.Names(), ", "))
	f.StringVarP(&createDescription, "description", "d", "", "migration description")
	f.BoolVar(&createListOnly, "list-templates", false, "list available templates")
}
