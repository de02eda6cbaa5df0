package migrator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/waymark-sh/waymark/internal/templates"
	"github.com/waymark-sh/waymark/pkg/version"
)

// CreateOptions controls migration scaffolding.
type CreateOptions struct {
	// Template names the catalog entry to scaffold from. Empty means
	// templates.DefaultName.
	Template string

	// Description replaces the {{DESCRIPTION}} placeholder. Empty leaves
	// a TODO marker.
	Description string
}

// Create scaffolds a new executable migration file named by a freshly
// generated version code and returns its path. The migrations directory
// is created if missing. Creating the same name twice within one
// ten-minute version window returns ErrAlreadyExists instead of
// overwriting.
func (m *Migrator) Create(name string, opts CreateOptions) (string, error) {
	tmplName := opts.Template
	if tmplName == "" {
		tmplName = templates.DefaultName
	}
	tmpl, ok := templates.Get(tmplName)
	if !ok {
		return "", fmt.Errorf("%w '%s', available: %s", ErrUnknownTemplate, tmplName, strings.Join(templates.Names(), ", "))
	}

	dir := m.dir(m.ProjectRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating migrations directory %s: %w", dir, err)
	}

	filename := version.Generate(m.Now()) + "-" + name + tmpl.Extension
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}

	description := opts.Description
	if description == "" {
		description = "TODO: Add description"
	}
	content := templates.Render(tmpl, description)

	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return "", fmt.Errorf("writing migration file %s: %w", path, err)
	}
	// WriteFile mode is subject to the umask; force the executable bits.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("marking migration file executable %s: %w", path, err)
	}

	return path, nil
}
