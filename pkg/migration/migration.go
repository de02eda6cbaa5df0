// Package migration discovers migration files in a migrations directory.
//
// A migration filename is five [0-9a-z] version characters, a dash, and a
// non-empty remainder, with an optional extension. Discovery re-scans the
// directory on every call; records are never cached between runs.
package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Migration is a single discovered migration file.
type Migration struct {
	// ID is the filename without its extension, e.g. "1f72f-init".
	ID string
	// Version is the leading 5-character code, e.g. "1f72f".
	Version string
	// Path is the location of the migration file on disk.
	Path string
}

// Discover scans dir and returns its migrations sorted ascending by
// version. Files that do not match the migration grammar (READMEs,
// dotfiles, the state files) are silently ignored, and directories are
// skipped even when their names match. Fails only when the directory
// itself cannot be read.
func Discover(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory %s: %w", dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ver, ok := ExtractVersion(name)
		if !ok {
			continue
		}
		migrations = append(migrations, Migration{
			ID:      ExtractID(name),
			Version: ver,
			Path:    filepath.Join(dir, name),
		})
	}

	// ReadDir returns entries sorted by filename; the stable sort keeps
	// that order for migrations sharing a version.
	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// ExtractVersion returns the version prefix of a migration filename, or
// false when the name does not match the migration grammar.
func ExtractVersion(filename string) (string, bool) {
	if len(filename) < 7 || filename[5] != '-' {
		return "", false
	}
	for i := 0; i < 5; i++ {
		c := filename[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z') {
			return "", false
		}
	}
	return filename[:5], true
}

// ExtractID strips the extension (the last dot onward) from a migration
// filename to form its id.
func ExtractID(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		return filename[:i]
	}
	return filename
}
