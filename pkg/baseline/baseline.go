// Package baseline reads, writes, and validates baseline checkpoints.
//
// A baseline is a .baseline file inside the migrations directory asserting
// that every migration at or below its version has already been applied,
// so those files may be deleted from the directory. The file is a small
// hand-rolled format of key: value lines with an optional literal summary
// block, and is always rewritten whole.
package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BaselineFile is the checkpoint filename inside a migrations directory.
const BaselineFile = ".baseline"

// Baseline is a checkpoint asserting coverage of all migrations at or
// below Version. An empty Summary means none was recorded.
type Baseline struct {
	Version string
	Created time.Time
	Summary string
}

// ReadBaseline returns the checkpoint for a migrations directory, or nil
// when no baseline file exists.
func ReadBaseline(dir string) (*Baseline, error) {
	path := filepath.Join(dir, BaselineFile)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading baseline file %s: %w", path, err)
	}

	return parseBaseline(string(content))
}

// WriteBaseline replaces the checkpoint file. Summaries are always
// serialized in block form, one line per indented line, even when they
// would fit inline.
func WriteBaseline(dir string, b *Baseline) error {
	path := filepath.Join(dir, BaselineFile)

	var sb strings.Builder
	fmt.Fprintf(&sb, "version: %s\n", b.Version)
	fmt.Fprintf(&sb, "created: %s\n", b.Created.UTC().Format(time.RFC3339))
	if b.Summary != "" {
		sb.WriteString("summary: |\n")
		for _, line := range strings.Split(strings.TrimSuffix(b.Summary, "\n"), "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing baseline file %s: %w", path, err)
	}
	return nil
}

// parseBaseline reads the key: value format. Inside a summary block a
// two-space indent is stripped exactly, a blank line is kept as a blank
// summary line, any other indented line is kept with its indent trimmed,
// and the first unindented line ends the block and is parsed as a key
// line again. Unknown keys are ignored.
func parseBaseline(content string) (*Baseline, error) {
	var (
		version      string
		versionSeen  bool
		created      time.Time
		createdSeen  bool
		summary      string
		inSummary    bool
		summaryLines []string
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if inSummary {
			if stripped, ok := strings.CutPrefix(line, "  "); ok {
				summaryLines = append(summaryLines, stripped)
				continue
			}
			if line == "" {
				summaryLines = append(summaryLines, "")
				continue
			}
			if strings.HasPrefix(line, " ") {
				summaryLines = append(summaryLines, strings.TrimLeft(line, " \t"))
				continue
			}
			inSummary = false
			summary = strings.TrimRight(strings.Join(summaryLines, "\n"), " \t\n")
			summaryLines = nil
		}

		if rest, ok := strings.CutPrefix(line, "version:"); ok {
			version = strings.TrimSpace(rest)
			versionSeen = true
		} else if rest, ok := strings.CutPrefix(line, "created:"); ok {
			ts := strings.TrimSpace(rest)
			parsed, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidTimestamp, ts)
			}
			created = parsed.UTC()
			createdSeen = true
		} else if rest, ok := strings.CutPrefix(line, "summary:"); ok {
			rest = strings.TrimSpace(rest)
			if rest == "|" {
				inSummary = true
			} else if rest != "" {
				summary = rest
			}
		}
	}

	if inSummary && len(summaryLines) > 0 {
		summary = strings.TrimRight(strings.Join(summaryLines, "\n"), " \t\n")
	}

	if !versionSeen {
		return nil, ErrMissingVersion
	}
	if !createdSeen {
		return nil, ErrMissingCreated
	}

	return &Baseline{Version: version, Created: created, Summary: summary}, nil
}
