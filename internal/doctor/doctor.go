// Package doctor provides health checks for a waymark migrations directory.
//
// The doctor command inspects the pieces waymark depends on at run time:
// the migrations directory itself, the migration files, the .history
// ledger, and the .baseline checkpoint. Each probe reports through the
// check list rather than as a hard error; a broken tree is exactly what
// doctor exists to describe.
//
// Example usage:
//
//	d := doctor.New("migrations")
//	report := d.Run()
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-sh/waymark/pkg/baseline"
	"github.com/waymark-sh/waymark/pkg/migration"
	"github.com/waymark-sh/waymark/pkg/state"
	"github.com/waymark-sh/waymark/pkg/version"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical issue that will cause failures.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

var (
	categoryStyle = lipgloss.NewStyle().Bold(true)
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (s Status) style() lipgloss.Style {
	switch s {
	case StatusPass:
		return passStyle
	case StatusWarn:
		return warnStyle
	case StatusFail:
		return failStyle
	default:
		return lipgloss.NewStyle()
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "Migration Files", "History Ledger").
	Category string

	// Name is a short identifier for the check.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	// Group checks by category
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	// Print each category
	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", categoryStyle.Render(cat))
		for _, check := range categories[cat] {
			symbol := check.Status.style().Render(check.Status.Symbol())
			_, _ = fmt.Fprintf(w, "  %s %s\n", symbol, check.Message)
			if verbose && check.Details != "" {
				// Indent details
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	// Print summary
	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Doctor performs health checks on a migrations directory.
type Doctor struct {
	migrationsDir string

	// Cached data from checks (populated during Run)
	available   []migration.Migration
	applied     []state.AppliedMigration
	appliedOK   bool
	bl          *baseline.Baseline
	baselineErr error
}

// New creates a new Doctor instance for the given migrations directory.
func New(migrationsDir string) *Doctor {
	return &Doctor{migrationsDir: migrationsDir}
}

// Run executes all health checks and returns a report.
func (d *Doctor) Run() *Report {
	report := &Report{}

	// Run checks in order, building up cached data
	if !d.checkDirectory(report) {
		return report
	}
	d.checkMigrationFiles(report)
	d.checkHistory(report)
	d.checkBaseline(report)

	return report
}

// checkDirectory validates the migrations directory exists and is
// readable. Returns false when the remaining checks have nothing to
// work with.
func (d *Doctor) checkDirectory(report *Report) bool {
	info, err := os.Stat(d.migrationsDir)
	if err != nil || !info.IsDir() {
		report.AddCheck(CheckResult{
			Category: "Migrations Directory",
			Name:     "exists",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("No migrations directory found at %s", d.migrationsDir),
			FixHint:  "Run 'waymark create <name>' to scaffold the first migration",
		})
		return false
	}

	available, err := migration.Discover(d.migrationsDir)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: "Migrations Directory",
			Name:     "readable",
			Status:   StatusFail,
			Message:  fmt.Sprintf("Migrations directory %s is not readable", d.migrationsDir),
			Details:  err.Error(),
			FixHint:  "Fix the directory permissions",
		})
		return false
	}
	d.available = available

	report.AddCheck(CheckResult{
		Category: "Migrations Directory",
		Name:     "readable",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Migrations directory exists at %s", d.migrationsDir),
	})
	return true
}

// checkMigrationFiles validates the discovered migration files.
func (d *Doctor) checkMigrationFiles(report *Report) {
	report.AddCheck(CheckResult{
		Category: "Migration Files",
		Name:     "count",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Found %d migration file(s)", len(d.available)),
	})
	if len(d.available) == 0 {
		return
	}

	// Migrations run as direct child processes, so every file needs its
	// owner-executable bit.
	var notExecutable []string
	for _, m := range d.available {
		info, err := os.Stat(m.Path)
		if err != nil || info.Mode()&0o100 == 0 {
			notExecutable = append(notExecutable, m.ID)
		}
	}
	if len(notExecutable) > 0 {
		report.AddCheck(CheckResult{
			Category: "Migration Files",
			Name:     "executable",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("%d migration file(s) are not executable", len(notExecutable)),
			Details:  strings.Join(notExecutable, "\n"),
			FixHint:  "Run chmod +x on the listed files",
		})
	} else {
		report.AddCheck(CheckResult{
			Category: "Migration Files",
			Name:     "executable",
			Status:   StatusPass,
			Message:  "All migration files are executable",
		})
	}

	// Files sharing a version code were created in the same 10-minute
	// window; order between them is filename-dependent.
	byVersion := make(map[string][]string)
	for _, m := range d.available {
		byVersion[m.Version] = append(byVersion[m.Version], m.ID)
	}
	var dupes []string
	for ver, ids := range byVersion {
		if len(ids) > 1 {
			dupes = append(dupes, fmt.Sprintf("%s: %s", ver, strings.Join(ids, ", ")))
		}
	}
	if len(dupes) > 0 {
		sort.Strings(dupes)
		report.AddCheck(CheckResult{
			Category: "Migration Files",
			Name:     "duplicates",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("%d version code(s) shared by multiple files", len(dupes)),
			Details:  strings.Join(dupes, "\n"),
			FixHint:  "Recreate one of each pair to give it a later version code",
		})
	} else {
		report.AddCheck(CheckResult{
			Category: "Migration Files",
			Name:     "duplicates",
			Status:   StatusPass,
			Message:  "All version codes are unique",
		})
	}
}

// checkHistory validates the .history ledger against the files on disk.
func (d *Doctor) checkHistory(report *Report) {
	// The baseline decides whether a missing file is drift or covered
	// history; its own checks run next.
	d.bl, d.baselineErr = baseline.ReadBaseline(d.migrationsDir)

	applied, err := state.ReadHistory(d.migrationsDir)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: "History Ledger",
			Name:     "parses",
			Status:   StatusFail,
			Message:  "History ledger is corrupt",
			Details:  err.Error(),
			FixHint:  "Repair .history; each line is '<id> <RFC 3339 timestamp>'",
		})
		return
	}
	d.applied = applied
	d.appliedOK = true

	if len(applied) == 0 {
		report.AddCheck(CheckResult{
			Category: "History Ledger",
			Name:     "records",
			Status:   StatusWarn,
			Message:  "No migrations recorded in the history ledger",
			FixHint:  "Run 'waymark up' to apply pending migrations",
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: "History Ledger",
		Name:     "records",
		Status:   StatusPass,
		Message:  fmt.Sprintf("History ledger records %d applied migration(s)", len(applied)),
	})

	seen := make(map[string]bool)
	var dupes []string
	for _, rec := range applied {
		if seen[rec.ID] {
			dupes = append(dupes, rec.ID)
		}
		seen[rec.ID] = true
	}
	if len(dupes) > 0 {
		sort.Strings(dupes)
		report.AddCheck(CheckResult{
			Category: "History Ledger",
			Name:     "duplicates",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("%d id(s) recorded more than once", len(dupes)),
			Details:  strings.Join(dupes, "\n"),
			FixHint:  "Deduplicate .history; repeated ids obscure when a migration first ran",
		})
	}

	// An applied migration whose file is gone is fine as long as a
	// baseline covers its version; otherwise the record is orphaned.
	onDisk := make(map[string]bool)
	for _, m := range d.available {
		onDisk[m.ID] = true
	}
	var orphaned []string
	for _, rec := range applied {
		if onDisk[rec.ID] {
			continue
		}
		if d.bl != nil {
			if ver, ok := migration.ExtractVersion(rec.ID); ok && ver <= d.bl.Version {
				continue
			}
		}
		orphaned = append(orphaned, rec.ID)
	}
	if len(orphaned) > 0 {
		report.AddCheck(CheckResult{
			Category: "History Ledger",
			Name:     "drift",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("%d applied migration(s) have no file and no covering baseline", len(orphaned)),
			Details:  strings.Join(orphaned, "\n"),
			FixHint:  "Create a baseline at or above them with 'waymark baseline <version>'",
		})
	} else {
		report.AddCheck(CheckResult{
			Category: "History Ledger",
			Name:     "drift",
			Status:   StatusPass,
			Message:  "Every applied migration has a file or a covering baseline",
		})
	}
}

// checkBaseline validates the .baseline checkpoint cached by checkHistory.
func (d *Doctor) checkBaseline(report *Report) {
	if d.baselineErr != nil {
		report.AddCheck(CheckResult{
			Category: "Baseline",
			Name:     "parses",
			Status:   StatusFail,
			Message:  "Baseline file is corrupt",
			Details:  d.baselineErr.Error(),
			FixHint:  "Repair or remove the .baseline file",
		})
		return
	}
	if d.bl == nil {
		report.AddCheck(CheckResult{
			Category: "Baseline",
			Name:     "exists",
			Status:   StatusPass,
			Message:  "No baseline checkpoint",
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: "Baseline",
		Name:     "parses",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Baseline at version '%s' (created %s)", d.bl.Version, d.bl.Created.Format("2006-01-02")),
	})

	if !version.IsValid(d.bl.Version) {
		report.AddCheck(CheckResult{
			Category: "Baseline",
			Name:     "version",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("Baseline version '%s' is not a valid version code", d.bl.Version),
			FixHint:  "Recreate the baseline with 'waymark baseline <version>'",
		})
	}

	if !d.appliedOK {
		return
	}

	// A file at or below the baseline that was never applied is invisible
	// to 'waymark up': the baseline claims its work is done.
	appliedIDs := make(map[string]bool)
	for _, rec := range d.applied {
		appliedIDs[rec.ID] = true
	}
	var unapplied []string
	for _, m := range d.available {
		if m.Version <= d.bl.Version && !appliedIDs[m.ID] {
			unapplied = append(unapplied, m.ID)
		}
	}
	if len(unapplied) > 0 {
		report.AddCheck(CheckResult{
			Category: "Baseline",
			Name:     "coverage",
			Status:   StatusFail,
			Message:  fmt.Sprintf("%d migration file(s) below the baseline were never applied", len(unapplied)),
			Details:  strings.Join(unapplied, "\n"),
			FixHint:  "Run them by hand and append their ids to .history, or remove the stale files",
		})
	} else {
		report.AddCheck(CheckResult{
			Category: "Baseline",
			Name:     "coverage",
			Status:   StatusPass,
			Message:  "Every migration below the baseline is recorded as applied",
		})
	}

	// Covered files left on disk (baseline --keep) pull the
	// history-derived current version below the baseline; status falls
	// back to the baseline version until something newer is applied.
	cur := state.CurrentVersion(d.available, d.applied)
	if cur != "" && cur < d.bl.Version {
		report.AddCheck(CheckResult{
			Category: "Baseline",
			Name:     "current",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("Current version '%s' is below the baseline '%s'", cur, d.bl.Version),
			Details:  "Files covered by the baseline are still on disk",
			FixHint:  "Delete the covered files; the baseline already records their effect",
		})
	}
}
