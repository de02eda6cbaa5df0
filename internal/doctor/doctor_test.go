package doctor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymark-sh/waymark/pkg/baseline"
)

func writeMigration(t *testing.T, dir, name string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\nexit 0\n"), mode))
}

func writeHistory(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".history"), []byte(content), 0o644))
}

func findCheck(t *testing.T, report *Report, category, name string) CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Category == category && c.Name == name {
			return c
		}
	}
	t.Fatalf("check %s/%s not found in report", category, name)
	return CheckResult{}
}

func hasCheck(report *Report, category, name string) bool {
	for _, c := range report.Checks {
		if c.Category == category && c.Name == name {
			return true
		}
	}
	return false
}

func TestRunMissingDirectory(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "migrations"))
	report := d.Run()

	require.Len(t, report.Checks, 1)
	check := findCheck(t, report, "Migrations Directory", "exists")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Message, "No migrations directory found")
	assert.False(t, report.HasErrors())
}

func TestRunHealthyTree(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-first.sh", 0o755)
	writeMigration(t, dir, "00002-second.sh", 0o755)
	writeHistory(t, dir, "00001-first 2024-01-02T03:04:05Z\n00002-second 2024-01-02T03:14:05Z\n")

	report := New(dir).Run()

	assert.Equal(t, 0, report.Warnings)
	assert.Equal(t, 0, report.Errors)
	assert.False(t, report.HasErrors())

	assert.Contains(t, findCheck(t, report, "Migration Files", "count").Message, "Found 2 migration file(s)")
	assert.Equal(t, StatusPass, findCheck(t, report, "Migration Files", "executable").Status)
	assert.Equal(t, StatusPass, findCheck(t, report, "Migration Files", "duplicates").Status)
	assert.Equal(t, StatusPass, findCheck(t, report, "History Ledger", "drift").Status)
	assert.Contains(t, findCheck(t, report, "Baseline", "exists").Message, "No baseline checkpoint")
}

func TestRunEmptyDirectory(t *testing.T) {
	report := New(t.TempDir()).Run()

	assert.Contains(t, findCheck(t, report, "Migration Files", "count").Message, "Found 0 migration file(s)")
	records := findCheck(t, report, "History Ledger", "records")
	assert.Equal(t, StatusWarn, records.Status)
	assert.Contains(t, records.Message, "No migrations recorded")
	assert.False(t, report.HasErrors())
}

func TestRunNotExecutable(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-first.sh", 0o755)
	writeMigration(t, dir, "00002-second.sh", 0o644)
	writeHistory(t, dir, "00001-first 2024-01-02T03:04:05Z\n00002-second 2024-01-02T03:14:05Z\n")

	report := New(dir).Run()

	check := findCheck(t, report, "Migration Files", "executable")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Message, "1 migration file(s) are not executable")
	assert.Contains(t, check.Details, "00002-second")
	assert.NotContains(t, check.Details, "00001-first")
}

func TestRunDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-first.sh", 0o755)
	writeMigration(t, dir, "00001-rival.sh", 0o755)
	writeHistory(t, dir, "00001-first 2024-01-02T03:04:05Z\n00001-rival 2024-01-02T03:04:06Z\n")

	report := New(dir).Run()

	check := findCheck(t, report, "Migration Files", "duplicates")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Details, "00001: 00001-first, 00001-rival")
}

func TestRunCorruptHistory(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-first.sh", 0o755)
	writeHistory(t, dir, "00001-first not-a-timestamp\n")

	report := New(dir).Run()

	check := findCheck(t, report, "History Ledger", "parses")
	assert.Equal(t, StatusFail, check.Status)
	assert.True(t, report.HasErrors())
	// Parse failure leaves nothing to cross-check.
	assert.False(t, hasCheck(report, "History Ledger", "drift"))
}

func TestRunDuplicateHistoryIDs(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-first.sh", 0o755)
	writeHistory(t, dir, "00001-first 2024-01-02T03:04:05Z\n00001-first 2024-01-02T04:04:05Z\n")

	report := New(dir).Run()

	check := findCheck(t, report, "History Ledger", "duplicates")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Details, "00001-first")
}

func TestRunDriftWithoutBaseline(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00002-current.sh", 0o755)
	writeHistory(t, dir, "00001-gone 2024-01-02T03:04:05Z\n00002-current 2024-01-02T03:14:05Z\n")

	report := New(dir).Run()

	check := findCheck(t, report, "History Ledger", "drift")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Message, "1 applied migration(s) have no file and no covering baseline")
	assert.Contains(t, check.Details, "00001-gone")
}

func TestRunDriftCoveredByBaseline(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00002-current.sh", 0o755)
	writeHistory(t, dir, "00001-gone 2024-01-02T03:04:05Z\n00002-current 2024-01-02T03:14:05Z\n")
	require.NoError(t, baseline.WriteBaseline(dir, &baseline.Baseline{
		Version: "00001",
		Created: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}))

	report := New(dir).Run()

	assert.Equal(t, StatusPass, findCheck(t, report, "History Ledger", "drift").Status)
	assert.Equal(t, StatusPass, findCheck(t, report, "Baseline", "coverage").Status)
	assert.False(t, report.HasErrors())
}

func TestRunCorruptBaseline(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-first.sh", 0o755)
	writeHistory(t, dir, "00001-first 2024-01-02T03:04:05Z\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".baseline"), []byte("created: 2024-01-01T00:00:00Z\n"), 0o644))

	report := New(dir).Run()

	check := findCheck(t, report, "Baseline", "parses")
	assert.Equal(t, StatusFail, check.Status)
	assert.Contains(t, check.Details, "missing 'version' field")
	assert.True(t, report.HasErrors())
}

func TestRunBaselineUnappliedCoverage(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-sneaked-in.sh", 0o755)
	require.NoError(t, baseline.WriteBaseline(dir, &baseline.Baseline{
		Version: "00002",
		Created: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}))

	report := New(dir).Run()

	check := findCheck(t, report, "Baseline", "coverage")
	assert.Equal(t, StatusFail, check.Status)
	assert.Contains(t, check.Message, "1 migration file(s) below the baseline were never applied")
	assert.Contains(t, check.Details, "00001-sneaked-in")
	assert.True(t, report.HasErrors())
}

func TestRunBaselineKeptFiles(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "00001-kept.sh", 0o755)
	writeHistory(t, dir, "00001-kept 2024-01-02T03:04:05Z\n")
	require.NoError(t, baseline.WriteBaseline(dir, &baseline.Baseline{
		Version: "00002",
		Created: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}))

	report := New(dir).Run()

	check := findCheck(t, report, "Baseline", "current")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Message, "Current version '00001' is below the baseline '00002'")
	assert.False(t, report.HasErrors())
}

func TestRunBaselineInvalidVersionCode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, baseline.WriteBaseline(dir, &baseline.Baseline{
		Version: "not-a-version",
		Created: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}))

	report := New(dir).Run()

	check := findCheck(t, report, "Baseline", "version")
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Message, "'not-a-version' is not a valid version code")
}

func TestReportAddCheckCounts(t *testing.T) {
	report := &Report{}
	report.AddCheck(CheckResult{Status: StatusPass})
	report.AddCheck(CheckResult{Status: StatusPass})
	report.AddCheck(CheckResult{Status: StatusWarn})
	report.AddCheck(CheckResult{Status: StatusFail})

	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, 1, report.Errors)
	assert.True(t, report.HasErrors())
}

func TestReportPrintGroupsByCategory(t *testing.T) {
	report := &Report{}
	report.AddCheck(CheckResult{Category: "Alpha", Status: StatusPass, Message: "first alpha"})
	report.AddCheck(CheckResult{Category: "Beta", Status: StatusWarn, Message: "only beta", FixHint: "do the thing"})
	report.AddCheck(CheckResult{Category: "Alpha", Status: StatusPass, Message: "second alpha"})

	var buf bytes.Buffer
	report.Print(&buf, false)
	out := buf.String()

	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "first alpha")
	assert.Contains(t, out, "second alpha")
	assert.Contains(t, out, "only beta")
	assert.Contains(t, out, "Fix: do the thing")
	assert.Contains(t, out, "Summary: 2 passed, 1 warnings, 0 errors")

	// Both Alpha checks render under a single header.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("first alpha")), bytes.Index(buf.Bytes(), []byte("second alpha")))
}

func TestReportPrintVerboseDetails(t *testing.T) {
	report := &Report{}
	report.AddCheck(CheckResult{Category: "Alpha", Status: StatusWarn, Message: "has details", Details: "line one\nline two"})

	var quiet bytes.Buffer
	report.Print(&quiet, false)
	assert.NotContains(t, quiet.String(), "line one")

	var verbose bytes.Buffer
	report.Print(&verbose, true)
	assert.Contains(t, verbose.String(), "      line one")
	assert.Contains(t, verbose.String(), "      line two")
}

func TestReportPrintHintOnlyOnProblems(t *testing.T) {
	report := &Report{}
	report.AddCheck(CheckResult{Category: "Alpha", Status: StatusPass, Message: "fine", FixHint: "should not show"})

	var buf bytes.Buffer
	report.Print(&buf, true)
	assert.NotContains(t, buf.String(), "Fix:")
}

func TestStatusStrings(t *testing.T) {
	tests := []struct {
		status Status
		str    string
		symbol string
	}{
		{StatusPass, "pass", "✓"},
		{StatusWarn, "warn", "⚠"},
		{StatusFail, "fail", "✗"},
		{Status(42), "unknown", "?"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.str {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.str)
		}
		if got := tt.status.Symbol(); got != tt.symbol {
			t.Errorf("Status(%d).Symbol() = %q, want %q", tt.status, got, tt.symbol)
		}
	}
}
