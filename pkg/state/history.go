// Package state persists and derives waymark's applied-migration state.
//
// The on-disk state is the append-only .history ledger inside the
// migrations directory. Current and target versions and the pending set
// are derived fresh from a snapshot on every command; nothing is cached
// between runs.
package state

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HistoryFile is the ledger filename inside a migrations directory.
const HistoryFile = ".history"

// AppliedMigration is one ledger record.
type AppliedMigration struct {
	ID        string
	AppliedAt time.Time
}

// ErrInvalidTimestamp is returned when a well-formed history line carries a
// timestamp that does not parse as RFC3339. Lines that do not split into
// two tokens are skipped instead: a corrupted trailing line must not block
// reading prior valid history, but a record that claims to exist with
// unreadable metadata is real corruption.
var ErrInvalidTimestamp = errors.New("waymark/state: invalid timestamp in history file")

// IsInvalidTimestampErr returns true if err is or wraps ErrInvalidTimestamp.
func IsInvalidTimestampErr(err error) bool {
	return errors.Is(err, ErrInvalidTimestamp)
}

// ReadHistory returns the applied records in application order. A missing
// ledger is an empty history, not an error.
func ReadHistory(dir string) ([]AppliedMigration, error) {
	path := filepath.Join(dir, HistoryFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var applied []AppliedMigration
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		appliedAt, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimestamp, parts[1])
		}

		applied = append(applied, AppliedMigration{ID: parts[0], AppliedAt: appliedAt})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history file %s: %w", path, err)
	}

	return applied, nil
}

// AppendHistory records one applied migration. The ledger is opened in
// create-or-append mode and prior content is never rewritten, so records
// survive any later failure.
func AppendHistory(dir, id string, appliedAt time.Time) error {
	path := filepath.Join(dir, HistoryFile)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s %s\n", id, appliedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing history file %s: %w", path, err)
	}
	return nil
}
