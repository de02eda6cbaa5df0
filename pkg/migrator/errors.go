package migrator

import (
	"errors"
	"fmt"
)

// Sentinel errors for create validation failures. Both are checked before
// anything is written.
var (
	// ErrUnknownTemplate is returned when create names a template not in
	// the catalog.
	ErrUnknownTemplate = errors.New("waymark/migrator: unknown template")

	// ErrAlreadyExists is returned when the generated migration filename
	// is already taken.
	ErrAlreadyExists = errors.New("waymark/migrator: migration file already exists")
)

// IsUnknownTemplateErr returns true if err is or wraps ErrUnknownTemplate.
func IsUnknownTemplateErr(err error) bool {
	return errors.Is(err, ErrUnknownTemplate)
}

// IsAlreadyExistsErr returns true if err is or wraps ErrAlreadyExists.
func IsAlreadyExistsErr(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// ExecError reports a migration script that ran and exited non-zero. It
// carries the failing migration so callers can act on it without parsing
// the message.
type ExecError struct {
	ID       string
	ExitCode int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("migration %s failed with exit code %d", e.ID, e.ExitCode)
}

// IsExecErr returns true if err is or wraps an ExecError.
func IsExecErr(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr)
}
