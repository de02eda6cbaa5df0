package baseline

import "errors"

// Sentinel errors for baseline parsing and validation. Parse errors mean
// the .baseline file on disk is malformed; validation errors mean a
// requested baseline operation is not permitted by the current state.
//
// Use the Is*Err helper functions to check for specific errors.
var (
	// ErrMissingVersion is returned when a baseline file has no 'version' field.
	ErrMissingVersion = errors.New("waymark/baseline: missing 'version' field")

	// ErrMissingCreated is returned when a baseline file has no 'created' field.
	ErrMissingCreated = errors.New("waymark/baseline: missing 'created' field")

	// ErrInvalidTimestamp is returned when the 'created' field does not
	// parse as RFC3339.
	ErrInvalidTimestamp = errors.New("waymark/baseline: invalid timestamp")

	// ErrVersionNotFound is returned when a baseline is requested at a
	// version no available migration carries.
	ErrVersionNotFound = errors.New("waymark/baseline: no migration found")

	// ErrBackwardMove is returned when a requested baseline version is
	// lower than the existing baseline's version.
	ErrBackwardMove = errors.New("waymark/baseline: cannot move baseline backward")

	// ErrUnappliedMigration is returned when a migration the baseline
	// would cover has no record in the history ledger.
	ErrUnappliedMigration = errors.New("waymark/baseline: migration has not been applied")
)

// IsMissingVersionErr returns true if err is or wraps ErrMissingVersion.
func IsMissingVersionErr(err error) bool {
	return errors.Is(err, ErrMissingVersion)
}

// IsMissingCreatedErr returns true if err is or wraps ErrMissingCreated.
func IsMissingCreatedErr(err error) bool {
	return errors.Is(err, ErrMissingCreated)
}

// IsInvalidTimestampErr returns true if err is or wraps ErrInvalidTimestamp.
func IsInvalidTimestampErr(err error) bool {
	return errors.Is(err, ErrInvalidTimestamp)
}

// IsVersionNotFoundErr returns true if err is or wraps ErrVersionNotFound.
func IsVersionNotFoundErr(err error) bool {
	return errors.Is(err, ErrVersionNotFound)
}

// IsBackwardMoveErr returns true if err is or wraps ErrBackwardMove.
func IsBackwardMoveErr(err error) bool {
	return errors.Is(err, ErrBackwardMove)
}

// IsUnappliedMigrationErr returns true if err is or wraps ErrUnappliedMigration.
func IsUnappliedMigrationErr(err error) bool {
	return errors.Is(err, ErrUnappliedMigration)
}

// IsParseErr returns true if err is any of the baseline parse errors.
func IsParseErr(err error) bool {
	return IsMissingVersionErr(err) || IsMissingCreatedErr(err) || IsInvalidTimestampErr(err)
}
