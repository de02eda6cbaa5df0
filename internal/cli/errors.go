// Package cli provides shared configuration and utilities for the waymark CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes reported by the waymark binary. Scripts driving waymark can
// branch on the class of failure without parsing stderr.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitValidation = 2
	ExitParse      = 3
	ExitIO         = 4
	ExitExecution  = 5
	ExitConfig     = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitWithError prints the error and exits with the appropriate code.
func ExitWithError(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Error())
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitGeneral)
}

// GeneralError creates an ExitError with ExitGeneral code.
func GeneralError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitGeneral, Message: msg, Err: err}
}

// ValidationError creates an ExitError with ExitValidation code.
func ValidationError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitValidation, Message: msg, Err: err}
}

// ParseError creates an ExitError with ExitParse code.
func ParseError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitParse, Message: msg, Err: err}
}

// IOError creates an ExitError with ExitIO code.
func IOError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitIO, Message: msg, Err: err}
}

// ExecutionError creates an ExitError with ExitExecution code.
func ExecutionError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitExecution, Message: msg, Err: err}
}

// ConfigError creates an ExitError with ExitConfig code.
func ConfigError(msg string, err error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Err: err}
}
