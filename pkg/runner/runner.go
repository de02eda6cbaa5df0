// Package runner executes migration scripts as child processes.
//
// Scripts are invoked directly, so they must carry an executable bit and a
// shebang line. The execution context travels in MIGRATE_* environment
// variables rather than arguments, keeping the script interface stable
// across interpreters.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Context is the execution context delivered to a migration script.
type Context struct {
	// ProjectRoot is the absolute path scripts should treat as the
	// working tree they modify. It is also the child's working directory.
	ProjectRoot string

	// MigrationsDir is the directory the script was discovered in.
	MigrationsDir string

	// MigrationID is the id of the migration being executed.
	MigrationID string

	// DryRun is forwarded so a script invoked out of band can tell a
	// rehearsal from a real run. The driver never invokes scripts during
	// its own dry runs.
	DryRun bool
}

// Result is the outcome of one script invocation.
type Result struct {
	Success  bool
	ExitCode int
}

// Runner runs one migration script and blocks until it exits. A non-zero
// exit is reported in the Result, not as an error; the error return is
// reserved for failures to run the script at all.
type Runner interface {
	Run(ctx context.Context, script string, rc Context) (Result, error)
}

// ScriptRunner runs scripts with exec, inheriting the parent's standard
// streams unless replaced. There is no timeout: a hung script blocks the
// run until its context is cancelled.
type ScriptRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewScriptRunner returns a ScriptRunner wired to the process streams.
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ScriptRunner) Run(ctx context.Context, script string, rc Context) (Result, error) {
	cmd := exec.CommandContext(ctx, script)
	cmd.Dir = rc.ProjectRoot
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = append(os.Environ(),
		"MIGRATE_PROJECT_ROOT="+rc.ProjectRoot,
		"MIGRATE_MIGRATIONS_DIR="+rc.MigrationsDir,
		"MIGRATE_ID="+rc.MigrationID,
		"MIGRATE_DRY_RUN="+strconv.FormatBool(rc.DryRun),
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Success: false, ExitCode: exitErr.ExitCode()}, nil
		}
		return Result{}, fmt.Errorf("running migration script %s: %w", script, err)
	}

	return Result{Success: true, ExitCode: 0}, nil
}
