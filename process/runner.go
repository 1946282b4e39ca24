// Package process runs the audit as a separate process.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/fwojciec/themecheck"
)

// Compile-time interface verification.
var _ themecheck.AuditRunner = (*Runner)(nil)

// Argument placeholders substituted in Command.
const (
	SnapshotArg = "{snapshot}"
	SourceArg   = "{source}"
)

// Runner executes an audit command and reports its exit code.
type Runner struct {
	Command []string  // argv; placeholders are substituted in every element
	Dir     string    // Working directory; empty for the current one
	Stdout  io.Writer // Receives the audit's report
	Stderr  io.Writer // Receives the audit's diagnostics
}

// NewRunner creates a runner for the given argv.
func NewRunner(command []string, stdout, stderr io.Writer) *Runner {
	return &Runner{Command: command, Stdout: stdout, Stderr: stderr}
}

// Run blocks until the audit exits. A nonzero exit code is returned
// without an error; err is non-nil only when the command could not be run
// to completion, including cancellation of ctx.
func (r *Runner) Run(ctx context.Context, snapshotPath, sourcePath string) (int, error) {
	if len(r.Command) == 0 {
		return 0, errors.New("audit command is empty")
	}

	argv := r.Args(snapshotPath, sourcePath)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, fmt.Errorf("audit %s: %w", argv[0], ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// killed by a signal
			code = 1
		}
		return code, nil
	}
	return 0, fmt.Errorf("audit %s: %w", argv[0], err)
}

// Args returns the argv with placeholders substituted.
func (r *Runner) Args(snapshotPath, sourcePath string) []string {
	rep := strings.NewReplacer(SnapshotArg, snapshotPath, SourceArg, sourcePath)
	argv := make([]string, len(r.Command))
	for i, a := range r.Command {
		argv[i] = rep.Replace(a)
	}
	return argv
}
