// Package subject provides low-level execution of the supervisor binary
// under test. It is internal to the tracecheck package.
package subject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes the subject binary and drains its output.
type Runner struct {
	binaryPath string
}

// New creates a Runner bound to the given binary path.
func New(binaryPath string) *Runner {
	return &Runner{binaryPath: binaryPath}
}

// BinaryPath returns the path to the subject binary.
func (r *Runner) BinaryPath() string {
	return r.binaryPath
}

// Run executes the subject with the given arguments and blocks until it
// terminates. Stdin is connected to the null device and stderr is merged
// into stdout, so lines holds the complete interleaved output in order.
//
// A nonzero exit status is a valid outcome and is reported through status,
// not err. err is reserved for environment failures: the binary could not
// be started at all.
func (r *Runner) Run(dir string, env []string, args ...string) (lines []string, status int, err error) {
	return r.RunContext(context.Background(), dir, env, args...)
}

// RunContext is Run with a caller-supplied context.
func (r *Runner) RunContext(ctx context.Context, dir string, env []string, args ...string) ([]string, int, error) {
	cmd := exec.CommandContext(ctx, r.binaryPath, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return splitLines(out.String()), exitErr.ExitCode(), nil
		}
		return nil, 0, &Error{Op: "run", Args: args, Err: err}
	}

	return splitLines(out.String()), 0, nil
}

// splitLines splits raw output on newlines. A trailing newline yields a
// final empty element, which matches how the captured trace is indexed.
func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Split(raw, "\n")
}

// Error represents a failure to execute the subject binary.
type Error struct {
	Op   string
	Args []string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("subject %s failed: %v (args: %s)", e.Op, e.Err, strings.Join(e.Args, " "))
}

func (e *Error) Unwrap() error {
	return e.Err
}
