package tracecheck

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/F1rst-Unicorn/tracecheck/internal/subject"
)

const (
	binaryEnv  = "TRACECHECK_UUT"
	verboseEnv = "TRACECHECK_VERBOSE"

	defaultBinaryName = "cinit"
)

// Result holds the outcome of one supervised run: the captured trace, the
// subject's exit code, and the location of the per-child descriptor records.
type Result struct {
	t        testing.TB
	trace    *Trace
	cursor   *Cursor
	exitCode int
	dumpDir  string
}

// Run launches the subject binary with its fixed diagnostic flags and the
// configuration found in configDir, waits for it to terminate, and captures
// its complete output. Descriptor records written by spawned children are
// removed automatically via t.Cleanup.
//
// A nonzero exit code is a valid, assertable outcome. Failure to start the
// subject at all fails the test immediately.
func Run(t testing.TB, configDir string, userOpts ...Option) *Result {
	t.Helper()

	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}

	binary := resolveBinary(t, opts.binary)

	args := make([]string, 0, opts.verbosity+2+len(opts.args))
	for i := 0; i < opts.verbosity; i++ {
		args = append(args, "--verbose")
	}
	args = append(args, "--config", filepath.Join(configDir, "config"))
	args = append(args, opts.args...)

	runner := subject.New(binary)
	lines, exitCode, err := runner.Run(opts.dir, opts.env, args...)
	if err != nil {
		t.Fatalf("tracecheck: run: %v", err)
	}

	tr := NewTrace(lines)

	dumpDir := opts.childDumpDir
	if !filepath.IsAbs(dumpDir) && opts.dir != "" {
		dumpDir = filepath.Join(opts.dir, dumpDir)
	}
	t.Cleanup(func() {
		removeChildDumps(dumpDir)
	})

	if opts.dumpLog || os.Getenv(verboseEnv) == "1" {
		t.Logf("tracecheck: run: full trace:\n%s", tr)
	}

	return &Result{
		t:        t,
		trace:    tr,
		cursor:   NewCursor(t, tr),
		exitCode: exitCode,
		dumpDir:  dumpDir,
	}
}

// resolveBinary determines the subject binary path by checking, in order:
// 1. WithBinary option
// 2. TRACECHECK_UUT environment variable
// 3. $PATH lookup
func resolveBinary(t testing.TB, configured string) string {
	t.Helper()

	if configured != "" {
		return configured
	}

	if envPath := os.Getenv(binaryEnv); envPath != "" {
		return envPath
	}

	found, err := exec.LookPath(defaultBinaryName)
	if err != nil {
		t.Skipf("tracecheck: run: subject binary not found (set %s)", binaryEnv)
	}
	return found
}

// OnTrace returns the cursor scanning this run's trace. Repeated calls
// return the same cursor, so chained assertions continue where the previous
// one stopped.
func (r *Result) OnTrace() *Cursor {
	return r.cursor
}

// Trace returns the captured trace.
func (r *Result) Trace() *Trace {
	return r.trace
}

// ExitCode returns the subject's exit code.
func (r *Result) ExitCode() int {
	return r.exitCode
}

// AssertExitCode fails the test unless the subject exited with want.
func (r *Result) AssertExitCode(want int) *Result {
	r.t.Helper()
	if r.exitCode != want {
		r.t.Fatalf("tracecheck: exit code: want %d, got %d\n    full trace:\n%s",
			want, r.exitCode, formatLines(r.trace.lines))
	}
	return r
}

// Child reads the descriptor record the named child persisted during this
// run. The test fails if the record is missing or malformed.
func (r *Result) Child(name string) *Child {
	r.t.Helper()
	return OpenChild(r.t, r.dumpDir, name)
}

// AssertNoChild fails the test if the named child persisted a descriptor
// record, i.e. if it was ever executed.
func (r *Result) AssertNoChild(name string) *Result {
	r.t.Helper()
	RequireNoChild(r.t, r.dumpDir, name)
	return r
}

// removeChildDumps empties the descriptor directory between test cases.
// A missing directory is fine; the subject may not have spawned anything.
func removeChildDumps(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		os.Remove(filepath.Join(dir, e.Name()))
	}
}
