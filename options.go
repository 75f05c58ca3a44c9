package tracecheck

type options struct {
	binary       string
	args         []string
	env          []string
	dir          string
	childDumpDir string
	verbosity    int
	dumpLog      bool
}

func defaultOptions() options {
	return options{
		verbosity:    2,
		childDumpDir: "child-dump",
	}
}

// Option configures a subject run started by Run.
type Option func(*options)

// WithBinary sets the path to the subject binary. Defaults to the
// TRACECHECK_UUT environment variable, falling back to a $PATH lookup
// for "cinit".
func WithBinary(path string) Option {
	return func(o *options) {
		o.binary = path
	}
}

// WithArgs appends extra arguments after the fixed diagnostic flags.
func WithArgs(args ...string) Option {
	return func(o *options) {
		o.args = append(o.args, args...)
	}
}

// WithEnv appends environment variables to the subject's environment.
// Each entry should be in "KEY=VALUE" format.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithDir sets the working directory for the subject.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithChildDumpDir sets the directory holding per-child descriptor records.
// Defaults to "child-dump" relative to the working directory. The directory
// is emptied during test cleanup.
func WithChildDumpDir(dir string) Option {
	return func(o *options) {
		o.childDumpDir = dir
	}
}

// WithVerbosity sets how many --verbose flags are passed to the subject.
// The default of 2 enables the trace-level lines the matchers rely on.
func WithVerbosity(n int) Option {
	return func(o *options) {
		o.verbosity = n
	}
}

// WithDumpLog logs the full trace after the run, even on success. The
// TRACECHECK_VERBOSE environment variable enables the same behavior for all
// runs.
func WithDumpLog() Option {
	return func(o *options) {
		o.dumpLog = true
	}
}
