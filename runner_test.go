package tracecheck_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/F1rst-Unicorn/tracecheck"
)

var testBinary string

const scanFailHelperEnv = "TRACECHECK_SCANFAIL_HELPER"

func TestMain(m *testing.M) {
	// Build the fake supervisor fixture.
	dir, err := os.MkdirTemp("", "tracecheck-testbin-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	binPath := filepath.Join(dir, "testbin")
	cmd := exec.Command("go", "build", "-o", binPath, "./internal/testbin")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build testbin: %v\n", err)
		os.Exit(1)
	}

	testBinary = binPath
	os.Exit(m.Run())
}

// runFixture runs the fake supervisor with descriptor records redirected to
// a per-test directory.
func runFixture(t *testing.T, configDir string, opts ...tracecheck.Option) (*tracecheck.Result, string) {
	t.Helper()
	dumpDir := filepath.Join(t.TempDir(), "child-dump")
	opts = append([]tracecheck.Option{
		tracecheck.WithBinary(testBinary),
		tracecheck.WithChildDumpDir(dumpDir),
		tracecheck.WithArgs("--child-dump", dumpDir),
	}, opts...)
	return tracecheck.Run(t, configDir, opts...), dumpDir
}

func TestRunSingleChild(t *testing.T) {
	res, _ := runFixture(t, "testdata/single-child")

	res.AssertExitCode(0)
	res.OnTrace().That(tracecheck.Sequential(
		tracecheck.ChildSpawned("ping"),
		tracecheck.ChildExited("ping"),
		tracecheck.Exited(),
	))

	res.Child("ping").
		AssertArg("-c 4").
		AssertArg("google.ch").
		AssertUID(0).
		AssertGID(0).
		AssertDefaultEnv().
		AssertPTY(false).
		AssertCapabilities([]string{"CAP_NET_RAW"})
}

func TestRunCrashedChild(t *testing.T) {
	res, _ := runFixture(t, "testdata/crash")

	res.AssertExitCode(6)
	res.OnTrace().That(tracecheck.Sequential(
		tracecheck.ChildSpawned("first"),
		tracecheck.ChildCrashed("first", 42),
		tracecheck.Exited(),
	))

	res.Child("first").
		AssertUID(0).
		AssertGID(0).
		AssertDefaultEnv().
		AssertPTY(false)
	res.AssertNoChild("second")
}

func TestRunParallelChildren(t *testing.T) {
	res, _ := runFixture(t, "testdata/two-children")

	res.AssertExitCode(0)
	res.OnTrace().That(tracecheck.Sequential(
		tracecheck.Parallel(
			tracecheck.Sequential(tracecheck.ChildSpawned("alpha"), tracecheck.ChildExited("alpha")),
			tracecheck.Sequential(tracecheck.ChildSpawned("beta"), tracecheck.ChildExited("beta")),
		),
		tracecheck.Exited(),
	))
}

func TestRunCronjobChild(t *testing.T) {
	res, _ := runFixture(t, "testdata/cronjob")

	res.AssertExitCode(0)
	res.OnTrace().That(tracecheck.Sequential(
		tracecheck.ChildSpawned("tick"),
		tracecheck.ChildSleeping("tick"),
		tracecheck.Exited(),
	))
}

func TestRunChaining(t *testing.T) {
	res, _ := runFixture(t, "testdata/two-children")

	c := res.OnTrace()
	c.That(tracecheck.ChildSpawned("alpha")).
		Then(tracecheck.ChildSpawned("beta")).
		Then(tracecheck.Exited())

	// A later assertion over the whole trace needs an explicit restart.
	c.Restart()
	c.That(tracecheck.ChildExited("alpha"))
}

func TestRunRepeatedOnTrace(t *testing.T) {
	res, _ := runFixture(t, "testdata/single-child")

	res.OnTrace().That(tracecheck.ChildSpawned("ping"))
	// The same cursor continues where the previous assertion stopped.
	res.OnTrace().That(tracecheck.Exited())
	assert.Positive(t, res.OnTrace().Index())
}

func TestRunEnvOverride(t *testing.T) {
	res, _ := runFixture(t, "testdata/env-child")

	res.AssertExitCode(0)
	res.Child("envy").
		AssertEnv("ANSWER", "42").
		AssertNotEnv("HOME")
}

// The failure path aborts the test through t.Fatal, so it is observed from
// a subprocess: the test reruns itself with a helper environment variable
// set and inspects the child's output.
func TestRunScanFailureDiagnostics(t *testing.T) {
	if os.Getenv(scanFailHelperEnv) == "1" {
		res, _ := runFixture(t, "testdata/single-child")
		res.OnTrace().That(tracecheck.ChildSpawned("never-started"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "^TestRunScanFailureDiagnostics$")
	cmd.Env = append(os.Environ(), scanFailHelperEnv+"=1", "TRACECHECK_UUT="+testBinary)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected subprocess to fail, output:\n%s", string(out))
	}

	output := string(out)
	if !strings.Contains(output, "tracecheck: scan: event has not occurred") {
		t.Fatalf("expected scan failure message, got:\n%s", output)
	}
	if !strings.Contains(output, "waiting for: Started child never-started") {
		t.Fatalf("expected matcher description, got:\n%s", output)
	}
	if !strings.Contains(output, "full trace:") {
		t.Fatalf("expected trace dump, got:\n%s", output)
	}
}

func TestRunMissingBinaryFails(t *testing.T) {
	rec := record(t)
	tracecheck.Run(rec, "testdata/single-child",
		tracecheck.WithBinary(filepath.Join(t.TempDir(), "does-not-exist")))

	assert.True(t, rec.failed)
	assert.Contains(t, rec.msg, "tracecheck: run:")
}
