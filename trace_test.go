package tracecheck_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F1rst-Unicorn/tracecheck"
)

func TestTraceCopiesInput(t *testing.T) {
	lines := []string{traceLine("Exiting")}
	tr := tracecheck.NewTrace(lines)

	lines[0] = "overwritten"
	assert.Equal(t, traceLine("Exiting"), tr.Line(0))

	cp := tr.Lines()
	cp[0] = "overwritten"
	assert.Equal(t, traceLine("Exiting"), tr.Line(0))
}

func TestTraceMarked(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child first"),
		"2019-08-13T21:12:43.113 DEBUG [cinit] bookkeeping",
		"",
		traceLine("Exiting"),
	})

	marked := tr.Marked()
	require.Len(t, marked, 2)
	assert.Contains(t, marked[0], "Started child first")
	assert.Contains(t, marked[1], "Exiting")
}

func TestTraceDump(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child first"),
		traceLine("Exiting"),
	})

	var b strings.Builder
	tr.Dump(&b)
	assert.Equal(t, tr.String()+"\n", b.String())
}

func TestCursorIsMonotonic(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child first"),
		traceLine("Child first exited successfully"),
		traceLine("Exiting"),
	})

	c := tracecheck.NewCursor(t, tr)
	before := c.Index()
	c.That(tracecheck.ChildSpawned("first"))
	assert.GreaterOrEqual(t, c.Index(), before)

	before = c.Index()
	c.That(tracecheck.Exited())
	assert.GreaterOrEqual(t, c.Index(), before)
}

// A failed scan still only moves forward: it stops at the end of the trace.
func TestFailedScanExhaustsTrace(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child first"),
	})

	rec := record(t)
	c := tracecheck.NewCursor(rec, tr)
	c.That(tracecheck.Exited())

	assert.True(t, rec.failed)
	assert.Equal(t, tr.Len(), c.Index())
}

// Lines consumed by an earlier scan are not visible to a later one.
func TestScansConsumeLines(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child first"),
		traceLine("Exiting"),
	})

	rec := record(t)
	c := tracecheck.NewCursor(rec, tr)
	c.That(tracecheck.Exited())
	assert.False(t, rec.failed)

	c.That(tracecheck.ChildSpawned("first"))
	assert.True(t, rec.failed)
}

func TestRestartRescansFromStart(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child first"),
		traceLine("Child first exited successfully"),
		traceLine("Exiting"),
	})

	c := tracecheck.NewCursor(t, tr)
	c.That(tracecheck.Exited())
	assert.Equal(t, 3, c.Index())

	c.Restart()
	assert.Equal(t, 0, c.Index())

	// Lines consumed before the restart are matchable again.
	c.That(tracecheck.ChildSpawned("first")).
		Then(tracecheck.ChildExited("first")).
		Then(tracecheck.Exited())
	assert.Equal(t, 3, c.Index())
}

func TestThenModelsSuccession(t *testing.T) {
	tr := tracecheck.NewTrace([]string{
		traceLine("Started child a"),
		traceLine("Started child b"),
	})

	// "b then a" must fail even though both events occurred.
	rec := record(t)
	c := tracecheck.NewCursor(rec, tr)
	c.That(tracecheck.ChildSpawned("b")).Then(tracecheck.ChildSpawned("a"))
	assert.True(t, rec.failed)
}
