package tracecheck

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

// Marker is the level token a line must carry to be eligible for pattern
// matching. The subject emits it only at its highest verbosity.
const Marker = "TRACE"

// Trace is the complete, ordered output of one supervised run. It is built
// once, after the subject has exited and its output is fully drained, and is
// never modified afterwards.
type Trace struct {
	lines []string
}

// NewTrace creates a Trace from captured output lines. The slice is copied;
// callers may reuse it.
func NewTrace(lines []string) *Trace {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Trace{lines: cp}
}

// Len returns the number of captured lines.
func (tr *Trace) Len() int {
	return len(tr.lines)
}

// Line returns a single captured line (0-indexed).
// Panics if n is out of range.
func (tr *Trace) Line(n int) string {
	return tr.lines[n]
}

// Lines returns a copy of all captured lines.
func (tr *Trace) Lines() []string {
	cp := make([]string, len(tr.lines))
	copy(cp, tr.lines)
	return cp
}

// Marked returns only the lines carrying the level marker, the ones eligible
// for pattern matching.
func (tr *Trace) Marked() []string {
	var marked []string
	for _, l := range tr.lines {
		if strings.Contains(l, Marker) {
			marked = append(marked, l)
		}
	}
	return marked
}

// Dump writes every captured line to w. Used for debugging failed scans.
func (tr *Trace) Dump(w io.Writer) {
	for _, l := range tr.lines {
		fmt.Fprintln(w, l)
	}
}

func (tr *Trace) String() string {
	return strings.Join(tr.lines, "\n")
}

// A Cursor drives matchers over a Trace. It holds a scan position that only
// moves forward, except for an explicit Restart. Failure to observe an
// expected event fails the test case through the associated testing.TB.
type Cursor struct {
	t     testing.TB
	trace *Trace
	index int
}

// NewCursor creates a Cursor positioned at the start of the trace.
func NewCursor(t testing.TB, tr *Trace) *Cursor {
	return &Cursor{t: t, trace: tr}
}

// That scans forward from the current position until m reports completion.
// Every line examined is used up from the cursor's point of view, whether or
// not it satisfied the matcher; on success the position is one past the
// satisfying line. If the trace is exhausted first the test case fails with
// the matcher's description and a dump of the trace.
func (c *Cursor) That(m Matcher) *Cursor {
	c.t.Helper()

	for c.index < c.trace.Len() {
		line := c.trace.Line(c.index)
		c.index++
		if m.Match(line) {
			return c
		}
	}

	remainder := c.trace.lines[c.index:]
	c.t.Fatalf("tracecheck: scan: event has not occurred\n    waiting for: %s\n    unconsumed lines:\n%s\n    full trace:\n%s",
		m, formatLines(remainder), formatLines(c.trace.lines))
	return c
}

// Then is an alias for That. It reads better in chained assertions:
// first this pattern completed, and only afterwards scanning for the next
// one begins.
func (c *Cursor) Then(m Matcher) *Cursor {
	c.t.Helper()
	return c.That(m)
}

// Restart resets the scan position to the beginning of the trace, so that a
// later assertion can inspect the whole trace instead of only the remaining
// suffix.
func (c *Cursor) Restart() *Cursor {
	c.index = 0
	return c
}

// Index returns the current scan position.
func (c *Cursor) Index() int {
	return c.index
}

func formatLines(lines []string) string {
	if len(lines) == 0 {
		return "        (none)"
	}
	var b strings.Builder
	for i, l := range lines {
		b.WriteString("        ")
		b.WriteString(l)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
