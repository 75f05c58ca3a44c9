package tracecheck

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// MatchGolden compares the trace against a golden file under
// testdata/<name>.golden. Run "go test -update" to create or update golden
// files.
//
// Content is normalized for stable diffs: trailing spaces are trimmed from
// each line, trailing blank lines are dropped, and the file ends with a
// single newline.
func (tr *Trace) MatchGolden(t *testing.T, name string) {
	t.Helper()
	g := goldie.New(t)
	g.Assert(t, name, []byte(normalizeForGolden(tr.String())))
}

// MatchGoldenDescription compares a matcher's rendered description against a
// golden file. Useful for pinning the diagnostic output of large matcher
// trees.
func MatchGoldenDescription(t *testing.T, name string, m Matcher) {
	t.Helper()
	g := goldie.New(t)
	g.Assert(t, name, []byte(normalizeForGolden(m.String())))
}

// normalizeForGolden normalizes content for stable golden file diffs.
func normalizeForGolden(raw string) string {
	lines := strings.Split(raw, "\n")

	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n") + "\n"
}
