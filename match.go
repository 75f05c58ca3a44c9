package tracecheck

import (
	"regexp"
	"strings"
)

// A Matcher is a predicate over trace lines. Match reports whether the
// matcher, including all of its remaining obligations, is fully satisfied
// after seeing line, not merely whether the line was relevant.
//
// Pattern and AnyOf are stateless and may be reused across scans.
// Sequential and Parallel consume their children as they match and must be
// constructed fresh for every scan.
type Matcher interface {
	Match(line string) bool

	// String returns a human-readable description for error messages,
	// derived from the variant and its remaining children.
	String() string
}

type pattern struct {
	expr string
	re   *regexp.Regexp
}

// Pattern matches a single line that carries the level marker and whose
// remainder satisfies expr as a full-line match. expr is a regular
// expression and may contain wildcards for dynamic content such as process
// identifiers or exit codes.
func Pattern(expr string) Matcher {
	return &pattern{
		expr: expr,
		re:   regexp.MustCompile(`\A(?:.*` + Marker + `.*` + expr + `)\z`),
	}
}

func (p *pattern) Match(line string) bool {
	return p.re.MatchString(line)
}

func (p *pattern) String() string {
	return p.expr
}

type sequential struct {
	pending []Matcher
}

// Sequential is satisfied once all children have matched, strictly in the
// given order. Only the first not-yet-satisfied child is tried against each
// line; a line that does not satisfy it consumes nothing. The first
// satisfying line binds each child permanently; there is no backtracking,
// so reordering children can change the outcome on the same trace.
func Sequential(children ...Matcher) Matcher {
	return &sequential{pending: children}
}

func (m *sequential) Match(line string) bool {
	if len(m.pending) > 0 && m.pending[0].Match(line) {
		m.pending = m.pending[1:]
	}
	return len(m.pending) == 0
}

func (m *sequential) String() string {
	return describe("Sequential", m.pending)
}

type parallel struct {
	pending []Matcher
}

// Parallel is satisfied once all children have matched, in any relative
// order. Every still-pending child is tried against every line, and a single
// line may satisfy more than one child in the same call.
func Parallel(children ...Matcher) Matcher {
	return &parallel{pending: children}
}

func (m *parallel) Match(line string) bool {
	kept := m.pending[:0]
	for _, c := range m.pending {
		if !c.Match(line) {
			kept = append(kept, c)
		}
	}
	m.pending = kept
	return len(m.pending) == 0
}

func (m *parallel) String() string {
	return describe("Parallel", m.pending)
}

type anyOf struct {
	children []Matcher
}

// AnyOf is satisfied by a line that satisfies at least one child. It carries
// no completion state across lines; it is a single-line disjunction meant to
// be nested inside Sequential or Parallel.
func AnyOf(children ...Matcher) Matcher {
	return &anyOf{children: children}
}

func (m *anyOf) Match(line string) bool {
	for _, c := range m.children {
		if c.Match(line) {
			return true
		}
	}
	return false
}

func (m *anyOf) String() string {
	return describe("AnyOf", m.children)
}

func describe(kind string, children []Matcher) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString("(\n")
	for _, c := range children {
		for _, l := range strings.Split(c.String(), "\n") {
			b.WriteString("    ")
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	b.WriteByte(')')
	return b.String()
}
