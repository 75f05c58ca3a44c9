package tracecheck

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

// Child is the structured descriptor record a spawned child persists,
// keyed by its program name. It describes how the child was actually
// executed: arguments, identity, capabilities, environment, working
// directory. Field assertions are plain value comparisons; ordering of
// events is the trace's concern, not the record's.
type Child struct {
	t testing.TB

	name         string
	args         []string
	uid          int
	gid          int
	groups       []int
	pty          bool
	capabilities []string
	env          map[string]string
	workdir      string
}

type dumpFile struct {
	Programs []dumpProgram `yaml:"programs"`
}

type dumpProgram struct {
	Args         []string          `yaml:"args"`
	UID          int               `yaml:"uid"`
	GID          int               `yaml:"gid"`
	Groups       []int             `yaml:"groups"`
	PTY          bool              `yaml:"pty"`
	Capabilities []string          `yaml:"capabilities"`
	Env          map[string]string `yaml:"env"`
	Workdir      string            `yaml:"workdir"`
}

// DefaultEnvKeys is the environment a child receives when its configuration
// requests none explicitly.
var DefaultEnvKeys = []string{
	"HOME",
	"LANG",
	"LANGUAGE",
	"LOGNAME",
	"PATH",
	"PWD",
	"SHELL",
	"TERM",
	"USER",
}

// OpenChild reads the descriptor record for the named child from dir.
// A missing or malformed record fails the test: if the child legitimately
// never ran, assert that with RequireNoChild instead.
func OpenChild(t testing.TB, dir, name string) *Child {
	t.Helper()

	path := filepath.Join(dir, name+".yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("tracecheck: child %q: no descriptor record: %v", name, err)
		return nil
	}

	var dump dumpFile
	if err := yaml.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("tracecheck: child %q: malformed descriptor record: %v", name, err)
		return nil
	}
	if len(dump.Programs) == 0 {
		t.Fatalf("tracecheck: child %q: descriptor record holds no program", name)
		return nil
	}

	p := dump.Programs[0]
	return &Child{
		t:            t,
		name:         name,
		args:         p.Args,
		uid:          p.UID,
		gid:          p.GID,
		groups:       p.Groups,
		pty:          p.PTY,
		capabilities: p.Capabilities,
		env:          p.Env,
		workdir:      p.Workdir,
	}
}

// RequireNoChild fails the test if the named child persisted a descriptor
// record in dir, i.e. if it was ever executed.
func RequireNoChild(t testing.TB, dir, name string) {
	t.Helper()

	path := filepath.Join(dir, name+".yml")
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("tracecheck: child %q did execute (found %s)", name, path)
	}
}

// AssertArg fails unless the child was executed with the given argument.
func (c *Child) AssertArg(arg string) *Child {
	c.t.Helper()
	if !slices.Contains(c.args, arg) {
		c.t.Fatalf("tracecheck: child %q: argument %q not found in %q", c.name, arg, c.args)
	}
	return c
}

// AssertWorkdir fails unless the child ran in the given working directory.
func (c *Child) AssertWorkdir(dir string) *Child {
	c.t.Helper()
	if c.workdir != dir {
		c.t.Fatalf("tracecheck: child %q: workdir mismatch: want %q, got %q", c.name, dir, c.workdir)
	}
	return c
}

// AssertUID fails unless the child ran with the given user id.
func (c *Child) AssertUID(uid int) *Child {
	c.t.Helper()
	if c.uid != uid {
		c.t.Fatalf("tracecheck: child %q: uid mismatch: want %d, got %d", c.name, uid, c.uid)
	}
	return c
}

// AssertGID fails unless the child ran with the given group id.
func (c *Child) AssertGID(gid int) *Child {
	c.t.Helper()
	if c.gid != gid {
		c.t.Fatalf("tracecheck: child %q: gid mismatch: want %d, got %d", c.name, gid, c.gid)
	}
	return c
}

// AssertGroups fails unless the child's supplementary groups equal groups.
func (c *Child) AssertGroups(groups []int) *Child {
	c.t.Helper()
	if !slices.Equal(c.groups, groups) {
		c.t.Fatalf("tracecheck: child %q: groups mismatch: want %v, got %v", c.name, groups, c.groups)
	}
	return c
}

// AssertPTY fails unless the child's pseudo-terminal flag equals pty.
func (c *Child) AssertPTY(pty bool) *Child {
	c.t.Helper()
	if c.pty != pty {
		c.t.Fatalf("tracecheck: child %q: pty mismatch: want %v, got %v", c.name, pty, c.pty)
	}
	return c
}

// AssertCapabilities fails unless the child's capability set equals want,
// ignoring order.
func (c *Child) AssertCapabilities(want []string) *Child {
	c.t.Helper()
	got := slices.Clone(c.capabilities)
	wantSorted := slices.Clone(want)
	slices.Sort(got)
	slices.Sort(wantSorted)
	if !slices.Equal(got, wantSorted) {
		c.t.Fatalf("tracecheck: child %q: capabilities mismatch: want %v, got %v", c.name, want, c.capabilities)
	}
	return c
}

// AssertCapabilitiesAtLeast fails unless every capability in want is held.
func (c *Child) AssertCapabilitiesAtLeast(want []string) *Child {
	c.t.Helper()
	for _, capability := range want {
		if !slices.Contains(c.capabilities, capability) {
			c.t.Fatalf("tracecheck: child %q: capability %q not held (got %v)", c.name, capability, c.capabilities)
		}
	}
	return c
}

// AssertDefaultEnv fails unless the child's environment holds exactly the
// default key set.
func (c *Child) AssertDefaultEnv() *Child {
	c.t.Helper()
	return c.AssertEnvKeys(DefaultEnvKeys)
}

// AssertEnvKeys fails unless the child's environment holds exactly the given
// keys, regardless of their values.
func (c *Child) AssertEnvKeys(keys []string) *Child {
	c.t.Helper()
	got := make([]string, 0, len(c.env))
	for k := range c.env {
		got = append(got, k)
	}
	want := slices.Clone(keys)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		c.t.Fatalf("tracecheck: child %q: env keys mismatch: want %v, got %v", c.name, want, got)
	}
	return c
}

// AssertEnvIs fails unless the child's environment equals env exactly.
func (c *Child) AssertEnvIs(env map[string]string) *Child {
	c.t.Helper()
	if len(c.env) != len(env) {
		c.t.Fatalf("tracecheck: child %q: env mismatch: want %v, got %v", c.name, env, c.env)
	}
	for k, v := range env {
		got, ok := c.env[k]
		if !ok || got != v {
			c.t.Fatalf("tracecheck: child %q: env mismatch: want %v, got %v", c.name, env, c.env)
		}
	}
	return c
}

// AssertEnv fails unless the child's environment maps key to value.
func (c *Child) AssertEnv(key, value string) *Child {
	c.t.Helper()
	got, ok := c.env[key]
	if !ok {
		c.t.Fatalf("tracecheck: child %q: env key %q not set", c.name, key)
	}
	if got != value {
		c.t.Fatalf("tracecheck: child %q: env %s: want %q, got %q", c.name, key, value, got)
	}
	return c
}

// AssertNotEnv fails if the child's environment holds key.
func (c *Child) AssertNotEnv(key string) *Child {
	c.t.Helper()
	if v, ok := c.env[key]; ok {
		c.t.Fatalf("tracecheck: child %q: env key %q unexpectedly set to %q", c.name, key, v)
	}
	return c
}

// Env returns the value of an environment variable and whether it is set.
func (c *Child) Env(key string) (string, bool) {
	v, ok := c.env[key]
	return v, ok
}

// Args returns a copy of the child's argument vector.
func (c *Child) Args() []string {
	return slices.Clone(c.args)
}
