// Command testbin is a miniature fake supervisor used to test the
// tracecheck library. It mimics cinit's command line and diagnostic output
// without forking anything: children are simulated from a YAML
// configuration.
//
// Behavior:
//   - parses --verbose (repeatable) and --config <file>
//   - for each configured program, in order, emits the supervisor's trace
//     lines (Started/exited/crashed/sleeping) and writes a descriptor
//     record under the child-dump directory
//   - emits the final "Exiting" line and exits with the configured code
//
// Trace lines only appear at verbosity 2, matching the real subject.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type config struct {
	ExitCode int       `yaml:"exit_code"`
	Programs []program `yaml:"programs"`
}

type program struct {
	Name         string            `yaml:"name"`
	Args         []string          `yaml:"args"`
	UID          int               `yaml:"uid"`
	GID          int               `yaml:"gid"`
	Groups       []int             `yaml:"groups"`
	PTY          bool              `yaml:"pty"`
	Capabilities []string          `yaml:"capabilities"`
	Env          map[string]string `yaml:"env"`
	Workdir      string            `yaml:"workdir"`

	// Crash makes the simulated child exit with this nonzero code.
	Crash int `yaml:"crash"`
	// Sleeping marks a cronjob-style child that goes to sleep instead of
	// exiting.
	Sleeping bool `yaml:"sleeping"`
	// SkipDump suppresses the descriptor record, simulating a child that
	// was never executed.
	SkipDump bool `yaml:"skip_dump"`
}

type countFlag int

func (c *countFlag) String() string { return fmt.Sprint(int(*c)) }

func (c *countFlag) Set(string) error {
	*c++
	return nil
}

func (c *countFlag) IsBoolFlag() bool { return true }

func main() {
	var verbosity countFlag
	configPath := flag.String("config", "", "path to the configuration file")
	dumpDir := flag.String("child-dump", "child-dump", "directory for child descriptor records")
	flag.Var(&verbosity, "verbose", "increase verbosity (repeatable)")
	flag.Parse()

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testbin: %v\n", err)
		os.Exit(1)
	}

	var cfg config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		logLine(int(verbosity), "TRACE", "Error in configuration file")
		os.Exit(1)
	}

	for _, p := range cfg.Programs {
		logLine(int(verbosity), "TRACE", "Started child "+p.Name)

		if !p.SkipDump {
			if err := writeDump(*dumpDir, p); err != nil {
				fmt.Fprintf(os.Stderr, "testbin: %v\n", err)
				os.Exit(1)
			}
		}

		switch {
		case p.Crash != 0:
			logLine(int(verbosity), "TRACE", fmt.Sprintf("Child %s crashed with %d", p.Name, p.Crash))
		case p.Sleeping:
			logLine(int(verbosity), "TRACE", fmt.Sprintf("Child %s has finished and is going to sleep", p.Name))
		default:
			logLine(int(verbosity), "TRACE", fmt.Sprintf("Child %s exited successfully", p.Name))
		}
	}

	logLine(int(verbosity), "TRACE", "Exiting")
	os.Exit(cfg.ExitCode)
}

// logLine mimics the subject's log format:
// 2019-08-13T21:12:43.112 TRACE [cinit] message
func logLine(verbosity int, level, msg string) {
	if level == "TRACE" && verbosity < 2 {
		return
	}
	stamp := time.Now().Format("2006-01-02T15:04:05.000")
	fmt.Printf("%s %s [cinit] %s\n", stamp, level, msg)
}

// writeDump persists the descriptor record for one simulated child.
func writeDump(dir string, p program) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	env := p.Env
	if env == nil {
		env = defaultEnv()
	}

	record := map[string]any{
		"programs": []map[string]any{{
			"args":         append([]string{p.Name}, p.Args...),
			"uid":          p.UID,
			"gid":          p.GID,
			"groups":       p.Groups,
			"pty":          p.PTY,
			"capabilities": p.Capabilities,
			"env":          env,
			"workdir":      p.Workdir,
		}},
	}

	raw, err := yaml.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, p.Name+".yml"), raw, 0o644)
}

// defaultEnv mirrors the sanitized environment the real subject passes to
// children configured without explicit variables.
func defaultEnv() map[string]string {
	return map[string]string{
		"HOME":     "/root",
		"LANG":     "C.UTF-8",
		"LANGUAGE": "C.UTF-8",
		"LOGNAME":  "root",
		"PATH":     "/usr/local/bin:/usr/bin:/bin",
		"PWD":      "/",
		"SHELL":    "/bin/sh",
		"TERM":     "dumb",
		"USER":     "root",
	}
}
