package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/F1rst-Unicorn/tracecheck"
	"github.com/F1rst-Unicorn/tracecheck/internal/subject"
)

var runFlags struct {
	binary     string
	dir        string
	verbosity  int
	onlyMarked bool
}

var runCmd = &cobra.Command{
	Use:   "run <config-dir>",
	Short: "Run the subject once and print the captured trace",
	Long: `Run launches the subject binary with the same fixed diagnostic flags the
test harness uses and prints every captured output line. The command exits
with the subject's own exit code.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubject,
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.binary, "binary", "b", "",
		"path to the subject binary (defaults to $TRACECHECK_UUT)")
	runCmd.Flags().StringVarP(&runFlags.dir, "dir", "d", "",
		"working directory for the subject")
	runCmd.Flags().CountVarP(&runFlags.verbosity, "verbose", "v",
		"verbosity passed to the subject (default 2)")
	runCmd.Flags().BoolVar(&runFlags.onlyMarked, "only-marked", false,
		"print only lines carrying the "+tracecheck.Marker+" marker")
}

func runSubject(cmd *cobra.Command, args []string) error {
	binary := runFlags.binary
	if binary == "" {
		binary = os.Getenv("TRACECHECK_UUT")
	}
	if binary == "" {
		return fmt.Errorf("no subject binary: pass --binary or set TRACECHECK_UUT")
	}

	verbosity := runFlags.verbosity
	if verbosity == 0 {
		verbosity = 2
	}

	subjArgs := make([]string, 0, verbosity+2)
	for i := 0; i < verbosity; i++ {
		subjArgs = append(subjArgs, "--verbose")
	}
	subjArgs = append(subjArgs, "--config", filepath.Join(args[0], "config"))

	lines, status, err := subject.New(binary).RunContext(
		cmd.Context(), runFlags.dir, nil, subjArgs...)
	if err != nil {
		return err
	}

	tr := tracecheck.NewTrace(lines)
	out := cmd.OutOrStdout()
	if runFlags.onlyMarked {
		for _, l := range tr.Marked() {
			fmt.Fprintln(out, l)
		}
	} else {
		tr.Dump(out)
	}

	if status != 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "subject exited with %d\n", status)
	}
	exitCode = status
	return nil
}
