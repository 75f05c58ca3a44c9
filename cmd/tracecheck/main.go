// Command tracecheck runs a supervisor binary the same way the test harness
// does and inspects the captured trace from the command line. It is a
// debugging companion to the library: run a configuration once, look at the
// trace, try a pattern against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// exitCode propagates the subject's exit status through main.
var exitCode int

var rootCmd = &cobra.Command{
	Use:           "tracecheck",
	Short:         "Run a process supervisor and inspect its trace",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(filterCmd)
}
