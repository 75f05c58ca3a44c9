package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/F1rst-Unicorn/tracecheck"
)

var filterFlags struct {
	grep string
}

var filterCmd = &cobra.Command{
	Use:   "filter [file]",
	Short: "Print the marked lines of a saved trace",
	Long: `Filter reads a previously captured log from a file or stdin and prints
only the lines eligible for matching. With --grep, each line is instead
tested against a leaf pattern, which helps debug a pattern that fails to
match in a test.`,
	Args: cobra.MaximumNArgs(1),
	RunE: filterTrace,
}

func init() {
	filterCmd.Flags().StringVarP(&filterFlags.grep, "grep", "g", "",
		"leaf pattern to test against each line")
}

func filterTrace(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var matcher tracecheck.Matcher
	if filterFlags.grep != "" {
		matcher = tracecheck.Pattern(filterFlags.grep)
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case matcher != nil:
			if matcher.Match(line) {
				fmt.Fprintln(out, line)
			}
		case strings.Contains(line, tracecheck.Marker):
			fmt.Fprintln(out, line)
		}
	}
	return scanner.Err()
}
