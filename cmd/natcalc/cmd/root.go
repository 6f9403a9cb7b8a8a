// Package cmd implements the natcalc CLI's command tree, grounded in
// the teacher's cmd/calcmark/cmd/root.go cobra layout.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "natcalc",
	Short: "natcalc - a natural-language calculator engine",
	Long: `natcalc parses and evaluates free-form calculator text: numbers,
money, dates, times, durations, percentages, and user-defined variables
and rules.

Examples:
  natcalc eval "120 + 30% + 10%"
  natcalc repl`,
	// Default to the REPL when invoked with no subcommand.
	Run: func(cmd *cobra.Command, args []string) {
		runREPL()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
