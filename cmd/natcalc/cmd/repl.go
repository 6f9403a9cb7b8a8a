package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/natcalc"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Run: func(cmd *cobra.Command, args []string) {
		runREPL()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runREPL runs a line-oriented read-eval-print loop on stdin with one
// Engine per process. Variables persist across prompts because the whole
// transcript is re-executed on every line (see below). Grounded in the
// teacher's cmd/calcmark/repl.go, without the bubbletea TUI stack (out of
// scope for this engine's CLI, SPEC_FULL.md §10.5).
func runREPL() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	engine := natcalc.New(cfg)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("natcalc repl — type an expression, Ctrl-D to exit")

	// A Session (and its variable store) lives for one Execute call
	// (spec.md §4.2), so the REPL re-runs the whole transcript on every
	// line to keep variable assignments live across prompts; only the
	// newest line's result is printed.
	var transcript string
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if transcript != "" {
			transcript += "\n"
		}
		transcript += line

		result := engine.Execute("en", transcript)
		last := result.Lines[len(result.Lines)-1]
		if last.Err != "" {
			fmt.Println("error:", last.Err)
			continue
		}
		fmt.Println(last.Result.Output)
	}
}
