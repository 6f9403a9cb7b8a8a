// Command natcalc is a minimal CLI demonstrating package natcalc, in the
// style of the teacher's cmd/calcmark binary: a cobra root command
// defaulting to a REPL, plus an eval subcommand for one-shot input.
package main

import "github.com/natcalc/natcalc/cmd/natcalc/cmd"

func main() {
	cmd.Execute()
}
