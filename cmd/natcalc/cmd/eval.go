package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/natcalc/natcalc/config"
	"github.com/natcalc/natcalc/natcalc"
)

var evalLanguage string

var evalCmd = &cobra.Command{
	Use:   "eval [text]",
	Short: "Evaluate calculator text and print the result",
	Long: `Evaluate one or more lines of calculator text and print each line's
formatted output (or error), one per line.

Examples:
  natcalc eval "120 + 30% + 10%"
  echo "x = 10" | natcalc eval`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args)
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalLanguage, "language", "l", "en", "language to evaluate against")
	rootCmd.AddCommand(evalCmd)
}

func runEval(args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(bytes)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine := natcalc.New(cfg)
	result := engine.Execute(evalLanguage, input)
	for _, line := range result.Lines {
		if line.Err != "" {
			fmt.Println("error:", line.Err)
			continue
		}
		fmt.Println(line.Result.Output)
	}
	if !result.Status {
		os.Exit(1)
	}
	return nil
}
