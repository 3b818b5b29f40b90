package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var cyclesFormat string

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Find import cycles",
	Long: `Detect all import cycles and classify their severity. Production
cycles spanning more than three modules are Critical; cycles that only
involve test code or stay inside one package rank lower.`,
	Args: cobra.NoArgs,
	Run:  runCycles,
}

func init() {
	cyclesCmd.Flags().StringVar(&cyclesFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(cyclesFormat)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result := analysis.FindCycles(res.Graph, res.Classifier)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.CyclesText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}

	// Non-zero exit when critical cycles are present, for CI use.
	for _, c := range result.Cycles {
		if c.Severity == analysis.SeverityCritical {
			os.Exit(2)
		}
	}
}
