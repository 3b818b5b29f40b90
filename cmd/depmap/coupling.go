package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var couplingFormat string

var couplingCmd = &cobra.Command{
	Use:   "coupling",
	Short: "Compute coupling metrics per module",
	Long: `Compute afferent coupling (who depends on me), efferent coupling
(who I depend on), instability, a 0-10 coupling score, and a risk tier
for every internal module.

Examples:
  depmap coupling
  depmap coupling --format=csv > coupling.csv`,
	Args: cobra.NoArgs,
	Run:  runCoupling,
}

func init() {
	couplingCmd.Flags().StringVar(&couplingFormat, "format", "text", "Output format (text, json, csv)")
	rootCmd.AddCommand(couplingCmd)
}

func runCoupling(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(couplingFormat)
	if err != nil {
		fatal(err)
	}

	res, cfg, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result := analysis.Coupling(res.Graph, cfg.Risk)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	case output.FormatCSV:
		err = output.CouplingCSV(os.Stdout, result)
	default:
		err = output.CouplingText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
