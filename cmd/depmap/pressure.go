package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var (
	pressureLimit      int
	pressureCentrality bool
	pressureFormat     string
)

var pressureCmd = &cobra.Command{
	Use:   "pressure",
	Short: "Rank modules by dependent count",
	Long: `Rank internal modules by how many modules import them. Modules
under pressure are the ones where a change hurts the most.

Examples:
  depmap pressure --limit=10
  depmap pressure --centrality --format=csv`,
	Args: cobra.NoArgs,
	Run:  runPressure,
}

func init() {
	pressureCmd.Flags().IntVar(&pressureLimit, "limit", 0, "Maximum results (0 = all)")
	pressureCmd.Flags().BoolVar(&pressureCentrality, "centrality", false, "Also score modules with PageRank")
	pressureCmd.Flags().StringVar(&pressureFormat, "format", "text", "Output format (text, json, csv)")
	rootCmd.AddCommand(pressureCmd)
}

func runPressure(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(pressureFormat)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result := analysis.Pressure(res.Graph, analysis.PressureOptions{
		Limit:      pressureLimit,
		Centrality: pressureCentrality,
	})

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	case output.FormatCSV:
		err = output.PressureCSV(os.Stdout, result)
	default:
		err = output.PressureText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
