package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/diagnose"
	"depmap/internal/output"
)

var diagnoseFormat string

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run the full health diagnostic",
	Long: `Run every analysis over the graph and aggregate the results into
a single health score and letter grade, with the issues that cost
points listed.

Examples:
  depmap diagnose
  depmap diagnose --format=markdown > HEALTH.md`,
	Args: cobra.NoArgs,
	Run:  runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseFormat, "format", "text", "Output format (text, json, markdown)")
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(diagnoseFormat)
	if err != nil {
		fatal(err)
	}

	res, cfg, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	ext := analysis.Externals(res.Graph, declaredDeps(res), res.Allowlist)
	report := diagnose.Run(res.Graph, res.Classifier, ext, cfg.Health, cfg.Risk)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, report)
	case output.FormatMarkdown:
		err = output.DiagnoseMarkdown(os.Stdout, report)
	default:
		err = output.DiagnoseText(os.Stdout, report)
	}
	if err != nil {
		fatal(err)
	}
}
