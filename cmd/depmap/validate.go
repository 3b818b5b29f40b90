package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate <from> <to>",
	Short: "Check a proposed dependency before adding it",
	Long: `Check whether adding an import from one module to another would
close a cycle or violate the configured layering rules. The graph is
not modified; the check runs against an overlay.

Examples:
  depmap validate app.api.routes app.core.db
  depmap validate app.core.db app.api.routes   # likely WARNING`,
	Args: cobra.ExactArgs(2),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(validateFormat)
	if err != nil {
		fatal(err)
	}

	res, cfg, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result, err := analysis.ValidateChange(res.Graph, res.Classifier, cfg.Layering, args[0], args[1])
	if err != nil {
		fatal(err)
	}

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.ValidationText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}

	if result.Verdict == analysis.VerdictWarning {
		os.Exit(2)
	}
}
