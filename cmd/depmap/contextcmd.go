package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var contextFormat string

var contextCmd = &cobra.Command{
	Use:   "context <module>",
	Short: "Rank modules worth reading before a change",
	Long: `Rank the modules most relevant to understanding the target:
direct production neighbors first, then package siblings and
second-hop modules, with tests last.`,
	Args: cobra.ExactArgs(1),
	Run:  runContext,
}

func init() {
	contextCmd.Flags().StringVar(&contextFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(contextFormat)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result, err := analysis.Context(res.Graph, res.Classifier, args[0])
	if err != nil {
		fatal(err)
	}

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.ContextText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
