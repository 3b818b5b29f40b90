package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var orphansFormat string

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Find disconnected modules",
	Long: `List internal modules with no import relationships at all:
nothing imports them and they import nothing. Entry points and tests
are excluded.`,
	Args: cobra.NoArgs,
	Run:  runOrphans,
}

func init() {
	orphansCmd.Flags().StringVar(&orphansFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(orphansCmd)
}

func runOrphans(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(orphansFormat)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result := analysis.Orphans(res.Graph, res.Classifier)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.OrphansText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
