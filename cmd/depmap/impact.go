package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var (
	impactDepth        int
	impactIncludeTests bool
	impactCollapse     bool
	impactFilter       string
	impactFormat       string
)

var impactCmd = &cobra.Command{
	Use:   "impact <module>",
	Short: "Show what depends on a module",
	Long: `Show every module that transitively depends on the target, with
the distance at which it is affected and a suggested test order.

Examples:
  depmap impact app.models.user
  depmap impact --depth=2 --include-tests app.core
  depmap impact --collapse app.api`,
	Args: cobra.ExactArgs(1),
	Run:  runImpact,
}

func init() {
	impactCmd.Flags().IntVar(&impactDepth, "depth", 0, "Maximum traversal depth (0 = unbounded)")
	impactCmd.Flags().BoolVar(&impactIncludeTests, "include-tests", false, "Include test modules in the result")
	impactCmd.Flags().BoolVar(&impactCollapse, "collapse", false, "Fold results into common packages")
	impactCmd.Flags().StringVar(&impactFilter, "filter", "", "Only traverse module paths matching this pattern")
	impactCmd.Flags().StringVar(&impactFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(impactFormat)
	if err != nil {
		fatal(err)
	}

	filter, err := analysis.PathFilter(impactFilter)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result, err := analysis.Impact(res.Graph, res.Classifier, args[0], analysis.ImpactOptions{
		MaxDepth:     impactDepth,
		IncludeTests: impactIncludeTests,
		Filter:       filter,
	})
	if err != nil {
		fatal(err)
	}
	if !impactCollapse {
		result.Collapsed = nil
	}

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.ImpactText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
