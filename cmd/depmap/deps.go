package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var (
	depsDepth    int
	depsExternal bool
	depsFilter   string
	depsFormat   string
)

var depsCmd = &cobra.Command{
	Use:   "deps <module>",
	Short: "Show what a module depends on",
	Long: `Show everything the target module pulls in transitively, split
into internal modules and external packages.

Examples:
  depmap deps app.api.routes
  depmap deps --depth=1 --external app.core`,
	Args: cobra.ExactArgs(1),
	Run:  runDeps,
}

func init() {
	depsCmd.Flags().IntVar(&depsDepth, "depth", 0, "Maximum traversal depth (0 = unbounded)")
	depsCmd.Flags().BoolVar(&depsExternal, "external", true, "Include external packages")
	depsCmd.Flags().StringVar(&depsFilter, "filter", "", "Only traverse module paths matching this pattern")
	depsCmd.Flags().StringVar(&depsFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(depsFormat)
	if err != nil {
		fatal(err)
	}

	filter, err := analysis.PathFilter(depsFilter)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result, err := analysis.Dependencies(res.Graph, args[0], analysis.DepsOptions{
		MaxDepth:        depsDepth,
		IncludeExternal: depsExternal,
		Filter:          filter,
	})
	if err != nil {
		fatal(err)
	}

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.DepsText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
