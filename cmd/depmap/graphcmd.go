package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/output"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Dump the import graph as Graphviz DOT",
	Long: `Write the full import graph in DOT form for rendering:

  depmap graph | dot -Tsvg -o deps.svg`,
	Args: cobra.NoArgs,
	Run:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) {
	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}
	if err := output.WriteDOT(os.Stdout, res.Graph); err != nil {
		fatal(err)
	}
}
