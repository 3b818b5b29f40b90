package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var partitionFormat string

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Split the codebase into independent work groups",
	Long: `Split production modules into groups with no import relationship
between them, so separate teams or tasks can work without conflicts.`,
	Args: cobra.NoArgs,
	Run:  runPartition,
}

func init() {
	partitionCmd.Flags().StringVar(&partitionFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(partitionCmd)
}

func runPartition(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(partitionFormat)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result := analysis.Partition(res.Graph, res.Classifier)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.PartitionText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
