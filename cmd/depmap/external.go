package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/output"
)

var externalFormat string

var externalCmd = &cobra.Command{
	Use:   "external",
	Short: "Audit third-party dependency usage",
	Long: `Audit external packages: how many modules import each one, which
imports are missing from the project manifest, and which declared
dependencies nothing imports.`,
	Args: cobra.NoArgs,
	Run:  runExternal,
}

func init() {
	externalCmd.Flags().StringVar(&externalFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(externalCmd)
}

func runExternal(cmd *cobra.Command, args []string) {
	format, err := output.ParseFormat(externalFormat)
	if err != nil {
		fatal(err)
	}

	res, _, err := buildResult(context.Background())
	if err != nil {
		fatal(err)
	}

	result := analysis.Externals(res.Graph, declaredDeps(res), res.Allowlist)

	switch format {
	case output.FormatJSON:
		err = output.WriteJSON(os.Stdout, result)
	default:
		err = output.ExternalsText(os.Stdout, result)
	}
	if err != nil {
		fatal(err)
	}
}
