package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/diagnose"
	"depmap/internal/export"
)

var (
	exportSQLitePath   string
	exportSnapshotPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the analysis as SQLite or a compressed snapshot",
	Long: `Run the full analysis and persist it for downstream tooling:
a SQLite database for ad-hoc querying, or a zstd-compressed JSON
snapshot for diffing two runs.

Examples:
  depmap export --sqlite deps.db
  depmap export --snapshot run.json.zst`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSQLitePath, "sqlite", "", "Write a SQLite database to this path")
	exportCmd.Flags().StringVar(&exportSnapshotPath, "snapshot", "", "Write a compressed snapshot to this path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	if exportSQLitePath == "" && exportSnapshotPath == "" {
		cmd.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	res, cfg, err := buildResult(ctx)
	if err != nil {
		fatal(err)
	}

	ext := analysis.Externals(res.Graph, declaredDeps(res), res.Allowlist)
	bundle := &export.Bundle{
		Graph:    res.Graph,
		Coupling: analysis.Coupling(res.Graph, cfg.Risk),
		Cycles:   analysis.FindCycles(res.Graph, res.Classifier),
		External: ext,
		Report:   diagnose.Run(res.Graph, res.Classifier, ext, cfg.Health, cfg.Risk),
	}

	if exportSQLitePath != "" {
		if err := export.WriteSQLite(ctx, exportSQLitePath, bundle, newLogger()); err != nil {
			fatal(err)
		}
	}
	if exportSnapshotPath != "" {
		f, err := os.Create(exportSnapshotPath)
		if err != nil {
			fatal(err)
		}
		if err := export.WriteSnapshot(f, bundle); err != nil {
			f.Close()
			fatal(err)
		}
		if err := f.Close(); err != nil {
			fatal(err)
		}
	}
}
