package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/analysis"
	"depmap/internal/config"
	"depmap/internal/engine"
	"depmap/internal/logging"
	"depmap/internal/pyproject"
	"depmap/internal/version"
)

var (
	rootFlag      string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "depmap",
	Short: "depmap - static dependency graph analysis",
	Long: `depmap builds a module dependency graph from static import analysis
and answers questions about it: what breaks if a module changes, where
the cycles are, which modules everything leans on, and whether a
proposed new dependency is safe to add.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("depmap version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Repository root to scan")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "human", "Log format: human, json")
}

func newLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(logFormatFlag),
		Level:  logging.LogLevel(logLevelFlag),
	})
}

// buildResult runs the scan pipeline for the configured root. Every
// analysis command goes through here.
func buildResult(ctx context.Context) (*engine.Result, *config.Config, error) {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	res, err := engine.Build(ctx, rootFlag, cfg, newLogger())
	if err != nil {
		return nil, nil, err
	}
	return res, cfg, nil
}

// declaredDeps returns the manifest dependency names, normalized
func declaredDeps(res *engine.Result) []string {
	out := make([]string, 0, len(res.Manifest.Dependencies))
	for _, spec := range res.Manifest.Dependencies {
		if name := analysis.NormalizeName(pyproject.SpecName(spec)); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
