// Package engine drives a full scan: crawl sources, extract imports,
// populate the registry and build the dependency graph.
package engine

import (
	"context"
	"os"
	"path/filepath"

	"depmap/internal/config"
	"depmap/internal/crawler"
	"depmap/internal/errors"
	"depmap/internal/graph"
	"depmap/internal/logging"
	"depmap/internal/pyimports"
	"depmap/internal/pyproject"
	"depmap/internal/registry"
)

// Result bundles everything a scan produces
type Result struct {
	Graph      *graph.Graph
	Classifier *registry.Classifier
	Manifest   *pyproject.Manifest
	Allowlist  []string
	// Files counts the source files scanned
	Files int
}

// Build scans root and constructs the dependency graph
func Build(ctx context.Context, root string, cfg *config.Config, logger *logging.Logger) (*Result, error) {
	cls, err := registry.NewClassifier(cfg.Classification)
	if err != nil {
		return nil, err
	}

	files, err := crawler.New(cfg.Scan, logger).Crawl(root)
	if err != nil {
		return nil, errors.Wrap(errors.ConstructionError, "scan failed", err)
	}
	logger.Info("scan complete", map[string]interface{}{
		"root": root, "files": len(files),
	})

	reg := registry.New()
	for _, f := range files {
		reg.Add(registry.Module{
			Path:    f.Module,
			Origin:  registry.Internal,
			File:    f.Path,
			Package: f.Package,
		})
	}

	var manifest *pyproject.Manifest
	if cfg.Externals.ManifestPath != "" {
		manifest, err = pyproject.LoadFile(resolvePath(root, cfg.Externals.ManifestPath))
	} else {
		manifest, err = pyproject.Load(root)
	}
	if err != nil {
		return nil, err
	}

	allowlist, err := LoadAllowlist(resolvePath(root, cfg.Externals.AllowlistPath))
	if err != nil {
		return nil, err
	}

	b := graph.NewBuilder(reg)
	for _, f := range files {
		refs, err := extractFile(ctx, root, f)
		if err != nil {
			logger.Warn("parse failed, file skipped", map[string]interface{}{
				"file": f.Path, "error": err.Error(),
			})
			continue
		}
		for _, ref := range refs {
			target, ok := resolveRef(reg, ref, f)
			if !ok {
				continue
			}
			if target == f.Module {
				continue
			}
			if err := b.AddImport(f.Module, target); err != nil {
				return nil, err
			}
		}
	}

	g, err := b.Build()
	if err != nil {
		return nil, err
	}

	logger.Info("graph built", map[string]interface{}{
		"modules": reg.Len(), "imports": g.EdgeCount(graph.Imports),
	})
	return &Result{
		Graph:      g,
		Classifier: cls,
		Manifest:   manifest,
		Allowlist:  allowlist,
		Files:      len(files),
	}, nil
}

func extractFile(ctx context.Context, root string, f crawler.SourceFile) ([]pyimports.ImportRef, error) {
	source, err := os.ReadFile(filepath.Join(root, f.Path))
	if err != nil {
		return nil, err
	}
	return pyimports.NewExtractor().Extract(ctx, source)
}

// resolveRef maps one import reference onto a registry module,
// registering inferred externals on first sight. Unresolvable
// relative imports are dropped rather than failing the build.
func resolveRef(reg *registry.Registry, ref pyimports.ImportRef, from crawler.SourceFile) (string, bool) {
	abs, ok := ref.Absolute(from.Module, from.Package)
	if !ok || abs == "" {
		return "", false
	}

	// from M import name may address a submodule of M.
	if len(ref.Names) == 1 && ref.Names[0] != "*" {
		if full := abs + "." + ref.Names[0]; reg.Has(full) {
			return full, true
		}
	}

	// Exact match, then progressively trimmed prefixes: an import of
	// app.models.User resolves to app.models.
	for cur := abs; cur != ""; cur = parentOf(cur) {
		if reg.Has(cur) {
			return cur, true
		}
	}

	// Relative imports always address internal code; if nothing
	// matched, the reference is stale and gets dropped.
	if ref.Level > 0 {
		return "", false
	}

	root := pyimports.Root(abs)
	if stdlibModules[root] {
		return "", false
	}

	reg.Add(registry.Module{Path: root, Origin: registry.External, Inferred: true})
	return root, true
}

func parentOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return ""
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
