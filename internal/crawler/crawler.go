// Package crawler walks a source tree and maps Python files to dotted
// module paths.
package crawler

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"depmap/internal/config"
	"depmap/internal/logging"
)

// SourceFile is one discovered Python file
type SourceFile struct {
	// Path is the file path relative to the scan root
	Path string
	// Module is the dotted module path derived from Path
	Module string
	// Package marks __init__ files, which name their directory
	Package bool
	// Size in bytes
	Size int64
}

// Crawler discovers source files under a root
type Crawler struct {
	cfg    config.ScanConfig
	logger *logging.Logger
}

// New creates a crawler with the given scan settings
func New(cfg config.ScanConfig, logger *logging.Logger) *Crawler {
	return &Crawler{cfg: cfg, logger: logger}
}

// Crawl walks root and returns every Python source file sorted by
// module path. Hidden directories, configured ignores and oversized
// files are skipped; skips are logged, never fatal.
func (c *Crawler) Crawl(root string) ([]SourceFile, error) {
	ignored := make(map[string]bool, len(c.cfg.Ignore))
	for _, name := range c.cfg.Ignore {
		ignored[name] = true
	}

	var files []SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || ignored[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, ".py") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if c.cfg.MaxFileSizeBytes > 0 && info.Size() > int64(c.cfg.MaxFileSizeBytes) {
			c.logger.Warn("skipping oversized file", map[string]interface{}{
				"file": rel, "bytes": info.Size(),
			})
			return nil
		}

		module, isPackage := moduleForPath(rel)
		if module == "" {
			return nil
		}
		files = append(files, SourceFile{
			Path:    rel,
			Module:  module,
			Package: isPackage,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Module < files[j].Module })
	return files, nil
}

// moduleForPath converts a relative file path to its dotted module
// path: pkg/mod.py -> pkg.mod, pkg/__init__.py -> pkg. A top-level
// __init__.py has no module name and is dropped.
func moduleForPath(rel string) (string, bool) {
	rel = strings.TrimSuffix(rel, ".py")
	parts := strings.Split(filepath.ToSlash(rel), "/")

	last := parts[len(parts)-1]
	if last == "__init__" {
		parts = parts[:len(parts)-1]
		if len(parts) == 0 {
			return "", true
		}
		return strings.Join(parts, "."), true
	}
	return strings.Join(parts, "."), false
}
