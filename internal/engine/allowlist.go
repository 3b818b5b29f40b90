package engine

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"depmap/internal/analysis"
	"depmap/internal/errors"
)

type allowlistFile struct {
	Allow []string `yaml:"allow"`
}

// LoadAllowlist reads a YAML allowlist of external dependency names.
// A missing path (or the empty string) yields an empty list.
func LoadAllowlist(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ConfigurationError, "reading allowlist", err)
	}
	var f allowlistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ConfigurationError, "parsing allowlist", err)
	}
	seen := make(map[string]bool, len(f.Allow))
	out := make([]string, 0, len(f.Allow))
	for _, name := range f.Allow {
		n := analysis.NormalizeName(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}
