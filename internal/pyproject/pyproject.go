// Package pyproject reads a project's declared dependencies from
// pyproject.toml. Both PEP 621 metadata and poetry tables are
// understood.
package pyproject

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"depmap/internal/errors"
)

// Manifest is the declared-dependency view of a project
type Manifest struct {
	Name         string   `json:"name,omitempty"`
	Dependencies []string `json:"dependencies"`
}

type pyprojectFile struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Dependencies map[string]any `toml:"dependencies"`
			Group        map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Load reads pyproject.toml from dir. A missing file is not an error;
// it returns an empty manifest so the audit degrades to usage-only.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, "pyproject.toml"))
}

// LoadFile reads a specific manifest file
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, errors.Wrap(errors.ManifestError, "cannot read "+path, err)
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ManifestError, "cannot parse "+path, err)
	}

	m := &Manifest{Name: file.Project.Name}
	if m.Name == "" {
		m.Name = file.Tool.Poetry.Name
	}

	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || strings.EqualFold(name, "python") {
			return
		}
		if !seen[name] {
			seen[name] = true
			m.Dependencies = append(m.Dependencies, name)
		}
	}

	for _, spec := range file.Project.Dependencies {
		add(SpecName(spec))
	}
	for _, specs := range file.Project.OptionalDependencies {
		for _, spec := range specs {
			add(SpecName(spec))
		}
	}
	for name := range file.Tool.Poetry.Dependencies {
		add(name)
	}
	for _, group := range file.Tool.Poetry.Group {
		for name := range group.Dependencies {
			add(name)
		}
	}

	sort.Strings(m.Dependencies)
	return m, nil
}

// SpecName extracts the bare package name from a PEP 508 requirement
// string like "requests[security]>=2.28,<3 ; python_version > '3.8'".
func SpecName(spec string) string {
	spec = strings.TrimSpace(spec)
	end := len(spec)
	for i, r := range spec {
		if strings.ContainsRune(" =<>!~[(;,", r) {
			end = i
			break
		}
	}
	return spec[:end]
}
