// Package registry holds the canonical table of known modules and the
// data-driven path classifier. Every other analysis layer indexes into
// it by module path.
package registry

import (
	"sort"

	"depmap/internal/errors"
)

// Origin says whether a module belongs to the scanned codebase or to a
// third-party package.
type Origin string

const (
	// Internal modules were discovered inside the scanned source tree
	Internal Origin = "internal"
	// External modules are referenced but live outside the tree
	External Origin = "external"
)

// Module is one registry entry. Path is the canonical dotted module
// path and doubles as the identity key everywhere else.
type Module struct {
	Path   string `json:"path"`
	Origin Origin `json:"origin"`
	// File is the source file the module was discovered in, relative
	// to the scan root. Empty for externals.
	File string `json:"file,omitempty"`
	// Package marks a module that is itself a package (a directory
	// with an __init__ file rather than a leaf source file).
	Package bool `json:"package,omitempty"`
	// Inferred marks externals that were never declared anywhere but
	// showed up as unresolved import targets.
	Inferred bool `json:"inferred,omitempty"`
}

// Registry is the module table. Not safe for concurrent mutation;
// build it fully, then share it read-only.
type Registry struct {
	modules map[string]*Module
}

// New returns an empty registry
func New() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Add inserts a module. Re-adding an existing path is a no-op unless
// the new entry upgrades an inferred external to a known module.
func (r *Registry) Add(m Module) {
	existing, ok := r.modules[m.Path]
	if ok {
		if existing.Inferred && !m.Inferred {
			cp := m
			r.modules[m.Path] = &cp
		}
		return
	}
	cp := m
	r.modules[m.Path] = &cp
}

// Get returns the module for path or a ModuleNotFound error
func (r *Registry) Get(path string) (*Module, error) {
	m, ok := r.modules[path]
	if !ok {
		return nil, errors.NotFound(path)
	}
	return m, nil
}

// Has reports whether path is registered
func (r *Registry) Has(path string) bool {
	_, ok := r.modules[path]
	return ok
}

// Len returns the number of registered modules
func (r *Registry) Len() int {
	return len(r.modules)
}

// All returns every module sorted by path
func (r *Registry) All() []*Module {
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// ByOrigin returns modules of one origin sorted by path
func (r *Registry) ByOrigin(origin Origin) []*Module {
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		if m.Origin == origin {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Paths returns all module paths sorted
func (r *Registry) Paths() []string {
	out := make([]string, 0, len(r.modules))
	for p := range r.modules {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
