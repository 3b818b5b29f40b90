package graph

import (
	"strings"

	"depmap/internal/errors"
	"depmap/internal/registry"
)

// Builder accumulates edges against a finished registry and produces
// an immutable Graph. Duplicate edges of the same kind collapse to
// one.
type Builder struct {
	g    *Graph
	seen map[string]bool
}

// NewBuilder creates a builder over the given registry
func NewBuilder(reg *registry.Registry) *Builder {
	g := &Graph{
		reg:       reg,
		out:       make(map[EdgeKind]map[string][]string),
		in:        make(map[EdgeKind]map[string][]string),
		edgeCount: make(map[EdgeKind]int),
	}
	for _, k := range []EdgeKind{Imports, Contains, IncludedIn} {
		g.out[k] = make(map[string][]string)
		g.in[k] = make(map[string][]string)
	}
	return &Builder{g: g, seen: make(map[string]bool)}
}

// AddImport records an Imports edge. Both endpoints must already be
// registered.
func (b *Builder) AddImport(from, to string) error {
	return b.addEdge(from, to, Imports)
}

func (b *Builder) addEdge(from, to string, kind EdgeKind) error {
	if !b.g.reg.Has(from) {
		return errors.NotFound(from)
	}
	if !b.g.reg.Has(to) {
		return errors.NotFound(to)
	}

	key := string(kind) + "\x00" + from + "\x00" + to
	if b.seen[key] {
		return nil
	}
	b.seen[key] = true

	b.g.out[kind][from] = append(b.g.out[kind][from], to)
	b.g.in[kind][to] = append(b.g.in[kind][to], from)
	b.g.edgeCount[kind]++
	return nil
}

// materializeContainment links every internal module to its nearest
// registered ancestor package with a Contains/IncludedIn edge pair.
func (b *Builder) materializeContainment() error {
	for _, m := range b.g.reg.ByOrigin(registry.Internal) {
		parent := nearestAncestor(b.g.reg, m.Path)
		if parent == "" {
			continue
		}
		if err := b.addEdge(parent, m.Path, Contains); err != nil {
			return err
		}
		if err := b.addEdge(m.Path, parent, IncludedIn); err != nil {
			return err
		}
	}
	return nil
}

// nearestAncestor walks the dotted path upward until it hits a
// registered package, so gaps in the hierarchy fold to the closest
// present parent. Registered leaf modules that merely share a prefix
// (a.py beside a/b.py) are skipped; containment only ever originates
// from a package.
func nearestAncestor(reg *registry.Registry, path string) string {
	for {
		idx := strings.LastIndex(path, ".")
		if idx < 0 {
			return ""
		}
		path = path[:idx]
		if m, err := reg.Get(path); err == nil && m.Package {
			return path
		}
	}
}

// Build materializes containment edges, freezes adjacency order and
// returns the graph. The builder must not be reused afterwards.
func (b *Builder) Build() (*Graph, error) {
	if err := b.materializeContainment(); err != nil {
		return nil, errors.Wrap(errors.ConstructionError, "containment materialization failed", err)
	}
	b.g.sortAdjacency()
	return b.g, nil
}
