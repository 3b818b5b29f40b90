package graph

import (
	"sort"

	"depmap/internal/errors"
)

// Overlay is a scratch view over a base graph for what-if analysis.
// Hypothetical Imports edges can be added or suppressed without
// touching the base; every View query reflects the combined state.
type Overlay struct {
	base    View
	added   map[string][]string
	addedIn map[string][]string
	removed map[[2]string]bool
}

// NewOverlay creates an empty overlay on base
func NewOverlay(base View) *Overlay {
	return &Overlay{
		base:    base,
		added:   make(map[string][]string),
		addedIn: make(map[string][]string),
		removed: make(map[[2]string]bool),
	}
}

// AddImport stages a hypothetical Imports edge. Both endpoints must
// exist in the base graph.
func (o *Overlay) AddImport(from, to string) error {
	if !o.base.HasNode(from) {
		return errors.NotFound(from)
	}
	if !o.base.HasNode(to) {
		return errors.NotFound(to)
	}

	delete(o.removed, [2]string{from, to})
	for _, nb := range o.added[from] {
		if nb == to {
			return nil
		}
	}
	o.added[from] = append(o.added[from], to)
	o.addedIn[to] = append(o.addedIn[to], from)
	return nil
}

// RemoveImport suppresses an Imports edge of the base graph
func (o *Overlay) RemoveImport(from, to string) error {
	if !o.base.HasNode(from) {
		return errors.NotFound(from)
	}
	if !o.base.HasNode(to) {
		return errors.NotFound(to)
	}
	o.removed[[2]string{from, to}] = true
	return nil
}

// Nodes returns the base graph's nodes
func (o *Overlay) Nodes() []string {
	return o.base.Nodes()
}

// HasNode reports whether path exists in the base graph
func (o *Overlay) HasNode(path string) bool {
	return o.base.HasNode(path)
}

// Neighbors merges base and staged adjacency. Only Imports edges are
// overlaid; containment passes through untouched.
func (o *Overlay) Neighbors(path string, kind EdgeKind, dir Direction) []string {
	base := o.base.Neighbors(path, kind, dir)
	if kind != Imports {
		return base
	}

	var extra map[string][]string
	if dir == Forward {
		extra = o.added
	} else {
		extra = o.addedIn
	}

	merged := make([]string, 0, len(base)+len(extra[path]))
	seen := make(map[string]bool)
	for _, nb := range base {
		if o.suppressed(path, nb, dir) {
			continue
		}
		merged = append(merged, nb)
		seen[nb] = true
	}
	for _, nb := range extra[path] {
		if !seen[nb] {
			merged = append(merged, nb)
		}
	}
	sort.Strings(merged)
	return merged
}

func (o *Overlay) suppressed(path, nb string, dir Direction) bool {
	if dir == Forward {
		return o.removed[[2]string{path, nb}]
	}
	return o.removed[[2]string{nb, path}]
}
