// Package graph implements the typed directed multigraph over the
// module registry and the traversal primitives every analysis is
// built from.
package graph

import (
	"sort"

	"depmap/internal/registry"
)

// EdgeKind is the relationship type carried by an edge
type EdgeKind string

const (
	// Imports records a static import of the target by the source
	Imports EdgeKind = "Imports"
	// Contains links a package to a module nested under it
	Contains EdgeKind = "Contains"
	// IncludedIn is the inverse of Contains, materialized eagerly so
	// both directions are single-hop lookups
	IncludedIn EdgeKind = "IncludedIn"
)

// Direction selects which way a traversal follows edges
type Direction int

const (
	// Forward follows edges source to target
	Forward Direction = iota
	// Reverse follows edges target to source
	Reverse
)

// View is the read surface shared by the base graph and change
// overlays. All slices come back sorted by path.
type View interface {
	Nodes() []string
	HasNode(path string) bool
	Neighbors(path string, kind EdgeKind, dir Direction) []string
}

// Graph is the immutable base graph. Construct through Builder.
type Graph struct {
	reg *registry.Registry

	// adjacency per edge kind, forward and reverse
	out map[EdgeKind]map[string][]string
	in  map[EdgeKind]map[string][]string

	edgeCount map[EdgeKind]int
}

// Registry returns the module table the graph indexes into
func (g *Graph) Registry() *registry.Registry {
	return g.reg
}

// Nodes returns every module path sorted
func (g *Graph) Nodes() []string {
	return g.reg.Paths()
}

// HasNode reports whether path is a node of the graph
func (g *Graph) HasNode(path string) bool {
	return g.reg.Has(path)
}

// Neighbors returns the adjacent module paths over one edge kind in
// the given direction, sorted.
func (g *Graph) Neighbors(path string, kind EdgeKind, dir Direction) []string {
	var adj map[string][]string
	if dir == Forward {
		adj = g.out[kind]
	} else {
		adj = g.in[kind]
	}
	return adj[path]
}

// EdgeCount returns the number of edges of one kind
func (g *Graph) EdgeCount(kind EdgeKind) int {
	return g.edgeCount[kind]
}

// HasEdge reports whether an edge of the given kind exists
func (g *Graph) HasEdge(from, to string, kind EdgeKind) bool {
	for _, n := range g.out[kind][from] {
		if n == to {
			return true
		}
	}
	return false
}

// sortAdjacency orders every adjacency list so traversals are
// reproducible without sorting at query time.
func (g *Graph) sortAdjacency() {
	for _, adj := range g.out {
		for _, list := range adj {
			sort.Strings(list)
		}
	}
	for _, adj := range g.in {
		for _, list := range adj {
			sort.Strings(list)
		}
	}
}
