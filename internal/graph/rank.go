package graph

import (
	"gonum.org/v1/gonum/graph/network"
)

// PageRank scores every node of the Imports subgraph by how much the
// rest of the graph depends on it, directly or through intermediates.
// Edges are reversed before ranking so score flows from importers to
// the modules they import.
func PageRank(v View, damp, tol float64) map[string]float64 {
	iv := indexView(v, nil)

	// Reverse-edge graph: a module's rank should rise when it is
	// imported, not when it imports.
	dg := iv.directedReversed(v, Imports)

	ranks := network.PageRank(dg, damp, tol)
	out := make(map[string]float64, len(iv.paths))
	for _, p := range iv.paths {
		out[p] = ranks[iv.ids[p]]
	}
	return out
}
