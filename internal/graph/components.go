package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"
)

// Components returns the weakly connected components of the Imports
// subgraph induced by filter (nil keeps every node). Members are
// sorted within each component; components are sorted by their first
// member. Isolated nodes form singleton components.
func Components(v View, filter func(string) bool) [][]string {
	iv := indexView(v, filter)
	ug := iv.undirected(v, Imports)

	var comps [][]string
	for _, comp := range topo.ConnectedComponents(ug) {
		members := make([]string, len(comp))
		for i, n := range comp {
			members[i] = iv.paths[n.ID()]
		}
		sort.Strings(members)
		comps = append(comps, members)
	}

	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}

// CondensedDepth returns the longest path length, counted in edges,
// through the DAG formed by contracting each strongly connected
// component of the Imports subgraph to a single node. Depth on the raw
// graph is ill-defined once cycles exist, so chain depth is always
// measured here.
func CondensedDepth(v View) int {
	iv := indexView(v, nil)
	dg := iv.directed(v, Imports)

	sccs := topo.TarjanSCC(dg)
	compOf := make(map[int64]int, len(iv.paths))
	for ci, comp := range sccs {
		for _, n := range comp {
			compOf[n.ID()] = ci
		}
	}

	// Condensed adjacency, deduplicated.
	succ := make(map[int]map[int]bool)
	for _, p := range iv.paths {
		from := compOf[iv.ids[p]]
		for _, nb := range v.Neighbors(p, Imports, Forward) {
			toID, ok := iv.ids[nb]
			if !ok {
				continue
			}
			to := compOf[toID]
			if to == from {
				continue
			}
			if succ[from] == nil {
				succ[from] = make(map[int]bool)
			}
			succ[from][to] = true
		}
	}

	// Longest path via memoized DFS; the condensation is acyclic.
	memo := make(map[int]int, len(sccs))
	var longest func(c int) int
	longest = func(c int) int {
		if d, ok := memo[c]; ok {
			return d
		}
		best := 0
		for to := range succ[c] {
			if d := longest(to) + 1; d > best {
				best = d
			}
		}
		memo[c] = best
		return best
	}

	max := 0
	for c := range sccs {
		if d := longest(c); d > max {
			max = d
		}
	}
	return max
}
