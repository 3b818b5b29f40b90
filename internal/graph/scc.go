package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// indexedView maps module paths to dense gonum node ids. Ids follow
// sorted path order so downstream algorithms see a stable numbering.
type indexedView struct {
	paths []string
	ids   map[string]int64
}

func indexView(v View, filter func(string) bool) *indexedView {
	iv := &indexedView{ids: make(map[string]int64)}
	for _, p := range v.Nodes() {
		if filter != nil && !filter(p) {
			continue
		}
		iv.ids[p] = int64(len(iv.paths))
		iv.paths = append(iv.paths, p)
	}
	return iv
}

// directed lowers one edge kind of a view into a gonum directed graph,
// dropping self loops (simple graphs reject them; callers that care
// detect them directly on the view).
func (iv *indexedView) directed(v View, kind EdgeKind) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for _, p := range iv.paths {
		dg.AddNode(simple.Node(iv.ids[p]))
	}
	for _, p := range iv.paths {
		for _, nb := range v.Neighbors(p, kind, Forward) {
			to, ok := iv.ids[nb]
			if !ok || nb == p {
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(iv.ids[p]), T: simple.Node(to)})
		}
	}
	return dg
}

// directedReversed lowers one edge kind with every edge flipped
func (iv *indexedView) directedReversed(v View, kind EdgeKind) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for _, p := range iv.paths {
		dg.AddNode(simple.Node(iv.ids[p]))
	}
	for _, p := range iv.paths {
		for _, nb := range v.Neighbors(p, kind, Forward) {
			to, ok := iv.ids[nb]
			if !ok || nb == p {
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(to), T: simple.Node(iv.ids[p])})
		}
	}
	return dg
}

// undirected lowers one edge kind into an undirected gonum graph for
// connectivity queries.
func (iv *indexedView) undirected(v View, kind EdgeKind) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for _, p := range iv.paths {
		ug.AddNode(simple.Node(iv.ids[p]))
	}
	for _, p := range iv.paths {
		for _, nb := range v.Neighbors(p, kind, Forward) {
			to, ok := iv.ids[nb]
			if !ok || nb == p {
				continue
			}
			ug.SetEdge(simple.Edge{F: simple.Node(iv.ids[p]), T: simple.Node(to)})
		}
	}
	return ug
}

// Cycles returns every import cycle as its canonical node sequence.
// A cycle is a strongly connected component with more than one node,
// or a single node importing itself. Cycles are sorted by their first
// element.
func Cycles(v View) [][]string {
	return CyclesWhere(v, nil)
}

// CyclesWhere restricts cycle detection to nodes accepted by filter
func CyclesWhere(v View, filter func(string) bool) [][]string {
	iv := indexView(v, filter)
	dg := iv.directed(v, Imports)

	var cycles [][]string
	for _, comp := range topo.TarjanSCC(dg) {
		if len(comp) < 2 {
			continue
		}
		members := make([]string, len(comp))
		for i, n := range comp {
			members[i] = iv.paths[n.ID()]
		}
		cycles = append(cycles, canonicalCycle(v, members))
	}

	// Self imports are cycles of one.
	for _, p := range iv.paths {
		for _, nb := range v.Neighbors(p, Imports, Forward) {
			if nb == p {
				cycles = append(cycles, []string{p})
			}
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// canonicalCycle orders an SCC's members deterministically: depth
// first from the lexicographically smallest member, always preferring
// the smallest unvisited in-component successor.
func canonicalCycle(v View, members []string) []string {
	sort.Strings(members)
	inComp := make(map[string]bool, len(members))
	for _, m := range members {
		inComp[m] = true
	}

	ordered := make([]string, 0, len(members))
	visited := make(map[string]bool, len(members))

	var dfs func(cur string)
	dfs = func(cur string) {
		visited[cur] = true
		ordered = append(ordered, cur)
		for _, nb := range v.Neighbors(cur, Imports, Forward) {
			if inComp[nb] && !visited[nb] {
				dfs(nb)
			}
		}
	}
	dfs(members[0])

	// Unreached members can only happen on filtered views where the
	// component is no longer strongly connected; keep them, sorted.
	for _, m := range members {
		if !visited[m] {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

// InCycle reports whether path participates in any import cycle
func InCycle(v View, path string) bool {
	for _, cycle := range Cycles(v) {
		for _, m := range cycle {
			if m == path {
				return true
			}
		}
	}
	return false
}
