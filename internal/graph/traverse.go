package graph

import (
	"sort"

	"depmap/internal/errors"
)

// Visit is one node reached by a traversal, with the BFS depth it was
// first discovered at. The start node is not part of the result.
type Visit struct {
	Path  string `json:"path"`
	Depth int    `json:"depth"`
}

// WalkOptions bounds a traversal. MaxDepth <= 0 means unlimited.
// Filter, when set, prunes nodes before they are visited or expanded.
type WalkOptions struct {
	Kind     EdgeKind
	Dir      Direction
	MaxDepth int
	Filter   func(path string) bool
}

// Walk runs a bounded breadth-first traversal from start over one edge
// kind. Results come back in (depth, path) order; each reachable node
// appears exactly once at its minimum depth.
func Walk(v View, start string, opts WalkOptions) ([]Visit, error) {
	if !v.HasNode(start) {
		return nil, errors.NotFound(start)
	}

	visited := map[string]bool{start: true}
	frontier := []string{start}
	var out []Visit

	for depth := 1; len(frontier) > 0; depth++ {
		if opts.MaxDepth > 0 && depth > opts.MaxDepth {
			break
		}

		var next []string
		for _, cur := range frontier {
			for _, nb := range v.Neighbors(cur, opts.Kind, opts.Dir) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				if opts.Filter != nil && !opts.Filter(nb) {
					continue
				}
				next = append(next, nb)
			}
		}
		// Ties within a level break on path so runs are reproducible.
		sort.Strings(next)
		for _, nb := range next {
			out = append(out, Visit{Path: nb, Depth: depth})
		}
		frontier = next
	}

	return out, nil
}

// Reachable returns the set of nodes reachable from start, excluding
// start itself.
func Reachable(v View, start string, opts WalkOptions) (map[string]bool, error) {
	visits, err := Walk(v, start, opts)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(visits))
	for _, vis := range visits {
		set[vis.Path] = true
	}
	return set, nil
}
