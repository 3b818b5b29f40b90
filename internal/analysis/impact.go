// Package analysis implements the analytical queries answered over a
// built dependency graph: impact, dependencies, cycles, orphans,
// pressure, external usage, coupling, change validation, context
// ranking and parallel-work partitioning.
package analysis

import (
	"sort"

	"depmap/internal/graph"
	"depmap/internal/registry"
)

// ImpactEntry is one transitive dependent of the target
type ImpactEntry struct {
	Path  string `json:"path"`
	Depth int    `json:"depth"`
	Test  bool   `json:"test,omitempty"`
}

// ImpactResult is the blast radius of changing one module
type ImpactResult struct {
	Target     string        `json:"target"`
	Dependents []ImpactEntry `json:"dependents"`
	Total      int           `json:"total"`
	Collapsed  []Group       `json:"collapsed,omitempty"`
	// TestOrder is the suggested verification order: the target's own
	// dependencies first, then the target, then affected modules from
	// the nearest outward.
	TestOrder []string `json:"testOrder,omitempty"`
}

// ImpactOptions bounds the reverse traversal
type ImpactOptions struct {
	MaxDepth     int
	IncludeTests bool
	// Filter restricts the traversal to matching paths; nil keeps all
	Filter func(string) bool
}

// Impact runs a bounded reverse traversal from target and reports
// every module that transitively depends on it.
func Impact(g *graph.Graph, cls *registry.Classifier, target string, opts ImpactOptions) (*ImpactResult, error) {
	filter := opts.Filter
	if !opts.IncludeTests {
		user := filter
		filter = func(p string) bool {
			if cls.IsTest(p) {
				return false
			}
			return user == nil || user(p)
		}
	}

	visits, err := graph.Walk(g, target, graph.WalkOptions{
		Kind:     graph.Imports,
		Dir:      graph.Reverse,
		MaxDepth: opts.MaxDepth,
		Filter:   filter,
	})
	if err != nil {
		return nil, err
	}

	res := &ImpactResult{Target: target, Total: len(visits)}
	paths := make([]string, 0, len(visits))
	for _, v := range visits {
		res.Dependents = append(res.Dependents, ImpactEntry{
			Path:  v.Path,
			Depth: v.Depth,
			Test:  cls.IsTest(v.Path),
		})
		paths = append(paths, v.Path)
	}
	res.Collapsed = Collapse(g.Registry(), paths)
	res.TestOrder = testOrder(g, target, res.Dependents)
	return res, nil
}

// testOrder builds the three-tier verification order: direct
// dependencies of the target, the target itself, then dependents in
// ascending depth.
func testOrder(g *graph.Graph, target string, dependents []ImpactEntry) []string {
	var order []string
	seen := make(map[string]bool)

	for _, dep := range g.Neighbors(target, graph.Imports, graph.Forward) {
		if m, err := g.Registry().Get(dep); err == nil && m.Origin == registry.Internal {
			if !seen[dep] {
				seen[dep] = true
				order = append(order, dep)
			}
		}
	}

	order = append(order, target)
	seen[target] = true

	for _, d := range dependents {
		if !seen[d.Path] {
			seen[d.Path] = true
			order = append(order, d.Path)
		}
	}
	return order
}

// Group is a set of result paths folded into a common ancestor
type Group struct {
	Path    string `json:"path"`
	Members int    `json:"members"`
}

// Collapse folds result paths whose registered ancestor is also in
// the result set into that ancestor, so large lists read as a handful
// of packages with counts.
func Collapse(reg *registry.Registry, paths []string) []Group {
	if len(paths) == 0 {
		return nil
	}

	inSet := make(map[string]bool, len(paths))
	for _, p := range paths {
		inSet[p] = true
	}

	counts := make(map[string]int)
	for _, p := range paths {
		root := p
		for cur := p; ; {
			anc := nearestRegisteredAncestor(reg, cur)
			if anc == "" {
				break
			}
			if inSet[anc] {
				root = anc
			}
			cur = anc
		}
		counts[root]++
	}

	groups := make([]Group, 0, len(counts))
	for p, n := range counts {
		groups = append(groups, Group{Path: p, Members: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Members != groups[j].Members {
			return groups[i].Members > groups[j].Members
		}
		return groups[i].Path < groups[j].Path
	})
	return groups
}

func nearestRegisteredAncestor(reg *registry.Registry, path string) string {
	for {
		idx := lastDot(path)
		if idx < 0 {
			return ""
		}
		path = path[:idx]
		if reg.Has(path) {
			return path
		}
	}
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
