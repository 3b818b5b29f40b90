package analysis

import (
	"depmap/internal/graph"
	"depmap/internal/registry"
)

// OrphansResult lists internal modules nothing imports
type OrphansResult struct {
	Orphans []string `json:"orphans"`
	Total   int      `json:"total"`
}

// Orphans returns internal modules disconnected from the import
// graph: nothing imports them and they import nothing. Entry points
// and test modules are excluded: entry points have no dependents on
// purpose, and tests are leaves rather than dead code.
func Orphans(g *graph.Graph, cls *registry.Classifier) *OrphansResult {
	res := &OrphansResult{}
	for _, m := range g.Registry().ByOrigin(registry.Internal) {
		if len(g.Neighbors(m.Path, graph.Imports, graph.Reverse)) > 0 {
			continue
		}
		if len(g.Neighbors(m.Path, graph.Imports, graph.Forward)) > 0 {
			continue
		}
		if cls.IsEntryPoint(m.Path) || cls.IsTest(m.Path) {
			continue
		}
		res.Orphans = append(res.Orphans, m.Path)
	}
	res.Total = len(res.Orphans)
	return res
}
