package analysis

import (
	"sort"

	"depmap/internal/graph"
	"depmap/internal/registry"
)

// WorkGroup is one independently workable set of modules
type WorkGroup struct {
	Modules []string `json:"modules"`
	Size    int      `json:"size"`
}

// PartitionResult splits the codebase into groups safe to change in
// parallel.
type PartitionResult struct {
	Groups []WorkGroup `json:"groups"`
}

// Partition computes the weakly connected components of the
// production-only Imports subgraph. Modules in different groups share
// no import relationship in either direction, so teams can change
// them without stepping on each other. Tests and externals are left
// out: tests attach to everything and externals are not workable
// code.
func Partition(g *graph.Graph, cls *registry.Classifier) *PartitionResult {
	filter := func(p string) bool {
		m, err := g.Registry().Get(p)
		if err != nil || m.Origin != registry.Internal {
			return false
		}
		return !cls.IsTest(p)
	}

	comps := graph.Components(g, filter)

	res := &PartitionResult{}
	for _, members := range comps {
		res.Groups = append(res.Groups, WorkGroup{Modules: members, Size: len(members)})
	}

	// Largest group first; order inside a group is already by path.
	sort.SliceStable(res.Groups, func(i, j int) bool {
		if res.Groups[i].Size != res.Groups[j].Size {
			return res.Groups[i].Size > res.Groups[j].Size
		}
		return res.Groups[i].Modules[0] < res.Groups[j].Modules[0]
	})
	return res
}
