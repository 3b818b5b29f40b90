package analysis

import (
	"depmap/internal/graph"
	"depmap/internal/registry"
)

// DepEntry is one transitive dependency of the target
type DepEntry struct {
	Path   string          `json:"path"`
	Depth  int             `json:"depth"`
	Origin registry.Origin `json:"origin"`
}

// DepsResult lists what a module pulls in, split by origin
type DepsResult struct {
	Target   string     `json:"target"`
	Internal []DepEntry `json:"internal"`
	External []DepEntry `json:"external"`
	Total    int        `json:"total"`
}

// DepsOptions bounds the forward traversal
type DepsOptions struct {
	MaxDepth        int
	IncludeExternal bool
	// Filter restricts the traversal to matching paths; nil keeps all
	Filter func(string) bool
}

// Dependencies runs a bounded forward traversal from target over
// Imports edges, tagging each hit with its registry origin.
func Dependencies(g *graph.Graph, target string, opts DepsOptions) (*DepsResult, error) {
	visits, err := graph.Walk(g, target, graph.WalkOptions{
		Kind:     graph.Imports,
		Dir:      graph.Forward,
		MaxDepth: opts.MaxDepth,
		Filter:   opts.Filter,
	})
	if err != nil {
		return nil, err
	}

	res := &DepsResult{Target: target}
	for _, v := range visits {
		m, err := g.Registry().Get(v.Path)
		if err != nil {
			return nil, err
		}
		entry := DepEntry{Path: v.Path, Depth: v.Depth, Origin: m.Origin}
		if m.Origin == registry.External {
			if !opts.IncludeExternal {
				continue
			}
			res.External = append(res.External, entry)
		} else {
			res.Internal = append(res.Internal, entry)
		}
	}
	res.Total = len(res.Internal) + len(res.External)
	return res, nil
}
