package analysis

import (
	"sort"

	"depmap/internal/graph"
	"depmap/internal/registry"
)

// Pressure levels by dependent count
const (
	PressureLow      = "low"
	PressureModerate = "moderate"
	PressureHigh     = "high"
	PressureCritical = "critical"
)

// PressureEntry ranks one module by how many modules import it
type PressureEntry struct {
	Path       string  `json:"path"`
	Dependents int     `json:"dependents"`
	Level      string  `json:"level"`
	Centrality float64 `json:"centrality,omitempty"`
}

// PressureResult is the dependency pressure ranking
type PressureResult struct {
	Modules []PressureEntry `json:"modules"`
}

// PressureOptions controls ranking extras
type PressureOptions struct {
	// Limit truncates the ranking; <= 0 keeps everything
	Limit int
	// Centrality additionally scores modules with PageRank, catching
	// modules whose importers are themselves heavily imported
	Centrality bool
}

// Pressure ranks internal modules by Imports in-degree, highest
// first, ties broken by path.
func Pressure(g *graph.Graph, opts PressureOptions) *PressureResult {
	var ranks map[string]float64
	if opts.Centrality {
		ranks = graph.PageRank(g, 0.85, 1e-6)
	}

	res := &PressureResult{}
	for _, m := range g.Registry().ByOrigin(registry.Internal) {
		n := len(g.Neighbors(m.Path, graph.Imports, graph.Reverse))
		entry := PressureEntry{
			Path:       m.Path,
			Dependents: n,
			Level:      pressureLevel(n),
		}
		if ranks != nil {
			entry.Centrality = ranks[m.Path]
		}
		res.Modules = append(res.Modules, entry)
	}

	sort.Slice(res.Modules, func(i, j int) bool {
		if res.Modules[i].Dependents != res.Modules[j].Dependents {
			return res.Modules[i].Dependents > res.Modules[j].Dependents
		}
		return res.Modules[i].Path < res.Modules[j].Path
	})

	if opts.Limit > 0 && len(res.Modules) > opts.Limit {
		res.Modules = res.Modules[:opts.Limit]
	}
	return res
}

func pressureLevel(dependents int) string {
	switch {
	case dependents > 100:
		return PressureCritical
	case dependents > 50:
		return PressureHigh
	case dependents > 10:
		return PressureModerate
	default:
		return PressureLow
	}
}
