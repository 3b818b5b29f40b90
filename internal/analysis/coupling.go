package analysis

import (
	"math"
	"sort"

	"depmap/internal/config"
	"depmap/internal/graph"
	"depmap/internal/registry"
)

// Coupling risk tiers
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// CouplingEntry carries the coupling metrics for one module
type CouplingEntry struct {
	Path        string  `json:"path"`
	Ca          int     `json:"ca"`
	Ce          int     `json:"ce"`
	Instability float64 `json:"instability"`
	Score       float64 `json:"score"`
	Risk        string  `json:"risk"`
}

// CouplingResult ranks internal modules by coupling score
type CouplingResult struct {
	Modules []CouplingEntry `json:"modules"`
}

// Coupling computes afferent/efferent coupling and instability for
// every internal module. Instability I = Ce / (Ca + Ce), taken as 0
// for isolated modules. The 0-10 score grows with both dependent
// count and instability; risk tiers come from configured thresholds.
func Coupling(g *graph.Graph, cfg config.RiskConfig) *CouplingResult {
	res := &CouplingResult{}
	for _, m := range g.Registry().ByOrigin(registry.Internal) {
		ca := len(g.Neighbors(m.Path, graph.Imports, graph.Reverse))
		ce := len(g.Neighbors(m.Path, graph.Imports, graph.Forward))

		instability := 0.0
		if ca+ce > 0 {
			instability = float64(ce) / float64(ca+ce)
		}

		score := couplingScore(ca, instability)
		res.Modules = append(res.Modules, CouplingEntry{
			Path:        m.Path,
			Ca:          ca,
			Ce:          ce,
			Instability: instability,
			Score:       score,
			Risk:        riskTier(cfg, ca, score),
		})
	}

	sort.Slice(res.Modules, func(i, j int) bool {
		if res.Modules[i].Score != res.Modules[j].Score {
			return res.Modules[i].Score > res.Modules[j].Score
		}
		return res.Modules[i].Path < res.Modules[j].Path
	})
	return res
}

// couplingScore maps dependents and instability onto 0-10. Both terms
// are monotonic, so more dependents or higher instability never
// lowers the score.
func couplingScore(dependents int, instability float64) float64 {
	raw := math.Log10(float64(dependents)+1)*4 + instability*3
	return math.Min(10, math.Round(raw*10)/10)
}

func riskTier(cfg config.RiskConfig, dependents int, score float64) string {
	if dependents >= cfg.HighMinDependents || score >= cfg.HighMinScore {
		return RiskHigh
	}
	if dependents <= cfg.LowMaxDependents && score < cfg.LowMaxScore {
		return RiskLow
	}
	return RiskMedium
}
