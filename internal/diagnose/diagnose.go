// Package diagnose aggregates the individual analyses into a single
// health report with a weighted score and prioritized issue list.
package diagnose

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"depmap/internal/analysis"
	"depmap/internal/config"
	"depmap/internal/graph"
	"depmap/internal/registry"
)

// Quantiles summarizes the in-degree distribution
type Quantiles struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Report is the aggregate diagnostic output
type Report struct {
	ReportID    string `json:"reportId"`
	GeneratedAt string `json:"generatedAt"`

	TotalModules    int `json:"totalModules"`
	InternalModules int `json:"internalModules"`
	ExternalModules int `json:"externalModules"`
	ImportEdges     int `json:"importEdges"`

	AvgDependencies float64 `json:"avgDependencies"`
	MaxChainDepth   int     `json:"maxChainDepth"`
	AvgInstability  float64 `json:"avgInstability"`

	Cycles           []analysis.Cycle         `json:"cycles,omitempty"`
	CycleSeverities  map[string]int           `json:"cycleSeverities,omitempty"`
	Orphans          []string                 `json:"orphans,omitempty"`
	TopPressure      []analysis.PressureEntry `json:"topPressure,omitempty"`
	PressureSpread   Quantiles                `json:"pressureSpread"`
	UndeclaredExtern []string                 `json:"undeclaredExternals,omitempty"`

	Issues      []Issue `json:"issues,omitempty"`
	HealthScore float64 `json:"healthScore"`
	Grade       string  `json:"grade"`
}

// Run collects every analysis over the graph and scores the result.
// ext may be nil when no manifest was available; the undeclared
// externals metric then reads as zero.
func Run(g *graph.Graph, cls *registry.Classifier, ext *analysis.ExternalResult, cfg config.HealthConfig, riskCfg config.RiskConfig) *Report {
	rep := &Report{
		ReportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	reg := g.Registry()
	internal := reg.ByOrigin(registry.Internal)
	rep.TotalModules = reg.Len()
	rep.InternalModules = len(internal)
	rep.ExternalModules = rep.TotalModules - rep.InternalModules
	rep.ImportEdges = g.EdgeCount(graph.Imports)

	var totalDeps int
	var degrees []int
	for _, m := range internal {
		totalDeps += len(g.Neighbors(m.Path, graph.Imports, graph.Forward))
		degrees = append(degrees, len(g.Neighbors(m.Path, graph.Imports, graph.Reverse)))
	}
	if len(internal) > 0 {
		rep.AvgDependencies = float64(totalDeps) / float64(len(internal))
	}
	rep.MaxChainDepth = graph.CondensedDepth(g)

	cycles := analysis.FindCycles(g, cls)
	rep.Cycles = topCycles(cycles.Cycles, 5)
	if cycles.Total > 0 {
		rep.CycleSeverities = make(map[string]int)
		for _, c := range cycles.Cycles {
			rep.CycleSeverities[c.Severity]++
		}
	}

	rep.Orphans = analysis.Orphans(g, cls).Orphans

	pressure := analysis.Pressure(g, analysis.PressureOptions{})
	if len(pressure.Modules) > 5 {
		rep.TopPressure = pressure.Modules[:5]
	} else {
		rep.TopPressure = pressure.Modules
	}
	rep.PressureSpread = quantiles(degrees)

	coupling := analysis.Coupling(g, riskCfg)
	var instSum float64
	for _, m := range coupling.Modules {
		instSum += m.Instability
	}
	if len(coupling.Modules) > 0 {
		rep.AvgInstability = instSum / float64(len(coupling.Modules))
	}

	if ext != nil {
		rep.UndeclaredExtern = ext.Undeclared
	}

	metrics := map[string]float64{
		"cycles":               float64(cycles.Total),
		"avg_dependencies":     rep.AvgDependencies,
		"max_chain_depth":      float64(rep.MaxChainDepth),
		"orphans":              float64(len(rep.Orphans)),
		"undeclared_externals": float64(len(rep.UndeclaredExtern)),
		"avg_instability":      rep.AvgInstability,
	}
	rep.HealthScore, rep.Issues = Score(metrics, cfg)
	rep.Grade = GradeFor(rep.HealthScore)

	return rep
}

// topCycles keeps the worst n cycles, ordered by severity then size
// then first member.
func topCycles(cycles []analysis.Cycle, n int) []analysis.Cycle {
	severityRank := map[string]int{
		analysis.SeverityCritical: 0,
		analysis.SeverityHigh:     1,
		analysis.SeverityMedium:   2,
		analysis.SeverityLow:      3,
	}
	sorted := make([]analysis.Cycle, len(cycles))
	copy(sorted, cycles)
	sort.SliceStable(sorted, func(i, j int) bool {
		if severityRank[sorted[i].Severity] != severityRank[sorted[j].Severity] {
			return severityRank[sorted[i].Severity] < severityRank[sorted[j].Severity]
		}
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Modules[0] < sorted[j].Modules[0]
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// quantiles computes nearest-rank p10/p50/p90 of the degree spread
func quantiles(degrees []int) Quantiles {
	if len(degrees) == 0 {
		return Quantiles{}
	}
	sorted := make([]int, len(degrees))
	copy(sorted, degrees)
	sort.Ints(sorted)

	at := func(p float64) float64 {
		idx := int(p * float64(len(sorted)-1))
		return float64(sorted[idx])
	}
	return Quantiles{P10: at(0.10), P50: at(0.50), P90: at(0.90)}
}
