package analysis

import (
	"strings"

	"depmap/internal/graph"
	"depmap/internal/registry"
)

// Cycle severity levels, worst first
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

// Cycle is one import cycle in canonical member order
type Cycle struct {
	Modules  []string `json:"modules"`
	Size     int      `json:"size"`
	Severity string   `json:"severity"`
}

// CyclesResult lists every cycle with its severity
type CyclesResult struct {
	Cycles []Cycle `json:"cycles"`
	Total  int     `json:"total"`
}

// FindCycles detects all import cycles and classifies their severity:
// production cycles over 3 nodes are Critical, smaller production
// cycles High, cycles touching test code Medium, and any non-Critical
// cycle confined to one package downgrades to Low.
func FindCycles(g *graph.Graph, cls *registry.Classifier) *CyclesResult {
	raw := graph.Cycles(g)

	res := &CyclesResult{Total: len(raw)}
	for _, members := range raw {
		res.Cycles = append(res.Cycles, Cycle{
			Modules:  members,
			Size:     len(members),
			Severity: classifyCycle(cls, members),
		})
	}
	return res
}

func classifyCycle(cls *registry.Classifier, members []string) string {
	hasTest := false
	for _, m := range members {
		if cls.IsTest(m) {
			hasTest = true
			break
		}
	}

	var severity string
	switch {
	case hasTest:
		severity = SeverityMedium
	case len(members) > 3:
		severity = SeverityCritical
	default:
		severity = SeverityHigh
	}

	if severity != SeverityCritical && sharedParent(members) {
		severity = SeverityLow
	}
	return severity
}

// sharedParent reports whether every member sits immediately under
// the same package.
func sharedParent(members []string) bool {
	parent := ""
	for i, m := range members {
		idx := strings.LastIndex(m, ".")
		if idx < 0 {
			return false
		}
		if i == 0 {
			parent = m[:idx]
		} else if m[:idx] != parent {
			return false
		}
	}
	return parent != ""
}
