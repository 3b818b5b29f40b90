package analysis

import (
	"fmt"
	"sort"

	"depmap/internal/config"
	"depmap/internal/errors"
	"depmap/internal/graph"
	"depmap/internal/registry"
)

// Validation verdicts
const (
	VerdictSafe    = "SAFE"
	VerdictWarning = "WARNING"
)

// ValidationCheck is one rule evaluated against the proposed edge
type ValidationCheck struct {
	Name      string   `json:"name"`
	Verdict   string   `json:"verdict"`
	Detail    string   `json:"detail,omitempty"`
	CyclePath []string `json:"cyclePath,omitempty"`
}

// ValidationResult is the outcome of a what-if dependency check
type ValidationResult struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Verdict string            `json:"verdict"`
	Checks  []ValidationCheck `json:"checks"`
}

// ValidateChange checks whether adding an import from -> to would
// close a cycle or break the configured layering, without mutating
// the real graph. The worst check verdict wins.
func ValidateChange(g *graph.Graph, cls *registry.Classifier, layering config.LayeringConfig, from, to string) (*ValidationResult, error) {
	if !g.HasNode(from) {
		return nil, errors.NotFound(from)
	}
	if !g.HasNode(to) {
		return nil, errors.NotFound(to)
	}

	res := &ValidationResult{From: from, To: to, Verdict: VerdictSafe}

	res.Checks = append(res.Checks, checkCycle(g, from, to))
	res.Checks = append(res.Checks, checkLayering(cls, layering, from, to))

	for _, c := range res.Checks {
		if c.Verdict == VerdictWarning {
			res.Verdict = VerdictWarning
			break
		}
	}
	return res, nil
}

// checkCycle stages the edge on an overlay and looks for a loop
// through both endpoints.
func checkCycle(g *graph.Graph, from, to string) ValidationCheck {
	check := ValidationCheck{Name: "cycle", Verdict: VerdictSafe}
	if from == to {
		check.Verdict = VerdictWarning
		check.Detail = "module would import itself"
		check.CyclePath = []string{from, from}
		return check
	}

	ov := graph.NewOverlay(g)
	if err := ov.AddImport(from, to); err != nil {
		check.Verdict = VerdictWarning
		check.Detail = err.Error()
		return check
	}

	path := shortestPath(ov, to, from)
	if path == nil {
		return check
	}

	check.Verdict = VerdictWarning
	check.Detail = fmt.Sprintf("adding %s -> %s closes an import cycle", from, to)
	check.CyclePath = append([]string{from}, path...)
	check.CyclePath = append(check.CyclePath, from)
	return check
}

// shortestPath returns the node sequence from start to goal over
// forward Imports edges, excluding the trailing goal repetition, or
// nil when unreachable. Ties resolve toward smaller paths because
// adjacency is sorted.
func shortestPath(v graph.View, start, goal string) []string {
	if start == goal {
		return []string{start}
	}

	parent := map[string]string{start: ""}
	frontier := []string{start}
	for len(frontier) > 0 {
		var next []string
		for _, cur := range frontier {
			for _, nb := range v.Neighbors(cur, graph.Imports, graph.Forward) {
				if _, seen := parent[nb]; seen {
					continue
				}
				parent[nb] = cur
				if nb == goal {
					var path []string
					for n := goal; n != ""; n = parent[n] {
						path = append(path, n)
					}
					reverse(path)
					return path
				}
				next = append(next, nb)
			}
		}
		sort.Strings(next)
		frontier = next
	}
	return nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// checkLayering compares the endpoint tags against the configured
// allowed-direction table. Tags absent from the table are
// unconstrained.
func checkLayering(cls *registry.Classifier, layering config.LayeringConfig, from, to string) ValidationCheck {
	check := ValidationCheck{Name: "layering", Verdict: VerdictSafe}

	toTags := cls.Tags(to)
	if len(toTags) == 0 {
		return check
	}

	for _, fromTag := range cls.Tags(from) {
		allowed, constrained := layering.Allowed[fromTag]
		if !constrained {
			continue
		}
		allowedSet := make(map[string]bool, len(allowed))
		for _, t := range allowed {
			allowedSet[t] = true
		}
		for _, toTag := range toTags {
			if !allowedSet[toTag] {
				check.Verdict = VerdictWarning
				check.Detail = fmt.Sprintf("%s code may not depend on %s code", fromTag, toTag)
				return check
			}
		}
	}
	return check
}
