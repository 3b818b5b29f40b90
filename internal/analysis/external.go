package analysis

import (
	"sort"
	"strings"

	"depmap/internal/graph"
	"depmap/internal/registry"
)

// External usage tiers by importer count
const (
	UsageHigh   = "High"
	UsageMedium = "Medium"
	UsageLow    = "Low"
)

// ExternalUsage is one third-party package and who relies on it
type ExternalUsage struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Tier   string   `json:"tier"`
	UsedBy []string `json:"usedBy"`
}

// ExternalResult is the external dependency audit
type ExternalResult struct {
	Usage      []ExternalUsage `json:"usage"`
	Undeclared []string        `json:"undeclared"`
	Unused     []string        `json:"unused"`
}

// NormalizeName canonicalizes a distribution or import name for
// comparison: lowercase, hyphens and underscores unified. PyPI treats
// Foo-Bar and foo_bar as the same project.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// Externals audits third-party usage: how many internal modules
// import each external package, which used packages are missing from
// the declared set, and which declared packages are never imported.
// The allowlist suppresses undeclared findings for known injected
// packages.
func Externals(g *graph.Graph, declared, allowlist []string) *ExternalResult {
	declaredSet := make(map[string]bool, len(declared))
	for _, d := range declared {
		declaredSet[NormalizeName(d)] = true
	}
	allowed := make(map[string]bool, len(allowlist))
	for _, a := range allowlist {
		allowed[NormalizeName(a)] = true
	}

	res := &ExternalResult{}
	used := make(map[string]bool)

	for _, m := range g.Registry().ByOrigin(registry.External) {
		importers := g.Neighbors(m.Path, graph.Imports, graph.Reverse)
		if len(importers) == 0 {
			continue
		}

		norm := NormalizeName(m.Path)
		used[norm] = true

		res.Usage = append(res.Usage, ExternalUsage{
			Name:   m.Path,
			Count:  len(importers),
			Tier:   usageTier(len(importers)),
			UsedBy: importers,
		})

		if !declaredSet[norm] && !allowed[norm] {
			res.Undeclared = append(res.Undeclared, m.Path)
		}
	}

	for _, d := range declared {
		if !used[NormalizeName(d)] {
			res.Unused = append(res.Unused, d)
		}
	}

	sort.Slice(res.Usage, func(i, j int) bool {
		if res.Usage[i].Count != res.Usage[j].Count {
			return res.Usage[i].Count > res.Usage[j].Count
		}
		return res.Usage[i].Name < res.Usage[j].Name
	})
	sort.Strings(res.Undeclared)
	sort.Strings(res.Unused)
	return res
}

func usageTier(count int) string {
	switch {
	case count >= 10:
		return UsageHigh
	case count >= 5:
		return UsageMedium
	default:
		return UsageLow
	}
}
