package analysis

import (
	"sort"

	"depmap/internal/errors"
	"depmap/internal/graph"
	"depmap/internal/registry"
)

// Context tiers
const (
	ContextHigh   = "high"
	ContextMedium = "medium"
	ContextLow    = "low"
)

// ContextItem is one module worth reading alongside the target
type ContextItem struct {
	Path     string `json:"path"`
	Relation string `json:"relation"`
	Tier     string `json:"tier"`
}

// ContextResult ranks the modules most relevant to understanding the
// target before changing it.
type ContextResult struct {
	Target string        `json:"target"`
	Items  []ContextItem `json:"items"`
}

var tierRank = map[string]int{ContextHigh: 0, ContextMedium: 1, ContextLow: 2}

// Context ranks related modules in three tiers: direct production
// neighbors are high, second-hop modules and package siblings medium,
// and test modules low. A module appears once at its best tier.
func Context(g *graph.Graph, cls *registry.Classifier, target string) (*ContextResult, error) {
	if !g.HasNode(target) {
		return nil, errors.NotFound(target)
	}

	res := &ContextResult{Target: target}
	seen := map[string]bool{target: true}

	add := func(path, relation, tier string) {
		if seen[path] {
			return
		}
		seen[path] = true
		res.Items = append(res.Items, ContextItem{Path: path, Relation: relation, Tier: tier})
	}

	tierFor := func(path, base string) string {
		if cls.IsTest(path) {
			return ContextLow
		}
		return base
	}

	internalOnly := func(path string) bool {
		m, err := g.Registry().Get(path)
		return err == nil && m.Origin == registry.Internal
	}

	// Direct neighbors first.
	for _, dep := range g.Neighbors(target, graph.Imports, graph.Forward) {
		if internalOnly(dep) {
			add(dep, "dependency", tierFor(dep, ContextHigh))
		}
	}
	for _, dep := range g.Neighbors(target, graph.Imports, graph.Reverse) {
		add(dep, "dependent", tierFor(dep, ContextHigh))
	}

	// Package siblings share the immediate container.
	for _, parent := range g.Neighbors(target, graph.IncludedIn, graph.Forward) {
		for _, sibling := range g.Neighbors(parent, graph.Contains, graph.Forward) {
			add(sibling, "sibling", tierFor(sibling, ContextMedium))
		}
	}

	// Second hop in both directions.
	for _, dir := range []graph.Direction{graph.Forward, graph.Reverse} {
		relation := "dependency"
		if dir == graph.Reverse {
			relation = "dependent"
		}
		visits, err := graph.Walk(g, target, graph.WalkOptions{Kind: graph.Imports, Dir: dir, MaxDepth: 2})
		if err != nil {
			return nil, err
		}
		for _, v := range visits {
			if v.Depth == 2 && internalOnly(v.Path) {
				add(v.Path, relation, tierFor(v.Path, ContextMedium))
			}
		}
	}

	sort.SliceStable(res.Items, func(i, j int) bool {
		if tierRank[res.Items[i].Tier] != tierRank[res.Items[j].Tier] {
			return tierRank[res.Items[i].Tier] < tierRank[res.Items[j].Tier]
		}
		return res.Items[i].Path < res.Items[j].Path
	})
	return res, nil
}
