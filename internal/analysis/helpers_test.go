package analysis

import (
	"strings"
	"testing"

	"depmap/internal/config"
	"depmap/internal/graph"
	"depmap/internal/registry"
)

type edge struct{ from, to string }

// fixture builds a graph plus classifier from shorthand inputs.
// Internal names that prefix other internal names register as
// packages so containment edges materialize between them.
func fixture(t *testing.T, internal, external []string, edges []edge) (*graph.Graph, *registry.Classifier) {
	t.Helper()

	pkg := make(map[string]bool)
	for _, p := range internal {
		for _, q := range internal {
			if strings.HasPrefix(q, p+".") {
				pkg[p] = true
			}
		}
	}

	reg := registry.New()
	for _, p := range internal {
		reg.Add(registry.Module{Path: p, Origin: registry.Internal, Package: pkg[p]})
	}
	for _, p := range external {
		reg.Add(registry.Module{Path: p, Origin: registry.External, Inferred: true})
	}

	b := graph.NewBuilder(reg)
	for _, e := range edges {
		if err := b.AddImport(e.from, e.to); err != nil {
			t.Fatalf("AddImport(%s, %s) error = %v", e.from, e.to, err)
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	cls, err := registry.NewClassifier(config.DefaultConfig().Classification)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return g, cls
}

// ringFixture is the reference scenario: a->b->c->a, d importing a,
// and entry point e with no edges.
func ringFixture(t *testing.T) (*graph.Graph, *registry.Classifier) {
	t.Helper()

	reg := registry.New()
	for _, p := range []string{"a", "b", "c", "d", "e"} {
		reg.Add(registry.Module{Path: p, Origin: registry.Internal})
	}

	b := graph.NewBuilder(reg)
	for _, e := range []edge{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"d", "a"}} {
		if err := b.AddImport(e.from, e.to); err != nil {
			t.Fatal(err)
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig().Classification
	cfg.EntryPoints = []string{"e"}
	cls, err := registry.NewClassifier(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g, cls
}
