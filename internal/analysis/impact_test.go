package analysis

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"depmap/internal/config"
	deperrors "depmap/internal/errors"
	"depmap/internal/graph"
	"depmap/internal/registry"
)

func TestImpact_RingScenario(t *testing.T) {
	g, cls := ringFixture(t)

	res, err := Impact(g, cls, "a", ImpactOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// impact(a) = {b, c, d}: c and d import a directly, b through c.
	got := make(map[string]bool)
	for _, d := range res.Dependents {
		got[d.Path] = true
	}
	want := map[string]bool{"b": true, "c": true, "d": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dependents = %v, want %v", got, want)
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
}

func TestImpact_DepthOrder(t *testing.T) {
	g, cls := ringFixture(t)

	res, err := Impact(g, cls, "a", ImpactOptions{})
	if err != nil {
		t.Fatal(err)
	}

	want := []ImpactEntry{{Path: "c", Depth: 1}, {Path: "d", Depth: 1}, {Path: "b", Depth: 2}}
	if !reflect.DeepEqual(res.Dependents, want) {
		t.Errorf("Dependents = %v, want %v", res.Dependents, want)
	}
}

func TestImpact_MaxDepth(t *testing.T) {
	g, cls := ringFixture(t)

	res, err := Impact(g, cls, "a", ImpactOptions{MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}

	want := []ImpactEntry{{Path: "c", Depth: 1}, {Path: "d", Depth: 1}}
	if !reflect.DeepEqual(res.Dependents, want) {
		t.Errorf("Dependents = %v, want %v", res.Dependents, want)
	}
}

func TestImpact_ExcludesTestsByDefault(t *testing.T) {
	g, cls := fixture(t,
		[]string{"app.models", "app.views", "app.tests.test_models"},
		nil,
		[]edge{{"app.views", "app.models"}, {"app.tests.test_models", "app.models"}},
	)

	res, err := Impact(g, cls, "app.models", ImpactOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range res.Dependents {
		if d.Path == "app.tests.test_models" {
			t.Error("tests should be excluded unless requested")
		}
	}

	res, err = Impact(g, cls, "app.models", ImpactOptions{IncludeTests: true})
	if err != nil {
		t.Fatal(err)
	}
	foundTest := false
	for _, d := range res.Dependents {
		if d.Path == "app.tests.test_models" {
			foundTest = true
			if !d.Test {
				t.Error("test dependent should carry the test marker")
			}
		}
	}
	if !foundTest {
		t.Error("IncludeTests should surface test dependents")
	}
}

func TestImpact_UnknownTarget(t *testing.T) {
	g, cls := ringFixture(t)

	_, err := Impact(g, cls, "ghost", ImpactOptions{})
	if err == nil {
		t.Fatal("unknown target should fail")
	}
	if deperrors.CodeOf(err) != deperrors.ModuleNotFound {
		t.Errorf("CodeOf() = %v, want ModuleNotFound", deperrors.CodeOf(err))
	}
}

func TestImpact_TestOrder(t *testing.T) {
	g, cls := ringFixture(t)

	res, err := Impact(g, cls, "a", ImpactOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// a's dependency b first, then a, then affected nearest-out.
	want := []string{"b", "a", "c", "d"}
	if !reflect.DeepEqual(res.TestOrder, want) {
		t.Errorf("TestOrder = %v, want %v", res.TestOrder, want)
	}
}

func TestCollapse(t *testing.T) {
	reg := registry.New()
	for _, p := range []string{"app", "app.models", "app.views", "lib.x"} {
		reg.Add(registry.Module{Path: p, Origin: registry.Internal})
	}

	groups := Collapse(reg, []string{"app", "app.models", "app.views", "lib.x"})

	want := []Group{{Path: "app", Members: 3}, {Path: "lib.x", Members: 1}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Collapse() = %v, want %v", groups, want)
	}
}

func TestCollapse_NoAncestorInSet(t *testing.T) {
	reg := registry.New()
	for _, p := range []string{"app", "app.models", "app.views"} {
		reg.Add(registry.Module{Path: p, Origin: registry.Internal})
	}

	// app itself absent from the result set: children stay separate.
	groups := Collapse(reg, []string{"app.models", "app.views"})

	want := []Group{{Path: "app.models", Members: 1}, {Path: "app.views", Members: 1}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Collapse() = %v, want %v", groups, want)
	}
}

func TestCollapse_Empty(t *testing.T) {
	if got := Collapse(registry.New(), nil); got != nil {
		t.Errorf("Collapse(empty) = %v, want nil", got)
	}
}

// Impact and Dependencies are duals: for any two modules, a appears
// in deps(b) exactly when b appears in impact(a). Checked pairwise
// over randomized graphs with unbounded depth and no filtering.
func TestImpactDependenciesDuality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		n := 4 + rng.Intn(9)
		names := make([]string, n)
		reg := registry.New()
		for i := range names {
			names[i] = fmt.Sprintf("m%02d", i)
			reg.Add(registry.Module{Path: names[i], Origin: registry.Internal})
		}

		b := graph.NewBuilder(reg)
		for _, from := range names {
			for _, to := range names {
				if from == to || rng.Float64() >= 0.25 {
					continue
				}
				if err := b.AddImport(from, to); err != nil {
					t.Fatal(err)
				}
			}
		}
		g, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}
		cls, err := registry.NewClassifier(config.DefaultConfig().Classification)
		if err != nil {
			t.Fatal(err)
		}

		deps := make(map[string]map[string]bool, n)
		impacts := make(map[string]map[string]bool, n)
		for _, m := range names {
			d, err := Dependencies(g, m, DepsOptions{})
			if err != nil {
				t.Fatal(err)
			}
			deps[m] = make(map[string]bool)
			for _, e := range d.Internal {
				deps[m][e.Path] = true
			}

			im, err := Impact(g, cls, m, ImpactOptions{IncludeTests: true})
			if err != nil {
				t.Fatal(err)
			}
			impacts[m] = make(map[string]bool)
			for _, e := range im.Dependents {
				impacts[m][e.Path] = true
			}
		}

		for _, x := range names {
			for _, y := range names {
				if x == y {
					continue
				}
				if deps[y][x] != impacts[x][y] {
					t.Fatalf("trial %d: %s in deps(%s) = %v but %s in impact(%s) = %v",
						trial, x, y, deps[y][x], y, x, impacts[x][y])
				}
			}
		}
	}
}
