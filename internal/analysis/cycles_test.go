package analysis

import (
	"reflect"
	"testing"
)

func TestFindCycles_RingScenario(t *testing.T) {
	g, cls := ringFixture(t)

	res := FindCycles(g, cls)

	if res.Total != 1 {
		t.Fatalf("Total = %d, want 1", res.Total)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(res.Cycles[0].Modules, want) {
		t.Errorf("Modules = %v, want %v", res.Cycles[0].Modules, want)
	}
	if res.Cycles[0].Size != 3 {
		t.Errorf("Size = %d, want 3", res.Cycles[0].Size)
	}
}

func TestFindCycles_Severity(t *testing.T) {
	tests := []struct {
		name     string
		internal []string
		edges    []edge
		want     string
	}{
		{
			name:     "small production cycle is High",
			internal: []string{"app.x", "lib.y"},
			edges:    []edge{{"app.x", "lib.y"}, {"lib.y", "app.x"}},
			want:     SeverityHigh,
		},
		{
			name:     "production cycle over three nodes is Critical",
			internal: []string{"m.a", "n.b", "o.c", "p.d"},
			edges:    []edge{{"m.a", "n.b"}, {"n.b", "o.c"}, {"o.c", "p.d"}, {"p.d", "m.a"}},
			want:     SeverityCritical,
		},
		{
			name:     "cycle through a test module is Medium",
			internal: []string{"app.models", "lib.test_helpers"},
			edges:    []edge{{"app.models", "lib.test_helpers"}, {"lib.test_helpers", "app.models"}},
			want:     SeverityMedium,
		},
		{
			name:     "cycle inside one package downgrades to Low",
			internal: []string{"pkg.a", "pkg.b"},
			edges:    []edge{{"pkg.a", "pkg.b"}, {"pkg.b", "pkg.a"}},
			want:     SeverityLow,
		},
		{
			name:     "large cycle inside one package stays Critical",
			internal: []string{"pkg.a", "pkg.b", "pkg.c", "pkg.d"},
			edges:    []edge{{"pkg.a", "pkg.b"}, {"pkg.b", "pkg.c"}, {"pkg.c", "pkg.d"}, {"pkg.d", "pkg.a"}},
			want:     SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, cls := fixture(t, tt.internal, nil, tt.edges)

			res := FindCycles(g, cls)
			if res.Total != 1 {
				t.Fatalf("Total = %d, want 1", res.Total)
			}
			if res.Cycles[0].Severity != tt.want {
				t.Errorf("Severity = %s, want %s", res.Cycles[0].Severity, tt.want)
			}
		})
	}
}

func TestFindCycles_None(t *testing.T) {
	g, cls := fixture(t, []string{"a", "b"}, nil, []edge{{"a", "b"}})

	res := FindCycles(g, cls)
	if res.Total != 0 || len(res.Cycles) != 0 {
		t.Errorf("FindCycles() = %+v, want empty", res)
	}
}

func TestOrphans_RingScenario(t *testing.T) {
	g, cls := ringFixture(t)

	res := Orphans(g, cls)

	// e is the only disconnected module and it is an entry point, so
	// nothing qualifies. d has no dependents but does import a.
	if len(res.Orphans) != 0 {
		t.Errorf("Orphans = %v, want none", res.Orphans)
	}
}

func TestOrphans_UntaggedIsolatedAppears(t *testing.T) {
	g, cls := fixture(t, []string{"a", "b", "island"}, nil, []edge{{"a", "b"}})

	res := Orphans(g, cls)
	want := []string{"island"}
	if !reflect.DeepEqual(res.Orphans, want) {
		t.Errorf("Orphans = %v, want %v", res.Orphans, want)
	}
}

func TestOrphans_ExcludesTests(t *testing.T) {
	g, cls := fixture(t,
		[]string{"app.models", "app.tests.test_models", "app.dead"},
		nil,
		[]edge{{"app.tests.test_models", "app.models"}},
	)

	res := Orphans(g, cls)
	want := []string{"app.dead"}
	if !reflect.DeepEqual(res.Orphans, want) {
		t.Errorf("Orphans = %v, want %v", res.Orphans, want)
	}
}

func TestOrphans_ExternalsIgnored(t *testing.T) {
	g, cls := fixture(t,
		[]string{"app.models"},
		[]string{"numpy"},
		[]edge{{"app.models", "numpy"}},
	)

	res := Orphans(g, cls)
	for _, o := range res.Orphans {
		if o == "numpy" {
			t.Error("externals are never orphans")
		}
	}
}
