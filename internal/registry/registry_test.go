package registry

import (
	"testing"

	"depmap/internal/config"
	deperrors "depmap/internal/errors"
)

func TestRegistry_AddAndGet(t *testing.T) {
	r := New()
	r.Add(Module{Path: "app.models", Origin: Internal, File: "app/models.py"})

	m, err := r.Get("app.models")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.Origin != Internal {
		t.Errorf("Origin = %v, want Internal", m.Origin)
	}
	if m.File != "app/models.py" {
		t.Errorf("File = %q, want app/models.py", m.File)
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := New()

	_, err := r.Get("nope")
	if err == nil {
		t.Fatal("Get() should fail for unknown module")
	}
	if deperrors.CodeOf(err) != deperrors.ModuleNotFound {
		t.Errorf("CodeOf() = %v, want ModuleNotFound", deperrors.CodeOf(err))
	}
	want := "Module 'nope' not found"
	if de, ok := err.(*deperrors.DepError); !ok || de.Message != want {
		t.Errorf("message = %v, want %q", err, want)
	}
}

func TestRegistry_AddIdempotent(t *testing.T) {
	r := New()
	r.Add(Module{Path: "app.core", Origin: Internal, File: "app/core.py"})
	r.Add(Module{Path: "app.core", Origin: Internal, File: "other/core.py"})

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	m, _ := r.Get("app.core")
	if m.File != "app/core.py" {
		t.Errorf("re-add should not overwrite, File = %q", m.File)
	}
}

func TestRegistry_InferredUpgrade(t *testing.T) {
	r := New()
	r.Add(Module{Path: "requests", Origin: External, Inferred: true})
	r.Add(Module{Path: "requests", Origin: External})

	m, _ := r.Get("requests")
	if m.Inferred {
		t.Error("declared external should replace inferred placeholder")
	}
}

func TestRegistry_Ordering(t *testing.T) {
	r := New()
	for _, p := range []string{"zebra", "app.b", "app.a", "numpy"} {
		r.Add(Module{Path: p, Origin: Internal})
	}

	paths := r.Paths()
	want := []string{"app.a", "app.b", "numpy", "zebra"}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("Paths() = %v, want %v", paths, want)
		}
	}
}

func TestRegistry_ByOrigin(t *testing.T) {
	r := New()
	r.Add(Module{Path: "app.main", Origin: Internal})
	r.Add(Module{Path: "numpy", Origin: External})
	r.Add(Module{Path: "app.util", Origin: Internal})

	internal := r.ByOrigin(Internal)
	if len(internal) != 2 || internal[0].Path != "app.main" || internal[1].Path != "app.util" {
		t.Errorf("ByOrigin(Internal) = %v", internal)
	}
	external := r.ByOrigin(External)
	if len(external) != 1 || external[0].Path != "numpy" {
		t.Errorf("ByOrigin(External) = %v", external)
	}
}

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(config.DefaultConfig().Classification)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return c
}

func TestClassifier_Tags(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		path string
		want []string
	}{
		{"app.tests.test_models", []string{config.TagTest}},
		{"app.test_api", []string{config.TagTest}},
		{"app.conftest", []string{config.TagTest}},
		{"app.main", []string{config.TagEntryPoint}},
		{"app.utils.strings", []string{config.TagUtility}},
		{"app.api.v1", []string{config.TagAPI}},
		{"app.models", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := c.Tags(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("Tags(%q) = %v, want %v", tt.path, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Tags(%q) = %v, want %v", tt.path, got, tt.want)
				}
			}
		})
	}
}

func TestClassifier_ExplicitEntryPoints(t *testing.T) {
	cfg := config.DefaultConfig().Classification
	cfg.EntryPoints = []string{"app.worker"}

	c, err := NewClassifier(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !c.IsEntryPoint("app.worker") {
		t.Error("explicit entry point should be tagged")
	}
	if c.IsEntryPoint("app.models") {
		t.Error("plain module should not be an entry point")
	}
}

func TestClassifier_InvalidPattern(t *testing.T) {
	_, err := NewClassifier(config.ClassifyConfig{
		Rules: []config.TagRule{{Pattern: "[bad", Tag: config.TagTest}},
	})
	if err == nil {
		t.Fatal("invalid pattern should fail compilation")
	}
	if deperrors.CodeOf(err) != deperrors.ConfigurationError {
		t.Errorf("CodeOf() = %v, want ConfigurationError", deperrors.CodeOf(err))
	}
}

func TestClassifier_IsProduction(t *testing.T) {
	c := defaultClassifier(t)

	if !c.IsProduction("app.models") {
		t.Error("untagged module is production")
	}
	if c.IsProduction("app.tests.test_models") {
		t.Error("test module is not production")
	}
	if c.IsProduction("app.main") {
		t.Error("entry point is not production")
	}
	// Utility and API tags still count as production code.
	if !c.IsProduction("app.utils.strings") {
		t.Error("utility module is production")
	}
}
