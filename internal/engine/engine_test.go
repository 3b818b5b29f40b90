package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"depmap/internal/config"
	"depmap/internal/graph"
	"depmap/internal/logging"
	"depmap/internal/registry"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestBuild_SmallProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pyproject.toml": "[project]\nname = \"demo\"\ndependencies = [\"requests>=2.0\"]\n",
		"app/__init__.py": "",
		"app/models.py":   "import os\nimport requests\n",
		"app/views.py":    "from app import models\nfrom . import models as m\n",
		"app/cli.py":      "from app.views import render\n",
		"tests/__init__.py":     "",
		"tests/test_models.py":  "from app.models import Thing\n",
	})

	res, err := Build(context.Background(), root, config.DefaultConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	reg := res.Graph.Registry()
	for _, path := range []string{"app", "app.models", "app.views", "app.cli", "tests.test_models"} {
		if !reg.Has(path) {
			t.Errorf("module %q not registered", path)
		}
	}
	ext, err := reg.Get("requests")
	if err != nil || ext.Origin != registry.External || !ext.Inferred {
		t.Errorf("requests = %+v, %v; want inferred external", ext, err)
	}
	if reg.Has("os") {
		t.Error("stdlib import registered as a module")
	}

	wantEdges := map[string][]string{
		"app.models":        {"requests"},
		"app.views":         {"app.models"},
		"app.cli":           {"app.views"},
		"tests.test_models": {"app.models"},
	}
	for from, want := range wantEdges {
		got := res.Graph.Neighbors(from, graph.Imports, graph.Forward)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Neighbors(%q) = %v, want %v", from, got, want)
		}
	}

	if got := res.Manifest.Dependencies; !reflect.DeepEqual(got, []string{"requests>=2.0"}) {
		t.Errorf("manifest dependencies = %v", got)
	}
	if res.Files != 6 {
		t.Errorf("Files = %d, want 6", res.Files)
	}
}

func TestBuild_FromImportSubmodule(t *testing.T) {
	// from pkg import mod addresses pkg.mod when it is a real module.
	root := writeTree(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg/mod.py":      "",
		"main.py":         "from pkg import mod\n",
	})
	res, err := Build(context.Background(), root, config.DefaultConfig(), logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	got := res.Graph.Neighbors("main", graph.Imports, graph.Forward)
	if !reflect.DeepEqual(got, []string{"pkg.mod"}) {
		t.Errorf("Neighbors(main) = %v, want [pkg.mod]", got)
	}
}

func TestBuild_PrefixResolution(t *testing.T) {
	// Importing a name below a registered module folds onto it.
	root := writeTree(t, map[string]string{
		"app/__init__.py": "",
		"app/models.py":   "",
		"use.py":          "import app.models.user\n",
	})
	res, err := Build(context.Background(), root, config.DefaultConfig(), logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	got := res.Graph.Neighbors("use", graph.Imports, graph.Forward)
	if !reflect.DeepEqual(got, []string{"app.models"}) {
		t.Errorf("Neighbors(use) = %v, want [app.models]", got)
	}
}

func TestBuild_NoManifest(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "import b\n", "b.py": ""})
	res, err := Build(context.Background(), root, config.DefaultConfig(), logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Manifest.Dependencies) != 0 {
		t.Errorf("dependencies = %v, want none", res.Manifest.Dependencies)
	}
	if got := res.Graph.Neighbors("a", graph.Imports, graph.Forward); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Neighbors(a) = %v", got)
	}
}

func TestLoadAllowlist(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "allow.yaml")
	if err := os.WriteFile(path, []byte("allow:\n  - Zope-Interface\n  - boto3\n  - boto3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadAllowlist(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"boto3", "zope_interface"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadAllowlist = %v, want %v", got, want)
	}
}

func TestLoadAllowlist_Missing(t *testing.T) {
	got, err := LoadAllowlist(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil || got != nil {
		t.Errorf("got %v, %v; want nil, nil", got, err)
	}
}

func TestLoadAllowlist_Malformed(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "allow.yaml")
	if err := os.WriteFile(path, []byte("allow: {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAllowlist(path); err == nil {
		t.Error("expected error for malformed allowlist")
	}
}
