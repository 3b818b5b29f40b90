package pyproject

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_PEP621(t *testing.T) {
	dir := writeManifest(t, `
[project]
name = "acme"
dependencies = [
  "requests>=2.28",
  "numpy",
  "Flask-SQLAlchemy[async]>=3.0 ; python_version > '3.8'",
]

[project.optional-dependencies]
dev = ["pytest>=7"]
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Name != "acme" {
		t.Errorf("Name = %q, want acme", m.Name)
	}
	want := []string{"Flask-SQLAlchemy", "numpy", "pytest", "requests"}
	if !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", m.Dependencies, want)
	}
}

func TestLoad_Poetry(t *testing.T) {
	dir := writeManifest(t, `
[tool.poetry]
name = "acme"

[tool.poetry.dependencies]
python = "^3.11"
requests = "^2.28"
numpy = { version = ">=1.24", optional = true }

[tool.poetry.group.dev.dependencies]
pytest = "^7.0"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if m.Name != "acme" {
		t.Errorf("Name = %q, want acme", m.Name)
	}
	// The python interpreter pin is not a dependency.
	want := []string{"numpy", "pytest", "requests"}
	if !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", m.Dependencies, want)
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Dependencies) != 0 {
		t.Errorf("Dependencies = %v, want empty", m.Dependencies)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := writeManifest(t, "not valid toml [[[")

	if _, err := Load(dir); err == nil {
		t.Fatal("malformed manifest should fail")
	}
}

func TestSpecName(t *testing.T) {
	tests := []struct{ spec, want string }{
		{"requests", "requests"},
		{"requests>=2.28", "requests"},
		{"requests >= 2.28", "requests"},
		{"requests[security]", "requests"},
		{"scikit-learn~=1.3", "scikit-learn"},
		{"uvicorn[standard]>=0.23 ; sys_platform != 'win32'", "uvicorn"},
		{"pkg (>=1.0)", "pkg"},
	}
	for _, tt := range tests {
		if got := SpecName(tt.spec); got != tt.want {
			t.Errorf("SpecName(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}
