package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if len(cfg.Scan.Ignore) == 0 {
		t.Error("Scan.Ignore should list common non-source directories")
	}
	if cfg.Scan.MaxFileSizeBytes <= 0 {
		t.Error("MaxFileSizeBytes should be positive")
	}

	hasTestRule := false
	for _, r := range cfg.Classification.Rules {
		if r.Tag == TagTest {
			hasTestRule = true
		}
	}
	if !hasTestRule {
		t.Error("default rules should classify test modules")
	}

	if len(cfg.Health.Metrics) == 0 {
		t.Error("Health.Metrics should have defaults")
	}
	if _, ok := cfg.Health.Metrics["cycles"]; !ok {
		t.Error("cycles metric should be tracked by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "bad version",
			mutate:  func(c *Config) { c.Version = 2 },
			wantErr: true,
		},
		{
			name: "invalid rule pattern",
			mutate: func(c *Config) {
				c.Classification.Rules = append(c.Classification.Rules, TagRule{Pattern: "[unclosed", Tag: TagTest})
			},
			wantErr: true,
		},
		{
			name: "unknown rule tag",
			mutate: func(c *Config) {
				c.Classification.Rules = append(c.Classification.Rules, TagRule{Pattern: "x", Tag: "Frontend"})
			},
			wantErr: true,
		},
		{
			name: "unknown layering source tag",
			mutate: func(c *Config) {
				c.Layering.Allowed["Backend"] = []string{TagCore}
			},
			wantErr: true,
		},
		{
			name: "unknown layering target tag",
			mutate: func(c *Config) {
				c.Layering.Allowed[TagCore] = []string{"Datastore"}
			},
			wantErr: true,
		},
		{
			name: "inverted risk dependents bounds",
			mutate: func(c *Config) {
				c.Risk.LowMaxDependents = 20
			},
			wantErr: true,
		},
		{
			name: "negative metric weight",
			mutate: func(c *Config) {
				c.Health.Metrics["cycles"] = MetricThreshold{Warning: 1, Critical: 3, Weight: -1}
			},
			wantErr: true,
		},
		{
			name: "critical below warning",
			mutate: func(c *Config) {
				c.Health.Metrics["orphans"] = MetricThreshold{Warning: 10, Critical: 5, Weight: 1}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("missing config should fall back to defaults, Version = %d", cfg.Version)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".depmap")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `{
  "version": 1,
  "scan": {"ignore": ["generated"]},
  "logging": {"format": "json", "level": "debug"}
}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Scan.Ignore) != 1 || cfg.Scan.Ignore[0] != "generated" {
		t.Errorf("Scan.Ignore = %v, want [generated]", cfg.Scan.Ignore)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Classification.EntryPoints = []string{"app.main"}

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(loaded.Classification.EntryPoints) != 1 || loaded.Classification.EntryPoints[0] != "app.main" {
		t.Errorf("EntryPoints = %v, want [app.main]", loaded.Classification.EntryPoints)
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "risk", Message: "bad bounds"}
	want := "config error in field 'risk': bad bounds"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
