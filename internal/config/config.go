package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"
)

// Known classification tags. Absence of a tag means plain production code.
const (
	TagTest       = "Test"
	TagEntryPoint = "EntryPoint"
	TagUtility    = "Utility"
	TagCore       = "Core"
	TagAPI        = "API"
)

var knownTags = map[string]bool{
	TagTest:       true,
	TagEntryPoint: true,
	TagUtility:    true,
	TagCore:       true,
	TagAPI:        true,
}

// Config represents the complete depmap configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Scan           ScanConfig      `json:"scan" mapstructure:"scan"`
	Classification ClassifyConfig  `json:"classification" mapstructure:"classification"`
	Layering       LayeringConfig  `json:"layering" mapstructure:"layering"`
	Risk           RiskConfig      `json:"risk" mapstructure:"risk"`
	Health         HealthConfig    `json:"health" mapstructure:"health"`
	Externals      ExternalsConfig `json:"externals" mapstructure:"externals"`
	Logging        LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls codebase crawling
type ScanConfig struct {
	Ignore           []string `json:"ignore" mapstructure:"ignore"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// TagRule maps a path pattern (Go regexp, matched against the module
// path) to a classification tag.
type TagRule struct {
	Pattern string `json:"pattern" mapstructure:"pattern"`
	Tag     string `json:"tag" mapstructure:"tag"`
}

// ClassifyConfig contains the data-driven classification rules
type ClassifyConfig struct {
	Rules       []TagRule `json:"rules" mapstructure:"rules"`
	EntryPoints []string  `json:"entryPoints" mapstructure:"entryPoints"`
}

// LayeringConfig is the allowed-direction table for tagged modules.
// Allowed maps a source tag to the set of target tags its modules may
// import. Tags missing from the table are unconstrained.
type LayeringConfig struct {
	Allowed map[string][]string `json:"allowed" mapstructure:"allowed"`
}

// RiskConfig holds the coupling risk tier thresholds
type RiskConfig struct {
	LowMaxDependents  int     `json:"lowMaxDependents" mapstructure:"lowMaxDependents"`
	LowMaxScore       float64 `json:"lowMaxScore" mapstructure:"lowMaxScore"`
	HighMinDependents int     `json:"highMinDependents" mapstructure:"highMinDependents"`
	HighMinScore      float64 `json:"highMinScore" mapstructure:"highMinScore"`
}

// MetricThreshold configures one tracked health metric
type MetricThreshold struct {
	Warning  float64 `json:"warning" mapstructure:"warning"`
	Critical float64 `json:"critical" mapstructure:"critical"`
	Weight   float64 `json:"weight" mapstructure:"weight"`
}

// HealthConfig holds the weighted health score inputs
type HealthConfig struct {
	Metrics map[string]MetricThreshold `json:"metrics" mapstructure:"metrics"`
}

// ExternalsConfig points at the declared-dependency sources
type ExternalsConfig struct {
	// ManifestPath overrides the default pyproject.toml lookup
	ManifestPath string `json:"manifestPath" mapstructure:"manifestPath"`
	// AllowlistPath names a YAML file of externals tolerated as
	// undeclared (build-time injected packages and the like)
	AllowlistPath string `json:"allowlistPath" mapstructure:"allowlistPath"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Scan: ScanConfig{
			Ignore:           []string{"node_modules", "build", "dist", "venv", ".venv", "__pycache__"},
			MaxFileSizeBytes: 1000000,
		},
		Classification: ClassifyConfig{
			Rules: []TagRule{
				{Pattern: `(^|\.)tests?(\.|$)`, Tag: TagTest},
				{Pattern: `(^|\.)test_[^.]*$`, Tag: TagTest},
				{Pattern: `(^|\.)conftest$`, Tag: TagTest},
				{Pattern: `(^|\.)(__main__|main|cli|manage|wsgi|asgi)$`, Tag: TagEntryPoint},
				{Pattern: `(^|\.)(utils?|helpers?|common)(\.|$)`, Tag: TagUtility},
				{Pattern: `(^|\.)(api|views|routes|endpoints)(\.|$)`, Tag: TagAPI},
			},
			EntryPoints: []string{},
		},
		Layering: LayeringConfig{
			Allowed: map[string][]string{
				TagAPI:     {TagCore, TagUtility, TagAPI},
				TagCore:    {TagCore, TagUtility},
				TagUtility: {TagUtility},
			},
		},
		Risk: RiskConfig{
			LowMaxDependents:  2,
			LowMaxScore:       4,
			HighMinDependents: 11,
			HighMinScore:      7,
		},
		Health: HealthConfig{
			Metrics: map[string]MetricThreshold{
				"cycles":               {Warning: 1, Critical: 3, Weight: 1.0},
				"avg_dependencies":     {Warning: 8, Critical: 15, Weight: 0.5},
				"max_chain_depth":      {Warning: 10, Critical: 20, Weight: 0.5},
				"orphans":              {Warning: 5, Critical: 15, Weight: 0.3},
				"undeclared_externals": {Warning: 1, Critical: 5, Weight: 0.7},
				"avg_instability":      {Warning: 0.7, Critical: 0.85, Weight: 0.4},
			},
		},
		Externals: ExternalsConfig{},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .depmap/config.json under the
// repo root, falling back to defaults when no file exists.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".depmap"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .depmap/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".depmap")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	for _, rule := range c.Classification.Rules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return &ConfigError{Field: "classification.rules", Message: "invalid pattern '" + rule.Pattern + "'"}
		}
		if !knownTags[rule.Tag] {
			return &ConfigError{Field: "classification.rules", Message: "unknown tag '" + rule.Tag + "'"}
		}
	}

	for from, targets := range c.Layering.Allowed {
		if !knownTags[from] {
			return &ConfigError{Field: "layering.allowed", Message: "unknown tag '" + from + "'"}
		}
		for _, to := range targets {
			if !knownTags[to] {
				return &ConfigError{Field: "layering.allowed", Message: "unknown tag '" + to + "'"}
			}
		}
	}

	if c.Risk.LowMaxDependents >= c.Risk.HighMinDependents {
		return &ConfigError{Field: "risk", Message: "low tier dependents bound must be below high tier bound"}
	}
	if c.Risk.LowMaxScore >= c.Risk.HighMinScore {
		return &ConfigError{Field: "risk", Message: "low tier score bound must be below high tier bound"}
	}

	for name, m := range c.Health.Metrics {
		if m.Weight < 0 {
			return &ConfigError{Field: "health.metrics." + name, Message: "weight must be non-negative"}
		}
		if m.Critical < m.Warning {
			return &ConfigError{Field: "health.metrics." + name, Message: "critical threshold below warning threshold"}
		}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
