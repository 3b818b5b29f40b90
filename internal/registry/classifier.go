package registry

import (
	"regexp"
	"sort"

	"depmap/internal/config"
	"depmap/internal/errors"
)

// Classifier derives classification tags from module paths. Tags are
// never stored on the registry; they are recomputed from the rule
// table so the engine stays free of hard-coded path conventions.
type Classifier struct {
	rules       []compiledRule
	entryPoints map[string]bool
}

type compiledRule struct {
	re  *regexp.Regexp
	tag string
}

// NewClassifier compiles the configured rule table. An uncompilable
// pattern is a ConfigurationError.
func NewClassifier(cfg config.ClassifyConfig) (*Classifier, error) {
	c := &Classifier{entryPoints: make(map[string]bool)}

	for _, rule := range cfg.Rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Wrap(errors.ConfigurationError,
				"invalid classification pattern '"+rule.Pattern+"'", err)
		}
		c.rules = append(c.rules, compiledRule{re: re, tag: rule.Tag})
	}

	for _, ep := range cfg.EntryPoints {
		c.entryPoints[ep] = true
	}

	return c, nil
}

// Tags returns the sorted, deduplicated tags for a module path
func (c *Classifier) Tags(path string) []string {
	seen := make(map[string]bool)
	var tags []string

	if c.entryPoints[path] {
		seen[config.TagEntryPoint] = true
		tags = append(tags, config.TagEntryPoint)
	}
	for _, rule := range c.rules {
		if rule.re.MatchString(path) && !seen[rule.tag] {
			seen[rule.tag] = true
			tags = append(tags, rule.tag)
		}
	}

	sort.Strings(tags)
	return tags
}

// HasTag reports whether the path carries the given tag
func (c *Classifier) HasTag(path, tag string) bool {
	if tag == config.TagEntryPoint && c.entryPoints[path] {
		return true
	}
	for _, rule := range c.rules {
		if rule.tag == tag && rule.re.MatchString(path) {
			return true
		}
	}
	return false
}

// IsTest reports whether the path is classified as test code
func (c *Classifier) IsTest(path string) bool {
	return c.HasTag(path, config.TagTest)
}

// IsEntryPoint reports whether the path is an entry point
func (c *Classifier) IsEntryPoint(path string) bool {
	return c.HasTag(path, config.TagEntryPoint)
}

// IsProduction reports whether the path is neither test nor entry
// point code.
func (c *Classifier) IsProduction(path string) bool {
	return !c.IsTest(path) && !c.IsEntryPoint(path)
}
