package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// YAMLIndent is the indentation used when writing configuration.
const YAMLIndent = 2

// UnmarshalYAML accepts a boolean or an options mapping.
func (rc *RuleConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: rule value must be true, false or a mapping of options", node.Line)
		}
		*rc = RuleConfig{Enabled: enabled}
		return nil
	case yaml.MappingNode:
		opts := map[string]any{}
		if err := node.Decode(&opts); err != nil {
			return fmt.Errorf("line %d: decode rule options: %w", node.Line, err)
		}
		*rc = RuleConfig{Enabled: true, Options: opts}
		return nil
	default:
		return fmt.Errorf("line %d: rule value must be true, false or a mapping of options", node.Line)
	}
}

// MarshalYAML writes a boolean unless options are set.
func (rc RuleConfig) MarshalYAML() (any, error) {
	if rc.Options == nil || !rc.Enabled {
		return rc.Enabled, nil
	}
	return rc.Options, nil
}

// ToYAML serializes the persisted fields.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses configuration. Keys missing from data stay at their
// zero value; the loader layers the result over the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy including CLI-only fields. Nested values inside
// rule options are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Paths = slices.Clone(c.Paths)
	out.Exclude = slices.Clone(c.Exclude)
	out.Extensions = slices.Clone(c.Extensions)
	out.RuleFilter = slices.Clone(c.RuleFilter)
	out.Skip = clonePatterns(c.Skip)
	out.Only = clonePatterns(c.Only)
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for name, rc := range c.Rules {
			out.Rules[name] = RuleConfig{Enabled: rc.Enabled, Options: maps.Clone(rc.Options)}
		}
	}
	return &out
}

func clonePatterns(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for name, patterns := range m {
		out[name] = slices.Clone(patterns)
	}
	return out
}
