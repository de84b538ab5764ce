package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
)

func TestFromYAML_Rules(t *testing.T) {
	t.Parallel()

	data := []byte(`
rules:
  "@Recommended": true
  lowercase_keywords: false
  array_syntax:
    syntax: long
  binary_operator_spaces: {}
risky_allowed: true
max_passes: 4
parallel:
  jobs: 2
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, config.RuleConfig{Enabled: true}, cfg.Rules["@Recommended"])
	assert.Equal(t, config.RuleConfig{Enabled: false}, cfg.Rules["lowercase_keywords"])
	assert.Equal(t, config.RuleConfig{Enabled: true, Options: map[string]any{"syntax": "long"}}, cfg.Rules["array_syntax"])

	empty := cfg.Rules["binary_operator_spaces"]
	assert.True(t, empty.Enabled)
	assert.NotNil(t, empty.Options, "an empty mapping stays distinguishable from true")
	assert.Empty(t, empty.Options)

	assert.True(t, cfg.RiskyAllowed)
	assert.Equal(t, 4, cfg.MaxPasses)
	assert.Equal(t, 2, cfg.Parallel.Jobs)
}

func TestFromYAML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "rule value is a string", data: "rules:\n  array_syntax: short\n"},
		{name: "rule value is a list", data: "rules:\n  array_syntax: [short]\n"},
		{name: "malformed yaml", data: "rules: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.FromYAML([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["array_syntax"] = config.RuleConfig{Enabled: true, Options: map[string]any{"syntax": "long"}}
	cfg.Rules["no_alias_functions"] = config.RuleConfig{Enabled: false}
	cfg.Exclude = []string{"vendor/**"}
	cfg.DryRun = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dryrun")

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Rules, back.Rules)
	assert.Equal(t, cfg.Exclude, back.Exclude)
	assert.Equal(t, cfg.Whitespace, back.Whitespace)
	assert.False(t, back.DryRun, "CLI-only fields are not persisted")
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	orig := config.NewConfig()
	orig.Rules["array_syntax"] = config.RuleConfig{Enabled: true, Options: map[string]any{"syntax": "long"}}
	orig.Exclude = []string{"vendor/**"}
	orig.Skip = map[string][]string{"array_syntax": {"legacy/**"}}
	orig.DryRun = true

	clone := orig.Clone()
	require.NotSame(t, orig, clone)
	assert.True(t, clone.DryRun)

	clone.Rules["array_syntax"].Options["syntax"] = "short"
	clone.Rules["lowercase_keywords"] = config.RuleConfig{}
	clone.Exclude[0] = "other/**"
	clone.Skip["array_syntax"][0] = "other/**"

	assert.Equal(t, "long", orig.Rules["array_syntax"].Options["syntax"])
	assert.NotContains(t, orig.Rules, "lowercase_keywords")
	assert.Equal(t, "vendor/**", orig.Exclude[0])
	assert.Equal(t, "legacy/**", orig.Skip["array_syntax"][0])
}

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	for _, f := range config.Formats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("xml").IsValid())
}

func TestUseCacheAndBackups(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.UseCache())
	cfg.NoCache = true
	assert.False(t, cfg.UseCache())

	assert.False(t, cfg.UseBackups())
	cfg.Backups.Enabled = true
	assert.True(t, cfg.UseBackups())
	cfg.NoBackups = true
	assert.False(t, cfg.UseBackups())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	opts := config.TemplateOptions{
		Full: true,
		Rules: []config.RuleInfo{
			{Name: "no_alias_functions", Description: "Replaces aliases.", Risky: true, Options: map[string]any{"sets": []string{"@internal"}}},
			{Name: "array_syntax", Description: "Array style.", Options: map[string]any{"syntax": "short"}},
			{Name: "lowercase_keywords", Description: "Keyword casing."},
		},
		Sets: []config.SetInfo{{Name: "@Base", Description: "Safe rules."}},
	}

	data, err := config.GenerateTemplate(opts)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "# gophpfix configuration")
	assert.Contains(t, text, "#   @Base: Safe rules.")
	assert.Contains(t, text, "# Risky: requires risky_allowed.")
	assert.Contains(t, text, "  #   syntax: short")
	assert.Contains(t, text, "  # lowercase_keywords: true")
	assert.Less(t, strings.Index(text, "array_syntax"), strings.Index(text, "no_alias_functions"))

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRules(), cfg.Rules)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Exclude)
	assert.Equal(t, "\n", cfg.Whitespace.LineEnding)
	assert.Equal(t, 10, cfg.MaxPasses)
}
