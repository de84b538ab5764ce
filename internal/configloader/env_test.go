package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOPHPFIX_RISKY_ALLOWED", "1")
	t.Setenv("GOPHPFIX_MAX_PASSES", "7")
	t.Setenv("GOPHPFIX_EXCLUDE", " vendor/** , ,tests/fixtures/**")
	t.Setenv("GOPHPFIX_LINE_ENDING", `\r\n`)
	t.Setenv("GOPHPFIX_CACHE_PATH", "/tmp/cache")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.True(t, cfg.RiskyAllowed)
	assert.Equal(t, 7, cfg.MaxPasses)
	assert.Equal(t, []string{"vendor/**", "tests/fixtures/**"}, cfg.Exclude)
	assert.Equal(t, "\r\n", cfg.Whitespace.LineEnding)
	assert.Equal(t, "/tmp/cache", cfg.Cache.Path)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("GOPHPFIX_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOPHPFIX_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	names := EnvVarNames()
	assert.Len(t, names, len(vars))
	for _, name := range names {
		assert.Contains(t, vars, name)
	}
	assert.Contains(t, vars, "GOPHPFIX_RISKY_ALLOWED")
	assert.NoError(t, LoadFromEnv(nil))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Exclude = []string{"vendor/**"}

	base.Skip = map[string][]string{"array_syntax": {"legacy/**"}, "lowercase_keywords": {"tpl/**"}}

	cli := &config.Config{
		Rules:     map[string]config.RuleConfig{"array_syntax": {Enabled: false}},
		NoCache:   true,
		MaxPasses: 2,
		Skip:      map[string][]string{"array_syntax": {"old/**"}},
	}

	got := MergeAll(base, cli)
	assert.Equal(t, []string{"vendor/**"}, got.Exclude)
	assert.True(t, got.NoCache)
	assert.Equal(t, 2, got.MaxPasses)
	assert.Contains(t, got.Rules, "@Recommended")
	assert.False(t, got.Rules["array_syntax"].Enabled)
	assert.NotContains(t, base.Rules, "array_syntax", "base is not modified")
	assert.Equal(t, map[string][]string{"array_syntax": {"old/**"}, "lowercase_keywords": {"tpl/**"}}, got.Skip)
	assert.Equal(t, []string{"legacy/**"}, base.Skip["array_syntax"])
	assert.Nil(t, MergeAll())
}

func TestParseRuleList(t *testing.T) {
	t.Parallel()

	rules, err := ParseRuleList([]string{"@Base", " -lowercase_keywords", "array_syntax"})
	require.NoError(t, err)
	assert.True(t, rules["@Base"].Enabled)
	assert.False(t, rules["lowercase_keywords"].Enabled)
	assert.True(t, rules["array_syntax"].Enabled)

	_, err = ParseRuleList([]string{"-"})
	require.Error(t, err)
}
