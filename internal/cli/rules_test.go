package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runRules(&out, fixer.DefaultRegistry, &rulesFlags{format: "text"}))

	text := out.String()
	assert.Contains(t, text, "available fixers")
	assert.Contains(t, text, "array_syntax")
	assert.Contains(t, text, "options=syntax")
	assert.Contains(t, text, "@Recommended")
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runRules(&out, fixer.DefaultRegistry, &rulesFlags{format: formatJSON}))

	var doc struct {
		Fixers []struct {
			Name  string `json:"name"`
			Risky bool   `json:"risky"`
		} `json:"fixers"`
		Sets []setInfo `json:"sets"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))

	assert.Len(t, doc.Fixers, len(fixer.DefaultRegistry.Names()))
	risky := map[string]bool{}
	for _, f := range doc.Fixers {
		risky[f.Name] = f.Risky
	}
	assert.True(t, risky["no_alias_functions"])
	assert.False(t, risky["array_syntax"])

	sets := map[string][]string{}
	for _, s := range doc.Sets {
		sets[s.Name] = s.Fixers
	}
	assert.Contains(t, sets["@Recommended"], "array_syntax")
	assert.Contains(t, sets["@Recommended"], "no_trailing_whitespace", "nested sets are expanded")
	assert.NotContains(t, sets["@Recommended"], "no_alias_functions")
}

func TestRulesCommand_Set(t *testing.T) {
	t.Parallel()

	names, err := setFixers(fixer.DefaultRegistry, "@Whitespace")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"binary_operator_spaces",
		"no_trailing_whitespace",
		"single_blank_line_before_namespace",
		"whitespace_after_comma_in_array",
	}, names)

	var out bytes.Buffer
	require.NoError(t, runRules(&out, fixer.DefaultRegistry, &rulesFlags{format: "text", set: "@Risky"}))
	assert.Contains(t, out.String(), "no_alias_functions")
	assert.NotContains(t, out.String(), "array_syntax")

	_, err = setFixers(fixer.DefaultRegistry, "@Nope")
	require.ErrorIs(t, err, fixer.ErrUnknownSet)

	err = runRules(&out, fixer.DefaultRegistry, &rulesFlags{format: "text", set: "array_syntax"})
	require.ErrorIs(t, err, ErrUsage)

	err = runRules(&out, fixer.DefaultRegistry, &rulesFlags{format: "yaml"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestTemplateOptions(t *testing.T) {
	t.Parallel()

	opts := templateOptions(fixer.DefaultRegistry, true)
	assert.True(t, opts.Full)
	assert.Len(t, opts.Rules, len(fixer.DefaultRegistry.Names()))
	assert.Len(t, opts.Sets, len(fixer.DefaultRegistry.Sets()))

	for _, r := range opts.Rules {
		if r.Name == "array_syntax" {
			assert.Equal(t, "short", r.Options["syntax"])
		}
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, confirm(bytes.NewBufferString(tt.input), &out, "Overwrite?"), "input %q", tt.input)
		assert.Equal(t, "Overwrite? [y/N] ", out.String())
	}
}
