package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/serializer"
	"github.com/yaklabco/gophpfix/pkg/tokenizer"
)

// fixerCase is one input/output pair for a single fixer.
type fixerCase struct {
	name   string
	input  string
	want   string
	config map[string]any
}

// applyOnce tokenizes input, runs f when it is a candidate and renders the
// result.
func applyOnce(t *testing.T, f fixer.Fixer, input string) string {
	t.Helper()

	stream := tokenizer.TokenizeString(input)
	if !f.IsCandidate(stream) {
		return input
	}
	fc := &fixer.FileContext{Path: "test.php", Stream: stream, Whitespace: fixer.DefaultWhitespace()}
	require.NoError(t, f.Apply(fc))
	return serializer.Render(stream)
}

// configured returns f configured with raw, or f itself for a nil config.
func configured(t *testing.T, f fixer.Fixer, raw map[string]any) fixer.Fixer {
	t.Helper()

	if raw == nil {
		return f
	}
	cf, ok := f.(fixer.Configurable)
	require.True(t, ok, "%s is not configurable", f.Name())
	opts, err := fixer.ParseOptions(f.Name(), cf.Options(), raw)
	require.NoError(t, err)
	out, err := cf.Configure(opts)
	require.NoError(t, err)
	return out
}

// runFixerCases checks each case and that fixing the output again changes
// nothing.
func runFixerCases(t *testing.T, newFixer func() fixer.Fixer, tests []fixerCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := configured(t, newFixer(), tt.config)
			got := applyOnce(t, f, tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, applyOnce(t, f, got), "fixing twice must not change the output")
		})
	}
}
