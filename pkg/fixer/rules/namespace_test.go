package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestSingleBlankLineBeforeNamespaceFixer(t *testing.T) {
	t.Parallel()

	runFixerCases(t, NewSingleBlankLineBeforeNamespaceFixer, []fixerCase{
		{
			name:  "blank line is added",
			input: "<?php\nnamespace A;\n",
			want:  "<?php\n\nnamespace A;\n",
		},
		{
			name:  "extra blank lines are removed",
			input: "<?php\n\n\n\nnamespace A;\n",
			want:  "<?php\n\nnamespace A;\n",
		},
		{
			name:  "already correct",
			input: "<?php\n\nnamespace A;\n",
			want:  "<?php\n\nnamespace A;\n",
		},
		{
			name:  "relative name is not a declaration",
			input: "<?php\n$a = namespace\\foo();\n",
			want:  "<?php\n$a = namespace\\foo();\n",
		},
	})
}

func TestNoBlankLinesBeforeNamespaceFixer(t *testing.T) {
	t.Parallel()

	runFixerCases(t, NewNoBlankLinesBeforeNamespaceFixer, []fixerCase{
		{
			name:  "blank lines are removed",
			input: "<?php\n\n\nnamespace A;\n",
			want:  "<?php\nnamespace A;\n",
		},
		{
			name:  "already correct",
			input: "<?php\nnamespace A;\n",
			want:  "<?php\nnamespace A;\n",
		},
	})
}

func TestNamespaceFixersConflict(t *testing.T) {
	t.Parallel()

	registry := fixer.NewRegistry()
	RegisterAll(registry)
	_, err := registry.Resolve(fixer.Rules{
		"single_blank_line_before_namespace": fixer.Enable(),
		"no_blank_lines_before_namespace":    fixer.Enable(),
	}, fixer.ResolveOptions{})
	require.ErrorIs(t, err, fixer.ErrConflict)
}
