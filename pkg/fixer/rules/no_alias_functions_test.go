package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestNoAliasFunctionsFixer(t *testing.T) {
	t.Parallel()

	input := "<?php\n$n = sizeof($a);\n$s = join(',', $b);\n$o->join($c);\n$m = mbsplit('x', $y);\n"

	runFixerCases(t, func() fixer.Fixer { return NewNoAliasFunctionsFixer() }, []fixerCase{
		{
			name:  "internal aliases",
			input: input,
			want:  "<?php\n$n = count($a);\n$s = implode(',', $b);\n$o->join($c);\n$m = mbsplit('x', $y);\n",
		},
		{
			name:   "mbstring aliases only",
			input:  input,
			want:   "<?php\n$n = sizeof($a);\n$s = join(',', $b);\n$o->join($c);\n$m = mb_split('x', $y);\n",
			config: map[string]any{"sets": []any{AliasSetMbString}},
		},
		{
			name:   "all aliases",
			input:  input,
			want:   "<?php\n$n = count($a);\n$s = implode(',', $b);\n$o->join($c);\n$m = mb_split('x', $y);\n",
			config: map[string]any{"sets": []any{AliasSetAll}},
		},
	})
}

func TestNoAliasFunctionsFixer_IsRisky(t *testing.T) {
	t.Parallel()

	assert.True(t, fixer.IsRisky(NewNoAliasFunctionsFixer()))
	assert.False(t, fixer.IsRisky(NewArraySyntaxFixer()))
}
