package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestBinaryOperatorSpacesFixer(t *testing.T) {
	t.Parallel()

	runFixerCases(t, func() fixer.Fixer { return NewBinaryOperatorSpacesFixer() }, []fixerCase{
		{
			name:  "missing spaces",
			input: "<?php $a=1+2;",
			want:  "<?php $a = 1 + 2;",
		},
		{
			name:  "extra spaces",
			input: "<?php $a   =   1;",
			want:  "<?php $a = 1;",
		},
		{
			name:  "unary minus",
			input: "<?php $a = -1; $b = $c-1;",
			want:  "<?php $a = -1; $b = $c - 1;",
		},
		{
			name:  "declare directive",
			input: "<?php declare(strict_types=1);",
			want:  "<?php declare(strict_types=1);",
		},
		{
			name:  "references",
			input: "<?php function f(Foo &$x) { $y = &$x; }",
			want:  "<?php function f(Foo &$x) { $y = &$x; }",
		},
		{
			name:  "union types",
			input: "<?php function f(int|string $x): A|B {}",
			want:  "<?php function f(int|string $x): A|B {}",
		},
		{
			name:  "bitwise or of constants",
			input: "<?php $a = FOO|BAR;",
			want:  "<?php $a = FOO | BAR;",
		},
		{
			name:  "null coalescing",
			input: "<?php $a = $b??$c;",
			want:  "<?php $a = $b ?? $c;",
		},
		{
			name:  "double arrow",
			input: "<?php $a = ['a'=>1];",
			want:  "<?php $a = ['a' => 1];",
		},
		{
			name:  "line break is kept",
			input: "<?php\n$a = $b\n    + $c;\n",
			want:  "<?php\n$a = $b\n    + $c;\n",
		},
		{
			name:  "space before a comment is kept",
			input: "<?php\n$a =  // note\n    1;\n",
			want:  "<?php\n$a =  // note\n    1;\n",
		},
		{
			name:   "no space",
			input:  "<?php $a = 1 + 2;",
			want:   "<?php $a=1+2;",
			config: map[string]any{"default": StrategyNoSpace},
		},
	})
}

func TestBinaryOperatorSpacesFixer_Align(t *testing.T) {
	t.Parallel()

	alignEquals := map[string]any{"operators": map[string]any{"=": StrategyAlign}}

	runFixerCases(t, func() fixer.Fixer { return NewBinaryOperatorSpacesFixer() }, []fixerCase{
		{
			name:   "consecutive assignments",
			input:  "<?php\n$aa = 1;\n$b = 2;\n",
			want:   "<?php\n$aa = 1;\n$b  = 2;\n",
			config: alignEquals,
		},
		{
			name:   "blank line ends the group",
			input:  "<?php\n$aa = 1;\n$b = 2;\n\n$cccc = 3;\n$d = 4;\n",
			want:   "<?php\n$aa = 1;\n$b  = 2;\n\n$cccc = 3;\n$d    = 4;\n",
			config: alignEquals,
		},
		{
			name:   "other statement ends the group",
			input:  "<?php\n$aa = 1;\nfoo();\n$b = 2;\n",
			want:   "<?php\n$aa = 1;\nfoo();\n$b = 2;\n",
			config: alignEquals,
		},
		{
			name:   "minimal collapses before aligning",
			input:  "<?php\n$aa=1;\n$b     =    2;\n",
			want:   "<?php\n$aa = 1;\n$b  = 2;\n",
			config: map[string]any{"operators": map[string]any{"=": StrategyAlignSingleSpaceMinimal}},
		},
		{
			name:   "array keys",
			input:  "<?php\n$x = [\n    'a'=>1,\n    'bbb' => 2,\n];\n",
			want:   "<?php\n$x = [\n    'a'   => 1,\n    'bbb' => 2,\n];\n",
			config: map[string]any{"operators": map[string]any{"=>": StrategyAlignSingleSpaceMinimal}},
		},
		{
			name:   "foreach arrows are not aligned",
			input:  "<?php\nforeach ($a as $k => $v) {}\nforeach ($bb as $kk => $v) {}\n",
			want:   "<?php\nforeach ($a as $k => $v) {}\nforeach ($bb as $kk => $v) {}\n",
			config: map[string]any{"operators": map[string]any{"=>": StrategyAlign}},
		},
	})
}

func TestBinaryOperatorSpacesFixer_InvalidOperator(t *testing.T) {
	t.Parallel()

	f := NewBinaryOperatorSpacesFixer()
	_, err := fixer.ParseOptions(f.Name(), f.Options(), map[string]any{
		"operators": map[string]any{"~": StrategyAlign},
	})
	require.ErrorIs(t, err, fixer.ErrInvalidOption)

	_, err = fixer.ParseOptions(f.Name(), f.Options(), map[string]any{"default": "sideways"})
	require.ErrorIs(t, err, fixer.ErrInvalidOption)
}
