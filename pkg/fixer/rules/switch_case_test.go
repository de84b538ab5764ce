package rules

import (
	"testing"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestSwitchCaseSemicolonToColonFixer(t *testing.T) {
	t.Parallel()

	runFixerCases(t, func() fixer.Fixer { return NewSwitchCaseSemicolonToColonFixer() }, []fixerCase{
		{
			name:  "case and default",
			input: "<?php switch ($a) { case 1; break; default; break; }",
			want:  "<?php switch ($a) { case 1: break; default: break; }",
		},
		{
			name:  "ternary in label",
			input: "<?php switch ($a) { case $x ? 1 : 2; break; }",
			want:  "<?php switch ($a) { case $x ? 1 : 2: break; }",
		},
		{
			name:  "nested ternary in label",
			input: "<?php switch ($a) { case $x ? $y ? 1 : 2 : 3; break; }",
			want:  "<?php switch ($a) { case $x ? $y ? 1 : 2 : 3: break; }",
		},
		{
			name:  "parenthesized label",
			input: "<?php switch ($a) { case (1 ? 2 : 3); break; }",
			want:  "<?php switch ($a) { case (1 ? 2 : 3): break; }",
		},
		{
			name:  "colon is kept",
			input: "<?php switch ($a) { case 'a': break; }",
			want:  "<?php switch ($a) { case 'a': break; }",
		},
		{
			name:  "enum case keeps its semicolon",
			input: "<?php enum Suit { case Hearts; } switch ($a) { case 1; }",
			want:  "<?php enum Suit { case Hearts; } switch ($a) { case 1: }",
		},
		{
			name:  "match default arm",
			input: "<?php switch ($a) { default; } $x = match ($y) { default => 1 };",
			want:  "<?php switch ($a) { default: } $x = match ($y) { default => 1 };",
		},
	})
}
