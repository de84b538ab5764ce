package rules

import (
	"testing"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestWhitespaceAfterCommaInArrayFixer(t *testing.T) {
	t.Parallel()

	runFixerCases(t, func() fixer.Fixer { return NewWhitespaceAfterCommaInArrayFixer() }, []fixerCase{
		{
			name:  "short array",
			input: "<?php $a = [1,2, 3];",
			want:  "<?php $a = [1, 2, 3];",
		},
		{
			name:  "long array",
			input: "<?php $a = array(1,2);",
			want:  "<?php $a = array(1, 2);",
		},
		{
			name:  "trailing comma",
			input: "<?php $a = [1,2,];",
			want:  "<?php $a = [1, 2,];",
		},
		{
			name:  "call arguments inside an array are untouched",
			input: "<?php $a = [foo(1,2),3];",
			want:  "<?php $a = [foo(1,2), 3];",
		},
		{
			name:  "nested arrays",
			input: "<?php $a = [[1,2],[3,4]];",
			want:  "<?php $a = [[1, 2], [3, 4]];",
		},
		{
			name:  "multi-line array",
			input: "<?php $a = [\n    1,\n    2,\n];",
			want:  "<?php $a = [\n    1,\n    2,\n];",
		},
		{
			name:  "extra space is kept by default",
			input: "<?php $a = [1,    2];",
			want:  "<?php $a = [1,    2];",
		},
		{
			name:   "extra space is collapsed",
			input:  "<?php $a = [1,    2];",
			want:   "<?php $a = [1, 2];",
			config: map[string]any{"ensure_single_space": true},
		},
		{
			name:   "space before a comment is kept",
			input:  "<?php $a = [1,  // one\n    2];",
			want:   "<?php $a = [1,  // one\n    2];",
			config: map[string]any{"ensure_single_space": true},
		},
		{
			name:  "no array",
			input: "<?php foo(1,2);",
			want:  "<?php foo(1,2);",
		},
	})
}
