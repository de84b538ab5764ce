package rules

import (
	"testing"

	"github.com/yaklabco/gophpfix/pkg/fixer"
)

func TestNoTrailingWhitespaceFixer(t *testing.T) {
	t.Parallel()

	runFixerCases(t, func() fixer.Fixer { return NewNoTrailingWhitespaceFixer() }, []fixerCase{
		{
			name:  "spaces and tabs at line end",
			input: "<?php\n$a = 1;   \n$b = 2;\t\n",
			want:  "<?php\n$a = 1;\n$b = 2;\n",
		},
		{
			name:  "space after open tag",
			input: "<?php \n$a = 1;\n",
			want:  "<?php\n$a = 1;\n",
		},
		{
			name:  "blank line with spaces",
			input: "<?php\n$a = 1;\n   \n$b = 2;\n",
			want:  "<?php\n$a = 1;\n\n$b = 2;\n",
		},
		{
			name:  "indentation is kept",
			input: "<?php\nif ($a) {  \n    $b = 1;\n}\n",
			want:  "<?php\nif ($a) {\n    $b = 1;\n}\n",
		},
		{
			name:  "string literal is untouched",
			input: "<?php\n$s = 'a  \nb';\n",
			want:  "<?php\n$s = 'a  \nb';\n",
		},
		{
			name:  "whitespace at end of file",
			input: "<?php\n$a = 1;  ",
			want:  "<?php\n$a = 1;",
		},
		{
			name:  "inline html is untouched",
			input: "<p>  \n</p>\n<?php echo 1;\n",
			want:  "<p>  \n</p>\n<?php echo 1;\n",
		},
	})
}
