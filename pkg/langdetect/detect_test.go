package langdetect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "text"},
		{"env shebang", "#!/usr/bin/env php\n<?php\necho 1;\n", "php"},
		{"direct shebang", "#!/usr/bin/php\n<?php\necho 1;\n", "php"},
		{"open tag", "<?php\nnamespace App;\n", "php"},
		{"upper open tag", "<?PHP\necho 1;\n", "php"},
		{"shell", "#!/bin/sh\necho hi\n", "shell"},
		{"plain text", "just some notes\n", "text"},
		{"inline html", "<html><?php echo 1; ?></html>\n", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Detect([]byte(tt.content)))
		})
	}
}

func TestIsPHPScriptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "console")
	require.NoError(t, os.WriteFile(script, []byte("#!/usr/bin/env php\n<?php\nrun();\n"), 0o600))
	notes := filepath.Join(dir, "NOTES")
	require.NoError(t, os.WriteFile(notes, []byte("todo\n"), 0o600))

	assert.True(t, IsPHPScriptFile(script))
	assert.False(t, IsPHPScriptFile(notes))
	assert.False(t, IsPHPScriptFile(filepath.Join(dir, "missing")))
}

func BenchmarkDetect(b *testing.B) {
	code := []byte("#!/usr/bin/env php\n<?php\n\nrequire __DIR__.'/vendor/autoload.php';\n")
	for range b.N {
		Detect(code)
	}
}
