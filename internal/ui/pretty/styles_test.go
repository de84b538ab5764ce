package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
)

func TestNoColorStylesRenderPlainText(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	for name, style := range map[string]interface{ Render(...string) string }{
		"file path":   s.FilePath,
		"fixer":       s.Fixer,
		"diff add":    s.DiffAdd,
		"diff remove": s.DiffRemove,
		"unstable":    s.TableUnstableRow,
		"error row":   s.TableErrorRow,
		"bold":        s.Bold,
	} {
		assert.Equal(t, "src/App.php", style.Render("src/App.php"), name)
	}
}

func TestColorStylesKeepText(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(true)
	for _, rendered := range []string{
		s.Error.Render("array_syntax"), s.Warning.Render("array_syntax"),
		s.DiffHeader.Render("array_syntax"), s.DiffHunk.Render("array_syntax"),
		s.SummaryTitle.Render("array_syntax"), s.SummaryValue.Render("array_syntax"),
		s.TableHeader.Render("array_syntax"), s.TableLegend.Render("array_syntax"),
		s.Success.Render("array_syntax"), s.Failure.Render("array_syntax"),
	} {
		assert.Contains(t, rendered, "array_syntax")
	}
}

// Cases touching NO_COLOR use t.Setenv and cannot run in parallel.
func TestIsColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		writer  io.Writer
		noColor string
		want    bool
	}{
		{"always on a buffer", "always", &bytes.Buffer{}, "", true},
		{"always ignores NO_COLOR", "always", &bytes.Buffer{}, "1", true},
		{"never on stdout", "never", os.Stdout, "", false},
		{"auto on a buffer", "auto", &bytes.Buffer{}, "", false},
		{"auto with NO_COLOR", "auto", os.Stdout, "1", false},
		{"empty means auto", "", &bytes.Buffer{}, "", false},
		{"unknown means auto", "rainbow", &bytes.Buffer{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}
