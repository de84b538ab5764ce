package configloader

import (
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// WhitespaceResolver answers the indentation and line ending of a file from
// the .editorconfig files above it, falling back to the configured
// whitespace block for anything they leave unset. Safe for concurrent use.
type WhitespaceResolver struct {
	fallback fixer.Whitespace

	mu     sync.Mutex
	parser *editorconfig.CachedParser
}

// NewWhitespaceResolver uses ws for files without editorconfig settings.
// Empty fields of ws take the fixer defaults.
func NewWhitespaceResolver(ws config.WhitespaceConfig) *WhitespaceResolver {
	fallback := fixer.DefaultWhitespace()
	if ws.Indent != "" {
		fallback.Indent = ws.Indent
	}
	if ws.LineEnding != "" {
		fallback.LineEnding = ws.LineEnding
	}
	return &WhitespaceResolver{fallback: fallback, parser: editorconfig.NewCachedParser()}
}

// Fallback returns the whitespace used when no editorconfig applies.
func (r *WhitespaceResolver) Fallback() fixer.Whitespace {
	return r.fallback
}

// For returns the whitespace for path. Unreadable or malformed
// .editorconfig files count as absent.
func (r *WhitespaceResolver) For(path string) fixer.Whitespace {
	abs, err := filepath.Abs(path)
	if err != nil {
		return r.fallback
	}

	r.mu.Lock()
	def, err := (&editorconfig.Config{Parser: r.parser}).Load(abs)
	r.mu.Unlock()
	if err != nil || def == nil {
		return r.fallback
	}

	ws := r.fallback
	switch strings.ToLower(def.IndentStyle) {
	case editorconfig.IndentStyleTab:
		ws.Indent = "\t"
	case editorconfig.IndentStyleSpaces:
		ws.Indent = strings.Repeat(" ", indentWidth(def, len(spacesOnly(r.fallback.Indent))))
	default:
		if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 && ws.Indent != "\t" {
			ws.Indent = strings.Repeat(" ", n)
		}
	}

	switch strings.ToLower(def.EndOfLine) {
	case editorconfig.EndOfLineLf:
		ws.LineEnding = "\n"
	case editorconfig.EndOfLineCrLf:
		ws.LineEnding = "\r\n"
	case editorconfig.EndOfLineCr:
		ws.LineEnding = "\r"
	}
	return ws
}

// indentWidth reads indent_size, which may say "tab" to defer to tab_width.
func indentWidth(def *editorconfig.Definition, fallback int) int {
	if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
		return n
	}
	if def.IndentSize == "tab" && def.TabWidth > 0 {
		return def.TabWidth
	}
	if fallback > 0 {
		return fallback
	}
	return len(fixer.DefaultWhitespace().Indent)
}

func spacesOnly(indent string) string {
	if strings.Trim(indent, " ") != "" {
		return ""
	}
	return indent
}
