package rules

import (
	"strings"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// linesBeforeNamespaceFixer keeps the number of line breaks before a
// namespace declaration within [minBreaks, maxBreaks].
type linesBeforeNamespaceFixer struct {
	fixer.BaseFixer
	minBreaks int
	maxBreaks int
}

// NewSingleBlankLineBeforeNamespaceFixer requires exactly one blank line
// before each namespace declaration.
func NewSingleBlankLineBeforeNamespaceFixer() fixer.Fixer {
	return &linesBeforeNamespaceFixer{
		BaseFixer: fixer.NewBaseFixer(
			"single_blank_line_before_namespace",
			"There should be exactly one blank line before a namespace declaration",
			0,
		),
		minBreaks: 2,
		maxBreaks: 2,
	}
}

// NewNoBlankLinesBeforeNamespaceFixer forbids blank lines before each
// namespace declaration.
func NewNoBlankLinesBeforeNamespaceFixer() fixer.Fixer {
	return &linesBeforeNamespaceFixer{
		BaseFixer: fixer.NewBaseFixer(
			"no_blank_lines_before_namespace",
			"There should be no blank lines before a namespace declaration",
			0,
		),
		minBreaks: 0,
		maxBreaks: 1,
	}
}

// IsCandidate implements fixer.Fixer.
func (f *linesBeforeNamespaceFixer) IsCandidate(s *tokens.Stream) bool {
	return s.KindFound(token.KindNamespace)
}

// Apply implements fixer.Fixer.
func (f *linesBeforeNamespaceFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	// Insertions only happen right before a namespace, so walk backwards.
	positions := s.FindKind(token.KindNamespace)
	for k := len(positions) - 1; k >= 0; k-- {
		i := positions[k]
		if next := s.NextMeaningful(i); next != tokens.None && s.At(next).Kind == token.KindNsSeparator {
			continue // 'namespace\foo()' is a relative name, not a declaration
		}
		f.fixLines(s, i, fc.Whitespace.LineEnding)
	}
	return nil
}

func (f *linesBeforeNamespaceFixer) fixLines(s *tokens.Stream, i int, lineEnding string) {
	prev := nonEmptyBefore(s, i)
	if prev == tokens.None {
		return
	}

	ws := tokens.None
	breaks := 0
	before := prev
	if s.At(prev).IsWhitespace() {
		ws = prev
		breaks = countLineBreaks(s.At(ws).Content)
		before = nonEmptyBefore(s, ws)
	}

	tagBreak := before != tokens.None && s.At(before).Kind == token.KindOpenTag &&
		strings.HasSuffix(s.At(before).Content, "\n")
	if tagBreak {
		breaks++
	}

	if breaks >= f.minBreaks && breaks <= f.maxBreaks {
		return
	}

	want := max(min(breaks, f.maxBreaks), f.minBreaks)
	if tagBreak {
		want--
	}
	if lineEnding == "" {
		lineEnding = "\n"
	}
	content := strings.Repeat(lineEnding, max(want, 0))

	switch {
	case ws != tokens.None && content == "":
		s.ClearAt(ws)
	case ws != tokens.None:
		s.SetAt(ws, token.Whitespace(content))
	case content != "":
		s.InsertAt(i, token.Whitespace(content))
	}
}
