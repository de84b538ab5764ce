package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

var lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)

// NoTrailingWhitespaceFixer removes spaces and tabs at the end of lines in
// code. Strings, heredocs and inline HTML are left alone.
type NoTrailingWhitespaceFixer struct {
	fixer.BaseFixer
}

// NewNoTrailingWhitespaceFixer creates the fixer.
func NewNoTrailingWhitespaceFixer() *NoTrailingWhitespaceFixer {
	return &NoTrailingWhitespaceFixer{
		BaseFixer: fixer.NewBaseFixer(
			"no_trailing_whitespace",
			"Remove trailing whitespace at the end of non-blank lines",
			0,
		),
	}
}

// IsCandidate implements fixer.Fixer.
func (f *NoTrailingWhitespaceFixer) IsCandidate(s *tokens.Stream) bool {
	return s.KindFound(token.KindWhitespace)
}

// Apply implements fixer.Fixer.
func (f *NoTrailingWhitespaceFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	last := s.Len() - 1

	for i := last; i >= 0; i-- {
		tok := s.At(i)

		if tok.Kind == token.KindOpenTag && i < last {
			fixOpenTag(s, i)
			continue
		}
		if !tok.IsWhitespace() || tok.IsEmpty() {
			continue
		}

		if !tok.ContainsNewline() {
			if i == last {
				s.ClearAt(i)
			}
			continue
		}

		trimmed := trimLines(tok.Content)
		if trimmed == "" {
			s.ClearAt(i)
		} else if trimmed != tok.Content {
			s.SetAt(i, token.Whitespace(trimmed))
		}
	}
	return nil
}

// trimLines strips trailing blanks from every line of a whitespace token
// except the last, which is the indentation of the following code.
func trimLines(ws string) string {
	breaks := lineBreaks.FindAllStringIndex(ws, -1)
	var sb strings.Builder
	start := 0
	for _, br := range breaks {
		sb.WriteString(strings.TrimRight(ws[start:br[0]], " \t"))
		sb.WriteString(ws[br[0]:br[1]])
		start = br[1]
	}
	sb.WriteString(ws[start:])
	return sb.String()
}

// fixOpenTag moves a line break that follows '<?php ' into the tag, dropping
// the space: "<?php \n" becomes "<?php\n".
func fixOpenTag(s *tokens.Stream, i int) {
	tag := s.At(i).Content
	next := s.At(i + 1)
	if !next.IsWhitespace() || (!strings.HasSuffix(tag, " ") && !strings.HasSuffix(tag, "\t")) {
		return
	}
	loc := lineBreaks.FindStringIndex(next.Content)
	if loc == nil || strings.TrimLeft(next.Content[:loc[0]], " \t") != "" {
		return
	}

	s.SetAt(i, token.New(token.KindOpenTag, strings.TrimRight(tag, " \t")+next.Content[loc[0]:loc[1]]))
	if rest := next.Content[loc[1]:]; rest != "" {
		s.SetAt(i+1, token.Whitespace(rest))
	} else {
		s.ClearAt(i + 1)
	}
}
