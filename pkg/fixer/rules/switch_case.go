package rules

import (
	"strings"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// SwitchCaseSemicolonToColonFixer terminates 'case' and 'default' labels
// with a colon instead of a semicolon.
type SwitchCaseSemicolonToColonFixer struct {
	fixer.BaseFixer
}

// NewSwitchCaseSemicolonToColonFixer creates the fixer.
func NewSwitchCaseSemicolonToColonFixer() *SwitchCaseSemicolonToColonFixer {
	return &SwitchCaseSemicolonToColonFixer{
		BaseFixer: fixer.NewBaseFixer(
			"switch_case_semicolon_to_colon",
			"A case should be followed by a colon and not a semicolon",
			0,
		),
	}
}

// IsCandidate implements fixer.Fixer.
func (f *SwitchCaseSemicolonToColonFixer) IsCandidate(s *tokens.Stream) bool {
	return s.KindFound(token.KindSwitch) && s.KindFound(token.KindSemicolon)
}

// Apply implements fixer.Fixer.
func (f *SwitchCaseSemicolonToColonFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	for _, i := range s.FindKind(token.KindCase) {
		if isEnumCase(s, i) {
			continue
		}
		if end := caseTerminator(s, i); end != tokens.None && s.At(end).Kind == token.KindSemicolon {
			s.SetAt(end, token.New(token.KindColon, ":"))
		}
	}
	for _, i := range s.FindKind(token.KindDefault) {
		end := s.NextOfKind(i, token.OfKinds(token.KindColon, token.KindSemicolon, token.KindDoubleArrow)...)
		if end != tokens.None && s.At(end).Kind == token.KindSemicolon {
			s.SetAt(end, token.New(token.KindColon, ":"))
		}
	}
	return nil
}

// caseTerminator finds the ':' or ';' ending the case label at i. Nested
// parentheses and braces are skipped whole, and each '?' consumes the next
// ':' so a ternary is not mistaken for the terminator.
func caseTerminator(s *tokens.Stream, i int) int {
	ternaries := 0
	for k := i + 1; k < s.Len(); k++ {
		tok := s.At(k)
		switch tok.Kind {
		case token.KindOpenParen, token.KindOpenBrace:
			end := skipBlock(s, k)
			if end == k {
				return tokens.None
			}
			k = end
		case token.KindQuestion:
			ternaries++
		case token.KindColon, token.KindSemicolon:
			if ternaries == 0 {
				return k
			}
			ternaries--
		}
	}
	return tokens.None
}

// isEnumCase reports whether the 'case' at i declares an enum case, which
// must keep its semicolon.
func isEnumCase(s *tokens.Stream, i int) bool {
	open := enclosingBrace(s, i)
	if open == tokens.None {
		return false
	}
	for k := s.PrevMeaningful(open); k != tokens.None; k = s.PrevMeaningful(k) {
		tok := s.At(k)
		if tok.IsKind(token.KindSemicolon, token.KindOpenBrace, token.KindCloseBrace, token.KindOpenTag) {
			return false
		}
		if tok.Kind == token.KindKeyword && strings.EqualFold(tok.Content, "enum") {
			return true
		}
	}
	return false
}

// enclosingBrace returns the '{' of the innermost curly block containing i.
func enclosingBrace(s *tokens.Stream, i int) int {
	for k := i - 1; k >= 0; k-- {
		switch s.At(k).Kind {
		case token.KindCloseBrace:
			start := s.MatchingBlockStart(k, tokens.BlockCurly)
			if start == tokens.None {
				return tokens.None
			}
			k = start
		case token.KindOpenBrace:
			return k
		}
	}
	return tokens.None
}
