package rules

import (
	"strings"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

//nolint:gochecknoglobals // Read-only kind list.
var keywordKinds = []token.Kind{
	token.KindKeyword, token.KindArray, token.KindFunction, token.KindFn, token.KindNew,
	token.KindSwitch, token.KindCase, token.KindDefault, token.KindNamespace, token.KindUse,
	token.KindAs, token.KindList, token.KindConst, token.KindArrayTypeHint,
}

// LowercaseKeywordsFixer writes reserved words in lower case.
type LowercaseKeywordsFixer struct {
	fixer.BaseFixer
}

// NewLowercaseKeywordsFixer creates the fixer.
func NewLowercaseKeywordsFixer() *LowercaseKeywordsFixer {
	return &LowercaseKeywordsFixer{
		BaseFixer: fixer.NewBaseFixer(
			"lowercase_keywords",
			"PHP keywords must be in lower case",
			0,
		),
	}
}

// IsCandidate implements fixer.Fixer.
func (f *LowercaseKeywordsFixer) IsCandidate(s *tokens.Stream) bool {
	return s.KindExistsAnywhere(keywordKinds...)
}

// Apply implements fixer.Fixer.
func (f *LowercaseKeywordsFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	for i := range s.Len() {
		tok := s.At(i)
		if !tok.IsKeyword() {
			continue
		}
		if lower := strings.ToLower(tok.Content); lower != tok.Content {
			s.SetAt(i, token.New(tok.Kind, lower))
		}
	}
	return nil
}

// NormalizeIndexBraceFixer replaces the removed '$a{0}' offset syntax with
// '$a[0]'.
type NormalizeIndexBraceFixer struct {
	fixer.BaseFixer
}

// NewNormalizeIndexBraceFixer creates the fixer.
func NewNormalizeIndexBraceFixer() *NormalizeIndexBraceFixer {
	return &NormalizeIndexBraceFixer{
		BaseFixer: fixer.NewBaseFixer(
			"normalize_index_brace",
			"Array index should always be written by using square braces",
			0,
		),
	}
}

// IsCandidate implements fixer.Fixer.
func (f *NormalizeIndexBraceFixer) IsCandidate(s *tokens.Stream) bool {
	return s.AllKindsFound(token.KindVariable, token.KindOpenBrace)
}

// Apply implements fixer.Fixer. Only a brace written directly after a
// variable or another index access is an offset.
func (f *NormalizeIndexBraceFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	for _, i := range s.FindKind(token.KindOpenBrace) {
		if i == 0 || !s.At(i-1).IsKind(token.KindVariable, token.KindIndexClose) {
			continue
		}
		end := s.MatchingBlockEnd(i, tokens.BlockCurly)
		if end == tokens.None {
			continue
		}
		s.SetAt(i, token.New(token.KindIndexOpen, "["))
		s.SetAt(end, token.New(token.KindIndexClose, "]"))
	}
	return nil
}
