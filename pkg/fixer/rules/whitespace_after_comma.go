package rules

import (
	"slices"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// WhitespaceAfterCommaInArrayFixer puts a space after each comma separating
// array elements.
type WhitespaceAfterCommaInArrayFixer struct {
	fixer.BaseFixer
	ensureSingleSpace bool
}

// NewWhitespaceAfterCommaInArrayFixer creates the fixer.
func NewWhitespaceAfterCommaInArrayFixer() *WhitespaceAfterCommaInArrayFixer {
	return &WhitespaceAfterCommaInArrayFixer{
		BaseFixer: fixer.NewBaseFixer(
			"whitespace_after_comma_in_array",
			"In array declaration, there must be a whitespace after each comma",
			0,
		),
	}
}

// Options implements fixer.Configurable.
func (f *WhitespaceAfterCommaInArrayFixer) Options() fixer.OptionSchema {
	return fixer.OptionSchema{
		{
			Name:        "ensure_single_space",
			Description: "Collapse horizontal whitespace after a comma to a single space.",
			Type:        fixer.OptionBool,
			Default:     false,
		},
	}
}

// Configure implements fixer.Configurable.
func (f *WhitespaceAfterCommaInArrayFixer) Configure(opts fixer.Options) (fixer.Fixer, error) {
	out := *f
	out.ensureSingleSpace = opts.GetBool("ensure_single_space")
	return &out, nil
}

// IsCandidate implements fixer.Fixer.
func (f *WhitespaceAfterCommaInArrayFixer) IsCandidate(s *tokens.Stream) bool {
	return s.KindFound(token.KindComma) && s.KindExistsAnywhere(token.KindArray, token.KindArrayOpen)
}

// Apply implements fixer.Fixer. Arrays are visited last to first and each
// array's commas right to left, so insertions never move a pending index.
// Nested arrays are visited on their own.
func (f *WhitespaceAfterCommaInArrayFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream

	starts := append(s.FindKind(token.KindArray), s.FindKind(token.KindArrayOpen)...)
	slices.Sort(starts)
	slices.Reverse(starts)

	for _, i := range starts {
		open, end, ok := arrayBounds(s, i)
		if !ok {
			continue
		}

		var commas []int
		for k := open + 1; k < end; k++ {
			if s.At(k).Kind == token.KindComma {
				commas = append(commas, k)
				continue
			}
			k = skipBlock(s, k)
		}

		for _, k := range slices.Backward(commas) {
			f.fixComma(s, k, end)
		}
	}
	return nil
}

func (f *WhitespaceAfterCommaInArrayFixer) fixComma(s *tokens.Stream, comma, end int) {
	next := comma + 1
	if next == end {
		return
	}

	tok := s.At(next)
	switch {
	case !tok.IsWhitespace():
		s.InsertAt(next, token.Space())
	case tok.IsEmpty():
		if after := s.NextNonWhitespace(comma); after == next+1 && after != end {
			s.SetAt(next, token.Space())
		}
	case f.ensureSingleSpace && tok.Content != " " && !tok.ContainsNewline():
		if after := s.NextNonWhitespace(next); after != tokens.None && s.At(after).IsComment() {
			return
		}
		s.SetAt(next, token.Space())
	}
}
