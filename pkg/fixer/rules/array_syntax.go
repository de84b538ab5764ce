package rules

import (
	"slices"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// Array syntax styles.
const (
	ArraySyntaxShort = "short"
	ArraySyntaxLong  = "long"
)

// ArraySyntaxFixer converts array literals between 'array(...)' and '[...]'.
type ArraySyntaxFixer struct {
	fixer.BaseFixer
	syntax string
}

// NewArraySyntaxFixer creates the fixer with the short syntax.
func NewArraySyntaxFixer() *ArraySyntaxFixer {
	return &ArraySyntaxFixer{
		BaseFixer: fixer.NewBaseFixer(
			"array_syntax",
			"PHP arrays should be declared using the configured syntax",
			1,
		),
		syntax: ArraySyntaxShort,
	}
}

// Options implements fixer.Configurable.
func (f *ArraySyntaxFixer) Options() fixer.OptionSchema {
	return fixer.OptionSchema{
		{
			Name:        "syntax",
			Description: "Whether to use the long or short array syntax.",
			Type:        fixer.OptionString,
			Allowed:     []any{ArraySyntaxShort, ArraySyntaxLong},
			Default:     ArraySyntaxShort,
		},
	}
}

// Configure implements fixer.Configurable.
func (f *ArraySyntaxFixer) Configure(opts fixer.Options) (fixer.Fixer, error) {
	out := *f
	out.syntax = opts.GetString("syntax")
	return &out, nil
}

// IsCandidate implements fixer.Fixer.
func (f *ArraySyntaxFixer) IsCandidate(s *tokens.Stream) bool {
	if f.syntax == ArraySyntaxLong {
		return s.KindFound(token.KindArrayOpen)
	}
	return s.KindFound(token.KindArray)
}

// Apply implements fixer.Fixer.
func (f *ArraySyntaxFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	if f.syntax == ArraySyntaxLong {
		toLong(s)
		return nil
	}
	toShort(s)
	return nil
}

func toShort(s *tokens.Stream) {
	for _, i := range s.FindKind(token.KindArray) {
		open, end, ok := arrayBounds(s, i)
		if !ok {
			continue
		}
		s.SetAt(open, token.New(token.KindArrayOpen, "["))
		s.SetAt(end, token.New(token.KindArrayClose, "]"))
		for k := i + 1; k < open; k++ {
			if s.At(k).IsWhitespace() {
				s.ClearAt(k)
			}
		}
		s.ClearAndMergeWhitespace(i)
	}
}

// toLong walks openers from the end so insertions do not shift the indices
// still to visit.
func toLong(s *tokens.Stream) {
	openers := s.FindKind(token.KindArrayOpen)
	slices.Reverse(openers)
	for _, i := range openers {
		end := s.MatchingBlockEnd(i, tokens.BlockArray)
		if end == tokens.None {
			continue
		}
		s.SetAt(i, token.New(token.KindOpenParen, "("))
		s.SetAt(end, token.New(token.KindCloseParen, ")"))
		s.InsertAt(i, token.New(token.KindArray, "array"))
	}
}
