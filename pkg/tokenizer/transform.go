package tokenizer

import (
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// SquareBracketTransformer classifies each '[' and its closer as an array
// literal, an index access or a destructuring target.
//
// An opener preceded by something that can be indexed (a variable, a name, a
// string, or any closing bracket) is an index access. Otherwise it is a
// literal, and the literal is a destructuring target when its closer is
// followed by '=', when it follows 'as' in a foreach, or when it sits
// directly inside another destructuring target.
type SquareBracketTransformer struct{}

// Name implements Transformer.
func (SquareBracketTransformer) Name() string { return "square_bracket" }

// Transform implements Transformer.
func (SquareBracketTransformer) Transform(s *tokens.Stream) {
	var destructuringEnds []int

	for i := 0; i < s.Len(); i++ {
		for n := len(destructuringEnds); n > 0 && i > destructuringEnds[n-1]; n-- {
			destructuringEnds = destructuringEnds[:n-1]
		}

		t := s.At(i)
		if t.Kind == token.KindAttributeOpen {
			if end := s.MatchingBlockEnd(i, tokens.BlockAttribute); end != tokens.None {
				s.SetAt(end, token.New(token.KindAttributeClose, s.At(end).Content))
			}
			continue
		}
		if !isSquareOpen(t.Kind) {
			continue
		}

		bt, _, _ := tokens.DetectBlockType(t)
		end := s.MatchingBlockEnd(i, bt)
		if end == tokens.None {
			s.SetAt(i, token.New(token.KindOpenBracket, t.Content))
			continue
		}

		openKind, closeKind := classifySquare(s, i, end, destructuringEnds)
		s.SetAt(i, token.New(openKind, t.Content))
		s.SetAt(end, token.New(closeKind, s.At(end).Content))
		if openKind == token.KindDestructuringOpen {
			destructuringEnds = append(destructuringEnds, end)
		}
	}
}

func classifySquare(s *tokens.Stream, open, end int, destructuringEnds []int) (token.Kind, token.Kind) {
	prev := s.PrevMeaningful(open)
	if prev != tokens.None && isIndexable(s.At(prev).Kind) {
		return token.KindIndexOpen, token.KindIndexClose
	}

	if next := s.NextMeaningful(end); next != tokens.None && s.At(next).Kind == token.KindEquals {
		return token.KindDestructuringOpen, token.KindDestructuringClose
	}
	if prev != tokens.None {
		switch s.At(prev).Kind {
		case token.KindAs:
			return token.KindDestructuringOpen, token.KindDestructuringClose
		case token.KindDestructuringOpen, token.KindComma, token.KindDoubleArrow:
			if n := len(destructuringEnds); n > 0 && open < destructuringEnds[n-1] {
				return token.KindDestructuringOpen, token.KindDestructuringClose
			}
		}
	}
	return token.KindArrayOpen, token.KindArrayClose
}

// isIndexable lists kinds after which '[' is an index access.
func isIndexable(kind token.Kind) bool {
	switch kind {
	case token.KindCloseParen, token.KindCloseBrace,
		token.KindCloseBracket, token.KindIndexClose, token.KindArrayClose, token.KindDestructuringClose,
		token.KindStringLiteral, token.KindInterpolatedString,
		token.KindIdentifier, token.KindVariable:
		return true
	default:
		return false
	}
}

func isSquareOpen(kind token.Kind) bool {
	switch kind {
	case token.KindOpenBracket, token.KindIndexOpen, token.KindArrayOpen, token.KindDestructuringOpen:
		return true
	default:
		return false
	}
}

// ArrayTypeHintTransformer marks 'array' used as a type rather than as the
// long-form array constructor.
type ArrayTypeHintTransformer struct{}

// Name implements Transformer.
func (ArrayTypeHintTransformer) Name() string { return "array_type_hint" }

// Transform implements Transformer.
func (ArrayTypeHintTransformer) Transform(s *tokens.Stream) {
	for _, i := range s.FindKind(token.KindArray) {
		next := s.NextMeaningful(i)
		if next == tokens.None || s.At(next).Kind != token.KindOpenParen {
			s.SetAt(i, token.New(token.KindArrayTypeHint, s.At(i).Content))
		}
	}
}

// ReturnRefTransformer marks '&' right after 'function' or 'fn' as a
// by-reference return marker.
type ReturnRefTransformer struct{}

// Name implements Transformer.
func (ReturnRefTransformer) Name() string { return "return_ref" }

// Transform implements Transformer.
func (ReturnRefTransformer) Transform(s *tokens.Stream) {
	for _, i := range s.FindKind(token.KindAmpersand) {
		prev := s.PrevMeaningful(i)
		if prev != tokens.None && s.At(prev).IsKind(token.KindFunction, token.KindFn) {
			s.SetAt(i, token.New(token.KindReturnRef, s.At(i).Content))
		}
	}
}
