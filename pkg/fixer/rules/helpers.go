package rules

import (
	"strings"

	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// arrayBounds returns the opener and closer of the array literal started by
// the token at i, which is either 'array' or a short array opener.
func arrayBounds(s *tokens.Stream, i int) (int, int, bool) {
	switch s.At(i).Kind {
	case token.KindArrayOpen:
		end := s.MatchingBlockEnd(i, tokens.BlockArray)
		return i, end, end != tokens.None
	case token.KindArray:
		open := s.NextMeaningful(i)
		if open == tokens.None || s.At(open).Kind != token.KindOpenParen {
			return 0, 0, false
		}
		end := s.MatchingBlockEnd(open, tokens.BlockParen)
		return open, end, end != tokens.None
	default:
		return 0, 0, false
	}
}

// skipBlock returns the closer index when i opens a balanced block, else i.
func skipBlock(s *tokens.Stream, i int) int {
	bt, opener, ok := tokens.DetectBlockType(s.At(i))
	if !ok || !opener {
		return i
	}
	if end := s.MatchingBlockEnd(i, bt); end != tokens.None {
		return end
	}
	return i
}

// isGlobalFunctionCall reports whether the identifier at i names a function
// being called in the global namespace: followed by '(' and not a method,
// static call, constructor, declaration or namespaced call.
func isGlobalFunctionCall(s *tokens.Stream, i int) bool {
	if s.At(i).Kind != token.KindIdentifier {
		return false
	}
	next := s.NextMeaningful(i)
	if next == tokens.None || s.At(next).Kind != token.KindOpenParen {
		return false
	}

	prev := s.PrevMeaningful(i)
	if prev == tokens.None {
		return true
	}
	switch s.At(prev).Kind {
	case token.KindDoubleColon, token.KindNew, token.KindFunction, token.KindReturnRef,
		token.KindObjectOperator, token.KindNullsafeObjectOperator, token.KindConst:
		return false
	case token.KindNsSeparator:
		before := s.PrevMeaningful(prev)
		return before == tokens.None || !s.At(before).IsKind(token.KindIdentifier, token.KindNew, token.KindNamespace)
	default:
		return true
	}
}

// countLineBreaks counts "\n", "\r\n" and lone "\r" sequences.
func countLineBreaks(text string) int {
	return strings.Count(text, "\n") + strings.Count(text, "\r") - strings.Count(text, "\r\n")
}

// nonEmptyBefore returns the nearest index before i that is not an empty
// placeholder.
func nonEmptyBefore(s *tokens.Stream, i int) int {
	for k := i - 1; k >= 0; k-- {
		if !s.At(k).IsEmpty() {
			return k
		}
	}
	return tokens.None
}
