// Package tokens provides the mutable token stream fixers operate on.
//
// A Stream keeps indices stable: cleared tokens become empty whitespace
// placeholders instead of being removed, so positions cached by a fixer stay
// valid until that fixer inserts or overwrites a range. Derived structures
// (kind index, block map) are kept consistent with every mutation, either
// incrementally or by a lazy rebuild before the next read.
package tokens

import (
	"slices"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/token"
)

// None is returned by navigation methods when no token qualifies.
const None = -1

// Stream is an ordered, indexable collection of tokens for one source file.
// A Stream is not safe for concurrent use.
type Stream struct {
	toks []token.Token

	// counts is maintained on every mutation.
	counts map[token.Kind]int

	// positions is rebuilt lazily when positionsDirty is set.
	positions      map[token.Kind][]int
	positionsDirty bool

	// pairs[i] is the partner of a paired structural token, or None.
	pairs       []int
	blocksDirty bool

	version uint64
}

// New builds a stream over a copy of toks.
func New(toks []token.Token) *Stream {
	s := &Stream{
		toks:           slices.Clone(toks),
		counts:         make(map[token.Kind]int),
		positionsDirty: true,
		blocksDirty:    true,
	}
	for _, t := range s.toks {
		s.counts[t.Kind]++
	}
	return s
}

// Len returns the number of tokens, placeholders included.
func (s *Stream) Len() int {
	return len(s.toks)
}

// At returns the token at index i.
func (s *Stream) At(i int) token.Token {
	s.checkIndex("At", i)
	return s.toks[i]
}

// Tokens returns a copy of the token sequence.
func (s *Stream) Tokens() []token.Token {
	return slices.Clone(s.toks)
}

// Text concatenates token contents in order. Alignment markers are left in
// place; see the serializer for the rendered form.
func (s *Stream) Text() string {
	var sb strings.Builder
	for _, t := range s.toks {
		sb.WriteString(t.Content)
	}
	return sb.String()
}

// Version increases with every mutation that changes the stream.
func (s *Stream) Version() uint64 {
	return s.version
}

// KindFound reports whether any token has the given kind.
func (s *Stream) KindFound(kind token.Kind) bool {
	return s.counts[kind] > 0
}

// KindExistsAnywhere reports whether any token has one of the given kinds.
func (s *Stream) KindExistsAnywhere(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if s.counts[k] > 0 {
			return true
		}
	}
	return false
}

// AllKindsFound reports whether every given kind occurs at least once.
func (s *Stream) AllKindsFound(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if s.counts[k] == 0 {
			return false
		}
	}
	return true
}

// FindKind returns the ascending indices of tokens of the given kind.
func (s *Stream) FindKind(kind token.Kind) []int {
	s.ensurePositions()
	return slices.Clone(s.positions[kind])
}

// NextMeaningful returns the nearest index after i that is neither whitespace nor comment.
func (s *Stream) NextMeaningful(i int) int {
	for k := i + 1; k < len(s.toks); k++ {
		if s.toks[k].IsMeaningful() {
			return k
		}
	}
	return None
}

// PrevMeaningful returns the nearest index before i that is neither whitespace nor comment.
func (s *Stream) PrevMeaningful(i int) int {
	for k := min(i, len(s.toks)) - 1; k >= 0; k-- {
		if s.toks[k].IsMeaningful() {
			return k
		}
	}
	return None
}

// NextNonWhitespace returns the nearest index after i that is not whitespace.
func (s *Stream) NextNonWhitespace(i int) int {
	for k := i + 1; k < len(s.toks); k++ {
		if !s.toks[k].IsWhitespace() {
			return k
		}
	}
	return None
}

// PrevNonWhitespace returns the nearest index before i that is not whitespace.
func (s *Stream) PrevNonWhitespace(i int) int {
	for k := min(i, len(s.toks)) - 1; k >= 0; k-- {
		if !s.toks[k].IsWhitespace() {
			return k
		}
	}
	return None
}

// NextOfKind returns the nearest index after i whose token satisfies any matcher.
func (s *Stream) NextOfKind(i int, matchers ...token.Matcher) int {
	for k := i + 1; k < len(s.toks); k++ {
		if s.toks[k].EqualsAny(matchers...) {
			return k
		}
	}
	return None
}

// PrevOfKind returns the nearest index before i whose token satisfies any matcher.
func (s *Stream) PrevOfKind(i int, matchers ...token.Matcher) int {
	for k := min(i, len(s.toks)) - 1; k >= 0; k-- {
		if s.toks[k].EqualsAny(matchers...) {
			return k
		}
	}
	return None
}

// IsMultilineBetween reports whether any token in [i, j] contains a line break.
func (s *Stream) IsMultilineBetween(i, j int) bool {
	s.checkIndex("IsMultilineBetween", i)
	s.checkIndex("IsMultilineBetween", j)
	if j < i {
		i, j = j, i
	}
	for k := i; k <= j; k++ {
		if s.toks[k].ContainsNewline() {
			return true
		}
	}
	return false
}

func (s *Stream) checkIndex(op string, i int) {
	if i < 0 || i >= len(s.toks) {
		misuse(op, i, ErrIndexOutOfRange)
	}
}

func (s *Stream) ensurePositions() {
	if !s.positionsDirty {
		return
	}
	s.positions = make(map[token.Kind][]int, len(s.counts))
	for i, t := range s.toks {
		s.positions[t.Kind] = append(s.positions[t.Kind], i)
	}
	s.positionsDirty = false
}
