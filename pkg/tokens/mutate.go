package tokens

import (
	"slices"

	"github.com/yaklabco/gophpfix/pkg/token"
)

// Side selects a neighbor of a token.
type Side uint8

// Sides.
const (
	Before Side = iota
	After
)

// SetAt replaces the token at i.
func (s *Stream) SetAt(i int, tok token.Token) {
	s.checkIndex("SetAt", i)
	old := s.toks[i]
	if old == tok {
		return
	}
	s.counts[old.Kind]--
	s.counts[tok.Kind]++
	s.toks[i] = tok
	if old.Kind != tok.Kind {
		s.positionsDirty = true
		// Swapping one square bracket kind for another keeps the pairing.
		if familyOf(old.Kind) != familyOf(tok.Kind) || isOpener(old.Kind) != isOpener(tok.Kind) {
			s.blocksDirty = true
		}
	}
	s.version++
}

// ClearAt turns the token at i into an empty whitespace placeholder.
func (s *Stream) ClearAt(i int) {
	s.SetAt(i, token.Whitespace(""))
}

// InsertAt inserts toks before index i; i may equal Len to append.
// Every index at or after i shifts right by len(toks).
func (s *Stream) InsertAt(i int, toks ...token.Token) {
	if i < 0 || i > len(s.toks) {
		misuse("InsertAt", i, ErrIndexOutOfRange)
	}
	if len(toks) == 0 {
		return
	}
	s.toks = slices.Insert(s.toks, i, toks...)
	for _, t := range toks {
		s.counts[t.Kind]++
	}
	s.structureChanged()
}

// OverwriteRange replaces the closed interval [i, j] with toks, which may be
// shorter or longer than the range. Blocks wholly inside the range are
// dropped; a block with one end inside and one end outside is a misuse.
func (s *Stream) OverwriteRange(i, j int, toks ...token.Token) {
	s.checkIndex("OverwriteRange", i)
	s.checkIndex("OverwriteRange", j)
	if j < i {
		misuse("OverwriteRange", j, ErrIndexOutOfRange)
	}

	s.ensureBlocks()
	for k := i; k <= j; k++ {
		if p := s.pairs[k]; p != None && (p < i || p > j) {
			misuse("OverwriteRange", k, ErrCrossingBlock)
		}
	}

	for _, t := range s.toks[i : j+1] {
		s.counts[t.Kind]--
	}
	for _, t := range toks {
		s.counts[t.Kind]++
	}
	s.toks = slices.Replace(s.toks, i, j+1, toks...)
	s.structureChanged()
}

// ClearAndMergeWhitespace clears the token at i and, when it sat between two
// whitespace tokens, folds the following whitespace into the preceding one
// so the deletion does not leave a double gap. Index i is never removed.
func (s *Stream) ClearAndMergeWhitespace(i int) {
	s.checkIndex("ClearAndMergeWhitespace", i)
	s.ClearAt(i)

	next := s.nonEmptySibling(i, 1)
	if next == None || !s.toks[next].IsWhitespace() {
		return
	}
	prev := s.nonEmptySibling(i, -1)
	switch {
	case prev != None && s.toks[prev].IsWhitespace():
		s.SetAt(prev, token.Whitespace(s.toks[prev].Content+s.toks[next].Content))
	case prev+1 < len(s.toks) && s.toks[prev+1].IsEmpty():
		s.SetAt(prev+1, token.Whitespace(s.toks[next].Content))
	default:
		return
	}
	s.ClearAt(next)
}

// EnsureSingleSpaceAt makes the neighbor of i on the given side a single
// space. Whitespace containing a line break is left for indentation rules.
// It reports whether a token was inserted; when side is Before, the token
// formerly at i is then at i+1.
func (s *Stream) EnsureSingleSpaceAt(i int, side Side) bool {
	s.checkIndex("EnsureSingleSpaceAt", i)

	n := i + 1
	if side == Before {
		n = i - 1
	}
	if n >= 0 && n < len(s.toks) && s.toks[n].IsWhitespace() {
		if !s.toks[n].ContainsNewline() {
			s.SetAt(n, token.Space())
		}
		return false
	}

	if side == Before {
		s.InsertAt(i, token.Space())
	} else {
		s.InsertAt(i+1, token.Space())
	}
	return true
}

func (s *Stream) structureChanged() {
	s.positionsDirty = true
	s.blocksDirty = true
	s.version++
}

// nonEmptySibling walks from i in direction dir and returns the first index
// that is not an empty placeholder.
func (s *Stream) nonEmptySibling(i, dir int) int {
	for k := i + dir; k >= 0 && k < len(s.toks); k += dir {
		if !s.toks[k].IsEmpty() {
			return k
		}
	}
	return None
}
