package tokens

import (
	"github.com/yaklabco/gophpfix/pkg/token"
)

// BlockType identifies a pair of structural tokens.
type BlockType uint8

// Block types.
const (
	BlockParen BlockType = iota + 1
	BlockCurly
	BlockIndex // '[' ']' index access, and brackets left unclassified
	BlockArray
	BlockDestructuring
	BlockAttribute
)

type blockDef struct {
	name   string
	family family
	open   []token.Kind
	close  []token.Kind
}

// family groups block types that share a pairing stack: any square opener
// pairs with the next square closer at the same depth.
type family uint8

const (
	familyNone family = iota
	familyParen
	familyCurly
	familySquare
)

//nolint:gochecknoglobals // Read-only block definitions.
var blockDefs = map[BlockType]blockDef{
	BlockParen: {
		name: "paren", family: familyParen,
		open: []token.Kind{token.KindOpenParen}, close: []token.Kind{token.KindCloseParen},
	},
	BlockCurly: {
		name: "curly", family: familyCurly,
		open: []token.Kind{token.KindOpenBrace}, close: []token.Kind{token.KindCloseBrace},
	},
	BlockIndex: {
		name: "index", family: familySquare,
		open:  []token.Kind{token.KindIndexOpen, token.KindOpenBracket},
		close: []token.Kind{token.KindIndexClose, token.KindCloseBracket},
	},
	BlockArray: {
		name: "array", family: familySquare,
		open: []token.Kind{token.KindArrayOpen}, close: []token.Kind{token.KindArrayClose},
	},
	BlockDestructuring: {
		name: "destructuring", family: familySquare,
		open: []token.Kind{token.KindDestructuringOpen}, close: []token.Kind{token.KindDestructuringClose},
	},
	BlockAttribute: {
		name: "attribute", family: familySquare,
		open: []token.Kind{token.KindAttributeOpen}, close: []token.Kind{token.KindAttributeClose},
	},
}

// String returns the block type name.
func (b BlockType) String() string {
	if def, ok := blockDefs[b]; ok {
		return def.name
	}
	return "unknown"
}

// DetectBlockType reports which block type tok opens or closes.
func DetectBlockType(tok token.Token) (BlockType, bool, bool) {
	for bt := BlockParen; bt <= BlockAttribute; bt++ {
		def := blockDefs[bt]
		if tok.IsKind(def.open...) {
			return bt, true, true
		}
		if tok.IsKind(def.close...) {
			return bt, false, true
		}
	}
	return 0, false, false
}

func familyOf(kind token.Kind) family {
	switch kind {
	case token.KindOpenParen, token.KindCloseParen:
		return familyParen
	case token.KindOpenBrace, token.KindCloseBrace:
		return familyCurly
	case token.KindOpenBracket, token.KindCloseBracket,
		token.KindIndexOpen, token.KindIndexClose,
		token.KindArrayOpen, token.KindArrayClose,
		token.KindDestructuringOpen, token.KindDestructuringClose,
		token.KindAttributeOpen, token.KindAttributeClose:
		return familySquare
	default:
		return familyNone
	}
}

func isOpener(kind token.Kind) bool {
	switch kind {
	case token.KindOpenParen, token.KindOpenBrace, token.KindOpenBracket, token.KindIndexOpen,
		token.KindArrayOpen, token.KindDestructuringOpen, token.KindAttributeOpen:
		return true
	default:
		return false
	}
}

// MatchingBlockEnd returns the index of the closer paired with the opener at
// open, or None when the block is unbalanced. It panics with a *MisuseError
// when the token at open does not open a block of type bt.
func (s *Stream) MatchingBlockEnd(open int, bt BlockType) int {
	s.checkIndex("MatchingBlockEnd", open)
	def, ok := blockDefs[bt]
	if !ok || !s.toks[open].IsKind(def.open...) {
		misuse("MatchingBlockEnd", open, ErrNotBlockOpener)
	}
	s.ensureBlocks()
	return s.pairs[open]
}

// MatchingBlockStart returns the index of the opener paired with the closer
// at closeIdx, or None when the block is unbalanced. It panics with a
// *MisuseError when the token at closeIdx does not close a block of type bt.
func (s *Stream) MatchingBlockStart(closeIdx int, bt BlockType) int {
	s.checkIndex("MatchingBlockStart", closeIdx)
	def, ok := blockDefs[bt]
	if !ok || !s.toks[closeIdx].IsKind(def.close...) {
		misuse("MatchingBlockStart", closeIdx, ErrNotBlockCloser)
	}
	s.ensureBlocks()
	return s.pairs[closeIdx]
}

// ensureBlocks rebuilds the block map with a single stack shared by all
// families. A closer pairs with the nearest open block of its own family;
// the openers above it are popped unpaired. A closer with no such opener
// stays unpaired. The resulting pairing never crosses.
func (s *Stream) ensureBlocks() {
	if !s.blocksDirty && len(s.pairs) == len(s.toks) {
		return
	}
	s.pairs = make([]int, len(s.toks))
	for i := range s.pairs {
		s.pairs[i] = None
	}

	var stack []int
	for i, t := range s.toks {
		fam := familyOf(t.Kind)
		if fam == familyNone {
			continue
		}
		if isOpener(t.Kind) {
			stack = append(stack, i)
			continue
		}
		for depth := len(stack) - 1; depth >= 0; depth-- {
			if familyOf(s.toks[stack[depth]].Kind) == fam {
				s.pairs[stack[depth]] = i
				s.pairs[i] = stack[depth]
				stack = stack[:depth]
				break
			}
		}
	}
	s.blocksDirty = false
}
