package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/serializer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// Spacing strategies for binary operators.
const (
	StrategySingleSpace             = "single_space"
	StrategyNoSpace                 = "no_space"
	StrategyAlign                   = "align"
	StrategyAlignSingleSpace        = "align_single_space"
	StrategyAlignSingleSpaceMinimal = "align_single_space_minimal"
)

//nolint:gochecknoglobals // Read-only strategy list.
var strategies = []any{
	StrategySingleSpace, StrategyNoSpace, StrategyAlign,
	StrategyAlignSingleSpace, StrategyAlignSingleSpaceMinimal,
}

// supportedOperators is also the order in which operators are aligned.
//
//nolint:gochecknoglobals // Read-only operator list.
var supportedOperators = []string{
	"=", "*", "/", "%", "<", ">", "|", "^", "+", "-", "&", "&=", "&&", "||", ".=", "/=",
	"=>", "==", ">=", "===", "!=", "<>", "!==", "<=", "and", "or", "xor", "-=", "%=",
	"*=", "|=", "+=", "<<", "<<=", ">>", ">>=", "^=", "**", "**=", "<=>", "??", "??=",
}

// BinaryOperatorSpacesFixer normalizes the whitespace around binary
// operators and optionally aligns them vertically.
type BinaryOperatorSpacesFixer struct {
	fixer.BaseFixer
	operators map[string]string
}

// NewBinaryOperatorSpacesFixer creates the fixer with single_space for every
// supported operator.
func NewBinaryOperatorSpacesFixer() *BinaryOperatorSpacesFixer {
	return &BinaryOperatorSpacesFixer{
		BaseFixer: fixer.NewBaseFixer(
			"binary_operator_spaces",
			"Binary operators should be surrounded by space as configured",
			-32,
		),
		operators: operatorStrategies(StrategySingleSpace, nil),
	}
}

func operatorStrategies(def string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(supportedOperators))
	for _, op := range supportedOperators {
		out[op] = def
	}
	for op, strategy := range overrides {
		out[op] = strategy
	}
	return out
}

// Options implements fixer.Configurable.
func (f *BinaryOperatorSpacesFixer) Options() fixer.OptionSchema {
	return fixer.OptionSchema{
		{
			Name:        "default",
			Description: "Default fix strategy.",
			Type:        fixer.OptionString,
			Allowed:     strategies,
			Default:     StrategySingleSpace,
		},
		{
			Name:        "operators",
			Description: "Dictionary of binary operator to fix strategy values that differ from the default strategy.",
			Type:        fixer.OptionStringMap,
			Allowed:     strategies,
			Default:     map[string]string{},
			Normalizer:  normalizeOperatorKeys,
		},
	}
}

func normalizeOperatorKeys(value any) (any, error) {
	ops, _ := value.(map[string]string)
	out := make(map[string]string, len(ops))
	for op, strategy := range ops {
		lower := strings.ToLower(op)
		if !slices.Contains(supportedOperators, lower) {
			return nil, fmt.Errorf("unexpected operator %q, expected one of %q", op, supportedOperators)
		}
		out[lower] = strategy
	}
	return out, nil
}

// Configure implements fixer.Configurable.
func (f *BinaryOperatorSpacesFixer) Configure(opts fixer.Options) (fixer.Fixer, error) {
	out := *f
	out.operators = operatorStrategies(opts.GetString("default"), opts.GetStringMap("operators"))
	return &out, nil
}

// IsCandidate implements fixer.Fixer.
func (f *BinaryOperatorSpacesFixer) IsCandidate(*tokens.Stream) bool {
	return true
}

// Apply implements fixer.Fixer.
func (f *BinaryOperatorSpacesFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream

	toAlign := make(map[string]string)
	// First and last token are never operators. Walking backwards keeps
	// insertions away from the indices still to visit.
	for i := s.Len() - 2; i > 0; i-- {
		op, ok := binaryOperatorAt(s, i)
		if !ok {
			continue
		}
		strategy, ok := f.operators[op]
		if !ok {
			continue
		}
		switch strategy {
		case StrategySingleSpace:
			singleSpaceAround(s, i)
		case StrategyNoSpace:
			noSpaceAround(s, i)
		default:
			toAlign[op] = strategy
			spaceAfterAligned(s, i, strategy)
		}
	}

	if len(toAlign) == 0 {
		return nil
	}
	a := &aligner{s: s}
	for _, op := range supportedOperators {
		if strategy, ok := toAlign[op]; ok {
			a.align(op, strategy)
		}
	}
	return nil
}

// binaryOperatorAt returns the normalized operator at i when it is used as
// a binary operator.
func binaryOperatorAt(s *tokens.Stream, i int) (string, bool) {
	tok := s.At(i)
	switch tok.Kind {
	case token.KindDoubleArrow:
		return "=>", true
	case token.KindEquals:
		return "=", !isDeclareEquals(s, i)
	case token.KindAmpersand:
		if !hasLeftOperand(s, i) || isTypeOperator(s, i) {
			return "", false
		}
		// 'Type &$param' passes by reference.
		prev, next := s.PrevMeaningful(i), s.NextMeaningful(i)
		if s.At(prev).Kind == token.KindIdentifier && next != tokens.None &&
			s.At(next).IsKind(token.KindVariable, token.KindEllipsis) {
			return "", false
		}
		return "&", true
	case token.KindKeyword:
		lower := strings.ToLower(tok.Content)
		return lower, lower == "and" || lower == "or" || lower == "xor"
	case token.KindOperator:
		if !slices.Contains(supportedOperators, tok.Content) {
			return "", false
		}
		switch tok.Content {
		case "+", "-":
			return tok.Content, hasLeftOperand(s, i)
		case "|":
			return tok.Content, !isTypeOperator(s, i)
		default:
			return tok.Content, true
		}
	default:
		return "", false
	}
}

// hasLeftOperand reports whether the token before i ends an expression, which
// makes '+', '-' and '&' at i binary rather than unary.
func hasLeftOperand(s *tokens.Stream, i int) bool {
	prev := s.PrevMeaningful(i)
	if prev == tokens.None {
		return false
	}
	tok := s.At(prev)
	switch tok.Kind {
	case token.KindVariable, token.KindIdentifier, token.KindIntLiteral, token.KindFloatLiteral,
		token.KindStringLiteral, token.KindInterpolatedString, token.KindHeredoc,
		token.KindCloseParen, token.KindCloseBracket, token.KindIndexClose, token.KindArrayClose,
		token.KindDestructuringClose:
		return true
	case token.KindOperator:
		if tok.Content != "++" && tok.Content != "--" {
			return false
		}
		return hasLeftOperand(s, prev)
	default:
		return false
	}
}

// isTypeOperator reports whether the '|' or '&' at i joins the members of a
// union or intersection type rather than two values.
func isTypeOperator(s *tokens.Stream, i int) bool {
	next := s.NextMeaningful(i)
	if next == tokens.None || !isTypeMember(s, next) {
		return false
	}
	end := next
	for k := next; k != tokens.None; k = s.NextMeaningful(k) {
		if !isTypeMember(s, k) {
			end = k
			break
		}
	}
	switch s.At(end).Kind {
	case token.KindVariable, token.KindAmpersand, token.KindEllipsis:
		// 'A|B $x', 'A&B &$x', 'A|B ...$x'
		return true
	}

	start := i
	for k := s.PrevMeaningful(i); k != tokens.None; k = s.PrevMeaningful(k) {
		if !isTypeMember(s, k) {
			start = k
			break
		}
	}
	switch s.At(start).Kind {
	case token.KindColon:
		// return type: '): A|B'
		before := s.PrevMeaningful(start)
		return before != tokens.None && s.At(before).Kind == token.KindCloseParen
	case token.KindOpenParen:
		// 'catch (A|B)'
		before := s.PrevMeaningful(start)
		return before != tokens.None && s.At(before).Equals(token.Fold(token.KindKeyword, "catch"))
	default:
		return false
	}
}

func isTypeMember(s *tokens.Stream, i int) bool {
	tok := s.At(i)
	if tok.IsKind(token.KindIdentifier, token.KindNsSeparator, token.KindArray, token.KindArrayTypeHint,
		token.KindQuestion, token.KindAmpersand) {
		return true
	}
	return tok.Kind == token.KindOperator && tok.Content == "|"
}

// isDeclareEquals reports whether '=' at i belongs to 'declare(name=value)'.
func isDeclareEquals(s *tokens.Stream, i int) bool {
	name := s.PrevMeaningful(i)
	if name == tokens.None || s.At(name).Kind != token.KindIdentifier {
		return false
	}
	open := s.PrevMeaningful(name)
	if open == tokens.None || s.At(open).Kind != token.KindOpenParen {
		return false
	}
	kw := s.PrevMeaningful(open)
	return kw != tokens.None && s.At(kw).Equals(token.Fold(token.KindKeyword, "declare"))
}

// neighbor returns the nearest index from i in direction dir that is not an
// empty placeholder.
func neighbor(s *tokens.Stream, i, dir int) int {
	for k := i + dir; k >= 0 && k < s.Len(); k += dir {
		if !s.At(k).IsEmpty() {
			return k
		}
	}
	return tokens.None
}

// commentBeyond reports whether the first non-whitespace token past the
// whitespace at ws, in direction dir, is a comment.
func commentBeyond(s *tokens.Stream, ws, dir int) bool {
	var k int
	if dir > 0 {
		k = s.NextNonWhitespace(ws)
	} else {
		k = s.PrevNonWhitespace(ws)
	}
	return k != tokens.None && s.At(k).IsComment()
}

func singleSpaceAround(s *tokens.Stream, i int) {
	if n := neighbor(s, i, 1); n != tokens.None && s.At(n).IsWhitespace() {
		if c := s.At(n).Content; c != " " && !strings.ContainsAny(c, "\r\n") && !commentBeyond(s, n, 1) {
			s.SetAt(n, token.Space())
		}
	} else {
		s.InsertAt(i+1, token.Space())
	}

	if p := neighbor(s, i, -1); p != tokens.None && s.At(p).IsWhitespace() {
		if c := s.At(p).Content; c != " " && !strings.ContainsAny(c, "\r\n") && !commentBeyond(s, p, -1) {
			s.SetAt(p, token.Space())
		}
	} else {
		s.InsertAt(i, token.Space())
	}
}

func noSpaceAround(s *tokens.Stream, i int) {
	if n := neighbor(s, i, 1); n != tokens.None && s.At(n).IsWhitespace() &&
		!s.At(n).ContainsNewline() && !commentBeyond(s, n, 1) {
		s.ClearAt(n)
	}
	if p := neighbor(s, i, -1); p != tokens.None && s.At(p).IsWhitespace() &&
		!s.At(p).ContainsNewline() && !commentBeyond(s, p, -1) {
		s.ClearAt(p)
	}
}

// spaceAfterAligned fixes the whitespace after an operator that is aligned.
// The whitespace before it is left to the alignment step.
func spaceAfterAligned(s *tokens.Stream, i int, strategy string) {
	if strategy == StrategyAlign {
		return
	}
	n := neighbor(s, i, 1)
	if n == tokens.None || !s.At(n).IsWhitespace() {
		s.InsertAt(i+1, token.Space())
		return
	}
	if strategy == StrategyAlignSingleSpaceMinimal && !s.At(n).ContainsNewline() {
		s.SetAt(n, token.Space())
	}
}

// spaceBeforeAligned makes sure an aligned operator is preceded by
// whitespace, collapsed to one space for the minimal strategy.
func spaceBeforeAligned(s *tokens.Stream, i int, strategy string) {
	p := neighbor(s, i, -1)
	if p == tokens.None || !s.At(p).IsWhitespace() {
		s.InsertAt(i, token.Space())
		return
	}
	if strategy != StrategyAlignSingleSpaceMinimal || commentBeyond(s, p, -1) {
		return
	}
	if c := s.At(p).Content; c != " " && !strings.ContainsAny(c, "\r\n") {
		s.SetAt(p, token.Space())
	}
}

// aligner places alignment markers. Every scope that aligns independently
// gets a fresh level.
type aligner struct {
	s     *tokens.Stream
	level int
}

type mark struct {
	index int
	level int
}

func (a *aligner) newLevel() int {
	l := a.level
	a.level++
	return l
}

func (a *aligner) align(op, strategy string) {
	s := a.s
	if strategy != StrategyAlign {
		for i := s.Len() - 2; i > 0; i-- {
			if got, ok := binaryOperatorAt(s, i); ok && got == op {
				spaceBeforeAligned(s, i, strategy)
			}
		}
	}

	var marks []mark
	if op == "=>" {
		a.collectArrows(0, s.Len(), a.newLevel(), &marks)
	} else {
		a.collectOperator(op, &marks)
	}

	slices.SortFunc(marks, func(x, y mark) int { return y.index - x.index })
	for _, m := range marks {
		s.InsertAt(m.index, serializer.Marker(m.level))
	}
}

// collectOperator marks op outside of parentheses and brackets. Each
// function body starts a new level.
func (a *aligner) collectOperator(op string, marks *[]mark) {
	s := a.s
	level := a.newLevel()
	for i := 0; i < s.Len(); i++ {
		tok := s.At(i)
		switch {
		case tok.Kind == token.KindFunction:
			level = a.newLevel()
		case tok.IsKind(token.KindOpenParen, token.KindOpenBracket, token.KindIndexOpen, token.KindArrayOpen):
			i = skipBlock(s, i)
		default:
			if got, ok := binaryOperatorAt(s, i); ok && got == op {
				*marks = append(*marks, mark{index: i, level: level})
			}
		}
	}
}

// collectArrows marks '=>' in [from, until). Multi-line arrays get a level
// of their own and each statement starts a new one. Only the first arrow on
// a line is aligned.
func (a *aligner) collectArrows(from, until, level int, marks *[]mark) {
	s := a.s
	for i := from; i < until; i++ {
		tok := s.At(i)
		switch {
		case tok.Kind == token.KindFn:
			// The arrow of 'fn() =>' is not an array key.
			if arrow := s.NextOfKind(i, token.Of(token.KindDoubleArrow)); arrow != tokens.None && arrow < until {
				i = arrow
			}
		case isControlKeyword(tok):
			if open := s.NextMeaningful(i); open != tokens.None && s.At(open).Kind == token.KindOpenParen {
				if end := s.MatchingBlockEnd(open, tokens.BlockParen); end != tokens.None {
					i = end
				}
			}
		case tok.IsKind(token.KindArray, token.KindArrayOpen):
			open, end, ok := arrayBounds(s, i)
			if !ok {
				continue
			}
			if open+1 <= end-1 && s.IsMultilineBetween(open+1, end-1) {
				a.collectArrows(open+1, end, a.newLevel(), marks)
			}
			i = end
		case tok.Kind == token.KindDoubleArrow:
			*marks = append(*marks, mark{index: i, level: level})
		case tok.Kind == token.KindSemicolon:
			level = a.newLevel()
		case tok.Kind == token.KindComma:
			i = a.skipRestOfLine(i, until)
		}
	}
}

// skipRestOfLine returns the last index before the next line break, or
// before a multi-line array that starts on the same line.
func (a *aligner) skipRestOfLine(i, until int) int {
	s := a.s
	for i+1 < until {
		n := i + 1
		tok := s.At(n)
		if tok.ContainsNewline() {
			break
		}
		if tok.IsKind(token.KindArray, token.KindArrayOpen) {
			if open, end, ok := arrayBounds(s, n); ok && s.IsMultilineBetween(open, end) {
				break
			}
		}
		i = n
	}
	return i
}

func isControlKeyword(tok token.Token) bool {
	if tok.Kind == token.KindSwitch {
		return true
	}
	if tok.Kind != token.KindKeyword {
		return false
	}
	switch strings.ToLower(tok.Content) {
	case "foreach", "for", "while", "if", "elseif":
		return true
	default:
		return false
	}
}
