// Package token defines the lexical units of PHP source handled by the fixer engine.
package token

import "strconv"

// Kind classifies a token. Values below SyntheticBase are produced by the lexer;
// values at or above it only come out of the tokenizer's disambiguation pass.
type Kind uint16

// Raw lexer kinds.
const (
	KindInvalid Kind = iota

	KindInlineHTML      // text outside <?php ... ?>
	KindOpenTag         // '<?php ' or '<?'
	KindOpenTagWithEcho // '<?='
	KindCloseTag        // '?>' plus one trailing newline
	KindWhitespace
	KindComment    // '//', '#', '/* */'
	KindDocComment // '/** */'

	KindVariable   // '$name'
	KindIdentifier // bare names: functions, constants, classes
	KindKeyword    // reserved words without a dedicated kind

	KindArray     // 'array'
	KindFunction  // 'function'
	KindFn        // 'fn'
	KindNew       // 'new'
	KindSwitch    // 'switch'
	KindCase      // 'case'
	KindDefault   // 'default'
	KindNamespace // 'namespace'
	KindUse       // 'use'
	KindAs        // 'as'
	KindList      // 'list'
	KindConst     // 'const'

	KindIntLiteral
	KindFloatLiteral
	KindStringLiteral      // single quoted or double quoted without interpolation
	KindInterpolatedString // double quoted or backtick with '$'/'{$' parts, kept whole
	KindHeredoc            // heredoc and nowdoc, kept whole
	KindCast               // '(int)', '( string )'

	KindOpenParen
	KindCloseParen
	KindOpenBrace
	KindCloseBrace
	KindOpenBracket  // generic '[' before disambiguation
	KindCloseBracket // generic ']' before disambiguation
	KindSemicolon
	KindComma
	KindEquals // '='
	KindQuestion
	KindColon
	KindNsSeparator // '\'
	KindAmpersand
	KindDoubleArrow            // '=>'
	KindObjectOperator         // '->'
	KindNullsafeObjectOperator // '?->'
	KindDoubleColon            // '::'
	KindEllipsis               // '...'
	KindAttributeOpen          // '#['
	KindOperator               // every other operator, content tells which

	KindBadCharacter

	rawKindEnd
)

// SyntheticBase is the first kind reserved for tokenizer reclassification.
const SyntheticBase Kind = 1000

// Synthetic kinds.
const (
	KindArrayOpen Kind = SyntheticBase + iota
	KindArrayClose
	KindIndexOpen
	KindIndexClose
	KindDestructuringOpen
	KindDestructuringClose
	KindAttributeClose // ']' closing '#['
	KindArrayTypeHint
	KindReturnRef
	KindAlignMarker

	syntheticKindEnd
)

//nolint:gochecknoglobals // Read-only name table.
var kindNames = map[Kind]string{
	KindInvalid:                "Invalid",
	KindInlineHTML:             "InlineHTML",
	KindOpenTag:                "OpenTag",
	KindOpenTagWithEcho:        "OpenTagWithEcho",
	KindCloseTag:               "CloseTag",
	KindWhitespace:             "Whitespace",
	KindComment:                "Comment",
	KindDocComment:             "DocComment",
	KindVariable:               "Variable",
	KindIdentifier:             "Identifier",
	KindKeyword:                "Keyword",
	KindArray:                  "Array",
	KindFunction:               "Function",
	KindFn:                     "Fn",
	KindNew:                    "New",
	KindSwitch:                 "Switch",
	KindCase:                   "Case",
	KindDefault:                "Default",
	KindNamespace:              "Namespace",
	KindUse:                    "Use",
	KindAs:                     "As",
	KindList:                   "List",
	KindConst:                  "Const",
	KindIntLiteral:             "IntLiteral",
	KindFloatLiteral:           "FloatLiteral",
	KindStringLiteral:          "StringLiteral",
	KindInterpolatedString:     "InterpolatedString",
	KindHeredoc:                "Heredoc",
	KindCast:                   "Cast",
	KindOpenParen:              "OpenParen",
	KindCloseParen:             "CloseParen",
	KindOpenBrace:              "OpenBrace",
	KindCloseBrace:             "CloseBrace",
	KindOpenBracket:            "OpenBracket",
	KindCloseBracket:           "CloseBracket",
	KindSemicolon:              "Semicolon",
	KindComma:                  "Comma",
	KindEquals:                 "Equals",
	KindQuestion:               "Question",
	KindColon:                  "Colon",
	KindNsSeparator:            "NsSeparator",
	KindAmpersand:              "Ampersand",
	KindDoubleArrow:            "DoubleArrow",
	KindObjectOperator:         "ObjectOperator",
	KindNullsafeObjectOperator: "NullsafeObjectOperator",
	KindDoubleColon:            "DoubleColon",
	KindEllipsis:               "Ellipsis",
	KindAttributeOpen:          "AttributeOpen",
	KindOperator:               "Operator",
	KindBadCharacter:           "BadCharacter",
	KindArrayOpen:              "ArrayOpen",
	KindArrayClose:             "ArrayClose",
	KindIndexOpen:              "IndexOpen",
	KindIndexClose:             "IndexClose",
	KindDestructuringOpen:      "DestructuringOpen",
	KindDestructuringClose:     "DestructuringClose",
	KindAttributeClose:         "AttributeClose",
	KindArrayTypeHint:          "ArrayTypeHint",
	KindReturnRef:              "ReturnRef",
	KindAlignMarker:            "AlignMarker",
}

// String returns the kind's name, or Kind(n) for values outside the enum.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsSynthetic reports whether k is only produced by disambiguation.
func (k Kind) IsSynthetic() bool {
	return k >= SyntheticBase
}

// IsValid reports whether k is a member of the closed enum.
func (k Kind) IsValid() bool {
	return k < rawKindEnd || (k >= SyntheticBase && k < syntheticKindEnd)
}

// Kinds returns every valid kind, raw kinds first.
func Kinds() []Kind {
	out := make([]Kind, 0, int(rawKindEnd)+int(syntheticKindEnd-SyntheticBase))
	for k := KindInvalid; k < rawKindEnd; k++ {
		out = append(out, k)
	}
	for k := SyntheticBase; k < syntheticKindEnd; k++ {
		out = append(out, k)
	}
	return out
}
