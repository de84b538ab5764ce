package token

import "strings"

// keywordKinds maps lowercase reserved words to their kind. Words without a
// dedicated kind map to KindKeyword.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywordKinds = map[string]Kind{
	"array":     KindArray,
	"function":  KindFunction,
	"fn":        KindFn,
	"new":       KindNew,
	"switch":    KindSwitch,
	"case":      KindCase,
	"default":   KindDefault,
	"namespace": KindNamespace,
	"use":       KindUse,
	"as":        KindAs,
	"list":      KindList,
	"const":     KindConst,

	"abstract":     KindKeyword,
	"and":          KindKeyword,
	"break":        KindKeyword,
	"callable":     KindKeyword,
	"catch":        KindKeyword,
	"class":        KindKeyword,
	"clone":        KindKeyword,
	"continue":     KindKeyword,
	"declare":      KindKeyword,
	"do":           KindKeyword,
	"echo":         KindKeyword,
	"else":         KindKeyword,
	"elseif":       KindKeyword,
	"empty":        KindKeyword,
	"enddeclare":   KindKeyword,
	"endfor":       KindKeyword,
	"endforeach":   KindKeyword,
	"endif":        KindKeyword,
	"endswitch":    KindKeyword,
	"endwhile":     KindKeyword,
	"enum":         KindKeyword,
	"eval":         KindKeyword,
	"exit":         KindKeyword,
	"die":          KindKeyword,
	"extends":      KindKeyword,
	"final":        KindKeyword,
	"finally":      KindKeyword,
	"for":          KindKeyword,
	"foreach":      KindKeyword,
	"global":       KindKeyword,
	"goto":         KindKeyword,
	"if":           KindKeyword,
	"implements":   KindKeyword,
	"include":      KindKeyword,
	"include_once": KindKeyword,
	"instanceof":   KindKeyword,
	"insteadof":    KindKeyword,
	"interface":    KindKeyword,
	"isset":        KindKeyword,
	"match":        KindKeyword,
	"or":           KindKeyword,
	"print":        KindKeyword,
	"private":      KindKeyword,
	"protected":    KindKeyword,
	"public":       KindKeyword,
	"readonly":     KindKeyword,
	"require":      KindKeyword,
	"require_once": KindKeyword,
	"return":       KindKeyword,
	"static":       KindKeyword,
	"throw":        KindKeyword,
	"trait":        KindKeyword,
	"try":          KindKeyword,
	"unset":        KindKeyword,
	"var":          KindKeyword,
	"while":        KindKeyword,
	"xor":          KindKeyword,
	"yield":        KindKeyword,
}

// LookupKeyword returns the kind for a reserved word, matched case-insensitively,
// or KindIdentifier when word is not reserved.
func LookupKeyword(word string) Kind {
	if kind, ok := keywordKinds[strings.ToLower(word)]; ok {
		return kind
	}
	return KindIdentifier
}
