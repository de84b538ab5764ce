package token

import "strings"

// Token is one lexical unit: a kind plus the exact source bytes it covers.
// Tokens are values. A fixer that changes a token replaces it in the stream.
type Token struct {
	Kind    Kind
	Content string
}

// New returns a token of the given kind and content.
func New(kind Kind, content string) Token {
	return Token{Kind: kind, Content: content}
}

// Whitespace returns a whitespace token.
func Whitespace(content string) Token {
	return Token{Kind: KindWhitespace, Content: content}
}

// Space returns a single-space whitespace token.
func Space() Token {
	return Whitespace(" ")
}

// IsWhitespace reports whether t is a whitespace token, including cleared placeholders.
func (t Token) IsWhitespace() bool {
	return t.Kind == KindWhitespace
}

// IsComment reports whether t is a line, block or doc comment.
func (t Token) IsComment() bool {
	return t.Kind == KindComment || t.Kind == KindDocComment
}

// IsEmpty reports whether t is a cleared placeholder.
func (t Token) IsEmpty() bool {
	return t.Kind == KindWhitespace && t.Content == ""
}

// IsMeaningful reports whether t is neither whitespace nor a comment.
func (t Token) IsMeaningful() bool {
	return !t.IsWhitespace() && !t.IsComment() && t.Kind != KindAlignMarker
}

// IsKind reports whether t has one of the given kinds.
func (t Token) IsKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsKeyword reports whether t is a reserved word, dedicated kind or not.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KindKeyword, KindArray, KindFunction, KindFn, KindNew, KindSwitch, KindCase,
		KindDefault, KindNamespace, KindUse, KindAs, KindList, KindConst, KindArrayTypeHint:
		return true
	default:
		return false
	}
}

// ContainsNewline reports whether the token content spans a line break.
func (t Token) ContainsNewline() bool {
	return strings.ContainsAny(t.Content, "\r\n")
}

// Equals reports whether t satisfies m.
func (t Token) Equals(m Matcher) bool {
	return m.Match(t)
}

// EqualsAny reports whether t satisfies any of the matchers.
func (t Token) EqualsAny(matchers ...Matcher) bool {
	for _, m := range matchers {
		if m.Match(t) {
			return true
		}
	}
	return false
}

// Matcher selects tokens by kind and, optionally, exact content.
type Matcher struct {
	Kind Kind

	// Content must equal the token content when non-empty.
	Content string

	// CaseInsensitive compares Content with strings.EqualFold.
	CaseInsensitive bool
}

// Of matches any token of the given kind.
func Of(kind Kind) Matcher {
	return Matcher{Kind: kind}
}

// Text matches a token of the given kind with exactly the given content.
func Text(kind Kind, content string) Matcher {
	return Matcher{Kind: kind, Content: content}
}

// Fold matches a token of the given kind whose content equals content ignoring case.
func Fold(kind Kind, content string) Matcher {
	return Matcher{Kind: kind, Content: content, CaseInsensitive: true}
}

// OfKinds builds one kind-only matcher per kind.
func OfKinds(kinds ...Kind) []Matcher {
	out := make([]Matcher, len(kinds))
	for i, k := range kinds {
		out[i] = Of(k)
	}
	return out
}

// Match reports whether t satisfies m.
func (m Matcher) Match(t Token) bool {
	if t.Kind != m.Kind {
		return false
	}
	if m.Content == "" {
		return true
	}
	if m.CaseInsensitive {
		return strings.EqualFold(t.Content, m.Content)
	}
	return t.Content == m.Content
}
