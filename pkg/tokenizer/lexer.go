package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gophpfix/pkg/token"
)

// operators is ordered longest first so the lexer takes the longest match.
//
//nolint:gochecknoglobals // Read-only operator table.
var operators = []string{
	"<=>", "===", "!==", "**=", "...", "<<=", ">>=", "??=", "?->",
	"==", "!=", "<>", "<=", ">=", "&&", "||", "??", "++", "--",
	"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=",
	"<<", ">>", "**", "->", "=>", "::",
	"+", "-", "*", "/", "%", ".", "=", "<", ">", "!", "?", ":", ";", ",",
	"(", ")", "{", "}", "[", "]", "&", "|", "^", "~", "@", "\\", "$",
}

//nolint:gochecknoglobals // Read-only punctuation table.
var punctKinds = map[string]token.Kind{
	"(":   token.KindOpenParen,
	")":   token.KindCloseParen,
	"{":   token.KindOpenBrace,
	"}":   token.KindCloseBrace,
	"[":   token.KindOpenBracket,
	"]":   token.KindCloseBracket,
	";":   token.KindSemicolon,
	",":   token.KindComma,
	"=":   token.KindEquals,
	"?":   token.KindQuestion,
	":":   token.KindColon,
	"\\":  token.KindNsSeparator,
	"&":   token.KindAmpersand,
	"=>":  token.KindDoubleArrow,
	"->":  token.KindObjectOperator,
	"?->": token.KindNullsafeObjectOperator,
	"::":  token.KindDoubleColon,
	"...": token.KindEllipsis,
}

//nolint:gochecknoglobals // Read-only cast table.
var castTypes = map[string]bool{
	"int": true, "integer": true, "bool": true, "boolean": true,
	"float": true, "double": true, "real": true, "string": true,
	"array": true, "object": true, "unset": true, "binary": true,
}

// lexer splits PHP source into raw tokens. It never fails: unterminated
// constructs run to the end of input and unknown bytes become bad-character
// tokens, so the concatenated output always equals the input.
type lexer struct {
	src  string
	pos  int
	out  []token.Token
	code bool
}

func lex(src string) []token.Token {
	l := &lexer{src: src}
	for l.pos < len(l.src) {
		if l.code {
			l.lexCode()
		} else {
			l.lexInlineHTML()
		}
	}
	return l.out
}

func (l *lexer) emit(kind token.Kind, end int) {
	l.out = append(l.out, token.New(kind, l.src[l.pos:end]))
	l.pos = end
}

func (l *lexer) lexInlineHTML() {
	start := l.pos
	for i := l.pos; i < len(l.src); i++ {
		if l.src[i] != '<' || !strings.HasPrefix(l.src[i:], "<?") {
			continue
		}
		n := openTagLen(l.src[i:])
		if n == 0 {
			continue
		}
		if i > start {
			l.emit(token.KindInlineHTML, i)
		}
		kind := token.KindOpenTag
		if strings.HasPrefix(l.src[i:], "<?=") {
			kind = token.KindOpenTagWithEcho
		}
		l.emit(kind, i+n)
		l.code = true
		return
	}
	l.emit(token.KindInlineHTML, len(l.src))
}

// openTagLen returns the length of the open tag at the start of s, including
// the single whitespace character that belongs to '<?php', or 0.
func openTagLen(s string) int {
	switch {
	case strings.HasPrefix(s, "<?="):
		return 3
	case len(s) >= 5 && strings.EqualFold(s[:5], "<?php"):
		rest := s[5:]
		switch {
		case rest == "":
			return 5
		case strings.HasPrefix(rest, "\r\n"):
			return 7
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r':
			return 6
		default:
			return 0
		}
	case len(s) > 2 && isSpace(s[2]):
		return 2
	default:
		return 0
	}
}

func (l *lexer) lexCode() {
	s := l.src[l.pos:]
	c := s[0]

	switch {
	case strings.HasPrefix(s, "?>"):
		end := l.pos + 2
		if strings.HasPrefix(l.src[end:], "\r\n") {
			end += 2
		} else if end < len(l.src) && l.src[end] == '\n' {
			end++
		}
		l.emit(token.KindCloseTag, end)
		l.code = false
	case isSpace(c):
		end := l.pos
		for end < len(l.src) && isSpace(l.src[end]) {
			end++
		}
		l.emit(token.KindWhitespace, end)
	case strings.HasPrefix(s, "#["):
		l.emit(token.KindAttributeOpen, l.pos+2)
	case c == '#' || strings.HasPrefix(s, "//"):
		l.emit(token.KindComment, l.pos+lineCommentLen(s))
	case strings.HasPrefix(s, "/*"):
		l.lexBlockComment(s)
	case c == '$' && len(s) > 1 && isIdentStart(s[1]):
		l.emit(token.KindVariable, l.pos+1+identLen(s[1:]))
	case isIdentStart(c):
		l.lexWord(s)
	case isDigit(c) || (c == '.' && len(s) > 1 && isDigit(s[1])):
		l.lexNumber(s)
	case c == '\'':
		l.emit(token.KindStringLiteral, l.pos+quotedLen(s, '\''))
	case c == '"':
		n := quotedLen(s, '"')
		kind := token.KindStringLiteral
		if hasInterpolation(s[1:n]) {
			kind = token.KindInterpolatedString
		}
		l.emit(kind, l.pos+n)
	case c == '`':
		l.emit(token.KindInterpolatedString, l.pos+quotedLen(s, '`'))
	case strings.HasPrefix(s, "<<<"):
		if n := heredocLen(s); n > 0 {
			l.emit(token.KindHeredoc, l.pos+n)
			return
		}
		l.lexOperator(s)
	case c == '(':
		if n := castLen(s); n > 0 {
			l.emit(token.KindCast, l.pos+n)
			return
		}
		l.lexOperator(s)
	default:
		l.lexOperator(s)
	}
}

func (l *lexer) lexBlockComment(s string) {
	kind := token.KindComment
	if len(s) > 3 && s[2] == '*' && isSpace(s[3]) {
		kind = token.KindDocComment
	}
	end := strings.Index(s[2:], "*/")
	if end < 0 {
		l.emit(kind, len(l.src))
		return
	}
	l.emit(kind, l.pos+2+end+2)
}

func (l *lexer) lexWord(s string) {
	n := identLen(s)
	word := s[:n]
	kind := token.LookupKeyword(word)
	if kind != token.KindIdentifier && l.afterMemberAccess() {
		kind = token.KindIdentifier
	}
	l.emit(kind, l.pos+n)
}

// afterMemberAccess reports whether the previous meaningful token makes the
// next word a member name rather than a keyword.
func (l *lexer) afterMemberAccess() bool {
	for i := len(l.out) - 1; i >= 0; i-- {
		t := l.out[i]
		if !t.IsMeaningful() {
			continue
		}
		return t.IsKind(token.KindObjectOperator, token.KindNullsafeObjectOperator,
			token.KindDoubleColon, token.KindFunction, token.KindConst)
	}
	return false
}

func (l *lexer) lexNumber(s string) {
	i := 0
	isFloat := false
	if len(s) > 1 && s[0] == '0' && strings.ContainsRune("xXbBoO", rune(s[1])) {
		i = 2
		for i < len(s) && (isHexDigit(s[i]) || s[i] == '_') {
			i++
		}
		l.emit(token.KindIntLiteral, l.pos+i)
		return
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '_') {
		i++
	}
	if i < len(s) && s[i] == '.' && (i+1 >= len(s) || s[i+1] != '.') {
		isFloat = true
		i++
		for i < len(s) && (isDigit(s[i]) || s[i] == '_') {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			isFloat = true
			i = j
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
	}
	kind := token.KindIntLiteral
	if isFloat {
		kind = token.KindFloatLiteral
	}
	l.emit(kind, l.pos+i)
}

func (l *lexer) lexOperator(s string) {
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			kind, ok := punctKinds[op]
			if !ok {
				kind = token.KindOperator
			}
			l.emit(kind, l.pos+len(op))
			return
		}
	}
	_, size := utf8.DecodeRuneInString(s)
	l.emit(token.KindBadCharacter, l.pos+size)
}

// lineCommentLen stops before the line break or before a '?>' close tag.
func lineCommentLen(s string) int {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\n' || s[i] == '\r':
			return i
		case s[i] == '?' && i+1 < len(s) && s[i+1] == '>':
			return i
		}
	}
	return len(s)
}

// quotedLen returns the length of the quoted literal at the start of s,
// honouring backslash escapes, or len(s) when it is unterminated.
func quotedLen(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(s)
}

func hasInterpolation(body string) bool {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '$':
			if i+1 < len(body) && (isIdentStart(body[i+1]) || body[i+1] == '{') {
				return true
			}
		case '{':
			if i+1 < len(body) && body[i+1] == '$' {
				return true
			}
		}
	}
	return false
}

// heredocLen returns the length of a heredoc or nowdoc starting at s, or 0
// when s does not start a well-formed label. The closing label may be
// indented and followed by other code on the same line.
func heredocLen(s string) int {
	i := 3
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	var quote byte
	if i < len(s) && (s[i] == '\'' || s[i] == '"') {
		quote = s[i]
		i++
	}
	if i >= len(s) || !isIdentStart(s[i]) {
		return 0
	}
	n := identLen(s[i:])
	label := s[i : i+n]
	i += n
	if quote != 0 {
		if i >= len(s) || s[i] != quote {
			return 0
		}
		i++
	}
	nl := strings.IndexByte(s[i:], '\n')
	if nl < 0 {
		return 0
	}
	i += nl + 1

	for i < len(s) {
		j := i
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if strings.HasPrefix(s[j:], label) {
			end := j + len(label)
			if end >= len(s) || !isIdentPart(s[end]) {
				return end
			}
		}
		nl := strings.IndexByte(s[i:], '\n')
		if nl < 0 {
			return len(s)
		}
		i += nl + 1
	}
	return len(s)
}

func castLen(s string) int {
	i := 1
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	if !castTypes[strings.ToLower(s[start:i])] {
		return 0
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && s[i] == ')' {
		return i + 1
	}
	return 0
}

func identLen(s string) int {
	i := 0
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
