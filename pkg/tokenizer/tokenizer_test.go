package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokenizer"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

func TestTokenize_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "inline html only", src: "<html><body>hi</body></html>\n"},
		{name: "simple", src: "<?php\n$x = array(1,'a',$b,);\n"},
		{name: "close tag", src: "<?php echo 1; ?>\n<p>text</p>\n<?= $x ?>"},
		{name: "comments", src: "<?php\n// line\n# hash\n/* block */\n/** doc */\n$a = 1; // trailing ?> html"},
		{name: "strings", src: "<?php $a = 'it\\'s'; $b = \"x $a {$b['k']}\"; $c = `ls $d`;"},
		{name: "heredoc", src: "<?php\n$a = <<<EOT\n  body $x\n  EOT;\n$b = <<<'RAW'\nraw\nRAW;\n"},
		{name: "numbers", src: "<?php $a = 0x1F + 0b101 + 1_000 + 1.5e-3 + .5 + 0o17;"},
		{name: "casts", src: "<?php $a = (int) $b . ( string )$c;"},
		{name: "unterminated string", src: "<?php $a = 'never closed"},
		{name: "unterminated comment", src: "<?php /* open"},
		{name: "unbalanced brackets", src: "<?php $a = [1, [2, 3;\n$b = ]];"},
		{name: "bad bytes", src: "<?php $a = 1 \x01 ü;"},
		{name: "attribute", src: "<?php\n#[Route('/x', methods: ['GET'])]\nfunction f() {}"},
		{name: "crlf", src: "<?php\r\n$a = 1;\r\n?>\r\nend"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stream := tokenizer.TokenizeString(testCase.src)
			assert.Equal(t, testCase.src, stream.Text())
		})
	}
}

func TestTokenize_Kinds(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php\nfunction &f(array $a): ?int { return $a?->b ?? STRLEN(\"s\"); }")

	var kinds []token.Kind
	for _, tok := range stream.Tokens() {
		if tok.IsMeaningful() {
			kinds = append(kinds, tok.Kind)
		}
	}

	assert.Equal(t, []token.Kind{
		token.KindFunction, token.KindReturnRef, token.KindIdentifier,
		token.KindOpenParen, token.KindArrayTypeHint, token.KindVariable, token.KindCloseParen,
		token.KindColon, token.KindQuestion, token.KindIdentifier,
		token.KindOpenBrace, token.KindKeyword, token.KindVariable,
		token.KindNullsafeObjectOperator, token.KindIdentifier, token.KindOperator,
		token.KindIdentifier, token.KindOpenParen, token.KindStringLiteral, token.KindCloseParen,
		token.KindSemicolon, token.KindCloseBrace,
	}, kinds)
}

func TestTokenize_OpenTag(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<p>\n<?php echo 1;")
	require.GreaterOrEqual(t, stream.Len(), 2)
	assert.Equal(t, token.New(token.KindInlineHTML, "<p>\n"), stream.At(0))
	assert.Equal(t, token.New(token.KindOpenTag, "<?php "), stream.At(1))

	xml := tokenizer.TokenizeString("<?xml version=\"1.0\"?>")
	require.Equal(t, 1, xml.Len())
	assert.Equal(t, token.KindInlineHTML, xml.At(0).Kind)
}

func TestTokenize_MemberNamesAreIdentifiers(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php $a->list; Foo::new(); $b->array;")

	for _, tok := range stream.Tokens() {
		if tok.Content == "list" || tok.Content == "new" || tok.Content == "array" {
			assert.Equal(t, token.KindIdentifier, tok.Kind, tok.Content)
		}
	}
}

func squareKinds(stream *tokens.Stream) []token.Kind {
	var kinds []token.Kind
	for _, tok := range stream.Tokens() {
		if _, _, ok := tokens.DetectBlockType(tok); ok && tok.Kind != token.KindOpenParen &&
			tok.Kind != token.KindCloseParen && tok.Kind != token.KindOpenBrace && tok.Kind != token.KindCloseBrace {
			kinds = append(kinds, tok.Kind)
		}
	}
	return kinds
}

func TestSquareBracketTransformer(t *testing.T) {
	t.Parallel()

	const (
		ao     = token.KindArrayOpen
		ac     = token.KindArrayClose
		io     = token.KindIndexOpen
		ic     = token.KindIndexClose
		do     = token.KindDestructuringOpen
		dc     = token.KindDestructuringClose
		gOpen  = token.KindOpenBracket
		gClose = token.KindCloseBracket
	)

	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{name: "array literal", src: "<?php $a = [1, 2];", want: []token.Kind{ao, ac}},
		{name: "index access", src: "<?php $a[0];", want: []token.Kind{io, ic}},
		{name: "index after call", src: "<?php f()[0];", want: []token.Kind{io, ic}},
		{name: "chained index", src: "<?php $a[0][1];", want: []token.Kind{io, ic, io, ic}},
		{name: "array inside index", src: "<?php $a[[1]];", want: []token.Kind{io, ao, ac, ic}},
		{name: "index on array literal", src: "<?php [1, 2][0];", want: []token.Kind{ao, ac, io, ic}},
		{name: "destructuring", src: "<?php [$a, $b] = $c;", want: []token.Kind{do, dc}},
		{name: "nested destructuring", src: "<?php [[$a, $b], $c] = $d;", want: []token.Kind{do, do, dc, dc}},
		{name: "keyed destructuring", src: "<?php ['x' => [$a]] = $d;", want: []token.Kind{do, do, dc, dc}},
		{name: "index inside destructuring", src: "<?php [$a[0], $b] = $c;", want: []token.Kind{do, io, ic, dc}},
		{name: "foreach as", src: "<?php foreach ($x as [$a, $b]) {}", want: []token.Kind{do, dc}},
		{name: "comparison is not assignment", src: "<?php [$a] == $b;", want: []token.Kind{ao, ac}},
		{name: "nested literal", src: "<?php $a = [[1], 'k' => [2]];", want: []token.Kind{ao, ao, ac, ao, ac, ac}},
		{name: "unbalanced opener", src: "<?php $a = [1, 2;", want: []token.Kind{gOpen}},
		{name: "unbalanced closer", src: "<?php $a = 1];", want: []token.Kind{gClose}},
		{
			name: "attribute",
			src:  "<?php #[A([1])] function f() {}",
			want: []token.Kind{token.KindAttributeOpen, ao, ac, token.KindAttributeClose},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stream := tokenizer.TokenizeString(testCase.src)
			assert.Equal(t, testCase.want, squareKinds(stream))
		})
	}
}

func TestTransformers_Idempotent(t *testing.T) {
	t.Parallel()

	src := "<?php\n[$a, [$b]] = f()[0];\n$x = [1, $y[2], array(3)];\nfunction &g(array $z) { foreach ($z as [$k]) {} }\n"
	stream := tokenizer.TokenizeString(src)
	first := stream.Tokens()

	for _, tr := range tokenizer.DefaultTransformers() {
		tr.Transform(stream)
	}

	assert.Equal(t, first, stream.Tokens())
	assert.Equal(t, src, stream.Text())
}

func TestArrayTypeHintTransformer(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php function f(array $a) { return array(1); }")

	var got []token.Kind
	for _, tok := range stream.Tokens() {
		if tok.Content == "array" {
			got = append(got, tok.Kind)
		}
	}
	assert.Equal(t, []token.Kind{token.KindArrayTypeHint, token.KindArray}, got)
}

func TestTokenize_BlockMap(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php if ($a) { $b = [1, f(2)]; }")

	for i := range stream.Len() {
		tok := stream.At(i)
		bt, opener, ok := tokens.DetectBlockType(tok)
		if !ok || !opener {
			continue
		}
		end := stream.MatchingBlockEnd(i, bt)
		require.NotEqual(t, tokens.None, end, "opener %s at %d", tok.Kind, i)
		assert.Equal(t, i, stream.MatchingBlockStart(end, bt))
	}
}
