package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gophpfix/pkg/token"
)

func TestToken_Predicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tok        token.Token
		whitespace bool
		comment    bool
		meaningful bool
		empty      bool
	}{
		{name: "space", tok: token.Space(), whitespace: true},
		{name: "placeholder", tok: token.Whitespace(""), whitespace: true, empty: true},
		{name: "line comment", tok: token.New(token.KindComment, "// x"), comment: true},
		{name: "doc comment", tok: token.New(token.KindDocComment, "/** x */"), comment: true},
		{name: "variable", tok: token.New(token.KindVariable, "$a"), meaningful: true},
		{name: "marker", tok: token.New(token.KindAlignMarker, "\x02 ALIGNABLE0 \x03")},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.whitespace, testCase.tok.IsWhitespace())
			assert.Equal(t, testCase.comment, testCase.tok.IsComment())
			assert.Equal(t, testCase.meaningful, testCase.tok.IsMeaningful())
			assert.Equal(t, testCase.empty, testCase.tok.IsEmpty())
		})
	}
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	op := token.New(token.KindOperator, "===")
	fn := token.New(token.KindIdentifier, "STRLEN")

	assert.True(t, op.Equals(token.Of(token.KindOperator)))
	assert.True(t, op.Equals(token.Text(token.KindOperator, "===")))
	assert.False(t, op.Equals(token.Text(token.KindOperator, "==")))
	assert.False(t, op.Equals(token.Of(token.KindEquals)))

	assert.False(t, fn.Equals(token.Text(token.KindIdentifier, "strlen")))
	assert.True(t, fn.Equals(token.Fold(token.KindIdentifier, "strlen")))

	assert.True(t, op.EqualsAny(token.Of(token.KindComma), token.Text(token.KindOperator, "===")))
	assert.False(t, op.EqualsAny())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Whitespace", token.KindWhitespace.String())
	assert.Equal(t, "ArrayOpen", token.KindArrayOpen.String())
	assert.Equal(t, "Kind(999)", token.Kind(999).String())
}

func TestKind_Synthetic(t *testing.T) {
	t.Parallel()

	for _, kind := range token.Kinds() {
		assert.True(t, kind.IsValid(), kind.String())
		assert.NotContains(t, kind.String(), "Kind(", "every kind has a name")
	}

	assert.False(t, token.KindOpenBracket.IsSynthetic())
	assert.True(t, token.KindDestructuringOpen.IsSynthetic())
	assert.False(t, token.Kind(999).IsValid())
}

func TestLookupKeyword(t *testing.T) {
	t.Parallel()

	assert.Equal(t, token.KindArray, token.LookupKeyword("ARRAY"))
	assert.Equal(t, token.KindKeyword, token.LookupKeyword("Return"))
	assert.Equal(t, token.KindIdentifier, token.LookupKeyword("strlen"))
	assert.True(t, token.New(token.KindArrayTypeHint, "array").IsKeyword())
	assert.False(t, token.New(token.KindIdentifier, "strlen").IsKeyword())
}
