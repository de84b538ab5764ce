package tokens_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokenizer"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// requireMisuse asserts that fn panics with a *tokens.MisuseError wrapping want.
func requireMisuse(t *testing.T, want error, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)

		var misuse *tokens.MisuseError
		require.ErrorAs(t, err, &misuse)
		assert.True(t, errors.Is(err, want), "got %v, want %v", err, want)
	}()
	fn()
}

func TestStream_Navigation(t *testing.T) {
	t.Parallel()

	// 0:<?php 1:$a 2:' ' 3:= 4:' ' 5:/* c */ 6:' ' 7:1 8:;
	stream := tokenizer.TokenizeString("<?php $a = /* c */ 1;")
	require.Equal(t, 9, stream.Len())

	assert.Equal(t, 3, stream.NextMeaningful(1))
	assert.Equal(t, 7, stream.NextMeaningful(3))
	assert.Equal(t, 3, stream.PrevMeaningful(7))
	assert.Equal(t, tokens.None, stream.NextMeaningful(8))
	assert.Equal(t, tokens.None, stream.PrevMeaningful(0))

	assert.Equal(t, 5, stream.NextNonWhitespace(3))
	assert.Equal(t, 5, stream.PrevNonWhitespace(7))

	assert.Equal(t, 8, stream.NextOfKind(0, token.Of(token.KindSemicolon)))
	assert.Equal(t, 3, stream.PrevOfKind(8, token.Of(token.KindEquals), token.Text(token.KindVariable, "$b")))
	assert.Equal(t, tokens.None, stream.NextOfKind(0, token.Text(token.KindVariable, "$b")))
}

func TestStream_KindIndex(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php $a = 1; $b = 2;")

	assert.True(t, stream.KindExistsAnywhere(token.KindComma, token.KindEquals))
	assert.False(t, stream.KindExistsAnywhere(token.KindComma, token.KindDoubleArrow))
	assert.True(t, stream.AllKindsFound(token.KindVariable, token.KindSemicolon))
	assert.Equal(t, []int{3, 10}, stream.FindKind(token.KindEquals))

	stream.InsertAt(1, token.New(token.KindComma, ","))
	assert.True(t, stream.KindFound(token.KindComma))
	assert.Equal(t, []int{4, 11}, stream.FindKind(token.KindEquals))

	stream.SetAt(1, token.Whitespace(""))
	assert.False(t, stream.KindFound(token.KindComma))
	assert.Equal(t, []int{4, 11}, stream.FindKind(token.KindEquals))
}

func TestStream_MatchingBlock(t *testing.T) {
	t.Parallel()

	// 0:<?php 1:f 2:( 3:[ 4:1 5:] 6:) 7:;
	stream := tokenizer.TokenizeString("<?php f([1]);")

	assert.Equal(t, 6, stream.MatchingBlockEnd(2, tokens.BlockParen))
	assert.Equal(t, 2, stream.MatchingBlockStart(6, tokens.BlockParen))
	assert.Equal(t, 5, stream.MatchingBlockEnd(3, tokens.BlockArray))

	requireMisuse(t, tokens.ErrNotBlockOpener, func() { stream.MatchingBlockEnd(3, tokens.BlockIndex) })
	requireMisuse(t, tokens.ErrNotBlockCloser, func() { stream.MatchingBlockStart(2, tokens.BlockParen) })
	requireMisuse(t, tokens.ErrIndexOutOfRange, func() { stream.MatchingBlockEnd(99, tokens.BlockParen) })
}

func TestStream_UnbalancedBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "missing closer", src: "<?php f(1;"},
		{name: "crossed", src: "<?php ( [ ) ];"},
		{name: "closer first", src: "<?php ) ( ;"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stream := tokenizer.TokenizeString(testCase.src)
			for i := range stream.Len() {
				bt, opener, ok := tokens.DetectBlockType(stream.At(i))
				if !ok || !opener {
					continue
				}
				end := stream.MatchingBlockEnd(i, bt)
				if end == tokens.None {
					continue
				}
				// Pairs must nest: nothing between them pairs outside.
				for k := i + 1; k < end; k++ {
					kbt, kopen, kok := tokens.DetectBlockType(stream.At(k))
					if !kok || !kopen {
						continue
					}
					if partner := stream.MatchingBlockEnd(k, kbt); partner != tokens.None {
						assert.Less(t, partner, end, "pair %d-%d crosses %d-%d", k, partner, i, end)
					}
				}
			}
		})
	}

	stream := tokenizer.TokenizeString("<?php f(1;")
	assert.Equal(t, tokens.None, stream.MatchingBlockEnd(2, tokens.BlockParen))
}

func TestStream_InsertShiftsBlocks(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php f(1);")
	require.Equal(t, 4, stream.MatchingBlockEnd(2, tokens.BlockParen))

	stream.InsertAt(3, token.Space())
	assert.Equal(t, 5, stream.MatchingBlockEnd(2, tokens.BlockParen))
	assert.Equal(t, "<?php f( 1);", stream.Text())

	stream.InsertAt(stream.Len(), token.New(token.KindComment, "// end"))
	assert.Equal(t, "<?php f( 1);// end", stream.Text())

	requireMisuse(t, tokens.ErrIndexOutOfRange, func() { stream.InsertAt(stream.Len()+1, token.Space()) })
}

func TestStream_OverwriteRange(t *testing.T) {
	t.Parallel()

	// 0:<?php 1:$a 2:' ' 3:= 4:' ' 5:array 6:( 7:1 8:) 9:;
	stream := tokenizer.TokenizeString("<?php $a = array(1);")

	stream.OverwriteRange(5, 8,
		token.New(token.KindArrayOpen, "["),
		token.New(token.KindIntLiteral, "1"),
		token.New(token.KindArrayClose, "]"),
	)

	assert.Equal(t, "<?php $a = [1];", stream.Text())
	assert.Equal(t, 7, stream.MatchingBlockEnd(5, tokens.BlockArray))
	assert.False(t, stream.KindFound(token.KindArray))
	assert.Equal(t, []int{8}, stream.FindKind(token.KindSemicolon))

	requireMisuse(t, tokens.ErrCrossingBlock, func() {
		stream.OverwriteRange(4, 5, token.Space())
	})
	requireMisuse(t, tokens.ErrIndexOutOfRange, func() {
		stream.OverwriteRange(5, 4)
	})
}

func TestStream_ClearAndMergeWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		index int
		want  string
	}{
		{name: "between spaces", src: "<?php $a  +   $b;", index: 3, want: "<?php $a     $b;"},
		{name: "no following whitespace", src: "<?php $a +$b;", index: 3, want: "<?php $a $b;"},
		{name: "at end", src: "<?php $a", index: 1, want: "<?php "},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stream := tokenizer.TokenizeString(testCase.src)
			before := stream.Len()

			stream.ClearAndMergeWhitespace(testCase.index)

			assert.Equal(t, testCase.want, stream.Text())
			assert.Equal(t, before, stream.Len(), "indices stay stable")
			assert.True(t, stream.At(testCase.index).IsEmpty())
		})
	}

	// The merged whitespace ends up in one token.
	stream := tokenizer.TokenizeString("<?php $a  +   $b;")
	stream.ClearAndMergeWhitespace(3)
	assert.Equal(t, "     ", stream.At(2).Content)
	assert.True(t, stream.At(4).IsEmpty())
}

func TestStream_EnsureSingleSpaceAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		index    int
		side     tokens.Side
		want     string
		inserted bool
	}{
		{name: "insert after", src: "<?php $a,$b;", index: 2, side: tokens.After, want: "<?php $a, $b;", inserted: true},
		{name: "insert before", src: "<?php $a=1;", index: 2, side: tokens.Before, want: "<?php $a =1;", inserted: true},
		{name: "collapse", src: "<?php $a,   $b;", index: 2, side: tokens.After, want: "<?php $a, $b;"},
		{name: "already single", src: "<?php $a, $b;", index: 2, side: tokens.After, want: "<?php $a, $b;"},
		{name: "keeps newline", src: "<?php $a,\n    $b;", index: 2, side: tokens.After, want: "<?php $a,\n    $b;"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stream := tokenizer.TokenizeString(testCase.src)
			inserted := stream.EnsureSingleSpaceAt(testCase.index, testCase.side)

			assert.Equal(t, testCase.inserted, inserted)
			assert.Equal(t, testCase.want, stream.Text())

			// Idempotent.
			index := testCase.index
			if inserted && testCase.side == tokens.Before {
				index++
			}
			assert.False(t, stream.EnsureSingleSpaceAt(index, testCase.side))
			assert.Equal(t, testCase.want, stream.Text())
		})
	}
}

func TestStream_IsMultilineBetween(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php f(1,\n2);")
	open := stream.NextOfKind(0, token.Of(token.KindOpenParen))
	end := stream.MatchingBlockEnd(open, tokens.BlockParen)

	assert.True(t, stream.IsMultilineBetween(open, end))
	assert.False(t, stream.IsMultilineBetween(open, open+2))
	assert.True(t, stream.IsMultilineBetween(end, open), "order does not matter")
}

func TestStream_VersionAndClearAt(t *testing.T) {
	t.Parallel()

	stream := tokenizer.TokenizeString("<?php $a = 1;")
	v0 := stream.Version()
	n := stream.Len()

	stream.SetAt(1, stream.At(1))
	assert.Equal(t, v0, stream.Version(), "identical replacement is not a change")

	stream.ClearAt(2)
	assert.Greater(t, stream.Version(), v0)
	assert.Equal(t, n, stream.Len(), "a cleared token keeps its index")
	assert.True(t, stream.At(2).IsEmpty())
	assert.Equal(t, "<?php $a= 1;", stream.Text())
}
