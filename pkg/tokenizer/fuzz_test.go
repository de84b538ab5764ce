package tokenizer_test

import (
	"testing"

	"github.com/yaklabco/gophpfix/pkg/tokenizer"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

func FuzzTokenizeRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<?php $a = [1, 2];"))
	f.Add([]byte("<?php [$a, $b] = $c; ?>\n<p>"))
	f.Add([]byte("<?php $a = <<<EOT\nx\nEOT;"))
	f.Add([]byte("<?php /* x"))
	f.Add([]byte("<?php ]]][[[ ((( }}}"))
	f.Add([]byte("<?php #[A] $x = \"$y {$z}\";"))

	f.Fuzz(func(t *testing.T, src []byte) {
		stream := tokenizer.Tokenize(src)

		// Tokenizing is lossless.
		if got := stream.Text(); got != string(src) {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, src)
		}

		// Every paired opener points at a closer that points back.
		for i := range stream.Len() {
			bt, opener, ok := tokens.DetectBlockType(stream.At(i))
			if !ok || !opener {
				continue
			}
			end := stream.MatchingBlockEnd(i, bt)
			if end == tokens.None {
				continue
			}
			if end <= i {
				t.Fatalf("closer %d precedes opener %d", end, i)
			}
			if start := stream.MatchingBlockStart(end, bt); start != i {
				t.Fatalf("closer %d pairs with %d, want %d", end, start, i)
			}
		}
	})
}
