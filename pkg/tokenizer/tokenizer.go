// Package tokenizer converts PHP source text into a token stream.
//
// Tokenizing is total: any input, valid PHP or not, yields a stream whose
// concatenated content equals the input. After lexing, a disambiguation pass
// reclassifies ambiguous tokens into synthetic kinds so fixers can match
// them without reparsing.
package tokenizer

import (
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// Transformer reclassifies tokens in place after lexing. Implementations
// must be idempotent: running one twice yields the same classification.
type Transformer interface {
	// Name identifies the transformer in logs and tests.
	Name() string

	// Transform performs a single forward scan over the stream.
	Transform(s *tokens.Stream)
}

// DefaultTransformers returns the disambiguation pass in run order.
func DefaultTransformers() []Transformer {
	return []Transformer{
		SquareBracketTransformer{},
		ArrayTypeHintTransformer{},
		ReturnRefTransformer{},
	}
}

// Tokenizer lexes source and runs its transformers.
type Tokenizer struct {
	Transformers []Transformer
}

// New returns a Tokenizer with the default transformers.
func New() *Tokenizer {
	return &Tokenizer{Transformers: DefaultTransformers()}
}

// Tokenize converts src into a stream.
func (tz *Tokenizer) Tokenize(src []byte) *tokens.Stream {
	return tz.TokenizeString(string(src))
}

// TokenizeString converts src into a stream.
func (tz *Tokenizer) TokenizeString(src string) *tokens.Stream {
	s := tokens.New(lex(src))
	for _, tr := range tz.Transformers {
		tr.Transform(s)
	}
	return s
}

// Tokenize converts src into a stream using the default transformers.
func Tokenize(src []byte) *tokens.Stream {
	return New().Tokenize(src)
}

// TokenizeString converts src into a stream using the default transformers.
func TokenizeString(src string) *tokens.Stream {
	return New().TokenizeString(src)
}
