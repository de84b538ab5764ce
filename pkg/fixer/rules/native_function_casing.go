package rules

import (
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// NativeFunctionCasingFixer rewrites calls to native functions with their
// declared casing.
type NativeFunctionCasingFixer struct {
	fixer.BaseFixer
	natives NativeFunctions
}

// NewNativeFunctionCasingFixer creates the fixer over the given table. A nil
// table uses DefaultNativeFunctions.
func NewNativeFunctionCasingFixer(natives NativeFunctions) *NativeFunctionCasingFixer {
	if natives == nil {
		natives = DefaultNativeFunctions()
	}
	return &NativeFunctionCasingFixer{
		BaseFixer: fixer.NewBaseFixer(
			"native_function_casing",
			"Function defined by PHP should be called using the correct casing",
			0,
		),
		natives: natives,
	}
}

// IsCandidate implements fixer.Fixer.
func (f *NativeFunctionCasingFixer) IsCandidate(s *tokens.Stream) bool {
	return s.AllKindsFound(token.KindIdentifier, token.KindOpenParen)
}

// Apply implements fixer.Fixer.
func (f *NativeFunctionCasingFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	for _, i := range s.FindKind(token.KindIdentifier) {
		if !isGlobalFunctionCall(s, i) {
			continue
		}
		name := s.At(i).Content
		canonical, ok := f.natives.Canonical(name)
		if !ok || canonical == name {
			continue
		}
		s.SetAt(i, token.New(token.KindIdentifier, canonical))
	}
	return nil
}
