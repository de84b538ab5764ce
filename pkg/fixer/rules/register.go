package rules

import "github.com/yaklabco/gophpfix/pkg/fixer"

// RegisterAll registers all built-in fixers with the given registry.
func RegisterAll(registry *fixer.Registry) {
	// Whitespace
	registry.MustRegister(NewNoTrailingWhitespaceFixer())
	registry.MustRegister(NewWhitespaceAfterCommaInArrayFixer())
	registry.MustRegister(NewBinaryOperatorSpacesFixer())
	registry.MustRegister(NewSingleBlankLineBeforeNamespaceFixer())
	registry.MustRegister(NewNoBlankLinesBeforeNamespaceFixer())

	// Casing
	registry.MustRegister(NewLowercaseKeywordsFixer())
	registry.MustRegister(NewNativeFunctionCasingFixer(nil))

	// Syntax
	registry.MustRegister(NewSwitchCaseSemicolonToColonFixer())
	registry.MustRegister(NewNormalizeIndexBraceFixer())
	registry.MustRegister(NewArraySyntaxFixer())

	// Risky
	registry.MustRegister(NewNoAliasFunctionsFixer())
}

// Built-in rule set names.
const (
	SetWhitespace  = "@Whitespace"
	SetBase        = "@Base"
	SetRecommended = "@Recommended"
	SetRisky       = "@Risky"
)

// RegisterSets registers the built-in rule sets. The fixers they name must
// be registered before the sets are resolved.
func RegisterSets(registry *fixer.Registry) {
	registry.MustRegisterSet(fixer.RuleSet{
		Name:        SetWhitespace,
		Description: "Whitespace normalization that never changes tokens other than whitespace.",
		Rules: fixer.Rules{
			"no_trailing_whitespace":             fixer.Enable(),
			"whitespace_after_comma_in_array":    fixer.Enable(),
			"binary_operator_spaces":             fixer.Enable(),
			"single_blank_line_before_namespace": fixer.Enable(),
		},
	})
	registry.MustRegisterSet(fixer.RuleSet{
		Name:        SetBase,
		Description: "Safe rules every project can follow.",
		Rules: fixer.Rules{
			SetWhitespace:                    fixer.Enable(),
			"lowercase_keywords":             fixer.Enable(),
			"native_function_casing":         fixer.Enable(),
			"switch_case_semicolon_to_colon": fixer.Enable(),
			"normalize_index_brace":          fixer.Enable(),
		},
	})
	registry.MustRegisterSet(fixer.RuleSet{
		Name:        SetRecommended,
		Description: "The base rules plus short array syntax.",
		Rules: fixer.Rules{
			SetBase:        fixer.Enable(),
			"array_syntax": fixer.Enable(),
		},
	})
	registry.MustRegisterSet(fixer.RuleSet{
		Name:        SetRisky,
		Description: "Rules that may change program behavior. Requires allowing risky fixers.",
		Rules: fixer.Rules{
			"no_alias_functions": fixer.Enable(),
		},
	})
}

// init registers all built-in fixers and sets with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic fixer registration
func init() {
	RegisterAll(fixer.DefaultRegistry)
	RegisterSets(fixer.DefaultRegistry)
}
