package rules

import (
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// Alias sets of no_alias_functions.
const (
	AliasSetInternal = "@internal"
	AliasSetMbString = "@mbreg"
	AliasSetAll      = "@all"
)

// functionAliases maps an alias to its master function, per set.
//
//nolint:gochecknoglobals // Read-only alias tables.
var functionAliases = map[string]map[string]string{
	AliasSetInternal: {
		"chop":                 "rtrim",
		"close":                "closedir",
		"doubleval":            "floatval",
		"fputs":                "fwrite",
		"get_required_files":   "get_included_files",
		"ini_alter":            "ini_set",
		"is_double":            "is_float",
		"is_integer":           "is_int",
		"is_long":              "is_int",
		"is_real":              "is_float",
		"is_writeable":         "is_writable",
		"join":                 "implode",
		"key_exists":           "array_key_exists",
		"magic_quotes_runtime": "set_magic_quotes_runtime",
		"pos":                  "current",
		"show_source":          "highlight_file",
		"sizeof":               "count",
		"strchr":               "strstr",
		"user_error":           "trigger_error",
	},
	AliasSetMbString: {
		"mbereg":           "mb_ereg",
		"mberegi":          "mb_eregi",
		"mberegi_replace":  "mb_eregi_replace",
		"mbereg_match":     "mb_ereg_match",
		"mbereg_replace":   "mb_ereg_replace",
		"mbereg_search":    "mb_ereg_search",
		"mbregex_encoding": "mb_regex_encoding",
		"mbsplit":          "mb_split",
	},
}

// NoAliasFunctionsFixer replaces calls to function aliases with the master
// function. Risky: a user function in a namespace may shadow the alias.
type NoAliasFunctionsFixer struct {
	fixer.BaseFixer
	aliases map[string]string
}

// NewNoAliasFunctionsFixer creates the fixer with the internal alias set.
func NewNoAliasFunctionsFixer() *NoAliasFunctionsFixer {
	return &NoAliasFunctionsFixer{
		BaseFixer: fixer.NewRiskyBaseFixer(
			"no_alias_functions",
			"Master functions shall be used instead of aliases",
			0,
		),
		aliases: maps.Clone(functionAliases[AliasSetInternal]),
	}
}

// Options implements fixer.Configurable.
func (f *NoAliasFunctionsFixer) Options() fixer.OptionSchema {
	return fixer.OptionSchema{
		{
			Name:        "sets",
			Description: "List of alias sets to fix.",
			Type:        fixer.OptionStringList,
			Allowed:     []any{AliasSetInternal, AliasSetMbString, AliasSetAll},
			Default:     []string{AliasSetInternal},
		},
	}
}

// Configure implements fixer.Configurable.
func (f *NoAliasFunctionsFixer) Configure(opts fixer.Options) (fixer.Fixer, error) {
	sets := opts.GetStrings("sets")
	if slices.Contains(sets, AliasSetAll) {
		sets = []string{AliasSetInternal, AliasSetMbString}
	}

	out := *f
	out.aliases = make(map[string]string)
	for _, set := range sets {
		maps.Copy(out.aliases, functionAliases[set])
	}
	return &out, nil
}

// IsCandidate implements fixer.Fixer.
func (f *NoAliasFunctionsFixer) IsCandidate(s *tokens.Stream) bool {
	return s.AllKindsFound(token.KindIdentifier, token.KindOpenParen)
}

// Apply implements fixer.Fixer.
func (f *NoAliasFunctionsFixer) Apply(fc *fixer.FileContext) error {
	s := fc.Stream
	for _, i := range s.FindKind(token.KindIdentifier) {
		if !isGlobalFunctionCall(s, i) {
			continue
		}
		master, ok := f.aliases[strings.ToLower(s.At(i).Content)]
		if !ok {
			continue
		}
		s.SetAt(i, token.New(token.KindIdentifier, master))
	}
	return nil
}
