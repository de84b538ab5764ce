package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// ValidationError is a configuration problem found before any file is
// touched.
type ValidationError struct {
	// Field is the offending key, e.g. "whitespace.indent".
	Field string

	Value   any
	Message string

	// FilePath and Line locate the problem when it came from a file.
	FilePath string
	Line     int

	// Err is the underlying error, e.g. a *fixer.ConfigError.
	Err error
}

func (e *ValidationError) Error() string {
	var parts []string
	switch {
	case e.FilePath != "" && e.Line > 0:
		parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
	case e.FilePath != "":
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult collects every finding of Validate.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns errors then warnings, prefixed by their level.
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		out = append(out, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		out = append(out, "warning: "+w.Error())
	}
	return out
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg, including that its rules resolve against registry.
func Validate(cfg *config.Config, registry *fixer.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, formatList())
	}
	if cfg.Parallel.Jobs < 0 {
		result.fail("parallel.jobs", cfg.Parallel.Jobs, "must be >= 0 (0 means auto)")
	}
	if cfg.MaxPasses < 0 {
		result.fail("max_passes", cfg.MaxPasses, "must be >= 0 (0 means the default)")
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("exclude[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
	validatePathRules(cfg.Skip, "skip", registry, result)
	validatePathRules(cfg.Only, "only", registry, result)
	if indent := cfg.Whitespace.Indent; indent != "" && strings.Trim(indent, " ") != "" && indent != "\t" {
		result.fail("whitespace.indent", indent, "must be spaces or a single tab")
	}
	switch cfg.Whitespace.LineEnding {
	case "", "\n", "\r\n":
	default:
		result.fail("whitespace.line_ending", cfg.Whitespace.LineEnding, `must be "\n" or "\r\n"`)
	}

	if registry != nil {
		validateRules(cfg, registry, result)
	}
	return result
}

func validateRules(cfg *config.Config, registry *fixer.Registry, result *ValidationResult) {
	rules, err := EffectiveRules(cfg)
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{Field: "rules", Message: err.Error(), Err: err})
		return
	}

	fixers, err := registry.Resolve(rules, fixer.ResolveOptions{AllowRisky: cfg.RiskyAllowed})
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{Field: "rules", Message: err.Error(), Err: err})
		return
	}
	if len(fixers) == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "rules",
			Message: "no fixers are enabled; files will not change",
		})
	}
}

// validatePathRules checks the skip or only mapping: every key must name a
// registered fixer and every pattern must be valid.
func validatePathRules(rules map[string][]string, key string, registry *fixer.Registry, result *ValidationResult) {
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		field := key + "." + name
		if registry != nil {
			if _, ok := registry.Get(name); !ok {
				result.fail(field, name, "unknown fixer %q", name)
			}
		}
		if len(rules[name]) == 0 {
			result.fail(field, nil, "needs at least one pattern")
		}
		for i, pattern := range rules[name] {
			if !doublestar.ValidatePattern(pattern) {
				result.fail(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern %q", pattern)
			}
		}
	}
}

func formatList() string {
	formats := config.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
