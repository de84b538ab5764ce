package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width of wrapped template comments.
const commentWrapWidth = 70

// RuleInfo describes a fixer for template generation. The CLI fills it from
// the fixer registry so this package does not depend on it.
type RuleInfo struct {
	Name        string
	Description string
	Risky       bool

	// Options maps option names to their default values.
	Options map[string]any
}

// SetInfo describes a rule set for template generation.
type SetInfo struct {
	Name        string
	Description string
}

// TemplateOptions controls GenerateTemplate.
type TemplateOptions struct {
	// Full lists every fixer, commented out, below the active rules.
	Full bool

	Rules []RuleInfo
	Sets  []SetInfo
}

// GenerateTemplate returns a starter .gophpfix.yml. The active part of the
// template always parses with FromYAML.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(TemplateHeader())
	buf.WriteString(`

# Rule sets start with "@". A fixer name enables it with its defaults (true),
# disables it (false) or configures it with a mapping of options.
rules:
  "@Recommended": true
`)

	if len(opts.Sets) > 0 {
		buf.WriteString("\n  # Available sets:\n")
		for _, s := range sortedBy(opts.Sets, func(s SetInfo) string { return s.Name }) {
			fmt.Fprintf(&buf, "  #   %s: %s\n", s.Name, wrapComment(s.Description, commentWrapWidth, "  #     "))
		}
	}

	if opts.Full {
		for _, r := range sortedBy(opts.Rules, func(r RuleInfo) string { return r.Name }) {
			if err := writeRule(&buf, r); err != nil {
				return nil, err
			}
		}
	}

	buf.WriteString(`
# Allow fixers that may change program behavior.
risky_allowed: false

# Files and directories fixed when none are given on the command line.
# paths:
#   - src

# Patterns excluded from directory walks (doublestar syntax).
exclude:
  - "vendor/**"
  - "node_modules/**"

extensions:
  - .php

# Also fix extensionless files whose shebang runs php, such as bin/console.
scripts: false

# Turn single fixers off for some paths, or limit them to some paths.
# skip:
#   array_syntax:
#     - "legacy/**"
# only:
#   no_alias_functions:
#     - "src/**"

# Indentation and line ending for files without an .editorconfig section.
whitespace:
  indent: "    "
  line_ending: "\n"

cache:
  enabled: true
  path: .gophpfix.cache

backups:
  enabled: false

# Give up on a file after this many passes.
max_passes: 10

parallel:
  jobs: 0
`)

	return buf.Bytes(), nil
}

func writeRule(buf *bytes.Buffer, r RuleInfo) error {
	fmt.Fprintf(buf, "\n  # %s\n", wrapComment(r.Description, commentWrapWidth, "  # "))
	if r.Risky {
		buf.WriteString("  # Risky: requires risky_allowed.\n")
	}
	if len(r.Options) == 0 {
		fmt.Fprintf(buf, "  # %s: true\n", r.Name)
		return nil
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(YAMLIndent)
	if err := enc.Encode(map[string]any{r.Name: r.Options}); err != nil {
		return fmt.Errorf("encode options of %s: %w", r.Name, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode options of %s: %w", r.Name, err)
	}
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		buf.WriteString("  # ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return nil
}

func sortedBy[T any](items []T, key func(T) string) []T {
	out := slices.Clone(items)
	slices.SortFunc(out, func(a, b T) int { return strings.Compare(key(a), key(b)) })
	return out
}

// wrapComment wraps text at maxWidth, starting continuation lines with
// prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n"+prefix)
}

// TemplateHeader is the comment block at the top of generated files.
func TemplateHeader() string {
	return `# gophpfix configuration
# See: https://github.com/yaklabco/gophpfix`
}
