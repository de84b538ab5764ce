// Package fixer defines the fixer plug-in contract, option schemas, the
// fixer registry and rule set resolution.
package fixer

import (
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// Fixer is a named unit of rewrite logic over a token stream.
//
// Fixer values are shared read-only across goroutines once resolved; any
// state needed while fixing one file must live in Apply's local variables.
type Fixer interface {
	// Name returns the stable identifier, e.g. "binary_operator_spaces".
	Name() string

	// Description returns a one-line summary.
	Description() string

	// Priority orders fixers within a pass. Higher runs earlier.
	Priority() int

	// IsCandidate is a cheap pre-check. It must return true whenever Apply
	// could change the stream; false positives only cost a no-op Apply.
	IsCandidate(s *tokens.Stream) bool

	// Apply rewrites the stream in place. Applying a fixer to its own
	// output must not change the text again.
	Apply(fc *FileContext) error
}

// Configurable is implemented by fixers that accept options.
type Configurable interface {
	Fixer

	// Options returns the schema options are validated against.
	Options() OptionSchema

	// Configure returns a new fixer using the resolved options.
	// The receiver is left untouched.
	Configure(opts Options) (Fixer, error)
}

// Risky is implemented by fixers whose rewrites may change behavior.
type Risky interface {
	IsRisky() bool
}

// Conflicter is implemented by fixers that cannot be enabled together with
// some other fixers.
type Conflicter interface {
	ConflictsWith() []string
}

// FileContext is the per-file state handed to Apply.
type FileContext struct {
	// Path is the file being fixed; empty for in-memory input.
	Path string

	// Stream is the token stream to rewrite.
	Stream *tokens.Stream

	// Whitespace holds the indentation and line ending for this file.
	Whitespace Whitespace
}

// Whitespace describes the indentation unit and line ending of a file.
type Whitespace struct {
	Indent     string
	LineEnding string
}

// DefaultWhitespace is four spaces and LF.
func DefaultWhitespace() Whitespace {
	return Whitespace{Indent: "    ", LineEnding: "\n"}
}

// IsRisky reports whether f declares itself risky.
func IsRisky(f Fixer) bool {
	r, ok := f.(Risky)
	return ok && r.IsRisky()
}

// IsConfigurable reports whether f accepts options.
func IsConfigurable(f Fixer) bool {
	_, ok := f.(Configurable)
	return ok
}

// BaseFixer carries the descriptive fields shared by all fixers.
// Embed it and implement IsCandidate and Apply.
type BaseFixer struct {
	name     string
	desc     string
	priority int
	risky    bool
}

// NewBaseFixer creates a BaseFixer.
func NewBaseFixer(name, desc string, priority int) BaseFixer {
	return BaseFixer{name: name, desc: desc, priority: priority}
}

// NewRiskyBaseFixer creates a BaseFixer for a fixer that may change behavior.
func NewRiskyBaseFixer(name, desc string, priority int) BaseFixer {
	return BaseFixer{name: name, desc: desc, priority: priority, risky: true}
}

// Name returns the fixer name.
func (b *BaseFixer) Name() string { return b.name }

// Description returns the fixer description.
func (b *BaseFixer) Description() string { return b.desc }

// Priority returns the fixer priority.
func (b *BaseFixer) Priority() int { return b.priority }

// IsRisky reports whether the fixer may change behavior.
func (b *BaseFixer) IsRisky() bool { return b.risky }

// Info summarizes a fixer for listings.
type Info struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Priority     int          `json:"priority"`
	Risky        bool         `json:"risky"`
	Configurable bool         `json:"configurable"`
	Options      OptionSchema `json:"options,omitempty"`
	Conflicts    []string     `json:"conflicts,omitempty"`
}

// Describe builds the Info for f.
func Describe(f Fixer) Info {
	info := Info{
		Name:         f.Name(),
		Description:  f.Description(),
		Priority:     f.Priority(),
		Risky:        IsRisky(f),
		Configurable: IsConfigurable(f),
		Conflicts:    conflictsOf(f),
	}
	if c, ok := f.(Configurable); ok {
		info.Options = c.Options()
	}
	return info
}
