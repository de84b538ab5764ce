// Package engine drives fixers over a file until its text stops changing.
//
// A file goes through passes. Each pass tokenizes the current text, runs
// every fixer on the same stream in resolved order and renders the stream
// back to text. Passes repeat until the rendered text equals the text the
// pass started from, or until the pass cap is reached.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/serializer"
	"github.com/yaklabco/gophpfix/pkg/tokenizer"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// DefaultMaxPasses caps the passes spent on one file.
const DefaultMaxPasses = 10

// ErrFixerFailed is wrapped by every FixerError.
var ErrFixerFailed = errors.New("fixer failed")

// FixerError reports a fixer that returned an error or panicked while
// fixing a file. The file is left untouched.
type FixerError struct {
	Fixer string
	Pass  int
	Err   error
}

func (e *FixerError) Error() string {
	return fmt.Sprintf("fixer %q failed in pass %d: %v", e.Fixer, e.Pass, e.Err)
}

// Unwrap returns both ErrFixerFailed and the cause.
func (e *FixerError) Unwrap() []error {
	return []error{ErrFixerFailed, e.Err}
}

// State is a step of the per-file state machine.
type State int

// States in the order a converging file visits them.
const (
	StateTokenized State = iota
	StateFixing
	StateSerialized
	StateRetokenize
	StateConverged
	StateIterationLimitReached
)

func (s State) String() string {
	switch s {
	case StateTokenized:
		return "tokenized"
	case StateFixing:
		return "fixing"
	case StateSerialized:
		return "serialized"
	case StateRetokenize:
		return "retokenize"
	case StateConverged:
		return "converged"
	case StateIterationLimitReached:
		return "iteration_limit_reached"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateIterationLimitReached
}

// Input is one file to fix.
type Input struct {
	// Path is used in errors and logs only; empty for in-memory input.
	Path string

	Content []byte

	// Whitespace is handed to fixers. The zero value means the default.
	Whitespace fixer.Whitespace
}

// Result is the outcome of fixing one file.
type Result struct {
	// Output is the fixed text. It equals the input when nothing changed.
	Output []byte

	// Changed reports whether Output differs from the input.
	Changed bool

	// Passes is the number of passes run, at least one.
	Passes int

	// Applied lists, in first-change order, the fixers that changed the
	// stream in a pass whose output differed from its input.
	Applied []string

	// Converged is true when a pass left the text unchanged.
	Converged bool

	// Unstable is true when the pass cap was reached while the text was
	// still changing. Output then holds the last rendered text.
	Unstable bool

	// StillChanging lists the fixers that changed the stream in the last
	// pass of an unstable file.
	StillChanging []string
}

// Engine runs a resolved fixer list over files. An Engine is safe for
// concurrent use as long as OnTransition is.
type Engine struct {
	// Fixers in run order.
	Fixers []fixer.Fixer

	// MaxPasses caps the passes per file. Zero or less means DefaultMaxPasses.
	MaxPasses int

	// Tokenizer lexes each pass. Nil means tokenizer.New().
	Tokenizer *tokenizer.Tokenizer

	// OnTransition, when set, observes every state change.
	OnTransition func(path string, pass int, from, to State)
}

// New returns an Engine running fixers with the default pass cap.
func New(fixers []fixer.Fixer) *Engine {
	return &Engine{
		Fixers:    fixers,
		MaxPasses: DefaultMaxPasses,
		Tokenizer: tokenizer.New(),
	}
}

// FixerNames returns the names of the engine's fixers in run order.
func (e *Engine) FixerNames() []string {
	names := make([]string, len(e.Fixers))
	for i, f := range e.Fixers {
		names[i] = f.Name()
	}
	return names
}

// run is the per-file state carried between transitions.
type run struct {
	engine *Engine
	in     Input
	pass   int
	state  State

	text    string
	next    string
	stream  *tokens.Stream
	mutated []string
}

// Fix runs the state machine over in. A fixer failure aborts the file and
// returns a *FixerError; cancellation of ctx is checked before each pass.
func (e *Engine) Fix(ctx context.Context, in Input) (*Result, error) {
	if in.Whitespace == (fixer.Whitespace{}) {
		in.Whitespace = fixer.DefaultWhitespace()
	}
	maxPasses := e.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	tz := e.Tokenizer
	if tz == nil {
		tz = tokenizer.New()
	}

	r := &run{engine: e, in: in, text: string(in.Content), state: StateTokenized}
	res := &Result{}

	for {
		switch r.state {
		case StateTokenized:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r.pass++
			r.stream = tz.TokenizeString(r.text)
			r.to(StateFixing)

		case StateFixing:
			mutated, err := e.applyAll(r.stream, in, r.pass)
			if err != nil {
				return nil, err
			}
			r.mutated = mutated
			r.to(StateSerialized)

		case StateSerialized:
			// An untouched stream renders to its own input.
			r.next = r.text
			if len(r.mutated) > 0 {
				r.next = serializer.Render(r.stream)
			}
			switch {
			case r.next == r.text:
				r.to(StateConverged)
			case r.pass >= maxPasses:
				res.Applied = appendNew(res.Applied, r.mutated)
				r.to(StateIterationLimitReached)
			default:
				res.Applied = appendNew(res.Applied, r.mutated)
				r.to(StateRetokenize)
			}

		case StateRetokenize:
			r.text = r.next
			r.to(StateTokenized)

		case StateConverged:
			res.Converged = true
			return r.finish(res), nil

		case StateIterationLimitReached:
			r.text = r.next
			res.Unstable = true
			res.StillChanging = slices.Clone(r.mutated)
			logging.ForFile(ctx, in.Path).Warn("file did not converge",
				logging.FieldMaxPasses, maxPasses,
				logging.FieldFixers, res.StillChanging)
			return r.finish(res), nil
		}
	}
}

// FixString fixes src held in memory.
func (e *Engine) FixString(ctx context.Context, src string) (*Result, error) {
	return e.Fix(ctx, Input{Content: []byte(src)})
}

func (r *run) to(next State) {
	if hook := r.engine.OnTransition; hook != nil {
		hook(r.in.Path, r.pass, r.state, next)
	}
	r.state = next
}

func (r *run) finish(res *Result) *Result {
	res.Output = []byte(r.text)
	res.Changed = r.text != string(r.in.Content)
	res.Passes = r.pass
	return res
}

// applyAll runs every fixer once on s and returns the names of those that
// changed it.
func (e *Engine) applyAll(s *tokens.Stream, in Input, pass int) ([]string, error) {
	fc := &fixer.FileContext{Path: in.Path, Stream: s, Whitespace: in.Whitespace}

	var mutated []string
	for _, f := range e.Fixers {
		before := s.Version()
		if err := applyOne(f, fc, pass); err != nil {
			return nil, err
		}
		if s.Version() != before {
			mutated = append(mutated, f.Name())
		}
	}
	return mutated, nil
}

// applyOne runs a single fixer, turning a panic into a FixerError.
func applyOne(f fixer.Fixer, fc *fixer.FileContext, pass int) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cause, ok := rec.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", rec)
			}
			err = &FixerError{Fixer: f.Name(), Pass: pass, Err: cause}
		}
	}()

	if !f.IsCandidate(fc.Stream) {
		return nil
	}
	if applyErr := f.Apply(fc); applyErr != nil {
		return &FixerError{Fixer: f.Name(), Pass: pass, Err: applyErr}
	}
	return nil
}

func appendNew(dst, names []string) []string {
	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}
	return dst
}
