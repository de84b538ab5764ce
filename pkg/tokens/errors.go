package tokens

import (
	"errors"
	"fmt"
)

// Misuse causes. A stream panics with a *MisuseError wrapping one of these
// when a fixer calls it with indices that do not fit the current stream.
var (
	// ErrIndexOutOfRange indicates an index outside the current stream bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotBlockOpener indicates block matching was asked for a token that does not open that block type.
	ErrNotBlockOpener = errors.New("token does not open the requested block type")

	// ErrNotBlockCloser indicates block matching was asked for a token that does not close that block type.
	ErrNotBlockCloser = errors.New("token does not close the requested block type")

	// ErrCrossingBlock indicates an overwrite whose range splits a block pair.
	ErrCrossingBlock = errors.New("range crosses a block boundary")
)

// MisuseError describes a programming error in a stream caller.
type MisuseError struct {
	// Op is the stream operation that was misused.
	Op string

	// Index is the offending index.
	Index int

	// Err is the cause, one of the Err* sentinels above.
	Err error
}

// Error implements the error interface.
func (e *MisuseError) Error() string {
	return fmt.Sprintf("tokens: %s at index %d: %v", e.Op, e.Index, e.Err)
}

// Unwrap returns the underlying cause.
func (e *MisuseError) Unwrap() error {
	return e.Err
}

func misuse(op string, index int, err error) {
	panic(&MisuseError{Op: op, Index: index, Err: err})
}
