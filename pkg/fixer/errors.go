package fixer

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration error causes.
var (
	// ErrInvalidName indicates a fixer name that does not match its naming pattern.
	ErrInvalidName = errors.New("invalid fixer name")

	// ErrDuplicateName indicates a second registration under the same name.
	ErrDuplicateName = errors.New("fixer already registered")

	// ErrUnknownFixer indicates a rule set naming a fixer that is not registered.
	ErrUnknownFixer = errors.New("unknown fixer")

	// ErrUnknownSet indicates a reference to an unregistered rule set.
	ErrUnknownSet = errors.New("unknown rule set")

	// ErrSetCycle indicates rule sets that import each other.
	ErrSetCycle = errors.New("rule set imports itself")

	// ErrNotConfigurable indicates options given to a fixer without options.
	ErrNotConfigurable = errors.New("fixer is not configurable")

	// ErrEmptyConfiguration indicates an empty option mapping.
	ErrEmptyConfiguration = errors.New("configuration must be a non-empty mapping")

	// ErrInvalidOption indicates an option that failed schema validation.
	ErrInvalidOption = errors.New("invalid option")

	// ErrRiskyNotAllowed indicates a risky fixer enabled without allowing risky fixers.
	ErrRiskyNotAllowed = errors.New("risky fixer not allowed")

	// ErrConflict indicates two mutually exclusive fixers enabled together.
	ErrConflict = errors.New("conflicting fixers")
)

// ConfigError reports a configuration problem with a named fixer or option.
type ConfigError struct {
	// Fixer is the fixer or rule set the error refers to.
	Fixer string

	// Option is the offending option, if any.
	Option string

	// Message describes the problem.
	Message string

	// Err is the cause, one of the Err* sentinels.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("rule %q %s", e.Fixer, e.Message)
	}
	return fmt.Sprintf("rule %q: option %q: %s", e.Fixer, e.Option, e.Message)
}

// Unwrap returns the cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ConflictError lists every pair of conflicting fixers in a rule set.
type ConflictError struct {
	Pairs [][2]string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	var sb strings.Builder
	sb.WriteString("rule set contains conflicting fixers:")
	for _, p := range e.Pairs {
		fmt.Fprintf(&sb, "\n- %q with %q", p[0], p[1])
	}
	return sb.String()
}

// Unwrap returns ErrConflict.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
