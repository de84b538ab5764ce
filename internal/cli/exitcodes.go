package cli

import (
	"errors"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// Exit codes for gophpfix.
const (
	// ExitSuccess indicates nothing needed fixing, or everything was fixed.
	ExitSuccess = 0

	// ExitChangesNeeded indicates a check or dry run found files to fix,
	// or a fix run left unstable files behind.
	ExitChangesNeeded = 1

	// ExitConfigError indicates invalid usage or configuration.
	ExitConfigError = 2

	// ExitRuntimeError indicates a fixer or I/O failure.
	ExitRuntimeError = 3
)

var (
	// ErrChangesNeeded is returned when files would change or did not
	// converge. It only selects the exit code and is not logged.
	ErrChangesNeeded = errors.New("changes needed")

	// ErrFilesFailed is returned when some files could not be fixed.
	ErrFilesFailed = errors.New("some files could not be fixed")

	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a fix or check run.
// Failures outrank pending changes.
func ExitCodeFromResult(result *runner.Result, dryRun bool) int {
	if result == nil {
		return ExitSuccess
	}
	switch {
	case result.HasErrors():
		return ExitRuntimeError
	case result.HasUnstable():
		return ExitChangesNeeded
	case dryRun && result.HasChanges():
		return ExitChangesNeeded
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		validationErr *configloader.ValidationError
		configErr     *fixer.ConfigError
		conflictErr   *fixer.ConflictError
	)
	switch {
	case errors.Is(err, ErrChangesNeeded):
		return ExitChangesNeeded
	case errors.Is(err, ErrUsage),
		errors.As(err, &validationErr),
		errors.As(err, &configErr),
		errors.As(err, &conflictErr):
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}

// IsSilent reports whether err only carries an exit code and should not be
// printed.
func IsSilent(err error) bool {
	return errors.Is(err, ErrChangesNeeded) || errors.Is(err, ErrFilesFailed)
}
