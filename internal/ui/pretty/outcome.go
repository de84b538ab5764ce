package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/runner"
)

// Outcome statuses shown for a file.
const (
	StatusFixed    = "fixed"
	StatusPending  = "needs fixing"
	StatusUnstable = "unstable"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusClean    = "clean"
	StatusCached   = "cached"
)

// OutcomeStatus classifies a file outcome.
func OutcomeStatus(o runner.FileOutcome) string {
	switch {
	case o.Error != nil:
		return StatusError
	case o.Cached:
		return StatusCached
	case o.Result == nil:
		return StatusClean
	case o.Result.Skipped:
		return StatusSkipped
	case o.Result.IsUnstable():
		return StatusUnstable
	case o.Result.Written:
		return StatusFixed
	case o.Result.Modified:
		return StatusPending
	default:
		return StatusClean
	}
}

// FormatOutcome renders one numbered line, like
// "   1) src/App.php (array_syntax)", for a file that changed, failed, was
// skipped or did not converge. Clean files render as "".
func (s *Styles) FormatOutcome(index int, path string, o runner.FileOutcome, verbose bool) string {
	status := OutcomeStatus(o)
	if status == StatusClean || status == StatusCached {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s", s.Index.Render(fmt.Sprintf("%4d)", index)), s.FilePath.Render(path))

	switch status {
	case StatusError:
		builder.WriteString(" " + s.Error.Render("error:") + " " + s.Message.Render(o.Error.Error()))
	case StatusSkipped:
		builder.WriteString(" " + s.Warning.Render("skipped:") + " " + s.Message.Render(o.Result.SkipReason))
	default:
		if fixers := o.Result.Applied; len(fixers) > 0 {
			builder.WriteString(" " + s.Fixer.Render("("+strings.Join(fixers, ", ")+")"))
		}
		if status == StatusUnstable {
			msg := fmt.Sprintf("did not converge after %d passes", o.Result.Passes)
			if still := o.Result.StillChanging; len(still) > 0 {
				msg += ", still changed by " + strings.Join(still, ", ")
			}
			builder.WriteString(" " + s.Warning.Render(msg))
		}
		if verbose && o.Result.Passes > 0 {
			builder.WriteString(" " + s.Dim.Render(fmt.Sprintf("[%d passes]", o.Result.Passes)))
		}
	}

	builder.WriteString("\n")
	return builder.String()
}
