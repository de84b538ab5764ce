package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

func changed(written bool, applied ...string) runner.FileOutcome {
	return runner.FileOutcome{
		Path: "a.php",
		Result: &engine.PipelineResult{
			Result:   &engine.Result{Changed: true, Passes: 2, Applied: applied, Converged: true},
			Modified: true,
			Written:  written,
		},
	}
}

func TestOutcomeStatus(t *testing.T) {
	t.Parallel()

	unstable := changed(true, "binary_operator_spaces")
	unstable.Result.Unstable = true

	skipped := changed(false)
	skipped.Result.Skipped = true

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		want    string
	}{
		{"error", runner.FileOutcome{Error: errors.New("x")}, pretty.StatusError},
		{"cached", runner.FileOutcome{Cached: true}, pretty.StatusCached},
		{"clean", runner.FileOutcome{Result: &engine.PipelineResult{Result: &engine.Result{Passes: 1}}}, pretty.StatusClean},
		{"written", changed(true), pretty.StatusFixed},
		{"pending", changed(false), pretty.StatusPending},
		{"unstable", unstable, pretty.StatusUnstable},
		{"skipped", skipped, pretty.StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.OutcomeStatus(tt.outcome))
		})
	}
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "   1) a.php (array_syntax, lowercase_keywords)\n",
		styles.FormatOutcome(1, "a.php", changed(true, "array_syntax", "lowercase_keywords"), false))

	assert.Equal(t, "  12) a.php (array_syntax) [2 passes]\n",
		styles.FormatOutcome(12, "a.php", changed(false, "array_syntax"), true))

	unstable := changed(true, "binary_operator_spaces")
	unstable.Result.Unstable = true
	unstable.Result.Passes = 10
	unstable.Result.StillChanging = []string{"binary_operator_spaces"}
	assert.Equal(t,
		"   2) a.php (binary_operator_spaces) did not converge after 10 passes, still changed by binary_operator_spaces\n",
		styles.FormatOutcome(2, "a.php", unstable, false))

	failed := runner.FileOutcome{Path: "b.php", Error: errors.New("fixer \"x\" failed")}
	assert.Equal(t, "   3) b.php error: fixer \"x\" failed\n", styles.FormatOutcome(3, "b.php", failed, false))

	assert.Empty(t, styles.FormatOutcome(4, "c.php", runner.FileOutcome{Cached: true}, true))
}
