package pretty_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

func sampleResult() *runner.Result {
	fixed := changed(true, "array_syntax", "lowercase_keywords")
	fixed.Path = "/w/src/App.php"

	failed := runner.FileOutcome{
		Path:  "/w/src/Broken.php",
		Error: fmt.Errorf("wrapped: %w", &engine.FixerError{Fixer: "array_syntax", Pass: 1, Err: errors.New("boom")}),
	}

	return &runner.Result{Files: []runner.FileOutcome{
		fixed,
		failed,
		{Path: "/w/src/Cached.php", Cached: true},
	}}
}

func TestTableFormatter_Rows(t *testing.T) {
	t.Parallel()

	tf := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	rows := tf.Rows(sampleResult(), func(p string) string { return strings.TrimPrefix(p, "/w/") })

	require.Len(t, rows, 2)
	assert.Equal(t, pretty.TableRow{
		File: "src/App.php", Status: pretty.StatusFixed, Passes: 2, Fixers: "array_syntax, lowercase_keywords",
	}, rows[0])
	assert.Equal(t, pretty.TableRow{File: "src/Broken.php", Status: pretty.StatusError, Fixers: "array_syntax"}, rows[1])

	tf.ShowClean = true
	assert.Len(t, tf.Rows(sampleResult(), func(p string) string { return p }), 3)
	assert.Nil(t, tf.Rows(nil, nil))
}

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	tf := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	assert.Empty(t, tf.FormatTable(nil))

	out := tf.FormatTable([]pretty.TableRow{
		{File: "src/App.php", Status: pretty.StatusFixed, Passes: 2, Fixers: "array_syntax"},
		{File: "src/" + strings.Repeat("deep/", 20) + "Long.php", Status: pretty.StatusPending, Passes: 3,
			Fixers: strings.Repeat("lowercase_keywords, ", 10)},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[0], "STATUS")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Contains(t, lines[2], "src/App.php")
	assert.Contains(t, lines[3], "...")
	assert.Contains(t, lines[3], "Long.php")
	assert.Contains(t, lines[5], "Legend")

	for _, l := range lines[:5] {
		assert.LessOrEqual(t, len(l), 80, l)
	}
}
