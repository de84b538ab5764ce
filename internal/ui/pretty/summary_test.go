package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No changes needed (1 file checked)\n",
		},
		{
			name:  "fixed with cache",
			stats: runner.Stats{FilesProcessed: 4, FilesCached: 8, FilesChanged: 3, FilesWritten: 3},
			want:  "Fixed 3 files (12 files checked, 8 cached)\n",
		},
		{
			name:   "dry run",
			stats:  runner.Stats{FilesProcessed: 5, FilesChanged: 1},
			dryRun: true,
			want:   "1 file need fixing (5 files checked)\n",
		},
		{
			name: "problems",
			stats: runner.Stats{
				FilesProcessed: 5, FilesChanged: 2, FilesWritten: 1,
				FilesUnstable: 1, FilesSkipped: 1, FilesErrored: 2,
			},
			want: "Fixed 1 file, 1 unstable, 1 skipped, 2 failed (5 files checked)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.dryRun))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 10,
		FilesCached:    2,
		FilesChanged:   3,
		FilesWritten:   3,
		Backups:        3,
		FixerUsage: map[string]int{
			"no_trailing_whitespace": 1,
			"array_syntax":           3,
			"lowercase_keywords":     1,
		},
	}

	out := styles.FormatSummary(stats, false)

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files checked:     12")
	assert.Contains(t, out, "From cache:        2")
	assert.Contains(t, out, "Files fixed:       3")
	assert.Contains(t, out, "Backups:           3")
	assert.NotContains(t, out, "Failed:")
	assert.Contains(t, out, "All files are clean")

	// Highest count first, ties by name.
	a := indexOf(out, "array_syntax")
	l := indexOf(out, "lowercase_keywords")
	n := indexOf(out, "no_trailing_whitespace")
	assert.Less(t, a, l)
	assert.Less(t, l, n)
}

func TestFormatSummary_Status(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		stats  runner.Stats
		dryRun bool
		want   string
	}{
		{"failed", runner.Stats{FilesErrored: 1, FilesUnstable: 1}, false, "Fixing failed for some files"},
		{"unstable", runner.Stats{FilesUnstable: 1}, false, "Some files did not converge"},
		{"pending", runner.Stats{FilesChanged: 1}, true, "Changes needed"},
		{"fixed", runner.Stats{FilesChanged: 1, FilesWritten: 1}, false, "All files are clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, styles.FormatSummary(tt.stats, tt.dryRun), tt.want)
		})
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
