package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/fix"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// DiffReporter prints a git-style unified diff per changed file. Files
// carry a diff only when the pipeline ran as a dry run or with ComputeDiff.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

type diffTotals struct {
	files, added, removed int
}

// Report implements Reporter. Failed files go to the error writer.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	w := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := w.Flush(); err == nil {
			err = flushErr
		}
	}()

	var totals diffTotals
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		totals.files++
		totals.added += diff.Additions
		totals.removed += diff.Deletions

		r.writeHeader(w, file)
		for _, h := range diff.Hunks {
			fmt.Fprintln(w, r.styles.DiffHunk.Render(h.Header()))
			for _, line := range h.Lines {
				r.writeLine(w, line)
			}
		}
		fmt.Fprintln(w)
	}

	if totals.files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(w, r.summary(totals))
	}
	return totals.files, nil
}

func (r *DiffReporter) writeHeader(w *bufio.Writer, file runner.FileOutcome) {
	path := r.opts.displayPath(file.Path)
	fmt.Fprintln(w, r.styles.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	if r.opts.Verbose && len(file.Result.Applied) > 0 {
		fmt.Fprintln(w, r.styles.Dim.Render("# fixers: "+strings.Join(file.Result.Applied, ", ")))
	}
	if file.Result.IsUnstable() {
		fmt.Fprintln(w, r.styles.Warning.Render(
			fmt.Sprintf("# unstable after %d passes", file.Result.Passes)))
	}
	fmt.Fprintln(w, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(w, r.styles.DiffAdd.Render("+++ b/"+path))
}

func (r *DiffReporter) writeLine(w *bufio.Writer, line fix.Line) {
	switch line.Kind {
	case fix.LineAdded:
		fmt.Fprintln(w, r.styles.DiffAdd.Render("+"+line.Content))
	case fix.LineRemoved:
		fmt.Fprintln(w, r.styles.DiffRemove.Render("-"+line.Content))
	default:
		fmt.Fprintln(w, r.styles.DiffContext.Render(" "+line.Content))
	}
	if line.NoNewline {
		fmt.Fprintln(w, r.styles.Dim.Render(`\ No newline at end of file`))
	}
}

func (r *DiffReporter) summary(t diffTotals) string {
	parts := []string{fmt.Sprintf("%d %s changed", t.files, plural(t.files, "file", "files"))}
	if t.added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", t.added, plural(t.added, "insertion", "insertions"))))
	}
	if t.removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", t.removed, plural(t.removed, "deletion", "deletions"))))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
