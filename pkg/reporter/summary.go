package reporter

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	fixerColWidth     = 36
	fileColWidth      = 60
	numColWidth       = 8
	maxFilePathLength = 58
)

// SummaryReporter prints per-fixer and per-file tables and the totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil || (result.Stats.FilesChanged == 0 && result.Stats.FilesErrored == 0) {
		fmt.Fprintln(r.out, r.styles.Success.Render("No changes needed"))
		return 0, nil
	}

	r.renderFixerTable(result.Stats.FixerUsage)
	fmt.Fprintln(r.out)
	r.renderFileTable(result)
	fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats, r.opts.DryRun))

	return result.Stats.FilesChanged, nil
}

func (r *SummaryReporter) renderFixerTable(usage map[string]int) {
	if len(usage) == 0 {
		return
	}

	separator := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))

	fmt.Fprintln(r.out, r.styles.Bold.Render("Fixers"))
	fmt.Fprintln(r.out, separator)
	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(runewidth.FillRight("Fixer", fixerColWidth)),
		r.styles.TableHeader.Render(runewidth.FillLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.out, separator)

	names := slices.SortedFunc(maps.Keys(usage), func(a, b string) int {
		if c := cmp.Compare(usage[b], usage[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, name := range names {
		fmt.Fprintf(r.out, "%s %s\n",
			runewidth.FillRight(runewidth.Truncate(name, fixerColWidth, "…"), fixerColWidth),
			runewidth.FillLeft(strconv.Itoa(usage[name]), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderFileTable(result *runner.Result) {
	separator := r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth))

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	fmt.Fprintln(r.out, separator)
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(runewidth.FillRight("File", fileColWidth)),
		r.styles.TableHeader.Render(runewidth.FillLeft("Fixers", numColWidth)),
		r.styles.TableHeader.Render(runewidth.FillLeft("Passes", numColWidth)),
	)
	fmt.Fprintln(r.out, separator)

	for _, file := range result.Files {
		status := pretty.OutcomeStatus(file)
		if status == pretty.StatusClean || status == pretty.StatusCached {
			continue
		}

		path := r.opts.displayPath(file.Path)
		if w := runewidth.StringWidth(path); w > maxFilePathLength {
			path = runewidth.TruncateLeft(path, w-maxFilePathLength+1, "…")
		}

		// Pad first, then style.
		padded := runewidth.FillRight(path, fileColWidth)
		switch status {
		case pretty.StatusError:
			padded = r.styles.TableErrorRow.Render(padded)
		case pretty.StatusUnstable, pretty.StatusSkipped:
			padded = r.styles.TableUnstableRow.Render(padded)
		default:
			padded = r.styles.TableChangedRow.Render(padded)
		}

		fixers, passes := "-", "-"
		if file.Result != nil && file.Result.Result != nil {
			fixers = strconv.Itoa(len(file.Result.Applied))
			passes = strconv.Itoa(file.Result.Passes)
		}
		fmt.Fprintf(r.out, "%s %s %s\n",
			padded,
			runewidth.FillLeft(fixers, numColWidth),
			runewidth.FillLeft(passes, numColWidth),
		)
	}
}
