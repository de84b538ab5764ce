package pretty

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "Fixed 3 files, 1 unstable (12 files checked, 2 cached)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	checked := stats.FilesProcessed + stats.FilesCached
	detail := fmt.Sprintf("%d %s checked", checked, plural(checked, wordFile, wordFiles))
	if stats.FilesCached > 0 {
		detail += fmt.Sprintf(", %d cached", stats.FilesCached)
	}

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("No changes needed"))
	case dryRun:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s need fixing",
			stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles))))
	default:
		parts = append(parts, s.Success.Render(fmt.Sprintf("Fixed %d %s",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles))))
	}
	if stats.FilesUnstable > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d unstable", stats.FilesUnstable)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + s.Dim.Render(" ("+detail+")") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool) string {
	var builder strings.Builder

	line := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	line("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed+stats.FilesCached)))
	if stats.FilesCached > 0 {
		line("From cache", s.Dim.Render(strconv.Itoa(stats.FilesCached)))
	}
	if dryRun {
		line("Need fixing", s.Failure.Render(strconv.Itoa(stats.FilesChanged)))
	} else {
		line("Files fixed", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
	}
	if stats.Backups > 0 {
		line("Backups", s.SummaryValue.Render(strconv.Itoa(stats.Backups)))
	}
	if stats.FilesUnstable > 0 {
		line("Unstable", s.Warning.Render(strconv.Itoa(stats.FilesUnstable)))
	}
	if stats.FilesSkipped > 0 {
		line("Skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		line("Failed", s.Error.Render(strconv.Itoa(stats.FilesErrored)))
	}

	if len(stats.FixerUsage) > 0 {
		builder.WriteString("\n")
		builder.WriteString("  " + s.Bold.Render("Fixers") + "\n")
		for _, name := range sortedUsage(stats.FixerUsage) {
			n := stats.FixerUsage[name]
			fmt.Fprintf(&builder, "    %-32s%s\n", name, s.SummaryValue.Render(
				fmt.Sprintf("%d %s", n, plural(n, wordFile, wordFiles))))
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Fixing failed for some files"))
	case stats.FilesUnstable > 0:
		builder.WriteString(s.Warning.Render("Some files did not converge"))
	case dryRun && stats.FilesChanged > 0:
		builder.WriteString(s.Failure.Render("Changes needed"))
	default:
		builder.WriteString(s.Success.Render("All files are clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// sortedUsage orders fixer names by file count, highest first, then name.
func sortedUsage(usage map[string]int) []string {
	return slices.SortedFunc(maps.Keys(usage), func(a, b string) int {
		if c := cmp.Compare(usage[b], usage[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
