package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gophpfix/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, STATUS, PASSES, FIXERS
	minFileWidth     = 20
	minStatusWidth   = 12
	minPassesWidth   = 6
	minFixersWidth   = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	ellipsis         = "..."
	defaultTermWidth = 100
)

// TableRow is one file in the outcome table.
type TableRow struct {
	File   string
	Status string
	Passes int
	Fixers string
}

// TableFormatter formats file outcomes as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int

	// ShowClean also lists files that needed nothing.
	ShowClean bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// Rows converts outcomes to rows; display maps a path to the text shown.
func (t *TableFormatter) Rows(result *runner.Result, display func(string) string) []TableRow {
	if result == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		status := OutcomeStatus(file)
		if !t.ShowClean && (status == StatusClean || status == StatusCached) {
			continue
		}
		row := TableRow{File: display(file.Path), Status: status}
		if file.Result != nil && file.Result.Result != nil {
			row.Passes = file.Result.Passes
			row.Fixers = strings.Join(file.Result.Applied, ", ")
		}
		if file.Error != nil {
			if fe, ok := file.FixerError(); ok {
				row.Fixers = fe.Fixer
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatTable renders rows with a header, separators and a legend.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if i > 0 && row.Status != rows[i-1].Status && t.ShowClean {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file   int
	status int
	passes int
	fixers int
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		status: minStatusWidth,
		passes: minPassesWidth,
		fixers: minFixersWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, runewidth.StringWidth(row.File))
		widths.status = max(widths.status, runewidth.StringWidth(row.Status))
		widths.fixers = max(widths.fixers, runewidth.StringWidth(row.Fixers))
	}

	// Shrink fixers first, then the file column.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.fixers = max(minFixersWidth, widths.fixers-(total-t.termWidth))
	}
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + widths.passes + widths.fixers + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + strings.Join([]string{
		runewidth.FillRight("FILE", widths.file),
		runewidth.FillRight("STATUS", widths.status),
		runewidth.FillLeft("PASSES", widths.passes),
		runewidth.FillRight("FIXERS", widths.fixers),
	}, "  ")
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	passes := ""
	if row.Passes > 0 {
		passes = strconv.Itoa(row.Passes)
	}

	content := " " + strings.Join([]string{
		runewidth.FillRight(truncateFilePath(row.File, widths.file), widths.file),
		runewidth.FillRight(row.Status, widths.status),
		runewidth.FillLeft(passes, widths.passes),
		runewidth.FillRight(truncateString(row.Fixers, widths.fixers), widths.fixers),
	}, "  ")

	return t.rowStyle(row.Status).Render(content)
}

func (t *TableFormatter) rowStyle(status string) lipgloss.Style {
	switch status {
	case StatusFixed, StatusPending:
		return t.styles.TableChangedRow
	case StatusUnstable, StatusSkipped:
		return t.styles.TableUnstableRow
	case StatusError:
		return t.styles.TableErrorRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: PASSES = passes until the text stopped changing")
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s",
		t.styles.TableChangedRow.Render(" changed "),
		t.styles.TableUnstableRow.Render(" unstable or skipped "),
		t.styles.TableErrorRow.Render(" error "),
	))
}

// truncateString cuts str to maxLen display cells, ending in "...".
func truncateString(str string, maxLen int) string {
	return runewidth.Truncate(str, maxLen, ellipsis)
}

// truncateFilePath cuts a path to maxLen display cells, keeping the end.
func truncateFilePath(path string, maxLen int) string {
	width := runewidth.StringWidth(path)
	if width <= maxLen {
		return path
	}
	return runewidth.TruncateLeft(path, width-maxLen+len(ellipsis), ellipsis)
}
