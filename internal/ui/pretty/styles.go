// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Outcome components
	FilePath lipgloss.Style
	Index    lipgloss.Style
	Fixer    lipgloss.Style
	Message  lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader      lipgloss.Style
	TableChangedRow  lipgloss.Style
	TableUnstableRow lipgloss.Style
	TableErrorRow    lipgloss.Style
	TableLegend      lipgloss.Style
	TableSeparator   lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Index:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Fixer:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:  lipgloss.NewStyle(),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableChangedRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green text
		TableUnstableRow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow text
		TableErrorRow:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red text
		TableLegend:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:            plain,
		Warning:          plain,
		Info:             plain,
		FilePath:         plain,
		Index:            plain,
		Fixer:            plain,
		Message:          plain,
		DiffHeader:       plain,
		DiffHunk:         plain,
		DiffAdd:          plain,
		DiffRemove:       plain,
		DiffContext:      plain,
		SummaryTitle:     plain,
		SummaryValue:     plain,
		Success:          plain,
		Failure:          plain,
		TableHeader:      plain,
		TableChangedRow:  plain,
		TableUnstableRow: plain,
		TableErrorRow:    plain,
		TableLegend:      plain,
		TableSeparator:   plain,
		Dim:              plain,
		Bold:             plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
