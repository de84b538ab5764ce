package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/internal/ui/pretty"
)

// helpColumnGap separates a flag or command name from its description.
const helpColumnGap = 3

type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	name    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, name: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders command help with headings, aligned two-column
// listings and, for the root command, the environment variables read by
// the config loader.
type HelpFormatter struct {
	styles helpStyles
	help   *template.Template
	usage  *template.Template
}

// NewHelpFormatter returns a formatter coloring output per colorMode when
// writer is a terminal.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
	funcs := template.FuncMap{
		"heading":     h.styles.heading.Render,
		"command":     h.styles.command.Render,
		"dim":         h.styles.dim.Render,
		"commands":    h.commands,
		"flags":       h.flags,
		"environment": h.environment,
		"join":        strings.Join,
		"trimRight":   trimTrailingSpace,
	}
	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate + usageTemplate))
	return h
}

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}`

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]
{{- end}}
{{- if .Aliases}}

{{heading "Aliases:"}}
  {{join .Aliases ", "}}
{{- end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}
{{commands .}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}
{{- end}}
{{- if not .HasParent}}

{{heading "Environment:"}}
{{environment}}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
{{- end}}
`

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) commands(cmd *cobra.Command) string {
	var rows [][2]string
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			rows = append(rows, [2]string{sub.Name(), sub.Short})
		}
	}
	return h.columns(rows)
}

func (h *HelpFormatter) flags(set *pflag.FlagSet) string {
	var rows [][2]string
	set.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		varName, usage := pflag.UnquoteUsage(flag)

		name := "    --" + flag.Name
		if flag.Shorthand != "" {
			name = "-" + flag.Shorthand + ", --" + flag.Name
		}
		if varName != "" {
			name += " " + varName
		}
		switch flag.DefValue {
		case "", "false", "0", "[]":
		default:
			usage += " (default " + flag.DefValue + ")"
		}
		rows = append(rows, [2]string{name, usage})
	})
	return h.columns(rows)
}

// environment lists the GOPHPFIX_* variables the config loader reads.
func (h *HelpFormatter) environment() string {
	descriptions := configloader.ListEnvVars()
	names := configloader.EnvVarNames()
	rows := make([][2]string, len(names))
	for i, name := range names {
		rows[i] = [2]string{name, descriptions[name]}
	}
	return h.columns(rows)
}

// columns aligns rows of name and description, measuring in display cells.
func (h *HelpFormatter) columns(rows [][2]string) string {
	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		padded := runewidth.FillRight(row[0], width+helpColumnGap)
		lines[i] = "  " + h.styles.name.Render(padded) + row[1]
	}
	return strings.Join(lines, "\n")
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
