package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gophpfix configuration file",
		Long: `Create a new .gophpfix.yml configuration file in the current directory
enabling the @Recommended rule set. The file can be customized to enable or
disable fixers, configure their options and exclude paths.

Examples:
  gophpfix init                      Create a minimal .gophpfix.yml
  gophpfix init --full               List every fixer and its options
  gophpfix init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags, isInteractive(cmd.InOrStdin()))
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all fixers documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gophpfix.yml)")

	return cmd
}

// isInteractive reports whether in is a terminal a prompt can be read from.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runInit(cmd *cobra.Command, flags *initFlags, interactive bool) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	outputPath := flags.output
	if outputPath == "" {
		outputPath = config.DefaultConfigFile
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	force := flags.force
	if _, err := os.Stat(absPath); err == nil && !force {
		if !interactive {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s exists. Overwrite?", outputPath)) {
			logger.Info("left existing configuration untouched", logging.FieldPath, outputPath)
			return nil
		}
		force = true
	}

	content, err := config.GenerateTemplate(templateOptions(fixer.DefaultRegistry, flags.full))
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(absPath, content, force); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template lists every fixer with its options")
	}
	logger.Info("run 'gophpfix rules' to see all available fixers")

	return nil
}

// templateOptions describes the registry for GenerateTemplate.
func templateOptions(registry *fixer.Registry, full bool) config.TemplateOptions {
	opts := config.TemplateOptions{Full: full}
	for _, f := range registry.Fixers() {
		info := fixer.Describe(f)
		rule := config.RuleInfo{Name: info.Name, Description: info.Description, Risky: info.Risky}
		if len(info.Options) > 0 {
			rule.Options = make(map[string]any, len(info.Options))
			for _, opt := range info.Options {
				rule.Options[opt.Name] = opt.Default
			}
		}
		opts.Rules = append(opts.Rules, rule)
	}
	for _, set := range registry.Sets() {
		opts.Sets = append(opts.Sets, config.SetInfo{Name: set.Name, Description: set.Description})
	}
	return opts
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
