// Package cli provides the Cobra command structure for gophpfix.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names read by subcommands.
const (
	flagConfig  = "config"
	flagDebug   = "debug"
	flagColor   = "color"
	flagNoCache = "no-cache"
)

// NewRootCommand creates the root gophpfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "gophpfix",
		Short: "A token-stream style fixer for PHP",
		Long: `gophpfix rewrites PHP source to a consistent style.

Each file is tokenized, passed through an ordered set of fixers and written
back, repeating until the text stops changing. Fixers never parse the
program; they only rewrite its token stream, so formatting is safe to run on
code that does not compile.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch color {
			case "auto", "always", "never":
			default:
				return fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrUsage, color)
			}
			level := "info"
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().String(flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().Bool(flagNoCache, false, "ignore and do not update the changed-files cache")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newFixCommand(info))
	rootCmd.AddCommand(newCheckCommand(info))
	rootCmd.AddCommand(newFixMarkdownCommand(info))
	rootCmd.AddCommand(newCheckMarkdownCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
