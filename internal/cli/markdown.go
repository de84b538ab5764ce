package cli

import "github.com/spf13/cobra"

func newFixMarkdownCommand(info BuildInfo) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix-markdown [paths...]",
		Short: "Fix PHP code blocks in Markdown files",
		Long: `Fix PHP code blocks in Markdown files.

Every fenced block tagged php in the .md and .markdown files below the
given paths is fixed with the configured rules; the rest of the document
is left as is. A block without an opening tag is fixed as if it had one.
Blocks nested in lists or block quotes are skipped.

Examples:
  gophpfix fix-markdown               # Fix README.md, docs/ and so on
  gophpfix fix-markdown docs/ --diff  # Fix and print the applied diff`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags, info, runMode{markdown: true})
		},
	}

	addFixFlags(cmd, flags, false)

	return cmd
}

func newCheckMarkdownCommand(info BuildInfo) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "check-markdown [paths...]",
		Short: "Report Markdown files whose PHP code blocks need fixing",
		Long: `Report Markdown files whose PHP code blocks need fixing.

check-markdown is fix-markdown --dry-run: nothing is written and the exit
code is 1 when any block would change.

Examples:
  gophpfix check-markdown
  gophpfix check-markdown README.md --format diff`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags, info, runMode{check: true, markdown: true})
		},
	}

	addFixFlags(cmd, flags, true)

	return cmd
}
