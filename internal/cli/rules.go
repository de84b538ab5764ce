package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

type rulesFlags struct {
	format string
	set    string
}

const formatJSON = "json"

// setInfo represents a rule set in JSON output.
type setInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fixers      []string `json:"fixers"`
}

// rulesOutput is the JSON document printed by rules --format json.
type rulesOutput struct {
	Fixers []fixer.Info `json:"fixers"`
	Sets   []setInfo    `json:"sets,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available fixers and rule sets",
		Long: `List all available fixers with their priority, whether they are risky
and whether they accept options, followed by the built-in rule sets.

Examples:
  gophpfix rules                     # List fixers and sets
  gophpfix rules --set @Recommended  # List the fixers a set enables
  gophpfix rules --format json       # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), fixer.DefaultRegistry, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.set, "set", "", "only list the fixers enabled by this rule set")

	return cmd
}

func runRules(out io.Writer, registry *fixer.Registry, flags *rulesFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}

	fixers := registry.Fixers()
	var sets []fixer.RuleSet
	if flags.set != "" {
		names, err := setFixers(registry, flags.set)
		if err != nil {
			return err
		}
		fixers = fixers[:0]
		for _, name := range names {
			if f, ok := registry.Get(name); ok {
				fixers = append(fixers, f)
			}
		}
	} else {
		sets = registry.Sets()
	}

	if flags.format == formatJSON {
		return outputRulesJSON(out, registry, fixers, sets)
	}

	logger := logging.NewInteractive(out)
	if len(fixers) == 0 {
		logger.Info("no fixers registered")
		return nil
	}

	logger.Info("available fixers")
	for _, f := range fixers {
		info := fixer.Describe(f)
		fields := []any{
			logging.FieldPriority, info.Priority,
			logging.FieldRisky, info.Risky,
			logging.FieldDescription, info.Description,
		}
		if len(info.Options) > 0 {
			names := make([]string, len(info.Options))
			for i, opt := range info.Options {
				names[i] = opt.Name
			}
			fields = append(fields, logging.FieldOptions, strings.Join(names, ","))
		}
		if len(info.Conflicts) > 0 {
			fields = append(fields, logging.FieldConflicts, strings.Join(info.Conflicts, ","))
		}
		logger.Info(info.Name, fields...)
	}

	if len(sets) > 0 {
		logger.Info("rule sets")
		for _, set := range sets {
			logger.Info(set.Name, logging.FieldDescription, set.Description)
		}
	}

	return nil
}

// setFixers returns the enabled fixers of the named set, sorted by name.
func setFixers(registry *fixer.Registry, name string) ([]string, error) {
	if !fixer.IsSetName(name) {
		return nil, fmt.Errorf("%w: %q is not a rule set name; sets start with @", ErrUsage, name)
	}
	flat, err := registry.Expand(fixer.Rules{name: fixer.Enable()})
	if err != nil {
		return nil, err
	}
	var names []string
	for fixerName, value := range flat {
		if value.Enabled {
			names = append(names, fixerName)
		}
	}
	slices.Sort(names)
	return names, nil
}

// outputRulesJSON writes fixers and sets as one JSON document.
func outputRulesJSON(out io.Writer, registry *fixer.Registry, fixers []fixer.Fixer, sets []fixer.RuleSet) error {
	doc := rulesOutput{Fixers: make([]fixer.Info, 0, len(fixers))}
	for _, f := range fixers {
		doc.Fixers = append(doc.Fixers, fixer.Describe(f))
	}
	for _, set := range sets {
		names, err := setFixers(registry, set.Name)
		if err != nil {
			return err
		}
		doc.Sets = append(doc.Sets, setInfo{Name: set.Name, Description: set.Description, Fixers: names})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
