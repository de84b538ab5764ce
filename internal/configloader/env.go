package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
)

// EnvPrefix starts every environment variable the loader reads.
const EnvPrefix = "GOPHPFIX_"

// envVar binds one variable (without prefix) to a config field.
type envVar struct {
	name        string
	description string
	apply       func(cfg *config.Config, value string) error
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, splitList(value))
		return nil
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"RISKY_ALLOWED", "Allow risky fixers: true or false",
		boolVar(func(c *config.Config, v bool) { c.RiskyAllowed = v })},
	{"DRY_RUN", "Report changes without writing: true or false",
		boolVar(func(c *config.Config, v bool) { c.DryRun = v })},
	{"FORMAT", "Output format: text, table, json, diff, summary or sarif",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"JOBS", "Number of files fixed in parallel (0 = auto)",
		intVar(func(c *config.Config, v int) { c.Parallel.Jobs = v })},
	{"MAX_PASSES", "Fix passes per file before giving up",
		intVar(func(c *config.Config, v int) { c.MaxPasses = v })},
	{"EXCLUDE", "Comma-separated exclude patterns",
		listVar(func(c *config.Config, v []string) { c.Exclude = v })},
	{"EXTENSIONS", "Comma-separated file extensions",
		listVar(func(c *config.Config, v []string) { c.Extensions = v })},
	{"SCRIPTS", "Also fix extensionless php scripts: true or false",
		boolVar(func(c *config.Config, v bool) { c.Scripts = v })},
	{"RULES", "Comma-separated rule list overriding the configured rules",
		listVar(func(c *config.Config, v []string) { c.RuleFilter = v })},
	{"CACHE_ENABLED", "Use the changed-files cache: true or false",
		boolVar(func(c *config.Config, v bool) { c.Cache.Enabled = v })},
	{"CACHE_PATH", "Changed-files cache location",
		stringVar(func(c *config.Config, v string) { c.Cache.Path = v })},
	{"NO_CACHE", "Ignore the changed-files cache: true or false",
		boolVar(func(c *config.Config, v bool) { c.NoCache = v })},
	{"BACKUPS_ENABLED", "Write .gophpfix.bak files before fixing: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"INDENT", "Fallback indentation, e.g. four spaces or a tab",
		stringVar(func(c *config.Config, v string) { c.Whitespace.Indent = unescape(v) })},
	{"LINE_ENDING", `Fallback line ending: "\n" or "\r\n"`,
		stringVar(func(c *config.Config, v string) { c.Whitespace.LineEnding = unescape(v) })},
}

// LoadFromEnv applies GOPHPFIX_* variables to cfg. Empty variables are
// ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		value := os.Getenv(EnvPrefix + v.name)
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, v.name, err)
		}
	}
	return nil
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[EnvPrefix+v.name] = v.description
	}
	return out
}

// EnvVarNames returns the supported variables in a stable order.
func EnvVarNames() []string {
	names := make([]string, len(envVars))
	for i, v := range envVars {
		names[i] = EnvPrefix + v.name
	}
	slices.Sort(names)
	return names
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// unescape turns the two-character sequences \t, \n and \r into the
// characters they name, so whitespace can be given in a shell.
func unescape(value string) string {
	return strings.NewReplacer(`\t`, "\t", `\n`, "\n", `\r`, "\r").Replace(value)
}
