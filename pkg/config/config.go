// Package config defines the gophpfix configuration types.
// These are plain data; loading, merging and validation live in the loader.
package config

// Defaults shared by the loader and the CLI.
const (
	DefaultConfigFile = ".gophpfix.yml"
	DefaultCacheFile  = ".gophpfix.cache"
	DefaultMaxPasses  = 10
)

// DefaultExtensions are the file extensions fixed when none are configured.
func DefaultExtensions() []string {
	return []string{".php"}
}

// DefaultRules enables the recommended set.
func DefaultRules() map[string]RuleConfig {
	return map[string]RuleConfig{"@Recommended": {Enabled: true}}
}

// RuleConfig is one entry of the rules mapping. In YAML it is either a
// boolean or a mapping of fixer options, which also enables the fixer.
type RuleConfig struct {
	Enabled bool

	// Options is nil for a boolean entry. An explicit empty mapping decodes
	// to a non-nil empty map, which validation rejects.
	Options map[string]any
}

// CacheConfig controls the changed-files cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// BackupsConfig controls sidecar backups written before a file is fixed.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WhitespaceConfig is the fallback indentation and line ending for files
// that no .editorconfig section covers.
type WhitespaceConfig struct {
	Indent     string `yaml:"indent"`
	LineEnding string `yaml:"line_ending"`
}

// ParallelConfig controls the worker pool.
type ParallelConfig struct {
	// Jobs is the number of files fixed at once; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`
}

// OutputFormat selects a reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
	FormatSARIF   OutputFormat = "sarif"
)

// Formats lists the accepted output formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary, FormatSARIF}
}

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary, FormatSARIF:
		return true
	default:
		return false
	}
}

// Config is the root configuration.
type Config struct {
	// Rules maps fixer names and "@Set" references to their setting.
	Rules map[string]RuleConfig `yaml:"rules"`

	// RiskyAllowed permits fixers that may change program behavior.
	RiskyAllowed bool `yaml:"risky_allowed"`

	// Paths are fixed when the command line names none.
	Paths []string `yaml:"paths,omitempty"`

	// Exclude holds doublestar patterns matched against slash paths
	// relative to the working directory.
	Exclude []string `yaml:"exclude,omitempty"`

	// Extensions selects files during directory walks.
	Extensions []string `yaml:"extensions,omitempty"`

	// Scripts also selects extensionless files whose shebang names php.
	Scripts bool `yaml:"scripts,omitempty"`

	// Skip maps a fixer name to patterns of paths it must not touch.
	Skip map[string][]string `yaml:"skip,omitempty"`

	// Only maps a fixer name to the patterns of the only paths it runs on.
	Only map[string][]string `yaml:"only,omitempty"`

	Cache      CacheConfig      `yaml:"cache"`
	Backups    BackupsConfig    `yaml:"backups"`
	Whitespace WhitespaceConfig `yaml:"whitespace"`

	// MaxPasses caps the fix passes per file.
	MaxPasses int `yaml:"max_passes"`

	Parallel ParallelConfig `yaml:"parallel"`

	// CLI-only options.

	DryRun     bool         `yaml:"-"`
	Format     OutputFormat `yaml:"-"`
	NoCache    bool         `yaml:"-"`
	NoBackups  bool         `yaml:"-"`
	ShowDiff   bool         `yaml:"-"`
	RuleFilter []string     `yaml:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      DefaultRules(),
		Extensions: DefaultExtensions(),
		Cache:      CacheConfig{Enabled: true, Path: DefaultCacheFile},
		Whitespace: WhitespaceConfig{Indent: "    ", LineEnding: "\n"},
		MaxPasses:  DefaultMaxPasses,
		Format:     FormatText,
	}
}

// UseCache reports whether the changed-files cache applies to this run.
// Dry runs read the cache but the caller decides whether to save it.
func (c *Config) UseCache() bool {
	return c.Cache.Enabled && !c.NoCache
}

// UseBackups reports whether backups are written before fixing.
func (c *Config) UseBackups() bool {
	return c.Backups.Enabled && !c.NoBackups
}
