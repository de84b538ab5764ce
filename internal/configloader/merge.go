package configloader

import (
	"maps"

	"github.com/yaklabco/gophpfix/pkg/config"
)

// merge lays the CLI layer over base. Zero values in override mean "flag
// not given": non-empty strings and slices, non-zero numbers and true
// booleans win. Rules merge by key.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Parallel.Jobs != 0 {
		result.Parallel.Jobs = override.Parallel.Jobs
	}
	if override.MaxPasses != 0 {
		result.MaxPasses = override.MaxPasses
	}
	if override.Cache.Path != "" {
		result.Cache.Path = override.Cache.Path
	}

	if override.RiskyAllowed {
		result.RiskyAllowed = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoCache {
		result.NoCache = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.ShowDiff {
		result.ShowDiff = true
	}

	if override.Paths != nil {
		result.Paths = override.Paths
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.RuleFilter != nil {
		result.RuleFilter = override.RuleFilter
	}

	result.Skip = mergePatterns(result.Skip, override.Skip)
	result.Only = mergePatterns(result.Only, override.Only)

	if len(override.Rules) > 0 {
		if result.Rules == nil {
			result.Rules = make(map[string]config.RuleConfig, len(override.Rules))
		}
		maps.Copy(result.Rules, override.Rules)
	}

	return result
}

// mergePatterns replaces base entries with override entries by fixer name.
func mergePatterns(base, override map[string][]string) map[string][]string {
	if len(override) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string][]string, len(override))
	}
	maps.Copy(base, override)
	return base
}

// MergeAll lays configs over each other, later ones winning.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, c := range configs {
		result = merge(result, c)
	}
	return result
}
