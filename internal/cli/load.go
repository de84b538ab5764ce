package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/cache"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for cmd, with cliCfg as the flag
// layer. It returns the load result and the working directory.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}
	if cliCfg != nil {
		noCache, err := cmd.Flags().GetBool(flagNoCache)
		if err != nil {
			return nil, "", fmt.Errorf("get no-cache flag: %w", err)
		}
		cliCfg.NoCache = cliCfg.NoCache || noCache
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult, workDir, nil
}

// openCache opens the changed-files cache for a run with fixers, or returns
// nil when caching is off. A cache that cannot be opened is logged and
// skipped; it never fails the run.
func openCache(
	ctx context.Context,
	loaded *configloader.LoadResult,
	fixers []fixer.Fixer,
	fallback fixer.Whitespace,
	version string,
) *cache.Cache {
	cfg := loaded.Config
	if !cfg.UseCache() {
		return nil
	}
	logger := logging.FromContext(ctx)

	path := cfg.Cache.Path
	if path == "" {
		path = config.DefaultCacheFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(loaded.BaseDir, path)
	}

	signature, err := cacheSignature(cfg, fixers, fallback, version)
	if err != nil {
		logger.Warn("cache disabled", logging.FieldError, err)
		return nil
	}

	fileCache, err := cache.Open(path, signature)
	if err != nil {
		logger.Warn("cache disabled", logging.FieldPath, path, logging.FieldError, err)
		return nil
	}
	if fileCache.Invalidated != "" {
		logger.Debug("cache invalidated", logging.FieldPath, path, logging.FieldReason, fileCache.Invalidated)
	}
	return fileCache
}

func cacheSignature(cfg *config.Config, fixers []fixer.Fixer, ws fixer.Whitespace, version string) (string, error) {
	rules, err := configloader.EffectiveRules(cfg)
	if err != nil {
		return "", err
	}
	entries := make(map[string]cache.RuleEntry, len(rules))
	for name, value := range rules {
		entries[name] = cache.RuleEntry{Enabled: value.Enabled, Options: value.Options}
	}

	sig := cache.Signature{
		Version:      version,
		Fixers:       fixer.Names(fixers),
		Rules:        entries,
		RiskyAllowed: cfg.RiskyAllowed,
		Indent:       ws.Indent,
		LineEnding:   ws.LineEnding,
		MaxPasses:    cfg.MaxPasses,
		Skip:         cfg.Skip,
		Only:         cfg.Only,
	}
	return sig.Digest()
}
