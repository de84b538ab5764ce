package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/configloader"
	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/cache"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/fix"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	_ "github.com/yaklabco/gophpfix/pkg/fixer/rules" // Register built-in fixers
	"github.com/yaklabco/gophpfix/pkg/reporter"
	"github.com/yaklabco/gophpfix/pkg/runner"
	"github.com/yaklabco/gophpfix/pkg/snippet"
)

type fixFlags struct {
	dryRun         bool
	diff           bool
	fullDiff       bool
	rules          []string
	allowRisky     bool
	format         string
	jobs           int
	backup         bool
	noBackups      bool
	verbose        bool
	compact        bool
	maxPasses      int
	exclude        []string
	followSymlinks bool
}

func newFixCommand(info BuildInfo) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix PHP files in place",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags, info, runMode{})
		},
	}

	addFixFlags(cmd, flags, false)

	return cmd
}

const fixLongDescription = `Fix PHP files in place.

By default, fixes all .php files below the current directory using the
rules of the nearest .gophpfix.yml, or the @Recommended set when there is
none. Specify paths to fix specific files or directories.

Examples:
  gophpfix fix                          # Fix current directory
  gophpfix fix src/                     # Fix src directory
  gophpfix fix --dry-run                # Show what would change
  gophpfix fix --diff                   # Fix and print the applied diff
  gophpfix fix --rules @Base,-lowercase_keywords
  gophpfix fix --allow-risky --rules @Risky
  gophpfix fix --format json            # Output as JSON for CI`

func newCheckCommand(info BuildInfo) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files that need fixing without changing them",
		Long: `Report files that need fixing without changing them.

check is fix --dry-run: nothing is written and the exit code is 1 when any
file would change, which makes it suitable for CI.

Examples:
  gophpfix check                  # Check current directory
  gophpfix check --format diff    # Show the changes that fix would make
  gophpfix check --format sarif   # Output SARIF for code scanning`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags, info, runMode{check: true})
		},
	}

	addFixFlags(cmd, flags, true)

	return cmd
}

// cliConfig maps flags onto the CLI configuration layer. Only flags that
// were given override lower layers.
func (f *fixFlags) cliConfig(cmd *cobra.Command, check bool) *config.Config {
	cfg := &config.Config{
		DryRun:       f.dryRun || check,
		RiskyAllowed: f.allowRisky,
		MaxPasses:    f.maxPasses,
		Parallel:     config.ParallelConfig{Jobs: f.jobs},
		Backups:      config.BackupsConfig{Enabled: f.backup},
		NoBackups:    f.noBackups,
		ShowDiff:     f.diff || f.fullDiff,
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("rules") {
		cfg.RuleFilter = f.rules
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	return cfg
}

// runMode selects between the fix commands.
type runMode struct {
	// check never writes.
	check bool

	// markdown fixes PHP blocks in Markdown files instead of PHP files.
	markdown bool
}

func runFix(cmd *cobra.Command, args []string, flags *fixFlags, info BuildInfo, mode runMode) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	loaded, workDir, err := loadConfig(cmd, flags.cliConfig(cmd, mode.check))
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger.Debug("configuration loaded",
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldAllowRisky, cfg.RiskyAllowed,
		logging.FieldJobs, cfg.Parallel.Jobs,
		logging.FieldMaxPasses, cfg.MaxPasses,
	)

	registry := fixer.DefaultRegistry
	fixers, err := configloader.ResolveFixers(cfg, registry)
	if err != nil {
		return err
	}
	// Create the engine.
	fixEngine := engine.New(fixers)
	fixEngine.MaxPasses = cfg.MaxPasses
	logger.Debug("resolved fixers", logging.FieldFixers, fixEngine.FixerNames())
	if logger.GetLevel() <= log.DebugLevel {
		fixEngine.OnTransition = func(path string, pass int, from, to engine.State) {
			logger.Debug("transition",
				logging.FieldPath, path,
				logging.FieldPass, pass,
				logging.FieldFrom, from.String(),
				logging.FieldTo, to.String(),
			)
		}
	}

	format, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	whitespace := configloader.NewWhitespaceResolver(cfg.Whitespace)
	pipeline := engine.NewPipeline(fixEngine)
	extensions, scripts := cfg.Extensions, cfg.Scripts

	// The cache only records PHP files.
	var fileCache *cache.Cache
	if mode.markdown {
		pipeline.Snippets = snippet.New()
		extensions, scripts = snippet.Extensions(), false
	} else {
		fileCache = openCache(ctx, loaded, fixers, whitespace.Fallback(), info.Version)
	}

	diffContext := fix.DefaultContext
	if flags.fullDiff {
		diffContext = fix.FullContext
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Paths
	}

	runOpts := runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     extensions,
		Scripts:        scripts,
		ExcludeGlobs:   cfg.Exclude,
		PathRules:      runner.PathRules{Skip: cfg.Skip, Only: cfg.Only},
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Parallel.Jobs,
		Pipeline: engine.PipelineOptions{
			DryRun:              cfg.DryRun,
			DiffContext:         diffContext,
			ComputeDiff:         cfg.ShowDiff || format == reporter.FormatDiff,
			Backup:              cfg.UseBackups(),
			StrictRaceDetection: true,
		},
		Whitespace: whitespace.For,
		Cache:      fileCache,
	}

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldCache, fileCache != nil,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("fix run failed: %w", err)
	}

	if fileCache != nil {
		if err := fileCache.Save(ctx); err != nil {
			logger.Warn("save cache", logging.FieldPath, fileCache.Path(), logging.FieldError, err)
		}
	}

	logger.Debug("fix run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesFixed, result.Stats.FilesChanged,
		logging.FieldFilesCached, result.Stats.FilesCached,
		logging.FieldFilesUnstable, result.Stats.FilesUnstable,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:            cmd.OutOrStdout(),
		ErrorWriter:       cmd.ErrOrStderr(),
		Format:            format,
		Color:             colorMode,
		ShowSummary:       true,
		Verbose:           flags.verbose,
		DryRun:            cfg.DryRun,
		Compact:           flags.compact,
		WorkingDir:        workDir,
		ToolVersion:       info.Version,
		FixerDescriptions: fixerDescriptions(registry),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, cfg.DryRun) {
	case ExitRuntimeError:
		return ErrFilesFailed
	case ExitChangesNeeded:
		return ErrChangesNeeded
	default:
		return nil
	}
}

// outputFormat picks the reporter format. --diff selects the diff format
// unless a format was chosen explicitly.
func outputFormat(cfg *config.Config) (reporter.Format, error) {
	name := string(cfg.Format)
	if cfg.ShowDiff && (cfg.Format == "" || cfg.Format == config.FormatText) {
		name = string(config.FormatDiff)
	}
	format, err := reporter.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return format, nil
}

func fixerDescriptions(registry *fixer.Registry) map[string]string {
	fixers := registry.Fixers()
	out := make(map[string]string, len(fixers))
	for _, f := range fixers {
		out[f.Name()] = f.Description()
	}
	return out
}

func addFixFlags(cmd *cobra.Command, flags *fixFlags, check bool) {
	if !check {
		cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "report changes without writing them")
		cmd.Flags().BoolVar(&flags.backup, "backup", false, "write a .gophpfix.bak copy before changing a file")
		cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "never write backups, even when configured")
	}
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff of every changed file")
	cmd.Flags().BoolVar(&flags.fullDiff, "full-diff", false, "like --diff, with the whole file as context")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil,
		`rules to run instead of the configured ones, e.g. "@Base,-lowercase_keywords"`)
	cmd.Flags().BoolVar(&flags.allowRisky, "allow-risky", false, "allow fixers that may change behavior")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, diff, summary")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of files fixed in parallel (0 = auto)")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", 0, "fix passes per file before giving up (0 = configured)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to exclude")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "show pass counts and clean files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
}
