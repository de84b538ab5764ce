package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gophpfix/internal/logging"
	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/fsutil"
)

// Runner fixes files through a shared pipeline.
type Runner struct {
	Pipeline *engine.Pipeline
}

// New returns a Runner using pipeline.
func New(pipeline *engine.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files opts selects and fixes them in parallel, at most
// opts.Jobs at a time. A failing file is recorded in its outcome and does
// not stop the others; only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	pipelines := newPipelineSet(r.Pipeline, opts.PathRules, workDir)

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.processOne(groupCtx, path, pipelines, opts)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) processOne(ctx context.Context, path string, pipelines *pipelineSet, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := logging.ForFile(ctx, path)

	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		r.forget(opts, path)
		return outcome
	}

	if opts.Cache != nil && opts.Cache.IsClean(path, info.Digest()) {
		logger.Debug("unchanged since last run")
		outcome.Cached = true
		return outcome
	}

	pipelineOpts := opts.Pipeline
	if opts.Whitespace != nil {
		pipelineOpts.Whitespace = opts.Whitespace(path)
	}

	pipeline, skipped := pipelines.forPath(path)
	if len(skipped) > 0 {
		logger.Debug("fixers skipped for path", logging.FieldFixers, skipped)
	}

	pr, err := pipeline.ProcessSnapshot(ctx, original, info, pipelineOpts)
	if err != nil {
		logger.Error("file failed", logging.FieldError, err)
		outcome.Error = err
		r.forget(opts, path)
		return outcome
	}
	outcome.Result = pr
	r.record(opts, pr, info)

	if pr.Modified {
		logger.Debug("file changed",
			logging.FieldFixers, pr.Applied,
			logging.FieldPass, pr.Passes)
	}
	return outcome
}

// record updates the cache with content known to need no fixing.
func (r *Runner) record(opts Options, pr *engine.PipelineResult, info *fsutil.FileInfo) {
	if opts.Cache == nil {
		return
	}
	switch {
	case pr.Skipped, pr.IsUnstable():
		opts.Cache.Forget(info.Path)
	case pr.Written:
		opts.Cache.MarkClean(info.Path, fsutil.HashContent(pr.ModifiedContent))
	case !pr.Modified:
		opts.Cache.MarkClean(info.Path, info.Digest())
	default:
		opts.Cache.Forget(info.Path)
	}
}

func (r *Runner) forget(opts Options, path string) {
	if opts.Cache != nil {
		opts.Cache.Forget(path)
	}
}
