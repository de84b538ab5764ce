package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/gophpfix/pkg/fix"
	"github.com/yaklabco/gophpfix/pkg/fixer"
	"github.com/yaklabco/gophpfix/pkg/fsutil"
)

// Pipeline error categories.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrFixFailure       = errors.New("fix failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of running one file through the pipeline.
type PipelineResult struct {
	// Result is the engine outcome; nil when the file was not fixed.
	*Result

	Path string

	// OriginalInfo is the file snapshot taken before fixing.
	OriginalInfo *fsutil.FileInfo

	// Modified reports whether fixing changed the content.
	Modified bool

	// ModifiedContent holds the fixed content when Modified is set.
	ModifiedContent []byte

	// Diff is set when the content changed, in dry-run mode or when
	// ComputeDiff is on.
	Diff *fix.Diff

	// Skipped is set when the file was left alone; SkipReason says why.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary returns a short status for the file.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	default:
		return "ok"
	}
}

// IsUnstable reports whether the engine gave up before convergence.
func (pr *PipelineResult) IsUnstable() bool {
	return pr.Result != nil && pr.Unstable
}

// PipelineOptions controls how fixed files are written.
type PipelineOptions struct {
	// DryRun computes a diff instead of writing.
	DryRun bool

	// DiffContext is the number of context lines in diffs.
	DiffContext int

	// ComputeDiff also diffs changed files that are written.
	ComputeDiff bool

	// Backup writes a sidecar copy of the original before the first write.
	Backup bool

	// StrictRaceDetection rehashes the file before writing. Otherwise only
	// size and mtime are compared.
	StrictRaceDetection bool

	// Whitespace is the indentation and line ending handed to fixers.
	Whitespace fixer.Whitespace
}

// DefaultPipelineOptions writes in place without backups.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		DiffContext:         fix.DefaultContext,
		StrictRaceDetection: true,
		Whitespace:          fixer.DefaultWhitespace(),
	}
}

// SnippetFixer fixes the PHP code embedded in a document through e and
// returns the whole document as the result's Output.
type SnippetFixer interface {
	FixSnippets(ctx context.Context, e *Engine, in Input) (*Result, error)
}

// Pipeline reads, fixes and safely writes back single files.
type Pipeline struct {
	Engine *Engine

	// Snippets, when set, fixes only the code embedded in each file
	// instead of treating the file as PHP source.
	Snippets SnippetFixer
}

// NewPipeline returns a pipeline driving engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile fixes the file at path.
//
// Steps:
//  1. Read and hash the file.
//  2. Run the engine until the text converges or the pass cap is hit.
//  3. In dry-run mode, diff and stop.
//  4. Skip the file if it changed on disk in the meantime.
//  5. Back up the original when enabled.
//  6. Write the fixed content atomically with the original mode.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	return p.ProcessSnapshot(ctx, original, info, opts)
}

// ProcessSnapshot continues ProcessFile for content already read with
// fsutil.ReadFile. info is used for the modification check, the backup and
// the write.
func (p *Pipeline) ProcessSnapshot(
	ctx context.Context,
	original []byte,
	info *fsutil.FileInfo,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if info == nil {
		return nil, fsutil.ErrNilFileInfo
	}
	path := info.Path

	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info
	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info, !opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, info, original)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent fixes content held in memory. Nothing is written; in
// dry-run mode or with ComputeDiff the result carries a diff.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	in := Input{Path: path, Content: content, Whitespace: opts.Whitespace}
	var (
		res *Result
		err error
	)
	if p.Snippets != nil {
		res, err = p.Snippets.FixSnippets(ctx, p.Engine, in)
	} else {
		res, err = p.Engine.Fix(ctx, in)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFixFailure, err)
	}

	result := &PipelineResult{Path: path, Result: res, Modified: res.Changed}
	if !res.Changed {
		return result, nil
	}
	result.ModifiedContent = res.Output

	if opts.DryRun || opts.ComputeDiff {
		result.Diff = fix.Unified(path, content, res.Output, opts.DiffContext)
	}
	return result, nil
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err belongs to one of the pipeline
// categories.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrFixFailure) ||
		errors.Is(err, ErrWriteFailure)
}
