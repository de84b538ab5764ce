package runner

import (
	"errors"

	"github.com/yaklabco/gophpfix/pkg/engine"
)

// FileOutcome is what happened to one file.
type FileOutcome struct {
	Path string

	// Result is nil when the file was served from the cache or failed.
	Result *engine.PipelineResult

	// Cached is set when the cache recorded the file as already clean.
	Cached bool

	Error error
}

// Changed reports whether the file was, or in dry-run would be, rewritten.
func (o FileOutcome) Changed() bool {
	return o.Result != nil && o.Result.Modified && !o.Result.Skipped
}

// FixerError returns the fixer fault behind Error, if any.
func (o FileOutcome) FixerError() (*engine.FixerError, bool) {
	var fe *engine.FixerError
	if errors.As(o.Error, &fe) {
		return fe, true
	}
	return nil, false
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesCached     int
	FilesSkipped    int
	FilesErrored    int

	// FilesChanged counts files whose content differs after fixing, written
	// or not.
	FilesChanged int

	FilesWritten  int
	FilesUnstable int
	Backups       int

	// FixerUsage counts, per fixer, the files it changed.
	FixerUsage map[string]int
}

// Result is the outcome of a run. Files are sorted by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasChanges reports whether any file needed fixing.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasUnstable reports whether any file hit the pass cap.
func (r *Result) HasUnstable() bool {
	return r != nil && r.Stats.FilesUnstable > 0
}

func newStats() Stats {
	return Stats{FixerUsage: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Cached:
		r.Stats.FilesCached++
		return
	case outcome.Result == nil:
		return
	}

	pr := outcome.Result
	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Changed() {
		r.Stats.FilesChanged++
	}
	if pr.Written {
		r.Stats.FilesWritten++
	}
	if pr.BackupCreated {
		r.Stats.Backups++
	}
	if pr.IsUnstable() {
		r.Stats.FilesUnstable++
	}
	if pr.Result != nil && pr.Changed {
		for _, name := range pr.Applied {
			r.Stats.FixerUsage[name]++
		}
	}
}
