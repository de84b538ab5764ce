package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
	"github.com/yaklabco/gophpfix/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file that changed, failed, was skipped or did not
// converge. Clean files appear only in verbose output.
type JSONFileResult struct {
	Path          string   `json:"path"`
	Status        string   `json:"status"`
	AppliedFixers []string `json:"appliedFixers,omitempty"`
	Passes        int      `json:"passes,omitempty"`
	StillChanging []string `json:"stillChanging,omitempty"`
	Diff          string   `json:"diff,omitempty"`
	SkipReason    string   `json:"skipReason,omitempty"`
	Error         string   `json:"error,omitempty"`
	FailedFixer   string   `json:"failedFixer,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked  int            `json:"filesChecked"`
	FilesCached   int            `json:"filesCached"`
	FilesChanged  int            `json:"filesChanged"`
	FilesWritten  int            `json:"filesWritten"`
	FilesUnstable int            `json:"filesUnstable"`
	FilesSkipped  int            `json:"filesSkipped"`
	FilesErrored  int            `json:"filesErrored"`
	FixerUsage    map[string]int `json:"fixerUsage"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: r.opts.ToolVersion,
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{FixerUsage: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:  stats.FilesProcessed + stats.FilesCached,
		FilesCached:   stats.FilesCached,
		FilesChanged:  stats.FilesChanged,
		FilesWritten:  stats.FilesWritten,
		FilesUnstable: stats.FilesUnstable,
		FilesSkipped:  stats.FilesSkipped,
		FilesErrored:  stats.FilesErrored,
		FixerUsage:    stats.FixerUsage,
	}
	if output.Summary.FixerUsage == nil {
		output.Summary.FixerUsage = make(map[string]int)
	}

	for _, file := range result.Files {
		status := pretty.OutcomeStatus(file)
		if !r.opts.Verbose && (status == pretty.StatusClean || status == pretty.StatusCached) {
			continue
		}

		entry := JSONFileResult{Path: r.opts.displayPath(file.Path), Status: status}
		if file.Error != nil {
			entry.Error = file.Error.Error()
			if fe, ok := file.FixerError(); ok {
				entry.FailedFixer = fe.Fixer
			}
		}
		if pr := file.Result; pr != nil {
			entry.SkipReason = pr.SkipReason
			if pr.Result != nil {
				entry.AppliedFixers = pr.Applied
				entry.Passes = pr.Passes
				entry.StillChanging = pr.StillChanging
			}
			if pr.Diff != nil && pr.Diff.HasChanges() {
				entry.Diff = pr.Diff.String()
			}
		}
		output.Files = append(output.Files, entry)
	}

	return output
}
