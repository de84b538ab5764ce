// Package reporter renders the outcome of a fix run in several formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gophpfix/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes the result. It returns the number of files that were
	// or would be changed, and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	build, ok := constructors[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return build(opts), nil
}

//nolint:gochecknoglobals // read-only lookup table
var constructors = map[Format]func(Options) Reporter{
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable:   func(o Options) Reporter { return NewTableReporter(o) },
	FormatJSON:    func(o Options) Reporter { return NewJSONReporter(o) },
	FormatSARIF:   func(o Options) Reporter { return NewSARIFReporter(o) },
	FormatDiff:    func(o Options) Reporter { return NewDiffReporter(o) },
	FormatSummary: func(o Options) Reporter { return NewSummaryReporter(o) },
}
