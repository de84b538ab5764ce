package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	Format Format

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Verbose adds pass counts and lists clean files where applicable.
	Verbose bool

	// DryRun words results as pending changes instead of applied ones.
	DryRun bool

	// Compact uses minified output where applicable.
	Compact bool

	// WorkingDir is the directory paths are shown relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// ToolVersion is embedded in machine-readable output.
	ToolVersion string

	// FixerDescriptions maps fixer names to one-line descriptions for SARIF
	// rule metadata.
	FixerDescriptions map[string]string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		ToolVersion: "dev",
	}
}

// displayPath makes path relative to the working directory when that does
// not climb more than two levels.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
