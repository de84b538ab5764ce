// Package runner fixes many files concurrently through an engine.Pipeline.
package runner

import (
	"github.com/yaklabco/gophpfix/pkg/cache"
	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors exclude patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions selects files inside directories (lowercase, leading dot).
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are doublestar patterns relative to WorkingDir. A
	// pattern without a slash also matches any single path element.
	ExcludeGlobs []string

	// Scripts also selects extensionless files that langdetect
	// recognizes as PHP scripts.
	Scripts bool

	// PathRules skip or restrict single fixers per path.
	PathRules PathRules

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs limits concurrent files. Zero or less means runtime.NumCPU().
	Jobs int

	// Pipeline is passed to every file. Whitespace is overridden per file
	// when Whitespace is set.
	Pipeline engine.PipelineOptions

	// Whitespace returns the whitespace for a file, typically from
	// .editorconfig.
	Whitespace func(path string) fixer.Whitespace

	// Cache, when set, skips files recorded clean and is updated with the
	// outcome of every processed file. The caller saves it.
	Cache *cache.Cache
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
