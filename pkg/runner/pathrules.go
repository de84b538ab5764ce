package runner

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// PathRules turns single fixers on or off by path. Keys are fixer names;
// patterns use MatchExclude syntax against slash paths relative to the
// working directory.
type PathRules struct {
	// Skip keeps a fixer away from matching paths.
	Skip map[string][]string

	// Only runs a fixer on matching paths and nowhere else.
	Only map[string][]string
}

// IsZero reports whether no rule is set.
func (p PathRules) IsZero() bool {
	return len(p.Skip) == 0 && len(p.Only) == 0
}

// Allows reports whether the named fixer runs on rel. Skip wins over Only.
func (p PathRules) Allows(name, rel string) bool {
	if patterns, ok := p.Skip[name]; ok && MatchExclude(rel, patterns) {
		return false
	}
	if patterns, ok := p.Only[name]; ok && !MatchExclude(rel, patterns) {
		return false
	}
	return true
}

// Filter returns the fixers allowed on rel, in their original order, and
// the names of those left out.
func (p PathRules) Filter(rel string, fixers []fixer.Fixer) ([]fixer.Fixer, []string) {
	if p.IsZero() {
		return fixers, nil
	}
	kept := make([]fixer.Fixer, 0, len(fixers))
	var dropped []string
	for _, f := range fixers {
		if p.Allows(f.Name(), rel) {
			kept = append(kept, f)
		} else {
			dropped = append(dropped, f.Name())
		}
	}
	return kept, dropped
}

// relSlash returns path relative to workDir with forward slashes, or path
// itself when it lies outside workDir.
func relSlash(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// pipelineSet hands out a pipeline per distinct fixer list. Variants copy
// the base engine; the base is never modified.
type pipelineSet struct {
	base    *engine.Pipeline
	rules   PathRules
	workDir string

	mu       sync.Mutex
	variants map[string]*engine.Pipeline
}

func newPipelineSet(base *engine.Pipeline, rules PathRules, workDir string) *pipelineSet {
	return &pipelineSet{
		base:     base,
		rules:    rules,
		workDir:  workDir,
		variants: make(map[string]*engine.Pipeline),
	}
}

// forPath returns the pipeline for path and the fixers skipped there.
func (ps *pipelineSet) forPath(path string) (*engine.Pipeline, []string) {
	if ps.rules.IsZero() {
		return ps.base, nil
	}
	fixers, dropped := ps.rules.Filter(relSlash(ps.workDir, path), ps.base.Engine.Fixers)
	if len(dropped) == 0 {
		return ps.base, nil
	}

	variant := *ps.base.Engine
	variant.Fixers = fixers
	key := strings.Join(variant.FixerNames(), ",")

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.variants[key]; ok {
		return p, dropped
	}
	p := engine.NewPipeline(&variant)
	p.Snippets = ps.base.Snippets
	ps.variants[key] = p
	return p, dropped
}
