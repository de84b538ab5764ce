package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gophpfix/pkg/langdetect"
)

// Discover finds the files opts selects and returns their absolute paths,
// sorted and de-duplicated.
//
// Directories are walked recursively, skipping hidden entries, keeping files
// with a configured extension. Files named explicitly are kept whatever
// their extension. Exclude patterns apply to both.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
		scripts:    opts.Scripts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if !d.excluded(absPath) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	exclude    []string
	follow     bool
	scripts    bool

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && d.excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if target.IsDir() {
				if !d.follow || d.excluded(path) {
					return nil
				}
				resolved, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // unresolvable symlinks are skipped
				}
				return d.walk(ctx, resolved)
			}
		}

		if d.selected(path) && !d.excluded(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) selected(path string) bool {
	if d.hasExtension(path) {
		return true
	}
	return d.scripts && filepath.Ext(path) == "" && langdetect.IsPHPScriptFile(path)
}

func (d *discoverer) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range d.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// excluded matches path, made relative to the working directory, against
// the exclude patterns.
func (d *discoverer) excluded(path string) bool {
	if len(d.exclude) == 0 {
		return false
	}
	return MatchExclude(relSlash(d.workDir, path), d.exclude)
}

// MatchExclude reports whether the slash-separated relative path matches any
// pattern. "dir/**" also matches dir itself, and a pattern without a slash
// matches any single element of the path.
func MatchExclude(rel string, patterns []string) bool {
	elems := strings.Split(rel, "/")
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if dir, found := strings.CutSuffix(pattern, "/**"); found && dir == rel {
			return true
		}
		if !strings.Contains(pattern, "/") {
			for _, elem := range elems {
				if ok, _ := doublestar.Match(pattern, elem); ok {
					return true
				}
			}
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}
