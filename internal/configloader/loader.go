// Package configloader resolves the effective configuration of a run. It
// layers defaults, system, user, project and explicit files, environment
// variables and CLI flags, validates the result and turns it into fixers.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// LoadOptions controls Load.
type LoadOptions struct {
	// WorkingDir is where the project search starts; defaults to the
	// current directory.
	WorkingDir string

	// ExplicitPath is the file named by --config. It is loaded after the
	// discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and takes precedence over everything.
	CLIConfig *config.Config

	// Registry validates rules; defaults to fixer.DefaultRegistry.
	Registry *fixer.Registry
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files applied, lowest precedence first.
	LoadedFrom []string

	// BaseDir is the directory relative cache paths resolve against: the
	// directory of the project or explicit file, else the working directory.
	BaseDir string

	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. CLI flags
//  2. Environment variables (GOPHPFIX_*)
//  3. Explicit config file
//  4. Project config (.gophpfix.yml, upward search)
//  5. User config ($XDG_CONFIG_HOME/gophpfix/config.yaml)
//  6. System config (/etc/gophpfix/config.yaml)
//  7. Defaults
//
// A file's scalar keys override lower layers. Its rules are merged by key,
// except that the first file defining rules replaces the default rule set.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths, BaseDir: workDir}
	l := &layers{cfg: config.NewConfig(), defaultRules: true}

	for _, layer := range []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	} {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := l.applyFile(layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		if layer.name == "project" || layer.name == "explicit" {
			result.BaseDir = filepath.Dir(layer.path)
		}
	}

	cfg := l.cfg
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	registry := opts.Registry
	if registry == nil {
		registry = fixer.DefaultRegistry
	}
	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// layers accumulates configuration files in precedence order.
type layers struct {
	cfg *config.Config

	// defaultRules is true until a file defines rules of its own.
	defaultRules bool
}

func (l *layers) applyFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return &ValidationError{FilePath: path, Message: "parse YAML: " + err.Error(), Err: err}
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ValidationError{FilePath: path, Line: root.Line, Message: "top level must be a mapping"}
	}

	if l.defaultRules && hasKey(root, "rules") {
		l.cfg.Rules = make(map[string]config.RuleConfig)
		l.defaultRules = false
	}
	// Decoding into the accumulated config only touches keys present in
	// this file; maps gain entries and slices are replaced.
	if err := root.Decode(l.cfg); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error(), Err: err}
	}
	return nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// WriteConfig writes content to path, refusing to replace an existing file
// unless force is set.
func WriteConfig(path string, content []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, configFilePermissions)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// configFilePermissions is the mode of files written by init.
const configFilePermissions = 0o644
