package fixer

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Naming patterns for built-in and custom (plugin) fixers.
var (
	builtinNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	customNamePattern  = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*/[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	setNamePattern     = regexp.MustCompile(`^@[A-Za-z][A-Za-z0-9_:]*$`)
)

// Registry holds the available fixers and named rule sets.
type Registry struct {
	mu     sync.RWMutex
	fixers map[string]Fixer
	order  map[string]int // registration order, the priority tie-break
	sets   map[string]RuleSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fixers: make(map[string]Fixer),
		order:  make(map[string]int),
		sets:   make(map[string]RuleSet),
	}
}

// Register adds a built-in fixer. Its name must be lowercase words joined by
// underscores and must not be registered yet.
func (r *Registry) Register(f Fixer) error {
	return r.register(f, builtinNamePattern)
}

// RegisterCustom adds a plugin fixer. Its name must be namespaced, e.g.
// "Vendor/rule_name".
func (r *Registry) RegisterCustom(f Fixer) error {
	return r.register(f, customNamePattern)
}

// MustRegister calls Register and panics on error. Meant for init().
func (r *Registry) MustRegister(f Fixer) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

func (r *Registry) register(f Fixer, pattern *regexp.Regexp) error {
	name := f.Name()
	if !pattern.MatchString(name) {
		return &ConfigError{
			Fixer:   name,
			Message: fmt.Sprintf("has an invalid name; it must match %s", pattern),
			Err:     ErrInvalidName,
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fixers[name]; exists {
		return &ConfigError{Fixer: name, Message: "is already registered", Err: ErrDuplicateName}
	}
	r.order[name] = len(r.fixers)
	r.fixers[name] = f
	return nil
}

// RegisterSet adds a named rule set. Set names start with '@'.
func (r *Registry) RegisterSet(set RuleSet) error {
	if !setNamePattern.MatchString(set.Name) {
		return &ConfigError{
			Fixer:   set.Name,
			Message: fmt.Sprintf("has an invalid set name; it must match %s", setNamePattern),
			Err:     ErrInvalidName,
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[set.Name]; exists {
		return &ConfigError{Fixer: set.Name, Message: "is already registered", Err: ErrDuplicateName}
	}
	r.sets[set.Name] = set.clone()
	return nil
}

// MustRegisterSet calls RegisterSet and panics on error.
func (r *Registry) MustRegisterSet(set RuleSet) {
	if err := r.RegisterSet(set); err != nil {
		panic(err)
	}
}

// Get returns the fixer registered under name.
func (r *Registry) Get(name string) (Fixer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fixers[name]
	return f, ok
}

// Set returns the rule set registered under name.
func (r *Registry) Set(name string) (RuleSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[name]
	if !ok {
		return RuleSet{}, false
	}
	return set.clone(), true
}

// Fixers returns every registered fixer sorted by name.
func (r *Registry) Fixers() []Fixer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Fixer, 0, len(r.fixers))
	for _, f := range r.fixers {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Fixer) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return out
}

// Names returns every registered fixer name in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.fixers)
}

// Sets returns every registered rule set sorted by name.
func (r *Registry) Sets() []RuleSet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RuleSet, 0, len(r.sets))
	for _, name := range sortedKeys(r.sets) {
		out = append(out, r.sets[name].clone())
	}
	return out
}

// Conflicts returns the fixers declared as conflicting with name.
func (r *Registry) Conflicts(name string) []string {
	f, ok := r.Get(name)
	if !ok {
		return slices.Clone(builtinConflicts[name])
	}
	return conflictsOf(f)
}

// orderOf returns the registration index of a fixer name.
func (r *Registry) orderOf(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.order[name]
}

// IsSetName reports whether key refers to a rule set rather than a fixer.
func IsSetName(key string) bool {
	return strings.HasPrefix(key, "@")
}

// DefaultRegistry is the global registry for built-in fixers and sets.
// Fixers register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for fixer registration
var DefaultRegistry = NewRegistry()
