package fixer

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"strings"
)

// RuleValue is the setting of one rule set entry: disabled, enabled with
// defaults, or enabled with options.
type RuleValue struct {
	Enabled bool

	// Options overrides option defaults. Nil means "use defaults"; a non-nil
	// empty map is a configuration error.
	Options map[string]any
}

// Enable returns a value that enables a fixer with its defaults.
func Enable() RuleValue { return RuleValue{Enabled: true} }

// Disable returns a value that disables a fixer or set.
func Disable() RuleValue { return RuleValue{} }

// With returns a value that enables a fixer with the given options.
func With(opts map[string]any) RuleValue {
	if opts == nil {
		opts = map[string]any{}
	}
	return RuleValue{Enabled: true, Options: opts}
}

// Rules maps fixer names and "@Set" references to their setting.
type Rules map[string]RuleValue

// RuleSet is a named bundle of rules. Sets may import other sets.
type RuleSet struct {
	Name        string
	Description string
	Rules       Rules
}

func (s RuleSet) clone() RuleSet {
	out := s
	out.Rules = maps.Clone(s.Rules)
	return out
}

// ResolveOptions controls Resolve.
type ResolveOptions struct {
	// AllowRisky permits fixers that may change program behavior.
	AllowRisky bool
}

// Expand flattens rules into fixer entries only. Enabled set references are
// applied first in name order, then disabled ones, which turn off every fixer
// the set would enable. Direct entries override both.
func (r *Registry) Expand(rules Rules) (Rules, error) {
	return r.expand(rules, nil)
}

func (r *Registry) expand(rules Rules, stack []string) (Rules, error) {
	out := make(Rules)

	keys := sortedKeys(rules)
	var setRefs []string
	for _, key := range keys {
		if IsSetName(key) && rules[key].Enabled {
			setRefs = append(setRefs, key)
		}
	}
	for _, key := range keys {
		if IsSetName(key) && !rules[key].Enabled {
			setRefs = append(setRefs, key)
		}
	}

	for _, key := range setRefs {
		value := rules[key]
		if value.Options != nil {
			return nil, &ConfigError{Fixer: key, Message: "is a rule set and only accepts true or false", Err: ErrInvalidOption}
		}
		if slices.Contains(stack, key) {
			return nil, &ConfigError{
				Fixer:   key,
				Message: "imports itself via " + strings.Join(append(slices.Clone(stack), key), " -> "),
				Err:     ErrSetCycle,
			}
		}

		set, ok := r.Set(key)
		if !ok {
			return nil, &ConfigError{Fixer: key, Message: "does not exist", Err: ErrUnknownSet}
		}
		nested, err := r.expand(set.Rules, append(slices.Clone(stack), key))
		if err != nil {
			return nil, err
		}

		for name, v := range nested {
			if !value.Enabled {
				if v.Enabled {
					out[name] = Disable()
				}
				continue
			}
			out[name] = v
		}
	}

	for _, key := range keys {
		if IsSetName(key) {
			continue
		}
		out[key] = rules[key]
	}
	return out, nil
}

// Resolve turns rules into the ordered list of configured fixers to run.
// Errors are returned before any fixer is instantiated for unknown names,
// invalid options, risky fixers without AllowRisky and conflicting fixers.
// The result is sorted by priority, highest first, and by registration
// order among equal priorities.
func (r *Registry) Resolve(rules Rules, opts ResolveOptions) ([]Fixer, error) {
	flat, err := r.Expand(rules)
	if err != nil {
		return nil, err
	}

	var resolved []Fixer
	for _, name := range sortedKeys(flat) {
		value := flat[name]
		if !value.Enabled {
			continue
		}

		f, ok := r.Get(name)
		if !ok {
			return nil, &ConfigError{Fixer: name, Message: "does not exist", Err: ErrUnknownFixer}
		}
		if value.Options != nil && len(value.Options) == 0 {
			return nil, &ConfigError{Fixer: name, Message: "configuration must be a non-empty mapping", Err: ErrEmptyConfiguration}
		}
		if IsRisky(f) && !opts.AllowRisky {
			return nil, &ConfigError{Fixer: name, Message: "is risky; allow risky fixers to enable it", Err: ErrRiskyNotAllowed}
		}

		f, err = configure(f, value.Options)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, f)
	}

	if pairs := findConflicts(resolved); len(pairs) > 0 {
		return nil, &ConflictError{Pairs: pairs}
	}

	slices.SortStableFunc(resolved, func(a, b Fixer) int {
		return cmp.Or(
			cmp.Compare(b.Priority(), a.Priority()),
			cmp.Compare(r.orderOf(a.Name()), r.orderOf(b.Name())),
		)
	})
	return resolved, nil
}

// configure applies raw options to f. Configurable fixers are always
// configured so their defaults take effect.
func configure(f Fixer, raw map[string]any) (Fixer, error) {
	c, ok := f.(Configurable)
	if !ok {
		if raw != nil {
			return nil, &ConfigError{Fixer: f.Name(), Message: "is not configurable", Err: ErrNotConfigurable}
		}
		return f, nil
	}

	resolved, err := ParseOptions(f.Name(), c.Options(), raw)
	if err != nil {
		return nil, err
	}
	configured, err := c.Configure(resolved)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &ConfigError{Fixer: f.Name(), Message: err.Error(), Err: ErrInvalidOption}
	}
	return configured, nil
}

// Names returns the names of fixers in order.
func Names(fixers []Fixer) []string {
	names := make([]string, len(fixers))
	for i, f := range fixers {
		names[i] = f.Name()
	}
	return names
}
