package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gophpfix/pkg/config"
	"github.com/yaklabco/gophpfix/pkg/fixer"
)

// ToRules converts configured rule entries to their fixer form.
func ToRules(entries map[string]config.RuleConfig) fixer.Rules {
	rules := make(fixer.Rules, len(entries))
	for name, rc := range entries {
		rules[name] = fixer.RuleValue{Enabled: rc.Enabled, Options: rc.Options}
	}
	return rules
}

// ParseRuleList parses a --rules list such as "@Base,-lowercase_keywords".
// A leading "-" disables the fixer or set.
func ParseRuleList(items []string) (fixer.Rules, error) {
	rules := make(fixer.Rules, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item)
		value := fixer.Enable()
		if rest, ok := strings.CutPrefix(name, "-"); ok {
			name, value = rest, fixer.Disable()
		}
		if name == "" {
			return nil, fmt.Errorf("empty rule name in %q", strings.Join(items, ","))
		}
		rules[name] = value
	}
	return rules, nil
}

// EffectiveRules returns the rules a run uses: the --rules list when given,
// otherwise the configured rules.
func EffectiveRules(cfg *config.Config) (fixer.Rules, error) {
	if cfg.RuleFilter != nil {
		return ParseRuleList(cfg.RuleFilter)
	}
	return ToRules(cfg.Rules), nil
}

// ResolveFixers returns the configured fixers in run order.
func ResolveFixers(cfg *config.Config, registry *fixer.Registry) ([]fixer.Fixer, error) {
	if registry == nil {
		registry = fixer.DefaultRegistry
	}
	rules, err := EffectiveRules(cfg)
	if err != nil {
		return nil, err
	}
	fixers, err := registry.Resolve(rules, fixer.ResolveOptions{AllowRisky: cfg.RiskyAllowed})
	if err != nil {
		return nil, fmt.Errorf("resolve rules: %w", err)
	}
	return fixers, nil
}
