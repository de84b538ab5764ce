package fixer

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// OptionType is the value type an option accepts.
type OptionType uint8

// Option types.
const (
	OptionBool OptionType = iota + 1
	OptionInt
	OptionString
	OptionStringList
	OptionStringMap
)

// String returns the type name used in error messages and listings.
func (t OptionType) String() string {
	switch t {
	case OptionBool:
		return "bool"
	case OptionInt:
		return "int"
	case OptionString:
		return "string"
	case OptionStringList:
		return "string list"
	case OptionStringMap:
		return "string map"
	default:
		return "unknown"
	}
}

// MarshalText renders the type name in JSON listings.
func (t OptionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Option declares one configuration option of a fixer.
type Option struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        OptionType `json:"type"`

	// Allowed restricts values. For lists it applies to each element and
	// for maps to each value. Empty means any value of the right type.
	Allowed []any `json:"allowed,omitempty"`

	// Default is used when the option is absent. Nil means no default.
	Default any `json:"default,omitempty"`

	// Normalizer runs after type and allowed-value checks.
	Normalizer func(value any) (any, error) `json:"-"`
}

// OptionSchema is the ordered list of options a fixer accepts.
type OptionSchema []Option

// Lookup returns the option with the given name.
func (s OptionSchema) Lookup(name string) (Option, bool) {
	for _, o := range s {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Options holds resolved option values keyed by option name.
type Options map[string]any

// GetBool returns a bool option, or false.
func (o Options) GetBool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

// GetInt returns an int option, or 0.
func (o Options) GetInt(name string) int {
	v, _ := o[name].(int)
	return v
}

// GetString returns a string option, or "".
func (o Options) GetString(name string) string {
	v, _ := o[name].(string)
	return v
}

// GetStrings returns a string list option.
func (o Options) GetStrings(name string) []string {
	v, _ := o[name].([]string)
	return v
}

// GetStringMap returns a string map option.
func (o Options) GetStringMap(name string) map[string]string {
	v, _ := o[name].(map[string]string)
	return v
}

// ParseOptions validates raw against schema and fills in defaults.
// Unknown options, wrong types and disallowed values are errors naming the
// fixer and option.
func ParseOptions(fixerName string, schema OptionSchema, raw map[string]any) (Options, error) {
	for _, key := range sortedKeys(raw) {
		if _, ok := schema.Lookup(key); !ok {
			return nil, &ConfigError{
				Fixer: fixerName, Option: key, Err: ErrInvalidOption,
				Message: "unknown option; expected one of " + strings.Join(schemaNames(schema), ", "),
			}
		}
	}

	resolved := make(Options, len(schema))
	for _, opt := range schema {
		value, present := raw[opt.Name]
		if !present {
			if opt.Default != nil {
				resolved[opt.Name] = opt.Default
			}
			continue
		}

		converted, err := convertOption(opt, value)
		if err == nil {
			err = checkAllowed(opt, converted)
		}
		if err == nil && opt.Normalizer != nil {
			converted, err = opt.Normalizer(converted)
		}
		if err != nil {
			return nil, &ConfigError{Fixer: fixerName, Option: opt.Name, Message: err.Error(), Err: ErrInvalidOption}
		}
		resolved[opt.Name] = converted
	}
	return resolved, nil
}

// convertOption coerces decoded YAML or JSON values to the option's type.
func convertOption(opt Option, value any) (any, error) {
	switch opt.Type {
	case OptionBool:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case OptionInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case uint64:
			return int(v), nil
		case float64:
			if v == math.Trunc(v) {
				return int(v), nil
			}
		}
	case OptionString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case OptionStringList:
		switch v := value.(type) {
		case []string:
			return slices.Clone(v), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("expected %s, got element %v", opt.Type, item)
				}
				out = append(out, s)
			}
			return out, nil
		}
	case OptionStringMap:
		switch v := value.(type) {
		case map[string]string:
			out := make(map[string]string, len(v))
			for k, s := range v {
				out[k] = s
			}
			return out, nil
		case map[string]any:
			out := make(map[string]string, len(v))
			for k, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("expected %s, got %v for key %q", opt.Type, item, k)
				}
				out[k] = s
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %T", opt.Type, value)
}

func checkAllowed(opt Option, value any) error {
	if len(opt.Allowed) == 0 {
		return nil
	}
	check := func(v any) error {
		if slices.Contains(opt.Allowed, v) {
			return nil
		}
		return fmt.Errorf("value %v is not allowed; expected one of %v", v, opt.Allowed)
	}

	switch v := value.(type) {
	case []string:
		for _, item := range v {
			if err := check(item); err != nil {
				return err
			}
		}
		return nil
	case map[string]string:
		for _, k := range sortedKeys(v) {
			if err := check(v[k]); err != nil {
				return err
			}
		}
		return nil
	default:
		return check(v)
	}
}

func schemaNames(schema OptionSchema) []string {
	names := make([]string, len(schema))
	for i, o := range schema {
		names[i] = o.Name
	}
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
