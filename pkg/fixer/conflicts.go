package fixer

import (
	"cmp"
	"slices"
)

// builtinConflicts is the static table of mutually exclusive built-in fixers.
// Fixers may add to it by implementing Conflicter.
//
//nolint:gochecknoglobals // Read-only conflict table.
var builtinConflicts = map[string][]string{
	"no_blank_lines_before_namespace":    {"single_blank_line_before_namespace"},
	"single_blank_line_before_namespace": {"no_blank_lines_before_namespace"},
}

// conflictsOf merges the static table with f's own declaration.
func conflictsOf(f Fixer) []string {
	out := slices.Clone(builtinConflicts[f.Name()])
	if c, ok := f.(Conflicter); ok {
		for _, name := range c.ConflictsWith() {
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	slices.Sort(out)
	return out
}

// findConflicts returns every conflicting pair among fixers, each pair in
// name order, sorted.
func findConflicts(fixers []Fixer) [][2]string {
	enabled := make(map[string]bool, len(fixers))
	for _, f := range fixers {
		enabled[f.Name()] = true
	}

	seen := make(map[[2]string]bool)
	var pairs [][2]string
	for _, f := range fixers {
		for _, other := range conflictsOf(f) {
			if !enabled[other] {
				continue
			}
			pair := [2]string{f.Name(), other}
			if pair[1] < pair[0] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			if !seen[pair] {
				seen[pair] = true
				pairs = append(pairs, pair)
			}
		}
	}

	slices.SortFunc(pairs, func(a, b [2]string) int {
		return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]))
	})
	return pairs
}
