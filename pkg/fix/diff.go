package fix

import (
	"fmt"
	"strings"
)

// Context sizes for Unified.
const (
	// DefaultContext is the number of unchanged lines shown around a change.
	DefaultContext = 3

	// FullContext shows practically the whole file around each change.
	FullContext = 100
)

// maxLCSCells bounds the table used to align the changed middle of two
// files. Larger middles are reported as a block replacement.
const maxLCSCells = 4_000_000

// Diff is a unified diff between the original and fixed content of a file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Hunk is one "@@" section. Start lines are 1-based; a zero count follows
// the unified format and points at the line before the change.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Line is one line of a hunk without its prefix or line break.
type Line struct {
	Kind    LineKind
	Content string

	// NoNewline marks the last line of a file that does not end in a line break.
	NoNewline bool
}

// LineKind tells context, added and removed lines apart.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

func (k LineKind) prefix() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// srcLine is a line plus whether a line break followed it.
type srcLine struct {
	text string
	eol  bool
}

// op is one line of the edit script with its 0-based position in each file.
type op struct {
	kind LineKind
	line srcLine
	orig int
	mod  int
}

// Unified returns the diff of original and modified with context unchanged
// lines around each change, or nil when they are equal. A negative context
// is treated as DefaultContext.
func Unified(path string, original, modified []byte, context int) *Diff {
	if context < 0 {
		context = DefaultContext
	}

	a, b := splitLines(original), splitLines(modified)
	ops := editScript(a, b)

	d := &Diff{Path: path}
	for _, o := range ops {
		switch o.kind {
		case LineAdded:
			d.Additions++
		case LineRemoved:
			d.Deletions++
		}
	}
	if d.Additions == 0 && d.Deletions == 0 {
		return nil
	}
	d.Hunks = groupHunks(ops, context)
	return d
}

// GenerateDiff is Unified with DefaultContext.
func GenerateDiff(path string, original, modified []byte) *Diff {
	return Unified(path, original, modified, DefaultContext)
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		sb.WriteString(h.Header())
		sb.WriteByte('\n')
		for _, l := range h.Lines {
			sb.WriteString(l.Kind.prefix())
			sb.WriteString(l.Content)
			sb.WriteByte('\n')
			if l.NoNewline {
				sb.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}

// FullString renders the diff with the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// splitLines splits after each "\n". Only the final line can lack its break.
func splitLines(content []byte) []srcLine {
	if len(content) == 0 {
		return nil
	}
	parts := strings.SplitAfter(string(content), "\n")
	lines := make([]srcLine, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		text, eol := strings.CutSuffix(p, "\n")
		lines = append(lines, srcLine{text: text, eol: eol})
	}
	return lines
}

// editScript aligns a and b: the common prefix and suffix are context, and
// the middle is aligned on its longest common subsequence.
func editScript(a, b []srcLine) []op {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	ops := make([]op, 0, len(a)+len(b))
	for i := range prefix {
		ops = append(ops, op{kind: LineContext, line: a[i], orig: i, mod: i})
	}
	ops = appendMiddle(ops, a[prefix:len(a)-suffix], b[prefix:len(b)-suffix], prefix, prefix)
	for k := suffix; k > 0; k-- {
		i, j := len(a)-k, len(b)-k
		ops = append(ops, op{kind: LineContext, line: a[i], orig: i, mod: j})
	}
	return ops
}

func appendMiddle(ops []op, a, b []srcLine, offA, offB int) []op {
	removeAll := func(ops []op) []op {
		for i, l := range a {
			ops = append(ops, op{kind: LineRemoved, line: l, orig: offA + i, mod: offB})
		}
		return ops
	}
	addAll := func(ops []op) []op {
		for j, l := range b {
			ops = append(ops, op{kind: LineAdded, line: l, orig: offA + len(a), mod: offB + j})
		}
		return ops
	}
	if len(a) == 0 || len(b) == 0 || len(a)*len(b) > maxLCSCells {
		return addAll(removeAll(ops))
	}

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, op{kind: LineContext, line: a[i], orig: offA + i, mod: offB + j})
			i++
			j++
		case j == len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, op{kind: LineRemoved, line: a[i], orig: offA + i, mod: offB + j})
			i++
		default:
			ops = append(ops, op{kind: LineAdded, line: b[j], orig: offA + i, mod: offB + j})
			j++
		}
	}
	return ops
}

// groupHunks cuts the script into hunks. Changes separated by at most
// 2*context unchanged lines share a hunk.
func groupHunks(ops []op, context int) []Hunk {
	var hunks []Hunk
	for start := 0; start < len(ops); {
		first := nextChange(ops, start)
		if first == len(ops) {
			break
		}

		last := first
		for {
			next := nextChange(ops, last+1)
			if next == len(ops) || next-lastChangeEnd(ops, last) > 2*context {
				break
			}
			last = next
		}

		from := max(first-context, start)
		to := min(lastChangeEnd(ops, last)+context, len(ops))
		hunks = append(hunks, buildHunk(ops[from:to]))
		start = to
	}
	return hunks
}

func nextChange(ops []op, from int) int {
	for i := from; i < len(ops); i++ {
		if ops[i].kind != LineContext {
			return i
		}
	}
	return len(ops)
}

// lastChangeEnd returns the index after the run of changes containing i.
func lastChangeEnd(ops []op, i int) int {
	for i < len(ops) && ops[i].kind != LineContext {
		i++
	}
	return i
}

func buildHunk(ops []op) Hunk {
	h := Hunk{OriginalStart: ops[0].orig + 1, ModifiedStart: ops[0].mod + 1}
	for _, o := range ops {
		h.Lines = append(h.Lines, Line{Kind: o.kind, Content: o.line.text, NoNewline: !o.line.eol})
		switch o.kind {
		case LineContext:
			h.OriginalCount++
			h.ModifiedCount++
		case LineRemoved:
			h.OriginalCount++
		case LineAdded:
			h.ModifiedCount++
		}
	}
	if h.OriginalCount == 0 {
		h.OriginalStart--
	}
	if h.ModifiedCount == 0 {
		h.ModifiedStart--
	}
	return h
}
