// Package serializer renders token streams back into source text and
// resolves the alignment markers fixers leave in the stream.
package serializer

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gophpfix/pkg/fix"
	"github.com/yaklabco/gophpfix/pkg/token"
	"github.com/yaklabco/gophpfix/pkg/tokens"
)

// placeholderFormat cannot occur in PHP source text: it is framed by the
// STX and ETX control bytes.
const placeholderFormat = "\x02 ALIGNABLE%d \x03"

var placeholderPattern = regexp.MustCompile("\x02 ALIGNABLE([0-9]+) \x03")

// Placeholder returns the marker text for an alignment level.
func Placeholder(level int) string {
	return fmt.Sprintf(placeholderFormat, level)
}

// Marker returns an alignment marker token for level. Insert it directly
// before the text that should line up with the same level's marker on
// neighboring lines.
func Marker(level int) token.Token {
	return token.New(token.KindAlignMarker, Placeholder(level))
}

// Render concatenates the stream and resolves alignment markers.
func Render(s *tokens.Stream) string {
	text := s.Text()
	if !s.KindFound(token.KindAlignMarker) {
		return text
	}
	return ResolveAlignment(text)
}

// ResolveAlignment lines up alignment markers and removes them.
//
// Levels are handled in ascending order. For each level, runs of
// consecutive lines that contain the level's marker form a group, and the
// first marker on each line of a group is padded with spaces to the widest
// display column in the group. Markers of other levels do not count toward
// the column.
func ResolveAlignment(text string) string {
	for _, level := range markerLevels(text) {
		text = alignLevel(text, Placeholder(level))
	}
	return text
}

func markerLevels(text string) []int {
	var levels []int
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		level, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !slices.Contains(levels, level) {
			levels = append(levels, level)
		}
	}
	slices.Sort(levels)
	return levels
}

// markedLine is a line holding a marker: the byte offset of the first
// marker in the text and the display column it sits at.
type markedLine struct {
	offset int
	column int
}

func alignLevel(text, placeholder string) string {
	edits := fix.NewEditBuilder()

	flush := func(group []markedLine) {
		widest := 0
		for _, l := range group {
			widest = max(widest, l.column)
		}
		for _, l := range group {
			if pad := widest - l.column; pad > 0 {
				edits.Insert(l.offset, strings.Repeat(" ", pad))
			}
		}
	}

	var group []markedLine
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}

		line := text[lineStart:lineEnd]
		if idx := strings.Index(line, placeholder); idx >= 0 {
			group = append(group, markedLine{
				offset: lineStart + idx,
				column: displayWidth(placeholderPattern.ReplaceAllString(line[:idx], "")),
			})
		} else if len(group) > 0 {
			flush(group)
			group = group[:0]
		}
		lineStart = lineEnd + 1
	}
	if len(group) > 0 {
		flush(group)
	}

	for start := 0; ; {
		idx := strings.Index(text[start:], placeholder)
		if idx < 0 {
			break
		}
		offset := start + idx
		edits.Delete(offset, offset+len(placeholder))
		start = offset + len(placeholder)
	}

	out, err := edits.Apply([]byte(text))
	if err != nil {
		// Each marker gets at most one insert, so edits never overlap.
		return strings.ReplaceAll(text, placeholder, "")
	}
	return string(out)
}

// displayWidth counts terminal cells, with a tab counting as one column.
func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r == '\t' {
			width++
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}
