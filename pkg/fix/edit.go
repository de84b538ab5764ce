// Package fix holds byte-offset text edits and unified diffs of fixed files.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// IsInsert reports whether e only inserts text.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// EditBuilder collects edits against one piece of content.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty builder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange replaces [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Insert inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete removes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Apply validates the collected edits and applies them to content.
func (b *EditBuilder) Apply(content []byte) ([]byte, error) {
	prepared, err := PrepareEdits(b.Edits, len(content))
	if err != nil {
		return nil, err
	}
	return ApplyEdits(content, prepared), nil
}
