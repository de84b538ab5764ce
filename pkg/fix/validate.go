package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// Edit validation errors.
var (
	ErrInvalidEdit = errors.New("invalid edit")
	ErrOverlap     = errors.New("overlapping edits")
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// Unwrap returns ErrInvalidEdit.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidEdit
}

// OverlapError describes two edits that touch the same bytes.
type OverlapError struct {
	First  TextEdit
	Second TextEdit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// Unwrap returns ErrOverlap.
func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}

// ValidateEdits checks every range against contentLen.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, e := range edits {
		switch {
		case e.StartOffset < 0:
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		case e.EndOffset < e.StartOffset:
			return &ValidationError{Edit: e, Message: "end offset is before start offset"}
		case e.EndOffset > contentLen:
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// compareEdits orders by start offset, then end offset, so an insert sorts
// before a replacement at the same offset.
func compareEdits(a, b TextEdit) int {
	return cmp.Or(cmp.Compare(a.StartOffset, b.StartOffset), cmp.Compare(a.EndOffset, b.EndOffset))
}

// PrepareEdits validates edits and returns a sorted copy. Two edits overlap
// when one starts before the other ends; two inserts at the same offset
// overlap too, since their order would be ambiguous.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, compareEdits)

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.StartOffset < prev.EndOffset || (curr.IsInsert() && prev.IsInsert() && curr.StartOffset == prev.StartOffset) {
			return nil, &OverlapError{First: prev, Second: curr}
		}
	}
	return sorted, nil
}
