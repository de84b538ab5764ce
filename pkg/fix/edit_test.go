package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gophpfix/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "<?php echo 1;",
			want:    "<?php echo 1;",
		},
		{
			name:    "replacement",
			content: "<?php ECHO 1;",
			edits:   []fix.TextEdit{{StartOffset: 6, EndOffset: 10, NewText: "echo"}},
			want:    "<?php echo 1;",
		},
		{
			name:    "insert then delete at one offset",
			content: "$a X= 1;",
			edits: []fix.TextEdit{
				{StartOffset: 3, EndOffset: 3, NewText: "  "},
				{StartOffset: 3, EndOffset: 4},
			},
			want: "$a   = 1;",
		},
		{
			name:    "edits at both ends",
			content: "abc",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 0, NewText: "<"},
				{StartOffset: 3, EndOffset: 3, NewText: ">"},
			},
			want: "<abc>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prepared, err := fix.PrepareEdits(tt.edits, len(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(fix.ApplyEdits([]byte(tt.content), prepared)))
		})
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr error
	}{
		{
			name:    "negative start",
			edits:   []fix.TextEdit{{StartOffset: -1, EndOffset: 2}},
			wantErr: fix.ErrInvalidEdit,
		},
		{
			name:    "end before start",
			edits:   []fix.TextEdit{{StartOffset: 4, EndOffset: 2}},
			wantErr: fix.ErrInvalidEdit,
		},
		{
			name:    "past the end",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 11}},
			wantErr: fix.ErrInvalidEdit,
		},
		{
			name: "overlapping ranges",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 3, EndOffset: 7},
			},
			wantErr: fix.ErrOverlap,
		},
		{
			name: "two inserts at one offset",
			edits: []fix.TextEdit{
				{StartOffset: 2, EndOffset: 2, NewText: "a"},
				{StartOffset: 2, EndOffset: 2, NewText: "b"},
			},
			wantErr: fix.ErrOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fix.PrepareEdits(tt.edits, 10)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPrepareEdits_SortsWithoutMutatingInput(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 5, EndOffset: 6},
		{StartOffset: 1, EndOffset: 2},
	}
	prepared, err := fix.PrepareEdits(edits, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, prepared[0].StartOffset)
	assert.Equal(t, 5, edits[0].StartOffset)
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	b := fix.NewEditBuilder()
	b.Insert(0, "<?php ")
	b.ReplaceRange(0, 4, "echo")
	b.Delete(6, 7)

	out, err := b.Apply([]byte("ECHO 1 ;"))
	require.NoError(t, err)
	assert.Equal(t, "<?php echo 1;", string(out))

	b.Delete(2, 3)
	_, err = b.Apply([]byte("ECHO 1 ;"))
	require.ErrorIs(t, err, fix.ErrOverlap)
}
