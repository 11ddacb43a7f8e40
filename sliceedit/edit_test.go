package sliceedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func TestFindAll(t *testing.T) {
	require.Equal(t, []int{0, 4}, FindAll([]byte("abc abc"), "abc"))
	require.Equal(t, []int{0, 2}, FindAll([]byte("aaaa"), "aa"))
	require.Empty(t, FindAll([]byte("abc"), ""))
	require.Empty(t, FindAll([]byte("abc"), "x"))
}

func TestBufferEdits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		edit func(b *Buffer)
		want string
	}{
		{
			name: "delete all",
			in:   "a-b-c",
			edit: func(b *Buffer) { b.DeleteAllString("-") },
			want: "abc",
		},
		{
			name: "replace all",
			in:   "a-b-c",
			edit: func(b *Buffer) { b.ReplaceAllString("-", "+") },
			want: "a+b+c",
		},
		{
			name: "insert at start",
			in:   "body",
			edit: func(b *Buffer) { b.Insert(0, "head\n") },
			want: "head\nbody",
		},
		{
			name: "delete with trailing blanks",
			in:   "% if a and \\\n      b\nx \\\n\n  y",
			edit: func(b *Buffer) { b.DeleteAllWithTrailing("\\\n", isBlank) },
			want: "% if a and b\nx y",
		},
		{
			name: "trailing run at the end",
			in:   "x\\\n   ",
			edit: func(b *Buffer) { b.DeleteAllWithTrailing("\\\n", isBlank) },
			want: "x",
		},
		{
			name: "no hits",
			in:   "plain",
			edit: func(b *Buffer) { b.DeleteAllWithTrailing("\\\n", isBlank) },
			want: "plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferString(tt.in)
			tt.edit(b)
			require.Equal(t, tt.want, b.String())
			require.Equal(t, tt.want, string(b.Bytes()))
		})
	}
}
