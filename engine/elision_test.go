package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func elidedEngine(t *testing.T) *Engine {
	t.Helper()
	h := NewHooks()
	require.NoError(t, h.Install(WhitespaceElision()))
	return New(h, nil)
}

func TestWhitespaceElision(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nested blocks collapse",
			in:   "ul\n    li\n        a href=foo\n            bar\n",
			want: "<ul><li><a href=\"foo\">bar</a></li></ul>\n",
		},
		{
			name: "several children",
			in:   "div\n    a\n    b\n",
			want: "<div>a\nb</div>\n",
		},
		{
			name: "list of items",
			in:   "ul\n    li | one\n    li | two\n",
			want: "<ul><li>one</li>\n<li>two</li></ul>\n",
		},
		{
			name: "flush left lines keep their place",
			in:   "pre\n    || x\n",
			want: "<pre>x</pre>\n",
		},
		{
			name: "top level lines",
			in:   "a\n\nb",
			want: "a\n\nb\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, elidedEngine(t).Convert(tt.in))
		})
	}
}

func TestElisionEquivalence(t *testing.T) {
	in := "ul\n    li\n        a href=foo\n            bar\n"
	plain := New(nil, nil).Convert(in)
	elided := elidedEngine(t).Convert(in)

	require.Equal(t, collapse(plain), collapse(elided))
}

// collapse removes line breaks and the indentation after them
func collapse(s string) string {
	var br ByteRenderer
	skip := false
	for _, r := range s {
		switch {
		case r == '\n':
			skip = true
		case skip && (r == ' ' || r == '\t'):
		default:
			skip = false
			br.Render(r)
		}
	}
	return br.String()
}

func TestMergeFragments(t *testing.T) {
	start := func(s string) Fragment { return Fragment{Kind: StartTagFragment, Text: s, Flush: true} }
	end := func(s string) Fragment { return Fragment{Kind: EndTagFragment, Text: s, Flush: true} }
	plain := func(s string) Fragment { return Fragment{Kind: PlainFragment, Text: s} }

	texts := func(frags []Fragment) []string {
		var out []string
		for _, f := range frags {
			out = append(out, f.Text)
		}
		return out
	}

	tests := []struct {
		name string
		in   []Fragment
		want []string
	}{
		{name: "empty", in: nil, want: nil},
		{name: "single", in: []Fragment{plain("a")}, want: []string{"a"}},
		{name: "plain lines", in: []Fragment{plain("a"), plain("b")}, want: []string{"a", "b"}},
		{
			name: "block with one child",
			in:   []Fragment{start("<p>"), plain("x"), end("</p>")},
			want: []string{"<p>x</p>"},
		},
		{
			name: "empty block",
			in:   []Fragment{start("<p>"), end("</p>")},
			want: []string{"<p></p>"},
		},
		{
			name: "end tags merge first",
			in:   []Fragment{start("<a>"), start("<b>"), plain("x"), end("</b>"), end("</a>"), plain("y")},
			want: []string{"<a><b>x</b></a>", "y"},
		},
		{
			name: "block with two children",
			in:   []Fragment{start("<p>"), plain("x"), plain("y"), end("</p>")},
			want: []string{"<p>x", "y</p>"},
		},
		{
			name: "trailing start tag",
			in:   []Fragment{plain("a"), start("<p>")},
			want: []string{"a", "<p>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]Fragment(nil), tt.in...)
			require.Equal(t, tt.want, texts(MergeFragments(tt.in)))
			require.Equal(t, in, tt.in)
		})
	}
}
