package aml

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/hesusruiz/aml/dialect"
)

const listDoc = `ul
    li
        a href=foo
            bar
`

func TestBuilder(t *testing.T) {
	b := NewBuilder().WithDialect(dialect.Plain).WithLogger(zaptest.NewLogger(t).Sugar())

	cfg, err := b.Build()
	require.NoError(t, err)
	require.Same(t, dialect.Plain, cfg.Dialect())
	require.True(t, cfg.Elided())

	_, err = b.Build()
	require.ErrorIs(t, err, ErrAlreadyConfigured)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestBuilderWithoutDialect(t *testing.T) {
	_, err := NewBuilder().Build()
	require.ErrorIs(t, err, ErrNotConfigured)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestConvertNotConfigured(t *testing.T) {
	var cfg *Config
	_, err := cfg.Convert("p")
	require.ErrorIs(t, err, ErrNotConfigured)

	_, err = (&Config{}).Convert("p")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		dialect *dialect.Dialect
		elide   bool
		in      string
		want    string
	}{
		{
			name:    "plain",
			dialect: dialect.Plain,
			in:      listDoc,
			want:    "<ul>\n    <li>\n        <a href=\"foo\">\n            bar\n        </a>\n    </li>\n</ul>\n",
		},
		{
			name:    "plain elided",
			dialect: dialect.Plain,
			elide:   true,
			in:      listDoc,
			want:    "<ul><li><a href=\"foo\">bar</a></li></ul>\n",
		},
		// In the two tag cases below attributes come before class and id
		{
			name:    "self closing tag",
			dialect: dialect.Plain,
			in:      "> img.thumb src=x.png",
			want:    "<img src=\"x.png\" class=\"thumb\" />\n",
		},
		{
			name:    "tag sugar",
			dialect: dialect.Plain,
			in:      "div#a.b.c attr=1\n    .b.c#a attr=1 | x\n",
			want:    "<div attr=\"1\" class=\"b c\" id=\"a\">\n    <div attr=\"1\" class=\"b c\" id=\"a\">x</div>\n</div>\n",
		},
		{
			name:    "jinja elided",
			dialect: dialect.Jinja,
			elide:   true,
			in:      "ul\n    % for x in xs\n        li\n            = x\n",
			want:    "<ul>{% for x in xs %}\n<li>{{ x }}</li>\n{% endfor %}</ul>\n",
		},
		{
			name:    "erb",
			dialect: dialect.ERB,
			in:      "% if admin\n    a href=/admin | Admin\n% else\n    | Guest\n",
			want:    "<% if admin %>\n    <a href=\"/admin\">Admin</a>\n<% else %>\n    Guest\n<% end %>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewBuilder().WithDialect(tt.dialect).WithElision(tt.elide).Build()
			require.NoError(t, err)

			got, err := cfg.Convert(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIndentError(t *testing.T) {
	for _, name := range dialect.Names() {
		t.Run(name, func(t *testing.T) {
			d, err := dialect.Lookup(name)
			require.NoError(t, err)
			cfg, err := NewBuilder().WithDialect(d).Build()
			require.NoError(t, err)

			out, err := cfg.Convert("ul\n  li\n\t  b\n")
			require.ErrorIs(t, err, dialect.ErrIndent)
			require.Empty(t, out)
		})
	}
}

var reLineBreak = regexp.MustCompile(`\n\s*`)

func TestElisionEquivalence(t *testing.T) {
	docs := []string{
		listDoc,
		"div\n    p\n        | one\n    p\n        | two\n",
		"table\n    tr\n        td | a\n        td | b\n",
	}
	for _, doc := range docs {
		kept, err := NewBuilder().WithDialect(dialect.Plain).WithElision(false).Build()
		require.NoError(t, err)
		elided, err := NewBuilder().WithDialect(dialect.Plain).Build()
		require.NoError(t, err)

		a, err := kept.Convert(doc)
		require.NoError(t, err)
		b, err := elided.Convert(doc)
		require.NoError(t, err)

		require.Equal(t, reLineBreak.ReplaceAllString(a, ""), reLineBreak.ReplaceAllString(b, ""))
	}
}

func TestControlFlowNormalization(t *testing.T) {
	tests := []struct {
		dialect *dialect.Dialect
		in      string
		want    string
	}{
		{
			dialect: dialect.Jinja,
			in:      "% if a\n    | A\n% else\n    | B\n",
			want:    "{% if a %}\n    A\n{% else %}\n    B\n{% endif %}\n",
		},
		{
			dialect: dialect.ERB,
			in:      "% if a\n    | A\n% else\n    | B\n",
			want:    "<% if a %>\n    A\n<% else %>\n    B\n<% end %>\n",
		},
		{
			dialect: dialect.Erubis,
			in:      "! if a\n    | A\n! else\n    | B\n",
			want:    "<%! if a %>\n    A\n<%! else %>\n    B\n<%! end %>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			for _, elide := range []bool{false, true} {
				cfg, err := NewBuilder().WithDialect(tt.dialect).WithElision(elide).Build()
				require.NoError(t, err)

				got, err := cfg.Convert(tt.in)
				require.NoError(t, err)
				want := tt.want
				if elide {
					want = reIndent.ReplaceAllString(want, "")
				}
				require.Equal(t, want, got)

				again, err := tt.dialect.Post(got, elide)
				require.NoError(t, err)
				require.Equal(t, got, again)
			}
		})
	}
}

var reIndent = regexp.MustCompile(`(?m)^ +`)

func TestConcurrentConvert(t *testing.T) {
	cfg, err := NewBuilder().WithDialect(dialect.Jinja).Build()
	require.NoError(t, err)

	in := "ul\n    % for x in xs\n        li | x\n"
	want, err := cfg.Convert(in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = cfg.Convert(in)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}
