package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	require.Equal(t, "HTML", Lexer("plain", "<p>x</p>").Config().Name)
	require.NotNil(t, Lexer("jinja", "{% if a %}{% endif %}"))
	require.NotNil(t, Lexer("erb", "<% if a %><% end %>"))
	require.NotNil(t, Lexer("unknown", "plain words"))
}

func TestRender(t *testing.T) {
	page, err := Render("<ul><li>x</li></ul>\n", "plain", "")
	require.NoError(t, err)

	html := string(page)
	require.True(t, strings.HasPrefix(html, "<!-- aml preview: plain, style "+DefaultStyle+" -->\n"))
	require.Contains(t, html, "<html")
	require.Contains(t, html, "&lt;")
	require.Contains(t, html, "li")
}

func TestRenderUnknownStyle(t *testing.T) {
	page, err := Render("<p>x</p>", "plain", "no-such-style")
	require.NoError(t, err)
	require.NotEmpty(t, page)
}
