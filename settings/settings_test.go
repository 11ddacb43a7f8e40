package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hesusruiz/aml/dialect"
	"github.com/hesusruiz/aml/filter"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "aml.yaml")
	require.NoError(t, os.WriteFile(name, []byte(content), 0664))
	return name
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), s)
	require.Equal(t, dialect.Plain.Name, s.Dialect)
	require.Equal(t, filter.DefaultCommentSyntax, s.CommentSyntax)
}

func TestLoadFile(t *testing.T) {
	name := writeFile(t, `
aml:
    dialect: jinja
    keepWhitespace: true
    generatedWarning: true
    commentSyntax: "{# %s #}"
    codeStyle: monokai
`)

	s, err := Load(name)
	require.NoError(t, err)
	require.Equal(t, &Settings{
		Dialect:        "jinja",
		KeepWhitespace: true,
		Generated:      true,
		CommentSyntax:  "{# %s #}",
		CodeStyle:      "monokai",
	}, s)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	name := writeFile(t, "aml:\n    dialect: jinja\n")
	t.Setenv("AML_DIALECT", "erb")
	t.Setenv("AML_KEEP_WHITESPACE", "true")

	s, err := Load(name)
	require.NoError(t, err)
	require.Equal(t, "erb", s.Dialect)
	require.True(t, s.KeepWhitespace)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "aml:\n    keepWhitespace: maybe\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "aml.keepWhitespace")

	_, err = Load(writeFile(t, "aml:\n    dialect: haml\n"))
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)

	t.Setenv("AML_COMMENT_SYNTAX", "no verb")
	_, err = Load("")
	require.ErrorIs(t, err, filter.ErrCommentSyntax)
}
