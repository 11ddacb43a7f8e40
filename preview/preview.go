// Package preview renders converted templates as syntax highlighted HTML
// pages, to review the output of a conversion in a browser.
package preview

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/hesusruiz/aml/engine"
)

// DefaultStyle is used when no style is given
const DefaultStyle = "swapoff"

// Lexer names tried for each dialect, in order
var dialectLexers = map[string][]string{
	"plain":  {"html"},
	"jinja":  {"jinja", "django", "html"},
	"erb":    {"erb", "rhtml", "html"},
	"erubis": {"erb", "rhtml", "html"},
}

// Lexer returns the lexer for the output of a dialect. Unknown dialects
// get a lexer analysed from the text itself.
func Lexer(dialectName string, text string) chroma.Lexer {
	var l chroma.Lexer
	for _, name := range dialectLexers[dialectName] {
		if l = lexers.Get(name); l != nil {
			break
		}
	}
	if l == nil {
		l = lexers.Analyse(text)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// Render returns a standalone HTML page with the highlighted text.
func Render(text string, dialectName string, styleName string) ([]byte, error) {
	if len(styleName) == 0 {
		styleName = DefaultStyle
	}

	l := Lexer(dialectName, text)
	s := styles.Get(styleName)

	f := hlhtml.New(
		hlhtml.Standalone(true),
		hlhtml.WithLineNumbers(true),
		hlhtml.LineNumbersInTable(true),
	)

	it, err := l.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenising %s output: %w", dialectName, err)
	}

	rb := &bytes.Buffer{}
	if err := f.Format(rb, s, it); err != nil {
		return nil, fmt.Errorf("formatting preview: %w", err)
	}

	var br engine.ByteRenderer
	br.Renderln("<!-- aml preview: ", dialectName, ", style ", s.Name, " -->")
	br.Render(rb.Bytes())
	return br.Bytes(), nil
}
