package engine

import (
	"regexp"
	"strings"
)

// RenderFunc renders a line matched by a syntax rule. m holds the submatches of the rule pattern.
type RenderFunc func(e *Engine, m []string) string

// A SyntaxRule renders the lines matching its pattern.
// Patterns are always anchored at the start of the line.
type SyntaxRule struct {
	Name    string
	Pattern *regexp.Regexp
	Render  RenderFunc
}

// NewRule compiles the pattern of a rule, anchoring it at the start of the line if needed.
func NewRule(name string, pattern string, render RenderFunc) SyntaxRule {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	return SyntaxRule{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Render:  render,
	}
}

var reRawHTML = regexp.MustCompile(`^([<{]\S.*)`)

// IsRawHTML returns true if the line starts with markup that has to be copied as it is,
// like an HTML tag or a template instruction.
func IsRawHTML(line string) bool {
	return reRawHTML.MatchString(line)
}

// The base rules, in priority order. The last one matches any line.
var baseRules = []SyntaxRule{
	{Name: "raw-html", Pattern: reRawHTML, Render: renderTrimmed},
	NewRule("text", `^\| (.*)`, renderTrimmed),
	NewRule("outer-closing-tag", `^(.*?) > (.*)`, renderOuterClosingTag),
	NewRule("text-enclosing-tag", `^(.*?) \| (.*)`, renderTextEnclosingTag),
	NewRule("self-closing-tag", `^> (.*)`, renderSelfClosingTag),
	NewRule("raw-text", `^(.*)`, renderTrimmed),
}

// BaseRules returns a copy of the syntax rules of an engine without extensions.
func BaseRules() []SyntaxRule {
	return append([]SyntaxRule(nil), baseRules...)
}

func renderTrimmed(_ *Engine, m []string) string {
	return trimRight(m[1])
}

// 'tag > text': the text is a line on its own, enclosed in the tag
func renderOuterClosingTag(e *Engine, m []string) string {
	inner := e.ConvertLine(m[2])
	return e.EncloseTag(m[1], inner.Text)
}

// 'tag | text': the text is enclosed as it is
func renderTextEnclosingTag(e *Engine, m []string) string {
	return e.EncloseTag(m[1], m[2])
}

func renderSelfClosingTag(_ *Engine, m []string) string {
	return ParseBlockTag(strings.TrimSpace(m[1])).SelfClosingTag()
}
