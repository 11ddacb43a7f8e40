package engine

import (
	"regexp"
	"strings"
)

// Tag sugar is the condensed notation 'tag#id.class attr=val' used on block
// headers and in the inline tag forms.
var (
	reTagAndAttrs = regexp.MustCompile(`^(\S+)(.*)`)
	reTagAndRest  = regexp.MustCompile(`^((?:[^ \t.#]|\.\.)+)(.*)`)
	reClassOrID   = regexp.MustCompile(`([.#])((?:[^ \t.#]|\.\.)+)`)
	reAutoQuote   = regexp.MustCompile(`([ \t]+[^ \t=]+=)((?:'(?:\\'|[^'])*')|(?:"(?:\\"|[^"])*")|[^ \t]+)`)
)

const escapedDot = ".."

// TagSpec is a parsed tag sugar expression.
// IDs and Classes keep their escaped dots until the tag is rendered.
type TagSpec struct {
	Name    string
	Attrs   string
	IDs     []string
	Classes []string
}

// ParseTag parses tag sugar without applying the implicit div shortcut.
func ParseTag(markup string) TagSpec {
	var spec TagSpec

	m := reTagAndAttrs.FindStringSubmatch(markup)
	if m == nil {
		spec.Name = strings.TrimSpace(markup)
		return spec
	}

	token, attrs := m[1], m[2]
	spec.Attrs = autoQuote(attrs)

	// Split the tag name from the trailing ids and classes
	tm := reTagAndRest.FindStringSubmatch(token)
	if tm == nil {
		spec.Name = fixDots(token)
		return spec
	}
	spec.Name = fixDots(tm[1])

	for _, ci := range reClassOrID.FindAllStringSubmatch(tm[2], -1) {
		if ci[1] == "#" {
			spec.IDs = append(spec.IDs, ci[2])
		} else {
			spec.Classes = append(spec.Classes, ci[2])
		}
	}

	return spec
}

// ParseBlockTag is ParseTag with the div shortcut: markup starting with '#'
// or with a single '.' is an anonymous div.
func ParseBlockTag(markup string) TagSpec {
	if hasDivShortcut(markup) {
		markup = "div" + markup
	}
	return ParseTag(markup)
}

func hasDivShortcut(markup string) bool {
	if strings.HasPrefix(markup, "#") {
		return true
	}
	return strings.HasPrefix(markup, ".") && !strings.HasPrefix(markup, escapedDot)
}

// startTagText is the content of the start tag, without the angle brackets.
func (t TagSpec) startTagText() string {
	var br ByteRenderer
	br.Render(t.Name, t.Attrs)
	if len(t.Classes) > 0 {
		br.Render(` class="`, joinFixed(t.Classes), `"`)
	}
	if len(t.IDs) > 0 {
		br.Render(` id="`, joinFixed(t.IDs), `"`)
	}
	return br.String()
}

func (t TagSpec) StartTag() string {
	return "<" + t.startTagText() + ">"
}

func (t TagSpec) EndTag() string {
	return "</" + t.Name + ">"
}

func (t TagSpec) SelfClosingTag() string {
	return "<" + t.startTagText() + " />"
}

// ResolveBlockTag returns the start and end tags for a block header.
func ResolveBlockTag(markup string) (start string, end string) {
	spec := ParseBlockTag(markup)
	return spec.StartTag(), spec.EndTag()
}

// autoQuote wraps in double quotes every attribute value which is not already quoted
func autoQuote(attrs string) string {
	matches := reAutoQuote.FindAllStringSubmatchIndex(attrs, -1)
	if matches == nil {
		return attrs
	}

	var br ByteRenderer
	last := 0
	for _, m := range matches {
		key := attrs[m[2]:m[3]]
		val := attrs[m[4]:m[5]]

		br.Render(attrs[last:m[0]], key)
		if val[0] == '"' || val[0] == '\'' {
			br.Render(val)
		} else {
			br.Render(`"`, val, `"`)
		}
		last = m[1]
	}
	br.Render(attrs[last:])

	return br.String()
}

func fixDots(s string) string {
	return strings.ReplaceAll(s, escapedDot, ".")
}

func joinFixed(tokens []string) string {
	return fixDots(strings.Join(tokens, " "))
}
