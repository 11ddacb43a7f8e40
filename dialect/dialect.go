// Package dialect implements the shortcut syntax of the template engines
// supported by aml.
//
// A Dialect brackets the engine with two regex rewrite passes. The PRE pass
// expands the line shortcuts ('% stmt', '= expr', ...) into template
// instructions before the engine runs, and the POST pass normalizes the
// closers the engine synthesized for those instructions:
//
//	% if user
//	    p | hello
//	% else
//	    p | login
//
// with the Jinja dialect renders as
//
//	{% if user %}
//	    <p>hello</p>
//	{% else %}
//	    <p>login</p>
//	{% endif %}
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/hesusruiz/aml/engine"
	"github.com/hesusruiz/aml/sliceedit"
)

// ErrIndent is the error wrapped by IndentError
var ErrIndent = errors.New("tabs used for indentation")

// ErrUnknownDialect is returned by Lookup for names not registered
var ErrUnknownDialect = errors.New("unknown dialect")

// IndentError is returned when a line is indented with tabs.
type IndentError struct {
	Line int
}

func (e *IndentError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, ErrIndent)
}

func (e *IndentError) Unwrap() error {
	return ErrIndent
}

// A Rule replaces every match of Pattern with Replacement. The replacement
// refers to groups as ${1}, ${2}...
type Rule struct {
	Name        string
	Pattern     *regexp2.Regexp
	Replacement string
}

// NewRule compiles a rule. Patterns use multiline mode, so ^ and $ match at
// line boundaries.
func NewRule(name string, pattern string, replacement string) Rule {
	return Rule{
		Name:        name,
		Pattern:     regexp2.MustCompile(pattern, regexp2.Multiline),
		Replacement: replacement,
	}
}

// Apply runs the rule over the whole text.
func (r Rule) Apply(text string) (string, error) {
	out, err := r.Pattern.Replace(text, r.Replacement, -1, -1)
	if err != nil {
		return text, fmt.Errorf("rule %s: %w", r.Name, err)
	}
	return out, nil
}

func applyRules(rules []Rule, text string) (string, error) {
	var err error
	for _, r := range rules {
		if text, err = r.Apply(text); err != nil {
			return "", err
		}
	}
	return text, nil
}

// Dialect is the shortcut syntax of one template engine.
type Dialect struct {
	Name string

	// PreRules run in order over the source text
	PreRules []Rule

	// PostRules run over the engine output. PostElidedRules replaces them when
	// whitespace elision is active, since block tags are not on their own
	// lines anymore.
	PostRules       []Rule
	PostElidedRules []Rule

	// Continuations joins lines ending with a backslash with the next one
	Continuations bool

	// Extension installs the dialect hooks on the engine. It can be nil.
	Extension engine.Extension
}

var reTabIndent = regexp2.MustCompile(`^ *\t`, regexp2.Multiline)

// CheckIndentation returns an IndentError for the first line indented with tabs.
func CheckIndentation(text string) error {
	m, err := reTabIndent.FindStringMatch(text)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	// Match positions are counted in runes
	before := string([]rune(text)[:m.Index])
	return &IndentError{Line: strings.Count(before, "\n") + 1}
}

const continuation = "\\\n"

// JoinContinuations removes every backslash at the end of a line, together
// with the line break and the indentation that follows it.
func JoinContinuations(text string) string {
	if !strings.Contains(text, continuation) {
		return text
	}
	b := sliceedit.NewBufferString(text)
	b.DeleteAllWithTrailing(continuation, isSpace)
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Pre prepares the source text for the engine.
func (d *Dialect) Pre(text string) (string, error) {
	if err := CheckIndentation(text); err != nil {
		return "", err
	}
	if d.Continuations {
		text = JoinContinuations(text)
	}
	return applyRules(d.PreRules, text)
}

// Post normalizes the engine output.
func (d *Dialect) Post(text string, elided bool) (string, error) {
	if elided {
		return applyRules(d.PostElidedRules, text)
	}
	return applyRules(d.PostRules, text)
}

func (d *Dialect) String() string {
	return d.Name
}

var registry = map[string]*Dialect{}

func register(d *Dialect) *Dialect {
	registry[d.Name] = d
	return d
}

// Lookup returns the dialect registered with the given name.
func Lookup(name string) (*Dialect, error) {
	d, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownDialect, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the names of all dialects, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
