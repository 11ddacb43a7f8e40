// Package engine converts indentation based markup into tag based markup.
//
// A document is a sequence of blocks. A block is a line followed by all the
// lines which are more indented than it. Blocks of one line are rendered by
// the syntax rules, and longer blocks wrap their body in the tags resolved
// from the tag sugar in their first line:
//
//	ul
//	    li
//	        a href=foo
//	            bar
//
// renders as nested ul, li and a elements with bar as the content.
//
// The operations of the engine can be wrapped by extensions (see Hooks).
// Hooks are resolved once when the Engine is created, and an Engine is
// never modified afterwards, so it can be used concurrently.
package engine

import (
	"strings"

	"go.uber.org/zap"
)

// Special lines recognized by the engine
const (
	// PassSyntax is a line which renders to nothing
	PassSyntax = "PASS"
	// FlushLeftSyntax starts a line which is rendered without indentation
	FlushLeftSyntax = "|| "
	// FlushLeftEmptyLine renders an empty line
	FlushLeftEmptyLine = "||"
	// CommentSyntax as a block header drops the header and keeps the body
	CommentSyntax = "::comment"
)

// Engine renders documents with a fixed set of resolved operations.
type Engine struct {
	log *zap.SugaredLogger

	extensions []string
	rules      []SyntaxRule

	convertLine LineFunc
	block       BlockFunc
	sugar       SugarFunc
	accumulate  AccumulateFunc
	join        JoinFunc
}

// New resolves the hooks into an Engine. A nil hooks creates the base engine,
// and a nil logger disables logging.
func New(hooks *Hooks, logger *zap.SugaredLogger) *Engine {
	if hooks == nil {
		hooks = NewHooks()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	e := &Engine{
		log:        logger,
		extensions: hooks.Installed(),
	}

	// The base implementations call the engine through the resolved functions,
	// so recursive calls go through all the installed hooks.
	e.rules = hooks.rules.Resolve(BaseRules)()
	e.convertLine = hooks.line.Resolve(e.baseConvertLine)
	e.block = hooks.block.Resolve(baseBlock)
	e.sugar = hooks.sugar.Resolve(baseSugar)
	e.accumulate = hooks.accumulate.Resolve(e.baseAccumulate)
	e.join = hooks.join.Resolve(baseJoin)

	e.log.Debugw("engine ready", "extensions", e.extensions, "rules", len(e.rules))

	return e
}

// Extensions returns the names of the extensions resolved into the engine.
func (e *Engine) Extensions() []string {
	return append([]string(nil), e.extensions...)
}

// Rules returns the active syntax rules, in priority order.
func (e *Engine) Rules() []SyntaxRule {
	return append([]SyntaxRule(nil), e.rules...)
}

// Convert renders the whole text. The result always ends with a newline.
func (e *Engine) Convert(text string) string {
	lines := SplitLines(text)
	frags := e.accumulate(lines)

	texts := make([]string, len(frags))
	for i, f := range frags {
		texts[i] = f.Text
	}

	return strings.Join(texts, "\n") + "\n"
}

// ConvertLine renders a single line with the active syntax rules.
func (e *Engine) ConvertLine(line string) Fragment {
	return e.convertLine(line)
}

// BlockTag resolves the tag sugar of a block header.
func (e *Engine) BlockTag(markup string) (start Fragment, end Fragment) {
	return e.sugar(markup)
}

// Join attaches an indentation prefix to a rendered fragment.
func (e *Engine) Join(prefix string, f Fragment) Fragment {
	return e.join(prefix, f)
}

// EncloseTag wraps text in the start and end tags resolved from markup.
func (e *Engine) EncloseTag(markup string, text string) string {
	start, end := e.sugar(markup)
	return start.Text + text + end.Text
}

func (e *Engine) baseConvertLine(line string) Fragment {
	line = strings.TrimSpace(line)
	for _, rule := range e.rules {
		if m := rule.Pattern.FindStringSubmatch(line); m != nil {
			return Fragment{Text: rule.Render(e, m)}
		}
	}
	// Only reached if an extension removed the catch-all rule
	return Fragment{Text: line}
}

func (e *Engine) baseAccumulate(lines []Line) []Fragment {
	out := &Output{}
	e.renderLines(out, lines)
	return out.Fragments()
}

// renderLines renders consecutive blocks until all lines are consumed
func (e *Engine) renderLines(out *Output, lines []Line) {
	recurse := func(body []Line) {
		e.renderLines(out, body)
	}

	for len(lines) > 0 {
		line := lines[0]

		if line.Blank() {
			out.Append(Fragment{})
			lines = lines[1:]
			continue
		}

		size := blockSize(lines)
		if size == 1 {
			e.renderLeaf(out, line)
			lines = lines[1:]
			continue
		}

		e.log.Debugw("block", "line", line.Number, "size", size)

		block := lines[:size]
		lines = lines[size:]
		e.block(e, out, block, recurse)
	}
}

func (e *Engine) renderLeaf(out *Output, line Line) {
	switch {
	case line.Content == PassSyntax:
		// Nothing is rendered
	case strings.HasPrefix(line.Content, FlushLeftSyntax):
		out.Append(Fragment{Text: line.Content[len(FlushLeftSyntax):]})
	case line.Content == FlushLeftEmptyLine:
		out.Append(Fragment{})
	default:
		out.Append(e.join(line.Prefix, e.convertLine(line.Content)))
	}
}

func baseBlock(e *Engine, out *Output, block []Line, recurse func(body []Line)) {
	header := block[0]
	body := block[1:]

	switch {
	case IsRawHTML(header.Content):
		out.Append(e.join(header.Prefix, Fragment{Text: header.Content}))
		recurse(body)

	case header.Content == CommentSyntax:
		recurse(body)

	default:
		start, end := e.sugar(header.Content)
		out.Append(e.join(header.Prefix, start))
		recurse(body)
		out.Append(e.join(header.Prefix, end))
	}
}

func baseSugar(markup string) (Fragment, Fragment) {
	start, end := ResolveBlockTag(markup)
	return Fragment{Text: start}, Fragment{Text: end}
}

func baseJoin(prefix string, f Fragment) Fragment {
	f.Text = prefix + f.Text
	return f
}
