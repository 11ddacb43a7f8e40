package dialect

import (
	"regexp"

	"github.com/hesusruiz/aml/engine"
)

// statementBlocks closes the template statements used as block headers.
//
//	{% for x in items %}
//	    li | x
//
// is rendered with a {% endfor %} after the body. The header and the closer
// are template instructions, so they lose their indentation under elision.
type statementBlocks struct {
	name string

	// header matches a statement header
	header *regexp.Regexp

	// closer builds the closing statement from the header submatches
	closer func(m []string) string

	// selfClosing renders a '>' statement and its closer on the same line
	selfClosing engine.SyntaxRule
}

func (s *statementBlocks) Name() string {
	return s.name
}

func (s *statementBlocks) Extend(h *engine.Hooks) {
	h.PrependRules(s.selfClosing)

	h.WrapBlock(func(next engine.BlockFunc) engine.BlockFunc {
		return func(e *engine.Engine, out *engine.Output, block []engine.Line, recurse func(body []engine.Line)) {
			header := block[0]
			if !engine.IsRawHTML(header.Content) {
				next(e, out, block, recurse)
				return
			}

			m := s.header.FindStringSubmatch(header.Content)
			if m == nil {
				next(e, out, block, recurse)
				return
			}

			out.Append(e.Join(header.Prefix, engine.Fragment{Text: header.Content, Flush: true}))
			recurse(block[1:])
			out.Append(e.Join(header.Prefix, engine.Fragment{Text: s.closer(m), Flush: true}))
		}
	})
}
