package dialect

import (
	"regexp"

	"github.com/hesusruiz/aml/engine"
)

// JinjaStatementsName is the name of the extension installed by the Jinja dialect
const JinjaStatementsName = "jinja-statements"

// Jinja supports:
//
//	% stmt     {% stmt %}, closed with {% endstmt %} when it has a body
//	% >stmt    {% stmt %}{% endstmt %}
//	= expr     {{ expr }}
//	~ text     {% trans %}text{% endtrans %}
//	>tag       > tag
//
// An endif (or endelif) followed by an elif or else at the same
// indentation is dropped, and endelse/endelif become endif.
var Jinja = register(&Dialect{
	Name: "jinja",
	PreRules: []Rule{
		NewRule("line-statement", `^(\s*)%(\s*)(.*)$`, `${1}{%${2}${3}${2}%}`),
		NewRule("line-expression", `^(\s*)=(\s*)(.*)$`, `${1}{{${2}${3}${2}}}`),
		selfClosingTagRule,
		NewRule("trans-line-statement", `^(\s*)~(\s*)(.*)$`, `${1}{% trans %}${3}{% endtrans %}`),
	},
	PostRules: []Rule{
		NewRule("endif-elif", `^(\s*){%\s*end(?:el)?if\s*%}\n(\1{%\s*elif\s)`, `${2}`),
		NewRule("endif-else", `^(\s*){%\s*end(?:el)?if\s*%}\n(\1{%\s*else\s*%})`, `${2}`),
		NewRule("endelse", `^(\s*){%\s*endel(?:se|if)\s*%}`, `${1}{% endif %}`),
	},
	PostElidedRules: []Rule{
		NewRule("endif-elif", `{%\s*end(?:el)?if\s*%}\n({%\s*elif\s)`, `${1}`),
		NewRule("endif-else", `{%\s*end(?:el)?if\s*%}\n({%\s*else\s*%})`, `${1}`),
		NewRule("endelse", `{%\s*endel(?:se|if)\s*%}`, `{% endif %}`),
	},
	Continuations: true,
	Extension: &statementBlocks{
		name:   JinjaStatementsName,
		header: regexp.MustCompile(`^\{% (\w+)`),
		closer: func(m []string) string {
			return "{% end" + m[1] + " %}"
		},
		selfClosing: engine.NewRule("self-closing-statement", `^\{% > *((\w+).*)`, func(_ *engine.Engine, m []string) string {
			return "{% " + m[1] + "{% end" + m[2] + " %}"
		}),
	},
})

// '>tag' is accepted as '> tag' by all dialects
var selfClosingTagRule = NewRule("self-closing-tag", `^(\s*)>(?=\w)`, `${1}> `)
