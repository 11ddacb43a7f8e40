package dialect

import (
	"regexp"

	"github.com/hesusruiz/aml/engine"
)

const (
	ERBStatementsName    = "erb-statements"
	ErubisStatementsName = "erubis-statements"
)

var erbPre = []Rule{
	NewRule("line-statement", `^(\s*)%(?!%)(\s*)(.*)$`, `${1}<%${2}${3}${2}%>`),
	NewRule("line-expression", `^(\s*)=(\s*)(.*)$`, `${1}<%=${2}${3}${2}%>`),
}

// ERB supports:
//
//	% stmt     <% stmt %>, closed with <% end %> when it has a body
//	%% text    left as it is
//	% >stmt    <% stmt %><% end %>
//	= expr     <%= expr %>
//	>tag       > tag
//
// An end followed by an else or elsif at the same indentation is dropped.
var ERB = register(&Dialect{
	Name:     "erb",
	PreRules: append(append([]Rule(nil), erbPre...), selfClosingTagRule),
	PostRules: []Rule{
		NewRule("end-elsif", `^(\s*)<%\s*end\s*%>\n(\1<%\s*elsif\s)`, `${2}`),
		NewRule("end-else", `^(\s*)<%\s*end\s*%>\n(\1<%\s*else\s*%>)`, `${2}`),
	},
	PostElidedRules: []Rule{
		NewRule("end-elsif", `<%\s*end\s*%>\n(<%\s*elsif\s)`, `${1}`),
		NewRule("end-else", `<%\s*end\s*%>\n(<%\s*else\s*%>)`, `${1}`),
	},
	Continuations: true,
	Extension: &statementBlocks{
		name:   ERBStatementsName,
		header: regexp.MustCompile(`^<% (\w+)`),
		closer: func(m []string) string {
			return "<% end %>"
		},
		selfClosing: engine.NewRule("self-closing-statement", `^<% > *((\w+).*)`, func(_ *engine.Engine, m []string) string {
			return "<% " + m[1] + "<% end %>"
		}),
	},
})

// Erubis is ERB with the preprocessing instructions of Erubis:
//
//	! stmt     <%! stmt %>, closed with <%! end %> when it has a body
//	!= expr    <%!= expr %>, also written !! expr
var Erubis = register(&Dialect{
	Name: "erubis",
	PreRules: append(append([]Rule(nil), erbPre...),
		NewRule("preprocessed-line-statement", `^(\s*)!(?!!)(\s*)(.*)$`, `${1}<%!${2}${3}${2}%>`),
		NewRule("preprocessed-line-expression", `^(\s*)!(?:[!=])(\s*)(.*)$`, `${1}<%!=${2}${3}${2}%>`),
		selfClosingTagRule,
	),
	PostRules: []Rule{
		NewRule("end-elsif", `^(\s*)<%(!?)\s*end\s*%>\n(\1<%\2\s*elsif\s)`, `${3}`),
		NewRule("end-else", `^(\s*)<%(!?)\s*end\s*%>\n(\1<%\2\s*else\s*%>)`, `${3}`),
	},
	PostElidedRules: []Rule{
		NewRule("end-elsif", `<%(!?)\s*end\s*%>\n(<%\1\s*elsif\s)`, `${2}`),
		NewRule("end-else", `<%(!?)\s*end\s*%>\n(<%\1\s*else\s*%>)`, `${2}`),
	},
	Continuations: true,
	Extension: &statementBlocks{
		name:   ErubisStatementsName,
		header: regexp.MustCompile(`^<%(!?) (\w+)`),
		closer: func(m []string) string {
			return "<%" + m[1] + " end %>"
		},
		selfClosing: engine.NewRule("self-closing-statement", `^<%(!?) > *((\w+).*)`, func(_ *engine.Engine, m []string) string {
			return "<%" + m[1] + " " + m[2] + "<%" + m[1] + " end %>"
		}),
	},
})
