package dialect

// Plain is the markup without template shortcuts. It only accepts '>tag'
// as '> tag'.
var Plain = register(&Dialect{
	Name:     "plain",
	PreRules: []Rule{selfClosingTagRule},
})
