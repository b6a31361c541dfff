package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// AuraLexer tokenizes Aura source. Grounded on the teacher's stateful
// KansoLexer: comments and identifiers are matched before the catch-all
// operator/punctuation classes, and whitespace is elided by the parser.
var AuraLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "DocComment", Pattern: `///[^\n]*`},
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Integer", Pattern: `0x[0-9a-fA-F]+|[0-9]+`},
		{Name: "Operator", Pattern: `(\|\||&&|==|!=|<=|>=|->|::|\.\.|[-+*/%<>=!])`},
		{Name: "Punctuation", Pattern: `[{}\[\]:,;()<>]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})
