// Package parser is a thin Aura front end: enough grammar to construct
// every ast.Program shape the checker/lowering pipeline needs. It is not
// a hardened implementation of Aura's full surface syntax — the lexer
// and parser are external collaborators per the core's scope (spec §1);
// this package exists only so the core can be driven end-to-end from
// source text instead of only from hand-built ASTs.
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"aura-lang/internal/ast"
)

var build = participle.MustBuild[ast.Program](
	participle.Lexer(AuraLexer),
	participle.Elide("Whitespace", "Comment", "DocComment"),
	participle.UseLookahead(8),
)

func ParseFile(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

func ParseSource(fileName, source string) (*ast.Program, error) {
	prog, err := build.ParseString(fileName, source)
	if err != nil {
		return nil, err
	}
	return prog, nil
}
