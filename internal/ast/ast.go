// Package ast defines the surface syntax tree Aura source parses into.
// Struct tags are participle grammar rules (internal/parser builds the
// parser over these types directly, the way the teacher's grammar
// package doubled as both grammar and AST). Pos/EndPos are populated
// automatically by participle from the lexer's token positions.
package ast

import (
	"github.com/alecthomas/participle/v2/lexer"

	"aura-lang/internal/span"
)

// node is embedded by every AST type to provide a uniform Span() accessor.
type node struct {
	Pos    lexer.Position
	EndPos lexer.Position
}

func (n node) Span() span.Span {
	length := n.EndPos.Offset - n.Pos.Offset
	if length < 0 {
		length = 0
	}
	return span.New(uint32(n.Pos.Offset), uint32(length))
}

// Program is the parser's top-level production: an ordered list of
// declarations (§6 input contract).
type Program struct {
	node
	Decls []*Decl `@@*`
}

// Decl is one top-level statement: import, type alias, record, enum,
// cell, extern, or a top-level val.
type Decl struct {
	node
	Import  *ImportDecl    `(   @@`
	Alias   *TypeAliasDecl `  | @@`
	Enum    *EnumDecl      `  | @@`
	Record  *RecordDecl    `  | @@`
	Extern  *ExternDecl    `  | @@`
	Cell    *CellDecl      `  | @@`
	Val     *ValDecl       `  | @@ )`
}

type ImportDecl struct {
	node
	Path []string `"import" @Ident ("::" @Ident)* ";"`
}

type TypeAliasDecl struct {
	node
	Name string    `"type" @Ident "="`
	Type *TypeExpr `@@ ";"`
}

type RecordDecl struct {
	node
	Name       string        `"record" @Ident`
	TypeParams []string      `("<" @Ident ("," @Ident)* ">")?`
	Fields     []*FieldDecl  `"{" (@@ ("," @@)* ","?)? "}"`
}

type FieldDecl struct {
	node
	Name string    `@Ident ":"`
	Type *TypeExpr `@@`
}

type EnumDecl struct {
	node
	Name       string         `"type" @Ident`
	TypeParams []string       `("<" @Ident ("," @Ident)* ">")?`
	Variants   []*VariantDecl `"=" "enum" "{" @@ ("," @@)* ","? "}" ";"?`
}

type VariantDecl struct {
	node
	Name    string       `@Ident`
	Payload []*FieldDecl `("(" (@@ ("," @@)*)? ")")?`
}

type ExternDecl struct {
	node
	CallConv string          `"extern" ("(" @("C" | "Stdcall") ")")?`
	Name     string          `"cell" @Ident`
	Params   []*ExternParam  `"(" (@@ ("," @@)*)? ")"`
	Ret      *TypeExpr       `("->" @@)? ";"`
}

type ExternParam struct {
	node
	Name string    `@Ident ":"`
	Type *TypeExpr `@@`
}

type CellDecl struct {
	node
	Name       string        `"cell" @Ident`
	TypeParams []string      `("<" @Ident ("," @Ident)* ">")?`
	Params     []*ParamDecl  `"(" (@@ ("," @@)*)? ")"`
	Ret        *TypeExpr     `("->" @@)?`
	Body       *Block        `@@`
}

type ParamDecl struct {
	node
	Mut  bool      `@"mut"?`
	Name string    `@Ident ":"`
	Type *TypeExpr `@@`
}

type ValDecl struct {
	node
	Mut   bool      `"val" @"mut"?`
	Name  string    `@Ident`
	Type  *TypeExpr `(":" @@)?`
	Value *Expr     `"=" @@ ";"`
}

// TypeExpr is the type grammar: a Tensor or named type, optionally
// followed by a refinement range suffix such as [0..10].
type TypeExpr struct {
	node
	Tensor *TensorType `(  @@`
	Named  *NamedType  `  | @@ )`
	Range  *RangeSuffix `@@?`
}

type TensorType struct {
	node
	Elem *TypeExpr `"Tensor" "<" @@`
	Dims []string  `("," "[" @Integer ("," @Integer)* "]")? ">"`
}

type NamedType struct {
	node
	Name string      `@(Ident | "Unit" | "Bool" | "U32" | "String" | "Style" | "Model")`
	Args []*TypeExpr `("<" @@ ("," @@)* ">")?`
}

type RangeSuffix struct {
	node
	Lo string `"[" @Integer`
	Hi string `".." @Integer "]"`
}

// Block is a brace-delimited statement sequence used for cell bodies,
// if/while branches.
type Block struct {
	node
	Stmts []*Stmt `"{" @@* "}"`
}

type Stmt struct {
	node
	Val    *ValStmt    `(   @@`
	Assign *AssignStmt `  | @@`
	If     *IfStmt     `  | @@`
	While  *WhileStmt  `  | @@`
	Return *ReturnStmt `  | @@`
	Expr   *ExprStmt   `  | @@ )`
}

type ValStmt struct {
	node
	Mut   bool      `"val" @"mut"?`
	Name  string    `@Ident`
	Type  *TypeExpr `(":" @@)?`
	Value *Expr     `"=" @@ ";"`
}

type AssignStmt struct {
	node
	Name  string `@Ident "="`
	Value *Expr  `@@ ";"`
}

type IfStmt struct {
	node
	Cond *Expr  `"if" @@`
	Then *Block `@@`
	Else *Block `("else" @@)?`
}

type WhileStmt struct {
	node
	Cond *Expr  `"while" @@`
	Body *Block `@@`
}

type ReturnStmt struct {
	node
	Value *Expr `"return" @@? ";"`
}

type ExprStmt struct {
	node
	Value *Expr `@@ ";"?`
}

// Expr is parsed flat (a leading unary operand plus a chain of binary
// operators) and re-associated by precedence climbing in Reassociate —
// participle grammars for five precedence levels are needlessly verbose
// for this surface language.
type Expr struct {
	node
	Unary *UnaryExpr `@@`
	Ops   []*BinOpRHS `@@*`
}

type BinOpRHS struct {
	node
	Op    string     `@("||" | "&&" | "==" | "!=" | "<=" | ">=" | "<" | ">" | "+" | "-" | "*" | "/")`
	Right *UnaryExpr `@@`
}

type UnaryExpr struct {
	node
	Op      string     `@("-" | "!")?`
	Operand *UnaryExpr `(@@`
	Primary *Primary   `| @@)`
}

type Primary struct {
	node
	Match *MatchExpr `(  @@`
	Int   string     `  | @Integer`
	Bool  string     `  | @("true" | "false")`
	Str   string     `  | @String`
	Call  *CallExpr  `  | @@`
	Ident string     `  | @Ident`
	Paren *Expr      `  | "(" @@ ")" )`
}

// CallExpr covers plain calls, qualified intrinsic calls (tensor::new),
// and enum constructor calls (Opt::Some(7)) — all are a dotted path
// followed by an argument list.
type CallExpr struct {
	node
	Path []string `@Ident ("::" @Ident)*`
	Args []*Expr  `"(" (@@ ("," @@)*)? ")"`
}

type MatchExpr struct {
	node
	Scrutinee *Expr        `"match" @@`
	Arms      []*MatchArm  `"{" @@* "}"`
}

type MatchArm struct {
	node
	Pattern *Pattern `@@ "=>"`
	Body    *Expr    `@@ ","?`
}

// Pattern matches a literal int, a wildcard, or an enum constructor with
// binder names.
type Pattern struct {
	node
	Wildcard bool     `(  @"_"`
	Int      string   `  | @Integer`
	Ctor     *CtorPattern `  | @@ )`
}

type CtorPattern struct {
	node
	Path    []string `@Ident ("::" @Ident)*`
	Binders []string `("(" (@Ident ("," @Ident)*)? ")")?`
}
