package checker

import (
	"aura-lang/internal/ir"
	"aura-lang/internal/types"
)

// CellSig is a user-defined function's checked signature. User-defined
// cells take all non-copy parameters by Move (§4.2).
type CellSig struct {
	Name   string
	Params []ParamSig
	Ret    types.Type
}

type ParamSig struct {
	Name string
	Type types.Type
	Mut  bool
}

// ExternSig mirrors CellSig for extern declarations, plus the calling
// convention.
type ExternSig struct {
	Name     string
	Params   []types.Type
	Ret      types.Type
	CallConv ir.CallConv
}

// Env is the stage-1 name/type environment (§2 "fold top-level
// declarations into a symbol table"), built once before checking any
// function body.
type Env struct {
	Types   *types.Env
	Cells   map[string]*CellSig
	Externs map[string]*ExternSig
}

func NewEnv() *Env {
	return &Env{
		Types:   types.NewEnv(),
		Cells:   make(map[string]*CellSig),
		Externs: make(map[string]*ExternSig),
	}
}

// Scope is a lexical scope of value bindings. The checker pushes one per
// function body, block (if/while branch), and match arm, and pops it
// when the block ends — pattern binders for linear payloads are
// themselves linear roots whose lifetime ends at the end of the arm
// (§4.2 step 2).
type Scope struct {
	parent   *Scope
	bindings map[string]*Binding
}

// Binding is a checked value binding: its declared type, mutability,
// and — for linear (non-copy) types — the capability id tracking its
// ownership state.
type Binding struct {
	Name     string
	Type     types.Type
	Mut      bool
	IsLinear bool
	CapID    ir.CapabilityId
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, bindings: make(map[string]*Binding)}
}

func (s *Scope) Define(b *Binding) {
	s.bindings[b.Name] = b
}

func (s *Scope) Lookup(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}
