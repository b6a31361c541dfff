// Package ir implements the SSA-style module IR the checker lowers into
// (§3, §4.4). It is deliberately primitive: every backend (not
// implemented here — out of scope per spec §1) sees only this reduced
// type/instruction set, never the checker's richer refinement types.
package ir

import (
	"sort"

	"aura-lang/internal/span"
)

// Type is the IR's own reduced type tag — a deliberately smaller set
// than internal/types.Type, since by the time a value reaches the IR
// its refinement bounds have already been discharged into
// RangeCheckU32 obligations and its nominal shape has been erased to
// the tensor encoding (§4.5).
type Type int

const (
	TyUnit Type = iota
	TyBool
	TyU32
	TyString
	TyTensor
	TyOpaque // user nominal type, erased; Name carries the display form
)

type ExecutionHint int

const (
	Sequential ExecutionHint = iota
	Parallel
	Predictive
)

type CallConv int

const (
	CallConvC CallConv = iota
	CallConvStdcall
)

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

// ExternFnSig describes one extern declaration's ABI-relevant shape.
type ExternFnSig struct {
	Params   []Type
	Ret      Type
	CallConv CallConv
}

// ModuleIR is the lowering pass's output (§3). Functions are iterated in
// name order for stable diagnostics/printing (§5 ordering guarantees);
// FunctionOrder records that canonical order explicitly rather than
// relying on map iteration.
type ModuleIR struct {
	Functions    map[string]*FunctionIR
	FunctionOrder []string
	Externs      map[string]ExternFnSig
}

func NewModule() *ModuleIR {
	return &ModuleIR{
		Functions: make(map[string]*FunctionIR),
		Externs:   make(map[string]ExternFnSig),
	}
}

// AddFunction inserts fn, keeping FunctionOrder sorted by name.
func (m *ModuleIR) AddFunction(fn *FunctionIR) {
	if _, exists := m.Functions[fn.Name]; !exists {
		m.FunctionOrder = append(m.FunctionOrder, fn.Name)
		sort.Strings(m.FunctionOrder)
	}
	m.Functions[fn.Name] = fn
}

// OrderedFunctions returns functions in canonical (name-sorted) order.
func (m *ModuleIR) OrderedFunctions() []*FunctionIR {
	out := make([]*FunctionIR, 0, len(m.FunctionOrder))
	for _, name := range m.FunctionOrder {
		out = append(out, m.Functions[name])
	}
	return out
}

// Rewrite applies f to every function in m and returns a new module with
// the results, leaving m untouched. The core never mutates a ModuleIR in
// place once lowering returns it (§5); any later optimizer pass builds
// on top of this rather than editing FunctionIR values directly.
func Rewrite(m *ModuleIR, f func(*FunctionIR) *FunctionIR) ModuleIR {
	out := ModuleIR{
		Functions:     make(map[string]*FunctionIR, len(m.Functions)),
		FunctionOrder: append([]string(nil), m.FunctionOrder...),
		Externs:       m.Externs,
	}
	for name, fn := range m.Functions {
		out.Functions[name] = f(fn)
	}
	return out
}

type Param struct {
	Name  string
	Type  Type
	Span  span.Span
	Value ValueId
}

type FunctionIR struct {
	Name   string
	Span   span.Span
	Params []Param
	Ret    Type
	Blocks []*BasicBlock
	Entry  BlockId
}

// BlockByID finds a block by id, nil if absent.
func (f *FunctionIR) BlockByID(id BlockId) *BasicBlock {
	for _, b := range f.Blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

type BasicBlock struct {
	ID   BlockId
	Span span.Span
	Hint ExecutionHint
	Insts []*Inst
	Term Terminator
}

// RValue is a constant or a reference to an existing SSA value.
type RValue struct {
	IsConst  bool
	ConstU32 uint64
	ConstBool bool
	ConstStr string
	Kind     RValueKind
	Local    ValueId
}

type RValueKind int

const (
	RVU32 RValueKind = iota
	RVBool
	RVString
	RVLocal
)

func RVConstU32(n uint64) RValue    { return RValue{IsConst: true, Kind: RVU32, ConstU32: n} }
func RVConstBool(b bool) RValue     { return RValue{IsConst: true, Kind: RVBool, ConstBool: b} }
func RVConstString(s string) RValue { return RValue{IsConst: true, Kind: RVString, ConstStr: s} }
func RVLocalRef(id ValueId) RValue  { return RValue{Kind: RVLocal, Local: id} }

// InstKind discriminates the closed instruction set from §3.
type InstKind int

const (
	InstAllocCapability InstKind = iota
	InstBindStrand
	InstCall
	InstComputeKernel
	InstRangeCheckU32
	InstUnary
	InstBinary
	InstPhi
)

type PhiIncoming struct {
	Block BlockId
	Value ValueId
}

type Inst struct {
	Span span.Span
	Dest *ValueId
	Kind InstKind

	// AllocCapability / BindStrand
	Name string
	Expr RValue

	// Call / ComputeKernel
	Callee string
	Args   []ValueId

	// RangeCheckU32
	CheckValue ValueId
	Lo, Hi     uint64

	// Unary / Binary
	UnOp  UnaryOp
	BinOp BinOp
	Left  ValueId
	Right ValueId

	// Phi
	Incomings []PhiIncoming
}

// TerminatorKind discriminates the closed terminator set from §3.
type TerminatorKind int

const (
	TermReturn TerminatorKind = iota
	TermBr
	TermCondBr
	TermSwitch
)

type SwitchCase struct {
	Value uint64
	Block BlockId
}

type Terminator struct {
	Kind TerminatorKind

	// Return
	HasValue bool
	Value    ValueId

	// Br
	Target BlockId

	// CondBr
	Cond  ValueId
	Then  BlockId
	Else  BlockId

	// Switch
	Scrut   ValueId
	Default BlockId
	Cases   []SwitchCase
}
