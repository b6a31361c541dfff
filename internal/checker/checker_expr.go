package checker

import (
	"strconv"
	"strings"

	"aura-lang/internal/ast"
	"aura-lang/internal/capability"
	"aura-lang/internal/errors"
	"aura-lang/internal/intrinsics"
	"aura-lang/internal/span"
	"aura-lang/internal/types"
)

// useValue resolves name against the scope chain and routes a use of
// the given mode against the capability graph (§4.3). Copy types never
// touch the graph — every use of a Bool/U32/Unit is a fresh copy, not a
// borrow or a move.
func (fc *funcCheck) useValue(name string, sp span.Span, mode intrinsics.Mode) types.Type {
	b, ok := fc.scope.Lookup(name)
	if !ok {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrUnknownValue,
			errors.Describe(errors.ErrUnknownValue)+": "+name, sp))
		return types.TUnknown()
	}
	if !b.IsLinear {
		return b.Type
	}

	id, err := fc.graph.EnsureAlive(name, sp)
	if err != nil {
		fc.reportCapabilityError(err, sp)
		return b.Type
	}

	switch mode {
	case intrinsics.Read:
		fc.graph.LendRead(id, id, sp)
	case intrinsics.Write:
		if !b.Mut {
			fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrRequiresMut,
				errors.Describe(errors.ErrRequiresMut)+": "+name, sp))
			return b.Type
		}
		fc.graph.LendWrite(id, id, sp)
	case intrinsics.Move:
		fc.graph.ConsumeMove(id, id, sp)
	}
	return b.Type
}

func (fc *funcCheck) reportCapabilityError(err error, sp span.Span) {
	switch e := err.(type) {
	case *capability.UseAfterMoveError:
		diag := errors.NewSemanticError(errors.ErrUseAfterMove,
			errors.Describe(errors.ErrUseAfterMove)+": "+e.Name, sp)
		if e.ConsumedAt != nil {
			diag = diag.WithRelated(*e.ConsumedAt, "moved here")
		}
		fc.c.Diags.AddSemantic(diag)
	case *capability.UnknownValueError:
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrUnknownValue,
			errors.Describe(errors.ErrUnknownValue)+": "+e.Name, sp))
	default:
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrUnknownValue, err.Error(), sp))
	}
}

// checkExpr synthesizes re's type in Move mode — the default for a bare
// value use. Operator operands and if/while conditions are checked in
// Read mode instead, and call arguments take the mode of the matching
// parameter.
func (fc *funcCheck) checkExpr(re *ast.ResolvedExpr) types.Type {
	return fc.checkExprMode(re, intrinsics.Move)
}

func (fc *funcCheck) checkExprMode(re *ast.ResolvedExpr, mode intrinsics.Mode) types.Type {
	var t types.Type
	if re.Binary != nil {
		t = fc.checkBinary(re.Binary)
	} else {
		t = fc.checkUnary(re.Unary, mode)
	}
	fc.c.ExprTypes[re] = t
	return t
}

func (fc *funcCheck) checkBinary(b *ast.BinaryExpr) types.Type {
	lt := fc.checkExprMode(b.Left, intrinsics.Read)
	rt := fc.checkExprMode(b.Right, intrinsics.Read)

	switch b.Op {
	case "&&", "||":
		fc.expectAssignable(lt, types.TBool(), b.Left.Span())
		fc.expectAssignable(rt, types.TBool(), b.Right.Span())
		return types.TBool()
	case "==", "!=", "<", "<=", ">", ">=":
		if !types.Equal(stripRange(lt), stripRange(rt)) {
			fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrTypeMismatch,
				errors.Describe(errors.ErrTypeMismatch), b.Left.Span().Cover(b.Right.Span())))
		}
		return types.TBool()
	default: // + - * /
		fc.expectAssignable(lt, types.TU32(), b.Left.Span())
		fc.expectAssignable(rt, types.TU32(), b.Right.Span())
		return types.TU32()
	}
}

func stripRange(t types.Type) types.Type {
	if t.Kind == types.ConstrainedRange {
		return *t.Base
	}
	return t
}

// assignable wraps types.CheckAssignable with one extra rule: a Tensor
// whose want-side element is Unknown accepts any tensor, regardless of
// its element type. Intrinsic signatures (tensor::len, tensor::get, ...)
// use TensorUnknown as a generic "any tensor" placeholder; no pass
// narrows that element type afterwards.
func assignable(have, want types.Type) bool {
	if want.Kind == types.Tensor && !want.HasShape && want.Elem.Kind == types.Unknown {
		return have.Kind == types.Tensor
	}
	return types.CheckAssignable(have, want)
}

func (fc *funcCheck) expectAssignable(have, want types.Type, sp span.Span) {
	if !assignable(have, want) {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrTypeMismatch,
			errors.Describe(errors.ErrTypeMismatch)+": expected "+want.Display()+", found "+have.Display(), sp))
	}
}

func (fc *funcCheck) checkUnary(u *ast.UnaryExpr, mode intrinsics.Mode) types.Type {
	if u.Operand != nil {
		t := fc.checkUnary(u.Operand, intrinsics.Read)
		switch u.Op {
		case "!":
			fc.expectAssignable(t, types.TBool(), u.Span())
			return types.TBool()
		case "-":
			fc.expectAssignable(t, types.TU32(), u.Span())
			return types.TU32()
		}
		return t
	}
	return fc.checkPrimary(u.Primary, mode, u.Span())
}

func (fc *funcCheck) checkPrimary(p *ast.Primary, mode intrinsics.Mode, sp span.Span) types.Type {
	switch {
	case p.Match != nil:
		return fc.checkMatch(p.Match)
	case p.Call != nil:
		return fc.checkCall(p.Call)
	case p.Paren != nil:
		return fc.checkExprMode(ast.Reassociate(p.Paren), mode)
	case p.Int != "":
		return types.TU32()
	case p.Bool != "":
		return types.TBool()
	case p.Ident != "":
		return fc.useValue(p.Ident, sp, mode)
	default:
		// Str, including the (rare) empty-string literal: the grammar's
		// alternation leaves no other zero-valued candidate once Match,
		// Call, Paren, Int, Bool, and Ident have all been ruled out.
		return types.TString()
	}
}

func (fc *funcCheck) checkCall(call *ast.CallExpr) types.Type {
	qualified := strings.Join(call.Path, "::")

	if sig, ok := intrinsics.Lookup(qualified); ok {
		return fc.checkIntrinsicCall(sig, call)
	}
	if len(call.Path) == 2 {
		if ed, ok := fc.c.Env.Types.LookupEnum(call.Path[0]); ok {
			return fc.checkCtorCall(ed, call)
		}
	}
	if len(call.Path) == 1 {
		if sig, ok := fc.c.Env.Cells[call.Path[0]]; ok {
			return fc.checkCellCall(sig, call)
		}
	}
	fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrUnknownValue,
		"no cell, intrinsic, or enum constructor named "+qualified, call.Span()))
	for _, a := range call.Args {
		fc.checkExpr(ast.Reassociate(a))
	}
	return types.TUnknown()
}

func (fc *funcCheck) checkIntrinsicCall(sig intrinsics.Sig, call *ast.CallExpr) types.Type {
	if len(call.Args) != len(sig.Params) {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrArityMismatch,
			errors.Describe(errors.ErrArityMismatch)+": "+sig.Name, call.Span()))
	}
	for i, a := range call.Args {
		re := ast.Reassociate(a)
		if i >= len(sig.Params) {
			fc.checkExpr(re)
			continue
		}
		param := sig.Params[i]
		argType := fc.checkExprMode(re, param.Mode)
		fc.checkLiteralOrAssignable(re, argType, param.Type)
	}
	return sig.Ret
}

func (fc *funcCheck) checkCellCall(sig *CellSig, call *ast.CallExpr) types.Type {
	if len(call.Args) != len(sig.Params) {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrArityMismatch,
			errors.Describe(errors.ErrArityMismatch)+": "+sig.Name, call.Span()))
	}
	for i, a := range call.Args {
		re := ast.Reassociate(a)
		mode := intrinsics.Move
		if i < len(sig.Params) && sig.Params[i].Type.IsCopy() {
			mode = intrinsics.Read
		}
		argType := fc.checkExprMode(re, mode)
		if i < len(sig.Params) {
			fc.checkLiteralOrAssignable(re, argType, sig.Params[i].Type)
		}
	}
	return sig.Ret
}

func (fc *funcCheck) checkCtorCall(ed *types.EnumDecl, call *ast.CallExpr) types.Type {
	variantName := call.Path[1]
	var variant *types.EnumVariant
	for i := range ed.Variants {
		if ed.Variants[i].Name == variantName {
			variant = &ed.Variants[i]
			break
		}
	}
	if variant == nil {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrUnknownValue,
			"enum "+ed.Name+" has no variant "+variantName, call.Span()))
		for _, a := range call.Args {
			fc.checkExpr(ast.Reassociate(a))
		}
		return types.TApplied(ed.Name, nil)
	}
	if len(call.Args) != len(variant.Payload) {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrArityMismatch,
			errors.Describe(errors.ErrArityMismatch)+": "+ed.Name+"::"+variantName, call.Span()))
	}
	for i, a := range call.Args {
		re := ast.Reassociate(a)
		mode := intrinsics.Move
		if i < len(variant.Payload) && variant.Payload[i].Type.IsCopy() {
			mode = intrinsics.Read
		}
		argType := fc.checkExprMode(re, mode)
		if i < len(variant.Payload) {
			fc.checkLiteralOrAssignable(re, argType, variant.Payload[i].Type)
		}
	}
	return types.TApplied(ed.Name, nil)
}

// checkLiteralOrAssignable applies the refinement-polymorphism rule
// (§4.1): an int-literal expression is checked against want's bounds
// directly rather than through its synthesized (unconstrained U32)
// type, so a literal like 7 can flow into U32[0..10] without an
// explicit annotation.
func (fc *funcCheck) checkLiteralOrAssignable(re *ast.ResolvedExpr, have, want types.Type) {
	if n, ok := literalValue(re); ok {
		if !types.LiteralFits(n, want) {
			fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrLiteralOutOfRange,
				errors.Describe(errors.ErrLiteralOutOfRange), re.Span()))
		}
		return
	}
	fc.expectAssignable(have, want, re.Span())
}

// literalValue reports the integer value of re when it is a bare
// unsigned int literal (no unary minus, no further operators) — the
// only shape the refinement rule applies to (§4.1).
func literalValue(re *ast.ResolvedExpr) (uint64, bool) {
	if re.Binary != nil || re.Unary == nil || re.Unary.Operand != nil || re.Unary.Primary == nil {
		return 0, false
	}
	p := re.Unary.Primary
	if p.Int == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(p.Int, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
