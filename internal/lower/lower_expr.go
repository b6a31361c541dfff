package lower

import (
	"strconv"
	"strings"

	"aura-lang/internal/ast"
	"aura-lang/internal/intrinsics"
	"aura-lang/internal/ir"
	"aura-lang/internal/span"
	"aura-lang/internal/types"
)

func (fl *funcLower) lowerResolved(re *ast.ResolvedExpr) (ir.ValueId, types.Type) {
	if re.Binary != nil {
		return fl.lowerBinary(re.Binary)
	}
	return fl.lowerUnary(re.Unary)
}

func (fl *funcLower) lowerBinary(b *ast.BinaryExpr) (ir.ValueId, types.Type) {
	lv, _ := fl.lowerResolved(b.Left)
	rv, _ := fl.lowerResolved(b.Right)

	op, resultType := binOpFor(b.Op)
	id := fl.emit(ir.Inst{Kind: ir.InstBinary, BinOp: op, Left: lv, Right: rv, Span: b.Span()})
	return id, resultType
}

func binOpFor(op string) (ir.BinOp, types.Type) {
	switch op {
	case "+":
		return ir.OpAdd, types.TU32()
	case "-":
		return ir.OpSub, types.TU32()
	case "*":
		return ir.OpMul, types.TU32()
	case "/":
		return ir.OpDiv, types.TU32()
	case "==":
		return ir.OpEq, types.TBool()
	case "!=":
		return ir.OpNe, types.TBool()
	case "<":
		return ir.OpLt, types.TBool()
	case ">":
		return ir.OpGt, types.TBool()
	case "<=":
		return ir.OpLe, types.TBool()
	case ">=":
		return ir.OpGe, types.TBool()
	case "&&":
		return ir.OpAnd, types.TBool()
	default: // "||"
		return ir.OpOr, types.TBool()
	}
}

func (fl *funcLower) lowerUnary(u *ast.UnaryExpr) (ir.ValueId, types.Type) {
	if u.Operand != nil {
		val, t := fl.lowerUnary(u.Operand)
		switch u.Op {
		case "!":
			return fl.emit(ir.Inst{Kind: ir.InstUnary, UnOp: ir.OpNot, Left: val, Span: u.Span()}), types.TBool()
		case "-":
			return fl.emit(ir.Inst{Kind: ir.InstUnary, UnOp: ir.OpNeg, Left: val, Span: u.Span()}), types.TU32()
		default:
			return val, t
		}
	}
	return fl.lowerPrimary(u.Primary, u.Span())
}

func (fl *funcLower) lowerPrimary(p *ast.Primary, sp span.Span) (ir.ValueId, types.Type) {
	switch {
	case p.Match != nil:
		return fl.lowerMatch(p.Match)
	case p.Call != nil:
		return fl.lowerCall(p.Call)
	case p.Paren != nil:
		return fl.lowerResolved(ast.Reassociate(p.Paren))
	case p.Int != "":
		n, _ := strconv.ParseUint(p.Int, 0, 64)
		return fl.constU32(n, sp), types.TU32()
	case p.Bool != "":
		return fl.constBool(p.Bool == "true", sp), types.TBool()
	case p.Ident != "":
		if id, ok := fl.locals[p.Ident]; ok {
			return id, fl.localTypes[p.Ident]
		}
		return fl.constU32(0, sp), types.TUnknown()
	default:
		return fl.constString(p.Str, sp), types.TString()
	}
}

func (fl *funcLower) lowerCall(call *ast.CallExpr) (ir.ValueId, types.Type) {
	qualified := strings.Join(call.Path, "::")

	if sig, ok := intrinsics.Lookup(qualified); ok {
		args := make([]ir.ValueId, len(call.Args))
		for i, a := range call.Args {
			v, _ := fl.lowerResolved(ast.Reassociate(a))
			args[i] = v
		}
		kind := ir.InstCall
		if strings.HasPrefix(qualified, "ai::") {
			kind = ir.InstComputeKernel
		}
		return fl.emit(ir.Inst{Kind: kind, Callee: qualified, Args: args, Span: call.Span()}), sig.Ret
	}

	if len(call.Path) == 2 {
		if ed, ok := fl.env.Types.LookupEnum(call.Path[0]); ok {
			return fl.lowerCtor(ed, call)
		}
	}

	if len(call.Path) == 1 {
		if sig, ok := fl.env.Cells[call.Path[0]]; ok {
			args := make([]ir.ValueId, len(call.Args))
			for i, a := range call.Args {
				v, _ := fl.lowerResolved(ast.Reassociate(a))
				args[i] = v
			}
			return fl.emit(ir.Inst{Kind: ir.InstCall, Callee: call.Path[0], Args: args, Span: call.Span()}), sig.Ret
		}
	}

	return fl.constU32(0, call.Span()), types.TUnknown()
}

// lowerCtor rewrites an enum constructor call into the closed tensor
// encoding (§4.5): a fresh Tensor<U32> sized for the discriminant plus
// every payload field, the discriminant written at cell 0, and each
// argument written at cell i+1 in declaration order. No backend needs
// per-ADT logic — every enum becomes the same shape of tensor::new/
// tensor::set calls.
func (fl *funcLower) lowerCtor(ed *types.EnumDecl, call *ast.CallExpr) (ir.ValueId, types.Type) {
	variantName := call.Path[1]
	var variantIdx int
	var variant *types.EnumVariant
	for i := range ed.Variants {
		if ed.Variants[i].Name == variantName {
			variantIdx = i
			variant = &ed.Variants[i]
			break
		}
	}
	if variant == nil {
		return fl.constU32(0, call.Span()), types.TApplied(ed.Name, nil)
	}

	sp := call.Span()
	size := fl.constU32(uint64(1+len(variant.Payload)), sp)
	tensorVal := fl.emit(ir.Inst{Kind: ir.InstCall, Callee: "tensor::new", Args: []ir.ValueId{size}, Span: sp})

	zero := fl.constU32(0, sp)
	disc := fl.constU32(uint64(variantIdx), sp)
	fl.emit(ir.Inst{Kind: ir.InstCall, Callee: "tensor::set", Args: []ir.ValueId{tensorVal, zero, disc}, Span: sp})

	for i, a := range call.Args {
		v, _ := fl.lowerResolved(ast.Reassociate(a))
		idx := fl.constU32(uint64(i+1), sp)
		fl.emit(ir.Inst{Kind: ir.InstCall, Callee: "tensor::set", Args: []ir.ValueId{tensorVal, idx, v}, Span: sp})
	}

	return tensorVal, types.TApplied(ed.Name, nil)
}

// lowerMatch compiles a match expression to a Switch terminator over
// the scrutinee's discriminant (tensor cell 0 for an enum, the bare
// scrutinee value for an int match) plus a merge block joining every
// arm's result through a Phi (§4.5). The checker has already enforced
// that a wildcard arm exists and supplies the Switch default.
func (fl *funcLower) lowerMatch(m *ast.MatchExpr) (ir.ValueId, types.Type) {
	scrutVal, scrutType := fl.lowerResolved(ast.Reassociate(m.Scrutinee))

	var enumDecl *types.EnumDecl
	if scrutType.Kind == types.Applied {
		if ed, ok := fl.env.Types.LookupEnum(scrutType.Name); ok {
			enumDecl = ed
		}
	}

	sp := m.Span()
	var discVal ir.ValueId
	if enumDecl != nil {
		zero := fl.constU32(0, sp)
		discVal = fl.emit(ir.Inst{Kind: ir.InstCall, Callee: "tensor::get", Args: []ir.ValueId{scrutVal, zero}, Span: sp})
	} else {
		discVal = scrutVal
	}

	switchBlock := fl.cur
	armBlocks := make([]*ir.BasicBlock, len(m.Arms))
	for i := range m.Arms {
		armBlocks[i] = fl.newBlock()
	}
	mergeBlock := fl.newBlock()

	var cases []ir.SwitchCase
	var defaultBlock ir.BlockId
	for i, arm := range m.Arms {
		switch {
		case arm.Pattern.Wildcard:
			defaultBlock = armBlocks[i].ID
		case arm.Pattern.Int != "":
			n, _ := strconv.ParseUint(arm.Pattern.Int, 0, 64)
			cases = append(cases, ir.SwitchCase{Value: n, Block: armBlocks[i].ID})
		case arm.Pattern.Ctor != nil && enumDecl != nil:
			name := arm.Pattern.Ctor.Path[len(arm.Pattern.Ctor.Path)-1]
			for vi := range enumDecl.Variants {
				if enumDecl.Variants[vi].Name == name {
					cases = append(cases, ir.SwitchCase{Value: uint64(vi), Block: armBlocks[i].ID})
				}
			}
		}
	}
	fl.setTerm(switchBlock, ir.Terminator{Kind: ir.TermSwitch, Scrut: discVal, Default: defaultBlock, Cases: cases})

	var incomings []ir.PhiIncoming
	result := types.TUnknown()
	for i, arm := range m.Arms {
		fl.cur = armBlocks[i]
		if enumDecl != nil && arm.Pattern.Ctor != nil {
			fl.bindCtorPattern(arm.Pattern.Ctor, enumDecl, scrutVal, arm.Span())
		}
		armVal, armType := fl.lowerResolved(ast.Reassociate(arm.Body))
		if unified, ok := types.Unify(result, armType); ok {
			result = unified
		}
		armEnd := fl.cur
		fl.setTerm(armEnd, ir.Terminator{Kind: ir.TermBr, Target: mergeBlock.ID})
		incomings = append(incomings, ir.PhiIncoming{Block: armEnd.ID, Value: armVal})
	}

	fl.cur = mergeBlock
	_, phiVal := fl.emitPhi(incomings)
	return phiVal, result
}

func (fl *funcLower) bindCtorPattern(ctor *ast.CtorPattern, ed *types.EnumDecl, scrutVal ir.ValueId, sp span.Span) {
	variantName := ctor.Path[len(ctor.Path)-1]
	var variant *types.EnumVariant
	for vi := range ed.Variants {
		if ed.Variants[vi].Name == variantName {
			variant = &ed.Variants[vi]
			break
		}
	}
	if variant == nil {
		return
	}
	for i, binder := range ctor.Binders {
		if i >= len(variant.Payload) {
			break
		}
		idx := fl.constU32(uint64(i+1), sp)
		val := fl.emit(ir.Inst{Kind: ir.InstCall, Callee: "tensor::get", Args: []ir.ValueId{scrutVal, idx}, Span: sp})
		fl.locals[binder] = val
		fl.localTypes[binder] = variant.Payload[i].Type
	}
}
