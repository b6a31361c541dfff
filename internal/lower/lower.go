// Package lower implements §4.4/§4.5: translating a checked ast.Program
// into a ModuleIR. It consults the same checker.Env the checker built
// (cell signatures, extern signatures, record/enum declarations) but
// performs its own lightweight type-synthesis walk rather than
// consuming the checker's per-expression annotations — ast.Expr nodes
// are re-associated fresh on every visit (see ast.Reassociate), so a
// map keyed by the resulting *ast.ResolvedExpr pointers would not
// survive from one pass to the next. Re-deriving types during lowering
// avoids that fragility at the cost of walking each expression twice
// across the whole pipeline.
package lower

import (
	"aura-lang/internal/ast"
	"aura-lang/internal/checker"
	"aura-lang/internal/ir"
	"aura-lang/internal/types"
)

// LowerProgram lowers every cell declaration in prog into mod's
// function table, plus every extern declaration into mod's extern
// table (§3). The program must already have checked cleanly —
// lowering assumes well-typedness and does not re-validate it.
func LowerProgram(env *checker.Env, prog *ast.Program) *ir.ModuleIR {
	mod := ir.NewModule()
	for name, sig := range env.Externs {
		mod.Externs[name] = ir.ExternFnSig{
			Params:   toIRTypes(sig.Params),
			Ret:      toIRType(sig.Ret),
			CallConv: sig.CallConv,
		}
	}

	for _, d := range prog.Decls {
		if d.Cell != nil {
			if fn := lowerCell(env, d.Cell); fn != nil {
				mod.AddFunction(fn)
			}
		}
	}
	return mod
}

func lowerCell(env *checker.Env, cell *ast.CellDecl) *ir.FunctionIR {
	sig, ok := env.Cells[cell.Name]
	if !ok {
		return nil
	}

	fl := &funcLower{
		env:        env,
		ids:        ir.NewIdGen(),
		locals:     make(map[string]ir.ValueId),
		localTypes: make(map[string]types.Type),
		termed:     make(map[ir.BlockId]bool),
	}

	entry := fl.newBlock()
	fl.cur = entry

	params := make([]ir.Param, len(sig.Params))
	for i, p := range sig.Params {
		id := fl.ids.FreshValue()
		params[i] = ir.Param{Name: p.Name, Type: toIRType(p.Type), Span: cell.Span(), Value: id}
		fl.locals[p.Name] = id
		fl.localTypes[p.Name] = p.Type
	}

	fl.lowerBlock(cell.Body)

	return &ir.FunctionIR{
		Name:   cell.Name,
		Span:   cell.Span(),
		Params: params,
		Ret:    toIRType(sig.Ret),
		Blocks: fl.blocks,
		Entry:  entry.ID,
	}
}

// toIRType erases a checker type to the IR's reduced set (§4.4): a
// ConstrainedRange erases to its base (the bound itself becomes a
// RangeCheckU32 obligation, not a type), and every nominal/applied user
// type erases to TyOpaque — enum values are tensor-encoded by
// lowerCtor/lowerMatch (§4.5), but their IR type tag stays TyOpaque.
func toIRType(t types.Type) ir.Type {
	switch t.Kind {
	case types.Unit:
		return ir.TyUnit
	case types.Bool:
		return ir.TyBool
	case types.U32:
		return ir.TyU32
	case types.String:
		return ir.TyString
	case types.Tensor:
		return ir.TyTensor
	case types.ConstrainedRange:
		return toIRType(*t.Base)
	default:
		return ir.TyOpaque
	}
}

func toIRTypes(ts []types.Type) []ir.Type {
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = toIRType(t)
	}
	return out
}
