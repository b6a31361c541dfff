package verify

import (
	"fmt"

	"aura-lang/internal/ir"
)

// CollectObligations walks every function in mod, in name order, and turns each
// RangeCheckU32 instruction into an Obligation (§4.6). When the checked
// value traces back to a literal InstBindStrand in the same function,
// the obligation carries that literal so DummyProver (or any solver
// that only handles the literal case) can decide it outright; otherwise
// it is left for a real solver to discharge.
func CollectObligations(mod *ir.ModuleIR) []Obligation {
	var obligations []Obligation
	for _, fn := range mod.OrderedFunctions() {
		literals := constU32Values(fn)
		for _, b := range fn.Blocks {
			for _, inst := range b.Insts {
				if inst.Kind != ir.InstRangeCheckU32 {
					continue
				}
				lit, known := literals[inst.CheckValue]
				obligations = append(obligations, Obligation{
					Description: fmt.Sprintf("%s: value in [%d, %d]", fn.Name, inst.Lo, inst.Hi),
					Span:        inst.Span,
					HasLiteral:  known,
					Literal:     lit,
					Lo:          inst.Lo,
					Hi:          inst.Hi,
				})
			}
		}
	}
	return obligations
}

func constU32Values(fn *ir.FunctionIR) map[ir.ValueId]uint64 {
	out := make(map[ir.ValueId]uint64)
	for _, b := range fn.Blocks {
		for _, inst := range b.Insts {
			if inst.Kind == ir.InstBindStrand && inst.Dest != nil && inst.Expr.IsConst && inst.Expr.Kind == ir.RVU32 {
				out[*inst.Dest] = inst.Expr.ConstU32
			}
		}
	}
	return out
}
