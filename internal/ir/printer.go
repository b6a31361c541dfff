package ir

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Print renders a ModuleIR in a debug textual form, functions in
// canonical name order (§5). This is a debugging aid, not a stable
// serialization format — §6 leaves the wire format to external tools.
func Print(m *ModuleIR) string {
	var b strings.Builder
	for _, fn := range m.OrderedFunctions() {
		printFunction(&b, fn)
	}
	return b.String()
}

func printFunction(b *strings.Builder, fn *FunctionIR) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, typeName(p.Type))
	}
	fmt.Fprintf(b, "fn %s(%s) -> %s {\n", fn.Name, strings.Join(params, ", "), typeName(fn.Ret))
	for _, blk := range fn.Blocks {
		printBlock(b, blk)
	}
	b.WriteString("}\n")
}

func printBlock(b *strings.Builder, blk *BasicBlock) {
	fmt.Fprintf(b, "  bb%d:\n", blk.ID)
	for _, inst := range blk.Insts {
		b.WriteString("    ")
		printInst(b, inst)
		b.WriteString("\n")
	}
	b.WriteString("    ")
	printTerm(b, blk.Term)
	b.WriteString("\n")
}

func printInst(b *strings.Builder, inst *Inst) {
	dest := ""
	if inst.Dest != nil {
		dest = fmt.Sprintf("%%%d = ", *inst.Dest)
	}
	switch inst.Kind {
	case InstAllocCapability:
		fmt.Fprintf(b, "%salloc_capability %q", dest, inst.Name)
	case InstBindStrand:
		fmt.Fprintf(b, "%sbind_strand %q = %s", dest, inst.Name, printRValue(inst.Expr))
	case InstCall:
		fmt.Fprintf(b, "%scall %s(%s)", dest, inst.Callee, printArgs(inst.Args))
	case InstComputeKernel:
		fmt.Fprintf(b, "%scompute_kernel %s(%s)", dest, inst.Callee, printArgs(inst.Args))
	case InstRangeCheckU32:
		fmt.Fprintf(b, "range_check_u32 %%%d in [%d..%d]", inst.CheckValue, inst.Lo, inst.Hi)
	case InstUnary:
		fmt.Fprintf(b, "%sunary %s %%%d", dest, unaryOpName(inst.UnOp), inst.Left)
	case InstBinary:
		fmt.Fprintf(b, "%sbinary %s %%%d, %%%d", dest, binOpName(inst.BinOp), inst.Left, inst.Right)
	case InstPhi:
		parts := make([]string, len(inst.Incomings))
		for i, in := range inst.Incomings {
			parts[i] = fmt.Sprintf("[bb%d: %%%d]", in.Block, in.Value)
		}
		fmt.Fprintf(b, "%sphi %s", dest, strings.Join(parts, ", "))
	}
}

func printArgs(args []ValueId) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%%%d", a)
	}
	return strings.Join(parts, ", ")
}

func printRValue(v RValue) string {
	if !v.IsConst {
		return fmt.Sprintf("%%%d", v.Local)
	}
	switch v.Kind {
	case RVU32:
		return fmt.Sprintf("%d", v.ConstU32)
	case RVBool:
		return fmt.Sprintf("%t", v.ConstBool)
	case RVString:
		return fmt.Sprintf("%q", v.ConstStr)
	default:
		return "<const?>"
	}
}

func printTerm(b *strings.Builder, t Terminator) {
	switch t.Kind {
	case TermReturn:
		if t.HasValue {
			fmt.Fprintf(b, "return %%%d", t.Value)
		} else {
			b.WriteString("return")
		}
	case TermBr:
		fmt.Fprintf(b, "br bb%d", t.Target)
	case TermCondBr:
		fmt.Fprintf(b, "condbr %%%d, bb%d, bb%d", t.Cond, t.Then, t.Else)
	case TermSwitch:
		parts := make([]string, len(t.Cases))
		for i, c := range t.Cases {
			parts[i] = fmt.Sprintf("%d: bb%d", c.Value, c.Block)
		}
		fmt.Fprintf(b, "switch %%%d [%s] default bb%d", t.Scrut, strings.Join(parts, ", "), t.Default)
	}
}

func typeName(t Type) string {
	switch t {
	case TyUnit:
		return "Unit"
	case TyBool:
		return "Bool"
	case TyU32:
		return "U32"
	case TyString:
		return "String"
	case TyTensor:
		return "Tensor"
	case TyOpaque:
		return "Opaque"
	default:
		return "?"
	}
}

func unaryOpName(op UnaryOp) string {
	if op == OpNeg {
		return "neg"
	}
	return "not"
}

func binOpName(op BinOp) string {
	names := map[BinOp]string{
		OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div",
		OpEq: "eq", OpNe: "ne", OpLt: "lt", OpGt: "gt", OpLe: "le", OpGe: "ge",
		OpAnd: "and", OpOr: "or",
	}
	return names[op]
}

// MangleStdcall applies the classic stdcall symbol transform (§6):
// `_<Name>@<argBytes>`, argBytes = 4 * len(params). The name is first
// normalized to PascalCase, matching how the original externs are
// declared in Aura source, so two differently-cased spellings of the
// same extern don't produce distinct mangled symbols. Nothing in this
// repository calls it: Print does not render externs, and no backend
// exists here (out of scope per §1).
func MangleStdcall(name string, paramCount int) string {
	normalized := strcase.ToCamel(name)
	return fmt.Sprintf("_%s@%d", normalized, paramCount*4)
}
