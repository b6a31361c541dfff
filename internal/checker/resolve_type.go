package checker

import (
	"strconv"

	"aura-lang/internal/ast"
	"aura-lang/internal/types"
)

// resolveTypeExpr converts a parsed ast.TypeExpr into a types.Type,
// resolving Named references against env (§4.1). Unresolved names
// (generic type parameters, or genuinely unknown names) are returned as
// Named; no caller reports them as unknown types or substitutes type
// parameters.
// ResolveTypeExpr exposes resolveTypeExpr to other packages (the
// lowering pass resolves val-statement type annotations against the
// same Env the checker built, rather than re-deriving its own).
func ResolveTypeExpr(env *Env, t *ast.TypeExpr) types.Type {
	return resolveTypeExpr(env, t)
}

func resolveTypeExpr(env *Env, t *ast.TypeExpr) types.Type {
	if t == nil {
		return types.TUnknown()
	}

	var base types.Type
	switch {
	case t.Tensor != nil:
		elem := resolveTypeExpr(env, t.Tensor.Elem)
		var shape []uint64
		for _, d := range t.Tensor.Dims {
			n, _ := parseUint(d)
			shape = append(shape, n)
		}
		base = types.TTensor(elem, shape)
	case t.Named != nil:
		base = resolveNamed(env, t.Named)
	default:
		base = types.TUnknown()
	}

	if t.Range != nil {
		lo, _ := parseUint(t.Range.Lo)
		hi, _ := parseUint(t.Range.Hi)
		base = types.TRange(base, lo, hi)
	}
	return base
}

func resolveNamed(env *Env, n *ast.NamedType) types.Type {
	switch n.Name {
	case "Unit":
		return types.TUnit()
	case "Bool":
		return types.TBool()
	case "U32":
		return types.TU32()
	case "String":
		return types.TString()
	case "Style":
		return types.TStyle()
	case "Model":
		return types.TModel()
	}

	args := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = resolveTypeExpr(env, a)
	}

	resolved := env.Types.Resolve(types.TNamed(n.Name))
	if resolved.Kind == types.Applied && len(args) > 0 {
		return types.TApplied(resolved.Name, args)
	}
	if len(args) > 0 {
		return types.TApplied(n.Name, args)
	}
	return resolved
}

func parseUint(s string) (uint64, error) {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}
