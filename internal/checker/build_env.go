package checker

import (
	"aura-lang/internal/ast"
	"aura-lang/internal/errors"
	"aura-lang/internal/ir"
	"aura-lang/internal/types"
)

// BuildEnv folds a program's top-level declarations into a symbol table
// (§2 stage 1). Records and enums are registered first so field,
// variant, cell, and extern types may reference them in any order; a
// type alias is resolved where it is declared, so it sees only the
// records, enums, and aliases declared before it. Cells and externs are
// registered last.
func BuildEnv(prog *ast.Program) (*Env, []*errors.SemanticError) {
	env := NewEnv()
	var diags []*errors.SemanticError

	for _, d := range prog.Decls {
		switch {
		case d.Alias != nil:
			env.Types.DefineAlias(d.Alias.Name, resolveTypeExpr(env, d.Alias.Type))
		case d.Record != nil:
			env.Types.DefineRecord(&types.RecordDecl{
				Name:       d.Record.Name,
				TypeParams: d.Record.TypeParams,
			})
		case d.Enum != nil:
			env.Types.DefineEnum(&types.EnumDecl{
				Name:       d.Enum.Name,
				TypeParams: d.Enum.TypeParams,
			})
		}
	}

	// Second pass: now that every nominal name resolves, fill in field
	// and variant payload types (they may reference each other or
	// themselves — e.g. a recursive list — so this pass happens after
	// every name is registered).
	for _, d := range prog.Decls {
		switch {
		case d.Record != nil:
			rd, _ := env.Types.LookupRecord(d.Record.Name)
			for _, f := range d.Record.Fields {
				rd.Fields = append(rd.Fields, types.Field{Name: f.Name, Type: resolveTypeExpr(env, f.Type)})
			}
		case d.Enum != nil:
			ed, _ := env.Types.LookupEnum(d.Enum.Name)
			for _, v := range d.Enum.Variants {
				var payload []types.Field
				for _, f := range v.Payload {
					payload = append(payload, types.Field{Name: f.Name, Type: resolveTypeExpr(env, f.Type)})
				}
				ed.Variants = append(ed.Variants, types.EnumVariant{Name: v.Name, Payload: payload})
			}
		}
	}

	for _, d := range prog.Decls {
		switch {
		case d.Extern != nil:
			sig := &ExternSig{Name: d.Extern.Name, CallConv: callConvOf(d.Extern.CallConv)}
			for _, p := range d.Extern.Params {
				sig.Params = append(sig.Params, resolveTypeExpr(env, p.Type))
			}
			if d.Extern.Ret != nil {
				sig.Ret = resolveTypeExpr(env, d.Extern.Ret)
			} else {
				sig.Ret = types.TUnit()
			}
			env.Externs[d.Extern.Name] = sig
		case d.Cell != nil:
			sig := &CellSig{Name: d.Cell.Name}
			for _, p := range d.Cell.Params {
				sig.Params = append(sig.Params, ParamSig{
					Name: p.Name,
					Type: resolveTypeExpr(env, p.Type),
					Mut:  p.Mut,
				})
			}
			if d.Cell.Ret != nil {
				sig.Ret = resolveTypeExpr(env, d.Cell.Ret)
			} else {
				sig.Ret = types.TUnit()
			}
			env.Cells[d.Cell.Name] = sig
		}
	}

	return env, diags
}

func callConvOf(s string) ir.CallConv {
	if s == "Stdcall" {
		return ir.CallConvStdcall
	}
	return ir.CallConvC
}
