package checker

import (
	"aura-lang/internal/ast"
	"aura-lang/internal/errors"
	"aura-lang/internal/intrinsics"
	"aura-lang/internal/types"
)

// checkMatch enforces §4.2 steps 2-4: the scrutinee is consumed (Move —
// a match always owns what it inspects), exactly one wildcard arm is
// allowed and it must be last, literal and constructor arms may not
// repeat, and every arm body must unify to a single result type.
func (fc *funcCheck) checkMatch(m *ast.MatchExpr) types.Type {
	scrutRE := ast.Reassociate(m.Scrutinee)
	scrutType := fc.checkExprMode(scrutRE, intrinsics.Move)

	var enumDecl *types.EnumDecl
	if scrutType.Kind == types.Applied {
		if ed, ok := fc.c.Env.Types.LookupEnum(scrutType.Name); ok {
			enumDecl = ed
		}
	}

	hasWildcard := false
	seen := make(map[string]bool)
	result := types.TUnknown()

	for i, arm := range m.Arms {
		if arm.Pattern.Wildcard {
			hasWildcard = true
			if i != len(m.Arms)-1 {
				fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrWildcardNotLast,
					errors.Describe(errors.ErrWildcardNotLast), arm.Span()))
			}
		} else {
			key := armKey(arm.Pattern)
			if seen[key] {
				fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrDuplicateMatchArm,
					errors.Describe(errors.ErrDuplicateMatchArm)+": "+key, arm.Span()))
			}
			seen[key] = true
		}

		fc.pushScope()
		fc.bindPattern(arm.Pattern, enumDecl)
		bodyType := fc.checkExpr(ast.Reassociate(arm.Body))
		fc.popScope()

		if unified, ok := types.Unify(result, bodyType); ok {
			result = unified
		} else {
			fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrTypeMismatch,
				errors.Describe(errors.ErrTypeMismatch)+": match arms disagree on result type", arm.Span()))
		}
	}

	if !hasWildcard {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrNonExhaustiveMatch,
			errors.Describe(errors.ErrNonExhaustiveMatch), m.Span()))
	}

	return result
}

func armKey(p *ast.Pattern) string {
	switch {
	case p.Int != "":
		return "int:" + p.Int
	case p.Ctor != nil:
		return "ctor:" + p.Ctor.Path[len(p.Ctor.Path)-1]
	default:
		return "_"
	}
}

// bindPattern registers a pattern's binders as fresh linear roots in
// the arm's scope (§4.2 step 2: "pattern binders for linear payloads
// are themselves linear roots"). Int and wildcard patterns bind
// nothing.
func (fc *funcCheck) bindPattern(p *ast.Pattern, ed *types.EnumDecl) {
	if p.Ctor == nil || ed == nil {
		return
	}
	variantName := p.Ctor.Path[len(p.Ctor.Path)-1]
	var variant *types.EnumVariant
	for i := range ed.Variants {
		if ed.Variants[i].Name == variantName {
			variant = &ed.Variants[i]
			break
		}
	}
	if variant == nil {
		return
	}
	for i, binderName := range p.Ctor.Binders {
		if i >= len(variant.Payload) {
			break
		}
		fc.define(binderName, variant.Payload[i].Type, false)
	}
}
