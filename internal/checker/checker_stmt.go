package checker

import (
	"aura-lang/internal/ast"
	"aura-lang/internal/errors"
	"aura-lang/internal/intrinsics"
	"aura-lang/internal/types"
)

func (fc *funcCheck) checkStmt(s *ast.Stmt) {
	switch {
	case s.Val != nil:
		fc.checkValStmt(s.Val)
	case s.Assign != nil:
		fc.checkAssignStmt(s.Assign)
	case s.If != nil:
		fc.checkIfStmt(s.If)
	case s.While != nil:
		fc.checkWhileStmt(s.While)
	case s.Return != nil:
		fc.checkReturnStmt(s.Return)
	case s.Expr != nil:
		fc.checkExpr(ast.Reassociate(s.Expr.Value))
	}
}

func (fc *funcCheck) checkValStmt(v *ast.ValStmt) {
	re := ast.Reassociate(v.Value)
	declared := v.Type != nil
	var want types.Type
	if declared {
		want = resolveTypeExpr(fc.c.Env, v.Type)
	}

	valType := fc.checkExpr(re)
	if declared {
		fc.checkLiteralOrAssignable(re, valType, want)
		fc.define(v.Name, want, v.Mut)
		return
	}
	fc.define(v.Name, valType, v.Mut)
}

func (fc *funcCheck) checkAssignStmt(a *ast.AssignStmt) {
	b, ok := fc.scope.Lookup(a.Name)
	if !ok {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrUnknownValue,
			errors.Describe(errors.ErrUnknownValue)+": "+a.Name, a.Span()))
		fc.checkExpr(ast.Reassociate(a.Value))
		return
	}
	if !b.Mut {
		fc.c.Diags.AddSemantic(errors.NewSemanticError(errors.ErrRequiresMut,
			errors.Describe(errors.ErrRequiresMut)+": "+a.Name, a.Span()))
	}

	re := ast.Reassociate(a.Value)
	valType := fc.checkExpr(re)
	fc.checkLiteralOrAssignable(re, valType, b.Type)

	if b.IsLinear {
		id := fc.c.ids.FreshCapability()
		fc.graph.AllocRoot(id, a.Name)
		b.CapID = id
	}
}

func (fc *funcCheck) checkIfStmt(s *ast.IfStmt) {
	cond := fc.checkExprMode(ast.Reassociate(s.Cond), intrinsics.Read)
	fc.expectAssignable(cond, types.TBool(), s.Cond.Span())
	fc.checkBlock(s.Then)
	if s.Else != nil {
		fc.checkBlock(s.Else)
	}
}

func (fc *funcCheck) checkWhileStmt(s *ast.WhileStmt) {
	cond := fc.checkExprMode(ast.Reassociate(s.Cond), intrinsics.Read)
	fc.expectAssignable(cond, types.TBool(), s.Cond.Span())
	fc.checkBlock(s.Body)
}

func (fc *funcCheck) checkReturnStmt(s *ast.ReturnStmt) {
	if s.Value == nil {
		fc.expectAssignable(types.TUnit(), fc.ret, s.Span())
		return
	}
	re := ast.Reassociate(s.Value)
	valType := fc.checkExpr(re)
	fc.checkLiteralOrAssignable(re, valType, fc.ret)
}
