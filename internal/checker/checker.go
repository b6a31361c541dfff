// Package checker implements stage 2 of §2: per-function body checking
// against the stage-1 Env, producing type errors, capability-graph
// violations, match-exhaustiveness errors, and refinement-range
// rejections (§4.2, §4.3, §7).
package checker

import (
	"sort"

	"aura-lang/internal/ast"
	"aura-lang/internal/capability"
	"aura-lang/internal/errors"
	"aura-lang/internal/ir"
	"aura-lang/internal/types"
)

// Checker drives the whole program: it builds Env once (stage 1), then
// checks every cell body against it (stage 2). ExprTypes records each
// resolved expression's synthesized type, keyed by node identity. The
// lowering pass does not read it: ast.Reassociate builds fresh nodes on
// every call, so lowering re-derives the types it needs.
type Checker struct {
	Env       *Env
	Diags     *errors.Diagnostics
	ExprTypes map[*ast.ResolvedExpr]types.Type
	ids       *ir.IdGen
}

func NewChecker(env *Env) *Checker {
	return &Checker{
		Env:       env,
		Diags:     &errors.Diagnostics{},
		ExprTypes: make(map[*ast.ResolvedExpr]types.Type),
		ids:       ir.NewIdGen(),
	}
}

// CheckProgram runs stage 1 then stage 2 and returns the accumulated
// diagnostics, sorted by ascending span offset (§5). An empty (or
// nil-Semantic) Diagnostics means the program checked cleanly.
func CheckProgram(prog *ast.Program) (*Checker, *errors.Diagnostics) {
	env, preDiags := BuildEnv(prog)
	c := NewChecker(env)
	c.Diags.Semantic = append(c.Diags.Semantic, preDiags...)

	for _, d := range prog.Decls {
		if d.Cell != nil {
			c.checkCell(d.Cell)
		}
	}
	sort.SliceStable(c.Diags.Semantic, func(i, j int) bool {
		return c.Diags.Semantic[i].Span.Offset < c.Diags.Semantic[j].Span.Offset
	})
	return c, c.Diags
}

// funcCheck is the per-cell checking context: its own scope chain and
// capability graph (§5 — graphs never cross function boundaries).
type funcCheck struct {
	c     *Checker
	scope *Scope
	graph *capability.Graph
	ret   types.Type
}

func (c *Checker) checkCell(cell *ast.CellDecl) {
	sig, ok := c.Env.Cells[cell.Name]
	if !ok {
		return
	}

	scope := NewScope(nil)
	graph := capability.New()
	for _, p := range sig.Params {
		b := &Binding{Name: p.Name, Type: p.Type, Mut: p.Mut, IsLinear: !p.Type.IsCopy()}
		if b.IsLinear {
			id := c.ids.FreshCapability()
			graph.AllocRoot(id, p.Name)
			b.CapID = id
		}
		scope.Define(b)
	}

	fc := &funcCheck{c: c, scope: scope, graph: graph, ret: sig.Ret}
	fc.checkBlock(cell.Body)
}

func (fc *funcCheck) pushScope() {
	fc.scope = NewScope(fc.scope)
}

func (fc *funcCheck) popScope() {
	fc.scope = fc.scope.parent
}

func (fc *funcCheck) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	fc.pushScope()
	for _, s := range b.Stmts {
		fc.checkStmt(s)
	}
	fc.popScope()
}

// define allocates a fresh binding for name, registering a capability
// root when its type is linear (§3).
func (fc *funcCheck) define(name string, t types.Type, mut bool) *Binding {
	b := &Binding{Name: name, Type: t, Mut: mut, IsLinear: !t.IsCopy()}
	if b.IsLinear {
		id := fc.c.ids.FreshCapability()
		fc.graph.AllocRoot(id, name)
		b.CapID = id
	}
	fc.scope.Define(b)
	return b
}
