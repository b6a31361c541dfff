package lower

import (
	"aura-lang/internal/ast"
	"aura-lang/internal/checker"
	"aura-lang/internal/ir"
	"aura-lang/internal/span"
	"aura-lang/internal/types"
)

// funcLower is the per-cell lowering context: one capability/value id
// generator, a growing block list, the block currently being emitted
// into, and the live SSA value for each surface-level local name.
// Confined to a single cell's lowering, mirroring the capability
// graph's per-function scope (§5).
type funcLower struct {
	env        *checker.Env
	ids        *ir.IdGen
	blocks     []*ir.BasicBlock
	cur        *ir.BasicBlock
	locals     map[string]ir.ValueId
	localTypes map[string]types.Type
	termed     map[ir.BlockId]bool
}

func (fl *funcLower) newBlock() *ir.BasicBlock {
	b := &ir.BasicBlock{ID: fl.ids.FreshBlock()}
	fl.blocks = append(fl.blocks, b)
	return b
}

func (fl *funcLower) setTerm(b *ir.BasicBlock, t ir.Terminator) {
	b.Term = t
	fl.termed[b.ID] = true
}

func (fl *funcLower) emit(inst ir.Inst) ir.ValueId {
	id := fl.ids.FreshValue()
	inst.Dest = &id
	fl.cur.Insts = append(fl.cur.Insts, &inst)
	return id
}

func (fl *funcLower) emitPhi(incomings []ir.PhiIncoming) (*ir.Inst, ir.ValueId) {
	id := fl.ids.FreshValue()
	inst := &ir.Inst{Kind: ir.InstPhi, Dest: &id, Incomings: incomings}
	fl.cur.Insts = append(fl.cur.Insts, inst)
	return inst, id
}

func (fl *funcLower) appendRangeCheck(val ir.ValueId, lo, hi uint64, sp span.Span) {
	fl.cur.Insts = append(fl.cur.Insts, &ir.Inst{Kind: ir.InstRangeCheckU32, CheckValue: val, Lo: lo, Hi: hi, Span: sp})
}

func (fl *funcLower) constU32(n uint64, sp span.Span) ir.ValueId {
	return fl.emit(ir.Inst{Kind: ir.InstBindStrand, Expr: ir.RVConstU32(n), Span: sp})
}

func (fl *funcLower) constBool(b bool, sp span.Span) ir.ValueId {
	return fl.emit(ir.Inst{Kind: ir.InstBindStrand, Expr: ir.RVConstBool(b), Span: sp})
}

func (fl *funcLower) constString(s string, sp span.Span) ir.ValueId {
	return fl.emit(ir.Inst{Kind: ir.InstBindStrand, Expr: ir.RVConstString(s), Span: sp})
}

func (fl *funcLower) snapshotLocals() map[string]ir.ValueId {
	out := make(map[string]ir.ValueId, len(fl.locals))
	for k, v := range fl.locals {
		out[k] = v
	}
	return out
}

func (fl *funcLower) restoreLocals(snapshot map[string]ir.ValueId) {
	fl.locals = make(map[string]ir.ValueId, len(snapshot))
	for k, v := range snapshot {
		fl.locals[k] = v
	}
}

func (fl *funcLower) lowerBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		if fl.termed[fl.cur.ID] {
			// Unreachable code after an early return within this block
			// (§9 "no dead-code elimination pass") — skip lowering it
			// rather than appending instructions past a terminator.
			break
		}
		fl.lowerStmt(s)
	}
}

func (fl *funcLower) lowerStmt(s *ast.Stmt) {
	switch {
	case s.Val != nil:
		fl.lowerVal(s.Val)
	case s.Assign != nil:
		fl.lowerAssign(s.Assign)
	case s.If != nil:
		fl.lowerIf(s.If)
	case s.While != nil:
		fl.lowerWhile(s.While)
	case s.Return != nil:
		fl.lowerReturn(s.Return)
	case s.Expr != nil:
		fl.lowerResolved(ast.Reassociate(s.Expr.Value))
	}
}

func (fl *funcLower) lowerVal(v *ast.ValStmt) {
	re := ast.Reassociate(v.Value)
	val, inferred := fl.lowerResolved(re)

	t := inferred
	if v.Type != nil {
		t = checker.ResolveTypeExpr(fl.env, v.Type)
	}
	if t.Kind == types.ConstrainedRange {
		fl.appendRangeCheck(val, t.Lo, t.Hi, re.Span())
	}

	fl.locals[v.Name] = val
	fl.localTypes[v.Name] = t
}

func (fl *funcLower) lowerAssign(a *ast.AssignStmt) {
	re := ast.Reassociate(a.Value)
	val, inferred := fl.lowerResolved(re)

	t := inferred
	if declared, ok := fl.localTypes[a.Name]; ok {
		t = declared
	}
	if t.Kind == types.ConstrainedRange {
		fl.appendRangeCheck(val, t.Lo, t.Hi, re.Span())
	}

	fl.locals[a.Name] = val
	fl.localTypes[a.Name] = t
}

func (fl *funcLower) lowerReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		fl.setTerm(fl.cur, ir.Terminator{Kind: ir.TermReturn, HasValue: false})
		return
	}
	re := ast.Reassociate(s.Value)
	val, _ := fl.lowerResolved(re)
	fl.setTerm(fl.cur, ir.Terminator{Kind: ir.TermReturn, HasValue: true, Value: val})
}

// lowerIf builds a diamond CFG (entry -CondBr-> then/else -Br-> merge)
// and reconciles any local reassigned on one arm but not the other
// with a Phi in the merge block (§4.4). This two-snapshot diff is
// sufficient because Aura's only control-flow constructs are
// structured if/while/match — there is no goto to reach the merge
// block by any path this doesn't account for.
func (fl *funcLower) lowerIf(s *ast.IfStmt) {
	cond, _ := fl.lowerResolved(ast.Reassociate(s.Cond))
	entry := fl.cur
	snapshot := fl.snapshotLocals()

	thenBlock := fl.newBlock()
	fl.cur = thenBlock
	fl.lowerBlock(s.Then)
	thenEnd := fl.cur
	thenLocals := fl.snapshotLocals()
	thenReaches := !fl.termed[thenEnd.ID]

	var elseBlock *ir.BasicBlock
	var elseEnd *ir.BasicBlock
	var elseLocals map[string]ir.ValueId
	elseReaches := true
	if s.Else != nil {
		fl.restoreLocals(snapshot)
		elseBlock = fl.newBlock()
		fl.cur = elseBlock
		fl.lowerBlock(s.Else)
		elseEnd = fl.cur
		elseLocals = fl.snapshotLocals()
		elseReaches = !fl.termed[elseEnd.ID]
	} else {
		elseEnd = entry
		elseLocals = snapshot
	}

	// A merge block is only needed if some path actually falls through to
	// it — a branch that itself returns never becomes its predecessor.
	needMerge := elseBlock == nil || thenReaches || elseReaches
	var mergeBlock *ir.BasicBlock
	if needMerge {
		mergeBlock = fl.newBlock()
	}

	elseTarget := elseEnd.ID
	if elseBlock != nil {
		elseTarget = elseBlock.ID
	} else {
		elseTarget = mergeBlock.ID
	}
	fl.setTerm(entry, ir.Terminator{Kind: ir.TermCondBr, Cond: cond, Then: thenBlock.ID, Else: elseTarget})
	if thenReaches {
		fl.setTerm(thenEnd, ir.Terminator{Kind: ir.TermBr, Target: mergeBlock.ID})
	}
	if elseBlock != nil && elseReaches {
		fl.setTerm(elseEnd, ir.Terminator{Kind: ir.TermBr, Target: mergeBlock.ID})
	}

	switch {
	case !needMerge:
		// Both arms terminate (e.g. both return) — nothing falls through.
		// Leave fl.cur on one of the dead ends so the enclosing block
		// stops lowering further, now-unreachable statements.
		fl.cur = thenEnd
	case thenReaches && elseReaches:
		fl.restoreLocals(snapshot)
		fl.cur = mergeBlock
		fl.reconcile(thenEnd.ID, thenLocals, elseEnd.ID, elseLocals)
	case thenReaches:
		fl.locals = thenLocals
		fl.cur = mergeBlock
	default:
		fl.locals = elseLocals
		fl.cur = mergeBlock
	}
}

func (fl *funcLower) reconcile(blockA ir.BlockId, localsA map[string]ir.ValueId, blockB ir.BlockId, localsB map[string]ir.ValueId) {
	seen := make(map[string]bool, len(localsA)+len(localsB))
	for name := range localsA {
		seen[name] = true
	}
	for name := range localsB {
		seen[name] = true
	}
	for name := range seen {
		va, okA := localsA[name]
		vb, okB := localsB[name]
		if !okA || !okB {
			continue
		}
		if va == vb {
			fl.locals[name] = va
			continue
		}
		_, phiVal := fl.emitPhi([]ir.PhiIncoming{{Block: blockA, Value: va}, {Block: blockB, Value: vb}})
		fl.locals[name] = phiVal
	}
}

// lowerWhile builds the classic header/body/exit loop shape with
// header-resident Phis for every name the body reassigns, so a use of
// that name inside the condition or the next iteration's body sees the
// value from whichever edge — preheader or latch — actually reached
// the header (§4.4).
func (fl *funcLower) lowerWhile(s *ast.WhileStmt) {
	preheader := fl.cur
	names := assignedNames(s.Body)

	header := fl.newBlock()
	fl.setTerm(preheader, ir.Terminator{Kind: ir.TermBr, Target: header.ID})
	fl.cur = header

	placeholders := make(map[string]*ir.Inst, len(names))
	for _, name := range names {
		id, ok := fl.locals[name]
		if !ok {
			continue
		}
		inst, newID := fl.emitPhi([]ir.PhiIncoming{{Block: preheader.ID, Value: id}})
		placeholders[name] = inst
		fl.locals[name] = newID
	}

	cond, _ := fl.lowerResolved(ast.Reassociate(s.Cond))
	bodyBlock := fl.newBlock()
	exitBlock := fl.newBlock()
	fl.setTerm(header, ir.Terminator{Kind: ir.TermCondBr, Cond: cond, Then: bodyBlock.ID, Else: exitBlock.ID})

	fl.cur = bodyBlock
	fl.lowerBlock(s.Body)
	latch := fl.cur
	// A body that always returns never loops back — latch is then not
	// actually a predecessor of header, so it must not appear in the
	// header phis' incoming set either.
	bodyReachesHeader := !fl.termed[latch.ID]
	if bodyReachesHeader {
		fl.setTerm(latch, ir.Terminator{Kind: ir.TermBr, Target: header.ID})
		for name, inst := range placeholders {
			if id, ok := fl.locals[name]; ok {
				inst.Incomings = append(inst.Incomings, ir.PhiIncoming{Block: latch.ID, Value: id})
			}
		}
	}

	fl.cur = exitBlock
}

// assignedNames collects every name a val/assign statement binds
// within b, including nested if/while bodies (so the while header
// knows to pre-declare a Phi for it) but not match arms — a match arm
// is a single Expr, not a Block, so it cannot itself contain val/assign
// statements.
func assignedNames(b *ast.Block) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	var walk func(b *ast.Block)
	walk = func(b *ast.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Stmts {
			switch {
			case s.Val != nil:
				add(s.Val.Name)
			case s.Assign != nil:
				add(s.Assign.Name)
			case s.If != nil:
				walk(s.If.Then)
				walk(s.If.Else)
			case s.While != nil:
				walk(s.While.Body)
			}
		}
	}
	walk(b)
	return names
}
