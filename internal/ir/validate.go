package ir

import "fmt"

// Validate checks the structural invariants every IR function must
// satisfy (§8): each block has exactly one terminator (true by
// construction of BasicBlock.Term being a value, not a list — the
// remaining invariant is that every block referenced by a terminator or
// phi actually exists, every phi has one incoming per predecessor, and
// entry dominates every block reachable from it).
func (m *ModuleIR) Validate() error {
	for _, fn := range m.OrderedFunctions() {
		if err := fn.validate(); err != nil {
			return fmt.Errorf("function %q: %w", fn.Name, err)
		}
	}
	return nil
}

func (f *FunctionIR) validate() error {
	blocks := make(map[BlockId]*BasicBlock, len(f.Blocks))
	for _, b := range f.Blocks {
		blocks[b.ID] = b
	}
	if len(f.Blocks) == 0 {
		return fmt.Errorf("function has no blocks")
	}
	if f.Blocks[0].ID != f.Entry {
		return fmt.Errorf("entry block must be first")
	}

	preds := predecessors(f, blocks)

	for _, b := range f.Blocks {
		for i, inst := range b.Insts {
			if inst.Kind == InstPhi && i != 0 {
				// Phis must be the first instructions of their block;
				// since we only ever emit phis contiguously at block
				// start during lowering, any later one is a defect.
				for j := 0; j < i; j++ {
					if b.Insts[j].Kind != InstPhi {
						return fmt.Errorf("block %d: phi not at block start", b.ID)
					}
				}
			}
			if inst.Kind == InstPhi {
				want := preds[b.ID]
				if len(inst.Incomings) != len(want) {
					return fmt.Errorf("block %d: phi has %d incomings, want %d (one per predecessor)",
						b.ID, len(inst.Incomings), len(want))
				}
				seen := make(map[BlockId]bool, len(inst.Incomings))
				for _, in := range inst.Incomings {
					if !want[in.Block] {
						return fmt.Errorf("block %d: phi incoming from non-predecessor block %d", b.ID, in.Block)
					}
					seen[in.Block] = true
				}
				if len(seen) != len(want) {
					return fmt.Errorf("block %d: phi does not cover every predecessor exactly once", b.ID)
				}
			}
		}

		switch b.Term.Kind {
		case TermBr:
			if _, ok := blocks[b.Term.Target]; !ok {
				return fmt.Errorf("block %d: Br targets unknown block %d", b.ID, b.Term.Target)
			}
		case TermCondBr:
			if _, ok := blocks[b.Term.Then]; !ok {
				return fmt.Errorf("block %d: CondBr then targets unknown block", b.ID)
			}
			if _, ok := blocks[b.Term.Else]; !ok {
				return fmt.Errorf("block %d: CondBr else targets unknown block", b.ID)
			}
		case TermSwitch:
			if _, ok := blocks[b.Term.Default]; !ok {
				return fmt.Errorf("block %d: Switch default targets unknown block", b.ID)
			}
			seen := make(map[uint64]bool, len(b.Term.Cases))
			for _, c := range b.Term.Cases {
				if seen[c.Value] {
					return fmt.Errorf("block %d: duplicate switch case label %d", b.ID, c.Value)
				}
				seen[c.Value] = true
				if _, ok := blocks[c.Block]; !ok {
					return fmt.Errorf("block %d: switch case targets unknown block", b.ID)
				}
			}
		}
	}

	if !dominatesAll(f, blocks) {
		return fmt.Errorf("entry does not dominate every block")
	}

	return nil
}

func predecessors(f *FunctionIR, blocks map[BlockId]*BasicBlock) map[BlockId]map[BlockId]bool {
	preds := make(map[BlockId]map[BlockId]bool, len(blocks))
	for id := range blocks {
		preds[id] = make(map[BlockId]bool)
	}
	for _, b := range f.Blocks {
		for _, succ := range successors(b.Term) {
			if preds[succ] == nil {
				preds[succ] = make(map[BlockId]bool)
			}
			preds[succ][b.ID] = true
		}
	}
	return preds
}

func successors(t Terminator) []BlockId {
	switch t.Kind {
	case TermBr:
		return []BlockId{t.Target}
	case TermCondBr:
		return []BlockId{t.Then, t.Else}
	case TermSwitch:
		out := []BlockId{t.Default}
		for _, c := range t.Cases {
			out = append(out, c.Block)
		}
		return out
	default:
		return nil
	}
}

// dominatesAll is a reachability check from entry — sufficient here
// because the only CFGs lowering ever produces are structured
// (if/while/match), which are trivially reducible; a general dominance
// computation is unnecessary for this core.
func dominatesAll(f *FunctionIR, blocks map[BlockId]*BasicBlock) bool {
	visited := map[BlockId]bool{f.Entry: true}
	queue := []BlockId{f.Entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		b := blocks[cur]
		if b == nil {
			continue
		}
		for _, succ := range successors(b.Term) {
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return len(visited) == len(blocks)
}
