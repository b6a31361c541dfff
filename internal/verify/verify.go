// Package verify defines the Prover boundary (§4.6): an opaque
// capability that decides proof obligations the checker/lowering pass
// emit. Grounded directly on original_source/aura-core/src/verifier.rs:
// a trait/interface with one operation, plus a default solver that can
// only decide literal-only obligations.
package verify

import (
	"aura-lang/internal/span"
)

type Verdict int

const (
	Proved Verdict = iota
	Refuted
	Unknown
)

// Obligation is a structured predicate over IR values and constants
// (§4.6). RangeCheckU32 obligations carry the literal value when it is
// known at the call site; unknown-valued obligations (a non-literal
// expression) can only be decided by a real solver.
type Obligation struct {
	Description    string
	Span           span.Span
	HasLiteral     bool
	Literal        uint64
	Lo, Hi         uint64
}

// Prover is the single operation a verifier backend must implement. The
// SMT prover itself is out of scope for this core (§1) — only this
// interface and a no-op default live here.
type Prover interface {
	Prove(o Obligation) (Verdict, string)
}

// DummyProver trivially rejects nothing it cannot decide from literals:
// it evaluates RangeCheckU32 obligations with a known literal directly,
// and answers Unknown for everything else (§4.6 "default no-op
// prover").
type DummyProver struct{}

func (DummyProver) Prove(o Obligation) (Verdict, string) {
	if !o.HasLiteral {
		return Unknown, ""
	}
	if o.Literal < o.Lo || o.Literal > o.Hi {
		return Refuted, "literal out of range"
	}
	return Proved, ""
}

var _ Prover = DummyProver{}
