// Package capability implements the linear-ownership tracking described
// in §3/§4.3: a forest of capability nodes, one per non-copy binding,
// with Read/Write/Move edges recording every use. Ported directly from
// the original capability.rs: nodes hold liveness, edges are an append-
// only flat list (no back-pointers — avoids cycles per §9), and
// by_value maps a binding name to its current node.
package capability

import (
	"fmt"

	"aura-lang/internal/ir"
	"aura-lang/internal/span"
)

type Kind int

const (
	Root Kind = iota
	Read
	Write
	Move
)

type Edge struct {
	From ir.CapabilityId
	To   ir.CapabilityId
	Kind Kind
	Span span.Span
}

type Node struct {
	ID         ir.CapabilityId
	Name       string
	Alive      bool
	ConsumedAt *span.Span
}

// Graph is the per-function capability graph (§3). It is never shared
// across functions or modules (§5).
type Graph struct {
	Nodes   map[ir.CapabilityId]*Node
	Edges   []Edge
	ByValue map[string]ir.CapabilityId
}

func New() *Graph {
	return &Graph{
		Nodes:   make(map[ir.CapabilityId]*Node),
		ByValue: make(map[string]ir.CapabilityId),
	}
}

// AllocRoot creates a new live capability node at a binding site (val,
// cell parameter, or match pattern binder) and registers it under name.
// A prior binding of the same name (e.g. shadowing) is simply replaced
// in ByValue; its node remains in Nodes for diagnostics that reference
// the old CapabilityId.
func (g *Graph) AllocRoot(id ir.CapabilityId, name string) {
	g.Nodes[id] = &Node{ID: id, Name: name, Alive: true}
	g.ByValue[name] = id
}

// UseAfterMoveError is returned by EnsureAlive when a binding has
// already been moved; it carries both the current use span and, when
// available, the span where the move happened (§4.3 "related
// diagnostic").
type UseAfterMoveError struct {
	Name       string
	Span       span.Span
	ConsumedAt *span.Span
}

func (e *UseAfterMoveError) Error() string {
	return fmt.Sprintf("use after move: %q", e.Name)
}

// UnknownValueError is returned when name has no live capability
// binding at all (never declared, or declared and out of scope).
type UnknownValueError struct {
	Name string
	Span span.Span
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown value %q", e.Name)
}

// EnsureAlive resolves name to its capability node and confirms it is
// still alive, returning its id for the caller to route a Read/Write/
// Move edge from.
func (g *Graph) EnsureAlive(name string, use span.Span) (ir.CapabilityId, error) {
	id, ok := g.ByValue[name]
	if !ok {
		return 0, &UnknownValueError{Name: name, Span: use}
	}
	node := g.Nodes[id]
	if !node.Alive {
		return id, &UseAfterMoveError{Name: name, Span: use, ConsumedAt: node.ConsumedAt}
	}
	return id, nil
}

// LendRead records a Read edge; the source node remains alive.
func (g *Graph) LendRead(from, to ir.CapabilityId, s span.Span) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: Read, Span: s})
}

// LendWrite records a Write edge; the source node remains alive. The
// caller is responsible for checking the `mut` requirement (§4.3) before
// calling this — the graph itself has no notion of declared mutability.
func (g *Graph) LendWrite(from, to ir.CapabilityId, s span.Span) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: Write, Span: s})
}

// ConsumeMove records a Move edge and transitions the source node to
// dead, recording the consuming span (§3 lifecycle).
func (g *Graph) ConsumeMove(from, to ir.CapabilityId, s span.Span) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: Move, Span: s})
	if node, ok := g.Nodes[from]; ok {
		node.Alive = false
		cp := s
		node.ConsumedAt = &cp
	}
}
