package ast

import "aura-lang/internal/span"

// ResolvedExpr is an Expr after precedence climbing: either a leaf
// UnaryExpr or a BinaryExpr combining two further ResolvedExprs. The
// checker and lowering pass walk this tree, never the parser's flat
// Ops list.
type ResolvedExpr struct {
	Unary  *UnaryExpr
	Binary *BinaryExpr
}

type BinaryExpr struct {
	Op    string
	Left  *ResolvedExpr
	Right *ResolvedExpr
}

func (r *ResolvedExpr) Span() span.Span {
	if r.Binary != nil {
		return r.Binary.Left.Span().Cover(r.Binary.Right.Span())
	}
	return r.Unary.Span()
}

// precedence gives each binary operator's binding power; higher binds
// tighter. All five levels are left-associative (§6 grammar).
func precedence(op string) int {
	switch op {
	case "||":
		return 1
	case "&&":
		return 2
	case "==", "!=", "<", "<=", ">", ">=":
		return 3
	case "+", "-":
		return 4
	case "*", "/":
		return 5
	default:
		return 0
	}
}

// cursor walks a flattened (term, op, term, op, ..., term) sequence and
// rebuilds it into a precedence tree via the standard precedence-
// climbing algorithm.
type cursor struct {
	terms []*ResolvedExpr
	ops   []string
	pos   int
}

func (c *cursor) peek() (string, int, bool) {
	if c.pos >= len(c.ops) {
		return "", 0, false
	}
	op := c.ops[c.pos]
	return op, precedence(op), true
}

func (c *cursor) parse(lhs *ResolvedExpr, minPrec int) *ResolvedExpr {
	for {
		op, prec, ok := c.peek()
		if !ok || prec < minPrec {
			break
		}
		c.pos++
		rhs := c.terms[c.pos]
		for {
			_, prec2, ok2 := c.peek()
			if !ok2 || prec2 <= prec {
				break
			}
			rhs = c.parse(rhs, prec2)
		}
		lhs = &ResolvedExpr{Binary: &BinaryExpr{Op: op, Left: lhs, Right: rhs}}
	}
	return lhs
}

// Reassociate converts e's flat (Unary, Ops...) parse into a proper
// precedence tree (§6). A leaf with no Ops returns directly as a Unary
// ResolvedExpr without allocating a climb.
func Reassociate(e *Expr) *ResolvedExpr {
	lhs := &ResolvedExpr{Unary: e.Unary}
	if len(e.Ops) == 0 {
		return lhs
	}
	terms := make([]*ResolvedExpr, 0, len(e.Ops)+1)
	terms = append(terms, lhs)
	ops := make([]string, len(e.Ops))
	for i, rhs := range e.Ops {
		ops[i] = rhs.Op
		terms = append(terms, &ResolvedExpr{Unary: rhs.Right})
	}
	c := &cursor{terms: terms, ops: ops}
	return c.parse(terms[0], 0)
}
