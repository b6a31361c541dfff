// Package span carries source-text byte ranges through the compiler.
//
// Every AST, IR, and capability-graph node carries a Span so diagnostics
// can point back at the original source regardless of which pass produced
// the node.
package span

import "fmt"

// Span is a half-open byte range [Offset, Offset+Len) into a source file.
type Span struct {
	Offset uint32
	Len    uint32
}

// Zero is the placeholder span used for synthesized nodes that have no
// corresponding source text (e.g. compiler-inserted phi blocks).
var Zero = Span{}

func New(offset, length uint32) Span {
	return Span{Offset: offset, Len: length}
}

func (s Span) End() uint32 {
	return s.Offset + s.Len
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Offset, s.End())
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	start := s.Offset
	if other.Offset < start {
		start = other.Offset
	}
	end := s.End()
	if other.End() > end {
		end = other.End()
	}
	return Span{Offset: start, Len: end - start}
}
