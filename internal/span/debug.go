package span

import "sort"

// LineCol is a 1-based (line, column) position, used only for rendering
// diagnostics — the compiler itself never reasons about line/column.
type LineCol struct {
	Line uint32
	Col  uint32
}

// DebugSource maps byte offsets in one source file back to line/column
// pairs. Grounded on the original line-start scan: walk the text once,
// record every offset that starts a line, then binary-search on lookup.
type DebugSource struct {
	FileName   string
	lineStarts []int
}

func NewDebugSource(fileName, text string) *DebugSource {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &DebugSource{FileName: fileName, lineStarts: starts}
}

// LineCol converts a span's start offset into a 1-based line/column.
func (d *DebugSource) LineCol(s Span) LineCol {
	off := int(s.Offset)

	lineIdx := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > off
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := 0
	if lineIdx < len(d.lineStarts) {
		lineStart = d.lineStarts[lineIdx]
	}
	col := off - lineStart
	if col < 0 {
		col = 0
	}

	return LineCol{Line: uint32(lineIdx) + 1, Col: uint32(col) + 1}
}
