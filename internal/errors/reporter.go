package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"aura-lang/internal/span"
)

// Reporter formats diagnostics in the teacher's caret style, resolving
// spans to line/column via a DebugSource (§3 "Span -> LineCol").
type Reporter struct {
	debug *span.DebugSource
	lines []string
}

func NewReporter(fileName, source string) *Reporter {
	return &Reporter{
		debug: span.NewDebugSource(fileName, source),
		lines: strings.Split(source, "\n"),
	}
}

func (r *Reporter) FormatSemantic(e *SemanticError) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	lc := r.debug.LineCol(e.Span)
	fmt.Fprintf(&b, "%s[%s]: %s\n", red("error"), e.Code, bold(e.Message))
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", dim("-->"), r.debug.FileName, lc.Line, lc.Col)
	r.writeSourceLine(&b, lc)

	for _, rel := range e.Related {
		relLC := r.debug.LineCol(rel.Span)
		fmt.Fprintf(&b, "  %s %s (%s:%d:%d)\n", dim("note:"), rel.Message, r.debug.FileName, relLC.Line, relLC.Col)
	}
	return b.String()
}

func (r *Reporter) FormatVerify(e *VerifyError) string {
	var b strings.Builder
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	lc := r.debug.LineCol(e.Span)
	fmt.Fprintf(&b, "%s: could not prove %q\n", yellow("verify"), e.Predicate)
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", dim("-->"), r.debug.FileName, lc.Line, lc.Col)
	if e.Counterexample != "" {
		fmt.Fprintf(&b, "  %s %s\n", dim("counterexample:"), e.Counterexample)
	}
	r.writeSourceLine(&b, lc)
	return b.String()
}

func (r *Reporter) writeSourceLine(b *strings.Builder, lc span.LineCol) {
	idx := int(lc.Line) - 1
	if idx < 0 || idx >= len(r.lines) {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	line := r.lines[idx]
	fmt.Fprintf(b, "  %s %s\n", dim("|"), line)
	caret := strings.Repeat(" ", int(lc.Col)-1) + "^"
	fmt.Fprintf(b, "  %s %s\n", dim("|"), color.RedString(caret))
}
