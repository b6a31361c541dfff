package errors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"aura-lang/internal/span"
)

func TestFormatSemanticIncludesCodeAndLocation(t *testing.T) {
	source := "val t: Tensor = tensor::new(1);\nconsume(t);\n"
	r := NewReporter("t.aura", source)

	e := NewSemanticError(ErrUseAfterMove, "use after move: \"t\"", span.New(33, 1))
	e.WithRelated(span.New(24, 7), "consumed here")

	out := r.FormatSemantic(e)
	require.Contains(t, out, ErrUseAfterMove)
	require.Contains(t, out, "t.aura")
	require.Contains(t, out, "consumed here")
}

func TestFormatVerifyIncludesPredicate(t *testing.T) {
	source := "val x: U32[0..10] = 42;\n"
	r := NewReporter("t.aura", source)

	e := &VerifyError{Predicate: "0 <= x && x <= 10", Span: span.New(21, 2), Counterexample: "x = 42"}
	out := r.FormatVerify(e)
	require.Contains(t, out, "0 <= x && x <= 10")
	require.Contains(t, out, "x = 42")
}
