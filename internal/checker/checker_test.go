package checker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"aura-lang/internal/checker"
	"aura-lang/internal/errors"
	"aura-lang/internal/parser"
)

func checkSource(t *testing.T, src string) *errors.Diagnostics {
	t.Helper()
	prog, err := parser.ParseSource("test.aura", src)
	require.NoError(t, err)
	_, diags := checker.CheckProgram(prog)
	return diags
}

func hasCode(diags *errors.Diagnostics, code string) bool {
	for _, d := range diags.Semantic {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestUseAfterMove(t *testing.T) {
	diags := checkSource(t, `
cell take(x: Model) {
  val y = x;
  val z = x;
}
`)
	require.True(t, hasCode(diags, errors.ErrUseAfterMove))
}

func TestReadBorrowsDoNotConsume(t *testing.T) {
	diags := checkSource(t, `
cell peek(t: Tensor<U32>) -> U32 {
  val n = tensor::len(t);
  val v = tensor::get(t, 0);
  return v;
}
`)
	require.False(t, hasCode(diags, errors.ErrUseAfterMove))
}

func TestWriteBorrowRequiresMut(t *testing.T) {
	diags := checkSource(t, `
cell poke(t: Tensor<U32>) {
  tensor::set(t, 0, 1);
}
`)
	require.True(t, hasCode(diags, errors.ErrRequiresMut))

	diags = checkSource(t, `
cell poke(mut t: Tensor<U32>) {
  tensor::set(t, 0, 1);
}
`)
	require.False(t, hasCode(diags, errors.ErrRequiresMut))
}

func TestMatchWildcardMustBeLast(t *testing.T) {
	diags := checkSource(t, `
cell classify(n: U32) -> U32 {
  return match n {
    _ => 0,
    1 => 1,
  };
}
`)
	require.True(t, hasCode(diags, errors.ErrWildcardNotLast))
}

func TestMatchMissingWildcardIsNonExhaustive(t *testing.T) {
	diags := checkSource(t, `
cell classify(n: U32) -> U32 {
  return match n {
    1 => 1,
    2 => 2,
  };
}
`)
	require.True(t, hasCode(diags, errors.ErrNonExhaustiveMatch))
}

func TestMatchDuplicateArmRejected(t *testing.T) {
	diags := checkSource(t, `
cell classify(n: U32) -> U32 {
  return match n {
    1 => 1,
    1 => 2,
    _ => 0,
  };
}
`)
	require.True(t, hasCode(diags, errors.ErrDuplicateMatchArm))
}

func TestEnumMatchBindsPayload(t *testing.T) {
	diags := checkSource(t, `
type Opt = enum {
  None,
  Some(value: U32)
};

cell unwrap_or(o: Opt) -> U32 {
  return match o {
    Opt::Some(value) => value,
    _ => 0,
  };
}
`)
	require.Empty(t, diags.Semantic)
}

func TestRefinementBoundAcceptAndReject(t *testing.T) {
	diags := checkSource(t, `
cell inRange(n: U32[0..10]) -> U32 {
  return n;
}

cell good() {
  val n: U32[0..10] = 7;
}

cell bad() {
  val n: U32[0..10] = 42;
}
`)
	require.True(t, hasCode(diags, errors.ErrLiteralOutOfRange))
	// Only bad() is rejected; inRange() and good() check cleanly.
	require.Len(t, diags.Semantic, 1)
}
