package lower_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"aura-lang/internal/checker"
	"aura-lang/internal/ir"
	"aura-lang/internal/lower"
	"aura-lang/internal/parser"
)

func lowerSource(t *testing.T, src string) *ir.ModuleIR {
	t.Helper()
	prog, err := parser.ParseSource("test.aura", src)
	require.NoError(t, err)
	c, diags := checker.CheckProgram(prog)
	require.Empty(t, diags.Semantic)
	return lower.LowerProgram(c.Env, prog)
}

func TestLowerStraightLineArithmetic(t *testing.T) {
	mod := lowerSource(t, `
cell add(a: U32, b: U32) -> U32 {
  val sum = a + b;
  return sum;
}
`)
	fn, ok := mod.Functions["add"]
	require.True(t, ok)
	require.NoError(t, mod.Validate())
	require.Equal(t, ir.TyU32, fn.Ret)

	out := ir.Print(mod)
	require.Contains(t, out, "fn add(")
	require.Contains(t, out, "binary add")
}

func TestLowerIfProducesPhiOnDivergentAssignment(t *testing.T) {
	mod := lowerSource(t, `
cell clamp(n: U32) -> U32 {
  val mut out = n;
  if n > 10 {
    out = 10;
  } else {
    out = n;
  }
  return out;
}
`)
	require.NoError(t, mod.Validate())
	out := ir.Print(mod)
	require.Contains(t, out, "phi")
}

func TestLowerWhileLoop(t *testing.T) {
	mod := lowerSource(t, `
cell countUp(n: U32) -> U32 {
  val mut i = 0;
  while i < n {
    i = i + 1;
  }
  return i;
}
`)
	require.NoError(t, mod.Validate())
	out := ir.Print(mod)
	require.Contains(t, out, "phi")
	require.True(t, strings.Contains(out, "condbr"))
}

func TestLowerEnumConstructorAndMatch(t *testing.T) {
	mod := lowerSource(t, `
type Opt = enum {
  None,
  Some(value: U32)
};

cell someSeven() -> Opt {
  return Opt::Some(7);
}

cell unwrapOr(o: Opt, fallback: U32) -> U32 {
  return match o {
    Opt::Some(value) => value,
    _ => fallback,
  };
}
`)
	require.NoError(t, mod.Validate())
	out := ir.Print(mod)
	require.Contains(t, out, "tensor::new")
	require.Contains(t, out, "tensor::set")
	require.Contains(t, out, "tensor::get")
	require.Contains(t, out, "switch")
}
