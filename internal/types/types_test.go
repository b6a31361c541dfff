package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayRendersSurfaceSyntax(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{TU32(), "U32"},
		{TBool(), "Bool"},
		{TTensor(TU32(), nil), "Tensor<U32>"},
		{TTensor(TU32(), []uint64{2, 3}), "Tensor<U32, [2, 3]>"},
		{TApplied("Option", []Type{TU32()}), "Option<U32>"},
		{TRange(TU32(), 0, 10), "U32[0..10]"},
	}
	for _, tt := range cases {
		require.Equal(t, tt.want, tt.typ.Display())
	}
}

func TestIsSubsetRange(t *testing.T) {
	require.True(t, IsSubsetRange(2, 8, 0, 10))
	require.False(t, IsSubsetRange(0, 20, 0, 10))
}

func TestCheckAssignableRangeNarrowing(t *testing.T) {
	wide := TRange(TU32(), 0, 100)
	narrow := TRange(TU32(), 0, 10)
	require.True(t, CheckAssignable(narrow, wide))
	require.False(t, CheckAssignable(wide, narrow))
}

func TestCheckAssignableRangeToBase(t *testing.T) {
	narrow := TRange(TU32(), 0, 10)
	require.True(t, CheckAssignable(narrow, TU32()))
}

func TestLiteralFitsRange(t *testing.T) {
	require.True(t, LiteralFits(42, TRange(TU32(), 0, 100)))
	require.False(t, LiteralFits(42, TRange(TU32(), 0, 10)))
}

func TestCopyDiscipline(t *testing.T) {
	require.True(t, TU32().IsCopy())
	require.True(t, TBool().IsCopy())
	require.True(t, TUnit().IsCopy())
	require.True(t, TRange(TU32(), 0, 10).IsCopy())
	require.False(t, TString().IsCopy())
	require.False(t, TModel().IsCopy())
	require.False(t, TTensor(TU32(), nil).IsCopy())
	require.False(t, TApplied("Option", []Type{TU32()}).IsCopy())
}

func TestInstantiateSubstitutesTypeParams(t *testing.T) {
	field := TNamed("T")
	result := Instantiate(field, []string{"T"}, []Type{TU32()})
	require.True(t, Equal(result, TU32()))
}
