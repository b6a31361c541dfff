package verify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDummyProverDecidesLiterals(t *testing.T) {
	p := DummyProver{}

	v, _ := p.Prove(Obligation{HasLiteral: true, Literal: 5, Lo: 0, Hi: 10})
	require.Equal(t, Proved, v)

	v, reason := p.Prove(Obligation{HasLiteral: true, Literal: 42, Lo: 0, Hi: 10})
	require.Equal(t, Refuted, v)
	require.NotEmpty(t, reason)
}

func TestDummyProverUnknownWithoutLiteral(t *testing.T) {
	p := DummyProver{}
	v, _ := p.Prove(Obligation{HasLiteral: false})
	require.Equal(t, Unknown, v)
}
