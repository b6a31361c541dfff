package capability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"aura-lang/internal/span"
)

func TestMoveThenUseAfterMove(t *testing.T) {
	g := New()
	g.AllocRoot(1, "t")

	useSpan := span.New(0, 1)
	id, err := g.EnsureAlive("t", useSpan)
	require.NoError(t, err)
	g.ConsumeMove(id, 2, span.New(10, 1))

	_, err = g.EnsureAlive("t", span.New(20, 1))
	require.Error(t, err)
	var uam *UseAfterMoveError
	require.ErrorAs(t, err, &uam)
	require.NotNil(t, uam.ConsumedAt)
	require.Equal(t, uint32(10), uam.ConsumedAt.Offset)
}

func TestReadBorrowsDoNotConsume(t *testing.T) {
	g := New()
	g.AllocRoot(1, "t")

	id, err := g.EnsureAlive("t", span.New(0, 1))
	require.NoError(t, err)
	g.LendRead(id, 2, span.New(5, 1))

	id2, err := g.EnsureAlive("t", span.New(10, 1))
	require.NoError(t, err)
	require.Equal(t, id, id2)
	g.LendRead(id2, 3, span.New(15, 1))

	require.True(t, g.Nodes[id].Alive)
}

func TestUnknownValue(t *testing.T) {
	g := New()
	_, err := g.EnsureAlive("nope", span.New(0, 1))
	require.Error(t, err)
	var uve *UnknownValueError
	require.ErrorAs(t, err, &uve)
}
