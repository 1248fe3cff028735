package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessforge/chessforge/internal/history"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

func TestTTMoveYieldedFirst(t *testing.T) {
	pos, err := position.FromFen(position.StartFen)
	require.NoError(t, err)
	tables := history.New()
	ttMove := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)

	p := New(pos, tables, 0, ttMove, types.MoveNone)
	first := p.Next()
	assert.Equal(t, ttMove.MoveOf(), first)
}

func TestEveryMoveYieldedExactlyOnce(t *testing.T) {
	pos, err := position.FromFen(position.StartFen)
	require.NoError(t, err)
	tables := history.New()

	p := New(pos, tables, 0, types.MoveNone, types.MoveNone)
	seen := make(map[types.Move]int)
	for {
		m := p.Next()
		if m == types.MoveNone {
			break
		}
		seen[m.MoveOf()]++
	}
	assert.Len(t, seen, 20)
	for m, count := range seen {
		assert.Equalf(t, 1, count, "move %s yielded more than once", m.StringUci())
	}
}

func TestCapturesOrderedAheadOfQuietsWhenAvailable(t *testing.T) {
	// Black to move can take a hanging white knight on e5 with the d6 pawn.
	pos, err := position.FromFen("rnbqkbnr/ppp2ppp/3p4/4N3/8/8/PPPPPPPP/RNBQKB1R b KQkq - 0 1")
	require.NoError(t, err)
	tables := history.New()

	p := New(pos, tables, 0, types.MoveNone, types.MoveNone)
	var orderedCapture bool
	for i := 0; i < 3; i++ {
		m := p.Next()
		if m == types.MoveNone {
			break
		}
		if m.To() == types.SqE5 {
			orderedCapture = true
			break
		}
	}
	assert.True(t, orderedCapture, "capture of the hanging knight should be ordered near the front")
}

func TestQuiescencePickerSkipsQuietsWhenNotInCheck(t *testing.T) {
	pos, err := position.FromFen(position.StartFen)
	require.NoError(t, err)

	p := NewQuiescence(pos, types.MoveNone)
	m := p.Next()
	assert.Equal(t, types.MoveNone, m, "start position has no captures to search in quiescence")
}
