package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessforge/chessforge/internal/position"
)

func TestGenerateLegalMovesStartPositionHas20Moves(t *testing.T) {
	p, err := position.FromFen(position.StartFen)
	require.NoError(t, err)
	moves := GenerateLegalMoves(p)
	assert.Len(t, moves, 20)
}

func TestPerftStartPositionKnownValues(t *testing.T) {
	// Depth-1/2 leaf counts for the start position are well-known
	// reference values for any legal move generator.
	pf := NewPerft()
	_, err := pf.Run(position.StartFen, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 20, pf.Nodes)

	pf2 := NewPerft()
	_, err = pf2.Run(position.StartFen, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 400, pf2.Nodes)
}

func TestHasLegalMoveCheckmate(t *testing.T) {
	// Fool's mate: black has delivered mate, white to move has no moves.
	p, err := position.FromFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.False(t, HasLegalMove(p))
	assert.True(t, p.InCheck())
}

func TestStalemate(t *testing.T) {
	// Classic stalemate position: black king has no legal moves and is
	// not in check.
	p, err := position.FromFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, HasLegalMove(p))
	assert.False(t, p.InCheck())
}
