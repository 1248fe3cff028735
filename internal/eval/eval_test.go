package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

func TestStartPositionIsBalanced(t *testing.T) {
	p, err := position.FromFen(position.StartFen)
	require.NoError(t, err)
	assert.Equal(t, types.ValueZero, Evaluate(p))
}

func TestExtraQueenFavorsItsOwner(t *testing.T) {
	// White has an extra queen on d5; white to move should evaluate
	// clearly positive.
	p, err := position.FromFen("rnb1kbnr/pppp1ppp/8/3Qp3/4P3/8/PPPP1PPP/RNB1KBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Greater(t, Evaluate(p), types.ValueZero)
}

func TestEvaluateIsSymmetricUnderSideToMove(t *testing.T) {
	white, err := position.FromFen("rnb1kbnr/pppp1ppp/8/3Qp3/4P3/8/PPPP1PPP/RNB1KBNR w KQkq - 0 1")
	require.NoError(t, err)
	black, err := position.FromFen("rnb1kbnr/pppp1ppp/8/3Qp3/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, Evaluate(white), -Evaluate(black))
}
