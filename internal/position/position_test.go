package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessforge/chessforge/internal/types"
)

func TestFromFenStartPosition(t *testing.T) {
	p, err := FromFen(StartFen)
	require.NoError(t, err)
	assert.Equal(t, types.White, p.NextPlayer())
	assert.Equal(t, types.WhitePawn, p.PieceAt(types.SqE2))
	assert.Equal(t, types.BlackKing, p.PieceAt(types.SqE8))
	assert.Equal(t, types.SqNone, p.EnPassantSquare())
	assert.Equal(t, 0, p.HalfMoveClock())
}

func TestFenRoundTrip(t *testing.T) {
	p, err := FromFen(StartFen)
	require.NoError(t, err)
	assert.Equal(t, StartFen, p.Fen())
}

func TestDoMoveUndoMoveRestoresState(t *testing.T) {
	p, err := FromFen(StartFen)
	require.NoError(t, err)

	keyBefore := p.Key()
	move := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)

	p.DoMove(move)
	assert.Equal(t, types.Black, p.NextPlayer())
	assert.Equal(t, types.PieceNone, p.PieceAt(types.SqE2))
	assert.Equal(t, types.WhitePawn, p.PieceAt(types.SqE4))
	assert.Equal(t, types.SqE3, p.EnPassantSquare())
	assert.NotEqual(t, keyBefore, p.Key())

	p.UndoMove()
	assert.Equal(t, types.White, p.NextPlayer())
	assert.Equal(t, types.WhitePawn, p.PieceAt(types.SqE2))
	assert.Equal(t, types.PieceNone, p.PieceAt(types.SqE4))
	assert.Equal(t, keyBefore, p.Key())
}

func TestCaptureUpdatesMaterial(t *testing.T) {
	// White knight takes a black pawn.
	p, err := FromFen("rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	require.NoError(t, err)
	materialBefore := p.Material(types.Black)

	move := types.CreateMove(types.SqF3, types.SqE5, types.Normal, types.PtNone)
	p.DoMove(move)
	assert.Less(t, p.Material(types.Black), materialBefore)
	p.UndoMove()
	assert.Equal(t, materialBefore, p.Material(types.Black))
}

func TestInsufficientMaterialKingVsKing(t *testing.T) {
	p, err := FromFen("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, p.HasInsufficientMaterial())
}

func TestFiftyMoveDraw(t *testing.T) {
	p, err := FromFen("8/8/4k3/8/8/4K3/8/8 w - - 100 50")
	require.NoError(t, err)
	assert.True(t, p.IsFiftyMoveDraw())
}

func TestNullMoveSwapsSideToMoveOnly(t *testing.T) {
	p, err := FromFen(StartFen)
	require.NoError(t, err)
	keyBefore := p.Key()

	p.DoNullMove()
	assert.Equal(t, types.Black, p.NextPlayer())
	assert.NotEqual(t, keyBefore, p.Key())

	p.UndoNullMove()
	assert.Equal(t, types.White, p.NextPlayer())
	assert.Equal(t, keyBefore, p.Key())
}
