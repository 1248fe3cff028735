package position

import (
	"math/rand"

	"github.com/chessforge/chessforge/internal/types"
)

// zobrist holds the random numbers used to incrementally maintain a
// position's hash key the way FrankyGo's position package does it:
// one random word per piece/square, one per castling-rights state, one
// per en-passant file and one for the side to move.
var zobrist struct {
	pieceSquare [types.PieceLength][types.SqLength]types.Key
	castling    [types.CastlingRightsLength]types.Key
	enPassant   [8]types.Key
	sideToMove  types.Key
}

func init() {
	// Deterministic seed: the actual values don't matter, only that
	// they're fixed and well distributed, so search results are
	// reproducible across runs.
	r := rand.New(rand.NewSource(0xC0FFEE))
	for p := types.PieceNone; p < types.PieceLength; p++ {
		for sq := 0; sq < types.SqLength; sq++ {
			zobrist.pieceSquare[p][sq] = types.Key(r.Uint64())
		}
	}
	for i := range zobrist.castling {
		zobrist.castling[i] = types.Key(r.Uint64())
	}
	for i := range zobrist.enPassant {
		zobrist.enPassant[i] = types.Key(r.Uint64())
	}
	zobrist.sideToMove = types.Key(r.Uint64())
}
