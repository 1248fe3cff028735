package types

// SqLength is the number of squares on a chess board.
const SqLength = 64

// GamePhaseMax is the sum of types.GamePhaseValue() over a full starting
// set of minor/major pieces for one side (4 knights/bishops + 2 rooks*2 +
// 1 queen*4, doubled for both sides during calcPosValue blending).
const GamePhaseMax = 24

// MaxDepth bounds ply-indexed arrays (killer table, PV table, search stack).
const MaxDepth = 128

// MaxMoves bounds a single position's legal/pseudo-legal move buffer.
const MaxMoves = 256

var initialized bool

// Init precomputes every lookup table the types package depends on:
// bitboard attack/ray/magic tables and the piece-square tables used by
// the default evaluator. Must be called once before any Position is used.
func Init() {
	if initialized {
		return
	}
	initBb()
	initPosValues()
	initialized = true
}
