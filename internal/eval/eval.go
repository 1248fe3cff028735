// Package eval implements the static evaluator the search core treats
// as a black box: material plus piece-square tables, blended across
// the game phase.
//
// Grounded on frankkopp/FrankyGo's internal/types/score.go blending
// idiom (Score{MidGameValue, EndGameValue}, blended by game phase) and
// internal/types/posValues.go's piece-square tables, which this module
// already carries as part of internal/types.
package eval

import (
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

// Evaluate returns a static score in centipawns from the perspective
// of the side to move: positive favors the mover.
func Evaluate(p *position.Position) types.Value {
	white := evaluateSide(p, types.White)
	black := evaluateSide(p, types.Black)
	score := white - black
	if p.NextPlayer() == types.Black {
		score = -score
	}
	return score
}

func evaluateSide(p *position.Position, c types.Color) types.Value {
	var score types.Value
	gp := p.GamePhase()
	for pt := types.King; pt <= types.Queen; pt++ {
		bb := p.Pieces(c, pt)
		for bb != 0 {
			sq := bb.PopLsb()
			pc := types.MakePiece(c, pt)
			score += pt.ValueOf() + types.PosValue(pc, sq, gp)
		}
	}
	return score
}

// Phase is a [0, types.GamePhaseMax] indicator of how close to the
// endgame the position is, exposed so the search's pruning margins can
// scale with it (the teacher's NMP-reduction game-phase check).
func Phase(p *position.Position) int {
	return p.GamePhase()
}
