package movegen

import (
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

// AttacksTo returns every piece of any color attacking sq given the
// occupancy occ (passed in separately so sliding "x-ray" attacks
// revealed mid-exchange can be recomputed against a shrinking board).
func AttacksTo(p *position.Position, sq types.Square, occ types.Bitboard) types.Bitboard {
	var attackers types.Bitboard
	attackers |= types.GetPawnAttacks(types.Black, sq) & p.Pieces(types.White, types.Pawn)
	attackers |= types.GetPawnAttacks(types.White, sq) & p.Pieces(types.Black, types.Pawn)
	attackers |= types.GetPseudoAttacks(types.Knight, sq) &
		(p.Pieces(types.White, types.Knight) | p.Pieces(types.Black, types.Knight))
	attackers |= types.GetPseudoAttacks(types.King, sq) &
		(p.Pieces(types.White, types.King) | p.Pieces(types.Black, types.King))
	bishopAttacks := types.GetAttacksBb(types.Bishop, sq, occ)
	attackers |= bishopAttacks & (p.Pieces(types.White, types.Bishop) | p.Pieces(types.Black, types.Bishop) |
		p.Pieces(types.White, types.Queen) | p.Pieces(types.Black, types.Queen))
	rookAttacks := types.GetAttacksBb(types.Rook, sq, occ)
	attackers |= rookAttacks & (p.Pieces(types.White, types.Rook) | p.Pieces(types.Black, types.Rook) |
		p.Pieces(types.White, types.Queen) | p.Pieces(types.Black, types.Queen))
	return attackers & occ
}

var seeOrder = [...]types.PieceType{types.Pawn, types.Knight, types.Bishop, types.Rook, types.Queen, types.King}

func leastValuableAttacker(p *position.Position, attackers types.Bitboard, c types.Color) (types.Square, types.PieceType) {
	for _, pt := range seeOrder {
		bb := attackers & p.Pieces(c, pt)
		if bb != 0 {
			return bb.Lsb(), pt
		}
	}
	return types.SqNone, types.PtNone
}

// See runs the standard swap-off Static Exchange Evaluation of move
// and returns the net material value (in centipawns) of the capture
// sequence on move.To(), from the mover's perspective.
//
// Grounded on frankkopp/FrankyGo's internal/search/see.go "gain array"
// algorithm (itself derived from the well known chessprogramming.org
// SEE pseudocode).
func See(p *position.Position, move types.Move) types.Value {
	to := move.To()
	from := move.From()
	us := p.PieceAt(from).ColorOf()

	var captured types.PieceType
	if move.MoveType() == types.EnPassant {
		captured = types.Pawn
	} else {
		captured = p.PieceAt(to).TypeOf()
	}

	occ := p.OccupiedAll()
	occ.PopSquare(from)
	if move.MoveType() == types.EnPassant {
		capSq := types.SquareOf(to.FileOf(), from.RankOf())
		occ.PopSquare(capSq)
	}

	var gain [32]types.Value
	depth := 0
	gain[0] = captured.ValueOf()
	attacker := p.PieceAt(from).TypeOf()
	side := us.Flip()

	attackers := AttacksTo(p, to, occ)

	for {
		depth++
		gain[depth] = attacker.ValueOf() - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}
		sq, pt := leastValuableAttacker(p, attackers, side)
		if sq == types.SqNone {
			break
		}
		occ.PopSquare(sq)
		attackers &^= sq.Bb()
		attackers |= types.GetAttacksBb(types.Bishop, to, occ) &
			(p.Pieces(types.White, types.Bishop) | p.Pieces(types.Black, types.Bishop) |
				p.Pieces(types.White, types.Queen) | p.Pieces(types.Black, types.Queen)) & occ
		attackers |= types.GetAttacksBb(types.Rook, to, occ) &
			(p.Pieces(types.White, types.Rook) | p.Pieces(types.Black, types.Rook) |
				p.Pieces(types.White, types.Queen) | p.Pieces(types.Black, types.Queen)) & occ
		attacker = pt
		side = side.Flip()
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

// SeeGe reports whether the capture sequence starting with move nets
// at least threshold centipawns for the mover, the external interface
// the picker and quiescence use for capture filtering.
func SeeGe(p *position.Position, move types.Move, threshold types.Value) bool {
	return See(p, move) >= threshold
}

func max(a, b types.Value) types.Value {
	if a > b {
		return a
	}
	return b
}
