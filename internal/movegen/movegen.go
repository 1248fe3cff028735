// Package movegen generates pseudo-legal and legal moves for a
// position and implements Static Exchange Evaluation. It is the move
// law collaborator the search core treats as a black box.
//
// Grounded on frankkopp/FrankyGo's internal/movegen package for the
// overall by-piece-type bitboard generation shape, and on its
// internal/search/see.go for the exchange evaluation algorithm.
package movegen

import (
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

// GenMode selects which subset of pseudo-legal moves to produce.
type GenMode uint8

const (
	GenCap GenMode = 1 << iota
	GenNonCap
	GenAll = GenCap | GenNonCap
)

// GeneratePseudoLegalMoves appends every pseudo-legal move for the
// side to move to moves, honoring mode.
func GeneratePseudoLegalMoves(p *position.Position, mode GenMode, moves *[]types.Move) {
	us := p.NextPlayer()
	them := us.Flip()
	occUs := p.Occupied(us)
	occThem := p.Occupied(them)
	occAll := p.OccupiedAll()

	generatePawnMoves(p, us, mode, moves)

	for _, pt := range [...]types.PieceType{types.Knight, types.Bishop, types.Rook, types.Queen} {
		bb := p.Pieces(us, pt)
		for bb != 0 {
			from := bb.PopLsb()
			attacks := types.GetAttacksBb(pt, from, occAll) &^ occUs
			addTargets(from, attacks, occThem, mode, moves)
		}
	}

	kingSq := p.KingSquare(us)
	attacks := types.GetPseudoAttacks(types.King, kingSq) &^ occUs
	addTargets(kingSq, attacks, occThem, mode, moves)

	if mode&GenNonCap != 0 && !p.IsAttacked(kingSq, them) {
		generateCastling(p, us, moves)
	}
}

func addTargets(from types.Square, targets types.Bitboard, occThem types.Bitboard, mode GenMode, moves *[]types.Move) {
	caps := targets & occThem
	quiets := targets &^ occThem
	if mode&GenCap != 0 {
		for caps != 0 {
			to := caps.PopLsb()
			*moves = append(*moves, types.CreateMove(from, to, types.Normal, types.PtNone))
		}
	}
	if mode&GenNonCap != 0 {
		for quiets != 0 {
			to := quiets.PopLsb()
			*moves = append(*moves, types.CreateMove(from, to, types.Normal, types.PtNone))
		}
	}
}

var promotionTypes = [...]types.PieceType{types.Queen, types.Rook, types.Bishop, types.Knight}

func generatePawnMoves(p *position.Position, us types.Color, mode GenMode, moves *[]types.Move) {
	them := us.Flip()
	occAll := p.OccupiedAll()
	occThem := p.Occupied(them)
	pawns := p.Pieces(us, types.Pawn)
	promRank := us.PromotionRankBb()

	if mode&GenCap != 0 {
		bb := pawns
		for bb != 0 {
			from := bb.PopLsb()
			caps := types.GetPawnAttacks(us, from) & occThem
			for caps != 0 {
				to := caps.PopLsb()
				addPawnMove(from, to, promRank, moves)
			}
			if p.EnPassantSquare() != types.SqNone && types.GetPawnAttacks(us, from).Has(p.EnPassantSquare()) {
				*moves = append(*moves, types.CreateMove(from, p.EnPassantSquare(), types.EnPassant, types.PtNone))
			}
		}
	}

	if mode&GenNonCap != 0 {
		bb := pawns
		for bb != 0 {
			from := bb.PopLsb()
			one := from.To(us.MoveDirection())
			if !one.IsValid() || occAll.Has(one) {
				continue
			}
			addPawnMove(from, one, promRank, moves)
			if from.RankOf() == doubleStartRank(us) {
				two := one.To(us.MoveDirection())
				if two.IsValid() && !occAll.Has(two) {
					*moves = append(*moves, types.CreateMove(from, two, types.Normal, types.PtNone))
				}
			}
		}
	}
}

func doubleStartRank(c types.Color) types.Rank {
	if c == types.White {
		return types.Rank2
	}
	return types.Rank7
}

func addPawnMove(from, to types.Square, promRank types.Bitboard, moves *[]types.Move) {
	if promRank.Has(to) {
		for _, pt := range promotionTypes {
			*moves = append(*moves, types.CreateMove(from, to, types.Promotion, pt))
		}
		return
	}
	*moves = append(*moves, types.CreateMove(from, to, types.Normal, types.PtNone))
}

func generateCastling(p *position.Position, us types.Color, moves *[]types.Move) {
	occAll := p.OccupiedAll()
	them := us.Flip()
	rights := p.CastlingRights()
	if us == types.White {
		if rights.Has(types.CastlingWhiteOO) && occAll&types.Intermediate(types.SqE1, types.SqH1) == 0 &&
			!p.IsAttacked(types.SqF1, them) {
			*moves = append(*moves, types.CreateMove(types.SqE1, types.SqG1, types.Castling, types.PtNone))
		}
		if rights.Has(types.CastlingWhiteOOO) && occAll&types.Intermediate(types.SqE1, types.SqA1) == 0 &&
			!p.IsAttacked(types.SqD1, them) {
			*moves = append(*moves, types.CreateMove(types.SqE1, types.SqC1, types.Castling, types.PtNone))
		}
		return
	}
	if rights.Has(types.CastlingBlackOO) && occAll&types.Intermediate(types.SqE8, types.SqH8) == 0 &&
		!p.IsAttacked(types.SqF8, them) {
		*moves = append(*moves, types.CreateMove(types.SqE8, types.SqG8, types.Castling, types.PtNone))
	}
	if rights.Has(types.CastlingBlackOOO) && occAll&types.Intermediate(types.SqE8, types.SqA8) == 0 &&
		!p.IsAttacked(types.SqD8, them) {
		*moves = append(*moves, types.CreateMove(types.SqE8, types.SqC8, types.Castling, types.PtNone))
	}
}

// IsLegal reports whether a pseudo-legal move leaves the mover's own
// king safe. Castling legality (the king's start/passage squares) is
// already enforced during generation.
func IsLegal(p *position.Position, move types.Move) bool {
	us := p.NextPlayer()
	p.DoMove(move)
	legal := !p.IsAttacked(p.KingSquare(us), us.Flip())
	p.UndoMove()
	return legal
}

// GenerateLegalMoves returns every legal move for the side to move.
// Used by the root search for move-count bookkeeping and by mate/
// stalemate detection.
func GenerateLegalMoves(p *position.Position) []types.Move {
	pseudo := make([]types.Move, 0, types.MaxMoves)
	GeneratePseudoLegalMoves(p, GenAll, &pseudo)
	legal := make([]types.Move, 0, len(pseudo))
	for _, m := range pseudo {
		if IsLegal(p, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMove reports whether the side to move has at least one legal
// move, without building the full list. Used to classify checkmate vs.
// stalemate once alpha-beta or quiescence finds no moves to search.
func HasLegalMove(p *position.Position) bool {
	pseudo := make([]types.Move, 0, types.MaxMoves)
	GeneratePseudoLegalMoves(p, GenAll, &pseudo)
	for _, m := range pseudo {
		if IsLegal(p, m) {
			return true
		}
	}
	return false
}
