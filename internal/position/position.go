// Package position implements the board representation, move
// application and Zobrist hashing the search core treats as a black
// box collaborator: bitboard piece sets per color/type, incremental
// key maintenance, FEN parsing, repetition/fifty-move bookkeeping and
// the attack queries the move generator and SEE need.
//
// Grounded on frankkopp/FrankyGo's internal/position package: same
// bitboard-set-per-color-and-type layout, same undo-stack make/unmake
// shape, same incremental Zobrist maintenance idiom.
package position

import (
	"strconv"
	"strings"

	"github.com/chessforge/chessforge/internal/types"
)

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type undo struct {
	move          types.Move
	captured      types.Piece
	castling      types.CastlingRights
	enPassant     types.Square
	halfMoveClock int
	key           types.Key
}

// Position is a mutable board representation. It is not safe for
// concurrent use; each search worker owns its own Position, cloned
// from the root before the search starts.
type Position struct {
	board [types.SqLength]types.Piece

	pieces   [2][types.PtLength]types.Bitboard
	occupied [2]types.Bitboard
	all      types.Bitboard

	nextPlayer types.Color
	castling   types.CastlingRights
	enPassant  types.Square // types.SqNone if not available

	halfMoveClock  int
	fullMoveNumber int

	key types.Key

	material        [2]types.Value
	materialNonPawn [2]types.Value
	gamePhaseValue  int

	history []undo
}

// New returns a Position in the standard starting setup.
func New() *Position {
	p, err := FromFen(StartFen)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns a deep, independent copy suitable for handing to a
// search worker goroutine.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]undo(nil), p.history...)
	return &c
}

// NextPlayer returns the side to move.
func (p *Position) NextPlayer() types.Color { return p.nextPlayer }

// Key returns the current Zobrist hash.
func (p *Position) Key() types.Key { return p.key }

// HalfMoveClock returns the fifty-move-rule ply counter.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// PieceAt returns the piece on sq, or types.PieceNone.
func (p *Position) PieceAt(sq types.Square) types.Piece { return p.board[sq] }

// CastlingRights returns the currently available castling rights.
func (p *Position) CastlingRights() types.CastlingRights { return p.castling }

// EnPassantSquare returns the en-passant target square, or types.SqNone.
func (p *Position) EnPassantSquare() types.Square { return p.enPassant }

// Occupied returns the union of all pieces of the given color.
func (p *Position) Occupied(c types.Color) types.Bitboard { return p.occupied[c] }

// OccupiedAll returns the union of all pieces on the board.
func (p *Position) OccupiedAll() types.Bitboard { return p.all }

// Pieces returns the bitboard of pieces of type pt and color c.
func (p *Position) Pieces(c types.Color, pt types.PieceType) types.Bitboard {
	return p.pieces[c][pt]
}

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c types.Color) types.Square {
	return p.pieces[c][types.King].Lsb()
}

// Material returns the raw material sum (pieces + pawns) for c.
func (p *Position) Material(c types.Color) types.Value { return p.material[c] }

// MaterialNonPawn returns the material sum excluding pawns and king,
// used by the main search's NMP/RFP zugzwang guards.
func (p *Position) MaterialNonPawn(c types.Color) types.Value { return p.materialNonPawn[c] }

// GamePhase returns a value in [0, types.GamePhaseMax], 0 at the
// endgame extreme and GamePhaseMax at the opening extreme.
func (p *Position) GamePhase() int {
	if p.gamePhaseValue > types.GamePhaseMax {
		return types.GamePhaseMax
	}
	return p.gamePhaseValue
}

func (p *Position) putPiece(sq types.Square, pc types.Piece) {
	p.board[sq] = pc
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.pieces[c][pt].PushSquare(sq)
	p.occupied[c].PushSquare(sq)
	p.all.PushSquare(sq)
	p.key ^= zobrist.pieceSquare[pc][sq]
	p.material[c] += pt.ValueOf()
	if pt != types.Pawn && pt != types.King {
		p.materialNonPawn[c] += pt.ValueOf()
	}
	p.gamePhaseValue += pt.GamePhaseValue()
}

func (p *Position) removePiece(sq types.Square) types.Piece {
	pc := p.board[sq]
	c := pc.ColorOf()
	pt := pc.TypeOf()
	p.board[sq] = types.PieceNone
	p.pieces[c][pt].PopSquare(sq)
	p.occupied[c].PopSquare(sq)
	p.all.PopSquare(sq)
	p.key ^= zobrist.pieceSquare[pc][sq]
	p.material[c] -= pt.ValueOf()
	if pt != types.Pawn && pt != types.King {
		p.materialNonPawn[c] -= pt.ValueOf()
	}
	p.gamePhaseValue -= pt.GamePhaseValue()
	return pc
}

func (p *Position) movePiece(from, to types.Square) {
	pc := p.removePiece(from)
	p.putPiece(to, pc)
}

// IsAttacked reports whether sq is attacked by a piece of color c.
func (p *Position) IsAttacked(sq types.Square, c types.Color) bool {
	occ := p.all
	if types.GetPawnAttacks(c.Flip(), sq)&p.pieces[c][types.Pawn] != 0 {
		return true
	}
	if types.GetPseudoAttacks(types.Knight, sq)&p.pieces[c][types.Knight] != 0 {
		return true
	}
	if types.GetPseudoAttacks(types.King, sq)&p.pieces[c][types.King] != 0 {
		return true
	}
	if types.GetAttacksBb(types.Bishop, sq, occ)&(p.pieces[c][types.Bishop]|p.pieces[c][types.Queen]) != 0 {
		return true
	}
	if types.GetAttacksBb(types.Rook, sq, occ)&(p.pieces[c][types.Rook]|p.pieces[c][types.Queen]) != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsAttacked(p.KingSquare(p.nextPlayer), p.nextPlayer.Flip())
}

// GivesCheck reports whether playing move on the current position
// would leave the opponent's king attacked. Used by the main search's
// check-extension and by quiescence's evasion-only generation.
func (p *Position) GivesCheck(move types.Move) bool {
	p.DoMove(move)
	check := p.InCheck()
	p.UndoMove()
	return check
}

// DoMove applies a pseudo-legal move, pushing undo information.
func (p *Position) DoMove(move types.Move) {
	from, to := move.From(), move.To()
	moved := p.board[from]
	u := undo{
		move:          move,
		castling:      p.castling,
		enPassant:     p.enPassant,
		halfMoveClock: p.halfMoveClock,
		key:           p.key,
	}

	if p.enPassant != types.SqNone {
		p.key ^= zobrist.enPassant[p.enPassant.FileOf()]
	}
	p.enPassant = types.SqNone

	p.halfMoveClock++
	if moved.TypeOf() == types.Pawn {
		p.halfMoveClock = 0
	}

	switch move.MoveType() {
	case types.EnPassant:
		capSq := types.SquareOf(to.FileOf(), from.RankOf())
		u.captured = p.removePiece(capSq)
		p.movePiece(from, to)
	case types.Castling:
		u.captured = types.PieceNone
		p.movePiece(from, to)
		p.doCastleRookMove(to)
	case types.Promotion:
		if p.board[to] != types.PieceNone {
			u.captured = p.removePiece(to)
			p.halfMoveClock = 0
		}
		p.removePiece(from)
		p.putPiece(to, types.MakePiece(moved.ColorOf(), move.PromotionType()))
	default:
		if p.board[to] != types.PieceNone {
			u.captured = p.removePiece(to)
			p.halfMoveClock = 0
		}
		p.movePiece(from, to)
		if moved.TypeOf() == types.Pawn && types.SquareDistance(from, to) == 2 {
			ep := types.SquareOf(from.FileOf(), (from.RankOf()+to.RankOf())/2)
			p.enPassant = ep
			p.key ^= zobrist.enPassant[ep.FileOf()]
		}
	}

	p.key ^= zobrist.castling[p.castling]
	p.castling.Remove(types.GetCastlingRights(from))
	p.castling.Remove(types.GetCastlingRights(to))
	p.key ^= zobrist.castling[p.castling]

	p.nextPlayer = p.nextPlayer.Flip()
	p.key ^= zobrist.sideToMove
	if p.nextPlayer == types.White {
		p.fullMoveNumber++
	}

	p.history = append(p.history, u)
}

func (p *Position) doCastleRookMove(kingTo types.Square) {
	switch kingTo {
	case types.SqG1:
		p.movePiece(types.SqH1, types.SqF1)
	case types.SqC1:
		p.movePiece(types.SqA1, types.SqD1)
	case types.SqG8:
		p.movePiece(types.SqH8, types.SqF8)
	case types.SqC8:
		p.movePiece(types.SqA8, types.SqD8)
	}
}

func (p *Position) undoCastleRookMove(kingTo types.Square) {
	switch kingTo {
	case types.SqG1:
		p.movePiece(types.SqF1, types.SqH1)
	case types.SqC1:
		p.movePiece(types.SqD1, types.SqA1)
	case types.SqG8:
		p.movePiece(types.SqF8, types.SqH8)
	case types.SqC8:
		p.movePiece(types.SqD8, types.SqA8)
	}
}

// UndoMove reverses the most recently applied move.
func (p *Position) UndoMove() {
	n := len(p.history) - 1
	u := p.history[n]
	p.history = p.history[:n]

	p.nextPlayer = p.nextPlayer.Flip()
	if p.nextPlayer == types.Black {
		p.fullMoveNumber--
	}

	move := u.move
	from, to := move.From(), move.To()

	switch move.MoveType() {
	case types.EnPassant:
		p.movePiece(to, from)
		capSq := types.SquareOf(to.FileOf(), from.RankOf())
		p.putPiece(capSq, u.captured)
	case types.Castling:
		p.movePiece(to, from)
		p.undoCastleRookMove(to)
	case types.Promotion:
		p.removePiece(to)
		p.putPiece(from, types.MakePiece(p.nextPlayer, types.Pawn))
		if u.captured != types.PieceNone {
			p.putPiece(to, u.captured)
		}
	default:
		p.movePiece(to, from)
		if u.captured != types.PieceNone {
			p.putPiece(to, u.captured)
		}
	}

	p.castling = u.castling
	p.enPassant = u.enPassant
	p.halfMoveClock = u.halfMoveClock
	p.key = u.key
}

// DoNullMove passes the move without changing the board, for null-move
// pruning. The en-passant square is cleared the way a real move would
// clear it, since the skipped side couldn't have captured en passant
// anyway.
func (p *Position) DoNullMove() {
	u := undo{
		move:          types.MoveNone,
		castling:      p.castling,
		enPassant:     p.enPassant,
		halfMoveClock: p.halfMoveClock,
		key:           p.key,
	}
	if p.enPassant != types.SqNone {
		p.key ^= zobrist.enPassant[p.enPassant.FileOf()]
		p.enPassant = types.SqNone
	}
	p.nextPlayer = p.nextPlayer.Flip()
	p.key ^= zobrist.sideToMove
	p.halfMoveClock++
	p.history = append(p.history, u)
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	n := len(p.history) - 1
	u := p.history[n]
	p.history = p.history[:n]
	p.nextPlayer = p.nextPlayer.Flip()
	p.key = u.key
	p.enPassant = u.enPassant
	p.halfMoveClock = u.halfMoveClock
}

// IsRepetition reports whether the current key has occurred at least
// twice before in the game history (counting as a draw claim under the
// usual threefold rule once this and the original position make three).
func (p *Position) IsRepetition() bool {
	count := 0
	// Repetitions can only reoccur every 2 plies and only within the
	// last halfMoveClock plies (the fifty-move counter resets on any
	// irreversible move, which also breaks the repetition chain).
	limit := len(p.history) - p.halfMoveClock
	if limit < 0 {
		limit = 0
	}
	for i := len(p.history) - 2; i >= limit; i -= 2 {
		if p.history[i].key == p.key {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the fifty-move rule applies.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfMoveClock >= 100
}

// HasInsufficientMaterial reports the trivial draw-by-material cases:
// king vs king, king+minor vs king, and king+minor vs king+minor.
func (p *Position) HasInsufficientMaterial() bool {
	if p.all.PopCount() > 4 {
		return false
	}
	for c := types.White; c <= types.Black; c++ {
		if p.pieces[c][types.Pawn] != 0 || p.pieces[c][types.Rook] != 0 || p.pieces[c][types.Queen] != 0 {
			return false
		}
		minors := p.pieces[c][types.Knight].PopCount() + p.pieces[c][types.Bishop].PopCount()
		if minors > 1 {
			return false
		}
	}
	return true
}

// String renders an ASCII board, rank 8 at the top, matching the
// teacher's console debug output.
func (p *Position) String() string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		b.WriteString(strconv.Itoa(r + 1))
		b.WriteString(" ")
		for f := 0; f < 8; f++ {
			sq := types.SquareOf(types.File(f), types.Rank(r))
			b.WriteString(p.board[sq].String())
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("  a b c d e f g h\n")
	return b.String()
}
