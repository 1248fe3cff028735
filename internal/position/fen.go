package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chessforge/chessforge/internal/types"
)

// FromFen parses a Forsyth-Edwards Position string into a Position.
func FromFen(fen string) (*Position, error) {
	types.Init()

	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("position: invalid fen %q: need at least 4 fields", fen)
	}

	p := &Position{enPassant: types.SqNone}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("position: invalid fen %q: expected 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		rank := types.Rank(7 - i)
		file := types.FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += types.File(ch - '0')
				continue
			}
			if file > types.FileH {
				return nil, fmt.Errorf("position: invalid fen %q: rank overflow", fen)
			}
			pc := types.PieceFromChar(string(ch))
			if pc == types.PieceNone {
				return nil, fmt.Errorf("position: invalid fen %q: bad piece char %q", fen, ch)
			}
			p.putPiece(types.SquareOf(file, rank), pc)
			file++
		}
	}

	switch fields[1] {
	case "w":
		p.nextPlayer = types.White
	case "b":
		p.nextPlayer = types.Black
	default:
		return nil, fmt.Errorf("position: invalid fen %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castling.Add(types.CastlingWhiteOO)
			case 'Q':
				p.castling.Add(types.CastlingWhiteOOO)
			case 'k':
				p.castling.Add(types.CastlingBlackOO)
			case 'q':
				p.castling.Add(types.CastlingBlackOOO)
			}
		}
	}
	p.key ^= zobrist.castling[p.castling]

	if fields[3] != "-" {
		sq := types.MakeSquare(fields[3])
		if !sq.IsValid() {
			return nil, fmt.Errorf("position: invalid fen %q: bad en passant square %q", fen, fields[3])
		}
		p.enPassant = sq
		p.key ^= zobrist.enPassant[sq.FileOf()]
	}

	p.halfMoveClock = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			p.halfMoveClock = n
		}
	}
	p.fullMoveNumber = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			p.fullMoveNumber = n
		}
	}

	if p.nextPlayer == types.Black {
		p.key ^= zobrist.sideToMove
	}

	return p, nil
}

// Fen renders the position back into Forsyth-Edwards notation.
func (p *Position) Fen() string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := types.SquareOf(types.File(f), types.Rank(r))
			pc := p.board[sq]
			if pc == types.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(pc.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			b.WriteString("/")
		}
	}
	b.WriteString(" ")
	b.WriteString(p.nextPlayer.String())
	b.WriteString(" ")
	b.WriteString(p.castling.String())
	b.WriteString(" ")
	if p.enPassant == types.SqNone {
		b.WriteString("-")
	} else {
		b.WriteString(p.enPassant.String())
	}
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(p.halfMoveClock))
	b.WriteString(" ")
	b.WriteString(strconv.Itoa(p.fullMoveNumber))
	return b.String()
}
