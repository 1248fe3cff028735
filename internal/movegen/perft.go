package movegen

import (
	"time"

	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

// Perft counts leaf nodes of the legal-move tree to a fixed depth,
// broken down by move category, the standard way to cross-check a
// move generator against known node counts for well-studied
// positions.
//
// Grounded on frankkopp/FrankyGo's internal/movegen/perft.go Perft
// type, adapted from its on-demand/full-list dual generator modes to
// this package's single GenerateLegalMoves entry point.
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	CheckCounter     uint64

	stopped bool
}

// NewPerft returns an empty Perft counter.
func NewPerft() *Perft { return &Perft{} }

// Stop requests a running Run (from another goroutine) abandon its
// traversal at the next node boundary.
func (pf *Perft) Stop() { pf.stopped = true }

// Run walks every legal move to depth plies from fen and returns the
// elapsed wall-clock time, populating the counters as it goes.
func (pf *Perft) Run(fen string, depth int) (time.Duration, error) {
	pf.reset()
	if depth < 1 {
		depth = 1
	}
	pos, err := position.FromFen(fen)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	pf.Nodes = pf.search(pos, depth)
	return time.Since(start), nil
}

func (pf *Perft) search(pos *position.Position, depth int) uint64 {
	if pf.stopped {
		return 0
	}
	moves := GenerateLegalMoves(pos)
	if depth == 1 {
		var leaves uint64
		for _, move := range moves {
			pf.countLeaf(pos, move)
			leaves++
		}
		return leaves
	}
	var nodes uint64
	for _, move := range moves {
		if pf.stopped {
			return nodes
		}
		pos.DoMove(move)
		nodes += pf.search(pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}

func (pf *Perft) countLeaf(pos *position.Position, move types.Move) {
	capture := pos.PieceAt(move.To()) != types.PieceNone
	enpassant := move.MoveType() == types.EnPassant
	castling := move.MoveType() == types.Castling
	promotion := move.MoveType() == types.Promotion

	pos.DoMove(move)
	if capture || enpassant {
		pf.CaptureCounter++
	}
	if enpassant {
		pf.EnpassantCounter++
	}
	if castling {
		pf.CastleCounter++
	}
	if promotion {
		pf.PromotionCounter++
	}
	if pos.InCheck() {
		pf.CheckCounter++
	}
	pos.UndoMove()
}

func (pf *Perft) reset() {
	pf.Nodes = 0
	pf.CaptureCounter = 0
	pf.EnpassantCounter = 0
	pf.CastleCounter = 0
	pf.PromotionCounter = 0
	pf.CheckCounter = 0
	pf.stopped = false
}
