package search

import (
	"github.com/chessforge/chessforge/internal/config"
	"github.com/chessforge/chessforge/internal/movegen"
	"github.com/chessforge/chessforge/internal/picker"
	"github.com/chessforge/chessforge/internal/tt"
	"github.com/chessforge/chessforge/internal/types"
)

// qsearch extends the main search past the horizon through captures
// (and, when the side to move is in check, every evasion) until the
// position is "quiet", avoiding the horizon effect of stopping a
// fixed-depth search mid-exchange.
//
// Grounded on frankkopp/FrankyGo's internal/search/alphabeta.go
// qsearch: stand-pat cutoff, TT probe/store, SEE pruning of losing
// captures, mate/stalemate-by-no-evasion handling.
func (s *Search) qsearch(w *worker, alpha, beta types.Value, ply int) types.Value {
	alphaOrig := alpha
	if sig := s.checkStop(w); sig.stop() {
		w.signal = sig
		return 0
	}
	w.nodes++
	if ply > w.seldepth {
		w.seldepth = ply
	}

	if w.pos.IsRepetition() || w.pos.IsFiftyMoveDraw() || w.pos.HasInsufficientMaterial() {
		return types.ValueDraw
	}
	if ply >= types.MaxDepth-1 {
		return evaluate(w.pos)
	}

	// Mate distance pruning: no line from here can beat a mate already
	// found closer to the root, so the window can be clamped before
	// doing any work.
	if config.Settings.Search.UseMDP {
		matingValue := types.ValueCheckMate - types.Value(ply)
		if matingValue < beta {
			beta = matingValue
			if alpha >= beta {
				return alpha
			}
		}
		matedValue := -types.ValueCheckMate + types.Value(ply)
		if matedValue > alpha {
			alpha = matedValue
			if alpha >= beta {
				return alpha
			}
		}
	}

	inCheck := w.pos.InCheck()

	var ttMove types.Move
	if config.Settings.Search.UseQSTT {
		if mv, sc, _, bound, found := s.tt.Probe(w.pos.Key(), ply); found {
			ttMove = mv
			if config.Settings.Search.UseTTValue && probeCutoff(sc, bound, alpha, beta) {
				return sc
			}
		}
	}

	var standPat types.Value
	if !inCheck {
		standPat = evaluate(w.pos)
		if config.Settings.Search.UseQSStandpat {
			if standPat >= beta {
				return standPat
			}
			if standPat > alpha {
				alpha = standPat
			}
		}
	}

	bestScore := standPat
	if inCheck {
		bestScore = -types.ValueCheckMate + types.Value(ply)
	}
	var bestMove types.Move
	movesSearched := 0

	p := picker.NewQuiescence(w.pos, ttMove)
	for {
		move := p.Next()
		if move == types.MoveNone {
			break
		}
		if !movegen.IsLegal(w.pos, move) {
			continue
		}

		if !inCheck && config.Settings.Search.UseSEE && move.MoveType() != types.Promotion {
			if !movegen.SeeGe(w.pos, move, 0) {
				continue
			}
		}

		movesSearched++
		w.pos.DoMove(move)
		score := -s.qsearch(w, -beta, -alpha, ply+1)
		w.pos.UndoMove()

		if w.signal.stop() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				if alpha >= beta {
					break
				}
			}
		}
	}

	if inCheck && movesSearched == 0 {
		return -types.ValueCheckMate + types.Value(ply)
	}

	if config.Settings.Search.UseQSTT {
		bound := tt.BoundUpper
		if bestScore >= beta {
			bound = tt.BoundLower
		} else if bestScore > alphaOrig {
			bound = tt.BoundExact
		}
		s.tt.Store(w.pos.Key(), bestMove, bestScore, 0, bound, ply)
	}

	return bestScore
}

func probeCutoff(score types.Value, bound types.ValueType, alpha, beta types.Value) bool {
	switch bound {
	case tt.BoundExact:
		return true
	case tt.BoundLower:
		return score >= beta
	case tt.BoundUpper:
		return score <= alpha
	}
	return false
}
