package search

import (
	"github.com/chessforge/chessforge/internal/config"
	"github.com/chessforge/chessforge/internal/history"
	"github.com/chessforge/chessforge/internal/movegen"
	"github.com/chessforge/chessforge/internal/picker"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/tt"
	"github.com/chessforge/chessforge/internal/types"
	"github.com/chessforge/chessforge/internal/util"
)

// search is the fail-soft principal-variation alpha-beta search.
// Returns a score from the perspective of the side to move at ply.
//
// Grounded on frankkopp/FrankyGo's internal/search/alphabeta.go
// search(): TT probe/cutoff, reverse futility pruning, razoring,
// null-move pruning with an adaptive reduction, ProbCut, internal
// iterative deepening, the per-move futility/LMP/SEE-pruning/
// check-extension/LMR forward-pruning block, and PVS re-search on a
// raised window.
func (s *Search) search(w *worker, depth int, alpha, beta types.Value, ply int, lastMove types.Move, cutNode bool) types.Value {
	pv := &w.pvTable[ply]
	pv.clear()

	isPV := beta-alpha > 1
	alphaOrig := alpha

	if sig := s.checkStop(w); sig.stop() {
		w.signal = sig
		return 0
	}

	if depth <= 0 {
		return s.qsearch(w, alpha, beta, ply)
	}

	w.nodes++
	if ply > w.seldepth {
		w.seldepth = ply
	}

	if ply > 0 {
		if w.pos.IsRepetition() || w.pos.IsFiftyMoveDraw() || w.pos.HasInsufficientMaterial() {
			return types.ValueDraw
		}
		if ply >= types.MaxDepth-1 {
			return evaluate(w.pos)
		}

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
	}

	inCheck := w.pos.InCheck()

	var ttMove types.Move
	var ttDepth int8
	var ttHit bool
	if config.Settings.Search.UseTT {
		if mv, sc, dp, bound, found := s.tt.Probe(w.pos.Key(), ply); found {
			ttMove = mv
			ttDepth = dp
			ttHit = true
			if !isPV && config.Settings.Search.UseTTValue && int(ttDepth) >= depth && probeCutoff(sc, bound, alpha, beta) {
				return sc
			}
		}
	}

	staticEval := types.ValueNA
	if !inCheck {
		staticEval = evaluate(w.pos)
	}

	if !isPV && !inCheck {
		// Reverse futility pruning: if we're already comfortably above
		// beta by more than the position could plausibly swing in
		// `depth` plies, return the static evaluation.
		if config.Settings.Search.UseRFP && w.pos.MaterialNonPawn(w.pos.NextPlayer()) > 0 {
			if margin, ok := rfpAt(depth); ok && staticEval-margin >= beta {
				return staticEval
			}
		}

		// Razoring: if we're so far below alpha that only a
		// quiescence search could possibly save the position, drop
		// straight into it. Skipped when a TT move is available since
		// that move alone may already salvage the score the static
		// margin predicts we'll fall short of.
		if config.Settings.Search.UseRazoring && depth <= 3 && ttMove == types.MoveNone {
			if margin, ok := razorAt(depth); ok && staticEval+margin <= alpha {
				if depth == 1 {
					return s.qsearch(w, alpha, beta, ply)
				}
				razorAlpha := alpha - margin
				score := s.qsearch(w, razorAlpha, razorAlpha+1, ply)
				if w.signal.stop() {
					return 0
				}
				if score <= razorAlpha {
					return score
				}
			}
		}

		// Null-move pruning: let the opponent move twice in a row; if
		// we're still doing fine under a reduced search, the real move
		// would do at least as well, so prune. Skipped when there's no
		// non-pawn material left to avoid zugzwang blindness.
		if config.Settings.Search.UseNullMove && depth >= config.Settings.Search.NmpDepth &&
			staticEval >= beta && w.pos.MaterialNonPawn(w.pos.NextPlayer()) > 0 {
			r := nmpBaseReduction + depth/nmpDepthDivisor
			w.pos.DoNullMove()
			nullScore := -s.search(w, depth-1-r, -beta, -beta+1, ply+1, types.MoveNone, !cutNode)
			w.pos.UndoNullMove()
			if w.signal.stop() {
				return 0
			}
			if nullScore >= beta {
				if nullScore >= types.ValueCheckMateThreshold {
					nullScore = beta
				}
				return nullScore
			}
		}

		// ProbCut: a shallow, reduced-window search that predicts
		// whether a deep search would fail high by more than a small
		// margin; if the cheap search clears the raised bound, the
		// node is cut with that score. Only captures whose SEE
		// already clears the raised bound are worth trying.
		if config.Settings.Search.UseProbCut && depth >= probCutDepth && !isMateScore(beta) &&
			w.pos.MaterialNonPawn(w.pos.NextPlayer()) > 0 {
			raisedBeta := beta + probCutMargin
			seeThreshold := raisedBeta - staticEval
			pcPicker := picker.New(w.pos, w.tables, ply, ttMove, lastMove)
			for {
				move := pcPicker.Next()
				if move == types.MoveNone {
					break
				}
				if w.pos.PieceAt(move.To()) == types.PieceNone {
					continue
				}
				if !movegen.IsLegal(w.pos, move) {
					continue
				}
				if !movegen.SeeGe(w.pos, move, seeThreshold) {
					continue
				}
				w.pos.DoMove(move)
				score := -s.search(w, depth-probCutDepth+1, -raisedBeta, -raisedBeta+1, ply+1, move, !cutNode)
				w.pos.UndoMove()
				if w.signal.stop() {
					return 0
				}
				if score >= raisedBeta {
					return score
				}
			}
		}
	}

	// Internal iterative deepening: with no TT move to seed ordering
	// at a node deep enough to matter, do a cheap reduced-depth search
	// first purely to populate one.
	if config.Settings.Search.UseIID && !ttHit && depth >= config.Settings.Search.IIDDepth && isPV {
		s.search(w, depth-iidReduction, alpha, beta, ply, lastMove, cutNode)
		if w.signal.stop() {
			return 0
		}
		ttMove = pv.moves[0]
		if pv.len == 0 {
			ttMove = types.MoveNone
		}
	}

	bestScore := -types.ValueInf
	var bestMove types.Move
	movesSearched := 0

	p := picker.New(w.pos, w.tables, ply, ttMove, lastMove)
	for {
		move := p.Next()
		if move == types.MoveNone {
			break
		}
		if !movegen.IsLegal(w.pos, move) {
			continue
		}

		isCapture := w.pos.PieceAt(move.To()) != types.PieceNone || move.MoveType() == types.EnPassant
		givesCheck := w.pos.GivesCheck(move)

		// Forward pruning: only ever applied to late, quiet, non-check
		// moves at nodes that aren't themselves in check, and never to
		// the first move of a node (which must always be searched to
		// establish a baseline).
		if !isPV && !inCheck && !isCapture && !givesCheck && movesSearched > 0 && bestScore > -types.ValueCheckMateThreshold {
			if config.Settings.Search.UseLmp && depth <= len(lmpCount)-1 {
				if count, ok := lmpAt(depth); ok && movesSearched >= count &&
					!isPawnPush(w.pos, move) &&
					!isKiller(w.tables, ply, move) &&
					util.Abs(int(alpha)) < int(types.ValueKnownWin) &&
					w.tables.HistoryScore(w.pos.NextPlayer(), move.From(), move.To()) == 0 {
					continue
				}
			}
			if config.Settings.Search.UseFP && depth <= fpMaxDepth {
				if staticEval+futilityMargin(depth) <= alpha {
					continue
				}
			}
		}

		if !inCheck && isCapture && config.Settings.Search.UseSEE && movesSearched > 0 {
			if margin, ok := seePruneAt(depth); ok && !movegen.SeeGe(w.pos, move, margin) {
				continue
			}
		}

		extension := 0
		if config.Settings.Search.UseCheckExt && givesCheck {
			extension = checkExtension
		}

		w.pos.DoMove(move)
		movesSearched++

		newDepth := depth - 1 + extension
		var score types.Value

		if movesSearched == 1 {
			score = -s.search(w, newDepth, -beta, -alpha, ply+1, move, false)
		} else {
			reduction := 0
			if config.Settings.Search.UseLmr && depth > lmrMinDepth &&
				!isCapture && !givesCheck && extension == 0 {
				if movesSearched > lmrMinMoveNumber {
					reduction = lmrReduction
				} else if movesSearched > lmrFirstTierMoveNumber {
					reduction = lmrFirstTierReduction
				}
				if reduction > 0 && isPV {
					reduction -= lmrPvReductionDelta
				}
				if reduction < 0 {
					reduction = 0
				}
			}
			score = -s.search(w, newDepth-reduction, -alpha-1, -alpha, ply+1, move, true)
			if score > alpha && reduction > 0 {
				score = -s.search(w, newDepth, -alpha-1, -alpha, ply+1, move, true)
			}
			if score > alpha && isPV {
				score = -s.search(w, newDepth, -beta, -alpha, ply+1, move, false)
			}
		}

		w.pos.UndoMove()

		if w.signal.stop() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				pv.set(move, &w.pvTable[ply+1])
				if alpha >= beta {
					if !isCapture {
						w.tables.StoreKiller(ply, move)
						w.tables.AddHistory(w.pos.NextPlayer(), move.From(), move.To(), depth)
						w.tables.StoreCounterMove(w.pos.NextPlayer(), lastMove, move)
					}
					break
				}
			}
		}
	}

	if movesSearched == 0 {
		if inCheck {
			return -types.ValueCheckMate + types.Value(ply)
		}
		return types.ValueDraw
	}

	if config.Settings.Search.UseTT {
		bound := tt.BoundUpper
		if bestScore >= beta {
			bound = tt.BoundLower
		} else if isPV && bestScore > alphaOrig {
			bound = tt.BoundExact
		}
		s.tt.Store(w.pos.Key(), bestMove, bestScore, int8(depth), bound, ply)
	}

	return bestScore
}

func isMateScore(v types.Value) bool {
	return v >= types.ValueCheckMateThreshold || v <= -types.ValueCheckMateThreshold
}

// isPawnPush reports whether move advances a pawn to within three ranks
// of promotion, exempting it from late-move pruning the way advanced
// passed-pawn-ish pushes are too dangerous to skip on move count alone.
func isPawnPush(p *position.Position, move types.Move) bool {
	if p.PieceAt(move.From()).TypeOf() != types.Pawn {
		return false
	}
	to := move.To().RankOf()
	if p.NextPlayer() == types.White {
		return to >= types.Rank6
	}
	return to <= types.Rank3
}

// isKiller reports whether move is one of the two killer moves stored
// for ply.
func isKiller(tables *history.Tables, ply int, move types.Move) bool {
	k0, k1 := tables.Killers(ply)
	mv := move.MoveOf()
	return mv == k0 || mv == k1
}
