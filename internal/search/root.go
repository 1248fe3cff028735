package search

import (
	"time"

	"github.com/chessforge/chessforge/internal/movegen"
	"github.com/chessforge/chessforge/internal/types"
)

// iterativeDeepen drives one worker's iterative-deepening loop: depth
// 1, 2, 3, ... each searched with an aspiration window built around
// the previous iteration's score, widening on failure until a search
// at full width succeeds or the search is stopped.
//
// Grounded on frankkopp/FrankyGo's internal/search/alphabeta.go
// rootSearch plus search.go's iterativeDeepening driver, extended with
// the per-worker staggered starting depth and resolving-root-fail flag
// the SMP coordinator (§4.6) needs.
func (s *Search) iterativeDeepen(w *worker) {
	startDepth := 1 + w.id%2
	if startDepth < 1 {
		startDepth = 1
	}

	rootMoves := movegen.GenerateLegalMoves(w.pos)
	if len(rootMoves) == 0 {
		return
	}
	if len(rootMoves) == 1 {
		w.rootBestMove = rootMoves[0]
	}

	lastScore := types.ValueZero
	iterStart := time.Now()

	for depth := startDepth; ; depth++ {
		if s.limits.Depth > 0 && depth > s.limits.Depth {
			break
		}
		if depth > types.MaxDepth-1 {
			break
		}
		if w.id == 0 && s.timeController != nil {
			if !s.timeController.NewIteration(time.Since(iterStart)) {
				break
			}
		}
		iterStart = time.Now()

		score := s.rootSearchAspiration(w, depth, lastScore)
		if w.signal == signalAborted {
			break
		}
		if w.signal == signalStopped {
			lastScore = score
			w.rootDepth = depth
			break
		}

		lastScore = score
		w.rootDepth = depth
		nextDepth := s.smp.completeIteration(w.id, depth, score, w.rootBestMove)
		if nextDepth <= 0 {
			break
		}
	}
}

// rootSearchAspiration runs one iterative-deepening iteration with an
// aspiration window around guess, widening through aspirationSteps and
// finally falling back to a full-width search if every narrow attempt
// fails.
func (s *Search) rootSearchAspiration(w *worker, depth int, guess types.Value) types.Value {
	if depth <= 5 {
		return s.rootSearch(w, depth, -types.ValueInf, types.ValueInf)
	}

	alpha := guess - aspirationSteps[0]
	beta := guess + aspirationSteps[0]
	if alpha < -types.ValueInf {
		alpha = -types.ValueInf
	}
	if beta > types.ValueInf {
		beta = types.ValueInf
	}

	w.resolvingRootFail = false
	for i := 0; ; i++ {
		score := s.rootSearch(w, depth, alpha, beta)
		if w.signal.stop() {
			return score
		}
		if score <= alpha {
			w.resolvingRootFail = true
			alpha = widen(guess, score, i+1, -1)
			continue
		}
		if score >= beta {
			w.resolvingRootFail = true
			beta = widen(guess, score, i+1, 1)
			continue
		}
		w.resolvingRootFail = false
		return score
	}
}

func widen(guess, failedScore types.Value, step int, dir types.Value) types.Value {
	if step >= len(aspirationSteps) {
		if dir < 0 {
			return -types.ValueInf
		}
		return types.ValueInf
	}
	delta := aspirationSteps[step]
	if dir < 0 {
		return guess - delta
	}
	return guess + delta
}

// rootSearch searches every legal root move at depth within [alpha,
// beta], publishing the best move/score found so far under the SMP
// coordinator's short mutex whenever a root move raises alpha, so other
// workers (and a "stop" request) can see live progress.
func (s *Search) rootSearch(w *worker, depth int, alpha, beta types.Value) types.Value {
	pv := &w.pvTable[0]
	pv.clear()

	rootMoves := movegen.GenerateLegalMoves(w.pos)
	bestScore := -types.ValueInf
	var bestMove types.Move

	for i, move := range rootMoves {
		if sig := s.checkStop(w); sig.stop() {
			w.signal = sig
			if bestMove != types.MoveNone {
				w.rootBestMove = bestMove
				w.rootBestScore = bestScore
			}
			return bestScore
		}

		w.pos.DoMove(move)
		var score types.Value
		if i == 0 {
			score = -s.search(w, depth-1, -beta, -alpha, 1, move, false)
		} else {
			score = -s.search(w, depth-1, -alpha-1, -alpha, 1, move, true)
			if score > alpha {
				score = -s.search(w, depth-1, -beta, -alpha, 1, move, false)
			}
		}
		w.pos.UndoMove()

		if w.signal.stop() {
			if bestMove != types.MoveNone {
				w.rootBestMove = bestMove
				w.rootBestScore = bestScore
			}
			return bestScore
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				pv.set(move, &w.pvTable[1])
				w.rootBestMove = bestMove
				w.rootBestScore = bestScore
				s.smp.publish(w.id, bestMove, bestScore, depth, pv.slice())
				if alpha >= beta {
					break
				}
			}
		}
	}

	if bestMove != types.MoveNone {
		w.rootBestMove = bestMove
		w.rootBestScore = bestScore
	}
	return bestScore
}
