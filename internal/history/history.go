// Package history holds the per-worker move-ordering heuristics the
// main search and the move selector share: killer moves, the
// history-of-success table for quiet moves, and the counter-move
// table. Each search worker owns one instance; nothing here is shared
// across goroutines.
//
// Grounded on frankkopp/FrankyGo's internal/history package
// (HistoryCount/CounterMoves tables) and its internal/movegen package
// (killerMoves per-ply storage), restructured into the single
// combined per-worker table the spec's Worker State calls for.
package history

import (
	"github.com/chessforge/chessforge/internal/types"
)

// MaxHistoryScore is the ceiling a history score is allowed to reach
// before every entry is halved, keeping later updates meaningful
// relative to moves that scored well early in a long search.
const MaxHistoryScore = 1 << 15

// Tables bundles the three move-ordering heuristics for a single
// search worker.
type Tables struct {
	killers [types.MaxDepth][2]types.Move
	history [2][64][64]int32
	counter [2][64][64]types.Move
}

// New returns an empty set of tables.
func New() *Tables {
	return &Tables{}
}

// Clear resets every table. The search does not call it: each search
// gives every worker fresh tables from New, so they live for one
// search (not reset between iterative-deepening iterations).
func (t *Tables) Clear() {
	*t = Tables{}
}

// Killers returns the two killer moves stored for ply.
func (t *Tables) Killers(ply int) (types.Move, types.Move) {
	k := &t.killers[ply]
	return k[0], k[1]
}

// StoreKiller records move as the newest killer at ply, shifting the
// previous primary killer into the secondary slot. A move already
// stored as the primary killer is not duplicated.
func (t *Tables) StoreKiller(ply int, move types.Move) {
	k := &t.killers[ply]
	if k[0] == move {
		return
	}
	k[1] = k[0]
	k[0] = move
}

// HistoryScore returns the accumulated quiet-move score for c's move
// from -> to.
func (t *Tables) HistoryScore(c types.Color, from, to types.Square) int32 {
	return t.history[c][from][to]
}

// AddHistory rewards a quiet move that caused a beta cutoff, weighted
// by the remaining depth the way the teacher's history update does
// (deeper cutoffs say more about the move's quality). Halves every
// entry once the ceiling is hit so relative ordering survives a long
// search without overflowing.
func (t *Tables) AddHistory(c types.Color, from, to types.Square, depth int) {
	bonus := int32(depth * depth)
	v := &t.history[c][from][to]
	*v += bonus
	if *v >= MaxHistoryScore {
		t.halveHistory()
	}
}

func (t *Tables) halveHistory() {
	for c := 0; c < 2; c++ {
		for from := 0; from < 64; from++ {
			for to := 0; to < 64; to++ {
				t.history[c][from][to] /= 2
			}
		}
	}
}

// CounterMove returns the recorded response to the opponent's move
// lastMove, if any.
func (t *Tables) CounterMove(c types.Color, lastMove types.Move) types.Move {
	if lastMove == types.MoveNone {
		return types.MoveNone
	}
	return t.counter[c][lastMove.From()][lastMove.To()]
}

// StoreCounterMove records move as the reply to the opponent's
// lastMove that caused a beta cutoff. Updated on every such cutoff
// involving a quiet move, not just the first.
func (t *Tables) StoreCounterMove(c types.Color, lastMove, move types.Move) {
	if lastMove == types.MoveNone {
		return
	}
	t.counter[c][lastMove.From()][lastMove.To()] = move
}
