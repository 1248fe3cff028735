package search

import (
	"github.com/chessforge/chessforge/internal/history"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

// pvLine is a fixed-capacity principal-variation buffer for one ply,
// the way the teacher's triangular PV array works: savePV at ply p
// copies ply p+1's surviving line behind the move just found.
type pvLine struct {
	moves [types.MaxDepth]types.Move
	len   int
}

func (l *pvLine) set(move types.Move, child *pvLine) {
	l.moves[0] = move
	copy(l.moves[1:], child.moves[:child.len])
	l.len = child.len + 1
}

func (l *pvLine) clear() { l.len = 0 }

func (l *pvLine) slice() []types.Move { return l.moves[:l.len] }

// worker is the per-goroutine search state: its own board (cloned from
// the root position), its own killer/history/counter tables, its own
// PV buffers and node/seldepth counters. Only the transposition table
// is shared across workers.
type worker struct {
	id  int
	pos *position.Position

	tables *history.Tables

	pvTable [types.MaxDepth]pvLine

	nodes    uint64
	seldepth int

	rootBestMove  types.Move
	rootBestScore types.Value
	rootDepth     int

	resolvingRootFail bool

	signal signal
}

func newWorker(id int, pos *position.Position) *worker {
	return &worker{
		id:     id,
		pos:    pos,
		tables: history.New(),
	}
}
