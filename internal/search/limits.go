package search

import (
	"time"

	"github.com/chessforge/chessforge/internal/types"
)

// Limits bounds a single search call the way the teacher's
// search.Limits does: any combination of a fixed depth, a fixed node
// count, and/or a time budget. All zero means search until stopped
// externally. Mate and SearchMoves are carried but not read by the
// search: there is no mate-in-N limit, and every legal root move is
// searched.
type Limits struct {
	Infinite bool

	Depth int
	Nodes uint64
	Mate  int

	MoveTime time.Duration

	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int

	SearchMoves []types.Move
}

// NewLimits returns an infinite-search Limits value.
func NewLimits() Limits {
	return Limits{Infinite: true}
}

// TimeControl reports whether any clock-based limit was given.
func (l Limits) TimeControl() bool {
	return l.MoveTime > 0 || l.WhiteTime > 0 || l.BlackTime > 0
}
