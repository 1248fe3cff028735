package search

import (
	"time"

	"github.com/chessforge/chessforge/internal/util"
)

// Statistics is a point-in-time snapshot of a running or finished
// search, the shape the UCI "info" line and the benchmark driver both
// want: aggregate node count across every worker, effective nps, TT
// fill in permille, and the deepest iteration reached so far.
//
// Grounded on frankkopp/FrankyGo's internal/search statistics
// reporting (nodesPerSecond via util.Nps, hashfull sampling off the
// TT) generalized from one worker's counters to a sum across the
// worker pool.
type Statistics struct {
	Nodes    uint64
	Nps      uint64
	Depth    int
	SelDepth int
	Hashfull int
	Elapsed  time.Duration
}

// Stats aggregates the current node count, nps, depth and TT fill
// ratio across every worker into a single snapshot, safe to call while
// a search is in flight.
func (s *Search) Stats() Statistics {
	nodes := s.Nodes()
	elapsed := time.Since(s.startTime)
	return Statistics{
		Nodes:    nodes,
		Nps:      util.Nps(nodes, elapsed),
		Depth:    s.CurrentDepth(),
		SelDepth: s.SelDepth(),
		Hashfull: s.tt.Hashfull(),
		Elapsed:  elapsed,
	}
}
