package search

import (
	"sync"
	"sync/atomic"

	"github.com/chessforge/chessforge/internal/types"
)

// smpCoordinator owns the shared state N worker goroutines coordinate
// through: the published best move/score (behind a short mutex, never
// held across a search call), a per-depth count of completed
// iterations (recorded only; no decision reads it), and the
// stop/abort flags every worker's checkStop polls.
//
// Grounded on frankkopp/FrankyGo's internal/search.Search orchestration
// (run()/StopSearch()/isRunning semaphore), generalized from "one
// search goroutine" to N, coordinated the way the spec's SMP
// Coordinator component describes rather than anything the teacher
// itself implements (FrankyGo never ran more than one search
// goroutine).
type smpCoordinator struct {
	mu sync.Mutex

	bestMove  types.Move
	bestScore types.Value
	bestDepth int
	bestPV    []types.Move

	depthVotes map[int]int
	numWorkers int

	stopped int32
	aborted int32
}

func newSmpCoordinator(numWorkers int) *smpCoordinator {
	return &smpCoordinator{
		numWorkers: numWorkers,
		depthVotes: make(map[int]int),
	}
}

// publish records a new best move/score found by worker id at depth,
// overwriting the previous best unless depth is shallower than the
// depth already published: a result at the same or a greater depth
// wins, whichever worker reports it.
func (c *smpCoordinator) publish(id int, move types.Move, score types.Value, depth int, pv []types.Move) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if depth < c.bestDepth {
		return
	}
	c.bestMove = move
	c.bestScore = score
	c.bestDepth = depth
	c.bestPV = append(c.bestPV[:0], pv...)
}

// best returns the most recently published move/score/PV.
func (c *smpCoordinator) best() (types.Move, types.Value, int, []types.Move) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bestMove, c.bestScore, c.bestDepth, append([]types.Move(nil), c.bestPV...)
}

// completeIteration registers that worker id finished depth with
// score/move, and returns the depth it should search next, or 0 if
// the search should stop. A worker always continues to its own
// next depth unless a global stop/abort has been requested; the vote
// bookkeeping exists so a future majority-based cutoff (e.g. "most
// workers agree this depth is pointless to repeat") has somewhere to
// live without changing every caller.
func (c *smpCoordinator) completeIteration(id, depth int, score types.Value, move types.Move) int {
	c.mu.Lock()
	c.depthVotes[depth]++
	pv := []types.Move{move}
	if len(c.bestPV) > 0 && c.bestPV[0] == move {
		pv = append([]types.Move(nil), c.bestPV...)
	}
	c.mu.Unlock()

	c.publish(id, move, score, depth, pv)

	if c.shouldStopAll() {
		return 0
	}
	return depth + 1
}

func (c *smpCoordinator) shouldStopAll() bool {
	return atomic.LoadInt32(&c.stopped) != 0 || atomic.LoadInt32(&c.aborted) != 0
}

// shouldStop is polled by every worker at every search-node boundary.
func (c *smpCoordinator) shouldStop() (stop bool, abort bool) {
	return atomic.LoadInt32(&c.stopped) != 0, atomic.LoadInt32(&c.aborted) != 0
}

// stopAll requests every worker stop. abort=true means discard
// in-flight work immediately; abort=false lets a worker finish
// resolving its current root aspiration window first.
func (c *smpCoordinator) stopAll(abort bool) {
	atomic.StoreInt32(&c.stopped, 1)
	if abort {
		atomic.StoreInt32(&c.aborted, 1)
	}
}

func (c *smpCoordinator) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bestMove = types.MoveNone
	c.bestScore = types.ValueNA
	c.bestDepth = 0
	c.bestPV = nil
	c.depthVotes = make(map[int]int)
	atomic.StoreInt32(&c.stopped, 0)
	atomic.StoreInt32(&c.aborted, 0)
}
