// Package search implements the alpha-beta search core: iterative
// deepening with aspiration windows, quiescence search, TT-aware move
// ordering, the pruning/reduction heuristics, and a shared-memory
// parallel coordinator running N worker goroutines over one
// transposition table.
//
// Grounded throughout on frankkopp/FrankyGo's internal/search package
// (search.go's Search/StartSearch/StopSearch orchestration via
// golang.org/x/sync/semaphore, alphabeta.go's node logic), extended
// with the SMP coordinator and time controller the teacher never
// needed because it only ever ran one search goroutine.
package search

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/chessforge/chessforge/internal/config"
	"github.com/chessforge/chessforge/internal/logging"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/tt"
	"github.com/chessforge/chessforge/internal/types"
)

var log = logging.GetLog("search")

// Info is one progress report a running search sends to the
// PVInfoCallback: a snapshot of the deepest completed iteration's best
// line, score, node count and elapsed time, in the shape a UCI "info"
// line needs.
type Info struct {
	Depth    int
	SelDepth int
	Score    types.Value
	Nodes    uint64
	Nps      uint64
	Time     time.Duration
	PV       []types.Move
}

// PVInfoCallback is invoked from the search goroutine once, after every
// worker has returned, with the final best line; it is not called for
// intermediate iterations. Implementations must not block
// significantly since they run on the search's own goroutine.
type PVInfoCallback func(Info)

// Search owns one engine search: the shared transposition table, the
// worker pool, and the start/stop gating the external interface (UCI
// loop, benchmarks, tests) drives through StartSearch/StopSearch.
type Search struct {
	tt  *tt.Table
	smp *smpCoordinator

	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	limits         Limits
	timeController *TimeController

	onInfo PVInfoCallback

	startTime time.Time
	workers   []*worker

	wg sync.WaitGroup

	mu       sync.Mutex
	stopOnce sync.Once
}

// NewSearch returns a Search with a freshly sized transposition table.
func NewSearch() *Search {
	return &Search{
		tt:            tt.New(config.Settings.Search.TTSizeMb),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
	}
}

// OnInfo registers the callback invoked with the final result when a
// search finishes.
func (s *Search) OnInfo(cb PVInfoCallback) { s.onInfo = cb }

// ClearTables discards transposition-table content between games.
func (s *Search) ClearTables() { s.tt.Clear() }

// ResizeTT reallocates the transposition table, discarding its
// contents.
func (s *Search) ResizeTT(sizeMb int) { s.tt.Resize(sizeMb) }

// AgeTT bumps the TT generation counter so stale entries from earlier
// positions lose replacement priority without a full clear. StartSearch
// does the same at the start of every search.
func (s *Search) AgeTT() { s.tt.NewSearch() }

// IsRunning reports whether a search is currently in flight.
func (s *Search) IsRunning() bool {
	if s.isRunning.TryAcquire(1) {
		s.isRunning.Release(1)
		return false
	}
	return true
}

// StartSearch begins searching root under limits and returns as soon
// as the search goroutine has been started; that goroutine launches the
// workers, and the search runs asynchronously until it is stopped with
// StopSearch or reaches its own limits.
func (s *Search) StartSearch(ctx context.Context, root *position.Position, limits Limits) error {
	if !s.initSemaphore.TryAcquire(1) {
		return errAlreadyInitializing
	}
	defer s.initSemaphore.Release(1)

	if !s.isRunning.TryAcquire(1) {
		return errAlreadyRunning
	}

	s.limits = limits
	s.startTime = time.Now()
	numWorkers := config.Settings.Smp.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	s.smp = newSmpCoordinator(numWorkers)
	s.stopOnce = sync.Once{}
	s.tt.NewSearch()

	moveOverhead := time.Duration(config.Settings.Smp.MoveOverheadMs) * time.Millisecond
	if limits.TimeControl() || limits.MoveTime > 0 {
		s.timeController = NewTimeController(limits, root.NextPlayer(), moveOverhead, s.startTime)
	} else {
		s.timeController = nil
	}

	s.workers = make([]*worker, numWorkers)
	for i := range s.workers {
		s.workers[i] = newWorker(i, root.Clone())
	}

	s.wg.Add(1)
	go s.run(ctx)
	return nil
}

func (s *Search) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.isRunning.Release(1)

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range s.workers {
		w := w
		g.Go(func() error {
			s.iterativeDeepen(w)
			return gctx.Err()
		})
	}
	_ = g.Wait()

	move, score, depth, pv := s.smp.best()
	if move == types.MoveNone && len(s.workers) > 0 {
		move = s.workers[0].rootBestMove
		score = s.workers[0].rootBestScore
	}
	log.Infof("search finished: depth=%d move=%s score=%s", depth, move.StringUci(), score.String())
	if s.onInfo != nil {
		s.onInfo(Info{
			Depth: depth,
			Score: score,
			Nodes: s.Nodes(),
			Time:  time.Since(s.startTime),
			PV:    pv,
		})
	}
}

// StopSearch requests the running search stop. abort=true discards
// in-flight work immediately; abort=false lets the current root
// aspiration-window resolution finish so the reported result is never
// worse than what was already proven.
func (s *Search) StopSearch(abort bool) {
	s.stopOnce.Do(func() {
		if s.smp != nil {
			s.smp.stopAll(abort)
		}
	})
	s.wg.Wait()
}

// checkStop is polled at every search-node boundary.
func (s *Search) checkStop(w *worker) signal {
	stop, abort := s.smp.shouldStop()
	if abort {
		return signalAborted
	}
	if stop {
		if w.resolvingRootFail {
			return signalNone
		}
		return signalStopped
	}
	if w.id == 0 && s.timeController != nil {
		if s.timeController.CheckTime() {
			s.smp.stopAll(true)
			return signalAborted
		}
	}
	if s.limits.Nodes > 0 && s.Nodes() >= s.limits.Nodes {
		s.smp.stopAll(false)
		return signalStopped
	}
	return signalNone
}

// BestMove returns the best move found by the most recently completed
// or stopped search.
func (s *Search) BestMove() types.Move {
	move, _, _, _ := s.smp.best()
	if move == types.MoveNone && len(s.workers) > 0 {
		return s.workers[0].rootBestMove
	}
	return move
}

// PonderMove returns the second move of the best line found, suitable
// for a UCI "ponder" suggestion, or types.MoveNone if the line is too
// short.
func (s *Search) PonderMove() types.Move {
	_, _, _, pv := s.smp.best()
	if len(pv) < 2 {
		return types.MoveNone
	}
	return pv[1]
}

// CurrentDepth returns the deepest iteration any worker has completed.
func (s *Search) CurrentDepth() int {
	_, _, depth, _ := s.smp.best()
	return depth
}

// SelDepth returns the deepest ply any worker's search touched,
// including quiescence extension.
func (s *Search) SelDepth() int {
	max := 0
	for _, w := range s.workers {
		if w.seldepth > max {
			max = w.seldepth
		}
	}
	return max
}

// Nodes returns the total node count across every worker.
func (s *Search) Nodes() uint64 {
	var total uint64
	for _, w := range s.workers {
		total += w.nodes
	}
	return total
}

type searchError string

func (e searchError) Error() string { return string(e) }

const (
	errAlreadyInitializing = searchError("search: already starting")
	errAlreadyRunning      = searchError("search: already running")
)
