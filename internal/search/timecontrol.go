package search

import (
	"time"

	"github.com/chessforge/chessforge/internal/types"
)

// TimeControlMode selects which clock model governs a search.
type TimeControlMode int

const (
	Infinite TimeControlMode = iota
	FixedTime
	SuddenDeath
	Fischer
	Tournament
)

// TimeController tracks the time budget for one search and decides,
// once per root iterative-deepening iteration and on every periodic
// poll, whether the search has run out of time.
//
// Grounded on frankkopp/FrankyGo's internal/search startTimer/
// addExtraTime/setupTimeControl idiom (a goroutine sleeping a small
// slice at a time and re-checking elapsed() against the budget),
// restructured into the three-method external interface spec.md names
// (new_iteration, check_time, elapsed).
type TimeController struct {
	mode TimeControlMode

	start    time.Time
	hardStop time.Duration
	softStop time.Duration

	moveOverhead time.Duration

	lastIterationDuration time.Duration
}

// NewTimeController builds a controller for limits as seen from the
// side to move, using now as the search's start instant.
func NewTimeController(limits Limits, us types.Color, moveOverhead time.Duration, now time.Time) *TimeController {
	tc := &TimeController{start: now, moveOverhead: moveOverhead}

	switch {
	case limits.Infinite:
		tc.mode = Infinite
		return tc
	case limits.MoveTime > 0:
		tc.mode = FixedTime
		tc.hardStop = limits.MoveTime
		tc.softStop = limits.MoveTime
		return tc
	}

	myTime := limits.WhiteTime
	myInc := limits.WhiteInc
	if us == types.Black {
		myTime = limits.BlackTime
		myInc = limits.BlackInc
	}

	if myTime <= 0 {
		tc.mode = Infinite
		return tc
	}

	if myInc > 0 && limits.MovesToGo == 0 {
		tc.mode = Fischer
		budget := myTime/20 + myInc
		tc.softStop = budget
		tc.hardStop = budget * 3
		return tc
	}

	if limits.MovesToGo > 0 {
		tc.mode = Tournament
		movesLeft := time.Duration(limits.MovesToGo)
		budget := myTime/movesLeft + myInc
		tc.softStop = budget
		tc.hardStop = budget * 3
		return tc
	}

	tc.mode = SuddenDeath
	budget := myTime/30 + myInc
	tc.softStop = budget
	tc.hardStop = budget * 4
	return tc
}

// Elapsed returns time spent searching so far.
func (tc *TimeController) Elapsed() time.Duration {
	return time.Since(tc.start)
}

// NewIteration is called by the root search before starting a deeper
// iterative-deepening pass. It extrapolates the next iteration's cost
// from the last one's (the teacher's branching-factor heuristic
// assumes roughly a constant-factor blowup per added ply) and reports
// whether there's enough budget left to be worth starting it at all.
func (tc *TimeController) NewIteration(lastIterationDuration time.Duration) bool {
	tc.lastIterationDuration = lastIterationDuration
	if tc.mode == Infinite {
		return true
	}
	const branchingFactorEstimate = 3
	projected := tc.Elapsed() + lastIterationDuration*branchingFactorEstimate
	return projected < tc.softStop || tc.Elapsed() < tc.softStop/2
}

// CheckTime is polled from inside the search loop (root move loop and
// periodically from the main search) and reports whether a hard abort
// is now required.
func (tc *TimeController) CheckTime() bool {
	if tc.mode == Infinite {
		return false
	}
	return tc.Elapsed()+tc.moveOverhead >= tc.hardStop
}

// ShouldStopSoft reports whether the soft budget has been exceeded.
// The search does not call it: it stops on CheckTime's hard budget and
// on NewIteration's projection.
func (tc *TimeController) ShouldStopSoft() bool {
	if tc.mode == Infinite {
		return false
	}
	return tc.Elapsed()+tc.moveOverhead >= tc.softStop
}
