package search

// signal is the sentinel the recursive search returns through instead
// of unwinding via panic/recover or a context cancellation check on
// every node: stopConditions() in the teacher's alphabeta.go plays the
// same role, just against a single bool instead of this module's
// two-valued stop/abort distinction.
type signal int

const (
	signalNone signal = iota
	// signalStopped means "unwind to the root and keep the best root
	// move found so far" - a soft stop. checkStop withholds it while a
	// worker is re-searching a failed root aspiration window, so that
	// re-search finishes first.
	signalStopped
	// signalAborted means "discard whatever is in flight, unwind to
	// the root immediately" - a hard time-up or a new position coming
	// in while still searching the old one.
	signalAborted
)

func (s signal) stop() bool {
	return s != signalNone
}
