package search

import (
	"github.com/chessforge/chessforge/internal/eval"
	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

// evaluate is the search's only call into the black-box static
// evaluator. Kept as a thin wrapper (rather than calling eval.Evaluate
// directly from alphabeta/quiescence) so an eval cache can be slotted
// in here later without touching either search loop - the teacher's
// evaluate() in alphabeta.go plays the same role for its optional
// eval-TT.
func evaluate(p *position.Position) types.Value {
	return eval.Evaluate(p)
}
