package search

import "github.com/chessforge/chessforge/internal/types"

// Pruning/reduction margins, indexed by remaining depth. Index 0 is
// never looked at (these tables only apply at depth >= 1) and is kept
// as a placeholder so the depth itself can index the array directly.
//
// Values match the numbers spec.md gives explicitly rather than the
// teacher's own hand-tuned tables; the lookup-table-by-depth mechanism
// itself follows the teacher's params.go idiom.
var (
	rfpMargin = [4]types.Value{0, 300, 500, 900}

	razorMargin = [4]types.Value{0, 100, 200, 400}

	lmpCount = [6]int{0, 5, 10, 20, 35, 55}

	seePruneMargin = [5]types.Value{0, -100, -200, -300, -400}
)

const (
	nmpBaseReduction = 2
	nmpDepthDivisor  = 6

	probCutMargin = types.Value(210)
	probCutDepth  = 5

	lmrMinDepth            = 3
	lmrFirstTierMoveNumber = 3
	lmrFirstTierReduction  = 1
	lmrMinMoveNumber       = 6
	lmrReduction           = 2
	lmrPvReductionDelta    = 1

	iidMinDepth     = 6
	iidReduction    = 2
	checkExtension  = 1
	fpMaxDepth      = 6
)

// futilityMargin returns the standing-pat margin used by forward
// futility pruning at the given remaining depth.
func futilityMargin(depth int) types.Value {
	return types.Value(100 + 60*depth)
}

func rfpAt(depth int) (types.Value, bool) {
	if depth <= 0 || depth >= len(rfpMargin) {
		return 0, false
	}
	return rfpMargin[depth], true
}

func razorAt(depth int) (types.Value, bool) {
	if depth <= 0 || depth >= len(razorMargin) {
		return 0, false
	}
	return razorMargin[depth], true
}

func lmpAt(depth int) (int, bool) {
	if depth <= 0 || depth >= len(lmpCount) {
		return 0, false
	}
	return lmpCount[depth], true
}

func seePruneAt(depth int) (types.Value, bool) {
	if depth <= 0 || depth >= len(seePruneMargin) {
		return 0, false
	}
	return seePruneMargin[depth], true
}

// aspirationSteps is the widening schedule applied to a failed root
// aspiration window before falling back to a full-width search.
var aspirationSteps = [...]types.Value{25, 50, 100, 200, 400}
