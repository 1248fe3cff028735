package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessforge/chessforge/internal/types"
)

func TestStoreKillerShiftsPrimaryIntoSecondary(t *testing.T) {
	tbl := New()
	m1 := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)
	m2 := types.CreateMove(types.SqD2, types.SqD4, types.Normal, types.PtNone)

	tbl.StoreKiller(3, m1)
	tbl.StoreKiller(3, m2)

	k0, k1 := tbl.Killers(3)
	assert.Equal(t, m2, k0)
	assert.Equal(t, m1, k1)
}

func TestStoreKillerDoesNotDuplicatePrimary(t *testing.T) {
	tbl := New()
	m1 := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)

	tbl.StoreKiller(1, m1)
	tbl.StoreKiller(1, m1)

	k0, k1 := tbl.Killers(1)
	assert.Equal(t, m1, k0)
	assert.Equal(t, types.MoveNone, k1)
}

func TestAddHistoryAccumulatesDepthSquaredBonus(t *testing.T) {
	tbl := New()
	tbl.AddHistory(types.White, types.SqE2, types.SqE4, 4)
	assert.EqualValues(t, 16, tbl.HistoryScore(types.White, types.SqE2, types.SqE4))

	tbl.AddHistory(types.White, types.SqE2, types.SqE4, 4)
	assert.EqualValues(t, 32, tbl.HistoryScore(types.White, types.SqE2, types.SqE4))
}

func TestHistoryHalvesOnOverflow(t *testing.T) {
	tbl := New()
	for i := 0; i < 200; i++ {
		tbl.AddHistory(types.White, types.SqB1, types.SqC3, 16)
	}
	assert.Less(t, tbl.HistoryScore(types.White, types.SqB1, types.SqC3), int32(MaxHistoryScore))
}

func TestCounterMoveRoundTrip(t *testing.T) {
	tbl := New()
	lastMove := types.CreateMove(types.SqE7, types.SqE5, types.Normal, types.PtNone)
	reply := types.CreateMove(types.SqG1, types.SqF3, types.Normal, types.PtNone)

	assert.Equal(t, types.MoveNone, tbl.CounterMove(types.White, lastMove))

	tbl.StoreCounterMove(types.White, lastMove, reply)
	assert.Equal(t, reply, tbl.CounterMove(types.White, lastMove))
}

func TestClearResetsAllTables(t *testing.T) {
	tbl := New()
	move := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)
	tbl.StoreKiller(0, move)
	tbl.AddHistory(types.White, types.SqE2, types.SqE4, 3)

	tbl.Clear()

	k0, _ := tbl.Killers(0)
	assert.Equal(t, types.MoveNone, k0)
	assert.EqualValues(t, 0, tbl.HistoryScore(types.White, types.SqE2, types.SqE4))
}
