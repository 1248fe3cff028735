package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessforge/chessforge/internal/position"
	"github.com/chessforge/chessforge/internal/types"
)

func TestPvLineSetPrependsMoveToChildLine(t *testing.T) {
	var child pvLine
	child.moves[0] = types.CreateMove(types.SqE7, types.SqE5, types.Normal, types.PtNone)
	child.len = 1

	var pv pvLine
	move := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)
	pv.set(move, &child)

	assert.Equal(t, 2, pv.len)
	assert.Equal(t, []types.Move{move, child.moves[0]}, pv.slice())
}

func TestPvLineClearResetsLength(t *testing.T) {
	var pv pvLine
	pv.moves[0] = types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)
	pv.len = 1

	pv.clear()
	assert.Equal(t, 0, pv.len)
	assert.Empty(t, pv.slice())
}

func TestNewWorkerStartsWithEmptyTables(t *testing.T) {
	pos, err := position.FromFen(position.StartFen)
	if err != nil {
		t.Fatal(err)
	}
	w := newWorker(0, pos)
	assert.Equal(t, 0, w.id)
	assert.Equal(t, uint64(0), w.nodes)
	k0, k1 := w.tables.Killers(0)
	assert.Equal(t, types.MoveNone, k0)
	assert.Equal(t, types.MoveNone, k1)
}
