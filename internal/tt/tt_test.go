package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessforge/chessforge/internal/types"
)

func TestStoreThenProbeRoundTrip(t *testing.T) {
	table := New(1)
	key := types.Key(0x1234567890abcdef)
	move := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)

	table.Store(key, move, types.Value(42), 5, BoundExact, 0)

	gotMove, gotScore, gotDepth, gotBound, found := table.Probe(key, 0)
	assert.True(t, found)
	assert.Equal(t, move, gotMove)
	assert.Equal(t, types.Value(42), gotScore)
	assert.EqualValues(t, 5, gotDepth)
	assert.Equal(t, BoundExact, gotBound)
}

func TestProbeMissOnUnknownKey(t *testing.T) {
	table := New(1)
	_, _, _, _, found := table.Probe(types.Key(0xdeadbeef), 0)
	assert.False(t, found)
}

func TestClearRemovesEntries(t *testing.T) {
	table := New(1)
	key := types.Key(7)
	move := types.CreateMove(types.SqA2, types.SqA4, types.Normal, types.PtNone)
	table.Store(key, move, types.Value(10), 3, BoundExact, 0)

	table.Clear()

	_, _, _, _, found := table.Probe(key, 0)
	assert.False(t, found)
}

func TestMateScoreNormalizedAcrossPly(t *testing.T) {
	table := New(1)
	key := types.Key(99)
	move := types.CreateMove(types.SqD1, types.SqH5, types.Normal, types.PtNone)

	// A mate found 3 plies from the root, stored at ply 2, should read
	// back unchanged when probed at the same ply.
	mateScore := types.ValueCheckMate - 3
	table.Store(key, move, mateScore, 4, BoundExact, 2)

	_, gotScore, _, _, found := table.Probe(key, 2)
	assert.True(t, found)
	assert.Equal(t, mateScore, gotScore)
}

func TestHashfullIsZeroOnEmptyTable(t *testing.T) {
	table := New(1)
	assert.Equal(t, 0, table.Hashfull())
}

func TestNewSearchBumpsAgeWithoutClearing(t *testing.T) {
	table := New(1)
	key := types.Key(55)
	move := types.CreateMove(types.SqB1, types.SqC3, types.Normal, types.PtNone)
	table.Store(key, move, types.Value(1), 2, BoundExact, 0)

	table.NewSearch()

	_, _, _, _, found := table.Probe(key, 0)
	assert.True(t, found)
}
