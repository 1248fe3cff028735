package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chessforge/chessforge/internal/types"
)

func TestPublishKeepsDeepestResult(t *testing.T) {
	c := newSmpCoordinator(2)
	m1 := types.CreateMove(types.SqE2, types.SqE4, types.Normal, types.PtNone)
	m2 := types.CreateMove(types.SqD2, types.SqD4, types.Normal, types.PtNone)

	c.publish(0, m1, types.Value(10), 5, nil)
	c.publish(1, m2, types.Value(20), 3, nil)

	move, score, depth, _ := c.best()
	assert.Equal(t, m1, move)
	assert.EqualValues(t, 10, score)
	assert.Equal(t, 5, depth)
}

func TestStopAllIsObservedByShouldStop(t *testing.T) {
	c := newSmpCoordinator(1)
	stop, abort := c.shouldStop()
	assert.False(t, stop)
	assert.False(t, abort)

	c.stopAll(false)
	stop, abort = c.shouldStop()
	assert.True(t, stop)
	assert.False(t, abort)
}

func TestStopAllWithAbortSetsBothFlags(t *testing.T) {
	c := newSmpCoordinator(1)
	c.stopAll(true)
	stop, abort := c.shouldStop()
	assert.True(t, stop)
	assert.True(t, abort)
}

func TestCompleteIterationReturnsNextDepthUntilStopped(t *testing.T) {
	c := newSmpCoordinator(1)
	move := types.CreateMove(types.SqG1, types.SqF3, types.Normal, types.PtNone)

	next := c.completeIteration(0, 3, types.Value(0), move)
	assert.Equal(t, 4, next)

	c.stopAll(false)
	next = c.completeIteration(0, 4, types.Value(0), move)
	assert.Equal(t, 0, next)
}

func TestResetClearsPublishedStateAndFlags(t *testing.T) {
	c := newSmpCoordinator(1)
	move := types.CreateMove(types.SqG1, types.SqF3, types.Normal, types.PtNone)
	c.publish(0, move, types.Value(5), 2, nil)
	c.stopAll(true)

	c.reset()

	m, _, depth, _ := c.best()
	assert.Equal(t, types.MoveNone, m)
	assert.Equal(t, 0, depth)
	stop, abort := c.shouldStop()
	assert.False(t, stop)
	assert.False(t, abort)
}
