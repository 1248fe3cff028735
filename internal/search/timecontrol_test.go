package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chessforge/chessforge/internal/types"
)

func TestTimeControllerInfiniteNeverStops(t *testing.T) {
	tc := NewTimeController(NewLimits(), types.White, 0, time.Now())
	assert.Equal(t, Infinite, tc.mode)
	assert.False(t, tc.CheckTime())
	assert.True(t, tc.NewIteration(time.Second))
}

func TestTimeControllerFixedTimeHardStop(t *testing.T) {
	limits := Limits{MoveTime: 50 * time.Millisecond}
	start := time.Now().Add(-100 * time.Millisecond)
	tc := NewTimeController(limits, types.White, 0, start)
	assert.Equal(t, FixedTime, tc.mode)
	assert.True(t, tc.CheckTime())
}

func TestTimeControllerFischerModePicksIncrementAwareBudget(t *testing.T) {
	limits := Limits{WhiteTime: 60 * time.Second, WhiteInc: 2 * time.Second}
	tc := NewTimeController(limits, types.White, 0, time.Now())
	assert.Equal(t, Fischer, tc.mode)
	assert.Greater(t, tc.hardStop, tc.softStop)
}

func TestTimeControllerTournamentModeUsesMovesToGo(t *testing.T) {
	limits := Limits{WhiteTime: 60 * time.Second, MovesToGo: 30}
	tc := NewTimeController(limits, types.White, 0, time.Now())
	assert.Equal(t, Tournament, tc.mode)
}

func TestTimeControllerNoTimeGivenIsInfinite(t *testing.T) {
	tc := NewTimeController(Limits{}, types.White, 0, time.Now())
	assert.Equal(t, Infinite, tc.mode)
}
