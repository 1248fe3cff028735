package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMoveRoundTrip(t *testing.T) {
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, Normal, m.MoveType())
	assert.True(t, m.IsValid())
	assert.Equal(t, "e2e4", m.StringUci())
}

func TestCreateMovePromotion(t *testing.T) {
	m := CreateMove(SqE7, SqE8, Promotion, Queen)
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, Promotion, m.MoveType())
	assert.Equal(t, "e7e8Q", m.StringUci())
}

func TestMoveValueStrippedByMoveOf(t *testing.T) {
	base := CreateMove(SqA1, SqA8, Normal, PtNone)
	withValue := CreateMoveValue(SqA1, SqA8, Normal, PtNone, Value(150))
	assert.Equal(t, Value(150), withValue.ValueOf())
	assert.Equal(t, base, withValue.MoveOf())
}

func TestMoveNoneIsInvalid(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	assert.Equal(t, "NoMove", MoveNone.StringUci())
}

func TestSetValueOnMoveNoneIsNoop(t *testing.T) {
	m := MoveNone
	m.SetValue(Value(10))
	assert.Equal(t, MoveNone, m)
}
