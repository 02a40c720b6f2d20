package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMorning = time.Date(2025, 6, 15, 6, 30, 0, 0, time.UTC)

func TestNewMeasurement_Full(t *testing.T) {
	m, err := NewMeasurement([]*int{IntPtr(33), IntPtr(36), IntPtr(36)}, 3, testMorning, "rested")
	require.NoError(t, err)
	assert.Equal(t, 35, m.Score)
	assert.Equal(t, []int{33, 36, 36}, m.Attempts)
	assert.Equal(t, 3, m.AttemptCount)
	assert.Equal(t, TimeMorning, m.TimeOfDay)
	assert.True(t, m.Valid)
	assert.True(t, m.Complete())
	assert.Equal(t, RatingGood, m.Rating())
	assert.Equal(t, "rested", m.Note)
}

func TestNewMeasurement_EarlyFinish(t *testing.T) {
	evening := time.Date(2025, 6, 15, 19, 0, 0, 0, time.UTC)
	m, err := NewMeasurement([]*int{IntPtr(33), nil, nil}, 3, evening, "")
	require.NoError(t, err)
	assert.Equal(t, 33, m.Score)
	assert.Equal(t, []int{33}, m.Attempts)
	assert.False(t, m.Complete())
	assert.False(t, m.Valid)
	assert.Equal(t, TimeEvening, m.TimeOfDay)
}

func TestNewMeasurement_ConfiguredRaisedToRecorded(t *testing.T) {
	m, err := NewMeasurement([]*int{IntPtr(20), IntPtr(22)}, 1, testMorning, "")
	require.NoError(t, err)
	assert.Equal(t, 2, m.AttemptCount)
}

func TestNewMeasurement_RejectsEmptyAndNegative(t *testing.T) {
	_, err := NewMeasurement([]*int{nil}, 1, testMorning, "")
	assert.ErrorIs(t, err, ErrNoAttempts)

	_, err = NewMeasurement([]*int{IntPtr(-1)}, 1, testMorning, "")
	assert.Error(t, err)
}

func TestTimerState_Recorded(t *testing.T) {
	s := TimerState{Attempts: []*int{IntPtr(1), nil, IntPtr(0)}}
	assert.Equal(t, 2, s.Recorded())
}
