package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage_RoundsToNearest(t *testing.T) {
	got, err := Average([]*int{IntPtr(33), IntPtr(36), IntPtr(36)})
	require.NoError(t, err)
	assert.Equal(t, 35, got)
}

func TestAverage_HalfRoundsUp(t *testing.T) {
	got, err := Average([]*int{IntPtr(30), IntPtr(35)})
	require.NoError(t, err)
	assert.Equal(t, 33, got, "32.5 rounds half-up")

	got, err = Average([]*int{IntPtr(20), IntPtr(21)})
	require.NoError(t, err)
	assert.Equal(t, 21, got, "20.5 rounds half-up, not to even")
}

func TestAverage_SkipsUnset(t *testing.T) {
	got, err := Average([]*int{IntPtr(33), nil, nil})
	require.NoError(t, err)
	assert.Equal(t, 33, got)
}

func TestAverage_EmptyFails(t *testing.T) {
	_, err := Average([]*int{nil, nil, nil})
	assert.ErrorIs(t, err, ErrNoAttempts)

	_, err = Average(nil)
	assert.ErrorIs(t, err, ErrNoAttempts)
}

func TestAverageInts(t *testing.T) {
	got, err := AverageInts([]int{10, 11})
	require.NoError(t, err)
	assert.Equal(t, 11, got)
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{34.999, 35},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoundHalfUp(tc.in), "in=%v", tc.in)
	}
}

func TestCompact_PreservesOrder(t *testing.T) {
	assert.Equal(t, []int{5, 7}, Compact([]*int{nil, IntPtr(5), nil, IntPtr(7)}))
	assert.Empty(t, Compact(nil))
}

func TestAttempt_Recorded(t *testing.T) {
	assert.False(t, Attempt{Ordinal: 1}.Recorded())
	assert.True(t, Attempt{Ordinal: 1, Seconds: IntPtr(0)}.Recorded())
}
