package domain

import (
	"errors"
	"math"
)

// ErrNoAttempts is returned when an aggregate is requested over zero
// recorded attempts.
var ErrNoAttempts = errors.New("no recorded attempts")

// Attempt is one timed breath hold within a session. Seconds is nil until
// the attempt has been recorded.
type Attempt struct {
	Ordinal int
	Seconds *int
}

// Recorded reports whether the attempt holds a value.
func (a Attempt) Recorded() bool {
	return a.Seconds != nil
}

// Average returns the mean of the non-nil values rounded half-up to whole
// seconds. Unset entries are attempts never reached.
func Average(values []*int) (int, error) {
	sum, n := 0, 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0, ErrNoAttempts
	}
	return RoundHalfUp(float64(sum) / float64(n)), nil
}

// AverageInts is Average over a dense slice.
func AverageInts(values []int) (int, error) {
	ptrs := make([]*int, len(values))
	for i := range values {
		ptrs[i] = &values[i]
	}
	return Average(ptrs)
}

// RoundHalfUp rounds x to the nearest integer, with exact halves going
// toward positive infinity (32.5 -> 33, -0.5 -> 0).
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Compact drops unset entries, preserving order.
func Compact(values []*int) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
