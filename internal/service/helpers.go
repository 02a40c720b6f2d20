package service

import (
	"github.com/dechbar/kpause/internal/domain"
)

// Summarize computes a Summary over ms, which may be in any order.
func Summarize(ms []*domain.Measurement, days int) *Summary {
	sum := &Summary{Days: days, Count: len(ms)}
	if len(ms) == 0 {
		return sum
	}

	var valid []*domain.Measurement
	for _, m := range ms {
		if m.Valid {
			valid = append(valid, m)
		}
		if sum.Latest == nil || m.MeasuredAt.After(sum.Latest.MeasuredAt) {
			sum.Latest = m
		}
	}
	sum.ValidCount = len(valid)

	pool := ms
	if len(valid) > 0 {
		pool = valid
		sum.ValidOnly = true
	}
	scores := make([]int, 0, len(pool))
	for _, m := range pool {
		scores = append(scores, m.Score)
		if m.Score > sum.Best {
			sum.Best = m.Score
		}
	}
	// pool is non-empty here, so AverageInts cannot fail.
	sum.Mean, _ = domain.AverageInts(scores)
	sum.Rating = domain.RateScore(sum.Mean)
	return sum
}
