package testutil

import (
	"time"

	"github.com/dechbar/kpause/internal/domain"
	"github.com/google/uuid"
)

// MorningAt returns today's date at 06:30 UTC shifted by daysAgo.
func MorningAt(daysAgo int) time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 6, 30, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
}

// MeasurementOption customizes a test measurement.
type MeasurementOption func(*domain.Measurement)

func WithMeasuredAt(t time.Time) MeasurementOption {
	return func(m *domain.Measurement) {
		m.MeasuredAt = t
		v := domain.Classify(t)
		m.TimeOfDay = v.TimeOfDay
		m.Valid = v.Valid
	}
}

func WithNote(n string) MeasurementOption {
	return func(m *domain.Measurement) {
		m.Note = n
	}
}

func WithAttemptCount(n int) MeasurementOption {
	return func(m *domain.Measurement) {
		m.AttemptCount = n
	}
}

// NewTestMeasurement builds a measurement from attempt values, taken this
// morning unless overridden.
func NewTestMeasurement(attempts []int, opts ...MeasurementOption) *domain.Measurement {
	score, err := domain.AverageInts(attempts)
	if err != nil {
		panic(err)
	}
	at := MorningAt(0)
	v := domain.Classify(at)
	m := &domain.Measurement{
		ID:           uuid.New().String(),
		MeasuredAt:   at,
		AttemptCount: len(attempts),
		Attempts:     append([]int(nil), attempts...),
		Score:        score,
		TimeOfDay:    v.TimeOfDay,
		Valid:        v.Valid,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
