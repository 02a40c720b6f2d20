package domain

import (
	"fmt"
	"time"
)

// TimerState is a point-in-time view of a measurement session.
type TimerState struct {
	Phase Phase
	// Elapsed is the current attempt's hold time; reset between attempts.
	Elapsed time.Duration
	// CurrentAttempt is the zero-based index of the attempt being measured
	// or about to be measured.
	CurrentAttempt int
	// PauseRemaining counts down in whole seconds while paused.
	PauseRemaining int
	Attempts       []*int
}

// Recorded returns the number of attempts that hold a value.
func (s TimerState) Recorded() int {
	n := 0
	for _, a := range s.Attempts {
		if a != nil {
			n++
		}
	}
	return n
}

// Measurement is a persisted, completed session.
type Measurement struct {
	ID           string
	MeasuredAt   time.Time
	AttemptCount int
	Attempts     []int
	Score        int
	TimeOfDay    TimeOfDay
	Valid        bool
	Note         string
	CreatedAt    time.Time
}

// NewMeasurement aggregates recorded attempts into a Measurement. The ID
// and CreatedAt are left for the caller.
func NewMeasurement(attempts []*int, configured int, measuredAt time.Time, note string) (*Measurement, error) {
	for _, a := range attempts {
		if a != nil && *a < 0 {
			return nil, fmt.Errorf("attempt value %d is negative", *a)
		}
	}
	score, err := Average(attempts)
	if err != nil {
		return nil, err
	}
	recorded := Compact(attempts)
	if configured < len(recorded) {
		configured = len(recorded)
	}
	v := Classify(measuredAt)
	return &Measurement{
		MeasuredAt:   measuredAt,
		AttemptCount: configured,
		Attempts:     recorded,
		Score:        score,
		TimeOfDay:    v.TimeOfDay,
		Valid:        v.Valid,
		Note:         note,
	}, nil
}

// Rating returns the rating for the measurement's score.
func (m *Measurement) Rating() Rating {
	return RateScore(m.Score)
}

// Complete reports whether every configured attempt was recorded.
func (m *Measurement) Complete() bool {
	return len(m.Attempts) >= m.AttemptCount
}
