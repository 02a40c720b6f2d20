package domain

import "time"

// Hour boundaries (inclusive start, exclusive end) for time-of-day buckets.
const (
	MorningStartHour   = 4
	AfternoonStartHour = 9
	EveningStartHour   = 17
	NightStartHour     = 22
)

// ValidationResult classifies when a measurement was taken.
type ValidationResult struct {
	TimeOfDay TimeOfDay
	Valid     bool
}

// Classify buckets t by its hour in t's own location. Only morning
// measurements are valid.
func Classify(t time.Time) ValidationResult {
	tod := TimeOfDayForHour(t.Hour())
	return ValidationResult{TimeOfDay: tod, Valid: tod == TimeMorning}
}

// TimeOfDayForHour maps an hour in [0, 23] to its bucket.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= MorningStartHour && hour < AfternoonStartHour:
		return TimeMorning
	case hour >= AfternoonStartHour && hour < EveningStartHour:
		return TimeAfternoon
	case hour >= EveningStartHour && hour < NightStartHour:
		return TimeEvening
	default:
		return TimeNight
	}
}

// RateScore maps a control pause score in seconds to a Rating.
func RateScore(seconds int) Rating {
	switch {
	case seconds < 10:
		return RatingCritical
	case seconds < 20:
		return RatingLow
	case seconds < 30:
		return RatingFair
	case seconds < 40:
		return RatingGood
	default:
		return RatingExcellent
	}
}
