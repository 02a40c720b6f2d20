package domain

// Phase is the lifecycle position of a measurement session.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePreparing Phase = "preparing"
	PhaseMeasuring Phase = "measuring"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
)

// TimeOfDay buckets a wall-clock hour.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// ValidTimesOfDay is the canonical set of accepted time-of-day strings.
var ValidTimesOfDay = map[string]bool{
	"morning": true, "afternoon": true, "evening": true, "night": true,
}

// Rating is a coarse label for a control pause score.
type Rating string

const (
	RatingCritical  Rating = "critical"
	RatingLow       Rating = "low"
	RatingFair      Rating = "fair"
	RatingGood      Rating = "good"
	RatingExcellent Rating = "excellent"
)
