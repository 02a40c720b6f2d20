package kptimer

import "github.com/dechbar/kpause/internal/domain"

// EventKind identifies what a state transition produced.
type EventKind int

const (
	EventPhaseChanged EventKind = iota + 1
	EventAttemptRecorded
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseChanged:
		return "phase_changed"
	case EventAttemptRecorded:
		return "attempt_recorded"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Event is emitted by Machine transitions.
type Event struct {
	Kind EventKind
	// Phase is the phase entered, set for EventPhaseChanged.
	Phase domain.Phase
	// Attempt is the zero-based attempt index, set for EventAttemptRecorded.
	Attempt int
	Seconds int
	// Results holds the recorded values in attempt order, set for EventCompleted.
	Results []int
}
