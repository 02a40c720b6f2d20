// Package events defines payloads published when measurements change.
package events

import "time"

// KPMeasuredVersion is the schema version stamped on KPMeasured.
const KPMeasuredVersion = "v1"

// KPMeasured is emitted after a completed measurement has been stored.
type KPMeasured struct {
	MeasurementID string    `json:"measurement_id"`
	MeasuredAt    time.Time `json:"measured_at"`
	Attempts      []int     `json:"attempts"`
	AttemptCount  int       `json:"attempt_count"`
	Score         int       `json:"score"`
	TimeOfDay     string    `json:"time_of_day"`
	Valid         bool      `json:"valid"`
	Rating        string    `json:"rating"`
	Version       string    `json:"version"`
}

// KPDeleted is emitted after a measurement has been removed.
type KPDeleted struct {
	MeasurementID string    `json:"measurement_id"`
	DeletedAt     time.Time `json:"deleted_at"`
	Version       string    `json:"version"`
}
