package formatter

import (
	"testing"
	"time"

	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/service"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

var fmtNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func listFixtures() []*domain.Measurement {
	return []*domain.Measurement{
		{
			ID:           "4f1c2a9e-0c5d-4c1e-9d7a-1f2e3d4c5b6a",
			MeasuredAt:   time.Date(2025, 6, 15, 6, 30, 0, 0, time.UTC),
			AttemptCount: 3,
			Attempts:     []int{33, 36, 36},
			Score:        35,
			TimeOfDay:    domain.TimeMorning,
			Valid:        true,
			Note:         "after sleep",
		},
		{
			ID:           "b7d0e113-8a2f-4b9c-a1d3-0e9f8a7b6c5d",
			MeasuredAt:   time.Date(2025, 6, 14, 19, 5, 0, 0, time.UTC),
			AttemptCount: 3,
			Attempts:     []int{18},
			Score:        18,
			TimeOfDay:    domain.TimeEvening,
		},
	}
}

func TestFormatMeasurementList_Golden(t *testing.T) {
	out := stripANSI(FormatMeasurementList(listFixtures(), fmtNow))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "measurement_list", []byte(out))
}

func TestFormatMeasurementList_Empty(t *testing.T) {
	out := stripANSI(FormatMeasurementList(nil, fmtNow))
	assert.Contains(t, out, "No measurements")
	assert.Contains(t, out, "kpause measure")
}

func TestFormatMeasurement(t *testing.T) {
	ms := listFixtures()

	out := stripANSI(FormatMeasurement(ms[0], fmtNow))
	assert.Contains(t, out, ms[0].ID)
	assert.Contains(t, out, "Today 06:30")
	assert.Contains(t, out, "33 · 36 · 36")
	assert.Contains(t, out, "● GOOD")
	assert.Contains(t, out, "after sleep")
	assert.NotContains(t, out, "outside the morning window")

	out = stripANSI(FormatMeasurement(ms[1], fmtNow))
	assert.Contains(t, out, "(1 of 3)")
	assert.Contains(t, out, "outside the morning window")
}

func TestFormatSummary(t *testing.T) {
	ms := listFixtures()
	out := stripANSI(FormatSummary(&service.Summary{
		Days: 7, Count: 2, ValidCount: 1, Best: 35, Mean: 35,
		Latest: ms[0], Rating: domain.RatingGood, ValidOnly: true,
	}, fmtNow))
	assert.Contains(t, out, "LAST 7 DAYS")
	assert.Contains(t, out, "2 (1 morning)")
	assert.Contains(t, out, "35s")
	assert.NotContains(t, out, "No morning measurements")

	out = stripANSI(FormatSummary(&service.Summary{Days: 7, Count: 1, Mean: 18, Best: 18, Rating: domain.RatingLow}, fmtNow))
	assert.Contains(t, out, "No morning measurements")

	out = stripANSI(FormatSummary(&service.Summary{Days: 30}, fmtNow))
	assert.Contains(t, out, "No measurements in the last 30 days.")
}

func TestFormatClassification(t *testing.T) {
	at := time.Date(2025, 6, 15, 6, 40, 0, 0, time.UTC)
	out := stripANSI(FormatClassification(domain.Classify(at), at))
	assert.Contains(t, out, "06:40 UTC is morning")
	assert.Contains(t, out, "valid measurement window")

	at = time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	out = stripANSI(FormatClassification(domain.Classify(at), at))
	assert.Contains(t, out, "is night")
	assert.Contains(t, out, "outside")
}

func TestFormatSessionResult(t *testing.T) {
	m := listFixtures()[0]
	out := stripANSI(FormatSessionResult(m, true))
	assert.Contains(t, out, "SESSION COMPLETE")
	assert.Contains(t, out, "Saved as "+m.ID)

	out = stripANSI(FormatSessionResult(m, false))
	assert.Contains(t, out, "Not saved.")
}
