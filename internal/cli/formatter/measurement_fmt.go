package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/service"
)

// FormatMeasurementList renders measurements newest first as a table.
func FormatMeasurementList(ms []*domain.Measurement, now time.Time) string {
	if len(ms) == 0 {
		return Dim("No measurements in this window. Run 'kpause measure' to record one.") + "\n"
	}

	headers := []string{"ID", "WHEN", "SCORE", "ATTEMPTS", "TIME", "RATING"}
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			TruncID(m.ID),
			WhenLabel(m.MeasuredAt, now),
			strconv.Itoa(m.Score) + "s",
			AttemptList(m.Attempts),
			ValidityPill(m.Valid, m.TimeOfDay),
			RatingBadge(m.Rating()),
		})
	}
	return RenderTable(headers, rows, 2)
}

// FormatMeasurement renders one measurement in a box.
func FormatMeasurement(m *domain.Measurement, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID      "), m.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("When    "), WhenLabel(m.MeasuredAt, now))
	fmt.Fprintf(&b, "%s  %s  %s\n", Dim("Score   "), RenderGauge(m.Score, 20), RatingBadge(m.Rating()))

	attempts := AttemptList(m.Attempts)
	if !m.Complete() {
		attempts += Dim(fmt.Sprintf("  (%d of %d)", len(m.Attempts), m.AttemptCount))
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("Attempts"), attempts)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Time    "), ValidityPill(m.Valid, m.TimeOfDay))
	if m.Note != "" {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Note    "), m.Note)
	}
	if !m.Valid {
		b.WriteString("\n" + StyleYellow.Render("Taken outside the morning window; not comparable to the baseline.") + "\n")
	}
	return RenderBox("Control pause", strings.TrimRight(b.String(), "\n"))
}

// FormatSummary renders Stats output.
func FormatSummary(s *service.Summary, now time.Time) string {
	if s == nil || s.Count == 0 {
		return Dim(fmt.Sprintf("No measurements in the last %d days.", summaryDays(s))) + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d (%d morning)\n", Dim("Measurements"), s.Count, s.ValidCount)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Mean        "), RenderGauge(s.Mean, 20))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Best        "), FormatSeconds(s.Best))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Rating      "), RatingBadge(s.Rating))
	if s.Latest != nil {
		fmt.Fprintf(&b, "%s  %ds, %s\n", Dim("Latest      "), s.Latest.Score, WhenLabel(s.Latest.MeasuredAt, now))
	}
	if !s.ValidOnly {
		b.WriteString("\n" + StyleYellow.Render("No morning measurements yet; figures include all times of day.") + "\n")
	}
	return RenderBox(fmt.Sprintf("Last %d days", s.Days), strings.TrimRight(b.String(), "\n"))
}

func summaryDays(s *service.Summary) int {
	if s == nil {
		return 0
	}
	return s.Days
}

// FormatClassification explains how a moment is classified.
func FormatClassification(res domain.ValidationResult, at time.Time) string {
	line := fmt.Sprintf("%s is %s", at.Format("15:04 MST"), Bold(string(res.TimeOfDay)))
	if res.Valid {
		return line + ": " + StyleGreen.Render("valid measurement window") + "\n"
	}
	return line + ": " + StyleYellow.Render("outside the 04:00-09:00 measurement window") + "\n"
}

// FormatSessionResult is printed when a measure session ends.
func FormatSessionResult(m *domain.Measurement, saved bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Attempts"), AttemptList(m.Attempts))
	fmt.Fprintf(&b, "%s  %s  %s\n", Dim("Score   "), RenderGauge(m.Score, 20), RatingBadge(m.Rating()))
	fmt.Fprintf(&b, "%s  %s", Dim("Time    "), ValidityPill(m.Valid, m.TimeOfDay))
	out := RenderBox("Session complete", b.String()) + "\n"
	if saved {
		out += Dim("Saved as "+m.ID) + "\n"
	} else {
		out += Dim("Not saved.") + "\n"
	}
	return out
}
