package repository

import (
	"strings"
	"time"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// formatTime stores t with its offset so the local hour survives a round trip.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// locationName returns the IANA name of t's zone, or "" for fixed offsets
// that cannot be reloaded.
func locationName(t time.Time) string {
	name := t.Location().String()
	if name == "Local" || strings.HasPrefix(name, "UTC+") || strings.HasPrefix(name, "UTC-") {
		return ""
	}
	if _, err := time.LoadLocation(name); err != nil {
		return ""
	}
	return name
}

// parseStoredTime parses an RFC3339 value and moves it into the named zone
// when one was recorded.
func parseStoredTime(value, zone string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	if zone == "" {
		return t, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return t, nil
	}
	return t.In(loc), nil
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
