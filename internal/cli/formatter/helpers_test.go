package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI keeps assertions independent of the terminal color profile.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0s"},
		{-3, "0s"},
		{42, "42s"},
		{60, "1m 00s"},
		{65, "1m 05s"},
		{125, "2m 05s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.in), "in=%d", tt.in)
	}
}

func TestFormatStopwatch(t *testing.T) {
	assert.Equal(t, "00:00.0", FormatStopwatch(0))
	assert.Equal(t, "00:00.0", FormatStopwatch(-time.Second))
	assert.Equal(t, "00:33.4", FormatStopwatch(33*time.Second+480*time.Millisecond))
	assert.Equal(t, "01:05.0", FormatStopwatch(65*time.Second))
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"same day", now.Add(-5 * time.Hour), "Today"},
		{"yesterday", now.Add(-20 * time.Hour), "Yesterday"},
		{"this year", time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC), "Tue Jun 10"},
		{"last year", time.Date(2024, 12, 30, 7, 0, 0, 0, time.UTC), "Dec 30, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayLabel(tt.in, now))
		})
	}
}

func TestWhenLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today 06:40", WhenLabel(time.Date(2025, 6, 15, 6, 40, 0, 0, time.UTC), now))
}

func TestAttemptList(t *testing.T) {
	assert.Equal(t, "--", AttemptList(nil))
	assert.Equal(t, "33", AttemptList([]int{33}))
	assert.Equal(t, "33 · 36 · 36", AttemptList([]int{33, 36, 36}))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "4f1c2a9e", stripANSI(TruncID("4f1c2a9e-1111-2222")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderGauge(t *testing.T) {
	assert.Equal(t, "[██████████] 60s", stripANSI(RenderGauge(60, 10)))
	assert.Equal(t, "[█████░░░░░] 30s", stripANSI(RenderGauge(30, 10)))
	assert.Equal(t, "[██████████] 90s", stripANSI(RenderGauge(90, 10)), "clamped to width")
	assert.Equal(t, "[░░] 0s", stripANSI(RenderGauge(0, 1)))
}

func TestRenderBox_IncludesTitle(t *testing.T) {
	out := stripANSI(RenderBox("Last 7 days", "body"))
	assert.Contains(t, out, "LAST 7 DAYS")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}
