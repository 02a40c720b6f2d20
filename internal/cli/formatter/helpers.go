package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DayLabel names the calendar day of t relative to now.
func DayLabel(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	if y1 == y2 {
		return t.Format("Mon Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

// WhenLabel is DayLabel plus the local clock time, e.g. "Today 06:40".
func WhenLabel(t, now time.Time) string {
	return DayLabel(t, now) + " " + t.In(now.Location()).Format("15:04")
}

// FormatSeconds renders whole seconds as "42s" or "1m 05s".
func FormatSeconds(s int) string {
	if s < 60 {
		return fmt.Sprintf("%ds", max(s, 0))
	}
	return fmt.Sprintf("%dm %02ds", s/60, s%60)
}

// FormatStopwatch renders a running hold as "mm:ss.t".
func FormatStopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}

// AttemptList joins recorded holds, e.g. "33 · 36 · 36".
func AttemptList(values []int) string {
	if len(values) == 0 {
		return "--"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " · ")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
