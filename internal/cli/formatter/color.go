package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dechbar/kpause/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RatingStyle returns the style for a score rating.
func RatingStyle(r domain.Rating) lipgloss.Style {
	switch r {
	case domain.RatingExcellent, domain.RatingGood:
		return StyleGreen
	case domain.RatingFair:
		return StyleYellow
	case domain.RatingLow:
		return StyleOrange
	case domain.RatingCritical:
		return StyleRed
	default:
		return StyleDim
	}
}

// RatingBadge renders a rating such as "● GOOD".
func RatingBadge(r domain.Rating) string {
	if r == "" {
		return StyleDim.Render("● --")
	}
	return RatingStyle(r).Render("● " + strings.ToUpper(string(r)))
}

// ValidityPill renders whether a measurement counts toward the morning baseline.
func ValidityPill(valid bool, tod domain.TimeOfDay) string {
	if valid {
		return StyleGreen.Render("✔ " + string(tod))
	}
	return StyleYellow.Render("○ " + string(tod))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
