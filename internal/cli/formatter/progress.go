package formatter

import (
	"fmt"
	"strings"

	"github.com/dechbar/kpause/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"

	// GaugeMaxSeconds is the score that fills a gauge.
	GaugeMaxSeconds = 60
)

// RenderGauge renders a score as a bar like [████░░░░] 33s, colored by its
// rating.
func RenderGauge(score, width int) string {
	if width < 2 {
		width = 2
	}
	filled := min(max(score, 0)*width/GaugeMaxSeconds, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	style := RatingStyle(domain.RateScore(score))
	return fmt.Sprintf("[%s] %ds", style.Render(bar), score)
}
