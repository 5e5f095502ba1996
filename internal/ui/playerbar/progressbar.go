package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/handoff/internal/ui/styles"
)

const (
	filledCell = "━"
	emptyCell  = "─"
)

// fillCells returns how many of width cells the position covers.
func fillCells(position, duration time.Duration, width int) int {
	if duration <= 0 || width <= 0 || position <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(int(float64(width)*ratio), width)
}

// progress renders the bar with a gradient over the played part.
func progress(position, duration time.Duration, width int) string {
	filled := fillCells(position, duration, width)
	theme := styles.T()
	return styles.Gradient(strings.Repeat(filledCell, filled), theme.Primary, theme.Secondary) +
		emptyStyle().Render(strings.Repeat(emptyCell, width-filled))
}
