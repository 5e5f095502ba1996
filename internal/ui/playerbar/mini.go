package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/ui/render"
)

// RenderMini renders the compact overlay content: the title on the first
// line, then status, a thin bar and the elapsed time, then the quick
// actions the overlay offers.
func RenderMini(s State, actions []overlay.Action, width int) string {
	if !s.Loaded || width <= 0 {
		return ""
	}

	title := titleStyle().Render(render.Truncate(s.Title, width))

	elapsed := formatDuration(s.Position)
	status := statusSymbol(s.Status)
	barWidth := max(width-lipgloss.Width(status)-lipgloss.Width(elapsed)-2, 0)
	line := status + " " + progress(s.Position, s.Duration, barWidth) + " " + timeStyle().Render(elapsed)

	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.Icon
	}
	buttons := metaStyle().Render(strings.Join(labels, "  "))

	return lipgloss.JoinVertical(lipgloss.Left, title, line, buttons)
}
