package styles

import "github.com/charmbracelet/lipgloss"

// SurfaceStyle frames a render surface. The surface currently receiving
// decoded output gets the focus border.
func SurfaceStyle(attached bool) lipgloss.Style {
	border := T().Border
	if attached {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// OverlayStyle frames the overlay surface.
func OverlayStyle(attached bool) lipgloss.Style {
	border := T().FgSubtle
	if attached {
		border = T().Secondary
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(border)
}
