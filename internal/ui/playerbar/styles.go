package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/handoff/internal/ui/styles"
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240"))

func titleStyle() lipgloss.Style { return styles.T().S().Title }
func metaStyle() lipgloss.Style  { return styles.T().S().Muted }
func timeStyle() lipgloss.Style  { return styles.T().S().Subtle }
func emptyStyle() lipgloss.Style { return styles.T().S().Subtle }
