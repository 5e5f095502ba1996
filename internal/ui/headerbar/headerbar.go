// Package headerbar renders the top line: which pane holds the output.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/handoff/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// tab represents a header bar tab.
type tab struct {
	key    string
	name   string
	target string
}

var tabs = []tab{
	{"esc", "Main", "main"},
	{"p", "Overlay", "mini"},
}

// Render returns the header bar for the given width. target names the pane
// holding the output, "" when none does; that tab is highlighted.
func Render(target string, width int) string {
	if width < 20 {
		return ""
	}

	t := styles.T()
	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveKeyStyle := lipgloss.NewStyle().Foreground(t.FgSubtle)
	inactiveNameStyle := lipgloss.NewStyle().Foreground(t.FgMuted)
	separator := lipgloss.NewStyle().Foreground(t.Border).Render(" │ ")

	parts := make([]string, 0, len(tabs)+1)
	for _, tb := range tabs {
		keyStyle, nameStyle := inactiveKeyStyle, inactiveNameStyle
		if tb.target == target {
			keyStyle, nameStyle = activeStyle, activeStyle
		}
		parts = append(parts, keyStyle.Render(tb.key)+" "+nameStyle.Render(tb.name))
	}
	if target == "" {
		parts = append(parts, styles.T().S().Warning.Render("no output"))
	}

	content := strings.Join(parts, separator)

	// Center the content
	if w := lipgloss.Width(content); w < width {
		content = strings.Repeat(" ", (width-w)/2) + content
	}
	return content
}
