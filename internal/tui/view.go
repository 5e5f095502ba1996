package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/handoff/internal/surface"
	"github.com/llehouerou/handoff/internal/ui/compose"
	"github.com/llehouerou/handoff/internal/ui/headerbar"
	"github.com/llehouerou/handoff/internal/ui/playerbar"
	"github.com/llehouerou/handoff/internal/ui/render"
	"github.com/llehouerou/handoff/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	mainW, mainH := m.mainSize()
	var top string
	if m.inOverlay {
		top = m.overlayView(mainW, mainH)
	} else {
		top = m.mainView(mainW, mainH)
	}

	bar := playerbar.Render(m.bar, m.Width)
	if bar == "" {
		bar = lipgloss.NewStyle().Height(playerbar.Height).Render("")
	}

	header := headerbar.Render(m.targetName(), m.Width)
	return lipgloss.JoinVertical(lipgloss.Left, header, top, bar, m.footer())
}

func (m Model) targetName() string {
	if p, ok := m.bridge.Target().(*Pane); ok {
		return p.String()
	}
	return ""
}

func (m Model) mainView(w, h int) string {
	attached := m.bridge.Target() == m.main
	s := styles.T().S()

	var lines []string
	switch {
	case !m.bar.Loaded:
		lines = append(lines, s.Muted.Render("nothing loaded"))
	default:
		lines = append(lines, s.Title.Render(render.Truncate(m.bar.Title, max(w-4, 1))))
	}
	lines = append(lines, s.Subtle.Render(phaseLine(m.bridge.Phase(), attached)))

	return styles.SurfaceStyle(attached).
		Width(max(w-2, 0)).
		Height(max(h-2, 0)).
		Render(strings.Join(lines, "\n"))
}

// overlayView draws the overlay pane in the bottom right corner, over a
// dimmed main view.
func (m Model) overlayView(w, h int) string {
	miniW, miniH := m.miniSize()
	attached := m.bridge.Target() == m.mini
	content := playerbar.RenderMini(m.bar, m.actions, max(miniW-2, 1))
	box := styles.OverlayStyle(attached).
		Width(max(miniW-2, 0)).
		Height(max(miniH-2, 0)).
		Render(content)

	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat("·", w)
	}
	base := styles.T().S().Subtle.Render(strings.Join(rows, "\n"))
	return compose.Over(base, lipgloss.Place(w, h, lipgloss.Right, lipgloss.Bottom, box), w)
}

func (m Model) footer() string {
	if m.status != "" {
		return styles.T().S().Error.Render(render.Truncate(m.status, max(m.Width, 1)))
	}
	return m.help.View(m.keys)
}

func phaseLine(p surface.Phase, mainAttached bool) string {
	switch {
	case p == surface.PhaseAttached && mainAttached:
		return "output: main view"
	case p == surface.PhaseAttached:
		return "output: overlay"
	case p == surface.PhaseIdle:
		return "output: detached"
	default:
		return "no session"
	}
}
