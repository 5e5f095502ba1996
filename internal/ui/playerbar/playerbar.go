package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/handoff/internal/icons"
	"github.com/llehouerou/handoff/internal/playback"
	"github.com/llehouerou/handoff/internal/ui/render"
)

// Height is the rendered height of the full bar.
const Height = 3 // top border + content + bottom border

// State holds everything needed to render the player bar.
type State struct {
	Loaded    bool
	Status    playback.Status
	Title     string
	Position  time.Duration
	Duration  time.Duration
	Volume    int
	Muted     bool
	Buffering bool
	VideoW    int
	VideoH    int
}

// NewState builds a State from a controller snapshot.
func NewState(s playback.Snapshot) State {
	if !s.Loaded {
		return State{}
	}
	return State{
		Loaded:   true,
		Status:   s.Status,
		Title:    s.Title,
		Position: time.Duration(s.TimeMs) * time.Millisecond,
		Duration: time.Duration(s.DurationMs) * time.Millisecond,
		Volume:   s.Volume,
		Muted:    s.Muted,
		VideoW:   s.VideoWidth,
		VideoH:   s.VideoHeight,
	}
}

// Apply folds a notification into the state.
func (s State) Apply(n playback.Notification) State {
	switch n := n.(type) {
	case playback.MediaLoaded:
		return NewState(n.Info)
	case playback.MediaUnloaded:
		return State{}
	case playback.PlayingChange:
		s.Status = playback.StatusPaused
		if n.Playing {
			s.Status = playback.StatusPlaying
		}
	case playback.StopEvent, playback.EndEvent:
		s.Status = playback.StatusStopped
	case playback.ProgressChange:
		s.Position = time.Duration(n.TimeMs) * time.Millisecond
		s.Duration = time.Duration(n.DurationMs) * time.Millisecond
	case playback.BufferingChange:
		s.Buffering = n.Buffering
	case playback.MetadataChange:
		s.Title = n.Title
	case playback.VolumeChange:
		s.Volume, s.Muted = n.Volume, n.Muted
	case playback.VideoSizeChange:
		s.VideoW, s.VideoH = n.Width, n.Height
	}
	return s
}

// Render returns the full player bar for the given width, or "" when
// nothing is loaded.
func Render(s State, width int) string {
	if !s.Loaded {
		return ""
	}

	innerWidth := max(width-6, 0) // border and padding
	separator := "   "

	title := s.Title
	if title == "" {
		title = "Untitled"
	}

	var info []string
	if s.VideoW > 0 && s.VideoH > 0 {
		info = append(info, fmt.Sprintf("%dx%d", s.VideoW, s.VideoH))
	}
	if s.Buffering {
		info = append(info, "buffering")
	}
	meta := strings.Join(info, " · ")

	right := RenderVolume(s.Volume, s.Muted)
	status := statusSymbol(s.Status)
	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(timeStr) + lipgloss.Width(right) + 3*len(separator)
	minBar := 10
	available := innerWidth - fixed - minBar

	var content strings.Builder
	titleWidth := lipgloss.Width(render.Sanitize(title))
	used := 0
	switch {
	case meta != "" && titleWidth+len(separator)+lipgloss.Width(meta) <= available:
		content.WriteString(titleStyle().Render(render.Sanitize(title)))
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(meta))
		used = titleWidth + len(separator) + lipgloss.Width(meta)
	default:
		t := render.Truncate(title, max(available, 10))
		content.WriteString(titleStyle().Render(t))
		used = lipgloss.Width(t)
	}

	barWidth := max(innerWidth-used-fixed, 5)
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(progress(s.Position, s.Duration, barWidth))
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))
	content.WriteString(separator)
	content.WriteString(right)

	return barStyle.Padding(0, 2).Width(max(width-2, 0)).Render(content.String())
}

func statusSymbol(st playback.Status) string {
	switch st {
	case playback.StatusPlaying:
		return icons.Play()
	case playback.StatusPaused:
		return icons.Pause()
	default:
		return icons.Stop()
	}
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
