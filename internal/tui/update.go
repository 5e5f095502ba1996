package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/keymap"
	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/playback"
	"github.com/llehouerou/handoff/internal/ui/layout"
	"github.com/llehouerou/handoff/internal/ui/playerbar"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case NotificationMsg:
		m = m.handleNotification(msg.Notification)
		return m, watchSubscription(m.sub)

	case ProgressMsg:
		m = m.handleNotification(msg.Progress)
		return m, watchProgress(m.sub)

	case SubscriptionClosedMsg:
		return m, nil

	case EnterOverlayMsg:
		return m.enterOverlay(msg.Params), nil

	case OverlayParamsMsg:
		if m.inOverlay {
			m.actions = msg.Params.Actions
		}
		return m, nil

	case SessionMsg:
		if !msg.Active {
			m = m.leaveOverlay()
			m.audioIdx, m.textIdx, m.aspectIdx = 0, -1, 0
		}
		return m, nil

	case SurfaceMsg:
		if !msg.Attached && m.bar.Loaded {
			m.status = "no video output"
		}
		return m, nil

	case LayoutMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.Width, m.Height = msg.Width, msg.Height
	m.help.Width = msg.Width

	mainW, mainH := m.mainSize()
	m.host.resize(m.Width, overlay.Rect{X: 0, Y: layout.HeaderHeight, Width: mainW, Height: mainH})
	if m.inOverlay {
		m.bridge.SetWindowSize(m.miniSize())
	} else {
		m.bridge.SetWindowSize(mainW, mainH)
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case keymap.ActionPlayPause:
		m.ctrl.TogglePlayPause()
	case keymap.ActionStop:
		m.ctrl.Stop()
	case keymap.ActionSeekForward:
		m.ctrl.SeekByOffsetMs(m.skip.Milliseconds())
	case keymap.ActionSeekBack:
		m.ctrl.SeekByOffsetMs(-m.skip.Milliseconds())

	case keymap.ActionVolumeUp:
		v, _ := m.ctrl.Volume()
		m.ctrl.SetVolume(v + volumeStep)
	case keymap.ActionVolumeDown:
		v, _ := m.ctrl.Volume()
		m.ctrl.SetVolume(v - volumeStep)
	case keymap.ActionToggleMute:
		m.ctrl.ToggleMute()

	case keymap.ActionCycleAudio:
		m = m.cycleAudio()
	case keymap.ActionCycleText:
		m = m.cycleText()
	case keymap.ActionCycleAspect:
		m.aspectIdx = (m.aspectIdx + 1) % len(aspectCycle)
		m.ctrl.SetAspectRatio(aspectCycle[m.aspectIdx])

	case keymap.ActionEnterOverlay:
		m.status = ""
		handler := m.host.EntryHandler()
		if handler == nil || !handler.RequestEnter() {
			m.status = "overlay unavailable"
		}
	case keymap.ActionLeaveOverlay:
		m = m.leaveOverlay()
	case keymap.ActionBackground:
		m.overlay.UserLeaveHint()

	case keymap.ActionQuickAction1, keymap.ActionQuickAction2, keymap.ActionQuickAction3:
		if m.inOverlay {
			for i, a := range keymap.QuickActions {
				if a == action && i < len(m.actions) {
					m.overlay.Trigger(m.actions[i].Trigger)
				}
			}
		}
	}
	return m, nil
}

func (m Model) handleNotification(n playback.Notification) Model {
	m.bar = m.bar.Apply(n)
	switch n := n.(type) {
	case playback.ErrorEvent:
		m.status = n.Message
	case playback.MediaLoaded:
		m.status = ""
	}
	return m
}

func (m Model) enterOverlay(p overlay.Params) Model {
	if m.inOverlay {
		m.actions = p.Actions
		return m
	}
	m.mini.Revive()
	if !m.overlay.AttachOverlay(m.mini) {
		if !m.bridge.HasActiveSession() {
			m.mini.Destroy()
			m.status = "overlay has no session"
			return m
		}
		// The pane still carries the bar and the quick actions.
		m.status = "no video output"
	}
	m.inOverlay = true
	m.actions = p.Actions
	w, h := m.miniSize()
	m.overlay.ModeChanged(true, w, h)
	m.bridge.SetWindowSize(w, h)
	return m
}

// leaveOverlay hides the overlay pane. Leaving releases the overlay surface;
// the primary listener takes the output back on the bridge signal.
func (m Model) leaveOverlay() Model {
	if !m.inOverlay {
		return m
	}
	m.inOverlay = false
	m.actions = nil
	w, h := m.mainSize()
	m.overlay.ModeChanged(false, w, h)
	m.mini.Destroy()
	m.bridge.SetWindowSize(w, h)
	return m
}

func (m Model) cycleAudio() Model {
	info, ok := m.ctrl.MediaInfo()
	if !ok || len(info.AudioTracks) == 0 {
		return m
	}
	m.audioIdx = (m.audioIdx + 1) % len(info.AudioTracks)
	m.ctrl.SelectAudioTrack(info.AudioTracks[m.audioIdx].ID)
	return m
}

// cycleText steps through the text tracks, then back to none.
func (m Model) cycleText() Model {
	info, ok := m.ctrl.MediaInfo()
	if !ok || len(info.TextTracks) == 0 {
		return m
	}
	m.textIdx++
	if m.textIdx >= len(info.TextTracks) {
		m.textIdx = -1
		m.ctrl.SelectTextTrack(decoder.NoTrack)
		return m
	}
	m.ctrl.SelectTextTrack(info.TextTracks[m.textIdx].ID)
	return m
}

func (m Model) mainSize() (int, int) {
	return layout.MainSize(m.Width, m.Height, playerbar.Height)
}

func (m Model) miniSize() (int, int) {
	return layout.OverlaySize(m.Width)
}
