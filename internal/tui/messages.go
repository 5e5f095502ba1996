package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/playback"
)

// NotificationMsg carries one controller notification into the program.
type NotificationMsg struct {
	Notification playback.Notification
}

// ProgressMsg carries the latest playback clock.
type ProgressMsg struct {
	Progress playback.ProgressChange
}

// SubscriptionClosedMsg is sent when the controller closes the subscription.
type SubscriptionClosedMsg struct{}

// EnterOverlayMsg asks the model to show the overlay with these parameters.
type EnterOverlayMsg struct {
	Params overlay.Params
}

// OverlayParamsMsg refreshes the parameters of a shown overlay.
type OverlayParamsMsg struct {
	Params overlay.Params
}

// SessionMsg reports session availability from the surface bridge.
type SessionMsg struct {
	Active bool
}

// SurfaceMsg reports that the primary surface tried to take the output
// back, and whether it got it.
type SurfaceMsg struct {
	Attached bool
}

// LayoutMsg reports the video size seen by the primary surface.
type LayoutMsg struct {
	Width, Height int
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

func watchSubscription(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return waitForChannel(sub.Events, func(n playback.Notification, ok bool) tea.Msg {
		if !ok {
			return SubscriptionClosedMsg{}
		}
		return NotificationMsg{Notification: n}
	})
}

// watchProgress waits for the next clock update. It returns nothing once
// the subscription is closed.
func watchProgress(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case p := <-sub.Progress:
			return ProgressMsg{Progress: p}
		case <-sub.Done:
			return nil
		}
	}
}

// Sender forwards messages into a running program from other goroutines.
// Messages posted before SetProgram are dropped.
type Sender struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// SetProgram routes posted messages to p.
func (s *Sender) SetProgram(p *tea.Program) {
	s.SetFunc(p.Send)
}

// SetFunc routes posted messages to fn.
func (s *Sender) SetFunc(fn func(tea.Msg)) {
	s.mu.Lock()
	s.send = fn
	s.mu.Unlock()
}

// Post delivers msg without blocking the caller. Callers may be inside
// Update, where a synchronous Program.Send would never return.
func (s *Sender) Post(msg tea.Msg) {
	s.mu.RLock()
	send := s.send
	s.mu.RUnlock()
	if send != nil {
		go send(msg)
	}
}
