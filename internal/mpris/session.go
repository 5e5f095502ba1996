package mpris

import (
	"math"
	"sync"
	"time"

	"github.com/llehouerou/handoff/internal/playback"
)

// Controller is the transport surface exposed on the session bus.
type Controller interface {
	Play()
	Pause()
	TogglePlayPause()
	Stop()
	SeekByOffsetMs(delta int64)
	SeekToFraction(f float64)
	SetVolume(volume int)
}

// Session keeps the snapshot published to the session bus and maps inbound
// transport commands onto the controller. It observes the controller.
type Session struct {
	ctrl Controller
	skip time.Duration

	mu     sync.RWMutex
	snap   playback.Snapshot
	loaded bool
}

// NewSession creates a session publishing nothing until media is loaded.
func NewSession(ctrl Controller, skip time.Duration) *Session {
	return &Session{ctrl: ctrl, skip: skip}
}

// Notify implements playback.Observer by folding n into the snapshot that
// property reads are served from. Notifications with no published
// property are ignored.
func (s *Session) Notify(n playback.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch n := n.(type) {
	case playback.MediaLoaded:
		s.snap = n.Info
		s.loaded = true
	case playback.MediaUnloaded:
		s.snap = playback.Snapshot{}
		s.loaded = false
	case playback.PlayingChange:
		s.snap.IsPlaying = n.Playing
		s.snap.IsPaused = !n.Playing
		if n.Playing {
			s.snap.Status = playback.StatusPlaying
		} else {
			s.snap.Status = playback.StatusPaused
		}
	case playback.StopEvent, playback.EndEvent:
		s.snap.IsPlaying = false
		s.snap.Status = playback.StatusStopped
	case playback.ProgressChange:
		s.snap.TimeMs = n.TimeMs
		s.snap.DurationMs = n.DurationMs
		s.snap.Position = n.Position
	case playback.MetadataChange:
		s.snap.Title = n.Title
	case playback.VolumeChange:
		s.snap.Volume = n.Volume
		s.snap.Muted = n.Muted
	}
}

// Snapshot returns the published state, or false when nothing is loaded.
func (s *Session) Snapshot() (playback.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.loaded
}

// SeekTo seeks to an absolute time. Ignored while the duration is unknown.
func (s *Session) SeekTo(ms int64) {
	snap, ok := s.Snapshot()
	if !ok || snap.DurationMs <= 0 {
		return
	}
	s.ctrl.SeekToFraction(float64(ms) / float64(snap.DurationMs))
}

// FastForward moves forward by the skip interval.
func (s *Session) FastForward() {
	s.ctrl.SeekByOffsetMs(s.skip.Milliseconds())
}

// Rewind moves back by the skip interval.
func (s *Session) Rewind() {
	s.ctrl.SeekByOffsetMs(-s.skip.Milliseconds())
}

// SetVolume maps a 0.0-1.0 bus volume onto the controller range.
func (s *Session) SetVolume(level float64) {
	s.ctrl.SetVolume(int(math.Round(level * 100)))
}

// Volume returns the effective volume as 0.0-1.0.
func (s *Session) Volume() float64 {
	snap, _ := s.Snapshot()
	return float64(snap.EffectiveVolume()) / 100
}

var _ playback.Observer = (*Session)(nil)
