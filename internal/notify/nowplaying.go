package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/errmsg"
	"github.com/llehouerou/handoff/internal/mpris"
	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/playback"
)

// Triggerer runs quick actions by trigger.
type Triggerer interface {
	Trigger(t overlay.Trigger) bool
}

// NowPlaying shows a notification for the loaded media and keeps its
// action buttons in step with the playing state. It observes the
// controller; invoked buttons are routed to the quick actions.
type NowPlaying struct {
	notifier Notifier
	actions  Triggerer
	skip     time.Duration
	logger   zerolog.Logger

	mu        sync.Mutex
	id        uint32
	info      playback.Snapshot
	playing   bool
	inOverlay bool
}

// NewNowPlaying wires n to actions. skip labels the seek buttons.
func NewNowPlaying(n Notifier, actions Triggerer, skip time.Duration, logger zerolog.Logger) *NowPlaying {
	p := &NowPlaying{
		notifier: n,
		actions:  actions,
		skip:     skip,
		logger:   logger.With().Str("component", "notify").Logger(),
	}
	n.OnAction(p.handleAction)
	return p
}

// Notify implements playback.Observer.
func (p *NowPlaying) Notify(n playback.Notification) {
	switch n := n.(type) {
	case playback.MediaLoaded:
		p.mu.Lock()
		p.info = n.Info
		p.playing = n.Info.IsPlaying
		p.mu.Unlock()
		p.show()
	case playback.MetadataChange:
		p.mu.Lock()
		p.info.Title = n.Title
		p.mu.Unlock()
		p.show()
	case playback.PlayingChange:
		p.mu.Lock()
		changed := p.id != 0 && p.playing != n.Playing
		p.playing = n.Playing
		p.mu.Unlock()
		if changed {
			p.show()
		}
	case playback.MediaUnloaded:
		p.close()
	}
}

// ModeChanged hides the notification while the overlay pane shows the
// same buttons, and brings it back when the overlay closes.
func (p *NowPlaying) ModeChanged(c overlay.ModeChange) {
	p.mu.Lock()
	if p.inOverlay == c.InOverlay {
		p.mu.Unlock()
		return
	}
	p.inOverlay = c.InOverlay
	loaded := p.info.Loaded
	p.mu.Unlock()

	if c.InOverlay {
		p.dismiss()
		return
	}
	if loaded {
		p.show()
	}
}

// Close dismisses the notification and detaches from the notifier.
func (p *NowPlaying) Close() {
	p.notifier.OnAction(nil)
	p.close()
}

func (p *NowPlaying) show() {
	p.mu.Lock()
	if p.inOverlay {
		p.mu.Unlock()
		return
	}
	notif := Notification{
		Title:      p.info.Title,
		Body:       formatDuration(p.info.DurationMs),
		Icon:       mpris.FindArtwork(p.info.Locator),
		Timeout:    -1,
		ReplacesID: p.id,
		Urgency:    UrgencyLow,
		Actions:    p.buttons(),
	}
	p.mu.Unlock()

	id, err := p.notifier.Notify(notif)
	if err != nil {
		p.logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpNotification, err))
		return
	}

	p.mu.Lock()
	p.id = id
	p.mu.Unlock()
}

func (p *NowPlaying) close() {
	p.mu.Lock()
	p.info = playback.Snapshot{}
	p.mu.Unlock()
	p.dismiss()
}

// dismiss closes the shown notification but keeps the media info.
func (p *NowPlaying) dismiss() {
	p.mu.Lock()
	id := p.id
	p.id = 0
	p.mu.Unlock()

	if id == 0 {
		return
	}
	if err := p.notifier.Close(id); err != nil {
		p.logger.Debug().Err(err).Msg(errmsg.Format(errmsg.OpNotification, err))
	}
}

func (p *NowPlaying) buttons() []Action {
	built := overlay.BuildActions(p.playing, p.skip)
	result := make([]Action, len(built))
	for i, a := range built {
		result[i] = Action{Key: string(a.Trigger), Label: a.Label}
	}
	return result
}

func (p *NowPlaying) handleAction(id uint32, key string) {
	p.mu.Lock()
	current := p.id
	p.mu.Unlock()

	if id == 0 || id != current {
		return
	}
	p.actions.Trigger(overlay.Trigger(key))
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

var _ playback.Observer = (*NowPlaying)(nil)
