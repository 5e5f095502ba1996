// Package surface coordinates which display surface receives the decoded
// video of the live session. At most one render target is bound at any
// instant; moving output between the primary view and the overlay view is
// always detach-then-attach.
package surface

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/decoder"
)

// Bridge is the handoff coordinator. Registration, attach and detach share
// one mutual-exclusion domain so that "session exists, then attach" cannot
// interleave with an unregister.
type Bridge struct {
	mu     sync.Mutex
	logger zerolog.Logger

	session       Session             // guarded by mu
	target        decoder.RenderTarget // guarded by mu
	attached      bool                 // guarded by mu
	windowW       int                  // guarded by mu
	windowH       int                  // guarded by mu
	overlayActive bool                 // guarded by mu

	sizeMu sync.RWMutex
	videoW int // guarded by sizeMu
	videoH int // guarded by sizeMu

	listenersMu sync.RWMutex
	listeners   []Listener

	// Signals are queued under mu, so the queue follows the order of the
	// state changes. One goroutine at a time drains it.
	signalsMu sync.Mutex
	signals   []signal // guarded by signalsMu
	emitting  bool     // guarded by signalsMu
}

type signal func(Listener)

func surfaceDetached(l Listener) { l.SurfaceDetached() }

func availability(active bool) signal {
	return func(l Listener) { l.SessionAvailabilityChanged(active) }
}

// NewBridge creates a bridge with no session.
func NewBridge(logger zerolog.Logger) *Bridge {
	return &Bridge{
		logger: logger.With().Str("component", "surface").Logger(),
	}
}

// AddListener subscribes l to bridge signals. Adding the same listener
// twice has no effect.
func (b *Bridge) AddListener(l Listener) {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()
	for _, existing := range b.listeners {
		if existing == l {
			return
		}
	}
	b.listeners = append(b.listeners, l)
}

// RemoveListener unsubscribes l. Safe to call from inside a signal.
func (b *Bridge) RemoveListener(l Listener) {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// RegisterSession makes s the live session. A different session already
// registered is torn down first: its bound target is detached and the
// SurfaceDetached signal is raised so the surface producer can rebind.
func (b *Bridge) RegisterSession(s Session) {
	if s == nil {
		return
	}

	b.mu.Lock()
	prev := b.session
	if prev == s {
		b.mu.Unlock()
		return
	}
	if prev != nil && b.attached {
		b.logger.Debug().Str("session", prev.ID()).Msg("registerSession: detaching replaced session")
		prev.DetachRenderTarget()
		b.attached = false
		b.target = nil
		b.queue(surfaceDetached)
	}
	b.session = s
	if prev == nil {
		b.queue(availability(true))
	}
	b.resetVideoSize()
	b.mu.Unlock()

	b.logger.Debug().Str("session", s.ID()).Msg("registerSession")
	b.deliver()
}

// UnregisterSession removes s if it is the live session. A bound target is
// detached first, so no attached state survives the session.
func (b *Bridge) UnregisterSession(s Session) {
	if s == nil {
		return
	}

	b.mu.Lock()
	if b.session == nil || b.session != s {
		b.mu.Unlock()
		return
	}
	if b.attached {
		s.DetachRenderTarget()
		b.queue(surfaceDetached)
	}
	b.session = nil
	b.target = nil
	b.attached = false
	b.overlayActive = false
	b.resetVideoSize()
	b.queue(availability(false))
	b.mu.Unlock()

	b.logger.Debug().Str("session", s.ID()).Msg("unregisterSession")
	b.deliver()
}

// HasActiveSession reports whether a session is registered.
func (b *Bridge) HasActiveSession() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session != nil
}

// Attach binds target to the live session's output. Any bound target is
// detached first, including target itself. Returns false without doing
// anything when no session is registered or target is no longer valid.
func (b *Bridge) Attach(target decoder.RenderTarget, layout decoder.LayoutFunc) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session
	if s == nil {
		b.logger.Warn().Msg("attach: no active session")
		return false
	}
	if target == nil || !target.Valid() {
		b.logger.Warn().Msg("attach: render target not valid")
		return false
	}

	if b.attached {
		b.logger.Debug().Msg("attach: detaching existing target")
		s.DetachRenderTarget()
		b.attached = false
		b.target = nil
	}

	if !s.AttachRenderTarget(target, b.layoutFunc(layout)) {
		b.logger.Warn().Str("session", s.ID()).Msg("attach: session rejected target")
		return false
	}
	b.target = target
	b.attached = true

	if b.windowW > 0 && b.windowH > 0 {
		if err := s.SetWindowSize(b.windowW, b.windowH); err != nil {
			b.logger.Warn().Err(err).Msg("attach: refit failed")
		}
	}

	b.logger.Debug().Str("session", s.ID()).Msg("attach: attached")
	return true
}

// Detach unbinds the current target and raises SurfaceDetached. No-op when
// nothing is bound.
func (b *Bridge) Detach() {
	b.detach(nil)
}

// DetachTarget detaches only if target is the bound one. Surface producers
// call it from their destroy callback so a late teardown cannot unbind the
// surface that has already taken over.
func (b *Bridge) DetachTarget(target decoder.RenderTarget) {
	if target == nil {
		return
	}
	b.detach(target)
}

func (b *Bridge) detach(only decoder.RenderTarget) {
	b.mu.Lock()
	s := b.session
	if s == nil || !b.attached || (only != nil && b.target != only) {
		b.mu.Unlock()
		return
	}
	s.DetachRenderTarget()
	b.attached = false
	b.target = nil
	b.queue(surfaceDetached)
	b.mu.Unlock()

	b.logger.Debug().Str("session", s.ID()).Msg("detach")
	b.deliver()
}

// IsAttached reports whether a render target is bound.
func (b *Bridge) IsAttached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// Target returns the bound render target, or nil.
func (b *Bridge) Target() decoder.RenderTarget {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// Phase returns the current handoff phase.
func (b *Bridge) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.session == nil:
		return PhaseNoSession
	case b.attached:
		return PhaseAttached
	default:
		return PhaseIdle
	}
}

// SetWindowSize records the output size and forwards it to the live
// session. Non-positive dimensions are ignored. A failing refit is logged
// and does not undo the recorded size.
func (b *Bridge) SetWindowSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.windowW, b.windowH = width, height
	if b.session == nil {
		return
	}
	if err := b.session.SetWindowSize(width, height); err != nil {
		b.logger.Warn().Err(err).Int("width", width).Int("height", height).Msg("setWindowSize: refit failed")
		return
	}
	b.logger.Debug().Int("width", width).Int("height", height).Msg("setWindowSize")
}

// WindowSize returns the last recorded output size.
func (b *Bridge) WindowSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.windowW, b.windowH
}

// UpdateVideoSize records the video dimensions. Ignored unless both are positive.
func (b *Bridge) UpdateVideoSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.sizeMu.Lock()
	b.videoW, b.videoH = width, height
	b.sizeMu.Unlock()
}

// VideoSize returns the last known video dimensions, 0x0 when unknown.
func (b *Bridge) VideoSize() (int, int) {
	b.sizeMu.RLock()
	defer b.sizeMu.RUnlock()
	return b.videoW, b.videoH
}

// SetOverlayActive records whether the overlay presentation is alive.
func (b *Bridge) SetOverlayActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overlayActive = active
}

// OverlayActive reports whether the overlay presentation is alive.
func (b *Bridge) OverlayActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overlayActive
}

// layoutFunc records reported sizes before handing them to next. It does
// not take mu, so an output may report synchronously from inside attach.
func (b *Bridge) layoutFunc(next decoder.LayoutFunc) decoder.LayoutFunc {
	return func(width, height int) {
		b.UpdateVideoSize(width, height)
		if next != nil {
			next(width, height)
		}
	}
}

func (b *Bridge) snapshotListeners() []Listener {
	b.listenersMu.RLock()
	defer b.listenersMu.RUnlock()
	return append([]Listener(nil), b.listeners...)
}

// resetVideoSize forgets the size reported by a previous session's output.
func (b *Bridge) resetVideoSize() {
	b.sizeMu.Lock()
	b.videoW, b.videoH = 0, 0
	b.sizeMu.Unlock()
}

// queue appends sig for delivery. Callers hold mu.
func (b *Bridge) queue(sig signal) {
	b.signalsMu.Lock()
	b.signals = append(b.signals, sig)
	b.signalsMu.Unlock()
}

// deliver hands queued signals to the listeners. When another call is
// already delivering (an outer signal on this goroutine, or another
// goroutine), it returns at once and that call delivers them after the
// ones before.
func (b *Bridge) deliver() {
	b.signalsMu.Lock()
	if b.emitting {
		b.signalsMu.Unlock()
		return
	}
	b.emitting = true
	for len(b.signals) > 0 {
		sig := b.signals[0]
		b.signals = b.signals[1:]
		b.signalsMu.Unlock()

		for _, l := range b.snapshotListeners() {
			sig(l)
		}

		b.signalsMu.Lock()
	}
	b.emitting = false
	b.signalsMu.Unlock()
}
