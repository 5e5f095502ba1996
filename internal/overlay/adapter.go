// Package overlay decides when to ask the host for overlay mode and keeps
// the overlay parameters in step with the playback.
package overlay

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/errmsg"
	"github.com/llehouerou/handoff/internal/playback"
	"github.com/llehouerou/handoff/internal/surface"
)

// Surfaces is the part of the surface bridge the adapter reads and drives.
type Surfaces interface {
	HasActiveSession() bool
	VideoSize() (int, int)
	OverlayActive() bool
	SetOverlayActive(active bool)
	Attach(target decoder.RenderTarget, layout decoder.LayoutFunc) bool
	DetachTarget(target decoder.RenderTarget)
}

// Player is the part of the playback controller the adapter needs.
type Player interface {
	Transport
	IsPlaying() bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger.With().Str("component", "overlay").Logger()
	}
}

// WithEntryRegistry makes the adapter the host entry handler while a
// session is live.
func WithEntryRegistry(r EntryRegistry) Option {
	return func(a *Adapter) { a.entries = r }
}

// WithSkipInterval sets the forward and rewind step.
func WithSkipInterval(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.skip = d
		}
	}
}

// WithDefaultAspect sets the ratio used while the video size is unknown.
func WithDefaultAspect(r Rational) Option {
	return func(a *Adapter) {
		if r.Valid() {
			a.fallback = r
		}
	}
}

// WithBroadcaster publishes mode changes on b.
func WithBroadcaster(b *Broadcaster) Option {
	return func(a *Adapter) { a.broadcast = b }
}

// Adapter connects the host overlay mode with the surface bridge and the
// playback controller. It observes the controller (rebuilding parameters
// while the overlay is shown) and the bridge (entry handler registration).
type Adapter struct {
	logger    zerolog.Logger
	host      Host
	surfaces  Surfaces
	player    Player
	entries   EntryRegistry
	broadcast *Broadcaster
	skip      time.Duration
	fallback  Rational

	mu      sync.Mutex
	overlay decoder.RenderTarget // guarded by mu
}

// NewAdapter creates an adapter.
func NewAdapter(host Host, surfaces Surfaces, player Player, opts ...Option) *Adapter {
	a := &Adapter{
		logger:   zerolog.Nop(),
		host:     host,
		surfaces: surfaces,
		player:   player,
		skip:     DefaultSkipInterval,
		fallback: DefaultAspect,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CanEnterOverlay reports whether a session is live and the host supports
// overlay mode.
func (a *Adapter) CanEnterOverlay() bool {
	return a.surfaces.HasActiveSession() && a.host.Available()
}

// Params builds the current overlay parameters.
func (a *Adapter) Params() Params {
	ratio, ok := CalculateAspectRatio(a.surfaces.VideoSize())
	if !ok {
		ratio = a.fallback
	}
	p := Params{
		AspectRatio: ClampAspectRatio(ratio),
		Actions:     BuildActions(a.player.IsPlaying(), a.skip),
	}
	if r, ok := a.host.SourceRegion(); ok {
		p.SourceRegion = &r
	}
	return p
}

// Enter asks the host for overlay mode. Returns ErrUnavailable without
// touching the host when entry is not possible.
func (a *Adapter) Enter() error {
	if !a.CanEnterOverlay() {
		a.logger.Warn().Msg("enter: overlay mode unavailable")
		return ErrUnavailable
	}
	p := a.Params()
	if err := a.host.Enter(p); err != nil {
		a.logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpOverlayEnter, err))
		return err
	}
	a.logger.Debug().Stringer("aspect", p.AspectRatio).Msg("enter: requested")
	return nil
}

// RequestEnter implements EntryHandler.
func (a *Adapter) RequestEnter() bool {
	return a.Enter() == nil
}

// UserLeaveHint is called when the user moves away from the application.
// Overlay mode is requested only while playing.
func (a *Adapter) UserLeaveHint() bool {
	if !a.player.IsPlaying() {
		return false
	}
	return a.RequestEnter()
}

// Trigger runs a quick action.
func (a *Adapter) Trigger(t Trigger) bool {
	ok := Dispatch(a.player, t, a.skip)
	if !ok {
		a.logger.Debug().Str("trigger", string(t)).Msg("unknown trigger ignored")
	}
	return ok
}

// AttachOverlay hands the output to the overlay view's target.
func (a *Adapter) AttachOverlay(target decoder.RenderTarget) bool {
	if !a.surfaces.Attach(target, nil) {
		return false
	}
	a.mu.Lock()
	a.overlay = target
	a.mu.Unlock()
	return true
}

// ModeChanged is called by the host after it entered or left overlay mode.
// Leaving detaches the overlay target; the bridge then signals the primary
// view to take the output back.
func (a *Adapter) ModeChanged(inOverlay bool, width, height int) {
	a.logger.Debug().Bool("in_overlay", inOverlay).Int("width", width).Int("height", height).Msg("mode changed")
	a.surfaces.SetOverlayActive(inOverlay)
	if a.broadcast != nil {
		a.broadcast.Publish(ModeChange{InOverlay: inOverlay, Width: width, Height: height})
	}
	if inOverlay {
		return
	}

	a.mu.Lock()
	target := a.overlay
	a.overlay = nil
	a.mu.Unlock()
	if target != nil {
		a.surfaces.DetachTarget(target)
	}
}

// Notify implements playback.Observer.
func (a *Adapter) Notify(n playback.Notification) {
	switch n.(type) {
	case playback.VideoSizeChange, playback.PlayingChange, playback.StopEvent, playback.EndEvent:
	default:
		return
	}
	if !a.surfaces.OverlayActive() {
		return
	}
	if err := a.host.Update(a.Params()); err != nil {
		a.logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpOverlayUpdate, err))
	}
}

// SessionAvailabilityChanged implements surface.Listener.
func (a *Adapter) SessionAvailabilityChanged(active bool) {
	if a.entries == nil {
		return
	}
	if active {
		a.entries.SetEntryHandler(a)
		return
	}
	a.entries.SetEntryHandler(nil)
}

// SurfaceDetached implements surface.Listener.
func (a *Adapter) SurfaceDetached() {}

var (
	_ playback.Observer = (*Adapter)(nil)
	_ surface.Listener  = (*Adapter)(nil)
	_ EntryHandler      = (*Adapter)(nil)
)
