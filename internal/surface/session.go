package surface

import "github.com/llehouerou/handoff/internal/decoder"

// Session is the decoder-facing half of a live playback session as seen by
// the bridge. The bridge holds it without owning it.
type Session interface {
	// ID identifies the session in logs.
	ID() string
	// AttachRenderTarget binds target to the decoder output. It must only
	// be called when no target is bound. Returns false if the session is
	// no longer live or the output rejected the target.
	AttachRenderTarget(target decoder.RenderTarget, layout decoder.LayoutFunc) bool
	// DetachRenderTarget unbinds the current target, if any.
	DetachRenderTarget()
	// SetWindowSize forwards the output size and, when a target is bound,
	// recomputes the auto-fit scale. The returned error is the refit failure.
	SetWindowSize(width, height int) error
}

// Listener observes bridge signals. Signals arrive in the order of the
// state changes that raised them, after the change. Listeners may call any
// bridge method from inside a callback: a signal raised there is delivered
// once the current callback round returns. A signal raised while another
// goroutine is delivering is delivered by that goroutine.
type Listener interface {
	// SessionAvailabilityChanged reports the first registration (true) and
	// the loss of the last session (false).
	SessionAvailabilityChanged(active bool)
	// SurfaceDetached reports that the bound render target was released
	// outside of a handoff, so another surface may take over.
	SurfaceDetached()
}
