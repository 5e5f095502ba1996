package overlay

import "errors"

// ErrUnavailable is returned when overlay mode cannot be entered: no live
// session or no host capability.
var ErrUnavailable = errors.New("overlay mode unavailable")

// Rect is a region of the host window, in host units.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Params is what the host needs to present the overlay.
type Params struct {
	AspectRatio  Rational // always within [MinAspect, MaxAspect]
	SourceRegion *Rect    // nil when unknown
	Actions      []Action
}

// Host is the platform side of overlay mode.
type Host interface {
	// Available reports the host capability to enter overlay mode.
	Available() bool
	// Enter asks the host to switch to overlay mode. The switch itself is
	// reported later through Adapter.ModeChanged.
	Enter(p Params) error
	// Update replaces the parameters of an active overlay.
	Update(p Params) error
	// SourceRegion returns the on-screen region of the primary view, used
	// by the host to animate the transition.
	SourceRegion() (Rect, bool)
}

// EntryHandler is invoked by the host when it wants the application to
// enter overlay mode on its own (system gesture, shortcut).
type EntryHandler interface {
	RequestEnter() bool
}

// EntryRegistry holds the process-wide entry handler; nil clears it.
type EntryRegistry interface {
	SetEntryHandler(h EntryHandler)
}
