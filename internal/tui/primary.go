package tui

import (
	"github.com/llehouerou/handoff/internal/decoder"
)

// Attacher binds a render target to the active session.
type Attacher interface {
	Attach(target decoder.RenderTarget, layout decoder.LayoutFunc) bool
}

// Primary keeps the main pane bound to the output whenever nothing else
// holds it. It listens to the surface bridge.
type Primary struct {
	surfaces Attacher
	pane     *Pane
	sender   *Sender
}

// NewPrimary creates the listener for pane.
func NewPrimary(surfaces Attacher, pane *Pane, sender *Sender) *Primary {
	return &Primary{surfaces: surfaces, pane: pane, sender: sender}
}

// SessionAvailabilityChanged implements surface.Listener.
func (p *Primary) SessionAvailabilityChanged(active bool) {
	if active {
		p.attach()
	}
	p.sender.Post(SessionMsg{Active: active})
}

// SurfaceDetached implements surface.Listener. The bridge allows attaching
// from inside this signal.
func (p *Primary) SurfaceDetached() {
	p.attach()
}

func (p *Primary) attach() {
	ok := p.surfaces.Attach(p.pane, p.layout)
	p.sender.Post(SurfaceMsg{Attached: ok})
}

func (p *Primary) layout(width, height int) {
	p.sender.Post(LayoutMsg{Width: width, Height: height})
}
