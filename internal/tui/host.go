package tui

import (
	"sync"

	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/ui/layout"
)

// Host is the terminal's overlay host: the overlay is a small framed pane
// drawn in the corner while the main view is hidden. It is safe for
// concurrent use; requests reach the model as messages.
type Host struct {
	sender *Sender

	mu        sync.Mutex
	width     int
	region    overlay.Rect
	hasRegion bool
	handler   overlay.EntryHandler
}

// NewHost creates a host posting through sender.
func NewHost(sender *Sender) *Host {
	return &Host{sender: sender}
}

// Available implements overlay.Host.
func (h *Host) Available() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return layout.OverlayFits(h.width)
}

// Enter implements overlay.Host.
func (h *Host) Enter(p overlay.Params) error {
	if !h.Available() {
		return overlay.ErrUnavailable
	}
	h.sender.Post(EnterOverlayMsg{Params: p})
	return nil
}

// Update implements overlay.Host.
func (h *Host) Update(p overlay.Params) error {
	h.sender.Post(OverlayParamsMsg{Params: p})
	return nil
}

// SourceRegion implements overlay.Host: the main pane, where the overlay
// animates from.
func (h *Host) SourceRegion() (overlay.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.region, h.hasRegion
}

// SetEntryHandler implements overlay.EntryRegistry.
func (h *Host) SetEntryHandler(handler overlay.EntryHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

// EntryHandler returns the registered handler, nil when overlay entry is
// not possible.
func (h *Host) EntryHandler() overlay.EntryHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handler
}

// resize records the terminal width and the main pane region.
func (h *Host) resize(width int, region overlay.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width = width
	h.region = region
	h.hasRegion = region.Width > 0 && region.Height > 0
}

var (
	_ overlay.Host          = (*Host)(nil)
	_ overlay.EntryRegistry = (*Host)(nil)
)
