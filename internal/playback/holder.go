package playback

import "sync"

// Holder hands out the process's single Controller. It is created on first
// use and replaced only after an explicit Release.
type Holder struct {
	mu   sync.Mutex
	ctrl *Controller
	newFn func() *Controller
}

// NewHolder creates a holder that builds controllers with newFn.
func NewHolder(newFn func() *Controller) *Holder {
	return &Holder{newFn: newFn}
}

// Get returns the controller, creating it if needed.
func (h *Holder) Get() *Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctrl == nil {
		h.ctrl = h.newFn()
	}
	return h.ctrl
}

// Current returns the controller without creating one.
func (h *Holder) Current() (*Controller, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctrl, h.ctrl != nil
}

// Release releases the controller, if any. The next Get builds a new one.
func (h *Holder) Release() {
	h.mu.Lock()
	ctrl := h.ctrl
	h.ctrl = nil
	h.mu.Unlock()

	if ctrl != nil {
		ctrl.Release()
	}
}
