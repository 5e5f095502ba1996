package playback

import (
	"sync"

	"github.com/llehouerou/handoff/internal/decoder"
)

// item is one unit of work for the delivery goroutine: either a decoder
// event to apply to the state, or a prebuilt notification.
type item struct {
	gen   uint64 // session generation; 0 is never stale
	event decoder.Event
	note  Notification
	ack   chan struct{} // closed once every earlier item is delivered
}

// mailbox is an unbounded single-consumer queue. Put never blocks, so the
// decoder thread and control calls cannot stall on a slow observer.
type mailbox struct {
	mu     sync.Mutex
	items  []item
	ready  chan struct{}
	closed bool
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

func (m *mailbox) put(it item) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.items = append(m.items, it)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// take returns every pending item in arrival order.
func (m *mailbox) take() []item {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items
	m.items = nil
	return items
}

func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.items = nil
}
