package playback

const eventBufferSize = 64

// Subscription is a channel-backed Observer for consumers that run their
// own loop (terminal UI, session bus adapters).
//
// Progress is kept apart from everything else: Progress holds only the
// latest clock and may skip intermediate values, while Events carries
// every other notification in order and never drops one.
type Subscription struct {
	Events   <-chan Notification // closed after Done
	Progress <-chan ProgressChange
	Done     <-chan struct{}

	// Internal write channels
	eventCh    chan Notification
	progressCh chan ProgressChange
	doneCh     chan struct{}

	pending *mailbox
}

// newSubscription creates a subscription and starts its forwarding
// goroutine. The goroutine exits on close.
func newSubscription() *Subscription {
	s := &Subscription{
		eventCh:    make(chan Notification, eventBufferSize),
		progressCh: make(chan ProgressChange, 1),
		doneCh:     make(chan struct{}),
		pending:    newMailbox(),
	}
	s.Events = s.eventCh
	s.Progress = s.progressCh
	s.Done = s.doneCh
	go s.forward()
	return s
}

// Notify queues n without blocking. Only the delivery goroutine calls it.
func (s *Subscription) Notify(n Notification) {
	if p, ok := n.(ProgressChange); ok {
		s.setProgress(p)
		return
	}
	s.pending.put(item{note: n})
}

// setProgress replaces any unread clock with p.
func (s *Subscription) setProgress(p ProgressChange) {
	for {
		select {
		case s.progressCh <- p:
			return
		default:
		}
		select {
		case <-s.progressCh:
		default:
		}
	}
}

// forward moves queued notifications to Events, blocking on the reader
// instead of the delivery goroutine.
func (s *Subscription) forward() {
	defer close(s.eventCh)
	for {
		select {
		case <-s.pending.ready:
		case <-s.doneCh:
			return
		}
		for _, it := range s.pending.take() {
			select {
			case s.eventCh <- it.note:
			case <-s.doneCh:
				return
			}
		}
	}
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	s.pending.close()
	close(s.doneCh)
}
