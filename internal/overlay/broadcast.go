package overlay

import "sync"

const modeBufferSize = 8

// ModeChange is broadcast whenever the host enters or leaves overlay mode.
type ModeChange struct {
	InOverlay bool
	Width     int
	Height    int
}

// Broadcaster fans mode changes out to any interested party. Delivery is
// fire-and-forget: a receiver that is a full buffer behind loses changes.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan ModeChange]struct{}
}

// NewBroadcaster creates a broadcaster with no receivers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan ModeChange]struct{})}
}

// Listen returns a channel of mode changes and a function that stops and
// closes it.
func (b *Broadcaster) Listen() (<-chan ModeChange, func()) {
	ch := make(chan ModeChange, modeBufferSize)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, ch)
			close(ch)
		})
	}
}

// Publish sends c to every receiver without blocking.
func (b *Broadcaster) Publish(c ModeChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Watch calls fn with every mode change on its own goroutine until the
// returned stop function is called.
func (b *Broadcaster) Watch(fn func(ModeChange)) (stop func()) {
	changes, cancel := b.Listen()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for c := range changes {
			fn(c)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
