package playback

import (
	"reflect"
	"sync"
)

// Observer receives notifications. Notify is always called from the
// controller's single delivery goroutine, never concurrently with itself.
type Observer interface {
	Notify(n Notification)
}

// Registry is the set of observers. Observers are compared by identity,
// so they must be of a comparable type (typically a pointer).
type Registry struct {
	mu        sync.RWMutex
	observers map[Observer]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{observers: make(map[Observer]struct{})}
}

// Add subscribes o. Returns false if o is nil, not comparable, or
// already subscribed.
func (r *Registry) Add(o Observer) bool {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.observers[o]; ok {
		return false
	}
	r.observers[o] = struct{}{}
	return true
}

// Remove unsubscribes o. Safe to call from inside Notify.
func (r *Registry) Remove(o Observer) bool {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.observers[o]; !ok {
		return false
	}
	delete(r.observers, o)
	return true
}

// Len returns the number of observers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers)
}

// Clear removes every observer.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.observers)
}

// Notify delivers n to every observer subscribed when the call started.
// Membership changes made during delivery apply to the next notification.
func (r *Registry) Notify(n Notification) {
	for _, o := range r.snapshot() {
		o.Notify(n)
	}
}

func (r *Registry) snapshot() []Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Observer, 0, len(r.observers))
	for o := range r.observers {
		result = append(result, o)
	}
	return result
}
