package playback

import (
	"sync"
	"testing"
)

type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notes...)
}

// funcObserver is not comparable.
type funcObserver func(Notification)

func (f funcObserver) Notify(n Notification) { f(n) }

func TestRegistry_AddRejectsDuplicatesAndNil(t *testing.T) {
	r := NewRegistry()
	o := &recorder{}

	if !r.Add(o) {
		t.Fatal("first Add() = false")
	}
	if r.Add(o) {
		t.Error("second Add() of same observer = true")
	}
	if r.Add(nil) {
		t.Error("Add(nil) = true")
	}
	if r.Add(funcObserver(func(Notification) {})) {
		t.Error("Add() of non-comparable observer = true")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_RemoveUnknown(t *testing.T) {
	r := NewRegistry()
	if r.Remove(&recorder{}) {
		t.Error("Remove() of unknown observer = true")
	}
}

func TestRegistry_NotifyReachesEveryObserver(t *testing.T) {
	r := NewRegistry()
	a, b := &recorder{}, &recorder{}
	r.Add(a)
	r.Add(b)

	r.Notify(EndEvent{})

	if len(a.all()) != 1 || len(b.all()) != 1 {
		t.Errorf("deliveries = %d/%d, want 1/1", len(a.all()), len(b.all()))
	}
}

type selfRemover struct {
	r     *Registry
	count int
}

func (s *selfRemover) Notify(Notification) {
	s.count++
	s.r.Remove(s)
}

func TestRegistry_RemoveDuringNotify(t *testing.T) {
	r := NewRegistry()
	remover := &selfRemover{r: r}
	other := &recorder{}
	r.Add(remover)
	r.Add(other)

	r.Notify(StopEvent{})
	r.Notify(EndEvent{})

	if remover.count != 1 {
		t.Errorf("self-removing observer notified %d times, want 1", remover.count)
	}
	if got := len(other.all()); got != 2 {
		t.Errorf("other observer notified %d times, want 2", got)
	}
}

type lateAdder struct {
	r     *Registry
	added *recorder
}

func (l *lateAdder) Notify(Notification) {
	l.r.Add(l.added)
}

func TestRegistry_AddDuringNotifyAppliesToNextDelivery(t *testing.T) {
	r := NewRegistry()
	late := &recorder{}
	r.Add(&lateAdder{r: r, added: late})

	r.Notify(StopEvent{})
	if got := len(late.all()); got != 0 {
		t.Fatalf("observer added mid-delivery got %d notifications, want 0", got)
	}

	r.Notify(EndEvent{})
	if got := len(late.all()); got != 1 {
		t.Errorf("observer got %d notifications on next delivery, want 1", got)
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	r.Add(&recorder{})
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() after Clear() = %d", r.Len())
	}
}
