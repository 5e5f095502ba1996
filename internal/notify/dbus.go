//go:build linux

package notify

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// dbusNotifier sends notifications via D-Bus.
type dbusNotifier struct {
	conn *dbus.Conn
	obj  dbus.BusObject

	mu       sync.Mutex
	onAction ActionFunc
}

// New creates a Notifier that sends desktop notifications via D-Bus.
// Returns a no-op notifier if D-Bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}

	n := &dbusNotifier{conn: conn, obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
		dbus.WithMatchMember("ActionInvoked"),
	)
	if err == nil {
		signals := make(chan *dbus.Signal, 16)
		conn.Signal(signals)
		go n.listen(signals)
	}

	return n, nil
}

// Notify sends a notification via D-Bus.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant("handoff"),
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		"Handoff",
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		flattenActions(notif.Actions),
		hints,
		notif.Timeout,
	)

	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	call := n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id)
	return call.Err
}

func (n *dbusNotifier) OnAction(fn ActionFunc) {
	n.mu.Lock()
	n.onAction = fn
	n.mu.Unlock()
}

func (n *dbusNotifier) listen(signals <-chan *dbus.Signal) {
	for sig := range signals {
		if sig.Name != dbusNotifyInterface+".ActionInvoked" || len(sig.Body) != 2 {
			continue
		}
		id, ok := sig.Body[0].(uint32)
		key, ok2 := sig.Body[1].(string)
		if !ok || !ok2 {
			continue
		}
		n.mu.Lock()
		fn := n.onAction
		n.mu.Unlock()
		if fn != nil {
			fn(id, key)
		}
	}
}
