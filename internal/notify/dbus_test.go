//go:build linux

package notify

import (
	"errors"
	"sync"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busObject records method calls. Methods the notifier never uses are left
// to the embedded nil interface.
type busObject struct {
	dbus.BusObject

	mu    sync.Mutex
	calls []recordedCall
	reply []any
	err   error
}

type recordedCall struct {
	method string
	args   []any
}

func (b *busObject) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, recordedCall{method: method, args: args})
	return &dbus.Call{Method: method, Args: args, Body: b.reply, Err: b.err}
}

func newTestDBusNotifier() (*dbusNotifier, *busObject) {
	obj := &busObject{reply: []any{uint32(42)}}
	return &dbusNotifier{obj: obj}, obj
}

func TestDBusNotifier_NotifySendsActions(t *testing.T) {
	n, obj := newTestDBusNotifier()

	id, err := n.Notify(Notification{
		Title:      "Clip",
		Body:       "01:23",
		Icon:       "/media/cover.jpg",
		Timeout:    -1,
		ReplacesID: 7,
		Urgency:    UrgencyLow,
		Actions: []Action{
			{Key: "rewind", Label: "Rewind"},
			{Key: "play", Label: "Play"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)
	require.Len(t, obj.calls, 1)
	call := obj.calls[0]
	assert.Equal(t, dbusNotifyInterface+".Notify", call.method)
	require.Len(t, call.args, 8)
	assert.Equal(t, "Handoff", call.args[0])
	assert.Equal(t, uint32(7), call.args[1])
	assert.Equal(t, "/media/cover.jpg", call.args[2])
	assert.Equal(t, "Clip", call.args[3])
	assert.Equal(t, []string{"rewind", "Rewind", "play", "Play"}, call.args[5])
	hints, ok := call.args[6].(map[string]dbus.Variant)
	require.True(t, ok)
	assert.Equal(t, byte(UrgencyLow), hints["urgency"].Value())
	assert.Equal(t, int32(-1), call.args[7])
}

func TestDBusNotifier_NotifyError(t *testing.T) {
	n, obj := newTestDBusNotifier()
	obj.err = errors.New("no server")

	id, err := n.Notify(Notification{Title: "Clip"})

	assert.Error(t, err)
	assert.Zero(t, id)
}

func TestDBusNotifier_Close(t *testing.T) {
	n, obj := newTestDBusNotifier()

	require.NoError(t, n.Close(42))

	require.Len(t, obj.calls, 1)
	assert.Equal(t, dbusNotifyInterface+".CloseNotification", obj.calls[0].method)
	assert.Equal(t, []any{uint32(42)}, obj.calls[0].args)
}

func actionInvoked(body ...any) *dbus.Signal {
	return &dbus.Signal{
		Path: dbusNotifyPath,
		Name: dbusNotifyInterface + ".ActionInvoked",
		Body: body,
	}
}

type invoked struct {
	id  uint32
	key string
}

func TestDBusNotifier_ListenRoutesActions(t *testing.T) {
	n, _ := newTestDBusNotifier()
	var got []invoked
	n.OnAction(func(id uint32, key string) { got = append(got, invoked{id, key}) })

	signals := make(chan *dbus.Signal, 8)
	signals <- actionInvoked(uint32(3), "play")
	signals <- &dbus.Signal{Name: dbusNotifyInterface + ".NotificationClosed", Body: []any{uint32(3), uint32(2)}}
	signals <- actionInvoked("3", "play")
	signals <- actionInvoked(uint32(3))
	signals <- actionInvoked(uint32(4), "forward")
	close(signals)

	n.listen(signals)

	assert.Equal(t, []invoked{{3, "play"}, {4, "forward"}}, got)
}

func TestDBusNotifier_OnActionRemoved(t *testing.T) {
	n, _ := newTestDBusNotifier()
	calls := 0
	n.OnAction(func(uint32, string) { calls++ })
	n.OnAction(nil)

	signals := make(chan *dbus.Signal, 1)
	signals <- actionInvoked(uint32(3), "play")
	close(signals)

	n.listen(signals)

	assert.Zero(t, calls)
}
