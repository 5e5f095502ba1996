package overlay

import (
	"fmt"
	"time"

	"github.com/llehouerou/handoff/internal/icons"
)

// DefaultSkipInterval is how far the forward and rewind triggers move.
const DefaultSkipInterval = 10 * time.Second

// Trigger identifies a quick action.
type Trigger string

const (
	TriggerPlay    Trigger = "play"
	TriggerPause   Trigger = "pause"
	TriggerForward Trigger = "forward"
	TriggerRewind  Trigger = "rewind"
)

// Action is one quick action shown by the host on the overlay.
type Action struct {
	Icon        string
	Label       string
	Description string
	Trigger     Trigger
}

// BuildActions returns rewind, play or pause depending on playing, and
// forward, in that order.
func BuildActions(playing bool, skip time.Duration) []Action {
	seconds := int(skip / time.Second)
	toggle := Action{Icon: icons.Play(), Label: "Play", Description: "Resume playback", Trigger: TriggerPlay}
	if playing {
		toggle = Action{Icon: icons.Pause(), Label: "Pause", Description: "Pause playback", Trigger: TriggerPause}
	}
	return []Action{
		{Icon: icons.Rewind(), Label: "Rewind", Description: fmt.Sprintf("Rewind %d seconds", seconds), Trigger: TriggerRewind},
		toggle,
		{Icon: icons.Forward(), Label: "Forward", Description: fmt.Sprintf("Forward %d seconds", seconds), Trigger: TriggerForward},
	}
}

// Transport is the subset of the playback controller quick actions drive.
type Transport interface {
	Play()
	Pause()
	SeekByOffsetMs(delta int64)
}

// Dispatch runs the command bound to trigger. Unknown triggers are
// ignored and reported as false.
func Dispatch(t Transport, trigger Trigger, skip time.Duration) bool {
	switch trigger {
	case TriggerPlay:
		t.Play()
	case TriggerPause:
		t.Pause()
	case TriggerForward:
		t.SeekByOffsetMs(skip.Milliseconds())
	case TriggerRewind:
		t.SeekByOffsetMs(-skip.Milliseconds())
	default:
		return false
	}
	return true
}
