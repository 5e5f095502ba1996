package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding ties an action to its keys and help text.
type Binding struct {
	Action  Action
	Key     key.Binding
	Context string // "global", "playback", "overlay"
}

func bind(action Action, context, help string, keys ...string) Binding {
	return Binding{
		Action:  action,
		Key:     key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help)),
		Context: context,
	}
}

// All contains all key bindings.
var All = []Binding{
	bind(ActionQuit, "global", "quit", "q", "ctrl+c"),
	bind(ActionHelp, "global", "help", "?"),

	bind(ActionPlayPause, "playback", "play/pause", "space", " "),
	bind(ActionStop, "playback", "stop", "s"),
	bind(ActionSeekForward, "playback", "forward", "right", "l"),
	bind(ActionSeekBack, "playback", "rewind", "left", "h"),
	bind(ActionVolumeUp, "playback", "volume +", "+", "="),
	bind(ActionVolumeDown, "playback", "volume -", "-"),
	bind(ActionToggleMute, "playback", "mute", "m"),
	bind(ActionCycleAudio, "playback", "audio track", "a"),
	bind(ActionCycleText, "playback", "subtitles", "t"),
	bind(ActionCycleAspect, "playback", "aspect", "r"),

	bind(ActionEnterOverlay, "overlay", "overlay", "p"),
	bind(ActionLeaveOverlay, "overlay", "leave overlay", "esc", "P"),
	bind(ActionBackground, "overlay", "background", "b"),
	bind(ActionQuickAction1, "overlay", "action 1", "1"),
	bind(ActionQuickAction2, "overlay", "action 2", "2"),
	bind(ActionQuickAction3, "overlay", "action 3", "3"),
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}
