// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"

	// Mixer actions
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"

	// Tracks and picture
	ActionCycleAudio  Action = "cycle_audio"
	ActionCycleText   Action = "cycle_text"
	ActionCycleAspect Action = "cycle_aspect"

	// Overlay actions
	ActionEnterOverlay Action = "enter_overlay"
	ActionLeaveOverlay Action = "leave_overlay"
	ActionBackground   Action = "background" // user leaves the app
	ActionQuickAction1 Action = "quick_action_1"
	ActionQuickAction2 Action = "quick_action_2"
	ActionQuickAction3 Action = "quick_action_3"
)

// QuickActions lists the overlay quick action slots in display order.
var QuickActions = []Action{ActionQuickAction1, ActionQuickAction2, ActionQuickAction3}
