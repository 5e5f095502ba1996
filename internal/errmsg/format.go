// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session operations
	OpDecoderInit Op = "start decoder"
	OpMediaLoad   Op = "load media"
	OpPlayback    Op = "play media"

	// Surface operations
	OpSurfaceAttach Op = "attach render target"
	OpOutputRefit   Op = "refit video output"

	// Overlay operations
	OpOverlayEnter  Op = "enter overlay mode"
	OpOverlayUpdate Op = "update overlay parameters"

	// Session bus and notifications
	OpSessionBus   Op = "connect to session bus"
	OpNotification Op = "show notification"

	// Persisted state
	OpVolumeLoad Op = "load volume"
	OpVolumeSave Op = "save volume"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
