package surface

// Phase is the handoff state of the bridge.
//
//	              register                attach
//	┌────────────┐ ───────▶ ┌────────────┐ ───────▶ ┌────────────┐
//	│ No-Session │          │    Idle    │          │  Attached  │ ◀─┐ attach
//	└────────────┘ ◀─────── └────────────┘ ◀─────── └────────────┘ ──┘
//	             unregister               detach
//
// Transitions happen only through Bridge.RegisterSession,
// Bridge.UnregisterSession, Bridge.Attach and Bridge.Detach:
//   - No-Session → Idle     (register)
//   - Idle       → Attached (attach)
//   - Attached   → Attached (attach: detach previous, bind next)
//   - Attached   → Idle     (detach, or register replacing the session)
//   - Idle       → No-Session (unregister)
//   - Attached   → No-Session (unregister, implicit detach)
//
// No-ops (handled gracefully):
//   - attach or detach in No-Session
//   - detach in Idle
//   - unregister in No-Session or with a session that is not the active one
type Phase int

const (
	PhaseNoSession Phase = iota
	PhaseIdle
	PhaseAttached
)

// String returns the phase name for debugging.
func (p Phase) String() string {
	switch p {
	case PhaseNoSession:
		return "No-Session"
	case PhaseIdle:
		return "Session-No-Surface"
	case PhaseAttached:
		return "Session-Surface-Attached"
	default:
		return "Unknown"
	}
}

// HasSession returns true if a session is registered in this phase.
func (p Phase) HasSession() bool {
	return p == PhaseIdle || p == PhaseAttached
}
