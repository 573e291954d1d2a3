package domain

// SessionState tracks the lifecycle of a cooking session.
type SessionState int

const (
	SessionInactive SessionState = iota
	SessionActive
	SessionCompleted
)

// String returns a human-readable session state.
func (s SessionState) String() string {
	switch s {
	case SessionInactive:
		return "inactive"
	case SessionActive:
		return "active"
	case SessionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
