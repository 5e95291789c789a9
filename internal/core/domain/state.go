package domain

// State is the lifecycle state of a spell checker handle.
type State int

// Lifecycle states.
const (
	// StateUninitialized means no dictionary is open; queries fail with ErrNotReady.
	StateUninitialized State = iota

	// StateReady means a dictionary is open and queries are served.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	default:
		return unknownDescription
	}
}
