// Package level runs level attempts: it owns the body, the obstacle field and
// the lifecycle clock, and turns a stream of intents into timed results.
package level

// State is the lifecycle state of an attempt.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateWon
	StateFailed
	StateRestarting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	case StateFailed:
		return "failed"
	case StateRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

// Terminal reports whether the attempt has ended.
func (s State) Terminal() bool {
	return s == StateWon || s == StateFailed || s == StateRestarting
}
