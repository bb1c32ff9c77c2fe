package physics

// State is the movement state of the body.
type State int

const (
	StateGrounded State = iota
	StateAscending
	StateDescending
	StateCrouching
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAscending:
		return "ascending"
	case StateDescending:
		return "descending"
	case StateCrouching:
		return "crouching"
	default:
		return "unknown"
	}
}

// Airborne reports whether the body is off the ground.
func (s State) Airborne() bool {
	return s == StateAscending || s == StateDescending
}

// nextState resolves the state after ground correction.
func nextState(contact, crouching bool, vy float64) State {
	switch {
	case contact && crouching:
		return StateCrouching
	case contact:
		return StateGrounded
	case vy < 0:
		return StateAscending
	default:
		return StateDescending
	}
}

// canCrouch reports whether a crouch request is honored in state s.
func (s State) canCrouch() bool {
	return s == StateGrounded
}
