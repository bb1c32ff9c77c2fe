package core

// DefaultHoldTicks is how long a key counts as held after its last press
// event. Terminals report key repeats but never key releases.
const DefaultHoldTicks = 8

// InputRouter turns per-tick action frames into an Intent with held state
// and one-tick jump edges.
type InputRouter struct {
	holdTicks int
	tick      int
	lastSeen  map[Action]int
	jumpHeld  bool
}

// NewInputRouter creates a router. holdTicks <= 0 uses DefaultHoldTicks.
func NewInputRouter(holdTicks int) *InputRouter {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &InputRouter{
		holdTicks: holdTicks,
		lastSeen:  make(map[Action]int),
	}
}

// Route consumes the actions seen during one tick and returns the intent
// for that tick.
func (r *InputRouter) Route(frame InputFrame) Intent {
	r.tick++
	for _, a := range []Action{ActionLeft, ActionRight, ActionJump, ActionDuck, ActionHit} {
		if frame.Has(a) {
			r.lastSeen[a] = r.tick
		}
	}
	if frame.Has(ActionJumpRelease) {
		delete(r.lastSeen, ActionJump)
	}

	held := r.held(ActionJump)
	in := Intent{
		MoveLeft:         r.held(ActionLeft),
		MoveRight:        r.held(ActionRight),
		CrouchHeld:       r.held(ActionDuck),
		HitHeld:          r.held(ActionHit),
		JumpHeld:         held,
		JumpPressedEdge:  held && !r.jumpHeld,
		JumpReleasedEdge: !held && r.jumpHeld,
	}
	r.jumpHeld = held
	return in
}

// Reset forgets all held keys, e.g. when input is disabled.
func (r *InputRouter) Reset() {
	for k := range r.lastSeen {
		delete(r.lastSeen, k)
	}
	r.jumpHeld = false
}

func (r *InputRouter) held(a Action) bool {
	seen, ok := r.lastSeen[a]
	return ok && r.tick-seen < r.holdTicks
}
