package core

// Intent is the per-tick movement input consumed by the movement controller.
// Edge flags are true for exactly one tick per physical press or release.
type Intent struct {
	MoveLeft         bool
	MoveRight        bool
	CrouchHeld       bool
	JumpPressedEdge  bool
	JumpReleasedEdge bool
	JumpHeld         bool
	HitHeld          bool
}

// MoveDir returns -1, 0 or 1 from the horizontal flags.
func (in Intent) MoveDir() float64 {
	dir := 0.0
	if in.MoveRight {
		dir++
	}
	if in.MoveLeft {
		dir--
	}
	return dir
}

// Any reports whether the intent carries any player input at all.
func (in Intent) Any() bool {
	return in.MoveLeft || in.MoveRight || in.CrouchHeld ||
		in.JumpPressedEdge || in.JumpHeld || in.HitHeld
}
