package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/stickrun/internal/config"
)

const (
	testGroundY = 520.0
	stepMs      = 16.0
)

type rig struct {
	c   *Controller
	b   *Body
	now float64
}

func newRig(t *testing.T, mutate func(*config.MovementConfig)) *rig {
	t.Helper()
	def := config.DefaultRunnerConfig()
	mv := def.Movement
	mv.AutoRun = false
	if mutate != nil {
		mutate(&mv)
	}
	g := NewGround(testGroundY)
	return &rig{
		c: NewController(mv, def.Body, g),
		b: NewBody(def.Body, testGroundY),
	}
}

func (r *rig) step(in Intent) {
	r.now += stepMs
	r.c.Update(r.b, in, r.now, stepMs)
}

func (r *rig) steps(n int, in Intent) {
	for i := 0; i < n; i++ {
		r.step(in)
	}
}

// runUntilLanded steps with the given intent until the body is grounded again,
// returning the highest point of the feet (smallest y).
func (r *rig) runUntilLanded(t *testing.T, in Intent) float64 {
	t.Helper()
	top := r.b.Bottom()
	for i := 0; i < 500; i++ {
		r.step(in)
		if r.b.Bottom() < top {
			top = r.b.Bottom()
		}
		if r.c.State() == StateGrounded {
			return top
		}
	}
	t.Fatal("body never landed")
	return top
}

func TestGroundInvariant(t *testing.T) {
	r := newRig(t, nil)
	inputs := []Intent{
		{},
		{MoveRight: true},
		{JumpPressedEdge: true, JumpHeld: true},
		{JumpHeld: true},
		{CrouchHeld: true},
		{MoveLeft: true, CrouchHeld: true},
	}
	for i := 0; i < 400; i++ {
		r.step(inputs[i%len(inputs)])
		if r.b.Bottom() > testGroundY+Epsilon {
			t.Fatalf("step %d: bottom = %v, ground = %v", i, r.b.Bottom(), testGroundY)
		}
	}
}

func TestSnapOnlyZeroesDownwardVelocity(t *testing.T) {
	g := NewGround(100)
	b := &Body{X: 0, Y: 95, W: 10, H: 20, VY: -50}
	if !g.Snap(b) {
		t.Fatal("Snap() = false, expected correction")
	}
	if b.Bottom() != 100 {
		t.Errorf("Bottom() = %v, expected 100", b.Bottom())
	}
	if b.VY != -50 {
		t.Errorf("VY = %v, upward velocity must survive", b.VY)
	}

	b = &Body{Y: 90.005, H: 20, VY: 30}
	if g.Snap(b) {
		t.Error("penetration within epsilon should not be corrected")
	}
}

func TestJumpFiresFromGround(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.step(Intent{JumpPressedEdge: true, JumpHeld: true})

	if r.c.State() != StateAscending {
		t.Fatalf("State() = %v, expected ascending", r.c.State())
	}
	if r.c.JumpState().JumpsUsed != 1 {
		t.Errorf("JumpsUsed = %d, expected 1", r.c.JumpState().JumpsUsed)
	}
	if r.b.VY >= 0 {
		t.Errorf("VY = %v, expected upward", r.b.VY)
	}
}

func TestSingleJumpPerGroundedPeriod(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.step(Intent{JumpPressedEdge: true, JumpHeld: true})

	// Mash jump while airborne
	for i := 0; i < 20 && r.c.State().Airborne(); i++ {
		r.step(Intent{JumpPressedEdge: i%2 == 0, JumpHeld: true})
		if r.c.JumpState().JumpsUsed > 1 {
			t.Fatalf("JumpsUsed = %d mid-air", r.c.JumpState().JumpsUsed)
		}
	}
	r.runUntilLanded(t, Intent{})
	if r.c.JumpState().JumpsUsed != 0 {
		t.Errorf("JumpsUsed = %d after landing, expected 0", r.c.JumpState().JumpsUsed)
	}
}

func TestJumpBuffer(t *testing.T) {
	tests := []struct {
		name     string
		leadMs   float64
		expected bool
	}{
		{"pressed just before landing", 64, true},
		{"pressed too early", 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, nil)
			r.step(Intent{})
			r.step(Intent{JumpPressedEdge: true})

			// Simulate the descent to find the landing tick
			probe := newRig(t, nil)
			probe.step(Intent{})
			probe.step(Intent{JumpPressedEdge: true})
			airTicks := 0
			for probe.c.State().Airborne() {
				probe.step(Intent{})
				airTicks++
			}

			pressAt := airTicks - int(tt.leadMs/stepMs)
			for i := 0; i < airTicks; i++ {
				r.step(Intent{JumpPressedEdge: i == pressAt})
			}
			if r.c.State() != StateGrounded {
				t.Fatalf("State() = %v, expected grounded", r.c.State())
			}

			r.step(Intent{})
			jumped := r.c.State() == StateAscending
			if jumped != tt.expected {
				t.Errorf("buffered jump fired = %v, expected %v", jumped, tt.expected)
			}
		})
	}
}

func TestCoyoteTime(t *testing.T) {
	tests := []struct {
		name     string
		lateMs   float64
		expected bool
	}{
		{"within window", 64, true},
		{"after window", 240, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, nil)
			r.step(Intent{})

			// Drop the ground away so the body walks off a ledge
			r.c.Ground().SetY(testGroundY + 300)
			r.step(Intent{})
			r.steps(int(tt.lateMs/stepMs)-1, Intent{})

			r.step(Intent{JumpPressedEdge: true, JumpHeld: true})
			jumped := r.b.VY < 0
			if jumped != tt.expected {
				t.Errorf("coyote jump fired = %v, expected %v", jumped, tt.expected)
			}
		})
	}
}

func TestVariableJumpHeight(t *testing.T) {
	held := newRig(t, nil)
	held.step(Intent{})
	held.step(Intent{JumpPressedEdge: true, JumpHeld: true})
	highHeld := held.runUntilLanded(t, Intent{JumpHeld: true})

	tapped := newRig(t, nil)
	tapped.step(Intent{})
	tapped.step(Intent{JumpPressedEdge: true, JumpHeld: true})
	// Hold just past the minimum, then release
	tapped.steps(8, Intent{JumpHeld: true})
	tapped.step(Intent{JumpReleasedEdge: true})
	highTapped := tapped.runUntilLanded(t, Intent{})

	if highTapped <= highHeld {
		t.Errorf("tapped apex %v should be lower than held apex %v", highTapped, highHeld)
	}
}

func TestJumpCutRespectsMinimumHold(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.step(Intent{JumpPressedEdge: true, JumpHeld: true})
	before := r.b.VY
	r.step(Intent{JumpReleasedEdge: true})

	// Released before MinHoldMs: no cut, floaty gravity still applies
	expected := before + r.c.Config().GravityUp*stepMs/1000
	if math.Abs(r.b.VY-expected) > 1e-9 {
		t.Errorf("VY = %v, expected %v (no cut)", r.b.VY, expected)
	}
}

func TestGravityAsymmetry(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.step(Intent{JumpPressedEdge: true, JumpHeld: true})
	if r.b.Gravity != r.c.Config().GravityUp {
		t.Errorf("rising gravity = %v, expected %v", r.b.Gravity, r.c.Config().GravityUp)
	}

	for r.b.VY < 0 {
		r.step(Intent{JumpHeld: true})
	}
	r.step(Intent{JumpHeld: true})
	if r.b.Gravity != r.c.Config().GravityDown {
		t.Errorf("falling gravity = %v, expected %v", r.b.Gravity, r.c.Config().GravityDown)
	}
}

func TestCrouchPreservesFooting(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	foot := r.b.Bottom()
	x := r.b.X

	r.step(Intent{CrouchHeld: true})
	if !r.b.Crouching || r.c.State() != StateCrouching {
		t.Fatalf("expected crouching, got state %v", r.c.State())
	}
	if r.b.H != config.DefaultRunnerConfig().Body.CrouchHeight {
		t.Errorf("H = %v, expected crouch height", r.b.H)
	}
	if math.Abs(r.b.Bottom()-foot) > Epsilon {
		t.Errorf("Bottom() = %v, expected %v", r.b.Bottom(), foot)
	}
	if r.b.X != x {
		t.Errorf("X = %v, expected unchanged %v", r.b.X, x)
	}

	r.step(Intent{})
	if r.b.Crouching || r.b.H != config.DefaultRunnerConfig().Body.StandHeight {
		t.Error("releasing crouch should stand up")
	}
	if math.Abs(r.b.Bottom()-foot) > Epsilon {
		t.Errorf("Bottom() after standing = %v, expected %v", r.b.Bottom(), foot)
	}
}

func TestCrouchIgnoredMidAir(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.step(Intent{JumpPressedEdge: true, JumpHeld: true})
	r.step(Intent{CrouchHeld: true})
	if r.b.Crouching {
		t.Error("crouch must be ignored while airborne")
	}
}

func TestCrouchedJumpStandsUp(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.step(Intent{CrouchHeld: true})
	r.step(Intent{CrouchHeld: true, JumpPressedEdge: true, JumpHeld: true})
	if r.b.Crouching {
		t.Error("jumping should stand the body up")
	}
	if r.c.State() != StateAscending {
		t.Errorf("State() = %v, expected ascending", r.c.State())
	}
}

func TestCrouchSlowsRun(t *testing.T) {
	r := newRig(t, func(m *config.MovementConfig) { m.AutoRun = true })
	r.steps(200, Intent{CrouchHeld: true})
	expected := r.c.Config().RunSpeed * r.c.Config().CrouchSpeedMult
	if math.Abs(r.b.VX-expected) > 1 {
		t.Errorf("VX = %v, expected about %v", r.b.VX, expected)
	}
}

func TestAccelerationClamped(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{MoveRight: true})
	maxDelta := r.c.Config().Accel * stepMs / 1000
	if r.b.VX > maxDelta+1e-9 {
		t.Errorf("VX = %v after one step, expected at most %v", r.b.VX, maxDelta)
	}
}

func TestKnockbackDisablesInput(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.c.Knockback(r.b, -120, -220, 1200)

	if !r.c.Disabled() {
		t.Fatal("Disabled() = false after knockback")
	}
	r.step(Intent{JumpPressedEdge: true, MoveRight: true})
	if r.b.VX >= 0 {
		t.Errorf("VX = %v, knockback should push backwards", r.b.VX)
	}
	r.runUntilLanded(t, Intent{JumpPressedEdge: true})
	r.steps(30, Intent{JumpPressedEdge: true})
	if r.c.State() != StateGrounded {
		t.Errorf("State() = %v, disabled body must not jump", r.c.State())
	}
	if r.b.VX != 0 {
		t.Errorf("VX = %v, expected drag to stop the body", r.b.VX)
	}
}

func TestFreeze(t *testing.T) {
	r := newRig(t, func(m *config.MovementConfig) { m.AutoRun = true })
	r.steps(10, Intent{})
	r.c.Freeze(r.b)
	x := r.b.X
	r.steps(10, Intent{MoveRight: true, JumpPressedEdge: true})
	if r.b.X != x || r.b.VX != 0 || r.b.VY != 0 {
		t.Errorf("frozen body moved: x=%v vx=%v vy=%v", r.b.X, r.b.VX, r.b.VY)
	}
}

func TestReanchor(t *testing.T) {
	r := newRig(t, nil)
	r.step(Intent{})
	r.c.Reanchor(r.b, 300)
	if math.Abs(r.b.Bottom()-300) > Epsilon {
		t.Errorf("Bottom() = %v, expected 300", r.b.Bottom())
	}
	r.step(Intent{})
	if r.c.State() != StateGrounded {
		t.Errorf("State() = %v, expected grounded after reanchor", r.c.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s        State
		expected string
	}{
		{StateGrounded, "grounded"},
		{StateAscending, "ascending"},
		{StateDescending, "descending"},
		{StateCrouching, "crouching"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}
