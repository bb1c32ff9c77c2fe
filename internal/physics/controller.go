package physics

import (
	"math"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
)

// Intent is the per-tick input consumed by the controller.
type Intent = core.Intent

// never marks a timestamp that has not happened.
var never = math.Inf(-1)

// JumpState is the controller's jump memory. Times are in milliseconds on
// the attempt clock.
type JumpState struct {
	JumpsUsed           int
	LastGroundedAt      float64
	LastJumpRequestedAt float64
	JumpStartedAt       float64
}

// Controller drives a Body from player intent.
// Update order per step: intent, integration, ground snap, state resolution.
type Controller struct {
	cfg    config.MovementConfig
	body   config.BodyConfig
	ground *Ground

	state   State
	jump    JumpState
	contact bool // Ground contact from the previous step
	cut     bool // Jump was cut in the current airborne phase

	disabled bool    // Input ignored (failed attempt)
	frozen   bool    // Body held in place (won attempt)
	dragX    float64 // Horizontal deceleration while disabled
}

// NewController creates a controller for bodies resting on ground.
func NewController(cfg config.MovementConfig, body config.BodyConfig, ground *Ground) *Controller {
	c := &Controller{cfg: cfg, body: body, ground: ground}
	c.Reset()
	return c
}

// Reset clears all jump memory and re-enables input.
// The body itself is placed with Body.Place.
func (c *Controller) Reset() {
	c.state = StateGrounded
	c.jump = JumpState{
		LastGroundedAt:      never,
		LastJumpRequestedAt: never,
		JumpStartedAt:       never,
	}
	c.contact = true
	c.cut = false
	c.disabled = false
	c.frozen = false
	c.dragX = 0
}

// State returns the movement state resolved by the last step.
func (c *Controller) State() State { return c.state }

// JumpState returns a copy of the jump memory.
func (c *Controller) JumpState() JumpState { return c.jump }

// Contact reports ground contact after the last step.
func (c *Controller) Contact() bool { return c.contact }

// Disabled reports whether input is ignored.
func (c *Controller) Disabled() bool { return c.disabled }

// Frozen reports whether the body is held in place.
func (c *Controller) Frozen() bool { return c.frozen }

// Ground returns the ground the controller resolves against.
func (c *Controller) Ground() *Ground { return c.ground }

// Config returns the movement tuning.
func (c *Controller) Config() config.MovementConfig { return c.cfg }

// Update advances the body by dtMs milliseconds at time nowMs.
func (c *Controller) Update(b *Body, in Intent, nowMs, dtMs float64) {
	if dtMs < 0 {
		dtMs = 0
	}
	dt := dtMs / 1000

	if c.frozen {
		b.VX, b.VY = 0, 0
		c.ground.Snap(b)
		c.contact = c.ground.Contact(b)
		c.state = nextState(c.contact, b.Crouching, b.VY)
		return
	}
	if c.disabled {
		in = Intent{}
	}

	if c.contact {
		c.jump.LastGroundedAt = nowMs
	}
	if in.JumpPressedEdge {
		c.jump.LastJumpRequestedAt = nowMs
	}

	c.updateCrouch(b, in)
	c.tryJump(b, nowMs)
	c.tryCut(b, in, nowMs)

	c.integrate(b, in, nowMs, dt)

	c.ground.Snap(b)
	c.resolve(b)
}

func (c *Controller) updateCrouch(b *Body, in Intent) {
	switch {
	case in.CrouchHeld && !b.Crouching && c.state.canCrouch():
		b.Crouching = true
		b.setHeight(c.body.CrouchHeight)
		b.VY = 0
		c.ground.Snap(b)
	case !in.CrouchHeld && b.Crouching:
		c.stand(b)
	}
}

func (c *Controller) stand(b *Body) {
	b.Crouching = false
	b.setHeight(c.body.StandHeight)
	c.ground.Snap(b)
}

func (c *Controller) tryJump(b *Body, now float64) {
	buffered := now-c.jump.LastJumpRequestedAt <= c.cfg.BufferMs
	coyote := now-c.jump.LastGroundedAt <= c.cfg.CoyoteMs
	if !buffered || !coyote || c.jump.JumpsUsed != 0 {
		return
	}

	if b.Crouching {
		c.stand(b)
	}
	b.VY = -c.cfg.JumpSpeed
	c.jump.JumpsUsed++
	c.jump.JumpStartedAt = now
	c.jump.LastJumpRequestedAt = never
	c.jump.LastGroundedAt = never
	c.contact = false
	c.cut = false
}

func (c *Controller) tryCut(b *Body, in Intent, now float64) {
	if !in.JumpReleasedEdge || c.cut || b.VY >= 0 || c.jump.JumpsUsed == 0 {
		return
	}
	if now-c.jump.JumpStartedAt < c.cfg.MinHoldMs {
		return
	}
	b.VY *= c.cfg.CutMultiplier
	c.cut = true
}

// gravity picks the gravity for this step. Rising with the button held
// (or before the minimum hold elapsed) floats; everything else falls hard.
func (c *Controller) gravity(b *Body, in Intent, now float64) float64 {
	if b.VY < 0 && !c.cut {
		early := now-c.jump.JumpStartedAt < c.cfg.MinHoldMs
		if in.JumpHeld || early {
			return c.cfg.GravityUp
		}
	}
	return c.cfg.GravityDown
}

func (c *Controller) integrate(b *Body, in Intent, now, dt float64) {
	if c.disabled {
		// Coast after knockback
		step := c.dragX * dt
		switch {
		case b.VX > step:
			b.VX -= step
		case b.VX < -step:
			b.VX += step
		default:
			b.VX = 0
		}
	} else {
		target := in.MoveDir() * c.cfg.RunSpeed
		if c.cfg.AutoRun {
			target = c.cfg.RunSpeed
		}
		if b.Crouching {
			target *= c.cfg.CrouchSpeedMult
		}
		acc := core.ClampF(c.cfg.AccelGain*(target-b.VX), -c.cfg.Accel, c.cfg.Accel)
		b.VX += acc * dt
	}

	b.Gravity = c.gravity(b, in, now)
	b.VY += b.Gravity * dt

	b.VX = core.ClampF(b.VX, -c.body.MaxSpeedX, c.body.MaxSpeedX)
	b.VY = core.ClampF(b.VY, -c.body.MaxSpeedY, c.body.MaxSpeedY)

	b.X += b.VX * dt
	b.Y += b.VY * dt
}

func (c *Controller) resolve(b *Body) {
	c.contact = c.ground.Contact(b)
	if c.contact {
		c.jump.JumpsUsed = 0
		c.cut = false
	}
	c.state = nextState(c.contact, b.Crouching, b.VY)
}

// Knockback throws the body with the given velocity and disables input.
// Horizontal speed then decays at dragX units/s².
func (c *Controller) Knockback(b *Body, vx, vy, dragX float64) {
	if b.Crouching {
		c.stand(b)
	}
	b.VX, b.VY = vx, vy
	c.disabled = true
	c.dragX = dragX
	c.jump.JumpsUsed = 1
	c.contact = false
	c.state = nextState(false, false, vy)
}

// Freeze stops the body and ignores all further input.
func (c *Controller) Freeze(b *Body) {
	b.VX, b.VY = 0, 0
	c.frozen = true
	c.disabled = true
}

// Reanchor moves the ground to newY and shifts the body by the same amount.
func (c *Controller) Reanchor(b *Body, newY float64) {
	b.Y += newY - c.ground.Y()
	c.ground.SetY(newY)
	c.ground.Snap(b)
}
