package level

import (
	"math"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/obstacle"
	"github.com/vovakirdan/stickrun/internal/physics"
)

const (
	assistCooldownMs = 120.0
	assistHeightPad  = 8.0  // Obstacles up to apex+pad count as clearable
	assistWidthPad   = 16.0 // Air distance needed beyond the obstacle width
	assistMinTol     = 12.0
	assistTolPerVX   = 0.06
)

// Assist presses jump for the player when the next obstacle can be cleared
// and the body is at the take-off point that puts the apex over its center.
type Assist struct {
	apex      float64 // Jump height with the button held
	tUp       float64 // Seconds to apex
	tDown     float64 // Seconds from apex back to the ground
	lastAtMs  float64
	holdUntil float64
}

// NewAssist derives the jump profile from the movement tuning.
func NewAssist(cfg config.MovementConfig) *Assist {
	v := math.Abs(cfg.JumpSpeed)
	gUp := math.Max(1, cfg.GravityUp)
	gDown := math.Max(1, cfg.GravityDown)
	apex := math.Round(v * v / (2 * gUp))
	return &Assist{
		apex:      apex,
		tUp:       v / gUp,
		tDown:     math.Sqrt(2 * apex / gDown),
		lastAtMs:  math.Inf(-1),
		holdUntil: math.Inf(-1),
	}
}

// Apex returns the height of a held jump.
func (a *Assist) Apex() float64 {
	return a.apex
}

// Apply returns in, with a jump press added when the assist fires. After
// firing it keeps the jump held until the apex.
func (a *Assist) Apply(in core.Intent, b *physics.Body, ctrl *physics.Controller, field *obstacle.Field, nowMs float64) core.Intent {
	if nowMs < a.holdUntil {
		in.JumpHeld = true
	}
	if ctrl.State() != physics.StateGrounded || nowMs-a.lastAtMs < assistCooldownMs {
		return in
	}

	next, ok := field.Ahead(b.X)
	if !ok || next.Height > a.apex+assistHeightPad {
		return in
	}

	vx := math.Max(1, b.VX)
	if vx*(a.tUp+a.tDown) < next.Width+assistWidthPad {
		return in
	}

	ideal := vx * a.tUp
	tol := math.Max(assistMinTol, vx*assistTolPerVX)
	if math.Abs(next.CenterX-b.X-ideal) > tol {
		return in
	}

	in.JumpPressedEdge = true
	in.JumpHeld = true
	a.lastAtMs = nowMs
	a.holdUntil = nowMs + a.tUp*1000
	return in
}
