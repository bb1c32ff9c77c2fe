// Package physics implements the runner's movement controller and the
// ground constraint. World units: x grows right, y grows down.
package physics

import (
	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
)

// Body is the player's rigid body. X and Y are the hitbox center.
type Body struct {
	X, Y      float64 // Hitbox center
	VX, VY    float64 // Velocity in units/s
	W, H      float64 // Hitbox size
	Gravity   float64 // Gravity applied during the last step
	Crouching bool
}

// NewBody creates a standing body at cfg.StartX resting on groundY.
func NewBody(cfg config.BodyConfig, groundY float64) *Body {
	b := &Body{}
	b.Place(cfg, groundY)
	return b
}

// Place puts the body back at its start position, standing and at rest.
func (b *Body) Place(cfg config.BodyConfig, groundY float64) {
	b.W = cfg.Width
	b.H = cfg.StandHeight
	b.X = cfg.StartX
	b.Y = groundY - b.H/2
	b.VX, b.VY = 0, 0
	b.Gravity = 0
	b.Crouching = false
}

// Bottom returns the y-coordinate of the feet.
func (b Body) Bottom() float64 {
	return b.Y + b.H/2
}

// Box returns the current hitbox.
func (b Body) Box() core.Box {
	return core.BoxFromCenter(b.X, b.Y, b.W, b.H)
}

// setHeight changes the hitbox height keeping the horizontal center and the feet.
func (b *Body) setHeight(h float64) {
	foot := b.Bottom()
	b.H = h
	b.Y = foot - h/2
}
