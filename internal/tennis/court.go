// Package tennis implements the optional ball-hitting side activity: balls
// hang above the course and every ball the runner returns earns a time bonus.
package tennis

import (
	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/rng"
)

// Flight of a returned ball.
const (
	ReturnSpeedX  = 420.0
	ReturnVYMin   = -320
	ReturnVYMax   = -120
	BallGravity   = 900.0
	BounceFactor  = 0.45
	restThreshold = 40.0 // Bounce speed below which a ball stops bouncing
)

// Ball is a tennis ball. X and Y are its center.
type Ball struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Returned bool
}

// Box returns the ball's hitbox.
func (b Ball) Box() core.Box {
	return core.BoxFromCenter(b.X, b.Y, b.Size, b.Size)
}

// Court holds the balls of one attempt.
type Court struct {
	cfg     config.TennisConfig
	balls   []Ball
	hit     int
	groundY float64
	src     *rng.Source
}

// SeedFor returns the seed of the ball stream for a level seed.
func SeedFor(levelSeed string) string {
	return levelSeed + "/tennis"
}

// New places the balls configured for level. A disabled config yields an
// empty court.
func New(cfg config.TennisConfig, level int, levelSeed string, groundY float64) *Court {
	c := &Court{
		cfg:     cfg,
		groundY: groundY,
		src:     rng.New(SeedFor(levelSeed)),
	}
	if !cfg.Enabled {
		return c
	}

	total := cfg.BallsFor(level)
	c.balls = make([]Ball, 0, total)
	for i := 0; i < total; i++ {
		above := c.src.Between(int(cfg.ReachMin), int(cfg.ReachMax))
		c.balls = append(c.balls, Ball{
			X:    cfg.FirstX + float64(i)*cfg.StepX,
			Y:    groundY - float64(above),
			Size: cfg.BallSize,
		})
	}
	return c
}

// Update returns balls the body overlaps while hitting and moves returned
// balls. It reports how many balls were returned during this step.
func (c *Court) Update(body core.Box, hitting bool, dtMs float64) int {
	dt := dtMs / 1000
	returned := 0

	for i := range c.balls {
		b := &c.balls[i]
		if b.Returned {
			c.fly(b, dt)
			continue
		}
		if hitting && b.Box().Intersects(body) {
			b.Returned = true
			b.VX = ReturnSpeedX
			b.VY = float64(c.src.Between(ReturnVYMin, ReturnVYMax))
			c.hit++
			returned++
		}
	}
	return returned
}

func (c *Court) fly(b *Ball, dt float64) {
	b.VY += BallGravity * dt
	b.X += b.VX * dt
	b.Y += b.VY * dt

	if bottom := b.Y + b.Size/2; bottom > c.groundY {
		b.Y = c.groundY - b.Size/2
		b.VY = -b.VY * BounceFactor
		if -b.VY < restThreshold {
			b.VY = 0
		}
	}
}

// Resize shifts every ball, waiting or returned, with the ground line so
// each keeps its height above it.
func (c *Court) Resize(groundY float64) {
	dy := groundY - c.groundY
	for i := range c.balls {
		c.balls[i].Y += dy
	}
	c.groundY = groundY
}

// Hit returns the number of balls returned so far.
func (c *Court) Hit() int { return c.hit }

// Total returns the number of balls on the court.
func (c *Court) Total() int { return len(c.balls) }

// Balls returns a copy of the balls.
func (c *Court) Balls() []Ball {
	out := make([]Ball, len(c.balls))
	copy(out, c.balls)
	return out
}
