package track

import (
	"math"

	"github.com/vovakirdan/stickrun/internal/rng"
)

// Track is a generated course: obstacle X positions in increasing order and
// the goal X position.
type Track struct {
	Params    LevelParams
	Positions []float64
	GoalX     float64
}

// Generate lays out the obstacle positions for p.
// The first obstacle sits at StartX; every following gap is
// SpacingBase ± SpacingJitter, rounded half-up and never below MinSpacing.
// Exactly ObstacleCount-1 values are drawn from the seeded stream, so the
// output depends only on p. Any seed string is valid, including "".
func Generate(p LevelParams) Track {
	src := rng.New(p.Seed)
	positions := make([]float64, 0, max(p.ObstacleCount, 0))

	x := p.StartX
	for i := 0; i < p.ObstacleCount; i++ {
		if i > 0 {
			x += Gap(p, src.Next())
		}
		positions = append(positions, x)
	}

	t := Track{Params: p, Positions: positions}
	t.GoalX = t.Last() + p.GoalOffsetAfterLast
	return t
}

// Gap converts one random draw r in [0, 1) into a spacing for p.
func Gap(p LevelParams, r float64) float64 {
	spacing := p.SpacingBase + (r*2-1)*p.SpacingJitter
	return math.Max(p.MinSpacing, roundHalfUp(spacing))
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Last returns the last obstacle position, or StartX for an empty track.
func (t Track) Last() float64 {
	if len(t.Positions) == 0 {
		return t.Params.StartX
	}
	return t.Positions[len(t.Positions)-1]
}
