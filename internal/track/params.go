// Package track derives per-level parameters from a level index and lays
// out the obstacle course for a level.
package track

import "fmt"

// Base values of the difficulty curve.
const (
	BaseObstacleCount = 10
	BaseSpacing       = 280
	BaseWidth         = 30
	BaseHeight        = 150
	StartX            = 600
	GoalOffset        = 220

	MinSpacingFloor  = 110 // Gaps never shrink below this
	SpacingFloor     = 140 // SpacingBase stops shrinking here
	JitterCap        = 160
	ObstacleCountCap = 80

	// SeedVersion is part of every level seed. Bumping it changes every layout.
	SeedVersion = "v1"
)

// LevelParams describes one level's course. Values are immutable for the
// lifetime of an attempt.
type LevelParams struct {
	Index               int
	Seed                string
	ObstacleCount       int
	ObstacleWidth       float64
	SpacingBase         float64
	SpacingJitter       float64
	MinSpacing          float64
	BaseHeight          float64
	StartX              float64
	GoalOffsetAfterLast float64
}

// SeedFor returns the seed string for a level index.
func SeedFor(index int) string {
	return fmt.Sprintf("level-%d-%s", index, SeedVersion)
}

// ParamsForIndex derives LevelParams from a level index.
// Spacing shrinks by 10 per level down to 140, jitter grows by 6 up to 160,
// count grows by 2 up to 80 and height by 4 per level.
// Indices below 1 have no curve and fall back to DefaultParams.
func ParamsForIndex(index int) LevelParams {
	if index < 1 {
		return DefaultParams()
	}

	return LevelParams{
		Index:               index,
		Seed:                SeedFor(index),
		ObstacleCount:       min(BaseObstacleCount+index*2, ObstacleCountCap),
		ObstacleWidth:       BaseWidth,
		SpacingBase:         float64(max(BaseSpacing-index*10, SpacingFloor)),
		SpacingJitter:       float64(min(60+index*6, JitterCap)),
		MinSpacing:          MinSpacingFloor,
		BaseHeight:          float64(BaseHeight + index*4),
		StartX:              StartX,
		GoalOffsetAfterLast: GoalOffset,
	}
}

// DefaultParams returns the minimal parameter set used when an index has no
// derivable parameters. It is the first level's set.
func DefaultParams() LevelParams {
	return ParamsForIndex(1)
}
