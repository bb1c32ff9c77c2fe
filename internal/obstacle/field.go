// Package obstacle builds the static obstacle field of a level and answers
// collision queries against it.
package obstacle

import (
	"math"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/rng"
	"github.com/vovakirdan/stickrun/internal/track"
)

const (
	minSide      = 8  // Smallest width or height an obstacle is drawn with
	minHeightCap = 12 // A height cap never goes below this
	tallEvery    = 5  // Every n-th obstacle is a bit taller
	tallBonus    = 8
)

// Obstacle is a box standing on the ground.
type Obstacle struct {
	CenterX       float64
	Width         float64
	Height        float64
	GroundAnchorY float64 // Ground line the bottom edge rests on
}

// Box returns the obstacle's hitbox.
func (o Obstacle) Box() core.Box {
	return core.BoxOnGround(o.CenterX, o.GroundAnchorY, o.Width, o.Height)
}

// BuildOptions tweak obstacle sizes. Nil fields mean no change.
type BuildOptions struct {
	MaxHeight  *float64
	WidthScale *float64
}

// OptionsFrom converts config values, where zero means unset.
func OptionsFrom(cfg config.ObstacleConfig) BuildOptions {
	var opts BuildOptions
	if cfg.MaxHeight > 0 {
		h := cfg.MaxHeight
		opts.MaxHeight = &h
	}
	if cfg.WidthScale > 0 {
		s := cfg.WidthScale
		opts.WidthScale = &s
	}
	return opts
}

// SizeSeed returns the seed of the size stream for a level seed.
func SizeSeed(levelSeed string) string {
	return levelSeed + "/obstacles"
}

// Ranges holds the inclusive size ranges obstacles are drawn from.
type Ranges struct {
	MinW, MaxW int
	MinH, MaxH int
}

// RangesFor derives the size ranges from the level params.
func RangesFor(p track.LevelParams) Ranges {
	var r Ranges
	r.MinW = max(minSide, round(p.ObstacleWidth*0.6))
	r.MaxW = max(r.MinW+2, round(p.ObstacleWidth*1.6))
	r.MinH = max(minSide, round(p.BaseHeight*0.7))
	r.MaxH = max(r.MinH+2, round(p.BaseHeight*1.3))
	return r
}

// Field is the set of obstacles of one attempt.
type Field struct {
	obstacles []Obstacle
	groundY   float64
	active    bool
}

// Build places one obstacle at each position with its bottom on groundY.
// Sizes are drawn from src; a nil src uses the stream of SizeSeed(p.Seed),
// which makes the whole layout reproducible from the level seed.
func Build(groundY float64, p track.LevelParams, positions []float64, opts BuildOptions, src *rng.Source) *Field {
	if src == nil {
		src = rng.New(SizeSeed(p.Seed))
	}

	r := RangesFor(p)
	scale := 1.0
	if opts.WidthScale != nil && *opts.WidthScale > 0 {
		scale = *opts.WidthScale
	}
	hCap := math.Inf(1)
	if opts.MaxHeight != nil {
		hCap = math.Max(minHeightCap, math.Floor(*opts.MaxHeight))
	}

	f := &Field{
		obstacles: make([]Obstacle, 0, len(positions)),
		groundY:   groundY,
		active:    true,
	}
	for i, x := range positions {
		wRaw := src.Between(r.MinW, r.MaxW)
		hRaw := src.Between(r.MinH, r.MaxH)
		if i%tallEvery == 0 {
			hRaw += tallBonus
		}

		w := math.Max(minSide, float64(round(float64(wRaw)*scale)))
		h := math.Min(float64(hRaw), hCap)

		f.obstacles = append(f.obstacles, Obstacle{
			CenterX:       x,
			Width:         w,
			Height:        h,
			GroundAnchorY: groundY,
		})
	}
	return f
}

// QueryCollision returns the first obstacle overlapping box.
// A disabled field never collides.
func (f *Field) QueryCollision(box core.Box) (Obstacle, bool) {
	if !f.active {
		return Obstacle{}, false
	}
	for _, o := range f.obstacles {
		if o.Box().Intersects(box) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Ahead returns the nearest obstacle whose center is beyond x.
func (f *Field) Ahead(x float64) (Obstacle, bool) {
	for _, o := range f.obstacles {
		if o.CenterX > x {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Disable turns collisions off for the rest of the attempt.
func (f *Field) Disable() {
	f.active = false
}

// Active reports whether collisions are on.
func (f *Field) Active() bool {
	return f.active
}

// Resize re-anchors every obstacle on a new ground line.
// Only the vertical placement changes.
func (f *Field) Resize(groundY float64) {
	f.groundY = groundY
	for i := range f.obstacles {
		f.obstacles[i].GroundAnchorY = groundY
	}
}

// GroundY returns the ground line obstacles stand on.
func (f *Field) GroundY() float64 {
	return f.groundY
}

// Len returns the number of obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Obstacles returns a copy of the obstacles in track order.
func (f *Field) Obstacles() []Obstacle {
	out := make([]Obstacle, len(f.obstacles))
	copy(out, f.obstacles)
	return out
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
