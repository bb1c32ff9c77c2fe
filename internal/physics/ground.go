package physics

// Epsilon is the ground penetration tolerance in world units.
const Epsilon = 0.01

// Ground is a flat ground plane at Y. It may only move a body vertically.
type Ground struct {
	y float64
}

// NewGround creates a ground plane with its top at y.
func NewGround(y float64) *Ground {
	return &Ground{y: y}
}

// Y returns the top of the ground.
func (g *Ground) Y() float64 {
	return g.y
}

// SetY moves the ground plane, e.g. after a terminal resize.
func (g *Ground) SetY(y float64) {
	g.y = y
}

// Snap pushes a body that sank into the ground back on top of it and removes
// residual downward velocity. It reports whether a correction was made.
func (g *Ground) Snap(b *Body) bool {
	pen := b.Bottom() - g.y
	if pen <= Epsilon {
		return false
	}
	b.Y -= pen
	if b.VY > 0 {
		b.VY = 0
	}
	return true
}

// Contact reports whether the body stands on the ground and is not moving away from it.
func (g *Ground) Contact(b *Body) bool {
	return b.Bottom() >= g.y-Epsilon && b.VY >= 0
}
