package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/level"
	"github.com/vovakirdan/stickrun/internal/physics"
)

// Sprite runes.
const (
	GroundChar   = '▀'
	SoilChar     = '░'
	ObstacleChar = '█'
	GoalChar     = '♛'
	BallChar     = 'o'
	ReturnedChar = '•'
	HeadChar     = 'O'
)

// Camera maps world units to terminal cells. It scrolls horizontally so the
// runner stays at a fixed column.
type Camera struct {
	unitsPerCol float64
	unitsPerRow float64
	anchorCol   int
	originX     float64
}

// NewCamera creates a camera for a screen width. The runner is kept at a
// quarter of the width.
func NewCamera(cfg config.RenderConfig, screenW int) Camera {
	return Camera{
		unitsPerCol: cfg.UnitsPerCol,
		unitsPerRow: cfg.UnitsPerRow,
		anchorCol:   screenW / 4,
	}
}

// Follow scrolls the camera to world x. The view never starts left of 0.
func (c *Camera) Follow(x float64) {
	c.originX = math.Max(0, x-float64(c.anchorCol)*c.unitsPerCol)
}

// Col returns the screen column of world x.
func (c Camera) Col(x float64) int {
	return int(math.Floor((x - c.originX) / c.unitsPerCol))
}

// Row returns the screen row of world y.
func (c Camera) Row(y float64) int {
	return int(math.Floor(y / c.unitsPerRow))
}

// Cells returns the cell rectangle covered by a box. Every non-empty box
// covers at least one cell.
func (c Camera) Cells(b core.Box) core.Rect {
	x0, y0 := c.Col(b.Left()), c.Row(b.Top())
	x1 := int(math.Ceil((b.Right()-c.originX)/c.unitsPerCol)) - 1
	y1 := int(math.Ceil(b.Bottom()/c.unitsPerRow)) - 1
	return core.NewRect(x0, y0, max(x1-x0+1, 1), max(y1-y0+1, 1))
}

// Render draws the current frame to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	a := g.session.Attempt()
	body := a.Body()
	g.camera.Follow(body.X)

	g.drawGround(dst, a.GroundY())
	for _, o := range a.Field().Obstacles() {
		if a.Field().Active() {
			dst.DrawRect(g.camera.Cells(o.Box()), ObstacleChar, core.ColorObstacle)
		} else {
			dst.DrawRect(g.camera.Cells(o.Box()), ObstacleChar, core.ColorDim)
		}
	}

	goal := g.camera.Cells(a.Goal())
	dst.SetColor(goal.X+goal.W/2, goal.Y+goal.H/2, GoalChar, core.ColorGoal)

	for _, b := range a.Court().Balls() {
		cell := g.camera.Cells(b.Box())
		if b.Returned {
			dst.SetColor(cell.X, cell.Y, ReturnedChar, core.ColorDim)
		} else {
			dst.SetColor(cell.X, cell.Y, BallChar, core.ColorBall)
		}
	}

	g.drawRunner(dst, body, a.Movement())
	g.drawHUD(dst, a)
	g.drawBanner(dst, a)
}

func (g *Game) drawGround(dst *core.Screen, groundY float64) {
	row := g.camera.Row(groundY)
	dst.DrawHLine(0, row, dst.Width(), GroundChar, core.ColorGround)
	for y := row + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), SoilChar, core.ColorSoil)
	}
}

// drawRunner renders the stick figure inside the body's cells.
//
//	 O     O
//	/|\   /|\   <O>
//	/ \   |\    / \
func (g *Game) drawRunner(dst *core.Screen, b physics.Body, st physics.State) {
	r := g.camera.Cells(b.Box())
	cx := r.X + r.W/2
	top, bottom := r.Y, r.Bottom()-1

	if st == physics.StateCrouching || bottom-top < 2 {
		dst.DrawTextColor(cx-1, bottom-1, "<O>", core.ColorRunner)
		dst.DrawTextColor(cx-1, bottom, "/ \\", core.ColorRunner)
		return
	}

	dst.SetColor(cx, top, HeadChar, core.ColorRunner)
	for y := top + 1; y < bottom; y++ {
		dst.DrawTextColor(cx-1, y, "/|\\", core.ColorRunner)
	}

	legs := "/ \\"
	switch {
	case st.Airborne():
		legs = "/ >"
	case int(b.X/g.cfg.Render.UnitsPerCol/2)%2 == 1:
		legs = " |\\"
	}
	dst.DrawTextColor(cx-1, bottom, legs, core.ColorRunner)
}

func (g *Game) drawHUD(dst *core.Screen, a *level.Attempt) {
	life := a.Lifecycle()
	hud := fmt.Sprintf(" Lv %d  %s", a.Index(), seconds(life.ElapsedMs()))
	if c := a.Court(); c.Total() > 0 {
		hud += fmt.Sprintf("  balls %d/%d  net %s", c.Hit(), c.Total(), seconds(life.NetMs()))
	}
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)

	if best := g.session.BestNetMs(); best > 0 {
		right := fmt.Sprintf("best %s ", seconds(float64(best)))
		dst.DrawTextColor(dst.Width()-len(right), 0, right, core.ColorHUD)
	}
}

func (g *Game) drawBanner(dst *core.Screen, a *level.Attempt) {
	switch {
	case g.session.Finished():
		g.drawCenteredMessage(dst, "ALL LEVELS CLEAR", "Press Q to quit", core.ColorWin)
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorHUD)
	case a.State() == level.StateIdle:
		g.drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d", a.Index()), "Press any key to run", core.ColorHUD)
	case a.State() == level.StateWon:
		sub := "Enter: next level"
		if r, ok := a.Result(); ok {
			sub = fmt.Sprintf("%s  |  Enter: next level", seconds(float64(r.NetMs)))
		}
		g.drawCenteredMessage(dst, "LEVEL CLEAR", sub, core.ColorWin)
	case a.State() == level.StateFailed:
		g.drawCenteredMessage(dst, "OUCH", "Retrying...", core.ColorFail)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, c)
	dst.DrawTextColor(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorDefault)
}

func seconds(ms float64) string {
	return fmt.Sprintf("%.2fs", ms/1000)
}
