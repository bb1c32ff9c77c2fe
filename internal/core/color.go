package core

// Color is a semantic foreground color for a screen cell. Hosts map each
// value to a concrete terminal color.
type Color uint8

// Palette of the runner scene.
const (
	ColorDefault Color = iota
	ColorRunner
	ColorObstacle
	ColorGround
	ColorSoil
	ColorGoal
	ColorBall
	ColorHUD
	ColorWin
	ColorFail
	ColorDim
)
