// Package config provides YAML/TOML configuration loading and difficulty
// presets for the runner.
package config

// RunnerConfig contains all tunables of the runner.
type RunnerConfig struct {
	World     WorldConfig     `yaml:"world" toml:"world"`
	Body      BodyConfig      `yaml:"body" toml:"body"`
	Movement  MovementConfig  `yaml:"movement" toml:"movement"`
	Obstacles ObstacleConfig  `yaml:"obstacles" toml:"obstacles"`
	Lifecycle LifecycleConfig `yaml:"lifecycle" toml:"lifecycle"`
	Tennis    TennisConfig    `yaml:"tennis" toml:"tennis"`
	Render    RenderConfig    `yaml:"render" toml:"render"`
}

// WorldConfig defines the world geometry. Units are world units, y grows down.
type WorldConfig struct {
	Height          float64 `yaml:"height" toml:"height"`
	GroundThickness float64 `yaml:"ground_thickness" toml:"ground_thickness"`
	MaxStepMs       float64 `yaml:"max_step_ms" toml:"max_step_ms"` // Clamp for a single tick
}

// GroundY returns the top of the ground plane.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundThickness
}

// BodyConfig defines the player hitbox.
type BodyConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	StandHeight  float64 `yaml:"stand_height" toml:"stand_height"`
	CrouchHeight float64 `yaml:"crouch_height" toml:"crouch_height"`
	StartX       float64 `yaml:"start_x" toml:"start_x"`
	MaxSpeedX    float64 `yaml:"max_speed_x" toml:"max_speed_x"`
	MaxSpeedY    float64 `yaml:"max_speed_y" toml:"max_speed_y"`
}

// MovementConfig defines the controller tuning. Speeds are units/s,
// accelerations units/s², windows in milliseconds.
type MovementConfig struct {
	AutoRun         bool    `yaml:"auto_run" toml:"auto_run"`
	RunSpeed        float64 `yaml:"run_speed" toml:"run_speed"`
	Accel           float64 `yaml:"accel" toml:"accel"`
	AccelGain       float64 `yaml:"accel_gain" toml:"accel_gain"`
	JumpSpeed       float64 `yaml:"jump_speed" toml:"jump_speed"`
	GravityUp       float64 `yaml:"gravity_up" toml:"gravity_up"`
	GravityDown     float64 `yaml:"gravity_down" toml:"gravity_down"`
	CutMultiplier   float64 `yaml:"cut_multiplier" toml:"cut_multiplier"`
	CoyoteMs        float64 `yaml:"coyote_ms" toml:"coyote_ms"`
	BufferMs        float64 `yaml:"buffer_ms" toml:"buffer_ms"`
	MinHoldMs       float64 `yaml:"min_hold_ms" toml:"min_hold_ms"`
	CrouchSpeedMult float64 `yaml:"crouch_speed_mult" toml:"crouch_speed_mult"`
	AutoJumpAssist  bool    `yaml:"auto_jump_assist" toml:"auto_jump_assist"`
}

// ObstacleConfig defines build-time options for the obstacle field.
type ObstacleConfig struct {
	MaxHeight  float64 `yaml:"max_height" toml:"max_height"`   // 0 = no cap
	WidthScale float64 `yaml:"width_scale" toml:"width_scale"` // 0 = 1.0
}

// LifecycleConfig defines level timing and terminal-state reactions.
type LifecycleConfig struct {
	WinAdvanceDelayMs float64 `yaml:"win_advance_delay_ms" toml:"win_advance_delay_ms"`
	FailRetryDelayMs  float64 `yaml:"fail_retry_delay_ms" toml:"fail_retry_delay_ms"`
	KnockbackX        float64 `yaml:"knockback_x" toml:"knockback_x"`
	KnockbackY        float64 `yaml:"knockback_y" toml:"knockback_y"`
	KnockbackDragX    float64 `yaml:"knockback_drag_x" toml:"knockback_drag_x"`
	GoalWidth         float64 `yaml:"goal_width" toml:"goal_width"`
	GoalHeight        float64 `yaml:"goal_height" toml:"goal_height"`
	GoalLift          float64 `yaml:"goal_lift" toml:"goal_lift"` // Goal center height above ground
	MaxLevel          int     `yaml:"max_level" toml:"max_level"` // 0 = endless
}

// TennisConfig defines the optional ball-hitting side activity.
type TennisConfig struct {
	Enabled        bool         `yaml:"enabled" toml:"enabled"`
	BonusPerBallMs float64      `yaml:"bonus_per_ball_ms" toml:"bonus_per_ball_ms"`
	BallSize       float64      `yaml:"ball_size" toml:"ball_size"`
	FirstX         float64      `yaml:"first_x" toml:"first_x"`
	StepX          float64      `yaml:"step_x" toml:"step_x"`
	ReachMin       float64      `yaml:"reach_min" toml:"reach_min"`
	ReachMax       float64      `yaml:"reach_max" toml:"reach_max"`
	Levels         []LevelBalls `yaml:"levels" toml:"levels"`
}

// LevelBalls is the ball count of one level.
type LevelBalls struct {
	Level int `yaml:"level" toml:"level"`
	Balls int `yaml:"balls" toml:"balls"`
}

// BallsFor returns the number of balls placed in a level.
func (t TennisConfig) BallsFor(level int) int {
	for _, lb := range t.Levels {
		if lb.Level == level {
			return lb.Balls
		}
	}
	return 0
}

// RenderConfig defines how world units map onto terminal cells.
type RenderConfig struct {
	UnitsPerCol float64 `yaml:"units_per_col" toml:"units_per_col"`
	UnitsPerRow float64 `yaml:"units_per_row" toml:"units_per_row"`
	HoldTicks   int     `yaml:"hold_ticks" toml:"hold_ticks"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
