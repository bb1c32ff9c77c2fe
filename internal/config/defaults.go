package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration.
// It mirrors defaults/runner.yaml and is used if that file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Height:          600,
			GroundThickness: 80,
			MaxStepMs:       50,
		},
		Body: BodyConfig{
			Width:        20,
			StandHeight:  60,
			CrouchHeight: 42,
			StartX:       200,
			MaxSpeedX:    300,
			MaxSpeedY:    2200,
		},
		Movement: MovementConfig{
			AutoRun:         true,
			RunSpeed:        220,
			Accel:           1800,
			AccelGain:       8,
			JumpSpeed:       860,
			GravityUp:       1020,
			GravityDown:     2550,
			CutMultiplier:   0.68,
			CoyoteMs:        120,
			BufferMs:        140,
			MinHoldMs:       120,
			CrouchSpeedMult: 0.7,
			AutoJumpAssist:  false,
		},
		Obstacles: ObstacleConfig{
			MaxHeight:  0,
			WidthScale: 1,
		},
		Lifecycle: LifecycleConfig{
			WinAdvanceDelayMs: 2500,
			FailRetryDelayMs:  900,
			KnockbackX:        -120,
			KnockbackY:        -220,
			KnockbackDragX:    1200,
			GoalWidth:         28,
			GoalHeight:        18,
			GoalLift:          30,
			MaxLevel:          0,
		},
		Tennis: TennisConfig{
			Enabled:        false,
			BonusPerBallMs: 1000,
			BallSize:       18,
			FirstX:         260,
			StepX:          140,
			ReachMin:       70,
			ReachMax:       110,
			Levels: []LevelBalls{
				{Level: 1, Balls: 2},
				{Level: 2, Balls: 4},
			},
		},
		Render: RenderConfig{
			UnitsPerCol: 10,
			UnitsPerRow: 25,
			HoldTicks:   8,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
