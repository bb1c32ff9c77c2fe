package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configFile = "runner.yaml"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.stickrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Keys missing from a file keep their default values. A custom path ending
// in .toml is decoded as TOML.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data, isTOML(customPath))
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data, false); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data, false); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRunnerYAML, false)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a configuration document on top of the defaults and
// validates the result.
func Parse(data []byte, asTOML bool) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if asTOML {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Validate()
	return cfg, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stickrun", "configs", filename)
}

// Validate replaces values that cannot drive a simulation with defaults.
// It never fails: a broken file degrades to playable settings.
func (c *RunnerConfig) Validate() {
	def := DefaultRunnerConfig()

	positive := func(v *float64, fallback float64) {
		if *v <= 0 {
			*v = fallback
		}
	}

	positive(&c.World.Height, def.World.Height)
	positive(&c.World.MaxStepMs, def.World.MaxStepMs)
	if c.World.GroundThickness < 0 || c.World.GroundThickness >= c.World.Height {
		c.World.GroundThickness = def.World.GroundThickness
		if c.World.GroundThickness >= c.World.Height {
			c.World.GroundThickness = 0
		}
	}

	positive(&c.Body.Width, def.Body.Width)
	positive(&c.Body.StandHeight, def.Body.StandHeight)
	positive(&c.Body.CrouchHeight, def.Body.CrouchHeight)
	if c.Body.CrouchHeight > c.Body.StandHeight {
		c.Body.CrouchHeight = c.Body.StandHeight
	}
	positive(&c.Body.MaxSpeedX, def.Body.MaxSpeedX)
	positive(&c.Body.MaxSpeedY, def.Body.MaxSpeedY)

	m := &c.Movement
	positive(&m.RunSpeed, def.Movement.RunSpeed)
	positive(&m.Accel, def.Movement.Accel)
	positive(&m.AccelGain, def.Movement.AccelGain)
	positive(&m.JumpSpeed, def.Movement.JumpSpeed)
	positive(&m.GravityUp, def.Movement.GravityUp)
	positive(&m.GravityDown, def.Movement.GravityDown)
	if m.CutMultiplier <= 0 || m.CutMultiplier > 1 {
		m.CutMultiplier = def.Movement.CutMultiplier
	}
	if m.CoyoteMs < 0 {
		m.CoyoteMs = def.Movement.CoyoteMs
	}
	if m.BufferMs < 0 {
		m.BufferMs = def.Movement.BufferMs
	}
	if m.MinHoldMs < 0 {
		m.MinHoldMs = def.Movement.MinHoldMs
	}
	if m.CrouchSpeedMult <= 0 || m.CrouchSpeedMult > 1 {
		m.CrouchSpeedMult = def.Movement.CrouchSpeedMult
	}

	if c.Obstacles.MaxHeight < 0 {
		c.Obstacles.MaxHeight = 0
	}
	positive(&c.Obstacles.WidthScale, 1)

	l := &c.Lifecycle
	if l.WinAdvanceDelayMs < 0 {
		l.WinAdvanceDelayMs = def.Lifecycle.WinAdvanceDelayMs
	}
	if l.FailRetryDelayMs < 0 {
		l.FailRetryDelayMs = def.Lifecycle.FailRetryDelayMs
	}
	positive(&l.GoalWidth, def.Lifecycle.GoalWidth)
	positive(&l.GoalHeight, def.Lifecycle.GoalHeight)
	if l.MaxLevel < 0 {
		l.MaxLevel = 0
	}

	t := &c.Tennis
	if t.BonusPerBallMs < 0 {
		t.BonusPerBallMs = def.Tennis.BonusPerBallMs
	}
	positive(&t.BallSize, def.Tennis.BallSize)
	if t.ReachMax < t.ReachMin {
		t.ReachMin, t.ReachMax = t.ReachMax, t.ReachMin
	}

	positive(&c.Render.UnitsPerCol, def.Render.UnitsPerCol)
	positive(&c.Render.UnitsPerRow, def.Render.UnitsPerRow)
	if c.Render.HoldTicks <= 0 {
		c.Render.HoldTicks = def.Render.HoldTicks
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy widens the assist windows and caps obstacle height; hard narrows
// them and widens obstacles.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Movement.CoyoteMs = 180
		cfg.Movement.BufferMs = 200
		cfg.Movement.AutoJumpAssist = true
		cfg.Obstacles.MaxHeight = 160
		cfg.Obstacles.WidthScale = 0.9
	case DifficultyHard:
		cfg.Movement.CoyoteMs = 80
		cfg.Movement.BufferMs = 100
		cfg.Movement.AutoJumpAssist = false
		cfg.Obstacles.WidthScale = 1.15
	}
}
