package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/core"
	"github.com/vovakirdan/stickrun/internal/games/runner"
	"github.com/vovakirdan/stickrun/internal/platform/tui"
	"github.com/vovakirdan/stickrun/internal/registry"
	"github.com/vovakirdan/stickrun/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagMode       string
	flagEquipment  string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run levels in this terminal",
	Long: `Start running. The level clock starts with your first key press.
Reach the crown at the end of the course; touching an obstacle knocks
you back and the level restarts. Won levels are recorded.

Controls:
  Space/W/Up, mouse  - Jump (hold for a higher jump)
  S/Down             - Duck
  A/D, Left/Right    - Run (free mode)
  J                  - Swing at a ball (tennis)
  Enter              - Next level after a win
  P                  - Pause
  R                  - Restart the level
  Esc/Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Longer jump windows, lower and narrower obstacles, jump assist
  normal - Config values
  hard   - Short jump windows, wider obstacles, no assist

Examples:
  stickrun play
  stickrun play --level 4
  stickrun play --mode free --equipment tennis
  stickrun play --difficulty easy --config ./runner.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (0 = first unfinished)")
	playCmd.Flags().StringVar(&flagMode, "mode", "auto", "Run mode: auto or free")
	playCmd.Flags().StringVar(&flagEquipment, "equipment", storage.EquipmentNone, "Equipment: none or tennis")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for results (default: $USER)")
}

// modeID maps --mode to a registered mode.
func modeID(mode string) (string, error) {
	switch mode {
	case "auto", "":
		return runner.AutoRunID, nil
	case "free":
		return runner.FreeRunID, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected auto or free)", mode)
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.PlayerName = flagName
	if cfg.PlayerName == "" {
		cfg.PlayerName = defaultPlayer()
	}
	return cfg
}

// maxLevel returns the configured level cap, 0 for endless.
func maxLevel() int {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return 0
	}
	return cfg.Lifecycle.MaxLevel
}

func runPlay(_ *cobra.Command, _ []string) {
	gameID, err := modeID(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagEquipment != storage.EquipmentNone && flagEquipment != storage.EquipmentTennis {
		fmt.Fprintf(os.Stderr, "Error: unknown equipment %q (expected none or tennis)\n", flagEquipment)
		os.Exit(1)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (expected easy, normal or hard)\n", flagDifficulty)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	wireRunner(store, logger, flagConfig, flagDifficulty, nil)

	cfg := terminalConfig()
	cfg.Equipment = flagEquipment
	cfg.StartLevel = flagLevel
	if cfg.StartLevel <= 0 {
		cfg.StartLevel = 1
		if store != nil {
			next, nextErr := store.NextLevelFor(cfg.PlayerName, cfg.Equipment, maxLevel())
			if nextErr != nil {
				logger.Warn("cannot resume", "player", cfg.PlayerName, "err", nextErr)
			} else {
				cfg.StartLevel = next
			}
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("play", "mode", gameID, "level", cfg.StartLevel, "player", cfg.PlayerName, "equipment", cfg.Equipment)
	if _, err := tui.Run(game, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
