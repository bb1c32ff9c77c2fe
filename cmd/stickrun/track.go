package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrun/internal/config"
	"github.com/vovakirdan/stickrun/internal/obstacle"
	"github.com/vovakirdan/stickrun/internal/tennis"
	"github.com/vovakirdan/stickrun/internal/track"
)

var trackCmd = &cobra.Command{
	Use:   "track <level>",
	Short: "Print the course of a level",
	Long: `Print the derived parameters, obstacle positions and sizes, the goal
and the balls of a level. Courses are seeded by the level index, so the
output is the same on every machine.

Examples:
  stickrun track 1
  stickrun track 12 --difficulty hard`,
	Args: cobra.ExactArgs(1),
	Run:  runTrack,
}

func init() {
	trackCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	trackCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runTrack(_ *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&cfg, preset)
	}

	p := track.ParamsForIndex(index)
	t := track.Generate(p)
	groundY := cfg.World.GroundY()
	field := obstacle.Build(groundY, p, t.Positions, obstacle.OptionsFrom(cfg.Obstacles), nil)
	r := obstacle.RangesFor(p)

	fmt.Printf("Level %d  (seed %s)\n", p.Index, p.Seed)
	fmt.Println()
	fmt.Printf("  obstacles     %d\n", p.ObstacleCount)
	fmt.Printf("  spacing       %.0f, jitter %.0f, min %.0f\n", p.SpacingBase, p.SpacingJitter, p.MinSpacing)
	fmt.Printf("  width range   %d..%d\n", r.MinW, r.MaxW)
	fmt.Printf("  height range  %d..%d\n", r.MinH, r.MaxH)
	fmt.Printf("  goal          x=%.0f\n", t.GoalX)
	fmt.Println()

	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "#", "X", "Width", "Height")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "-", "-", "-----", "------")
	for i, o := range field.Obstacles() {
		fmt.Printf("  %-4d  %-8.0f  %-6.0f  %.0f\n", i+1, o.CenterX, o.Width, o.Height)
	}

	cfg.Tennis.Enabled = true
	court := tennis.New(cfg.Tennis, p.Index, p.Seed, groundY)
	if court.Total() == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  balls (tennis, %d ms each)\n", int(cfg.Tennis.BonusPerBallMs))
	for i, b := range court.Balls() {
		fmt.Printf("  %-4d  x=%-6.0f  %.0f above ground\n", i+1, b.X, groundY-b.Y)
	}
}
