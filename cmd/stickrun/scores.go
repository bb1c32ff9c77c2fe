package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrun/internal/storage"
)

var (
	flagLimit       int
	flagScoresEquip string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show best times for a level",
	Long: `Display the fastest runs of a level, each player's best time and the
cumulative best over levels 1..<level>.

Runs are ranked by net time (clock minus ball bonus), then by balls
hit, then by who set the time first.

Examples:
  stickrun scores 1
  stickrun scores 3 --limit 20 --equipment tennis
  stickrun scores 2 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the level")
	scoresCmd.Flags().StringVar(&flagScoresEquip, "equipment", storage.EquipmentNone, "Equipment for per-player bests: none or tennis")
}

func runScores(_ *cobra.Command, args []string) {
	levelIndex, err := strconv.Atoi(args[0])
	if err != nil || levelIndex < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearLevel(levelIndex); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			return
		}
		fmt.Printf("Cleared all results of level %d.\n", levelIndex)
		return
	}

	entries, err := store.TopForLevel(levelIndex, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Best Times - Level %d\n", levelIndex)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stickrun play --level %d' to set the first time!\n", levelIndex)
		return
	}

	best := entries[0].NetMs
	fmt.Printf("  %-4s  %-14s  %-10s  %-9s  %-6s  %s\n", "Rank", "Player", "Time", "Delta", "Balls", "When")
	fmt.Printf("  %-4s  %-14s  %-10s  %-9s  %-6s  %s\n", "----", "------", "----", "-----", "-----", "----")
	for i, e := range entries {
		balls := "-"
		if e.BallsTotal > 0 {
			balls = fmt.Sprintf("%d/%d", e.BallsHit, e.BallsTotal)
		}
		delta := ""
		if i > 0 {
			delta = storage.FormatDelta(e.NetMs - best)
		}
		fmt.Printf("  %-4d  %-14s  %-10s  %-9s  %-6s  %s\n",
			i+1, e.Player, storage.FormatMs(e.NetMs), delta, balls, humanize.Time(e.CreatedAt))
	}

	if bests, err := store.BestPerPlayer(levelIndex, flagScoresEquip, flagLimit); err == nil && len(bests) > 0 {
		fmt.Println()
		fmt.Printf("Player bests (%s)\n", flagScoresEquip)
		for _, b := range bests {
			fmt.Printf("  %-14s  %-10s  %s\n", b.Player, storage.FormatMs(b.NetMs), humanize.Comma(int64(b.Runs))+" runs")
		}
	}

	if levelIndex > 1 {
		levels := make([]int, levelIndex)
		for i := range levels {
			levels[i] = i + 1
		}
		if cum, err := store.CumulativeTop(levels, flagScoresEquip, flagLimit); err == nil && len(cum) > 0 {
			fmt.Println()
			fmt.Printf("Cumulative best, levels 1-%d\n", levelIndex)
			for _, c := range cum {
				fmt.Printf("  %-14s  %-10s  %d/%d levels\n", c.Player, storage.FormatMs(c.SumMs), c.Levels, levelIndex)
			}
		}
	}

	if stats, err := store.GetLevelStats(levelIndex); err == nil {
		fmt.Println()
		fmt.Printf("%s runs by %s players, average %s, last played %s\n",
			humanize.Comma(int64(stats.Runs)), humanize.Comma(int64(stats.Players)),
			storage.FormatMs(int64(stats.AvgNetMs)), humanize.Time(stats.LastPlayed))
	}
}
