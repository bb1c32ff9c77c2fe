// stickrun is a side-scrolling stick runner for the terminal.
//
// Usage:
//
//	stickrun play            - Run levels in this terminal
//	stickrun menu            - Pick a mode interactively
//	stickrun list            - List available modes
//	stickrun track <level>   - Print a level's course
//	stickrun scores <level>  - Show best times for a level
//	stickrun board           - Browse best times interactively
//	stickrun serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.stickrun/results.db)
//	--log-file <path>     - Write a logfmt log to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/stickrun/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stickrun",
	Short: "Stick Runner - a timed obstacle course in your terminal",
	Long: `Stick Runner is a side-scrolling runner: jump and duck through seeded
obstacle courses, reach the goal as fast as you can and climb the
leaderboard level by level.

Available commands:
  play     - Run levels in this terminal
  menu     - Interactive mode picker
  list     - Show all modes
  track    - Print the course of a level
  scores   - View best times of a level
  board    - Interactive leaderboard
  serve    - Start SSH server for remote play

Examples:
  stickrun play
  stickrun play --level 3 --equipment tennis
  stickrun track 5
  stickrun scores 1
  stickrun serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stickrun/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (logfmt)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}
