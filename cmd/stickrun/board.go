package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stickrun/internal/platform/tui"
	"github.com/vovakirdan/stickrun/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse best times interactively",
	Long: `Open the leaderboard browser. Levels are listed on the left with their
fastest time, the runs of the selected level on the right with the gap
to the leader.

Controls:
  Tab/Right, Shift+Tab/Left  - Next/previous level
  E                          - Cycle equipment: all, none, tennis
  Up/Down                    - Scroll
  Esc/Q                      - Quit`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
