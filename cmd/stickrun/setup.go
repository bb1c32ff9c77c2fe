package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrun/internal/games/runner"
	"github.com/vovakirdan/stickrun/internal/level"
	"github.com/vovakirdan/stickrun/internal/storage"
)

// newLogger builds the logger from --log-file and --log-level. Without a log
// file, logs go to stderr when toStderr is set and are discarded otherwise,
// so a full-screen game never writes over itself.
func newLogger(toStderr bool) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w       io.Writer = io.Discard
		cleanup           = func() {}
		opts              = log.Options{ReportTimestamp: true, Level: lvl, Prefix: "stickrun"}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
		opts.Formatter = log.LogfmtFormatter
	case toStderr:
		w = os.Stderr
	}

	return log.NewWithOptions(w, opts), cleanup, nil
}

// openStore opens the results database. Failures are reported and the
// caller continues without recording.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		logger.Warn("results database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// rankFunc is told where a freshly recorded result placed on its level.
type rankFunc func(player string, r level.Result, rank, total int)

// wireRunner hands the CLI settings to the runner modes. Wins are recorded
// in store under the player and equipment of each session. onRank may be nil.
func wireRunner(store *storage.Store, logger *log.Logger, configPath, difficulty string, onRank rankFunc) {
	runner.SetConfigPath(configPath)
	runner.SetDifficultyPreset(difficulty)
	runner.SetLogger(logger)
	if store == nil {
		runner.SetSinkFactory(nil)
		return
	}
	runner.SetSinkFactory(func(player, equipment string) level.ResultSink {
		sink := storage.PlayerSink{Store: store, Player: player, Equipment: equipment}
		return level.ResultSinkFunc(func(r level.Result) error {
			if err := sink.SaveResult(r); err != nil {
				return err
			}
			rank, total, err := store.Rank(r)
			if err != nil {
				logger.Warn("cannot rank result", "player", player, "err", err)
				return nil
			}
			logger.Info("result ranked", "player", player, "level", r.LevelIndex, "rank", rank, "of", total)
			if onRank != nil {
				onRank(player, r, rank, total)
			}
			return nil
		})
	})
}

// defaultPlayer returns the name results are recorded under when --name is
// not given.
func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "Player"
}
