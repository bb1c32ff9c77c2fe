// Package storage provides SQLite-based persistence for level results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/stickrun/internal/level"
)

// Equipment modes results are recorded under.
const (
	EquipmentNone   = "none"
	EquipmentTennis = "tennis"
)

// Store manages the SQLite database connection for result persistence.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Entry is a stored result.
type Entry struct {
	ID        int64
	Player    string
	Equipment string
	level.Result
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			equipment TEXT NOT NULL DEFAULT 'none',
			level INTEGER NOT NULL,
			gross_ms INTEGER NOT NULL,
			bonus_ms INTEGER NOT NULL DEFAULT 0,
			net_ms INTEGER NOT NULL,
			balls_hit INTEGER NOT NULL DEFAULT 0,
			balls_total INTEGER NOT NULL DEFAULT 0,
			timestamp_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_rank ON results(level, equipment, net_ms, balls_hit DESC, timestamp_ms);
		CREATE INDEX IF NOT EXISTS idx_results_player ON results(player, equipment);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveEntry records a result for a player.
// Returns the ID of the inserted record.
func (s *Store) SaveEntry(player, equipment string, r level.Result) (int64, error) {
	if equipment == "" {
		equipment = EquipmentNone
	}
	res, err := s.db.Exec(
		`INSERT INTO results
		 (player, equipment, level, gross_ms, bonus_ms, net_ms, balls_hit, balls_total, timestamp_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player, equipment, r.LevelIndex, r.GrossMs, r.BonusMs, r.NetMs, r.BallsHit, r.BallsTotal, r.TimestampMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopForLevel retrieves the best N results of a level across all modes.
// Results are ordered by net time, then balls hit descending, then oldest first.
func (s *Store) TopForLevel(levelIndex, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, equipment, level, gross_ms, bonus_ms, net_ms,
		        balls_hit, balls_total, timestamp_ms, created_at
		 FROM results
		 WHERE level = ?
		 ORDER BY net_ms ASC, balls_hit DESC, timestamp_ms ASC
		 LIMIT ?`,
		levelIndex, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Player,
			&e.Equipment,
			&e.LevelIndex,
			&e.GrossMs,
			&e.BonusMs,
			&e.NetMs,
			&e.BallsHit,
			&e.BallsTotal,
			&e.TimestampMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Rank returns the 1-based position r would take on its level board, and
// the number of results stored for that level.
func (s *Store) Rank(r level.Result) (rank, total int, err error) {
	err = s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE
		     WHEN net_ms < ? THEN 1
		     WHEN net_ms = ? AND balls_hit > ? THEN 1
		     WHEN net_ms = ? AND balls_hit = ? AND timestamp_ms < ? THEN 1
		     ELSE 0 END), 0),
		   COUNT(*)
		 FROM results WHERE level = ?`,
		r.NetMs, r.NetMs, r.BallsHit, r.NetMs, r.BallsHit, r.TimestampMs, r.LevelIndex,
	).Scan(&rank, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot compute rank: %w", err)
	}
	return rank + 1, total, nil
}

// PlayerBest is the best time of one player.
type PlayerBest struct {
	Player string
	NetMs  int64
	Runs   int
}

// BestPerPlayer returns each player's best net time on a level in one
// equipment mode, fastest first.
func (s *Store) BestPerPlayer(levelIndex int, equipment string, limit int) ([]PlayerBest, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.Query(
		`SELECT player, MIN(net_ms) AS best, COUNT(*)
		 FROM results
		 WHERE level = ? AND equipment = ?
		 GROUP BY player
		 ORDER BY best ASC, player ASC
		 LIMIT ?`,
		levelIndex, equipment, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	defer rows.Close()

	var bests []PlayerBest
	for rows.Next() {
		var b PlayerBest
		if err := rows.Scan(&b.Player, &b.NetMs, &b.Runs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		bests = append(bests, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return bests, nil
}

// CumulativeBest is a player's summed best times over a set of levels.
type CumulativeBest struct {
	Player string
	SumMs  int64
	Levels int // Levels of the set the player has finished
}

// CumulativeTop sums each player's best time per level over levels and
// returns the lowest sums first.
func (s *Store) CumulativeTop(levels []int, equipment string, limit int) ([]CumulativeBest, error) {
	if limit <= 0 {
		limit = 10
	}
	if len(levels) == 0 {
		return nil, nil
	}

	want := make(map[int]bool, len(levels))
	for _, lv := range levels {
		want[lv] = true
	}

	rows, err := s.db.Query(
		`SELECT player, level, MIN(net_ms)
		 FROM results
		 WHERE equipment = ?
		 GROUP BY player, level
		 ORDER BY player, level`,
		equipment,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query cumulative times: %w", err)
	}
	defer rows.Close()

	byPlayer := make(map[string]*CumulativeBest)
	var order []string
	for rows.Next() {
		var player string
		var lv int
		var best int64
		if err := rows.Scan(&player, &lv, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if !want[lv] {
			continue
		}
		c, ok := byPlayer[player]
		if !ok {
			c = &CumulativeBest{Player: player}
			byPlayer[player] = c
			order = append(order, player)
		}
		c.SumMs += best
		c.Levels++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	out := make([]CumulativeBest, 0, len(order))
	for _, p := range order {
		if c := byPlayer[p]; c.SumMs > 0 {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SumMs < out[j].SumMs })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DefaultResumeLevels bounds NextLevelFor when no level cap is configured.
const DefaultResumeLevels = 3

// NextLevelFor returns the lowest level in 1..maxLevel the player has not
// finished in the given mode, or 1 when all are done. maxLevel <= 0 uses
// DefaultResumeLevels.
func (s *Store) NextLevelFor(player, equipment string, maxLevel int) (int, error) {
	if maxLevel <= 0 {
		maxLevel = DefaultResumeLevels
	}
	rows, err := s.db.Query(
		`SELECT DISTINCT level FROM results WHERE player = ? AND equipment = ?`,
		player, equipment,
	)
	if err != nil {
		return 1, fmt.Errorf("storage: cannot query finished levels: %w", err)
	}
	defer rows.Close()

	done := make(map[int]bool)
	for rows.Next() {
		var lv int
		if err := rows.Scan(&lv); err != nil {
			return 1, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[lv] = true
	}
	if err := rows.Err(); err != nil {
		return 1, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for lv := 1; lv <= maxLevel; lv++ {
		if !done[lv] {
			return lv, nil
		}
	}
	return 1, nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level      int
	Runs       int
	Players    int
	BestNetMs  int64
	AvgNetMs   float64
	BallsHit   int64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelIndex int) (*LevelStats, error) {
	stats := &LevelStats{Level: levelIndex}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MIN(net_ms), 0),
		        COALESCE(AVG(net_ms), 0), COALESCE(SUM(balls_hit), 0)
		 FROM results WHERE level = ?`,
		levelIndex,
	).Scan(&stats.Runs, &stats.Players, &stats.BestNetMs, &stats.AvgNetMs, &stats.BallsHit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE level = ? ORDER BY id DESC LIMIT 1`,
		levelIndex,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// PlayedLevels returns every level that has at least one result, ascending.
func (s *Store) PlayedLevels() ([]int, error) {
	rows, err := s.db.Query(`SELECT DISTINCT level FROM results ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var lv int
		if err := rows.Scan(&lv); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return levels, nil
}

// ClearLevel deletes all results of a level.
func (s *Store) ClearLevel(levelIndex int) error {
	_, err := s.db.Exec("DELETE FROM results WHERE level = ?", levelIndex)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
