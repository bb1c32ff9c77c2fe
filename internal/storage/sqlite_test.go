package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/stickrun/internal/level"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, player, equipment string, r level.Result) {
	t.Helper()
	if _, err := s.SaveEntry(player, equipment, r); err != nil {
		t.Fatalf("SaveEntry() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 1, GrossMs: 9000, NetMs: 9000, TimestampMs: 1})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	top, err := store.TopForLevel(1, 10)
	if err != nil {
		t.Fatalf("TopForLevel() failed: %v", err)
	}
	if len(top) != 1 || top[0].Player != "ann" {
		t.Errorf("TopForLevel() = %+v, expected ann's run", top)
	}
}

func TestTopForLevelOrdering(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "slow", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 12000, TimestampMs: 1})
	save(t, store, "late", EquipmentTennis, level.Result{LevelIndex: 1, NetMs: 10000, BallsHit: 1, TimestampMs: 30})
	save(t, store, "early", EquipmentTennis, level.Result{LevelIndex: 1, NetMs: 10000, BallsHit: 1, TimestampMs: 20})
	save(t, store, "balls", EquipmentTennis, level.Result{LevelIndex: 1, NetMs: 10000, BallsHit: 2, TimestampMs: 40})
	save(t, store, "fast", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 8000, TimestampMs: 50})
	save(t, store, "other", EquipmentNone, level.Result{LevelIndex: 2, NetMs: 1000, TimestampMs: 1})

	top, err := store.TopForLevel(1, 10)
	if err != nil {
		t.Fatalf("TopForLevel() failed: %v", err)
	}

	expected := []string{"fast", "balls", "early", "late", "slow"}
	if len(top) != len(expected) {
		t.Fatalf("TopForLevel() returned %d entries, expected %d", len(top), len(expected))
	}
	for i, name := range expected {
		if top[i].Player != name {
			t.Errorf("rank %d = %s, expected %s", i+1, top[i].Player, name)
		}
	}

	limited, err := store.TopForLevel(1, 2)
	if err != nil {
		t.Fatalf("TopForLevel() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d entries", len(limited))
	}
}

func TestRank(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "a", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 8000, TimestampMs: 10})
	save(t, store, "b", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 10000, BallsHit: 2, TimestampMs: 20})
	save(t, store, "c", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 12000, TimestampMs: 30})

	tests := []struct {
		name     string
		r        level.Result
		expected int
	}{
		{"best", level.Result{LevelIndex: 1, NetMs: 7000, TimestampMs: 99}, 1},
		{"middle", level.Result{LevelIndex: 1, NetMs: 10000, BallsHit: 1, TimestampMs: 99}, 3},
		{"tie loses to older", level.Result{LevelIndex: 1, NetMs: 8000, TimestampMs: 99}, 2},
		{"worst", level.Result{LevelIndex: 1, NetMs: 99999, TimestampMs: 99}, 4},
		{"empty level", level.Result{LevelIndex: 7, NetMs: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, _, err := store.Rank(tt.r)
			if err != nil {
				t.Fatalf("Rank() failed: %v", err)
			}
			if rank != tt.expected {
				t.Errorf("Rank() = %d, expected %d", rank, tt.expected)
			}
		})
	}

	_, total, _ := store.Rank(level.Result{LevelIndex: 1})
	if total != 3 {
		t.Errorf("total = %d, expected 3", total)
	}
}

func TestBestPerPlayer(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 9000})
	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 7000})
	save(t, store, "bob", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 8000})
	save(t, store, "bob", EquipmentTennis, level.Result{LevelIndex: 1, NetMs: 1000})

	bests, err := store.BestPerPlayer(1, EquipmentNone, 5)
	if err != nil {
		t.Fatalf("BestPerPlayer() failed: %v", err)
	}
	expected := []PlayerBest{
		{Player: "ann", NetMs: 7000, Runs: 2},
		{Player: "bob", NetMs: 8000, Runs: 1},
	}
	if len(bests) != len(expected) {
		t.Fatalf("BestPerPlayer() = %+v, expected %+v", bests, expected)
	}
	for i := range expected {
		if bests[i] != expected[i] {
			t.Errorf("row %d = %+v, expected %+v", i, bests[i], expected[i])
		}
	}
}

func TestCumulativeTop(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 5000})
	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 4000})
	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 2, NetMs: 6000})
	save(t, store, "bob", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 3000})
	save(t, store, "bob", EquipmentNone, level.Result{LevelIndex: 9, NetMs: 100})
	save(t, store, "cat", EquipmentTennis, level.Result{LevelIndex: 1, NetMs: 1})

	rows, err := store.CumulativeTop([]int{1, 2, 3}, EquipmentNone, 10)
	if err != nil {
		t.Fatalf("CumulativeTop() failed: %v", err)
	}
	expected := []CumulativeBest{
		{Player: "bob", SumMs: 3000, Levels: 1},
		{Player: "ann", SumMs: 10000, Levels: 2},
	}
	if len(rows) != len(expected) {
		t.Fatalf("CumulativeTop() = %+v, expected %+v", rows, expected)
	}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Errorf("row %d = %+v, expected %+v", i, rows[i], expected[i])
		}
	}
}

func TestNextLevelFor(t *testing.T) {
	store := openTestStore(t)

	next, err := store.NextLevelFor("ann", EquipmentNone, 3)
	if err != nil {
		t.Fatalf("NextLevelFor() failed: %v", err)
	}
	if next != 1 {
		t.Errorf("NextLevelFor() = %d for a new player, expected 1", next)
	}

	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 1})
	save(t, store, "ann", EquipmentTennis, level.Result{LevelIndex: 2, NetMs: 1})
	if next, _ = store.NextLevelFor("ann", EquipmentNone, 3); next != 2 {
		t.Errorf("NextLevelFor() = %d, expected 2", next)
	}

	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 2, NetMs: 1})
	save(t, store, "ann", EquipmentNone, level.Result{LevelIndex: 3, NetMs: 1})
	if next, _ = store.NextLevelFor("ann", EquipmentNone, 3); next != 1 {
		t.Errorf("NextLevelFor() = %d after finishing all, expected 1", next)
	}
}

func TestLevelStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetLevelStats(1)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	save(t, store, "ann", EquipmentTennis, level.Result{LevelIndex: 1, NetMs: 4000, BallsHit: 2})
	save(t, store, "bob", EquipmentNone, level.Result{LevelIndex: 1, NetMs: 6000})
	save(t, store, "bob", EquipmentNone, level.Result{LevelIndex: 2, NetMs: 6000})

	stats, err = store.GetLevelStats(1)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Players != 2 || stats.BestNetMs != 4000 || stats.AvgNetMs != 5000 || stats.BallsHit != 2 {
		t.Errorf("GetLevelStats() = %+v", stats)
	}

	levels, err := store.PlayedLevels()
	if err != nil {
		t.Fatalf("PlayedLevels() failed: %v", err)
	}
	if len(levels) != 2 || levels[0] != 1 || levels[1] != 2 {
		t.Errorf("PlayedLevels() = %v, expected [1 2]", levels)
	}

	if err := store.ClearLevel(1); err != nil {
		t.Fatalf("ClearLevel() failed: %v", err)
	}
	top, _ := store.TopForLevel(1, 10)
	if len(top) != 0 {
		t.Errorf("expected no results after ClearLevel(), got %d", len(top))
	}
}

func TestPlayerSink(t *testing.T) {
	store := openTestStore(t)
	sink := PlayerSink{Store: store, Player: "ann"}

	r := level.Result{LevelIndex: 3, GrossMs: 5000, BonusMs: 1000, NetMs: 4000, BallsHit: 1, BallsTotal: 2, TimestampMs: 77}
	if err := sink.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	top, err := store.TopForLevel(3, 1)
	if err != nil || len(top) != 1 {
		t.Fatalf("TopForLevel() = %v, %v", top, err)
	}
	if top[0].Result != r {
		t.Errorf("stored %+v, expected %+v", top[0].Result, r)
	}
	if top[0].Equipment != EquipmentNone {
		t.Errorf("Equipment = %q, expected default %q", top[0].Equipment, EquipmentNone)
	}
}
