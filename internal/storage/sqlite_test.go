package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct{ score, round int }{{100, 1}, {50, 1}, {200, 2}} {
		if _, err := store.SaveScore("arkanoid", s.score, s.round); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("arkanoid_hard", 500, 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("arkanoid", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Round != 2 {
		t.Errorf("Expected round 2 for the best score, got %d", scores[0].Round)
	}

	hard, err := store.TopScores("arkanoid_hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hard) != 1 {
		t.Errorf("Expected 1 hard score, got %d", len(hard))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("arkanoid")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("arkanoid", 100, 1)
	store.SaveScore("arkanoid", 300, 1)

	high, _ = store.HighScore("arkanoid")
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.SetHighScore("arkanoid", 450); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if err := store.SetHighScore("arkanoid", 120); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}

	high, _ = store.HighScore("arkanoid")
	if high != 450 {
		t.Errorf("Expected a lower high score to be ignored, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("arkanoid", 100, 1)
	store.SetHighScore("arkanoid", 100)
	store.SaveScore("arkanoid_easy", 300, 2)

	if err := store.ClearScores("arkanoid"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("arkanoid", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("arkanoid"); high != 0 {
		t.Errorf("Expected high score cleared, got %d", high)
	}
	if easy, _ := store.TopScores("arkanoid_easy", 10); len(easy) != 1 {
		t.Errorf("Other variants should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("arkanoid", 100, 1)
	store.SaveScore("arkanoid", 300, 3)

	stats, err := store.GetGameStats("arkanoid")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestRound != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["arkanoid"] == nil {
		t.Errorf("Expected stats for one game, got %v", all)
	}

	empty, err := store.GetGameStats("never")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}
}

func TestHighScoresAdapter(t *testing.T) {
	store := openTestStore(t)
	hs := store.HighScores("arkanoid", nil)

	if got := hs.LoadHighScore(); got != 0 {
		t.Errorf("Expected 0 before any save, got %d", got)
	}

	hs.SaveHighScore(700)
	if got := hs.LoadHighScore(); got != 700 {
		t.Errorf("Expected 700, got %d", got)
	}

	if got := store.HighScores("arkanoid_hard", nil).LoadHighScore(); got != 0 {
		t.Errorf("High scores are per variant, got %d", got)
	}
}

func TestHighScoresAdapterAbsorbsFailures(t *testing.T) {
	store := openTestStore(t)
	hs := store.HighScores("arkanoid", nil)
	store.Close()

	if got := hs.LoadHighScore(); got != 0 {
		t.Errorf("Expected 0 from a closed store, got %d", got)
	}
	hs.SaveHighScore(10)

	var missing *HighScores
	if got := missing.LoadHighScore(); got != 0 {
		t.Errorf("Expected 0 from a nil adapter, got %d", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
