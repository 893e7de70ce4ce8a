package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/progress"
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

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveBlob("k", []byte("v")); err != nil {
		t.Fatalf("SaveBlob() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.LoadBlob("k")
	if err != nil || string(got) != "v" {
		t.Errorf("LoadBlob() = %q, %v", got, err)
	}
}

func TestBlobs(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LoadBlob("missing")
	if err != nil {
		t.Fatalf("LoadBlob() failed: %v", err)
	}
	if got != nil {
		t.Errorf("LoadBlob(missing) = %q, expected nil", got)
	}

	if err := store.SaveBlob("key", []byte("first")); err != nil {
		t.Fatalf("SaveBlob() failed: %v", err)
	}
	if err := store.SaveBlob("key", []byte("second")); err != nil {
		t.Fatalf("SaveBlob() overwrite failed: %v", err)
	}

	got, err = store.LoadBlob("key")
	if err != nil {
		t.Fatalf("LoadBlob() failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("LoadBlob() = %q, expected %q", got, "second")
	}
}

func TestProgressBackendRoundTrip(t *testing.T) {
	store := openTestStore(t)
	backend := store.ProgressBackend(ProgressKey)

	p := progress.Open(backend, nil)
	p.SelectCharacter(catalog.CharacterLani)
	p.RecordVictory(1, progress.RunStats{TimeElapsed: 12.5, Stars: 2, ObstaclesAvoided: 4, ObstaclesSpawned: 5}, nil)

	reloaded := progress.Open(store.ProgressBackend(ProgressKey), nil).Progress()
	if reloaded.SelectedCharacter != catalog.CharacterLani {
		t.Errorf("character = %q, expected lani", reloaded.SelectedCharacter)
	}
	if reloaded.UnlockedLevels != 2 {
		t.Errorf("unlocked = %d, expected 2", reloaded.UnlockedLevels)
	}
	best, ok := reloaded.Best(1)
	if !ok || best.BestStars != 2 || best.BestTime != 12.5 {
		t.Errorf("best = %+v, expected 2 stars in 12.5s", best)
	}
}

func TestRecordRun(t *testing.T) {
	store := openTestStore(t)

	err := store.RecordRun(engine.RunReport{
		LevelID:    3,
		Outcome:    engine.OutcomeVictory,
		Distance:   1500,
		Stats:      progress.RunStats{TimeElapsed: 30.25, ObstaclesAvoided: 9, ObstaclesSpawned: 10, Stars: 3, ShieldUsed: true},
		Difficulty: config.DifficultyHard,
		Character:  catalog.CharacterRogi,
	})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(3, 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() returned %d entries, expected 1", len(runs))
	}

	r := runs[0]
	if r.ID == "" {
		t.Error("run has no id")
	}
	if r.Outcome != engine.OutcomeVictory || r.Stars != 3 || !r.ShieldUsed {
		t.Errorf("run = %+v", r)
	}
	if r.TimeElapsed != 30.25 || r.Distance != 1500 || r.Avoided != 9 || r.Spawned != 10 {
		t.Errorf("run stats = %+v", r)
	}
	if r.Difficulty != "hard" || r.Character != "rogi" {
		t.Errorf("difficulty=%q character=%q", r.Difficulty, r.Character)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	entries := []RunEntry{
		{LevelID: 1, Outcome: engine.OutcomeVictory, TimeElapsed: 20, Stars: 2},
		{LevelID: 1, Outcome: engine.OutcomeVictory, TimeElapsed: 25, Stars: 3},
		{LevelID: 1, Outcome: engine.OutcomeVictory, TimeElapsed: 15, Stars: 3},
		{LevelID: 1, Outcome: engine.OutcomeCrash, TimeElapsed: 5},
		{LevelID: 2, Outcome: engine.OutcomeVictory, TimeElapsed: 1, Stars: 3},
	}
	for _, e := range entries {
		e.Difficulty = "normal"
		e.Character = "tayo"
		if _, err := store.SaveRun(e); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(1, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns() returned %d entries, expected 3", len(top))
	}

	expected := []float64{15, 25, 20}
	for i, want := range expected {
		if top[i].TimeElapsed != want {
			t.Errorf("TopRuns()[%d].TimeElapsed = %v, expected %v", i, top[i].TimeElapsed, want)
		}
	}

	limited, err := store.TopRuns(1, 1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("TopRuns(limit 1) returned %d entries", len(limited))
	}
}

func TestSaveRunKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunEntry{ID: "fixed", LevelID: 1, Outcome: engine.OutcomeCrash, Difficulty: "easy", Character: "gani"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed" {
		t.Errorf("SaveRun() id = %q, expected fixed", id)
	}

	if _, err := store.SaveRun(RunEntry{ID: "fixed", LevelID: 1, Outcome: engine.OutcomeCrash, Difficulty: "easy", Character: "gani"}); err == nil {
		t.Error("duplicate id accepted")
	}
}

func TestRecentRunsAllLevels(t *testing.T) {
	store := openTestStore(t)

	for level := 1; level <= 3; level++ {
		if _, err := store.SaveRun(RunEntry{LevelID: level, Outcome: engine.OutcomeCrash, Difficulty: "normal", Character: "tayo"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns(0, 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("RecentRuns(0) returned %d entries, expected 3", len(all))
	}
	// Newest first.
	if all[0].LevelID != 3 {
		t.Errorf("RecentRuns(0)[0].LevelID = %d, expected 3", all[0].LevelID)
	}
}

func TestLevelStats(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{LevelID: 1, Outcome: engine.OutcomeVictory, TimeElapsed: 20, Avoided: 4, Stars: 2},
		{LevelID: 1, Outcome: engine.OutcomeVictory, TimeElapsed: 18, Avoided: 6, Stars: 3},
		{LevelID: 1, Outcome: engine.OutcomeCrash, TimeElapsed: 3, Avoided: 2},
	}
	for _, r := range runs {
		r.Difficulty = "normal"
		r.Character = "tayo"
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.GetLevelStats(1)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}

	if stats.Runs != 3 || stats.Victories != 2 || stats.Crashes != 1 {
		t.Errorf("counts = %d/%d/%d, expected 3/2/1", stats.Runs, stats.Victories, stats.Crashes)
	}
	if stats.BestTime != 18 {
		t.Errorf("BestTime = %v, expected 18", stats.BestTime)
	}
	if stats.AvgAvoided != 4 {
		t.Errorf("AvgAvoided = %v, expected 4", stats.AvgAvoided)
	}

	empty, err := store.GetLevelStats(6)
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestTime != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	for _, level := range []int{1, 1, 2} {
		if _, err := store.SaveRun(RunEntry{LevelID: level, Outcome: engine.OutcomeCrash, Difficulty: "normal", Character: "tayo"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns(1); err != nil {
		t.Fatalf("ClearRuns(1) failed: %v", err)
	}
	if runs, _ := store.RecentRuns(1, 0); len(runs) != 0 {
		t.Errorf("level 1 still has %d runs", len(runs))
	}
	if runs, _ := store.RecentRuns(2, 0); len(runs) != 1 {
		t.Errorf("level 2 has %d runs, expected 1", len(runs))
	}

	if err := store.ClearRuns(0); err != nil {
		t.Fatalf("ClearRuns(0) failed: %v", err)
	}
	if runs, _ := store.RecentRuns(0, 0); len(runs) != 0 {
		t.Errorf("%d runs left after clearing all", len(runs))
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"/tmp/x.db", "/tmp/x.db"},
		{"~/game/x.db", filepath.Join(home, "game/x.db")},
	}
	for _, tc := range tests {
		got, err := ExpandPath(tc.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) failed: %v", tc.in, err)
		}
		if got != tc.expected {
			t.Errorf("ExpandPath(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
