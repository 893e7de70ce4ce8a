package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/progress"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardLoadsRuns(t *testing.T) {
	store := openTestStore(t)
	for _, elapsed := range []float64{30, 20} {
		err := store.RecordRun(engine.RunReport{
			LevelID: 1,
			Outcome: engine.OutcomeVictory,
			Stats:   progress.RunStats{Stars: 2, TimeElapsed: elapsed, ObstaclesAvoided: 4, ObstaclesSpawned: 5},
		})
		if err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, catalog.Levels, 100, 30)
	if len(m.runs) != 2 {
		t.Fatalf("loaded %d runs, expected 2", len(m.runs))
	}
	if m.runs[0].TimeElapsed != 20 {
		t.Errorf("first run time = %v, expected the fastest (20)", m.runs[0].TimeElapsed)
	}
	if m.stats == nil || m.stats.Runs != 2 {
		t.Errorf("stats = %+v, expected 2 runs", m.stats)
	}
}

func TestScoreboardLevelNavigation(t *testing.T) {
	m := NewScoreboardModel(nil, catalog.Levels, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after tab, expected 1", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.cursor != len(catalog.Levels)-1 {
		t.Errorf("cursor = %d, expected wrap to %d", m.cursor, len(catalog.Levels)-1)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, catalog.Levels, 60, 20)
	if m.wide() {
		t.Error("narrow layout should hide the sidebar")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestScoreboardViewEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, catalog.Levels, 100, 30)
	if out := m.View(); out == "" {
		t.Error("View is empty")
	}
}

func TestScoreboardSelectLevel(t *testing.T) {
	m := NewScoreboardModel(nil, catalog.Levels, 100, 30)

	m.SelectLevel(3)
	if got := m.levels[m.cursor].ID; got != 3 {
		t.Errorf("selected level %d, expected 3", got)
	}

	m.SelectLevel(999)
	if got := m.levels[m.cursor].ID; got != 3 {
		t.Errorf("unknown id moved cursor to level %d", got)
	}
}

func TestScoreboardRecentView(t *testing.T) {
	store := openTestStore(t)
	if err := store.RecordRun(engine.RunReport{LevelID: 1, Outcome: engine.OutcomeCrash, Distance: 120}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	m := NewScoreboardModel(store, catalog.Levels, 100, 30)
	if len(m.runs) != 0 {
		t.Fatalf("best view lists %d runs, expected crashes to be left out", len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(ScoreboardModel)
	if m.view != viewRecent {
		t.Fatal("v did not switch to the recent view")
	}
	if len(m.runs) != 1 || m.runs[0].Outcome != engine.OutcomeCrash {
		t.Fatalf("recent runs = %+v, expected the crash", m.runs)
	}
	if m.detail() == "" {
		t.Error("detail line empty with a run highlighted")
	}
}
