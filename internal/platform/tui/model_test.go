package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

func newTestEngine() *engine.Engine {
	store := progress.Open(progress.NewMemoryBackend(nil), nil)
	return engine.New(store, engine.WithSeed(7))
}

func newTestModel() (Model, *engine.Engine) {
	e := newTestEngine()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	return NewModel(e, cfg, nil), e
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelMenuToCountdown(t *testing.T) {
	m, e := newTestModel()

	if e.Phase() != engine.PhaseMenu {
		t.Fatalf("initial phase = %v, expected menu", e.Phase())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if e.Phase() != engine.PhaseLevelSelect {
		t.Fatalf("after enter: phase = %v, expected levelSelect", e.Phase())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if e.Phase() != engine.PhaseCountdown {
		t.Fatalf("after second enter: phase = %v, expected countdown", e.Phase())
	}
	if m.View() == "" {
		t.Error("View is empty during countdown")
	}
}

func TestModelTicksAdvanceEngine(t *testing.T) {
	m, e := newTestModel()
	e.StartLevel(1)

	now := time.Unix(1000, 0)
	m, cmd := send(t, m, TickMsg(now))
	if cmd == nil {
		t.Fatal("tick did not schedule the next frame")
	}
	for i := 0; i < 40 && e.Phase() == engine.PhaseCountdown; i++ {
		now = now.Add(80 * time.Millisecond)
		m, _ = send(t, m, TickMsg(now))
	}
	if e.Phase() != engine.PhasePlaying {
		t.Fatalf("phase = %v, expected playing after the countdown", e.Phase())
	}

	now = now.Add(100 * time.Millisecond)
	send(t, m, TickMsg(now))
	if d := e.Snapshot().Distance; d <= 0 {
		t.Errorf("distance = %v, expected progress", d)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel()

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q did not return a command")
	}
	if !m.quitting {
		t.Error("model not quitting after q")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelScoresItem(t *testing.T) {
	m, _ := newTestModel()

	for i := 0; i < int(MenuScores); i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.WantsScoreboard() {
		t.Error("selecting Scores should quit to the scoreboard")
	}
}

func TestModelDifficultyKeys(t *testing.T) {
	m, e := newTestModel()

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if e.Difficulty() != config.DifficultyHard {
		t.Errorf("difficulty = %v, expected hard", e.Difficulty())
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if e.Difficulty() != config.DifficultyEasy {
		t.Errorf("difficulty = %v, expected easy", e.Difficulty())
	}
}

func TestModelMenuCyclesCharacter(t *testing.T) {
	m, e := newTestModel()
	before := e.Snapshot().SelectedCharacter

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}) // Bus entry
	send(t, m, tea.KeyMsg{Type: tea.KeyRight})

	if after := e.Snapshot().SelectedCharacter; after == before {
		t.Errorf("character still %q after cycling", after)
	}
}

func TestModelEscPausesThenLeaves(t *testing.T) {
	m, e := newTestModel()
	e.StartLevel(1)
	for i := 0; i < 40 && e.Phase() == engine.PhaseCountdown; i++ {
		e.Tick(80)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if e.Phase() != engine.PhasePaused {
		t.Fatalf("phase = %v, expected paused", e.Phase())
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if e.Phase() != engine.PhaseLevelSelect {
		t.Errorf("phase = %v, expected levelSelect", e.Phase())
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel()

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	cfg := m.Config()
	if cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d, expected 100x40", cfg.ScreenW, cfg.ScreenH)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 100x39", m.screen.Width(), m.screen.Height())
	}
}
