package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

// Model is the Bubble Tea model for the game. The engine owns every phase,
// including the menus; the model only keeps menu cursors.
type Model struct {
	engine    *engine.Engine
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	logger    *log.Logger

	menuCursor     int
	levelCursor    int
	lastFrame      time.Time // Timestamp of the previous TickMsg
	quitting       bool
	openScoreboard bool // True if user picked Scores from the menu
}

// NewModel creates a new Bubble Tea model driving e.
func NewModel(e *engine.Engine, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		engine:    e,
		screen:    core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)), // Last row is the help bar
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		logger:    logger,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick advances the engine by the real time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := frameDelta(m.lastFrame, now)
	m.lastFrame = now

	res := m.engine.Tick(delta)
	for _, ev := range res.Events {
		switch ev.Kind {
		case engine.EventAchievement:
			m.logger.Info("achievement unlocked", "id", ev.ID)
		case engine.EventCrash, engine.EventVictory, engine.EventShieldAbsorb, engine.EventPowerUp:
			m.logger.Debug("run event", "event", ev.Kind, "value", ev.Value)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	return m, nil
}

// handleKey dispatches a key press according to the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionAudio:
		m.engine.ToggleAudio()
		return m, nil
	case core.ActionEasy:
		m.engine.SetDifficulty(config.DifficultyEasy)
		return m, nil
	case core.ActionNormal:
		m.engine.SetDifficulty(config.DifficultyNormal)
		return m, nil
	case core.ActionHard:
		m.engine.SetDifficulty(config.DifficultyHard)
		return m, nil
	}

	switch m.engine.Phase() {
	case engine.PhaseMenu:
		return m.handleMenu(action)
	case engine.PhaseLevelSelect:
		m.handleLevelSelect(action)
	case engine.PhasePlaying, engine.PhasePaused:
		m.handleRun(action)
	case engine.PhaseGameOver:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			m.engine.ResetRun()
		case core.ActionBack:
			m.engine.ShowLevelSelect()
		}
	case engine.PhaseVictory:
		m.handleVictory(action)
	}

	return m, nil
}

func (m Model) handleMenu(action core.Action) (tea.Model, tea.Cmd) {
	snap := m.engine.Snapshot()
	item := menuItems[m.menuCursor]

	switch action {
	case core.ActionUp:
		m.menuCursor = (m.menuCursor - 1 + len(menuItems)) % len(menuItems)
	case core.ActionDown:
		m.menuCursor = (m.menuCursor + 1) % len(menuItems)

	case core.ActionLeft, core.ActionRight:
		step := 1
		if action == core.ActionLeft {
			step = -1
		}
		switch item {
		case MenuCharacter:
			m.engine.SelectCharacter(nextCharacter(snap.SelectedCharacter, step))
		case MenuDifficulty:
			m.engine.SetDifficulty(nextDifficulty(snap.Difficulty, step))
		}

	case core.ActionConfirm:
		switch item {
		case MenuPlay:
			m.levelCursor = core.Clamp(snap.UnlockedLevels-1, 0, len(m.engine.Levels())-1)
			m.engine.ShowLevelSelect()
		case MenuCharacter:
			m.engine.SelectCharacter(nextCharacter(snap.SelectedCharacter, 1))
		case MenuDifficulty:
			m.engine.SetDifficulty(nextDifficulty(snap.Difficulty, 1))
		case MenuAudio:
			m.engine.ToggleAudio()
		case MenuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) handleLevelSelect(action core.Action) {
	levels := m.engine.Levels()
	switch action {
	case core.ActionUp:
		m.levelCursor = (m.levelCursor - 1 + len(levels)) % len(levels)
	case core.ActionDown:
		m.levelCursor = (m.levelCursor + 1) % len(levels)
	case core.ActionConfirm:
		m.engine.StartLevel(levels[m.levelCursor].ID)
	case core.ActionBack:
		m.engine.ShowMenu()
	}
}

func (m *Model) handleRun(action core.Action) {
	switch action {
	case core.ActionLeft:
		m.engine.MoveLeft()
	case core.ActionRight:
		m.engine.MoveRight()
	case core.ActionPause:
		m.engine.TogglePause()
	case core.ActionRestart:
		m.engine.ResetRun()
	case core.ActionBack:
		if m.engine.Phase() == engine.PhasePlaying {
			m.engine.Pause()
		} else {
			m.engine.ShowLevelSelect()
		}
	}
}

func (m *Model) handleVictory(action core.Action) {
	snap := m.engine.Snapshot()
	switch action {
	case core.ActionConfirm:
		if snap.PendingAchievement != "" {
			m.engine.DismissAchievement()
			return
		}
		next := snap.LevelID + 1
		if m.hasLevel(next) {
			m.engine.StartLevel(next)
			m.levelCursor = m.levelIndex(next)
			return
		}
		m.engine.ShowLevelSelect()
	case core.ActionRestart:
		m.engine.ResetRun()
	case core.ActionBack:
		m.engine.ShowLevelSelect()
	}
}

func (m Model) hasLevel(id int) bool {
	return m.levelIndex(id) >= 0
}

func (m Model) levelIndex(id int) int {
	for i, lvl := range m.engine.Levels() {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.openScoreboard {
		return ""
	}

	snap := m.engine.Snapshot()
	switch snap.Phase {
	case engine.PhaseMenu:
		drawMenu(m.screen, m.menuCursor, snap)
	case engine.PhaseLevelSelect:
		drawLevelSelect(m.screen, m.levelCursor, m.engine.Levels(), m.engine.Progress())
	default:
		drawRun(m.screen, snap, m.engine.Tuning())
	}

	playerColor := ""
	if c := catalog.GetCharacter(snap.SelectedCharacter); c != nil {
		playerColor = c.Color
	}
	return RenderThemedScreen(m.screen, snap.Theme, playerColor) + "\n" + m.help.View(m.keyMapper.Keys())
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m Model) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Result holds the outcome of a game session.
type Result struct {
	Config          core.RuntimeConfig
	WantsScoreboard bool
}

// Run starts the Bubble Tea program driving e until the player quits or
// asks for the scoreboard.
func Run(e *engine.Engine, cfg core.RuntimeConfig, logger *log.Logger) (Result, error) {
	model := NewModel(e, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return Result{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Result{Config: cfg}, nil
	}
	return Result{Config: m.Config(), WantsScoreboard: m.WantsScoreboard()}, nil
}
