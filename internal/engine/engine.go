// Package engine implements the run simulation: a frame-stepped state
// machine that moves traffic toward the player, resolves collisions and
// power-ups, grades finished runs and reports results to the progress store.
//
// The engine never reads a clock or starts goroutines. The caller pumps
// Tick with the elapsed frame time and issues commands between ticks, all
// from one goroutine.
package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

// Engine owns the live state of one run and the navigation phase around it.
type Engine struct {
	cfg      config.Tuning
	levels   []catalog.Level
	store    *progress.Store
	recorder RunRecorder
	logger   *log.Logger
	seed     int64
	spawn    *spawner

	phase      Phase
	level      catalog.Level
	difficulty config.Difficulty

	lane      int
	distance  float64 // Meters, within [0, level.Distance]
	elapsed   float64 // Seconds spent playing
	speed     float64 // Meters per second
	obstacles []Obstacle
	powerUps  []PowerUp
	avoided   int
	spawned   int

	shieldActive bool
	shieldUsed   bool

	countdownValue int
	countdownTimer float64 // Milliseconds left in the current step

	crashTimer float64 // Milliseconds left in the crash animation
	crashLane  int
	crashY     float64
	hasCrash   bool

	finishVisible bool
	finishY       float64

	lastRun *progress.RunStats
	pending []string // Achievement notifications not yet dismissed
}

// Option configures an Engine.
type Option func(*Engine)

// WithTuning replaces the default tuning.
func WithTuning(t config.Tuning) Option {
	return func(e *Engine) { e.cfg = t }
}

// WithSeed sets the random seed for spawning.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger sets the logger. Nil discards.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder registers a sink for finished runs.
func WithRecorder(r RunRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithCatalog replaces the level catalog. Empty catalogs are ignored.
func WithCatalog(levels []catalog.Level) Option {
	return func(e *Engine) {
		if len(levels) > 0 {
			e.levels = levels
		}
	}
}

// New creates an engine in the menu phase with the first level loaded.
// store may be nil for an in-memory progress store.
func New(store *progress.Store, opts ...Option) *Engine {
	e := &Engine{
		cfg:    config.DefaultTuning(),
		levels: catalog.Levels,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if store == nil {
		store = progress.Open(nil, e.logger)
	}
	e.store = store
	e.difficulty = store.Progress().Difficulty
	e.spawn = newSpawner(e.seed, &e.cfg)

	e.phase = PhaseMenu
	e.loadLevel(e.levels[0])
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Tuning returns the tuning the engine runs with.
func (e *Engine) Tuning() config.Tuning {
	return e.cfg
}

// Levels returns the level catalog.
func (e *Engine) Levels() []catalog.Level {
	return e.levels
}

// Progress returns a copy of the persisted progress.
func (e *Engine) Progress() progress.Progress {
	return e.store.Progress()
}

// Difficulty returns the active difficulty.
func (e *Engine) Difficulty() config.Difficulty {
	return e.difficulty
}

func (e *Engine) findLevel(id int) (catalog.Level, bool) {
	for _, lvl := range e.levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return catalog.Level{}, false
}

func (e *Engine) levelIDs() []int {
	ids := make([]int, len(e.levels))
	for i, lvl := range e.levels {
		ids[i] = lvl.ID
	}
	return ids
}

// speedFor returns the run speed in m/s for the current level at d.
func (e *Engine) speedFor(d config.Difficulty) float64 {
	return e.level.BaseSpeed * e.cfg.Physics.SpeedMultiplier * d.Profile().SpeedMultiplier
}

// cooldownFor returns the obstacle spawn cooldown in seconds at d.
func (e *Engine) cooldownFor(d config.Difficulty) float64 {
	return e.level.Frequency.SpawnInterval() * d.Profile().SpawnCooldownMultiplier
}

// loadLevel reinitializes every piece of run state for lvl.
func (e *Engine) loadLevel(lvl catalog.Level) {
	e.level = lvl
	e.lane = 1
	e.distance = 0
	e.elapsed = 0
	e.speed = e.speedFor(e.difficulty)
	e.obstacles = nil
	e.powerUps = nil
	e.avoided = 0
	e.spawned = 0
	e.shieldActive = false
	e.shieldUsed = false
	e.countdownValue = e.cfg.Timing.CountdownFrom
	e.countdownTimer = e.cfg.Timing.CountdownStepMs
	e.clearCrash()
	e.finishVisible = false
	e.finishY = 0
	e.spawn.reset(e.cooldownFor(e.difficulty))
}

func (e *Engine) clearCrash() {
	e.crashTimer = 0
	e.crashLane = 0
	e.crashY = 0
	e.hasCrash = false
}

// StartLevel begins a run of the level with the given id. Unknown and
// locked levels are ignored.
func (e *Engine) StartLevel(id int) {
	lvl, ok := e.findLevel(id)
	if !ok || !e.store.Progress().IsUnlocked(id) {
		e.logger.Debug("start level ignored", "level", id)
		return
	}
	e.loadLevel(lvl)
	e.phase = PhaseCountdown
	e.logger.Debug("level started", "level", id, "difficulty", e.difficulty, "speed", e.speed)
}

// ResetRun restarts the current level.
func (e *Engine) ResetRun() {
	e.loadLevel(e.level)
	e.phase = PhaseCountdown
	e.logger.Debug("run reset", "level", e.level.ID)
}

// MoveLeft shifts the player one lane left while playing.
func (e *Engine) MoveLeft() {
	if e.phase != PhasePlaying {
		return
	}
	e.lane = clampLane(e.lane - 1)
}

// MoveRight shifts the player one lane right while playing.
func (e *Engine) MoveRight() {
	if e.phase != PhasePlaying {
		return
	}
	e.lane = clampLane(e.lane + 1)
}

// Pause freezes a live run.
func (e *Engine) Pause() {
	if e.phase == PhasePlaying {
		e.phase = PhasePaused
	}
}

// Resume continues a paused run.
func (e *Engine) Resume() {
	if e.phase == PhasePaused {
		e.phase = PhasePlaying
	}
}

// TogglePause pauses a live run or resumes a paused one.
func (e *Engine) TogglePause() {
	switch e.phase {
	case PhasePlaying:
		e.Pause()
	case PhasePaused:
		e.Resume()
	}
}

// SetDifficulty stores the difficulty preference. During a live run the
// speed is recomputed and the spawn timer keeps the same fraction of its
// cooldown.
func (e *Engine) SetDifficulty(d config.Difficulty) {
	if !d.Valid() {
		return
	}
	prev := e.difficulty
	e.difficulty = d
	e.store.SetDifficulty(d)

	e.speed = e.speedFor(d)
	switch e.phase {
	case PhasePlaying, PhasePaused:
		e.spawn.rescale(e.cooldownFor(prev), e.cooldownFor(d))
		e.logger.Debug("difficulty changed mid-run", "from", prev, "to", d, "timer", e.spawn.obstacleTimer)
	case PhaseCountdown:
		// Timer has not started running yet.
		e.spawn.obstacleTimer = e.cooldownFor(d)
	}
}

// navigable reports whether the phase may be left by menu navigation.
func (e *Engine) navigable() bool {
	switch e.phase {
	case PhaseMenu, PhaseLevelSelect, PhaseVictory, PhaseGameOver, PhasePaused:
		return true
	}
	return false
}

// ShowMenu returns to the main menu. A paused run is abandoned.
func (e *Engine) ShowMenu() {
	if e.navigable() {
		e.phase = PhaseMenu
	}
}

// ShowLevelSelect opens the level list. A paused run is abandoned.
func (e *Engine) ShowLevelSelect() {
	if e.navigable() {
		e.phase = PhaseLevelSelect
	}
}

// SelectCharacter stores the selected bus. Unknown ids are ignored.
func (e *Engine) SelectCharacter(id catalog.CharacterID) bool {
	return e.store.SelectCharacter(id)
}

// ToggleAudio flips the audio preference and returns the new value.
func (e *Engine) ToggleAudio() bool {
	return e.store.ToggleAudio()
}

// DismissAchievement drops the oldest pending achievement notification.
func (e *Engine) DismissAchievement() {
	if len(e.pending) > 0 {
		e.pending = e.pending[1:]
	}
}
