package engine

import (
	"slices"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

// Snapshot is a read-only copy of everything presentation needs for one
// frame. Mutating it does not affect the engine.
type Snapshot struct {
	Phase      Phase
	LevelID    int
	LevelName  string
	Theme      catalog.Theme
	Difficulty config.Difficulty

	Lane           int
	Distance       float64
	FinishDistance float64
	Progress       float64 // Distance / FinishDistance in [0, 1]
	TimeElapsed    float64
	Speed          float64

	Obstacles []Obstacle
	PowerUps  []PowerUp

	FinishVisible bool
	FinishY       float64

	Crash     bool // Crash focus is set
	CrashLane int
	CrashY    float64

	CountdownValue int

	ShieldActive     bool
	ShieldUsed       bool
	ObstaclesAvoided int
	ObstaclesSpawned int

	LastRun            *progress.RunStats
	PendingAchievement string // Oldest undismissed unlock, empty if none

	UnlockedLevels    int
	SelectedCharacter catalog.CharacterID
	AudioEnabled      bool
}

// Snapshot returns the current presentation state.
func (e *Engine) Snapshot() Snapshot {
	p := e.store.Progress()
	s := Snapshot{
		Phase:      e.phase,
		LevelID:    e.level.ID,
		LevelName:  e.level.Name,
		Theme:      e.level.Theme,
		Difficulty: e.difficulty,

		Lane:           e.lane,
		Distance:       e.distance,
		FinishDistance: e.level.Distance,
		TimeElapsed:    e.elapsed,
		Speed:          e.speed,

		Obstacles: slices.Clone(e.obstacles),
		PowerUps:  slices.Clone(e.powerUps),

		FinishVisible: e.finishVisible,
		FinishY:       e.finishY,

		Crash:     e.hasCrash,
		CrashLane: e.crashLane,
		CrashY:    e.crashY,

		CountdownValue: e.countdownValue,

		ShieldActive:     e.shieldActive,
		ShieldUsed:       e.shieldUsed,
		ObstaclesAvoided: e.avoided,
		ObstaclesSpawned: e.spawned,

		UnlockedLevels:    p.UnlockedLevels,
		SelectedCharacter: p.SelectedCharacter,
		AudioEnabled:      p.AudioEnabled,
	}
	if e.level.Distance > 0 {
		s.Progress = e.distance / e.level.Distance
	}
	if e.lastRun != nil {
		run := *e.lastRun
		s.LastRun = &run
	}
	if len(e.pending) > 0 {
		s.PendingAchievement = e.pending[0]
	}
	return s
}
