package engine

import (
	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeCrash   Outcome = "crash"
)

// RunReport describes a finished run for history recording.
type RunReport struct {
	LevelID    int
	Outcome    Outcome
	Distance   float64 // Meters traveled
	Stats      progress.RunStats
	Difficulty config.Difficulty
	Character  catalog.CharacterID
}

// RunRecorder receives every finished run. Errors are logged by the engine
// and otherwise ignored.
type RunRecorder interface {
	RecordRun(r RunReport) error
}
