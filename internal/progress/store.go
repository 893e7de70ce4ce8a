package progress

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
)

// Store owns the in-memory Progress and writes it through a Backend after
// every mutation. The in-memory copy is the source of truth: backend
// failures are logged and otherwise ignored.
//
// Store is not safe for concurrent use.
type Store struct {
	backend Backend
	logger  *log.Logger
	p       Progress
}

// Open loads progress from the backend, falling back to defaults when the
// blob is absent, unreadable or corrupt. Migrated data is written back
// immediately. backend may be nil for a purely in-memory store.
func Open(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if backend == nil {
		backend = NewMemoryBackend(nil)
	}

	s := &Store{backend: backend, logger: logger}

	data, err := backend.Load()
	if err != nil {
		logger.Warn("could not load progress, using defaults", "error", err)
		data = nil
	}

	p, outcome := Decode(data)
	s.p = p
	logger.Debug("progress loaded", "outcome", outcome, "unlocked", p.UnlockedLevels)

	switch outcome {
	case OutcomeCorrupt:
		logger.Warn("stored progress is malformed, using defaults")
	case OutcomeMigrated:
		logger.Info("migrated progress to new distance profile", "version", CurrentVersion)
		s.save()
	}

	return s
}

// Progress returns a copy of the current state.
func (s *Store) Progress() Progress {
	return s.p.Clone()
}

// SelectCharacter stores the selected bus. Unknown ids are ignored.
func (s *Store) SelectCharacter(id catalog.CharacterID) bool {
	if !catalog.IsCharacter(id) {
		return false
	}
	s.p.SelectedCharacter = id
	s.save()
	return true
}

// SetAudioEnabled stores the audio preference.
func (s *Store) SetAudioEnabled(enabled bool) {
	s.p.AudioEnabled = enabled
	s.save()
}

// ToggleAudio flips the audio preference and returns the new value.
func (s *Store) ToggleAudio() bool {
	s.SetAudioEnabled(!s.p.AudioEnabled)
	return s.p.AudioEnabled
}

// SetDifficulty stores the difficulty preference. Invalid values are ignored.
func (s *Store) SetDifficulty(d config.Difficulty) {
	if !d.Valid() {
		return
	}
	s.p.Difficulty = d
	s.save()
}

// UnlockLevel raises the unlocked level count to at least n and returns the
// resulting count. The count never decreases.
func (s *Store) UnlockLevel(n int) int {
	if n > s.p.UnlockedLevels {
		s.p.UnlockedLevels = n
		s.save()
	}
	return s.p.UnlockedLevels
}

// AddAchievements appends the ids not yet unlocked and returns those added.
func (s *Store) AddAchievements(ids []string) []string {
	added := s.p.addAchievements(ids)
	if len(added) > 0 {
		s.save()
	}
	return added
}

// RecordBest merges a run into the level's best stats and returns the
// merged result. Each field only ever improves.
func (s *Store) RecordBest(levelID int, run RunStats) BestStats {
	best := s.mergeBest(levelID, run)
	s.save()
	return best
}

func (s *Store) mergeBest(levelID int, run RunStats) BestStats {
	var prev *BestStats
	if b, ok := s.p.BestByLevel[levelID]; ok {
		prev = &b
	}
	best := MergeBest(prev, run)
	if s.p.BestByLevel == nil {
		s.p.BestByLevel = map[int]BestStats{}
	}
	s.p.BestByLevel[levelID] = best
	return best
}

// Victory is the outcome of RecordVictory.
type Victory struct {
	Best            BestStats // Merged best for the level
	NewAchievements []string  // Ids unlocked by this victory
	Progress        Progress  // State after the victory
}

// Evaluator returns achievement ids earned given the post-victory progress.
type Evaluator func(p Progress) []string

// RecordVictory applies a completed run as one transaction: merge the
// level's best stats, unlock the next level, evaluate achievements against
// the result and persist once. evaluate may be nil.
func (s *Store) RecordVictory(levelID int, run RunStats, evaluate Evaluator) Victory {
	best := s.mergeBest(levelID, run)
	s.p.UnlockedLevels = max(s.p.UnlockedLevels, levelID+1)

	var added []string
	if evaluate != nil {
		added = s.p.addAchievements(evaluate(s.p.Clone()))
	}

	s.save()
	return Victory{Best: best, NewAchievements: added, Progress: s.p.Clone()}
}

// Reset restores defaults and persists them.
func (s *Store) Reset() {
	s.p = Default()
	s.save()
}

// save writes the whole blob. Failures leave the in-memory state intact.
func (s *Store) save() {
	data, err := Encode(s.p)
	if err != nil {
		s.logger.Warn("could not encode progress", "error", err)
		return
	}
	if err := s.backend.Save(data); err != nil {
		s.logger.Warn("could not save progress", "error", err)
	}
}
