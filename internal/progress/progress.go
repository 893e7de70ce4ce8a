// Package progress holds the cross-run player state: unlocked levels, best
// results per level, settings and achievements. State lives in memory and is
// written through a Backend as one versioned blob after every change.
package progress

import (
	"maps"
	"slices"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
)

// CurrentVersion is the distance-profile schema version written by Encode.
// Best times recorded under an older version are not comparable and are
// dropped on load.
const CurrentVersion = 2

// RunStats summarizes one completed run.
type RunStats struct {
	TimeElapsed      float64 // Seconds
	ObstaclesAvoided int
	ObstaclesSpawned int
	Stars            int // 1 to 3
	ShieldUsed       bool
}

// AvoidedRate returns avoided/spawned, or 1 when nothing spawned.
func (r RunStats) AvoidedRate() float64 {
	if r.ObstaclesSpawned <= 0 {
		return 1
	}
	return float64(r.ObstaclesAvoided) / float64(r.ObstaclesSpawned)
}

// BestStats is the best result recorded for a level. Each field improves
// independently.
type BestStats struct {
	BestTime    float64 `json:"bestTime"`
	BestStars   int     `json:"bestStars"`
	BestAvoided int     `json:"bestAvoided"`
}

// MergeBest folds a run into the previous best. prev may be nil.
func MergeBest(prev *BestStats, run RunStats) BestStats {
	if prev == nil {
		return BestStats{
			BestTime:    run.TimeElapsed,
			BestStars:   run.Stars,
			BestAvoided: run.ObstaclesAvoided,
		}
	}
	return BestStats{
		BestTime:    min(prev.BestTime, run.TimeElapsed),
		BestStars:   max(prev.BestStars, run.Stars),
		BestAvoided: max(prev.BestAvoided, run.ObstaclesAvoided),
	}
}

// Progress is the persisted cross-run state.
type Progress struct {
	UnlockedLevels       int
	SelectedCharacter    catalog.CharacterID
	BestByLevel          map[int]BestStats
	AudioEnabled         bool
	Difficulty           config.Difficulty
	UnlockedAchievements []string
	Version              int
}

// Default returns the state of a fresh install.
func Default() Progress {
	return Progress{
		UnlockedLevels:    1,
		SelectedCharacter: catalog.DefaultCharacter,
		BestByLevel:       map[int]BestStats{},
		AudioEnabled:      true,
		Difficulty:        config.DefaultDifficulty,
		Version:           CurrentVersion,
	}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	out := p
	out.BestByLevel = maps.Clone(p.BestByLevel)
	if out.BestByLevel == nil {
		out.BestByLevel = map[int]BestStats{}
	}
	out.UnlockedAchievements = slices.Clone(p.UnlockedAchievements)
	return out
}

// HasAchievement reports whether id is already unlocked.
func (p Progress) HasAchievement(id string) bool {
	return slices.Contains(p.UnlockedAchievements, id)
}

// Best returns the best stats for a level and whether any exist.
func (p Progress) Best(levelID int) (BestStats, bool) {
	b, ok := p.BestByLevel[levelID]
	return b, ok
}

// IsUnlocked reports whether the level with the given ID may be played.
func (p Progress) IsUnlocked(levelID int) bool {
	return levelID >= 1 && levelID <= p.UnlockedLevels
}

// addAchievements appends ids not yet present and returns the ones added.
func (p *Progress) addAchievements(ids []string) []string {
	var added []string
	for _, id := range ids {
		if id == "" || p.HasAchievement(id) {
			continue
		}
		p.UnlockedAchievements = append(p.UnlockedAchievements, id)
		added = append(added, id)
	}
	return added
}
