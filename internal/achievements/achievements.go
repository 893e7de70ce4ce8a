// Package achievements defines the unlockable achievements and evaluates
// which ones a finished run earns.
package achievements

import (
	"slices"

	"github.com/vovakirdan/lane-runner/internal/progress"
)

// Achievement ids. These are persisted and must not change.
const (
	FirstWin     = "first_win"
	PerfectDodge = "perfect_dodge"
	TripleStar   = "triple_star"
	ShieldSave   = "shield_save"
	AllLevels    = "all_levels"
	AllStars     = "all_stars"
)

// Definition describes one achievement.
type Definition struct {
	ID          string
	Name        string
	Description string
}

// Definitions lists every achievement in evaluation and display order.
var Definitions = []Definition{
	{ID: FirstWin, Name: "First Win!", Description: "Complete any level"},
	{ID: PerfectDodge, Name: "Perfect Dodge", Description: "Avoid all obstacles in a level"},
	{ID: TripleStar, Name: "Triple Star", Description: "Get 3 stars on any level"},
	{ID: ShieldSave, Name: "Shield Saver", Description: "Block a collision with a shield"},
	{ID: AllLevels, Name: "Road Warrior", Description: "Complete every level"},
	{ID: AllStars, Name: "Superstar", Description: "Get 3 stars on every level"},
}

// Get returns the definition for id, or nil.
func Get(id string) *Definition {
	for i := range Definitions {
		if Definitions[i].ID == id {
			return &Definitions[i]
		}
	}
	return nil
}

// Evaluate returns the achievements earned by a victorious run that are not
// already in unlocked. p is the progress after the victory has been applied
// and levelIDs is the campaign. Evaluation is pure and never revokes.
func Evaluate(unlocked []string, run progress.RunStats, p progress.Progress, levelIDs []int) []string {
	earned := map[string]bool{
		FirstWin:     true,
		PerfectDodge: run.ObstaclesSpawned > 0 && run.ObstaclesAvoided >= run.ObstaclesSpawned,
		TripleStar:   run.Stars == 3,
		ShieldSave:   run.ShieldUsed,
		AllLevels:    p.UnlockedLevels > len(levelIDs),
		AllStars:     allThreeStars(p, levelIDs),
	}

	var newly []string
	for _, def := range Definitions {
		if earned[def.ID] && !slices.Contains(unlocked, def.ID) {
			newly = append(newly, def.ID)
		}
	}
	return newly
}

// Evaluator binds a run to Evaluate for use with progress.Store.RecordVictory.
func Evaluator(run progress.RunStats, levelIDs []int) progress.Evaluator {
	return func(p progress.Progress) []string {
		return Evaluate(p.UnlockedAchievements, run, p, levelIDs)
	}
}

func allThreeStars(p progress.Progress, levelIDs []int) bool {
	if len(levelIDs) == 0 {
		return false
	}
	for _, id := range levelIDs {
		best, ok := p.BestByLevel[id]
		if !ok || best.BestStars < 3 {
			return false
		}
	}
	return true
}
