package achievements

import (
	"slices"
	"testing"

	"github.com/vovakirdan/lane-runner/internal/progress"
)

var testLevels = []int{1, 2, 3}

func TestEvaluateFirstWin(t *testing.T) {
	p := progress.Default()
	p.UnlockedLevels = 2

	got := Evaluate(nil, progress.RunStats{Stars: 1, ObstaclesSpawned: 4, ObstaclesAvoided: 1}, p, testLevels)
	if !slices.Equal(got, []string{FirstWin}) {
		t.Errorf("Evaluate() = %v, expected [first_win]", got)
	}
}

func TestEvaluatePerfectDodge(t *testing.T) {
	tests := []struct {
		name     string
		spawned  int
		avoided  int
		unlocked []string
		expected bool
	}{
		{"all avoided", 5, 5, nil, true},
		{"more avoided than spawned", 5, 6, nil, true},
		{"one missed", 5, 4, nil, false},
		{"nothing spawned", 0, 0, nil, false},
		{"already unlocked", 5, 5, []string{PerfectDodge}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			run := progress.RunStats{Stars: 1, ObstaclesSpawned: tc.spawned, ObstaclesAvoided: tc.avoided}
			got := Evaluate(tc.unlocked, run, progress.Default(), testLevels)
			if slices.Contains(got, PerfectDodge) != tc.expected {
				t.Errorf("perfect_dodge in %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEvaluateRunFlags(t *testing.T) {
	run := progress.RunStats{Stars: 3, ShieldUsed: true, ObstaclesSpawned: 2, ObstaclesAvoided: 1}
	got := Evaluate([]string{FirstWin}, run, progress.Default(), testLevels)

	if !slices.Equal(got, []string{TripleStar, ShieldSave}) {
		t.Errorf("Evaluate() = %v, expected [triple_star shield_save]", got)
	}
}

func TestEvaluateCampaignRules(t *testing.T) {
	p := progress.Default()
	p.UnlockedLevels = 4
	for _, id := range testLevels {
		p.BestByLevel[id] = progress.BestStats{BestTime: 10, BestStars: 3}
	}

	got := Evaluate([]string{FirstWin}, progress.RunStats{Stars: 2}, p, testLevels)
	if !slices.Contains(got, AllLevels) || !slices.Contains(got, AllStars) {
		t.Errorf("Evaluate() = %v, expected all_levels and all_stars", got)
	}

	p.BestByLevel[2] = progress.BestStats{BestTime: 10, BestStars: 2}
	p.UnlockedLevels = 3
	got = Evaluate([]string{FirstWin}, progress.RunStats{Stars: 2}, p, testLevels)
	if len(got) != 0 {
		t.Errorf("Evaluate() = %v, expected nothing new", got)
	}
}

func TestEvaluateNeverRepeats(t *testing.T) {
	all := make([]string, 0, len(Definitions))
	for _, d := range Definitions {
		all = append(all, d.ID)
	}

	p := progress.Default()
	p.UnlockedLevels = 10
	run := progress.RunStats{Stars: 3, ShieldUsed: true, ObstaclesSpawned: 1, ObstaclesAvoided: 1}
	if got := Evaluate(all, run, p, testLevels); len(got) != 0 {
		t.Errorf("Evaluate() with everything unlocked = %v", got)
	}
}

func TestEvaluatorUsesProgressUnlocks(t *testing.T) {
	p := progress.Default()
	p.UnlockedAchievements = []string{FirstWin}

	got := Evaluator(progress.RunStats{Stars: 3}, testLevels)(p)
	if !slices.Equal(got, []string{TripleStar}) {
		t.Errorf("Evaluator() = %v, expected [triple_star]", got)
	}
}

func TestDefinitionsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Definitions {
		if seen[d.ID] {
			t.Errorf("duplicate id %q", d.ID)
		}
		seen[d.ID] = true
		if Get(d.ID) == nil {
			t.Errorf("Get(%q) returned nil", d.ID)
		}
	}
	if Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}
}
