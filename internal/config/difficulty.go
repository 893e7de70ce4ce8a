package config

import (
	"fmt"
	"strings"
)

// Difficulty is the player-selected difficulty setting.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// DefaultDifficulty is used when no valid preference is stored.
const DefaultDifficulty = DifficultyNormal

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// Profile holds the tuning a difficulty applies to a run.
type Profile struct {
	SpeedMultiplier         float64 // Applied on top of the level speed
	SpawnCooldownMultiplier float64 // Applied to the level spawn interval
	LaneClearThreshold      float64 // Pixels an obstacle must travel before its lane is reusable
}

// Profile returns the tuning for d. Unknown values fall back to normal.
func (d Difficulty) Profile() Profile {
	switch d {
	case DifficultyEasy:
		return Profile{SpeedMultiplier: 0.85, SpawnCooldownMultiplier: 2.6, LaneClearThreshold: 400}
	case DifficultyHard:
		return Profile{SpeedMultiplier: 1.12, SpawnCooldownMultiplier: 1.1, LaneClearThreshold: 260}
	default:
		return Profile{SpeedMultiplier: 1, SpawnCooldownMultiplier: 1.7, LaneClearThreshold: 340}
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// String returns the lowercase name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DefaultDifficulty, fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("config: cannot marshal difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
