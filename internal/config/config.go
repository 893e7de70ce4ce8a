// Package config provides YAML-based engine tuning and the difficulty
// profiles for the game.
package config

import "fmt"

// Tuning contains every numeric constant the run engine depends on.
// Distances are meters, positions are playfield pixels, times are
// milliseconds or seconds as named.
type Tuning struct {
	Physics   PhysicsTuning   `yaml:"physics"`
	Playfield PlayfieldTuning `yaml:"playfield"`
	Hitbox    HitboxTuning    `yaml:"hitbox"`
	Timing    TimingTuning    `yaml:"timing"`
	Spawn     SpawnTuning     `yaml:"spawn"`
	PowerUps  PowerUpTuning   `yaml:"powerups"`
	Finish    FinishTuning    `yaml:"finish"`
	Scoring   ScoringTuning   `yaml:"scoring"`
}

// PhysicsTuning defines frame clamping and unit conversion.
type PhysicsTuning struct {
	MaxFrameDeltaMs float64 `yaml:"max_frame_delta_ms"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Level base speed to m/s
	PixelsPerMeter  float64 `yaml:"pixels_per_meter"`
}

// PlayfieldTuning defines the vertical geometry of the road.
type PlayfieldTuning struct {
	Height             float64 `yaml:"height"`
	PlayerHeight       float64 `yaml:"player_height"`
	PlayerBottomOffset float64 `yaml:"player_bottom_offset"`
	OffscreenY         float64 `yaml:"offscreen_y"` // Entities at or past this Y are dropped
	AvoidLine          float64 `yaml:"avoid_line"`  // Fraction of player height
}

// PlayerY returns the top edge of the player sprite.
func (p PlayfieldTuning) PlayerY() float64 {
	return p.Height - p.PlayerBottomOffset - p.PlayerHeight
}

// PlayerMidY returns the vertical midpoint of the player sprite.
func (p PlayfieldTuning) PlayerMidY() float64 {
	return p.PlayerY() + p.PlayerHeight*0.5
}

// AvoidY returns the line an obstacle's bottom edge must cross to count as
// avoided.
func (p PlayfieldTuning) AvoidY() float64 {
	return p.PlayerY() + p.PlayerHeight*p.AvoidLine
}

// HitboxTuning defines the inset fractions applied to sprite bounds.
type HitboxTuning struct {
	PlayerTop      float64 `yaml:"player_top"`
	PlayerBottom   float64 `yaml:"player_bottom"`
	ObstacleTop    float64 `yaml:"obstacle_top"`
	ObstacleBottom float64 `yaml:"obstacle_bottom"`
}

// TimingTuning defines the fixed-duration phases.
type TimingTuning struct {
	CountdownFrom   int     `yaml:"countdown_from"`
	CountdownStepMs float64 `yaml:"countdown_step_ms"`
	CrashDurationMs float64 `yaml:"crash_duration_ms"`
}

// SpawnTuning defines obstacle spawning.
type SpawnTuning struct {
	StartY            float64 `yaml:"start_y"`
	MaxPassesPerTick  int     `yaml:"max_passes_per_tick"`
	BackoffSeconds    float64 `yaml:"backoff_seconds"`
	MinBackoffSeconds float64 `yaml:"min_backoff_seconds"`
	MinRescaledTimer  float64 `yaml:"min_rescaled_timer"`
}

// PowerUpTuning defines power-up spawning.
type PowerUpTuning struct {
	IntervalSeconds float64 `yaml:"interval_seconds"`
	JitterSeconds   float64 `yaml:"jitter_seconds"` // Full width of the uniform jitter window
	StartY          float64 `yaml:"start_y"`
	Size            float64 `yaml:"size"`
}

// FinishTuning defines the finish line.
type FinishTuning struct {
	VisibleDistance float64 `yaml:"visible_distance"`
	SpawnBuffer     float64 `yaml:"spawn_buffer"` // No spawns this close to the finish
	LineHeight      float64 `yaml:"line_height"`
}

// ScoringTuning defines the star thresholds.
type ScoringTuning struct {
	ParDivisor    float64 `yaml:"par_divisor"`
	ThreeStarTime float64 `yaml:"three_star_time"` // Multiple of par time
	ThreeStarRate float64 `yaml:"three_star_rate"` // Minimum avoided rate
	TwoStarTime   float64 `yaml:"two_star_time"`
	TwoStarRate   float64 `yaml:"two_star_rate"`
}

// Validate rejects tunings the engine cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.Physics.MaxFrameDeltaMs <= 0:
		return fmt.Errorf("config: physics.max_frame_delta_ms must be positive")
	case t.Physics.SpeedMultiplier <= 0:
		return fmt.Errorf("config: physics.speed_multiplier must be positive")
	case t.Physics.PixelsPerMeter <= 0:
		return fmt.Errorf("config: physics.pixels_per_meter must be positive")
	case t.Playfield.Height <= 0 || t.Playfield.PlayerHeight <= 0:
		return fmt.Errorf("config: playfield geometry must be positive")
	case t.Playfield.PlayerY() < 0:
		return fmt.Errorf("config: player does not fit in the playfield")
	case t.Playfield.OffscreenY < t.Playfield.Height:
		return fmt.Errorf("config: playfield.offscreen_y must be below the playfield")
	case t.Hitbox.PlayerTop >= t.Hitbox.PlayerBottom || t.Hitbox.ObstacleTop >= t.Hitbox.ObstacleBottom:
		return fmt.Errorf("config: hitbox top inset must be above bottom inset")
	case t.Timing.CountdownFrom < 1 || t.Timing.CountdownStepMs <= 0 || t.Timing.CrashDurationMs <= 0:
		return fmt.Errorf("config: timing values must be positive")
	case t.Spawn.MaxPassesPerTick < 1:
		return fmt.Errorf("config: spawn.max_passes_per_tick must be at least 1")
	case t.PowerUps.IntervalSeconds <= t.PowerUps.JitterSeconds/2:
		return fmt.Errorf("config: powerups.interval_seconds must exceed half the jitter")
	case t.Finish.VisibleDistance <= 0 || t.Finish.LineHeight <= 0:
		return fmt.Errorf("config: finish values must be positive")
	case t.Scoring.ParDivisor <= 0:
		return fmt.Errorf("config: scoring.par_divisor must be positive")
	}
	return nil
}
