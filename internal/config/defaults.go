package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the built-in tuning. It matches defaults/tuning.yaml
// and is the fallback when the embedded file cannot be parsed.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: PhysicsTuning{
			MaxFrameDeltaMs: 80,
			SpeedMultiplier: 12,
			PixelsPerMeter:  2.4,
		},
		Playfield: PlayfieldTuning{
			Height:             430,
			PlayerHeight:       128,
			PlayerBottomOffset: 32,
			OffscreenY:         520,
			AvoidLine:          0.9,
		},
		Hitbox: HitboxTuning{
			PlayerTop:      0.02,
			PlayerBottom:   0.98,
			ObstacleTop:    0.02,
			ObstacleBottom: 0.98,
		},
		Timing: TimingTuning{
			CountdownFrom:   3,
			CountdownStepMs: 800,
			CrashDurationMs: 600,
		},
		Spawn: SpawnTuning{
			StartY:            -240,
			MaxPassesPerTick:  2,
			BackoffSeconds:    0.18,
			MinBackoffSeconds: 0.12,
			MinRescaledTimer:  0.08,
		},
		PowerUps: PowerUpTuning{
			IntervalSeconds: 22,
			JitterSeconds:   8,
			StartY:          -60,
			Size:            36,
		},
		Finish: FinishTuning{
			VisibleDistance: 200,
			SpawnBuffer:     50,
			LineHeight:      48,
		},
		Scoring: ScoringTuning{
			ParDivisor:    1,
			ThreeStarTime: 1.10,
			ThreeStarRate: 0.85,
			TwoStarTime:   1.35,
			TwoStarRate:   0.60,
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
