package engine

import (
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// ComputeStars grades a finished run. parTime is the reference completion
// time and avoidedRate is avoided/spawned.
func ComputeStars(s config.ScoringTuning, timeElapsed, parTime, avoidedRate float64) int {
	switch {
	case timeElapsed <= parTime*s.ThreeStarTime && avoidedRate >= s.ThreeStarRate:
		return 3
	case timeElapsed <= parTime*s.TwoStarTime && avoidedRate >= s.TwoStarRate:
		return 2
	default:
		return 1
	}
}

// ParTime returns the reference completion time for a level at speed.
func ParTime(s config.ScoringTuning, distance, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return distance / speed / s.ParDivisor
}

// playerSpan returns the inset vertical hitbox of the player.
func playerSpan(t config.Tuning) core.Span {
	pf := t.Playfield
	return core.InsetSpan(pf.PlayerY(), pf.PlayerHeight, t.Hitbox.PlayerTop, t.Hitbox.PlayerBottom)
}

// obstacleSpan returns the inset vertical hitbox of an obstacle.
func obstacleSpan(t config.Tuning, o Obstacle) core.Span {
	return core.InsetSpan(o.Y, o.Height(), t.Hitbox.ObstacleTop, t.Hitbox.ObstacleBottom)
}

// powerUpSpan returns the full vertical extent of a power-up.
func powerUpSpan(t config.Tuning, p PowerUp) core.Span {
	return core.Span{Top: p.Y, Bottom: p.Y + t.PowerUps.Size}
}
