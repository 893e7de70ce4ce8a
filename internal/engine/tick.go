package engine

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/achievements"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

// Tick advances the simulation by deltaMs milliseconds of wall time.
// Negative deltas count as zero and large ones are clamped to the maximum
// frame delta. Only the countdown, playing and crashing phases advance.
func (e *Engine) Tick(deltaMs float64) StepResult {
	if math.IsNaN(deltaMs) || deltaMs < 0 {
		deltaMs = 0
	}
	deltaMs = min(deltaMs, e.cfg.Physics.MaxFrameDeltaMs)

	var res StepResult
	switch e.phase {
	case PhaseCountdown:
		e.tickCountdown(deltaMs, &res)
	case PhaseCrashing:
		e.tickCrash(deltaMs, &res)
	case PhasePlaying:
		e.tickPlaying(deltaMs/1000, &res)
	}
	res.Phase = e.phase
	return res
}

func (res *StepResult) emit(kind EventKind, value int, id string) {
	res.Events = append(res.Events, Event{Kind: kind, Value: value, ID: id})
}

func (e *Engine) tickCountdown(deltaMs float64, res *StepResult) {
	e.countdownTimer -= deltaMs
	if e.countdownTimer > 0 {
		return
	}

	e.countdownValue--
	if e.countdownValue <= 0 {
		e.countdownValue = 0
		e.countdownTimer = 0
		e.phase = PhasePlaying
		res.emit(EventGo, 0, "")
		return
	}
	e.countdownTimer = e.cfg.Timing.CountdownStepMs
	res.emit(EventCountdown, e.countdownValue, "")
}

func (e *Engine) tickCrash(deltaMs float64, res *StepResult) {
	e.crashTimer = max(0, e.crashTimer-deltaMs)
	if e.crashTimer > 0 {
		return
	}

	e.clearCrash()
	e.phase = PhaseGameOver
	res.emit(EventGameOver, 0, "")
	e.logger.Info("run over", "level", e.level.ID, "distance", e.distance, "time", e.elapsed)

	e.record(OutcomeCrash, progress.RunStats{
		TimeElapsed:      e.elapsed,
		ObstaclesAvoided: e.avoided,
		ObstaclesSpawned: e.spawned,
		ShieldUsed:       e.shieldUsed,
	})
}

// tickPlaying runs one physics step of dt seconds.
func (e *Engine) tickPlaying(dt float64, res *StepResult) {
	cfg := &e.cfg
	pf := cfg.Playfield

	// Advance along the road.
	prev := e.distance
	e.distance = min(e.distance+e.speed*dt, e.level.Distance)
	remaining := e.level.Distance - e.distance
	offset := (e.distance - prev) * cfg.Physics.PixelsPerMeter

	// Move traffic, noting which obstacles pass the avoid line.
	avoidY := pf.AvoidY()
	var passed []int
	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		wasAbove := o.Y+o.Height() < avoidY
		o.Y += offset
		if wasAbove && o.Y+o.Height() >= avoidY {
			passed = append(passed, o.ID)
		}
		if o.Y < pf.OffscreenY {
			kept = append(kept, o)
		}
	}
	e.obstacles = kept

	player := playerSpan(e.cfg)

	// Move and collect power-ups.
	keptPowerUps := e.powerUps[:0]
	for _, p := range e.powerUps {
		p.Y += offset
		if p.Y >= pf.OffscreenY {
			continue
		}
		if p.Lane == e.lane && powerUpSpan(e.cfg, p).Overlaps(player) {
			if p.Kind == PowerUpShield {
				e.shieldActive = true
			}
			res.emit(EventPowerUp, p.ID, p.Kind.String())
			continue
		}
		keptPowerUps = append(keptPowerUps, p)
	}
	e.powerUps = keptPowerUps

	// Collision.
	hit := -1
	for i, o := range e.obstacles {
		if o.Lane == e.lane && obstacleSpan(e.cfg, o).Overlaps(player) {
			hit = i
			break
		}
	}

	for _, id := range passed {
		if hit < 0 || e.obstacles[hit].ID != id {
			e.avoided++
		}
	}
	e.elapsed += dt

	if hit >= 0 {
		o := e.obstacles[hit]
		if !e.shieldActive {
			e.crash(o, res)
			return
		}
		e.obstacles = append(e.obstacles[:hit], e.obstacles[hit+1:]...)
		e.shieldActive = false
		e.shieldUsed = true
		e.avoided++
		res.emit(EventShieldAbsorb, o.ID, "")
		e.logger.Debug("shield absorbed hit", "obstacle", o.ID, "lane", o.Lane)
	}

	// Finish line.
	e.finishVisible = remaining <= cfg.Finish.VisibleDistance
	if e.finishVisible {
		h := cfg.Finish.LineHeight
		e.finishY = max(-h, (1-remaining/cfg.Finish.VisibleDistance)*pf.PlayerMidY()-h)
	}
	if e.distance >= e.level.Distance {
		e.win(res)
		return
	}

	// Spawning.
	allowed := remaining > cfg.Finish.SpawnBuffer
	profile := e.difficulty.Profile()
	var n int
	e.obstacles, n = e.spawn.spawnObstacles(e.obstacles, dt, allowed,
		e.cooldownFor(e.difficulty), profile.LaneClearThreshold, e.level.Pool)
	e.spawned += n
	e.powerUps = e.spawn.spawnPowerUp(e.powerUps, dt, allowed && !e.shieldActive)
}

// crash freezes the run around the obstacle that was hit.
func (e *Engine) crash(o Obstacle, res *StepResult) {
	e.phase = PhaseCrashing
	e.crashTimer = e.cfg.Timing.CrashDurationMs
	e.crashLane = o.Lane
	e.crashY = o.Y
	e.hasCrash = true
	res.emit(EventCrash, o.ID, "")
	e.logger.Debug("crash", "level", e.level.ID, "lane", o.Lane, "y", o.Y, "variant", o.Variant)
}

// win grades the run and commits it to progress as one transaction.
func (e *Engine) win(res *StepResult) {
	// The line reaches the player exactly when the distance runs out.
	e.finishVisible = true
	e.finishY = e.cfg.Playfield.PlayerMidY() - e.cfg.Finish.LineHeight

	stats := progress.RunStats{
		TimeElapsed:      e.elapsed,
		ObstaclesAvoided: e.avoided,
		ObstaclesSpawned: e.spawned,
		ShieldUsed:       e.shieldUsed,
	}
	par := ParTime(e.cfg.Scoring, e.level.Distance, e.speed)
	stats.Stars = ComputeStars(e.cfg.Scoring, stats.TimeElapsed, par, stats.AvoidedRate())

	victory := e.store.RecordVictory(e.level.ID, stats, achievements.Evaluator(stats, e.levelIDs()))

	e.phase = PhaseVictory
	e.lastRun = &stats
	e.pending = append(e.pending, victory.NewAchievements...)

	res.emit(EventVictory, stats.Stars, "")
	for _, id := range victory.NewAchievements {
		res.emit(EventAchievement, 0, id)
	}
	e.logger.Info("level complete", "level", e.level.ID, "time", stats.TimeElapsed,
		"stars", stats.Stars, "avoided", stats.ObstaclesAvoided, "spawned", stats.ObstaclesSpawned)

	e.record(OutcomeVictory, stats)
}

// record hands a finished run to the recorder, if any.
func (e *Engine) record(outcome Outcome, stats progress.RunStats) {
	if e.recorder == nil {
		return
	}
	p := e.store.Progress()
	err := e.recorder.RecordRun(RunReport{
		LevelID:    e.level.ID,
		Outcome:    outcome,
		Distance:   e.distance,
		Stats:      stats,
		Difficulty: e.difficulty,
		Character:  p.SelectedCharacter,
	})
	if err != nil {
		e.logger.Warn("could not record run", "error", err)
	}
}
